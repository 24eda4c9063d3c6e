package domain

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Perfis de acesso ao painel
const (
	RoleAdmin   = 1
	RoleAnalyst = 2
	RoleViewer  = 3
)

var ErrEmailAlreadyExists = errors.New("email já cadastrado")

type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Lastname     string     `json:"lastname"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password,omitempty"`
	Active       bool       `json:"active"`
	RoleID       int        `json:"role_id"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type UpdateUserRequest struct {
	ID       int     `json:"id"`
	Name     *string `json:"name"`
	Lastname *string `json:"lastname"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Active   *bool   `json:"active"`
	RoleID   *int    `json:"role_id" validate:"omitempty,oneof=1 2 3"`
	Deleted  *bool   `json:"deleted"`
}

type Claims struct {
	UserID       int
	UserName     string
	UserLastname string
	UserEmail    string
	UserActive   bool
	UserRoleID   int
	jwt.RegisteredClaims
}
