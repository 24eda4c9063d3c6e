package authenticating

import (
	"errors"
	"fmt"
)

// Login e token
var (
	ErrInvalidCredentials = errors.New("email ou senha incorretos")
	ErrUserDisabled       = errors.New("usuário desativado, aguarde a liberação de um administrador")
	ErrInvalidToken       = errors.New("token de acesso inválido")
	ErrExpiredToken       = errors.New("token de acesso expirado")
)

// Cadastro de usuários
var (
	ErrUserNotFound        = errors.New("usuário não encontrado")
	ErrUserAlreadyExists   = errors.New("email já cadastrado")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrNoAdminPrivileges   = errors.New("ação restrita a administradores")
	ErrDatabaseOperation   = errors.New("falha ao acessar a tabela de usuários")
)

// Senhas
var (
	ErrWeakPassword  = errors.New("senha fraca")
	ErrWrongPassword = errors.New("senha atual incorreta")
	ErrSamePassword  = errors.New("a nova senha deve ser diferente da atual")
)

// AuthError carrega o código de API junto do erro de origem
type AuthError struct {
	Err     error
	Code    string
	UserID  int
	Details string
}

func (e *AuthError) Error() string {
	msg := e.Err.Error()
	if e.UserID > 0 {
		msg = fmt.Sprintf("usuário %d: %s", e.UserID, msg)
	}
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return msg
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsCredentialsError indica falha de login causada pelos dados informados
func IsCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrUserDisabled)
}

func NewAuthError(baseErr error, code string, details string) *AuthError {
	return NewUserAuthError(baseErr, code, 0, details)
}

func NewUserAuthError(baseErr error, code string, userID int, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		UserID:  userID,
		Details: details,
	}
}
