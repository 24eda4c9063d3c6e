package authenticating

import (
	"context"
	"errors"
	"strings"

	"github.com/vfg2006/saas-metrics-api/infrastructure/repository"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/saas-metrics-api/pkg/clock"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.UpdateUserRequest) error
	ListUser(ctx context.Context) ([]*domain.User, error)
	LoginUser(ctx context.Context, email, password string) (string, error)
	GetUserProfile(ctx context.Context, userID int) (*domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	GenerateStrongPassword(ctx context.Context, requestUserID, targetUserID int) (string, error)
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
	ValidatePasswordStrength(password string) error
}

// Service cuida dos usuários do painel: cadastro, login e senhas
type Service struct {
	userRepo repository.UserRepository
	cfg      config.Auth
	clock    clock.Clock
}

func NewService(userRepo repository.UserRepository, cfg config.Auth, clock clock.Clock) Authenticator {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
		clock:    clock,
	}
}

// loadUser busca um usuário não removido; ausência vira ErrUserNotFound
func (s *Service) loadUser(ctx context.Context, userID int, details string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Errorf("auth: erro ao buscar usuário %d", userID)
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, err.Error())
	}
	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, details)
	}
	return user, nil
}

// CreateUser grava o usuário com a senha em PasswordHash ainda em texto puro.
// Contas novas ficam inativas até um administrador liberar.
func (s *Service) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.Email == "" || user.Name == "" || user.Lastname == "" || user.PasswordHash == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "email, nome, sobrenome e senha")
	}

	user.Email = normalizeEmail(user.Email)

	existing, err := s.userRepo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, user.Email)
	}

	hash, err := hashPassword(user.PasswordHash)
	if err != nil {
		return nil, err
	}

	if user.RoleID == 0 {
		user.RoleID = domain.RoleViewer
	}
	user.PasswordHash = hash
	user.Active = false

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, s.writeError(err, 0)
	}

	created.PasswordHash = ""
	log.ForContext(ctx).Infof("auth: usuário %d criado com perfil %d", created.ID, created.RoleID)

	return created, nil
}

// UpdateUser aplica apenas os campos informados. A senha nunca passa por aqui.
func (s *Service) UpdateUser(ctx context.Context, req *domain.UpdateUserRequest) error {
	if req.ID == 0 {
		return NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "id")
	}

	user, err := s.loadUser(ctx, req.ID, "")
	if err != nil {
		return err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Lastname != nil {
		user.Lastname = *req.Lastname
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.RoleID != nil {
		user.RoleID = *req.RoleID
	}
	if req.Deleted != nil {
		now := s.clock.Now()
		user.Deleted = *req.Deleted
		user.DeletedAt = &now
	}

	user.PasswordHash = ""

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return s.writeError(err, req.ID)
	}

	log.ForContext(ctx).Infof("auth: usuário %d atualizado", req.ID)
	return nil
}

func (s *Service) ListUser(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.ListUser(ctx)
	if err != nil {
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	return users, nil
}

func (s *Service) GetUserProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.loadUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// LoginUser devolve um token assinado para o par email e senha
func (s *Service) LoginUser(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "email e senha")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if user == nil {
		return "", NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "")
	}
	if !user.Active {
		return "", NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", NewUserAuthError(err, apiErrors.ErrInternalServer, user.ID, "erro ao assinar token")
	}

	log.ForContext(ctx).Infof("auth: login do usuário %d", user.ID)
	return token, nil
}

// writeError traduz falhas de gravação; email repetido vira conflito
func (s *Service) writeError(err error, userID int) error {
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		return NewUserAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, userID, "")
	}
	return NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, err.Error())
}

func normalizeEmail(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}
