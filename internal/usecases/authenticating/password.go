package authenticating

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength       = 8
	generatedPasswordLength = 12
)

// passwordRule é um grupo de caracteres que toda senha precisa conter
type passwordRule struct {
	chars   string
	message string
}

var passwordRules = []passwordRule{
	{chars: "ABCDEFGHIJKLMNOPQRSTUVWXYZ", message: "a senha deve conter pelo menos uma letra maiúscula"},
	{chars: "abcdefghijklmnopqrstuvwxyz", message: "a senha deve conter pelo menos uma letra minúscula"},
	{chars: "0123456789", message: "a senha deve conter pelo menos um número"},
	{chars: "!@#$%^&*()-_=+[]{}|;:,.<>?", message: "a senha deve conter pelo menos um caractere especial"},
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "erro ao gerar hash da senha")
	}
	return string(hash), nil
}

// ValidatePasswordStrength exige o tamanho mínimo e um caractere de cada regra
func (s *Service) ValidatePasswordStrength(password string) error {
	if len(password) < minPasswordLength {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, "a senha deve conter pelo menos 8 caracteres")
	}
	for _, rule := range passwordRules {
		if !strings.ContainsAny(password, rule.chars) {
			return NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, rule.message)
		}
	}
	return nil
}

func (s *Service) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	user, err := s.loadUser(ctx, userID, "")
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return NewUserAuthError(ErrWrongPassword, apiErrors.ErrInvalidCredentials, userID, "")
	}
	if currentPassword == newPassword {
		return NewUserAuthError(ErrSamePassword, apiErrors.ErrInvalidFormat, userID, "")
	}
	if err := s.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	return s.storePassword(ctx, user, newPassword)
}

// GenerateStrongPassword redefine a senha do usuário alvo. Só administradores podem pedir.
func (s *Service) GenerateStrongPassword(ctx context.Context, requestUserID, targetUserID int) (string, error) {
	requester, err := s.loadUser(ctx, requestUserID, "usuário solicitante")
	if err != nil {
		return "", err
	}
	if requester.RoleID != domain.RoleAdmin {
		return "", NewUserAuthError(ErrNoAdminPrivileges, apiErrors.ErrInsufficientPrivilege, requestUserID, "")
	}

	target, err := s.loadUser(ctx, targetUserID, "usuário alvo")
	if err != nil {
		return "", err
	}

	password, err := randomPassword(generatedPasswordLength)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "erro ao gerar senha")
	}

	if err := s.storePassword(ctx, target, password); err != nil {
		return "", err
	}

	log.ForContext(ctx).Infof("auth: senha do usuário %d redefinida pelo usuário %d", targetUserID, requestUserID)
	return password, nil
}

func (s *Service) storePassword(ctx context.Context, user *domain.User, plain string) error {
	hash, err := hashPassword(plain)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, user.ID, err.Error())
	}
	return nil
}

// randomPassword sorteia um caractere de cada regra e completa com o alfabeto
// inteiro antes de embaralhar
func randomPassword(length int) (string, error) {
	length = max(length, len(passwordRules))

	var alphabet strings.Builder
	for _, rule := range passwordRules {
		alphabet.WriteString(rule.chars)
	}
	all := alphabet.String()

	password := make([]byte, length)
	for i := range password {
		charset := all
		if i < len(passwordRules) {
			charset = passwordRules[i].chars
		}
		n, err := cryptoIntn(len(charset))
		if err != nil {
			return "", err
		}
		password[i] = charset[n]
	}

	for i := len(password) - 1; i > 0; i-- {
		j, err := cryptoIntn(i + 1)
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

func cryptoIntn(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
