package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
)

const defaultTokenTTL = 24 * time.Hour

func (s *Service) tokenTTL() time.Duration {
	if s.cfg.TokenTTLHours <= 0 {
		return defaultTokenTTL
	}
	return time.Duration(s.cfg.TokenTTLHours) * time.Hour
}

func (s *Service) issueToken(user *domain.User) (string, error) {
	now := s.clock.Now()
	claims := domain.Claims{
		UserID:       user.ID,
		UserName:     user.Name,
		UserLastname: user.Lastname,
		UserEmail:    user.Email,
		UserActive:   user.Active,
		UserRoleID:   user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL())),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

// ValidateToken aceita apenas HMAC e mede a expiração pelo relógio do serviço
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	claims := &domain.Claims{}
	keyFunc := func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("algoritmo %v não aceito", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc, jwt.WithTimeFunc(s.clock.Now))
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
	case err != nil:
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	case !token.Valid:
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}
