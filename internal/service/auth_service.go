package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const adminSubject = "admin"

// AuthService выдаёт и проверяет токены администратора.
// Если хэш пароля или секрет не заданы, вход администратора отключён.
type AuthService struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

func NewAuthService(passwordHash, secret string, ttl time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
		logger:       logger,
	}
}

func (s *AuthService) enabled() bool {
	return len(s.passwordHash) > 0 && len(s.secret) > 0
}

// Login проверяет пароль и возвращает подписанный HS256 токен со сроком действия
func (s *AuthService) Login(password string) (string, time.Time, error) {
	if !s.enabled() {
		return "", time.Time{}, fmt.Errorf("%w: admin login is disabled", model.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		s.logger.Warn("Admin login failed")
		return "", time.Time{}, fmt.Errorf("%w: invalid credentials", model.ErrUnauthorized)
	}

	issued := s.now()
	exp := issued.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("Admin logged in", zap.Time("expires_at", exp))

	return signed, exp, nil
}

// ValidateToken проверяет подпись и срок действия токена
func (s *AuthService) ValidateToken(raw string) error {
	if !s.enabled() {
		return fmt.Errorf("%w: admin login is disabled", model.ErrUnauthorized)
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: token expired", model.ErrUnauthorized)
		}
		return fmt.Errorf("%w: invalid token: %w", model.ErrUnauthorized, err)
	}
	if !token.Valid || claims.Subject != adminSubject {
		return fmt.Errorf("%w: invalid token", model.ErrUnauthorized)
	}

	return nil
}
