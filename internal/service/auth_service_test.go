package service

import (
	"testing"
	"time"

	"github.com/Freeeeeet/barbershop_booking/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, password string) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(string(hash), "test-secret", time.Hour, zap.NewNop())
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	svc := newTestAuthService(t, "s3cret")

	token, exp, err := svc.Login("s3cret")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
	assert.NoError(t, svc.ValidateToken(token))
}

func TestAuthService_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t, "s3cret")

	_, _, err := svc.Login("guess")

	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestAuthService_ExpiredToken(t *testing.T) {
	svc := newTestAuthService(t, "s3cret")
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.Login("s3cret")
	require.NoError(t, err)

	svc.now = time.Now
	assert.ErrorIs(t, svc.ValidateToken(token), model.ErrUnauthorized)
}

func TestAuthService_RejectsForeignTokens(t *testing.T) {
	svc := newTestAuthService(t, "s3cret")

	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	otherSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
	require.NoError(t, err)
	assert.ErrorIs(t, svc.ValidateToken(otherSecret), model.ErrUnauthorized)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: adminSubject}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	assert.ErrorIs(t, svc.ValidateToken(noExpiry), model.ErrUnauthorized)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.ValidateToken(unsigned), model.ErrUnauthorized)

	assert.ErrorIs(t, svc.ValidateToken("garbage"), model.ErrUnauthorized)
}

func TestAuthService_DisabledWithoutSecret(t *testing.T) {
	svc := NewAuthService("", "", time.Hour, zap.NewNop())

	_, _, err := svc.Login("")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
	assert.ErrorIs(t, svc.ValidateToken("x"), model.ErrUnauthorized)
}
