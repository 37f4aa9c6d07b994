package auth

import (
	"testing"
	"time"

	jwtsvc "nexusfiles/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newJWT() *jwtsvc.Service {
	return jwtsvc.New("test-secret", time.Hour)
}

func TestLoginWithBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.DefaultCost)
	require.NoError(t, err)

	j := newJWT()
	svc := NewService(string(hash), j)

	token, err := svc.Login("open-sesame")
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	_, err = svc.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidPasscode)
}

func TestLoginWithPlainPasscode(t *testing.T) {
	svc := NewService("open-sesame", newJWT())

	_, err := svc.Login("open-sesame")
	assert.NoError(t, err)

	_, err = svc.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidPasscode)
}

func TestLoginUnconfigured(t *testing.T) {
	svc := NewService("", newJWT())

	_, err := svc.Login("anything")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
