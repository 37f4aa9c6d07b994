package auth

import (
	"crypto/subtle"
	"strings"

	jwtsvc "nexusfiles/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	passcode string
	jwt      *jwtsvc.Service
}

func NewService(passcode string, jwt *jwtsvc.Service) *Service {
	return &Service{
		passcode: passcode,
		jwt:      jwt,
	}
}

// Login checks the dashboard passcode and issues a session token. The
// configured value may be a bcrypt hash (cmd/hashpass produces one) or,
// for initial setup, the plain passcode.
func (s *Service) Login(passcode string) (string, error) {
	if s.passcode == "" {
		return "", ErrNotConfigured
	}

	if strings.HasPrefix(s.passcode, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(s.passcode), []byte(passcode)); err != nil {
			return "", ErrInvalidPasscode
		}
	} else if subtle.ConstantTimeCompare([]byte(s.passcode), []byte(passcode)) != 1 {
		return "", ErrInvalidPasscode
	}

	return s.jwt.GenerateToken("admin")
}
