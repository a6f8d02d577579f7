package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// SubjectAdmin is the subject claim carried by administrative tokens.
const SubjectAdmin = "admin"

var (
	// ErrBadCredentials indicates the admin PIN did not match.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrInvalidToken indicates an unparseable, expired, or non-admin token.
	ErrInvalidToken = errors.New("invalid token")
)

// Service issues and verifies admin session tokens. Policy setters and
// supply issuance are only reachable with one; everything else is public.
type Service struct {
	pinHash  []byte
	secret   []byte
	tokenTTL time.Duration
}

// NewService builds the auth service from a bcrypt hash of the admin PIN
// and the JWT signing secret.
func NewService(pinHash, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{pinHash: pinHash, secret: secret, tokenTTL: tokenTTL}
}

// Login verifies the admin PIN and returns a signed session token.
func (s *Service) Login(_ context.Context, pin string) (string, error) {
	if len(s.pinHash) == 0 {
		return "", ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.pinHash, []byte(pin)); err != nil {
		return "", ErrBadCredentials
	}
	now := time.Now().UTC()
	claims := map[string]any{
		"sub": SubjectAdmin,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	return SignHS256(claims, s.secret)
}

// Verify checks an admin session token.
func (s *Service) Verify(token string) error {
	claims, err := ParseAndVerifyHS256(token, s.secret)
	if err != nil {
		return ErrInvalidToken
	}
	if sub, _ := claims["sub"].(string); sub != SubjectAdmin {
		return ErrInvalidToken
	}
	exp, ok := claims["exp"].(float64)
	if !ok || time.Now().UTC().Unix() >= int64(exp) {
		return ErrInvalidToken
	}
	return nil
}
