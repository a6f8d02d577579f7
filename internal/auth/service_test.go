package auth

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestLoginAndVerify(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}
	svc := NewService(hash, []byte("secret"), time.Hour)
	ctx := context.Background()

	token, err := svc.Login(ctx, "1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := svc.Verify(token); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if _, err := svc.Login(ctx, "9999"); err != ErrBadCredentials {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
	if err := svc.Verify(token + "x"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	svc := NewService(hash, []byte("secret"), -time.Minute)

	token, err := svc.Login(context.Background(), "1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := svc.Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected expired token rejection, got %v", err)
	}
}

func TestLoginWithoutConfiguredHash(t *testing.T) {
	svc := NewService(nil, []byte("secret"), time.Hour)
	if _, err := svc.Login(context.Background(), "anything"); err != ErrBadCredentials {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}
