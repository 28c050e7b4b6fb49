// SPDX-License-Identifier: AGPL-3.0-only
package authhelp

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	userID := uuid.New()

	token, err := IssueToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	parsed, err := ParseToken(token, secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if parsed != userID {
		t.Fatalf("expected subject %v, got %v", userID, parsed)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := IssueToken(uuid.New(), []byte("one"), time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := ParseToken(token, []byte("two")); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	token, err := IssueToken(uuid.New(), []byte("secret"), -time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := ParseToken(token, []byte("secret")); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-token", []byte("secret")); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
