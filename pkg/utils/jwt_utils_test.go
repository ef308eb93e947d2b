package utils

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	token, err := m.GenerateAccessToken(7, "owner", "store_owner")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "owner" || claims.Role != "store_owner" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).GenerateAccessToken(1, "a", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	_, err = NewTokenManager("secret-b", time.Hour).ValidateToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)
	token, err := m.GenerateAccessToken(1, "a", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := m.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
