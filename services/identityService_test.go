package services

import (
	"errors"
	"testing"

	"snapquiz/models"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return token
}

func TestResolveExtractsSubject(t *testing.T) {
	service := NewIdentityService()
	token := signedToken(t, jwt.MapClaims{"sub": "user-42"})

	userID, err := service.Resolve("Bearer " + token)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if userID != "user-42" {
		t.Errorf("Resolve returned %q, expected user-42", userID)
	}
}

func TestResolveFailures(t *testing.T) {
	service := NewIdentityService()

	tests := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"bearer with no token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
		{"token without subject", "Bearer " + signedToken(t, jwt.MapClaims{"aud": "snapquiz"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Resolve(tt.header); !errors.Is(err, models.ErrAuthRequired) {
				t.Errorf("Resolve(%q) error = %v, expected ErrAuthRequired", tt.header, err)
			}
		})
	}
}
