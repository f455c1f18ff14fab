package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return "Bearer " + s
}

func TestVerifier_Verify(t *testing.T) {
	secret := "secret"
	verifier, err := NewVerifier(secret, "HS256", "", "", 5*time.Second)
	if err != nil {
		t.Fatalf("NewVerifier error: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{
			name: "Valid Token",
			token: signToken(t, secret, jwt.MapClaims{
				"sub": "user123",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantErr: false,
		},
		{
			name: "Expired Token",
			token: signToken(t, secret, jwt.MapClaims{
				"sub": "user123",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			wantErr: true,
		},
		{
			name: "Missing Subject",
			token: signToken(t, secret, jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantErr: true,
		},
		{
			name:    "Invalid Signature",
			token:   "Bearer " + "invalid.token.string",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verifier.Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifier_PrincipalFields(t *testing.T) {
	secret := "secret"
	verifier, err := NewVerifier(secret, "HS256", "", "", 0)
	if err != nil {
		t.Fatalf("NewVerifier error: %v", err)
	}

	token := signToken(t, secret, jwt.MapClaims{
		"sub":      "ops@example.com",
		"provider": "oidc",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	principal, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if principal.Name != "ops@example.com" {
		t.Errorf("Name = %q, want ops@example.com", principal.Name)
	}
	if principal.Provider != "oidc" {
		t.Errorf("Provider = %q, want oidc", principal.Provider)
	}
}

func TestVerifier_IssuerAndAudience(t *testing.T) {
	secret := "secret"
	verifier, err := NewVerifier(secret, "HS256", "issuer.example.com", "management", 0)
	if err != nil {
		t.Fatalf("NewVerifier error: %v", err)
	}

	valid := signToken(t, secret, jwt.MapClaims{
		"sub": "user123",
		"iss": "issuer.example.com",
		"aud": "management",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := verifier.Verify(valid); err != nil {
		t.Errorf("Verify with matching iss/aud failed: %v", err)
	}

	wrongIssuer := signToken(t, secret, jwt.MapClaims{
		"sub": "user123",
		"iss": "evil.example.com",
		"aud": "management",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := verifier.Verify(wrongIssuer); err == nil {
		t.Error("expected error for wrong issuer")
	}

	wrongAudience := signToken(t, secret, jwt.MapClaims{
		"sub": "user123",
		"iss": "issuer.example.com",
		"aud": "other",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := verifier.Verify(wrongAudience); err == nil {
		t.Error("expected error for wrong audience")
	}
}

func TestNewVerifierValidation(t *testing.T) {
	if _, err := NewVerifier("", "HS256", "", "", 0); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := NewVerifier("secret", "", "", "", 0); err == nil {
		t.Error("expected error for empty algorithm")
	}
}
