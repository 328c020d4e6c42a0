package jwtauth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

const testSecret = "registration-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func validClaims() Claims {
	now := time.Now()
	return Claims{
		Email:    "cap@example.com",
		Name:     "Captain",
		Firebase: FirebaseClaims{SignInProvider: user.ProviderGoogle},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "registration",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestVerifier_AcceptsValidToken(t *testing.T) {
	t.Parallel()

	v, err := NewVerifier(Config{Secret: testSecret, Issuer: "registration"})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	principal, err := v.VerifyAccessToken(t.Context(), sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims()))
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if principal.UserID != "user-1" || principal.Email != "cap@example.com" || principal.DisplayName != "Captain" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if !principal.SignedInWith(user.ProviderGoogle) {
		t.Fatalf("expected google provider, got %q", principal.Provider)
	}
}

func TestVerifier_RejectsBadTokens(t *testing.T) {
	t.Parallel()

	v, err := NewVerifier(Config{Secret: testSecret, Issuer: "registration"})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "someone-else"

	noSubject := validClaims()
	noSubject.Subject = ""

	cases := map[string]string{
		"wrong secret": sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims()),
		"expired":      sign(t, jwt.SigningMethodHS256, []byte(testSecret), expired),
		"wrong issuer": sign(t, jwt.SigningMethodHS256, []byte(testSecret), wrongIssuer),
		"no subject":   sign(t, jwt.SigningMethodHS256, []byte(testSecret), noSubject),
		"wrong alg":    sign(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims()),
		"garbage":      "not-a-jwt",
	}
	for name, token := range cases {
		if _, err := v.VerifyAccessToken(t.Context(), token); !errors.Is(err, usecase.ErrUnauthorized) {
			t.Fatalf("%s: expected ErrUnauthorized, got %v", name, err)
		}
	}
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewVerifier(Config{}); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
