package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signedToken(t, jwt.MapClaims{"exp": exp.Unix()})
	got, err := TokenExpiry(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(exp) {
		t.Errorf("got %v, want %v", got, exp)
	}
}

func TestTokenExpiry_NoClaim(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"sub": "operator"})
	got, err := TokenExpiry(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("got %v, want zero time", got)
	}
}

func TestTokenExpiry_Opaque(t *testing.T) {
	_, err := TokenExpiry("not-a-jwt")
	if !errors.Is(err, ErrNotJWT) {
		t.Fatalf("got %v, want ErrNotJWT", err)
	}
}

func TestCheckToken(t *testing.T) {
	valid := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	expired := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})

	if err := CheckToken("source", valid); err != nil {
		t.Errorf("valid token: %v", err)
	}
	if err := CheckToken("source", expired); err == nil {
		t.Error("expired token should fail")
	}
	if err := CheckToken("source", "opaque-token"); err != nil {
		t.Errorf("opaque token should pass: %v", err)
	}
	if err := CheckToken("source", ""); err == nil {
		t.Error("empty token should fail")
	}
}
