package services

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/localnerve/jam-build-bookmarks/internal/config"
	"github.com/localnerve/jam-build-bookmarks/internal/models"
	"github.com/localnerve/jam-build-bookmarks/internal/types"
)

func testAuthenticator(ttl time.Duration) *Authenticator {
	return NewAuthenticator(&config.Config{Secret: "test-secret", TokenTTL: ttl})
}

func TestIssueAndVerifyToken(t *testing.T) {
	auth := testAuthenticator(0)
	user := &models.User{ID: "user-1", Username: "testuser"}

	token, err := auth.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	claims, err := auth.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "testuser" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt != nil {
		t.Errorf("expected no expiry without a TTL, got %v", claims.ExpiresAt)
	}
	if claims.IssuedAt == nil {
		t.Error("expected iat to be set")
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	auth := testAuthenticator(0)
	user := &models.User{ID: "user-1", Username: "testuser"}

	valid, err := auth.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	otherSecret, _ := NewAuthenticator(&config.Config{Secret: "other-secret"}).IssueToken(user)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("Failed to build unsigned token: %v", err)
	}

	noUser, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Username: "testuser"}).
		SignedString([]byte("test-secret"))

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not.a.token",
		"tampered":     valid[:len(valid)-2] + strings.Repeat("x", 2),
		"wrong secret": otherSecret,
		"alg none":     unsigned,
		"no user id":   noUser,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := auth.VerifyToken(token)
			if !types.IsType(err, types.TypeInvalidToken) {
				t.Errorf("VerifyToken() error = %v, want invalid token", err)
			}
		})
	}
}

func TestVerifyTokenExpiry(t *testing.T) {
	auth := testAuthenticator(time.Hour)
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	auth.now = func() time.Time { return issued }

	token, err := auth.IssueToken(&models.User{ID: "user-1", Username: "testuser"})
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	auth.now = func() time.Time { return issued.Add(30 * time.Minute) }
	if _, err := auth.VerifyToken(token); err != nil {
		t.Errorf("token should be valid before expiry: %v", err)
	}

	auth.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := auth.VerifyToken(token); !types.IsType(err, types.TypeInvalidToken) {
		t.Errorf("expired token error = %v, want invalid token", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "secret" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !ComparePassword(hash, "secret") {
		t.Error("ComparePassword() with the right password = false")
	}
	if ComparePassword(hash, "wrong") {
		t.Error("ComparePassword() with a wrong password = true")
	}
}

func TestAuthorizeOwner(t *testing.T) {
	claims := &Claims{UserID: "owner"}

	if err := AuthorizeOwner(claims, "owner"); err != nil {
		t.Errorf("AuthorizeOwner() for the owner error = %v", err)
	}
	if err := AuthorizeOwner(claims, "someone-else"); !types.IsType(err, types.TypeForbidden) {
		t.Errorf("AuthorizeOwner() for another user error = %v, want forbidden", err)
	}
	if err := AuthorizeOwner(nil, "owner"); !types.IsType(err, types.TypeInvalidToken) {
		t.Errorf("AuthorizeOwner() without claims error = %v, want invalid token", err)
	}
}
