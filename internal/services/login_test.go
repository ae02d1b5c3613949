package services_test

import (
	"testing"

	"github.com/localnerve/jam-build-bookmarks/internal/services"
	"github.com/localnerve/jam-build-bookmarks/internal/types"
	"github.com/localnerve/jam-build-bookmarks/tests/helpers"
)

func TestLogin(t *testing.T) {
	db := helpers.SetupTestDB(t)
	user := helpers.CreateTestUser(t, db, "testuser1", "secret")
	auth := services.NewAuthenticator(helpers.TestConfig())

	result, err := auth.Login(db, "testuser1", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Username != "testuser1" || result.FullName != user.FullName {
		t.Errorf("unexpected login result: %+v", result)
	}

	claims, err := auth.VerifyToken(result.Token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token user = %q, want %q", claims.UserID, user.ID)
	}
}

func TestLoginFailures(t *testing.T) {
	db := helpers.SetupTestDB(t)
	helpers.CreateTestUser(t, db, "testuser1", "secret")
	auth := services.NewAuthenticator(helpers.TestConfig())

	tests := map[string][2]string{
		"wrong password": {"testuser1", "wrong"},
		"unknown user":   {"nobody", "secret"},
		"empty":          {"", ""},
	}

	for name, creds := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := auth.Login(db, creds[0], creds[1])

			var ce *types.CustomError
			if !asCustomError(err, &ce) || ce.Type != types.TypeUnauthorized {
				t.Fatalf("Login() error = %v, want unauthorized", err)
			}
			if ce.Message != "Invalid username or password" {
				t.Errorf("Message = %q", ce.Message)
			}
		})
	}
}
