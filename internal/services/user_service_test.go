package services_test

import (
	"strings"
	"testing"

	"github.com/localnerve/jam-build-bookmarks/internal/models"
	"github.com/localnerve/jam-build-bookmarks/internal/services"
	"github.com/localnerve/jam-build-bookmarks/internal/types"
	"github.com/localnerve/jam-build-bookmarks/tests/helpers"
)

func TestCreateUserNormalizesAndHashes(t *testing.T) {
	db := helpers.SetupTestDB(t)

	view, err := services.CreateUser(db, models.UserInput{
		Username:  "testuser1",
		Password:  "secret",
		FirstName: "john",
		LastName:  "doe",
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if view.FirstName != "John" || view.LastName != "Doe" || view.FullName != "John Doe" {
		t.Errorf("unexpected names: %+v", view)
	}
	if len(view.Bookmarks) != 0 {
		t.Errorf("new user should have no bookmarks, got %d", len(view.Bookmarks))
	}

	var stored models.User
	if err := db.Where("id = ?", view.ID).First(&stored).Error; err != nil {
		t.Fatalf("Failed to load user: %v", err)
	}
	if stored.PasswordHash == "secret" || !strings.HasPrefix(stored.PasswordHash, "$2") {
		t.Errorf("password was not hashed: %q", stored.PasswordHash)
	}
	if !services.ComparePassword(stored.PasswordHash, "secret") {
		t.Error("stored hash does not match the password")
	}
}

func TestCreateUserAccumulatesViolations(t *testing.T) {
	db := helpers.SetupTestDB(t)

	_, err := services.CreateUser(db, models.UserInput{
		Username: "ab",
		Password: "bad password",
	})

	var ce *types.CustomError
	if !asCustomError(err, &ce) || ce.Type != types.TypeValidation {
		t.Fatalf("CreateUser() error = %v, want a validation error", err)
	}

	want := map[string]string{
		"username":  "Username must be at least 4 characters",
		"password":  "Password can only contain English letters, numbers or underscores",
		"firstName": "First name is required",
		"lastName":  "Last name is required",
	}
	for field, msg := range want {
		if ce.Fields[field] != msg {
			t.Errorf("Fields[%q] = %q, want %q", field, ce.Fields[field], msg)
		}
	}

	if n := helpers.CountRows(t, db, &models.User{}); n != 0 {
		t.Errorf("expected nothing persisted, found %d users", n)
	}
}

func TestCreateUserRejectsBlankNamesAndPaddedUsername(t *testing.T) {
	db := helpers.SetupTestDB(t)

	_, err := services.CreateUser(db, models.UserInput{
		Username:  " abcd",
		Password:  "secret",
		FirstName: "   ",
		LastName:  "\t",
	})

	var ce *types.CustomError
	if !asCustomError(err, &ce) || ce.Type != types.TypeValidation {
		t.Fatalf("CreateUser() error = %v, want a validation error", err)
	}

	want := map[string]string{
		"username":  "Username can only contain English letters, numbers or underscores",
		"firstName": "First name is required",
		"lastName":  "Last name is required",
	}
	for field, msg := range want {
		if ce.Fields[field] != msg {
			t.Errorf("Fields[%q] = %q, want %q", field, ce.Fields[field], msg)
		}
	}
	if _, ok := ce.Fields["password"]; ok {
		t.Errorf("unexpected password error: %q", ce.Fields["password"])
	}

	if n := helpers.CountRows(t, db, &models.User{}); n != 0 {
		t.Errorf("expected nothing persisted, found %d users", n)
	}
}

func TestCreateUserTrimsNames(t *testing.T) {
	db := helpers.SetupTestDB(t)

	view, err := services.CreateUser(db, models.UserInput{
		Username:  "testuser1",
		Password:  "secret",
		FirstName: "  john ",
		LastName:  " doe",
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if view.FullName != "John Doe" {
		t.Errorf("FullName = %q, want %q", view.FullName, "John Doe")
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := helpers.SetupTestDB(t)
	helpers.CreateTestUser(t, db, "testuser1", "secret")

	_, err := services.CreateUser(db, models.UserInput{
		Username:  "testuser1",
		Password:  "another",
		FirstName: "jane",
		LastName:  "doe",
	})

	var ce *types.CustomError
	if !asCustomError(err, &ce) || ce.Type != types.TypeValidation {
		t.Fatalf("CreateUser() error = %v, want a validation error", err)
	}
	if ce.Fields["username"] != "Username is already taken" {
		t.Errorf("Fields[username] = %q", ce.Fields["username"])
	}
	if n := helpers.CountRows(t, db, &models.User{}, "username = ?", "testuser1"); n != 1 {
		t.Errorf("expected exactly one testuser1, found %d", n)
	}
}

func TestGetUser(t *testing.T) {
	db := helpers.SetupTestDB(t)
	user := helpers.CreateTestUser(t, db, "testuser1", "secret")
	helpers.CreateTestBookmark(t, db, user, "first", "https://example.com/1")
	helpers.CreateTestBookmark(t, db, user, "second", "https://example.com/2")

	view, err := services.GetUser(db, user.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if len(view.Bookmarks) != 2 {
		t.Fatalf("expected 2 owned bookmarks, got %d", len(view.Bookmarks))
	}
	if view.Bookmarks[0].Title != "First" {
		t.Errorf("Bookmarks[0].Title = %q, want First", view.Bookmarks[0].Title)
	}

	_, err = services.GetUser(db, "00000000-0000-0000-0000-000000000000")
	if !types.IsType(err, types.TypeNotFound) {
		t.Errorf("GetUser() for a missing id error = %v, want not found", err)
	}
}

func TestListUsers(t *testing.T) {
	db := helpers.SetupTestDB(t)
	helpers.CreateTestUser(t, db, "testuser1", "secret")
	helpers.CreateTestUser(t, db, "testuser2", "secret")

	users, err := services.ListUsers(db)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}

func TestDeleteUserRequiresSelf(t *testing.T) {
	db := helpers.SetupTestDB(t)
	user := helpers.CreateTestUser(t, db, "testuser1", "secret")
	other := helpers.CreateTestUser(t, db, "testuser2", "secret")

	err := services.DeleteUser(db, &services.Claims{UserID: other.ID}, user.ID)
	if !types.IsType(err, types.TypeForbidden) {
		t.Fatalf("DeleteUser() by another user error = %v, want forbidden", err)
	}
	if n := helpers.CountRows(t, db, &models.User{}); n != 2 {
		t.Errorf("expected no change, found %d users", n)
	}

	err = services.DeleteUser(db, &services.Claims{UserID: user.ID}, "00000000-0000-0000-0000-000000000000")
	if !types.IsType(err, types.TypeNotFound) {
		t.Errorf("DeleteUser() for a missing id error = %v, want not found", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	db := helpers.SetupTestDB(t)
	user := helpers.CreateTestUser(t, db, "testuser1", "secret")
	other := helpers.CreateTestUser(t, db, "testuser2", "secret")

	owned := helpers.CreateTestBookmark(t, db, user, "mine", "https://example.com/mine")
	foreign := helpers.CreateTestBookmark(t, db, other, "theirs", "https://example.com/theirs")

	userClaims := &services.Claims{UserID: user.ID}
	otherClaims := &services.Claims{UserID: other.ID}

	// The other user likes the doomed bookmark, the user likes the surviving one
	if _, err := services.ToggleLike(db, otherClaims, owned.ID); err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	if _, err := services.ToggleLike(db, userClaims, foreign.ID); err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}

	if err := services.DeleteUser(db, userClaims, user.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	if n := helpers.CountRows(t, db, &models.User{}, "id = ?", user.ID); n != 0 {
		t.Error("user still exists")
	}
	if n := helpers.CountRows(t, db, &models.Bookmark{}, "user_id = ?", user.ID); n != 0 {
		t.Errorf("expected the user's bookmarks removed, found %d", n)
	}
	if n := helpers.CountRows(t, db, &models.BookmarkLike{}); n != 0 {
		t.Errorf("expected every like involving the user removed, found %d", n)
	}

	view, err := services.GetBookmark(db, foreign.ID)
	if err != nil {
		t.Fatalf("GetBookmark() error = %v", err)
	}
	if view.LikesCount != 0 || len(view.Likes) != 0 {
		t.Errorf("likes not withdrawn: count=%d likes=%v", view.LikesCount, view.Likes)
	}
}
