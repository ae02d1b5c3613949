package models_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/localnerve/jam-build-bookmarks/internal/models"
	"github.com/localnerve/jam-build-bookmarks/internal/types"
)

func TestNewUserNormalizesNames(t *testing.T) {
	user := models.NewUser(models.UserInput{
		Username:  "testuser1",
		Password:  "secret",
		FirstName: "john",
		LastName:  "dOE",
	})

	if user.FirstName != "John" || user.LastName != "Doe" {
		t.Errorf("names = %q %q, want John Doe", user.FirstName, user.LastName)
	}
	if user.FullName != "John Doe" {
		t.Errorf("FullName = %q, want John Doe", user.FullName)
	}
	if user.ID == "" {
		t.Error("expected an id to be assigned")
	}
	if user.JoinDate.IsZero() {
		t.Error("JoinDate should default to now")
	}
}

func TestNewUserKeepsSuppliedJoinDate(t *testing.T) {
	joined := time.Date(2020, 12, 19, 0, 0, 0, 0, time.UTC)
	user := models.NewUser(models.UserInput{
		FirstName: "jane",
		LastName:  "doe",
		JoinDate:  types.FlexTime{Time: joined, Set: true},
	})

	if !user.JoinDate.Equal(joined) {
		t.Errorf("JoinDate = %v, want %v", user.JoinDate, joined)
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in, name, title string
	}{
		{"", "", ""},
		{"test title", "Test title", "Test title"},
		{"mcDONALD", "Mcdonald", "McDONALD"},
		{"élan", "Élan", "Élan"},
		{"123", "123", "123"},
	}

	for _, tt := range tests {
		if got := models.CapitalizeName(tt.in); got != tt.name {
			t.Errorf("CapitalizeName(%q) = %q, want %q", tt.in, got, tt.name)
		}
		if got := models.CapitalizeTitle(tt.in); got != tt.title {
			t.Errorf("CapitalizeTitle(%q) = %q, want %q", tt.in, got, tt.title)
		}
	}
}

func TestNewBookmarkTrimsAndCapitalizes(t *testing.T) {
	in := models.BookmarkInput{
		Title:       "      test title  ",
		URL:         " https://www.test.com ",
		Description: " Test description ",
		User:        "owner",
	}
	in.Trim()
	bookmark := models.NewBookmark(in)

	if bookmark.Title != "Test title" {
		t.Errorf("Title = %q, want %q", bookmark.Title, "Test title")
	}
	if bookmark.URL != "https://www.test.com" {
		t.Errorf("URL = %q", bookmark.URL)
	}
	if bookmark.Description != "Test description" {
		t.Errorf("Description = %q", bookmark.Description)
	}
	if bookmark.LikesCount != 0 {
		t.Errorf("LikesCount = %d, want 0", bookmark.LikesCount)
	}
	if bookmark.UserID != "owner" {
		t.Errorf("UserID = %q, want owner", bookmark.UserID)
	}
}

func TestUserViewHidesPassword(t *testing.T) {
	user := models.User{
		ID:           "user-1",
		Username:     "testuser",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Test",
		LastName:     "User",
		FullName:     "Test User",
		Bookmarks: []models.Bookmark{
			{ID: "bm-1", Title: "Title", URL: "https://example.com", LikesCount: 2},
		},
	}

	body, err := json.Marshal(models.NewUserView(&user))
	if err != nil {
		t.Fatalf("Failed to marshal view: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to unmarshal view: %v", err)
	}

	if result["id"] != "user-1" {
		t.Errorf("id = %v, want user-1", result["id"])
	}
	if strings.Contains(string(body), "hash") || strings.Contains(string(body), "password") {
		t.Errorf("view leaks the password: %s", body)
	}

	owned := result["bookmarks"].([]interface{})[0].(map[string]interface{})
	if _, ok := owned["url"]; ok {
		t.Error("owned bookmark projection should not include url")
	}
	if owned["likesCount"] != float64(2) {
		t.Errorf("likesCount = %v, want 2", owned["likesCount"])
	}
}

func TestBookmarkViewProjectsOwnerAndLikes(t *testing.T) {
	bookmark := models.Bookmark{
		ID:         "bm-1",
		Title:      "Title",
		UserID:     "user-1",
		LikesCount: 1,
		User:       &models.User{ID: "user-1", Username: "owner", FullName: "Owner Person", PasswordHash: "secret-hash"},
		Likes:      []models.BookmarkLike{{BookmarkID: "bm-1", UserID: "user-2"}},
	}

	view := models.NewBookmarkView(&bookmark)

	if view.User == nil || view.User.Username != "owner" || view.User.FullName != "Owner Person" {
		t.Errorf("unexpected owner projection: %+v", view.User)
	}
	if len(view.Likes) != 1 || view.Likes[0] != "user-2" {
		t.Errorf("Likes = %v, want [user-2]", view.Likes)
	}

	body, _ := json.Marshal(view)
	if strings.Contains(string(body), "secret-hash") {
		t.Errorf("view leaks the owner's password hash: %s", body)
	}
}
