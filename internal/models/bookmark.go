package models

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/localnerve/jam-build-bookmarks/internal/types"
)

// Bookmark is a saved URL. UserID is the authoritative owner reference.
type Bookmark struct {
	ID          string         `gorm:"type:char(36);primaryKey"`
	Title       string         `gorm:"size:120;not null"`
	URL         string         `gorm:"type:text;not null"`
	Description string         `gorm:"type:text"`
	UserID      string         `gorm:"type:char(36);not null;index"`
	Date        time.Time      `gorm:"not null;index"`
	LikesCount  int64          `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	User        *User          `gorm:"foreignKey:UserID"`
	Likes       []BookmarkLike `gorm:"foreignKey:BookmarkID"`
}

// BookmarkLike records that a user liked a bookmark. The composite key keeps a user
// from appearing twice in a bookmark's likes.
type BookmarkLike struct {
	BookmarkID string `gorm:"type:char(36);primaryKey"`
	UserID     string `gorm:"type:char(36);primaryKey;index"`
	CreatedAt  time.Time
}

// TableName overrides the table name for Bookmark
func (Bookmark) TableName() string {
	return "bookmarks"
}

// TableName overrides the table name for BookmarkLike
func (BookmarkLike) TableName() string {
	return "bookmark_likes"
}

// BookmarkInput is the client payload for creating a bookmark
type BookmarkInput struct {
	Title       string         `json:"title" validate:"required,max=120"`
	URL         string         `json:"url" validate:"required,url"`
	Description string         `json:"description" validate:"max=2000"`
	Date        types.FlexTime `json:"date"`
	User        string         `json:"-" validate:"required"`
}

// BookmarkMessages holds the client facing message for each failed rule, keyed by "field.rule"
var BookmarkMessages = map[string]string{
	"title.required":  "Title is required",
	"title.max":       "Bookmark title must be less than 120 characters",
	"url.required":    "URL is required",
	"url.url":         "Invalid URL: %v",
	"description.max": "Bookmark description must be less than 2000 characters",
	"user.required":   "User ID is required",
	"user.exists":     "User not found: %v",
}

// Trim removes surrounding whitespace from the text fields before validation
func (in *BookmarkInput) Trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	in.Description = strings.TrimSpace(in.Description)
}

// NewBookmark builds a normalized bookmark from validated input
func NewBookmark(in BookmarkInput) Bookmark {
	return Bookmark{
		ID:          uuid.NewString(),
		Title:       CapitalizeTitle(in.Title),
		URL:         in.URL,
		Description: in.Description,
		UserID:      in.User,
		Date:        in.Date.OrNow(),
		LikesCount:  0,
	}
}

// CapitalizeTitle upper-cases the first letter and leaves the rest alone
func CapitalizeTitle(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
