package models

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/localnerve/jam-build-bookmarks/internal/types"
)

// User is a registered account. Owned bookmarks are not stored on the user,
// they are loaded from bookmarks.user_id when needed.
type User struct {
	ID           string    `gorm:"type:char(36);primaryKey"`
	Username     string    `gorm:"size:20;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:72;not null"`
	FirstName    string    `gorm:"size:255;not null"`
	LastName     string    `gorm:"size:255;not null"`
	FullName     string    `gorm:"size:511;not null"`
	JoinDate     time.Time `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Bookmarks    []Bookmark `gorm:"foreignKey:UserID"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// UserInput is the client payload for creating a user
type UserInput struct {
	Username  string         `json:"username" validate:"required,min=4,max=20,word"`
	Password  string         `json:"password" validate:"required,min=4,max=30,word"`
	FirstName string         `json:"firstName" validate:"required"`
	LastName  string         `json:"lastName" validate:"required"`
	JoinDate  types.FlexTime `json:"joinDate"`
}

// UserMessages holds the client facing message for each failed rule, keyed by "field.rule"
var UserMessages = map[string]string{
	"username.required":  "Username is required",
	"username.min":       "Username must be at least 4 characters",
	"username.max":       "Username must be less than 20 characters",
	"username.word":      "Username can only contain English letters, numbers or underscores",
	"username.unique":    "Username is already taken",
	"password.required":  "Password is required",
	"password.min":       "Password must be at least 4 characters",
	"password.max":       "Password must be less than 30 characters",
	"password.word":      "Password can only contain English letters, numbers or underscores",
	"firstName.required": "First name is required",
	"lastName.required":  "Last name is required",
}

// Trim removes surrounding whitespace from the names before validation. The username
// and password are checked as sent.
func (in *UserInput) Trim() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
}

// NewUser builds a normalized user from validated input. The password hash is set by the caller.
func NewUser(in UserInput) User {
	first := CapitalizeName(in.FirstName)
	last := CapitalizeName(in.LastName)
	return User{
		ID:        uuid.NewString(),
		Username:  in.Username,
		FirstName: first,
		LastName:  last,
		FullName:  first + " " + last,
		JoinDate:  in.JoinDate.OrNow(),
	}
}

// CapitalizeName upper-cases the first letter and lower-cases the rest
func CapitalizeName(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
