package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/localnerve/jam-build-bookmarks/internal/config"
	"github.com/localnerve/jam-build-bookmarks/internal/models"
	"github.com/localnerve/jam-build-bookmarks/internal/types"
	"gorm.io/gorm"
)

// MessageInvalidCredentials is returned for both an unknown user and a wrong password
const MessageInvalidCredentials = "Invalid username or password"

// Claims are the session token contents
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// LoginResult is the body returned by a successful login
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// Authenticator issues and verifies session tokens. It is built once from config
// and shared by the handlers and middleware.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthenticator creates an Authenticator from the SECRET and TOKEN_TTL settings.
// A zero TTL issues tokens without an expiry.
func NewAuthenticator(cfg *config.Config) *Authenticator {
	return &Authenticator{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

// IssueToken signs a token for user
func (a *Authenticator) IssueToken(user *models.User) (string, error) {
	now := a.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if a.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(a.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks the signature and expiry of tokenString and returns its claims.
// Every failure is reported as an invalid token.
func (a *Authenticator) VerifyToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, types.NewInvalidToken()
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, types.NewInvalidToken()
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, types.NewInvalidToken()
	}

	return claims, nil
}

// Login checks the credentials and issues a token for the user
func (a *Authenticator) Login(db *gorm.DB, username, password string) (*LoginResult, error) {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			burnCompare(password)
			return nil, types.NewUnauthorized(MessageInvalidCredentials)
		}
		return nil, err
	}

	if !ComparePassword(user.PasswordHash, password) {
		return nil, types.NewUnauthorized(MessageInvalidCredentials)
	}

	token, err := a.IssueToken(&user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:    token,
		Username: user.Username,
		FullName: user.FullName,
	}, nil
}
