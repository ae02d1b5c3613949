package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-bookmarks/internal/logger"
	"github.com/localnerve/jam-build-bookmarks/internal/models"
	"github.com/localnerve/jam-build-bookmarks/internal/server"
	"github.com/localnerve/jam-build-bookmarks/internal/services"
	"gorm.io/gorm"
)

// TestApp is a fully wired application over a test database
type TestApp struct {
	App  *fiber.App
	DB   *gorm.DB
	Auth *services.Authenticator
}

// NewTestApp builds the application the server runs, backed by SetupTestDB
func NewTestApp(t *testing.T) *TestApp {
	t.Helper()

	cfg := TestConfig()
	db := SetupTestDB(t)
	auth := services.NewAuthenticator(cfg)

	app := server.New(server.Options{
		Config: cfg,
		DB:     db,
		Log:    logger.Nop(),
		Auth:   auth,
	})

	return &TestApp{App: app, DB: db, Auth: auth}
}

// Token issues a bearer token for user
func (ta *TestApp) Token(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := ta.Auth.IssueToken(user)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

// Request sends a request with an optional JSON body and bearer token
func (ta *TestApp) Request(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
	}
	return ta.RequestRaw(t, method, path, payload, token)
}

// RequestRaw sends body as is, labelled as JSON when not empty
func (ta *TestApp) RequestRaw(t *testing.T, method, path string, body []byte, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ta.App.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	return resp
}
