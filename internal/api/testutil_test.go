package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hostel-feedback-backend/config"
	"hostel-feedback-backend/internal/auth"
	"hostel-feedback-backend/internal/db"
	"hostel-feedback-backend/internal/store"
)

const testAdminPassword = "SecureAdminPass123!"

type testEnv struct {
	router *gin.Engine
	store  store.Store
	tokens *auth.TokenIssuer
	cfg    *config.Config
}

// newTestEnv wires a router against a private in-memory SQLite database.
// Mailer and notifier stay nil; those paths are covered in their own packages.
func newTestEnv(t *testing.T, name string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared&_foreign_keys=on", name)
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gormDB))

	adminHash, err := auth.HashPassword(testAdminPassword)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTLSeconds = 1
	cfg.Admin.Username = "hostel_admin"
	cfg.Admin.PasswordHash = adminHash
	cfg.Auth.Secret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour

	appStore := store.NewGormStore(gormDB)
	tokens := auth.NewTokenIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	handler := NewHandler(appStore, cfg, tokens, nil, nil, nil)

	return &testEnv{
		router: NewRouter(handler),
		store:  appStore,
		tokens: tokens,
		cfg:    cfg,
	}
}

// do performs a request with an optional JSON body and bearer token.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) registerStudent(t *testing.T, username string) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"username":        username,
		"password":        "hunter2hunter2",
		"confirmPassword": "hunter2hunter2",
		"name":            "Test " + username,
		"email":           username + "@example.edu",
		"regNo":           "REG-" + username,
		"roomNo":          "101",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func (e *testEnv) studentToken(t *testing.T, username string) string {
	t.Helper()
	token, err := e.tokens.Issue(username, auth.RoleStudent)
	require.NoError(t, err)
	return token
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, err := e.tokens.Issue(e.cfg.Admin.Username, auth.RoleAdmin)
	require.NoError(t, err)
	return token
}
