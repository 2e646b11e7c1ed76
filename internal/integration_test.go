package internal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hostel-feedback-backend/config"
	"hostel-feedback-backend/internal/api"
	"hostel-feedback-backend/internal/auth"
	"hostel-feedback-backend/internal/db"
	"hostel-feedback-backend/internal/model"
	"hostel-feedback-backend/internal/store"
)

// TestFeedbackLifecycle walks the whole student/admin flow: registration,
// login, submission, admin review and user deletion, verifying the database
// state at each step.
func TestFeedbackLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 1. Setup an in-memory SQLite database for testing.
	testDB, err := gorm.Open(sqlite.Open("file:lifecycle?mode=memory&cache=shared&_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	require.NoError(t, db.Migrate(testDB))

	// 2. Build a configuration with out-of-band admin credentials.
	adminHash, err := auth.HashPassword("SecureAdminPass123!")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTLSeconds = 1
	cfg.Admin.Username = "hostel_admin"
	cfg.Admin.PasswordHash = adminHash
	cfg.Auth.Secret = "integration-secret"
	cfg.Auth.TokenTTL = time.Hour

	appStore := store.NewGormStore(testDB)
	tokens := auth.NewTokenIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	router := api.NewRouter(api.NewHandler(appStore, cfg, tokens, nil, nil, nil))

	doJSON := func(method, path string, body any, token string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req, err := http.NewRequest(method, path, &buf)
		require.NoError(t, err)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// --- Step 1: register alice ---
	w := doJSON(http.MethodPost, "/api/auth/register", gin.H{
		"username":        "alice",
		"password":        "hunter2hunter2",
		"confirmPassword": "hunter2hunter2",
		"name":            "Alice Example",
		"email":           "alice@example.edu",
		"regNo":           "REG-42",
		"roomNo":          "101",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// --- Step 2: login as alice ---
	beforeLogin := time.Now()
	w = doJSON(http.MethodPost, "/api/auth/login", gin.H{
		"username": "alice", "password": "hunter2hunter2",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Token)

	var alice model.User
	require.NoError(t, testDB.Where("username = ?", "alice").First(&alice).Error)
	require.NotNil(t, alice.LastLogin)
	assert.False(t, alice.LastLogin.Before(beforeLogin.Truncate(time.Second)))

	// --- Step 3: submit feedback ---
	w = doJSON(http.MethodPost, "/api/feedback", gin.H{
		"hostelComment":  "decent",
		"hostelRating":   "B",
		"messComment":    "tasty",
		"messType":       "Veg",
		"messRating":     "A",
		"bathroomRating": "C",
	}, loginResp.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// --- Step 4: admin login with the configured credential pair ---
	w = doJSON(http.MethodPost, "/api/auth/admin/login", gin.H{
		"username": "hostel_admin", "password": "SecureAdminPass123!",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var adminResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adminResp))

	// A student token cannot reach admin views.
	w = doJSON(http.MethodGet, "/api/admin/feedback", nil, loginResp.Token)
	require.Equal(t, http.StatusForbidden, w.Code)

	// --- Step 5: admin sees exactly one row for alice with those values ---
	w = doJSON(http.MethodGet, "/api/admin/feedback?username=alice", nil, adminResp.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var listResp struct {
		Count    int              `json:"count"`
		Feedback []model.Feedback `json:"feedback"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Equal(t, 1, listResp.Count)
	assert.Equal(t, "alice", listResp.Feedback[0].Username)
	assert.Equal(t, "B", listResp.Feedback[0].HostelRating)
	assert.Equal(t, "Veg", listResp.Feedback[0].MessType)
	assert.Equal(t, "A", listResp.Feedback[0].MessRating)

	// --- Step 6: admin deletes alice ---
	w = doJSON(http.MethodDelete, "/api/admin/users/alice", nil, adminResp.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// --- Step 7: no feedback rows remain for alice ---
	w = doJSON(http.MethodGet, "/api/admin/feedback?username=alice", nil, adminResp.Token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Equal(t, 0, listResp.Count)

	// Guest record went with the user.
	var guestCount int64
	testDB.Model(&model.Guest{}).Count(&guestCount)
	assert.Equal(t, int64(0), guestCount)

	// The audit trail carries the admin login and the deletion.
	var logs []model.AdminLog
	require.NoError(t, testDB.Order("id").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, "ADMIN_LOGIN", logs[0].Action)
	assert.Equal(t, "USER_DELETION", logs[1].Action)
}
