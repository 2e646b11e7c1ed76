package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionLifecycle(t *testing.T) {
	env := newTestEnv(t, "subscriptions")
	adminToken := env.adminToken(t)

	w := env.do(t, http.MethodPut, "/api/admin/subscriptions", nil, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/admin/subscriptions", gin.H{
		"endpoint": "https://push.example/abc",
		"p256dh":   "key",
		"auth":     "secret",
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Replacing the same endpoint is idempotent.
	w = env.do(t, http.MethodPut, "/api/admin/subscriptions", gin.H{
		"endpoint": "https://push.example/abc",
		"p256dh":   "rotated-key",
		"auth":     "secret",
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/admin/subscriptions?endpoint=https://push.example/abc", nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/admin/subscriptions?endpoint=https://push.example/unknown", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/api/admin/subscriptions", gin.H{
		"endpoint": "https://push.example/abc",
	}, adminToken)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/admin/subscriptions?endpoint=https://push.example/abc", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVAPIDKeyUnconfigured(t *testing.T) {
	env := newTestEnv(t, "vapid")

	w := env.do(t, http.MethodGet, "/api/admin/vapid_public_key", nil, env.adminToken(t))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
