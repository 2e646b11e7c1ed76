package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"hostel-feedback-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(h.cfg.Server.RateLimitPerSec), h.cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(h.cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/healthz", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Public hostel listing feeds the registration form; safe to cache.
		api.GET("/hostels", caching, h.GetHostels)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.POST("/admin/login", h.AdminLogin)
			authGroup.POST("/logout", mw.RequireUser(h.tokens), h.Logout)
			authGroup.POST("/reset/request", h.RequestPasswordReset)
			authGroup.POST("/reset/confirm", h.ConfirmPasswordReset)
		}

		api.POST("/feedback", mw.RequireUser(h.tokens), h.SubmitFeedback)

		admin := api.Group("/admin")
		admin.Use(mw.RequireAdmin(h.tokens))
		{
			admin.GET("/dashboard", h.Dashboard)
			admin.GET("/feedback", h.ListFeedback)
			admin.GET("/feedback/summary", h.FeedbackSummary)
			admin.GET("/feedback/export", h.ExportFeedback)
			admin.GET("/users", h.ListUsers)
			admin.DELETE("/users/:username", h.DeleteUser)
			admin.GET("/logs", h.ListLogs)
			admin.DELETE("/logs", h.ClearLogs)

			admin.POST("/hostels", h.CreateHostel)
			admin.POST("/rooms", h.CreateRoom)
			admin.POST("/stays", h.AssignRoom)
			admin.POST("/stays/checkout", h.Checkout)

			admin.GET("/subscriptions", h.GetSubscription)
			admin.PUT("/subscriptions", h.PutSubscription)
			admin.DELETE("/subscriptions", h.DeleteSubscription)
			admin.GET("/vapid_public_key", h.GetVAPIDPublicKey)
		}
	}

	return r
}
