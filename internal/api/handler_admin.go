package api

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostel-feedback-backend/internal/store"
)

// parseTimeParam accepts RFC3339 or a bare date.
func parseTimeParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, use RFC3339 or YYYY-MM-DD", value)
	}
	return t, nil
}

func parseFeedbackFilter(c *gin.Context) (store.FeedbackFilter, error) {
	filter := store.FeedbackFilter{
		Username:       c.Query("username"),
		MessType:       c.Query("messType"),
		Rating:         c.Query("rating"),
		RatingCategory: store.RatingCategory(c.Query("category")),
		Search:         c.Query("search"),
		SearchIn:       c.Query("searchIn"),
	}
	if filter.MessType != "" && !slices.Contains(store.MessTypes, filter.MessType) {
		return filter, fmt.Errorf("unknown mess type %q", filter.MessType)
	}
	if v := c.Query("from"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			return filter, err
		}
		filter.To = &t
	}
	return filter, nil
}

// Dashboard returns totals plus the five most recent submissions.
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate stats"})
		return
	}

	recent, err := h.store.RecentFeedback(c.Request.Context(), 5)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":     stats.TotalUsers,
		"totalFeedback":  stats.TotalFeedback,
		"recentFeedback": recent,
	})
}

// ListFeedback returns feedback rows matching the optional filters.
func (h *Handler) ListFeedback(c *gin.Context) {
	filter, err := parseFeedbackFilter(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.store.ListFeedback(c.Request.Context(), filter)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(rows), "feedback": rows})
}

// FeedbackSummary returns the rating distribution for one category.
func (h *Handler) FeedbackSummary(c *gin.Context) {
	category := store.RatingCategory(c.DefaultQuery("category", string(store.CategoryHostel)))

	distribution, err := h.store.RatingDistribution(c.Request.Context(), category)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category, "distribution": distribution})
}

// ListUsers returns all users. Password digests never leave the model's JSON
// encoding.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// DeleteUser removes a user and everything cascading from it, and audits the
// action.
func (h *Handler) DeleteUser(c *gin.Context) {
	username := c.Param("username")

	if err := h.store.DeleteUser(c.Request.Context(), username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	if err := h.store.AppendAdminLog(c.Request.Context(), "USER_DELETION", "Deleted user: "+username); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to record deletion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User " + username + " removed"})
}

// ListLogs returns the audit trail, newest first.
func (h *Handler) ListLogs(c *gin.Context) {
	logs, err := h.store.ListAdminLogs(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(logs), "logs": logs})
}

// ClearLogs truncates the audit trail. The clear itself becomes the first
// entry of the fresh log.
func (h *Handler) ClearLogs(c *gin.Context) {
	if err := h.store.ClearAdminLogs(c.Request.Context()); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear logs"})
		return
	}

	if err := h.store.AppendAdminLog(c.Request.Context(), "LOGS_CLEARED", ""); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to record log clear"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logs cleared"})
}
