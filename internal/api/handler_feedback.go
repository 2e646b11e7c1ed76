package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hostel-feedback-backend/internal/model"
	"hostel-feedback-backend/internal/mw"
)

type feedbackRequest struct {
	HostelComment   string `json:"hostelComment"`
	HostelRating    string `json:"hostelRating" binding:"required,oneof=A B C D E"`
	MessComment     string `json:"messComment"`
	MessType        string `json:"messType" binding:"required,oneof=Veg Non-Veg Special Food-Park"`
	MessRating      string `json:"messRating" binding:"required,oneof=A B C D E"`
	BathroomComment string `json:"bathroomComment"`
	BathroomRating  string `json:"bathroomRating" binding:"required,oneof=A B C D E"`
	OtherComments   string `json:"otherComments"`
}

// SubmitFeedback stores one feedback row for the authenticated student and
// queues an admin alert. The store's check constraints back up the request
// validation, so out-of-set ratings are rejected either way.
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fb := model.Feedback{
		Username:        c.GetString(mw.CtxUsername),
		SubmittedAt:     time.Now(),
		HostelComment:   req.HostelComment,
		HostelRating:    req.HostelRating,
		MessComment:     req.MessComment,
		MessType:        req.MessType,
		MessRating:      req.MessRating,
		BathroomComment: req.BathroomComment,
		BathroomRating:  req.BathroomRating,
		OtherComments:   req.OtherComments,
	}
	if err := h.store.CreateFeedback(c.Request.Context(), &fb); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store feedback"})
		return
	}

	if h.notifier != nil {
		h.notifier.Dispatch(fb.ID)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Thank you for your feedback!", "feedback": fb})
}
