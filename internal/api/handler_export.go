package api

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

var exportHeader = []string{
	"id", "username", "submitted_at",
	"hostel_comment", "hostel_rating",
	"mess_comment", "mess_type", "mess_rating",
	"bathroom_comment", "bathroom_rating",
	"other_comments",
}

// ExportFeedback streams the filtered feedback view as CSV: a header row
// plus one row per record.
func (h *Handler) ExportFeedback(c *gin.Context) {
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

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="hostel_feedback.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(exportHeader); err != nil {
		return
	}
	for _, fb := range rows {
		record := []string{
			strconv.FormatUint(uint64(fb.ID), 10),
			fb.Username,
			fb.SubmittedAt.Format(time.RFC3339),
			fb.HostelComment,
			fb.HostelRating,
			fb.MessComment,
			fb.MessType,
			fb.MessRating,
			fb.BathroomComment,
			fb.BathroomRating,
			fb.OtherComments,
		}
		if err := w.Write(record); err != nil {
			return
		}
	}
	w.Flush()
}
