package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostel-feedback-backend/internal/model"
	"hostel-feedback-backend/internal/store"
)

// GetHostels lists hostels with their rooms. Public: registration forms need
// it before any login.
func (h *Handler) GetHostels(c *gin.Context) {
	hostels, err := h.store.ListHostels(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve hostels"})
		return
	}
	c.JSON(http.StatusOK, hostels)
}

type createHostelRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

// CreateHostel adds a hostel building.
func (h *Handler) CreateHostel(c *gin.Context) {
	var req createHostelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hostel := model.Hostel{Name: req.Name, Location: req.Location}
	if err := h.store.CreateHostel(c.Request.Context(), &hostel); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create hostel"})
		return
	}
	c.JSON(http.StatusCreated, hostel)
}

type createRoomRequest struct {
	Number   string `json:"number" binding:"required"`
	Type     string `json:"type"`
	HostelID uint   `json:"hostelId" binding:"required"`
}

// CreateRoom adds a room to a hostel.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var hostel model.Hostel
	if err := h.store.DB().First(&hostel, req.HostelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hostel not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up hostel"})
		return
	}

	room := model.Room{Number: req.Number, Type: req.Type, HostelID: req.HostelID}
	if err := h.store.CreateRoom(c.Request.Context(), &room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}
	c.JSON(http.StatusCreated, room)
}

type assignRoomRequest struct {
	GuestID uint   `json:"guestId" binding:"required"`
	RoomID  uint   `json:"roomId" binding:"required"`
	CheckIn string `json:"checkIn" binding:"required"`
}

// AssignRoom opens a stay for a guest in a room.
func (h *Handler) AssignRoom(c *gin.Context) {
	var req assignRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkIn, err := parseTimeParam(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var guest model.Guest
	if err := h.store.DB().First(&guest, req.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up guest"})
		return
	}
	var room model.Room
	if err := h.store.DB().First(&room, req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up room"})
		return
	}

	stay, err := h.store.AssignRoom(c.Request.Context(), req.GuestID, req.RoomID, checkIn)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign room"})
		return
	}
	c.JSON(http.StatusCreated, stay)
}

type checkoutRequest struct {
	GuestID  uint   `json:"guestId" binding:"required"`
	RoomID   uint   `json:"roomId" binding:"required"`
	CheckOut string `json:"checkOut" binding:"required"`
}

// Checkout closes the guest's open stay in the room.
func (h *Handler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkOut, err := parseTimeParam(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Checkout(c.Request.Context(), req.GuestID, req.RoomID, checkOut); err != nil {
		if errors.Is(err, store.ErrNoOpenStay) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No open stay for guest in room"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Checked out"})
}
