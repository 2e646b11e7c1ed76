package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostel-feedback-backend/internal/auth"
	"hostel-feedback-backend/internal/model"
	"hostel-feedback-backend/internal/mw"
	"hostel-feedback-backend/internal/store"
)

type registerRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	RegNo           string `json:"regNo" binding:"required"`
	RoomNo          string `json:"roomNo" binding:"required"`
}

// Register creates a student account and its linked guest record.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user := model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Email:        req.Email,
		RegNo:        req.RegNo,
		RoomNo:       req.RoomNo,
	}
	if err := h.store.RegisterUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful", "user": user})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a student. Unknown username and wrong password answer
// identically so accounts cannot be enumerated.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := h.store.TouchLastLogin(c.Request.Context(), user.Username, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	token, err := h.tokens.Issue(user.Username, auth.RoleStudent)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// AdminLogin authenticates against the configured out-of-band credential
// pair; admins are not Users rows.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Username != h.cfg.Admin.Username || !auth.VerifyPassword(h.cfg.Admin.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := h.store.AppendAdminLog(c.Request.Context(), "ADMIN_LOGIN", ""); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	token, err := h.tokens.Issue(req.Username, auth.RoleAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout ends the session client-side. Admin logouts are audited; student
// logouts are not loggable actions.
func (h *Handler) Logout(c *gin.Context) {
	if c.GetString(mw.CtxRole) == auth.RoleAdmin {
		if err := h.store.AppendAdminLog(c.Request.Context(), "ADMIN_LOGOUT", ""); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
			return
		}
	}
	c.Status(http.StatusNoContent)
}

type resetRequestBody struct {
	Username string `json:"username" binding:"required"`
}

// RequestPasswordReset issues a one-time token and mails it to the account's
// address. The response does not reveal whether the account exists.
func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req resetRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err == nil {
		reset := model.PasswordReset{
			Username:  user.Username,
			Token:     uuid.NewString(),
			ExpiresAt: time.Now().Add(time.Hour),
		}
		if err := h.store.CreatePasswordReset(c.Request.Context(), &reset); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reset token"})
			return
		}
		if h.mailer != nil {
			if err := h.mailer.SendPasswordReset(user.Email, user.Username, reset.Token); err != nil {
				log.Printf("Failed to send reset mail for %s: %v", user.Username, err)
			}
		}
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "If the account exists, a reset token has been sent"})
}

type resetConfirmBody struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// ConfirmPasswordReset consumes a reset token and stores the new password.
func (h *Handler) ConfirmPasswordReset(c *gin.Context) {
	var req resetConfirmBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	if _, err := h.store.ConsumePasswordReset(c.Request.Context(), req.Token, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Password reset failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
