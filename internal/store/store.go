package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hostel-feedback-backend/internal/model"
)

// ErrUsernameTaken is returned when registering a username that already
// exists. The store is left unchanged.
var ErrUsernameTaken = errors.New("username already exists")

// ErrNoOpenStay is returned by Checkout when the guest has no open stay in
// the given room.
var ErrNoOpenStay = errors.New("no open stay for guest in room")

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	RegisterUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	TouchLastLogin(ctx context.Context, username string, at time.Time) error
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, username string) error

	CreateFeedback(ctx context.Context, fb *model.Feedback) error
	ListFeedback(ctx context.Context, filter FeedbackFilter) ([]model.Feedback, error)
	RecentFeedback(ctx context.Context, limit int) ([]model.Feedback, error)
	RatingDistribution(ctx context.Context, category RatingCategory) ([]RatingCount, error)
	Stats(ctx context.Context) (*DashboardStats, error)

	AppendAdminLog(ctx context.Context, action, details string) error
	ListAdminLogs(ctx context.Context) ([]model.AdminLog, error)
	ClearAdminLogs(ctx context.Context) error

	CreateHostel(ctx context.Context, h *model.Hostel) error
	ListHostels(ctx context.Context) ([]model.Hostel, error)
	CreateRoom(ctx context.Context, r *model.Room) error
	GetGuestByUsername(ctx context.Context, username string) (*model.Guest, error)
	AssignRoom(ctx context.Context, guestID, roomID uint, checkIn time.Time) (*model.Stay, error)
	Checkout(ctx context.Context, guestID, roomID uint, checkOut time.Time) error

	CreatePasswordReset(ctx context.Context, reset *model.PasswordReset) error
	ConsumePasswordReset(ctx context.Context, token, passwordHash string) (string, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for callers that need raw access.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// RegisterUser inserts a new user and its linked guest record in one
// transaction. The uniqueness check and both inserts either all happen or
// none do.
func (s *gormStore) RegisterUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		guest := model.Guest{
			Name:   user.Name,
			Email:  user.Email,
			UserID: user.ID,
		}
		if err := tx.Create(&guest).Error; err != nil {
			return fmt.Errorf("failed to create guest: %w", err)
		}
		return nil
	})
}

func (s *gormStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// TouchLastLogin records a successful login time.
func (s *gormStore) TouchLastLogin(ctx context.Context, username string, at time.Time) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Update("last_login", at).Error
}

func (s *gormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes the user row. Feedback, guest and stay rows go with it
// via the schema-level cascades.
func (s *gormStore) DeleteUser(ctx context.Context, username string) error {
	res := s.db.WithContext(ctx).Where("username = ?", username).Delete(&model.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *gormStore) CreateFeedback(ctx context.Context, fb *model.Feedback) error {
	return s.db.WithContext(ctx).Create(fb).Error
}

// ListFeedback returns feedback rows matching the filter, newest first.
func (s *gormStore) ListFeedback(ctx context.Context, filter FeedbackFilter) ([]model.Feedback, error) {
	q := s.db.WithContext(ctx).Model(&model.Feedback{})

	if filter.Username != "" {
		q = q.Where("username = ?", filter.Username)
	}
	if filter.From != nil {
		q = q.Where("submitted_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("submitted_at <= ?", *filter.To)
	}
	if filter.MessType != "" {
		q = q.Where("mess_type = ?", filter.MessType)
	}
	if filter.Rating != "" {
		category := filter.RatingCategory
		if category == "" {
			category = CategoryHostel
		}
		column, ok := ratingColumns[category]
		if !ok {
			return nil, fmt.Errorf("unknown rating category %q", category)
		}
		q = q.Where(column+" = ?", filter.Rating)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		if filter.SearchIn != "" {
			column, ok := searchColumns[filter.SearchIn]
			if !ok {
				return nil, fmt.Errorf("unknown search field %q", filter.SearchIn)
			}
			q = q.Where(column+" LIKE ?", pattern)
		} else {
			q = q.Where(
				"hostel_comment LIKE ? OR mess_comment LIKE ? OR bathroom_comment LIKE ? OR other_comments LIKE ?",
				pattern, pattern, pattern, pattern,
			)
		}
	}

	var rows []model.Feedback
	if err := q.Order("submitted_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormStore) RecentFeedback(ctx context.Context, limit int) ([]model.Feedback, error) {
	var rows []model.Feedback
	if err := s.db.WithContext(ctx).Order("submitted_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// RatingDistribution counts feedback rows grouped by grade for one rated
// category. Grades with no rows are filled in with zero counts so the caller
// always sees the full A-E range.
func (s *gormStore) RatingDistribution(ctx context.Context, category RatingCategory) ([]RatingCount, error) {
	column, ok := ratingColumns[category]
	if !ok {
		return nil, fmt.Errorf("unknown rating category %q", category)
	}

	var rows []RatingCount
	if err := s.db.WithContext(ctx).Model(&model.Feedback{}).
		Select(column + " AS grade, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Grade] = r.Count
	}
	out := make([]RatingCount, 0, len(RatingGrades))
	for _, grade := range RatingGrades {
		out = append(out, RatingCount{Grade: grade, Count: counts[grade]})
	}
	return out, nil
}

func (s *gormStore) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := s.db.WithContext(ctx).Model(&model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&model.Feedback{}).Count(&stats.TotalFeedback).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *gormStore) AppendAdminLog(ctx context.Context, action, details string) error {
	entry := model.AdminLog{
		Timestamp: time.Now(),
		Action:    action,
		Details:   details,
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}

func (s *gormStore) ListAdminLogs(ctx context.Context) ([]model.AdminLog, error) {
	var logs []model.AdminLog
	if err := s.db.WithContext(ctx).Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *gormStore) ClearAdminLogs(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec("DELETE FROM admin_logs").Error
}

func (s *gormStore) CreateHostel(ctx context.Context, h *model.Hostel) error {
	return s.db.WithContext(ctx).Create(h).Error
}

func (s *gormStore) ListHostels(ctx context.Context) ([]model.Hostel, error) {
	var hostels []model.Hostel
	if err := s.db.WithContext(ctx).Preload("Rooms").Order("name").Find(&hostels).Error; err != nil {
		return nil, err
	}
	return hostels, nil
}

func (s *gormStore) CreateRoom(ctx context.Context, r *model.Room) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *gormStore) GetGuestByUsername(ctx context.Context, username string) (*model.Guest, error) {
	var guest model.Guest
	err := s.db.WithContext(ctx).
		Joins("JOIN users ON users.id = guests.user_id").
		Where("users.username = ?", username).
		First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// AssignRoom opens a stay linking the guest to the room. Nothing prevents a
// guest from holding more than one open stay; that mirrors the operations
// this system defines, which never check for an existing assignment.
func (s *gormStore) AssignRoom(ctx context.Context, guestID, roomID uint, checkIn time.Time) (*model.Stay, error) {
	stay := model.Stay{
		GuestID: guestID,
		RoomID:  roomID,
		CheckIn: checkIn,
	}
	if err := s.db.WithContext(ctx).Create(&stay).Error; err != nil {
		return nil, err
	}
	return &stay, nil
}

// Checkout closes the guest's open stay in the given room. Closed stays are
// never reopened.
func (s *gormStore) Checkout(ctx context.Context, guestID, roomID uint, checkOut time.Time) error {
	res := s.db.WithContext(ctx).Model(&model.Stay{}).
		Where("guest_id = ? AND room_id = ? AND check_out IS NULL", guestID, roomID).
		Update("check_out", checkOut)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoOpenStay
	}
	return nil
}

func (s *gormStore) CreatePasswordReset(ctx context.Context, reset *model.PasswordReset) error {
	return s.db.WithContext(ctx).Create(reset).Error
}

// ConsumePasswordReset marks the token used and updates the user's password
// hash in one transaction. It returns the username the token belonged to.
func (s *gormStore) ConsumePasswordReset(ctx context.Context, token, passwordHash string) (string, error) {
	var username string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reset model.PasswordReset
		if err := tx.Where("token = ? AND used_at IS NULL AND expires_at > ?", token, time.Now()).
			First(&reset).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&reset).Update("used_at", now).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.User{}).
			Where("username = ?", reset.Username).
			Update("password_hash", passwordHash).Error; err != nil {
			return err
		}
		username = reset.Username
		return nil
	})
	if err != nil {
		return "", err
	}
	return username, nil
}
