package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hostel-feedback-backend/internal/model"
)

// mockSender records sent notifications and answers with a fixed status.
type mockSender struct {
	mu       sync.Mutex
	status   int
	payloads []string
	targets  []string
	sent     chan struct{}
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	m.mu.Lock()
	m.payloads = append(m.payloads, string(payload))
	m.targets = append(m.targets, sub.Endpoint)
	m.mu.Unlock()
	m.sent <- struct{}{}
	return &http.Response{
		StatusCode: m.status,
		Body:       io.NopCloser(bytes.NewReader(nil)),
	}, nil
}

func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:notif_%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.Feedback{}, &model.PushSubscription{}))
	return db
}

func TestWorkerPool_Dispatch(t *testing.T) {
	db := newTestDB(t, "dispatch")
	wp := NewWorkerPool(1, db, &webpush.Options{})

	wp.Dispatch(123)

	select {
	case job := <-wp.Jobs():
		assert.Equal(t, uint(123), job)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_NotifiesAllSubscriptions(t *testing.T) {
	db := newTestDB(t, "notify_all")

	fb := model.Feedback{
		Username:       "alice",
		SubmittedAt:    time.Now(),
		HostelRating:   "B",
		MessType:       "Veg",
		MessRating:     "A",
		BathroomRating: "C",
	}
	require.NoError(t, db.Create(&fb).Error)
	require.NoError(t, db.Create(&model.PushSubscription{Endpoint: "https://push.example/1", P256DH: "k1", Auth: "a1"}).Error)
	require.NoError(t, db.Create(&model.PushSubscription{Endpoint: "https://push.example/2", P256DH: "k2", Auth: "a2"}).Error)

	sender := &mockSender{status: http.StatusCreated, sent: make(chan struct{}, 4)}
	wp := NewWorkerPool(1, db, &webpush.Options{})
	wp.SetSender(sender)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch(fb.ID)

	for i := 0; i < 2; i++ {
		select {
		case <-sender.sent:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for notifications")
		}
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Len(t, sender.targets, 2)
	assert.ElementsMatch(t, []string{"https://push.example/1", "https://push.example/2"}, sender.targets)
	assert.Contains(t, sender.payloads[0], "alice")
	assert.Contains(t, sender.payloads[0], "hostel B")
}

func TestWorkerPool_DeletesExpiredSubscription(t *testing.T) {
	db := newTestDB(t, "expired")

	fb := model.Feedback{
		Username:       "alice",
		SubmittedAt:    time.Now(),
		HostelRating:   "A",
		MessType:       "Veg",
		MessRating:     "A",
		BathroomRating: "A",
	}
	require.NoError(t, db.Create(&fb).Error)
	require.NoError(t, db.Create(&model.PushSubscription{Endpoint: "https://push.example/stale", P256DH: "k", Auth: "a"}).Error)

	sender := &mockSender{status: http.StatusGone, sent: make(chan struct{}, 1)}
	wp := NewWorkerPool(1, db, &webpush.Options{})
	wp.SetSender(sender)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch(fb.ID)

	select {
	case <-sender.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
	}

	// The 410 response removes the subscription; poll briefly since the
	// delete happens after Send returns.
	assert.Eventually(t, func() bool {
		var count int64
		db.Model(&model.PushSubscription{}).Count(&count)
		return count == 0
	}, 2*time.Second, 50*time.Millisecond)
}
