package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"hostel-feedback-backend/config"
	"hostel-feedback-backend/internal/auth"
	"hostel-feedback-backend/internal/mailer"
	"hostel-feedback-backend/internal/notification"
	"hostel-feedback-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	cfg      *config.Config
	tokens   *auth.TokenIssuer
	mailer   mailer.Mailer
	notifier *notification.WorkerPool
	webpush  *webpush.Options
}

// NewHandler creates a new API handler. mailer and notifier may be nil, in
// which case reset mail and push alerts are skipped.
func NewHandler(s store.Store, cfg *config.Config, tokens *auth.TokenIssuer, m mailer.Mailer, notifier *notification.WorkerPool, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:    s,
		cfg:      cfg,
		tokens:   tokens,
		mailer:   m,
		notifier: notifier,
		webpush:  webpushOptions,
	}
}
