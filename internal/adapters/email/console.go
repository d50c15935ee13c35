package email

// Package email provides EmailSender adapters. The console sender writes
// mail to the log; it exists so local and test environments never reach a
// real mail system.

import (
	"context"
	"log/slog"

	"github.com/codekids/academy-api/internal/ports"
)

// ConsoleSender logs outbound mail instead of sending it.
type ConsoleSender struct {
	logger *slog.Logger
}

// NewConsoleSender creates a console sender. A nil logger falls back to
// slog.Default.
func NewConsoleSender(logger *slog.Logger) *ConsoleSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsoleSender{logger: logger.With("component", "email")}
}

func (s *ConsoleSender) Send(ctx context.Context, m ports.Mail) error {
	s.logger.InfoContext(ctx, "outbound mail",
		"to", m.To,
		"subject", m.Subject,
		"body", m.Body,
	)
	return nil
}
