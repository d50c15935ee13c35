package payment

// Package payment provides PaymentProvider adapters. The dev provider
// approves every charge and logs it; swap in a gateway-backed adapter for
// production billing.

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/codekids/academy-api/internal/ports"
)

// DevProvider approves all well-formed charges without moving money.
type DevProvider struct {
	logger *slog.Logger
}

// NewDevProvider creates a dev payment provider. A nil logger falls back to
// slog.Default.
func NewDevProvider(logger *slog.Logger) *DevProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &DevProvider{logger: logger.With("component", "payment")}
}

func (p *DevProvider) Charge(ctx context.Context, in ports.ChargeInput) (ports.Charge, error) {
	if in.AmountCents <= 0 {
		return ports.Charge{}, errors.New("charge amount must be positive")
	}
	if in.ParentID == "" {
		return ports.Charge{}, errors.New("parent ID is required")
	}

	ref := "dev-" + uuid.NewString()
	p.logger.InfoContext(ctx, "charge approved",
		"reference", ref,
		"parent_id", in.ParentID,
		"course_id", in.CourseID,
		"amount_cents", in.AmountCents,
	)
	return ports.Charge{Reference: ref, AmountCents: in.AmountCents}, nil
}
