package ports

import "context"

// ChargeInput describes one payment attempt for a course enrollment.
type ChargeInput struct {
	ParentID    string
	CourseID    string
	AmountCents int
	Description string
}

// Charge is the provider's receipt for a successful payment.
type Charge struct {
	Reference   string
	AmountCents int
}

// PaymentProvider charges a parent for a paid course. Implementations must
// be safe to call concurrently; a returned error means nothing was charged.
type PaymentProvider interface {
	Charge(ctx context.Context, in ChargeInput) (Charge, error)
}
