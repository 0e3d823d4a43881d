package ledger

import (
	"context"
	"time"
)

const DefaultAmountDrops = "10"

// SelfPayment is a payment from an account to itself whose purpose is the
// attached memo.
type SelfPayment struct {
	Amount   string
	MemoType string
	MemoData []byte
}

// Credentials identify the submitting account. Transports must treat them as
// read-only.
type Credentials struct {
	Account string
	Secret  string
}

// HasSecret reports whether live submission is possible.
func (c *Credentials) HasSecret() bool {
	return c != nil && c.Secret != ""
}

// Confirmation is what a ledger returns for an accepted submission.
type Confirmation struct {
	ID          string
	Ledger      string
	LedgerIndex uint64
	ValidatedAt time.Time
}

// Transport submits self payments to one ledger.
type Transport interface {
	SubmitSelfPayment(ctx context.Context, payment SelfPayment, credentials Credentials) (Confirmation, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, payment SelfPayment, credentials Credentials) (Confirmation, error)

func (f TransportFunc) SubmitSelfPayment(ctx context.Context, payment SelfPayment, credentials Credentials) (Confirmation, error) {
	return f(ctx, payment, credentials)
}
