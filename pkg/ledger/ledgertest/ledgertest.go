// Package ledgertest provides an in-memory ledger.Transport for tests.
package ledgertest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/ledger"
)

// Call records one SubmitSelfPayment invocation.
type Call struct {
	Payment     ledger.SelfPayment
	Credentials ledger.Credentials
}

// Transport records calls and answers with Err or a deterministic
// confirmation derived from the memo data.
type Transport struct {
	Err error
	// Respond overrides the default behaviour when set.
	Respond func(ctx context.Context, payment ledger.SelfPayment, credentials ledger.Credentials) (ledger.Confirmation, error)

	mu    sync.Mutex
	calls []Call
}

func New() *Transport {
	return &Transport{}
}

func (t *Transport) SubmitSelfPayment(ctx context.Context, payment ledger.SelfPayment, credentials ledger.Credentials) (ledger.Confirmation, error) {
	memo := make([]byte, len(payment.MemoData))
	copy(memo, payment.MemoData)
	payment.MemoData = memo

	t.mu.Lock()
	t.calls = append(t.calls, Call{Payment: payment, Credentials: credentials})
	respond := t.Respond
	failure := t.Err
	t.mu.Unlock()

	if respond != nil {
		return respond(ctx, payment, credentials)
	}
	if failure != nil {
		return ledger.Confirmation{}, failure
	}
	if err := ctx.Err(); err != nil {
		return ledger.Confirmation{}, err
	}
	return ledger.Confirmation{ID: ConfirmationID(payment.MemoData), Ledger: "fake"}, nil
}

// Calls returns a snapshot of recorded invocations.
func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	copied := make([]Call, len(t.calls))
	copy(copied, t.calls)
	return copied
}

func (t *Transport) CallCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.calls)
}

// ConfirmationID is the id the fake returns for memo data.
func ConfirmationID(memoData []byte) string {
	sum := sha256.Sum256(memoData)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
