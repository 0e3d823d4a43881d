package anchor

import (
	"errors"
	"time"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/commitment"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/digest"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/ledger"
	"go.uber.org/zap"
)

type Mode string

const (
	ModeDryRun Mode = "dry_run"
	ModeLive   Mode = "live"
)

const (
	OutcomeDryRun    = "dry_run"
	OutcomeConfirmed = "confirmed"
	OutcomeInvalid   = "invalid"
)

// ErrNoTransport is returned for live submissions on a Submitter built
// without a transport.
var ErrNoTransport = errors.New("live submission requires a ledger transport")

// ErrNotSubmitted marks a batch entry that never reached the transport, for
// example because its context ended while waiting on the rate limiter. Such
// entries are safe to submit again.
var ErrNotSubmitted = errors.New("payload was not submitted")

// Recorder observes submission outcomes. internal/metrics provides a
// prometheus implementation.
type Recorder interface {
	ObserveSubmission(mode Mode, outcome string, duration time.Duration)
}

type Config struct {
	Transport ledger.Transport
	// Amount is the self-payment amount in the ledger's smallest unit.
	Amount   string
	MemoType string
	Logger   *zap.Logger
	Recorder Recorder
}

// DryRunResult is everything a live submission would have written.
type DryRunResult struct {
	Payload       commitment.Payload
	MemoType      string
	MemoData      []byte
	Hash          string
	PayloadDigest digest.Digest
}

type Receipt struct {
	Mode           Mode
	DryRun         *DryRunResult
	ConfirmationID string
	Confirmation   ledger.Confirmation
}

// IsDryRun reports whether the receipt came from a dry run.
func (r Receipt) IsDryRun() bool {
	return r.Mode == ModeDryRun
}
