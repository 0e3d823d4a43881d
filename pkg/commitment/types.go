package commitment

import "time"

const (
	// Version tags the payload shape so verifiers can tell formats apart.
	Version = "shield-2.0"
	// MemoType identifies payloads written by this system on a ledger.
	MemoType = "sentinel/proof"
	// TimestampLayout renders UTC instants with microsecond precision.
	TimestampLayout = "2006-01-02T15:04:05.000000Z"
	// DefaultEvent labels payloads anchored without an explicit event.
	DefaultEvent  = "manual"
	MaxEventBytes = 256
)

// Payload is the memo body anchored on a ledger.
type Payload struct {
	Hash      string `json:"hash"`
	Event     string `json:"event"`
	Timestamp string `json:"ts"`
	Version   string `json:"v"`
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
