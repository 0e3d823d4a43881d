package commitment

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/canonical"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/digest"
)

// Build assembles a payload for hash, stamped with the clock's current UTC
// time.
func Build(hash digest.Digest, event string, clock Clock) (Payload, error) {
	if clock == nil {
		return Payload{}, &ValidationError{
			Code:    ErrorCodeMissingClock,
			Message: "clock is required",
		}
	}

	payload := Payload{
		Hash:      hash.Hex(),
		Event:     strings.TrimSpace(event),
		Timestamp: FormatTimestamp(clock.Now()),
		Version:   Version,
	}
	if err := ValidatePayload(payload); err != nil {
		return Payload{}, err
	}
	return payload, nil
}

// FormatTimestamp renders an instant in the payload's timestamp layout.
func FormatTimestamp(instant time.Time) string {
	return instant.UTC().Format(TimestampLayout)
}

// Value returns the payload as a canonical mapping.
func (p Payload) Value() canonical.Value {
	return canonical.Mapping(map[string]canonical.Value{
		"hash":  canonical.String(p.Hash),
		"event": canonical.String(p.Event),
		"ts":    canonical.String(p.Timestamp),
		"v":     canonical.String(p.Version),
	})
}

// Bytes returns the canonical memo bytes.
func (p Payload) Bytes() ([]byte, error) {
	encoded, err := canonical.Encode(p.Value())
	if err != nil {
		return nil, fmt.Errorf("failed to encode commitment payload: %w", err)
	}
	return encoded, nil
}

// Digest hashes the canonical memo bytes.
func (p Payload) Digest() (digest.Digest, error) {
	encoded, err := p.Bytes()
	if err != nil {
		return digest.Digest{}, err
	}
	return digest.Sum(encoded), nil
}

// Root parses the hash field back into a digest.
func (p Payload) Root() (digest.Digest, error) {
	return digest.Parse(p.Hash)
}
