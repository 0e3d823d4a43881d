package commitment

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var hashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// ValidatePayload returns the first problem found in payload.
func ValidatePayload(payload Payload) error {
	if !hashPattern.MatchString(payload.Hash) {
		return &ValidationError{
			Code:    ErrorCodeInvalidHash,
			Message: "hash must be 64 lowercase hex characters",
		}
	}
	if strings.TrimSpace(payload.Event) == "" {
		return &ValidationError{
			Code:    ErrorCodeInvalidEvent,
			Message: "event is required",
		}
	}
	if payload.Event != strings.TrimSpace(payload.Event) {
		return &ValidationError{
			Code:    ErrorCodeInvalidEvent,
			Message: "event must not carry leading or trailing whitespace",
		}
	}
	if len(payload.Event) > MaxEventBytes {
		return &ValidationError{
			Code:    ErrorCodeInvalidEvent,
			Message: fmt.Sprintf("event exceeds %d bytes (%d)", MaxEventBytes, len(payload.Event)),
		}
	}
	if !utf8.ValidString(payload.Event) {
		return &ValidationError{
			Code:    ErrorCodeInvalidEvent,
			Message: "event must be valid UTF-8",
		}
	}
	if _, err := time.Parse(TimestampLayout, payload.Timestamp); err != nil {
		return &ValidationError{
			Code:    ErrorCodeInvalidTimestamp,
			Message: fmt.Sprintf("ts must match %s", TimestampLayout),
		}
	}
	if payload.Version != Version {
		return &ValidationError{
			Code:    ErrorCodeInvalidVersion,
			Message: fmt.Sprintf("unsupported payload version %q", payload.Version),
		}
	}
	return nil
}

// Validate lists every problem found in payload.
func Validate(payload Payload) []string {
	errors := make([]string, 0)
	if !hashPattern.MatchString(payload.Hash) {
		errors = append(errors, "hash must be 64 lowercase hex characters")
	}
	event := strings.TrimSpace(payload.Event)
	if event == "" {
		errors = append(errors, "event is required")
	} else if event != payload.Event {
		errors = append(errors, "event must not carry leading or trailing whitespace")
	}
	if len(payload.Event) > MaxEventBytes {
		errors = append(errors, fmt.Sprintf("event exceeds %d bytes", MaxEventBytes))
	}
	if !utf8.ValidString(payload.Event) {
		errors = append(errors, "event must be valid UTF-8")
	}
	if _, err := time.Parse(TimestampLayout, payload.Timestamp); err != nil {
		errors = append(errors, fmt.Sprintf("ts must match %s", TimestampLayout))
	}
	if payload.Version != Version {
		errors = append(errors, fmt.Sprintf("v must be %s", Version))
	}
	return errors
}
