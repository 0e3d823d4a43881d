package commitment

type ErrorCode string

const (
	ErrorCodeInvalidHash      ErrorCode = "invalid_hash"
	ErrorCodeInvalidEvent     ErrorCode = "invalid_event"
	ErrorCodeInvalidTimestamp ErrorCode = "invalid_timestamp"
	ErrorCodeInvalidVersion   ErrorCode = "invalid_version"
	ErrorCodeInvalidPayload   ErrorCode = "invalid_payload"
	ErrorCodeMissingClock     ErrorCode = "missing_clock"
)

type ValidationError struct {
	Code    ErrorCode
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
