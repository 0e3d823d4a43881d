package xrpl

import "fmt"

// RequestError is an HTTP-level failure talking to rippled.
type RequestError struct {
	Method     string
	StatusCode int
	Message    string
	Cause      error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("rippled %s request failed with status %d: %s", e.Method, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("rippled %s request failed: %v", e.Method, e.Cause)
	}
	return fmt.Sprintf("rippled %s request failed: %s", e.Method, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// ResponseError is an error result returned by rippled, such as actNotFound
// or txnNotFound.
type ResponseError struct {
	Method  string
	Code    string
	Message string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("rippled %s returned %s", e.Method, e.Code)
	}
	return fmt.Sprintf("rippled %s returned %s: %s", e.Method, e.Code, e.Message)
}

// Result codes the transport treats specially.
const (
	ErrorAccountNotFound     = "actNotFound"
	ErrorTransactionNotFound = "txnNotFound"
	ErrorAccountMalformed    = "actMalformed"
	ErrorInvalidTransaction  = "invalidTransaction"
)
