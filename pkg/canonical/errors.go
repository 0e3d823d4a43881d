package canonical

import "fmt"

// EncodingError reports a value that has no canonical representation.
type EncodingError struct {
	Path   string
	Reason string
}

func (e *EncodingError) Error() string {
	if e == nil {
		return "canonical encoding failed"
	}
	if e.Path == "" || e.Path == rootPath {
		return fmt.Sprintf("canonical encoding failed: %s", e.Reason)
	}
	return fmt.Sprintf("canonical encoding failed at %s: %s", e.Path, e.Reason)
}

func newEncodingError(path string, format string, args ...any) error {
	return &EncodingError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
