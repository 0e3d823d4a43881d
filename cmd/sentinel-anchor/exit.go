package main

import (
	"errors"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/ledger"
)

const (
	exitOK          = 0
	exitInput       = 1
	exitUnavailable = 2
	exitRejected    = 3
	exitTimeout     = 4
)

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	kind, ok := ledger.KindOf(err)
	if !ok {
		return exitInput
	}
	switch kind {
	case ledger.KindTransportUnavailable:
		return exitUnavailable
	case ledger.KindSubmissionRejected:
		return exitRejected
	case ledger.KindTimeout:
		return exitTimeout
	default:
		return exitInput
	}
}

func failureLabel(err error) string {
	if kind, ok := ledger.KindOf(err); ok {
		return string(kind)
	}
	var usage *usageError
	if errors.As(err, &usage) {
		return "Usage"
	}
	return "Input"
}

type usageError struct {
	message string
}

func (e *usageError) Error() string {
	return e.message
}
