package dkg

import (
	"fmt"
)

// OperationError is reported by the node when an operation ends in FAILED state
// or the node answers with a non 2xx status.
type OperationError struct {
	Operation  string
	StatusCode int
	Type       string
	Message    string
}

func (e *OperationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Type != "" {
		return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Type)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s operation failed: node responded with status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s operation failed", e.Operation)
}

// ErrPollExhausted is returned when an operation is still pending after the
// configured number of polls.
type ErrPollExhausted struct {
	Operation   string
	OperationID string
	Attempts    int
}

func (e *ErrPollExhausted) Error() string {
	return fmt.Sprintf("%s operation %s did not complete after %d attempts", e.Operation, e.OperationID, e.Attempts)
}
