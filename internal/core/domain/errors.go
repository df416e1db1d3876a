package domain

import (
	"errors"
	"fmt"
	"time"
)

// TransientError is a retryable network or transport failure.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transient failure: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transient failure: %s", e.Op)
}

func (e *TransientError) Unwrap() error { return e.Err }

// TimeoutError is an attempt that exceeded its time bound. It is counted
// identically to a transient failure.
type TimeoutError struct {
	Op      string
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout after %v: %s", e.Elapsed, e.Op)
}

// TerminalAssetError is raised only after retries are exhausted and the
// caller disabled fallback resolution.
type TerminalAssetError struct {
	ResourceID string
	Attempts   int
	Err        error
}

func (e *TerminalAssetError) Error() string {
	return fmt.Sprintf("asset %s failed after %d attempts: %v", e.ResourceID, e.Attempts, e.Err)
}

func (e *TerminalAssetError) Unwrap() error { return e.Err }

// DataParseError is a malformed structured payload. It is never retried;
// the data-fallback chain takes over directly.
type DataParseError struct {
	Source string
	Err    error
}

func (e *DataParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *DataParseError) Unwrap() error { return e.Err }

// Retryable reports whether an error is worth another attempt.
func Retryable(err error) bool {
	var transient *TransientError
	var timeout *TimeoutError
	return errors.As(err, &transient) || errors.As(err, &timeout)
}
