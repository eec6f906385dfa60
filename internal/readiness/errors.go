package readiness

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnparseable means nothing usable could be recovered from a response.
	ErrUnparseable    = errors.New("response contained no recoverable report content")
	ErrReportNotFound = errors.New("report not found")
	ErrNoGenerator    = errors.New("text service credential not configured")
)

// RequestError is the only error surfaced to end users.
type RequestError struct {
	Missing []string
}

func (e *RequestError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// ExternalServiceError wraps a failed or timed-out text-service call.
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e *ExternalServiceError) Error() string { return fmt.Sprintf("%s: text service: %v", e.Op, e.Err) }
func (e *ExternalServiceError) Unwrap() error { return e.Err }

// ParseError means free text did not yield a usable document.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse: %s: %v", e.Reason, e.Err)
	}
	return "parse: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError lists required report sections that are absent or empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "report missing fields: " + strings.Join(e.Missing, ", ")
}

// PersistenceError is returned after the durable write retries are exhausted.
type PersistenceError struct {
	Attempts int
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist report after %d attempts: %v", e.Attempts, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// stageNameFromError names the stage a pipeline failure came from; failures
// outside any stage, such as a recovered panic, report "pipeline".
func stageNameFromError(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return "pipeline"
}
