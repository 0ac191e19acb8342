package apperr

import "fmt"

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// FetchError reports that a page could not be retrieved. Detail carries the
// fetcher's own description of the failure.
type FetchError struct {
	URL    string
	Detail string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.URL, e.Detail)
}

func NewFetch(url, detail string) *FetchError {
	return &FetchError{URL: url, Detail: detail}
}

// SummarizationError wraps a failed model invocation for one summary window.
type SummarizationError struct {
	Window int
	Err    error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarization failed at window %d: %v", e.Window, e.Err)
}

func (e *SummarizationError) Unwrap() error {
	return e.Err
}

func NewSummarization(window int, err error) *SummarizationError {
	return &SummarizationError{Window: window, Err: err}
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError is returned when a save loses a race against a concurrent
// update of the same record.
type ConflictError struct {
	ID      string
	Version int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("document %s was modified concurrently (expected version %d)", e.ID, e.Version)
}

func NewConflict(id string, version int64) *ConflictError {
	return &ConflictError{ID: id, Version: version}
}
