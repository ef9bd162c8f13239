package errors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common error conditions
var (
	// ErrEmptyQuery is returned when a query term or pattern is empty
	ErrEmptyQuery = errors.New("empty query")

	// ErrInvalidPattern is returned when a search pattern does not compile
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrPatternTimeout is returned when a pattern scan exceeds its execution budget
	ErrPatternTimeout = errors.New("pattern timeout")

	// ErrNotFound is returned when a document is not known to the corpus
	ErrNotFound = errors.New("document not found")

	// ErrDataIntegrity is returned when a source document cannot be read or decoded at build time
	ErrDataIntegrity = errors.New("data integrity error")

	// ErrResourceLimit is returned when a per-document resource cap is exceeded during the build
	ErrResourceLimit = errors.New("resource limit exceeded")
)

// EmptyQueryError represents an empty query term or pattern with context
type EmptyQueryError struct {
	Param string
}

func (e *EmptyQueryError) Error() string {
	return fmt.Sprintf("parameter '%s' must not be empty", e.Param)
}

func (e *EmptyQueryError) Is(target error) bool {
	return target == ErrEmptyQuery
}

// NewEmptyQueryError creates a new EmptyQueryError
func NewEmptyQueryError(param string) *EmptyQueryError {
	return &EmptyQueryError{Param: param}
}

// InvalidPatternError represents a pattern compilation failure with context
type InvalidPatternError struct {
	Pattern string
	Cause   error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("pattern '%s' does not compile: %v", e.Pattern, e.Cause)
}

func (e *InvalidPatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Cause
}

// NewInvalidPatternError creates a new InvalidPatternError
func NewInvalidPatternError(pattern string, cause error) *InvalidPatternError {
	return &InvalidPatternError{Pattern: pattern, Cause: cause}
}

// PatternTimeoutError represents a pattern scan that exceeded its execution budget
type PatternTimeoutError struct {
	Pattern string
	Budget  time.Duration
}

func (e *PatternTimeoutError) Error() string {
	return fmt.Sprintf("pattern '%s' exceeded the %s execution budget", e.Pattern, e.Budget)
}

func (e *PatternTimeoutError) Is(target error) bool {
	return target == ErrPatternTimeout
}

// NewPatternTimeoutError creates a new PatternTimeoutError
func NewPatternTimeoutError(pattern string, budget time.Duration) *PatternTimeoutError {
	return &PatternTimeoutError{Pattern: pattern, Budget: budget}
}

// NotFoundError represents an unknown document id with context
type NotFoundError struct {
	DocumentID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document '%s' not found", e.DocumentID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(documentID string) *NotFoundError {
	return &NotFoundError{DocumentID: documentID}
}

// DataIntegrityError represents a source document that could not be read or decoded
// during the build. The builder logs it and skips the document; it is never fatal
// for the build as a whole.
type DataIntegrityError struct {
	DocumentID string
	Cause      error
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("document '%s' could not be read: %v", e.DocumentID, e.Cause)
}

func (e *DataIntegrityError) Is(target error) bool {
	return target == ErrDataIntegrity
}

func (e *DataIntegrityError) Unwrap() error {
	return e.Cause
}

// NewDataIntegrityError creates a new DataIntegrityError
func NewDataIntegrityError(documentID string, cause error) *DataIntegrityError {
	return &DataIntegrityError{DocumentID: documentID, Cause: cause}
}

// ResourceLimitError represents a per-document cap exceeded during the graph build
type ResourceLimitError struct {
	DocumentID string
	Limit      int
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("document '%s' exceeded the per-document limit of %d tokens", e.DocumentID, e.Limit)
}

func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// NewResourceLimitError creates a new ResourceLimitError
func NewResourceLimitError(documentID string, limit int) *ResourceLimitError {
	return &ResourceLimitError{DocumentID: documentID, Limit: limit}
}
