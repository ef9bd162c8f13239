package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestEmptyQueryError(t *testing.T) {
	err := NewEmptyQueryError("query")
	if !errors.Is(err, ErrEmptyQuery) {
		t.Error("EmptyQueryError should match ErrEmptyQuery")
	}
	if !strings.Contains(err.Error(), "query") {
		t.Errorf("message %q should name the parameter", err.Error())
	}
}

func TestInvalidPatternError(t *testing.T) {
	cause := fmt.Errorf("missing closing ]")
	err := NewInvalidPatternError("[abc", cause)

	if !errors.Is(err, ErrInvalidPattern) {
		t.Error("InvalidPatternError should match ErrInvalidPattern")
	}
	if !errors.Is(err, cause) {
		t.Error("InvalidPatternError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "[abc") {
		t.Errorf("message %q should include the pattern", err.Error())
	}
}

func TestPatternTimeoutError(t *testing.T) {
	err := NewPatternTimeoutError(".*", 2*time.Second)
	if !errors.Is(err, ErrPatternTimeout) {
		t.Error("PatternTimeoutError should match ErrPatternTimeout")
	}
	if !strings.Contains(err.Error(), "2s") {
		t.Errorf("message %q should include the budget", err.Error())
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("moby.txt")
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}
	if !strings.Contains(err.Error(), "moby.txt") {
		t.Errorf("message %q should include the document id", err.Error())
	}
}

func TestDataIntegrityError(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := NewDataIntegrityError("broken.txt", cause)

	if !errors.Is(err, ErrDataIntegrity) {
		t.Error("DataIntegrityError should match ErrDataIntegrity")
	}
	if !errors.Is(err, cause) {
		t.Error("DataIntegrityError should unwrap to its cause")
	}
}

func TestResourceLimitError(t *testing.T) {
	err := NewResourceLimitError("huge.txt", 50000)
	if !errors.Is(err, ErrResourceLimit) {
		t.Error("ResourceLimitError should match ErrResourceLimit")
	}
	if !strings.Contains(err.Error(), "50000") {
		t.Errorf("message %q should include the limit", err.Error())
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrEmptyQuery, ErrInvalidPattern, ErrPatternTimeout,
		ErrNotFound, ErrDataIntegrity, ErrResourceLimit,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v should not match %v", a, b)
			}
		}
	}
}
