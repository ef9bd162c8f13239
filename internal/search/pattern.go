package search

import (
	"regexp"
	"sort"
	"time"

	"github.com/gutensearch/gutensearch/index"
	internalErrors "github.com/gutensearch/gutensearch/internal/errors"
)

// deadlineCheckStride is how many vocabulary terms are scanned between budget
// checks.
const deadlineCheckStride = 1024

// PatternMatcher evaluates regex-like patterns against the vocabulary, never
// against raw document text, which bounds cost by vocabulary size.
type PatternMatcher struct {
	budget time.Duration
}

// NewPatternMatcher creates a matcher with the given execution budget. A
// non-positive budget disables the cutoff.
func NewPatternMatcher(budget time.Duration) *PatternMatcher {
	return &PatternMatcher{budget: budget}
}

// Match returns every vocabulary term the pattern matches, sorted
// lexicographically. The pattern is compiled case-insensitively; a pattern
// that does not compile yields InvalidPatternError, and a scan exceeding the
// budget yields PatternTimeoutError.
func (m *PatternMatcher) Match(idx *index.InvertedIndex, pattern string) ([]string, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, internalErrors.NewInvalidPatternError(pattern, err)
	}

	start := time.Now()
	matched := make([]string, 0)
	scanned := 0
	for term := range idx.Terms {
		if m.budget > 0 && scanned%deadlineCheckStride == 0 && time.Since(start) > m.budget {
			return nil, internalErrors.NewPatternTimeoutError(pattern, m.budget)
		}
		scanned++
		if re.MatchString(term) {
			matched = append(matched, term)
		}
	}
	sort.Strings(matched)
	return matched, nil
}
