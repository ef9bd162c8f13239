// Package search implements the query-time algorithms: ranking candidate
// documents, matching patterns against the vocabulary, and suggesting graph
// neighbors. Everything here reads the immutable build artifacts.
package search

import (
	"math"
	"sort"

	"github.com/gutensearch/gutensearch/index"
	"github.com/gutensearch/gutensearch/internal/authority"
	"github.com/gutensearch/gutensearch/services"
)

// Mode selects how candidate documents are scored.
type Mode string

const (
	// ModeOccurrences scores by the query term's occurrence count.
	ModeOccurrences Mode = "occurrences"
	// ModeAuthority scores by the document's authority score.
	ModeAuthority Mode = "authority"
	// ModeHybrid multiplies occurrences by an authority-derived boost.
	ModeHybrid Mode = "hybrid"
)

// ParseMode maps a ranking parameter to a Mode, falling back to the given
// default for empty or unknown values.
func ParseMode(s string, fallback Mode) Mode {
	switch Mode(s) {
	case ModeOccurrences, ModeAuthority, ModeHybrid:
		return Mode(s)
	default:
		return fallback
	}
}

// Ranker scores and orders candidate documents against the index and the
// authority scores.
type Ranker struct {
	idx    *index.InvertedIndex
	scores authority.Scores
	boost  float64
}

// NewRanker creates a Ranker. boost is the hybrid amplification constant: how
// strongly authority can lift a low-occurrence document.
func NewRanker(idx *index.InvertedIndex, scores authority.Scores, boost float64) *Ranker {
	return &Ranker{idx: idx, scores: scores, boost: boost}
}

// RankTerm ranks the documents containing a single vocabulary term. An
// unknown term yields an empty, non-nil result.
func (r *Ranker) RankTerm(term string, mode Mode) []services.RankedResult {
	return r.RankTerms([]string{term}, mode)
}

// RankTerms ranks the union of documents containing any of the given terms.
// Each candidate's occurrence count is the sum of its counts across all the
// terms; the authority score is per document, unaffected by term count.
// Results are ordered by score descending, ties broken by document id
// ascending for deterministic output.
func (r *Ranker) RankTerms(terms []string, mode Mode) []services.RankedResult {
	totals := make(map[string]int)
	for _, term := range terms {
		for docID, count := range r.idx.Lookup(term) {
			totals[docID] += count
		}
	}

	results := make([]services.RankedResult, 0, len(totals))
	for docID, occurrences := range totals {
		score := r.scores[docID] // 0 for documents without a graph entry
		results = append(results, services.RankedResult{
			DocumentID:  docID,
			Occurrences: occurrences,
			Authority:   roundScore(score),
			Score:       r.combine(occurrences, score, mode),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocumentID < results[j].DocumentID
	})
	return results
}

// combine computes the ranking score for one candidate. The hybrid score is
// monotonically non-decreasing in both occurrences and authority.
func (r *Ranker) combine(occurrences int, authorityScore float64, mode Mode) float64 {
	switch mode {
	case ModeOccurrences:
		return float64(occurrences)
	case ModeAuthority:
		return authorityScore
	default:
		return float64(occurrences) * (1 + authorityScore*r.boost)
	}
}

// roundScore trims authority scores to 6 decimals for presentation.
func roundScore(s float64) float64 {
	return math.Round(s*1e6) / 1e6
}
