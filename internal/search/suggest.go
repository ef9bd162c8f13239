package search

import (
	"sort"

	"github.com/gutensearch/gutensearch/graph"
	"github.com/gutensearch/gutensearch/internal/authority"
	"github.com/gutensearch/gutensearch/services"
)

// Suggester recommends documents adjacent in the similarity graph to a
// query's top results.
type Suggester struct {
	g      *graph.Graph
	scores authority.Scores
}

// NewSuggester creates a Suggester over the graph and authority artifacts.
func NewSuggester(g *graph.Graph, scores authority.Scores) *Suggester {
	return &Suggester{g: g, scores: scores}
}

// Suggest collects the graph neighbors of the given top-ranked documents,
// excluding the top documents themselves, and returns up to topN of them by
// authority score descending (ties broken by document id ascending). A
// candidate adjacent to several top documents reports its edge weight to the
// highest-ranked one; topResults must already be in rank order.
func (s *Suggester) Suggest(topResults []services.RankedResult, topN int) []services.Suggestion {
	if topN <= 0 || len(topResults) == 0 {
		return []services.Suggestion{}
	}

	top := make(map[string]struct{}, len(topResults))
	for _, r := range topResults {
		top[r.DocumentID] = struct{}{}
	}

	// First adjacent top document wins: topResults is in rank order, so the
	// reference recorded for a candidate is the highest-ranked one.
	candidates := make(map[string]string)
	for _, r := range topResults {
		for _, neighbor := range s.g.Neighbors(r.DocumentID) {
			if _, isTop := top[neighbor]; isTop {
				continue
			}
			if _, seen := candidates[neighbor]; !seen {
				candidates[neighbor] = r.DocumentID
			}
		}
	}

	suggestions := make([]services.Suggestion, 0, len(candidates))
	for docID, refID := range candidates {
		suggestions = append(suggestions, services.Suggestion{
			DocumentID:  docID,
			Authority:   roundScore(s.scores[docID]),
			Similarity:  s.g.Weight(refID, docID),
			ReferenceID: refID,
		})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Authority != suggestions[j].Authority {
			return suggestions[i].Authority > suggestions[j].Authority
		}
		return suggestions[i].DocumentID < suggestions[j].DocumentID
	})
	if len(suggestions) > topN {
		suggestions = suggestions[:topN]
	}
	return suggestions
}
