package search

import (
	"testing"

	"github.com/gutensearch/gutensearch/graph"
	"github.com/gutensearch/gutensearch/internal/authority"
	"github.com/gutensearch/gutensearch/services"
)

func suggestTestGraph() *graph.Graph {
	g := graph.New([]string{"a", "b", "c", "d", "e", "f"})
	g.AddEdge("a", "c", 0.5)
	g.AddEdge("a", "d", 0.4)
	g.AddEdge("b", "d", 0.7)
	g.AddEdge("b", "e", 0.2)
	g.AddEdge("a", "b", 0.3)
	return g
}

func ranked(ids ...string) []services.RankedResult {
	results := make([]services.RankedResult, len(ids))
	for i, id := range ids {
		results[i] = services.RankedResult{DocumentID: id}
	}
	return results
}

func TestSuggestExcludesTopDocuments(t *testing.T) {
	scores := authority.Scores{"c": 0.3, "d": 0.2, "e": 0.1}
	s := NewSuggester(suggestTestGraph(), scores)

	suggestions := s.Suggest(ranked("a", "b"), 10)
	for _, sg := range suggestions {
		if sg.DocumentID == "a" || sg.DocumentID == "b" {
			t.Errorf("top document %s must not be suggested", sg.DocumentID)
		}
	}
	if len(suggestions) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(suggestions))
	}
}

func TestSuggestOrderedByAuthority(t *testing.T) {
	scores := authority.Scores{"c": 0.1, "d": 0.5, "e": 0.3}
	s := NewSuggester(suggestTestGraph(), scores)

	suggestions := s.Suggest(ranked("a", "b"), 10)
	want := []string{"d", "e", "c"}
	for i, id := range want {
		if suggestions[i].DocumentID != id {
			t.Errorf("suggestions[%d] = %s, want %s", i, suggestions[i].DocumentID, id)
		}
	}
}

func TestSuggestReferenceIsHighestRankedNeighbor(t *testing.T) {
	// d neighbors both a and b; a is ranked first, so it is the reference and
	// the reported similarity is the a-d edge weight.
	scores := authority.Scores{"c": 0.1, "d": 0.5, "e": 0.3}
	s := NewSuggester(suggestTestGraph(), scores)

	suggestions := s.Suggest(ranked("a", "b"), 10)
	for _, sg := range suggestions {
		if sg.DocumentID != "d" {
			continue
		}
		if sg.ReferenceID != "a" {
			t.Errorf("ReferenceID = %s, want a", sg.ReferenceID)
		}
		if sg.Similarity != 0.4 {
			t.Errorf("Similarity = %g, want 0.4", sg.Similarity)
		}
		return
	}
	t.Fatal("d missing from suggestions")
}

func TestSuggestTopNCap(t *testing.T) {
	scores := authority.Scores{"c": 0.3, "d": 0.2, "e": 0.1}
	s := NewSuggester(suggestTestGraph(), scores)

	suggestions := s.Suggest(ranked("a", "b"), 2)
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(suggestions))
	}
	if suggestions[0].DocumentID != "c" || suggestions[1].DocumentID != "d" {
		t.Errorf("capped suggestions = %s, %s; want c, d", suggestions[0].DocumentID, suggestions[1].DocumentID)
	}
}

func TestSuggestAuthorityTieBreaksByID(t *testing.T) {
	scores := authority.Scores{"c": 0.2, "d": 0.2, "e": 0.2}
	s := NewSuggester(suggestTestGraph(), scores)

	suggestions := s.Suggest(ranked("a", "b"), 10)
	want := []string{"c", "d", "e"}
	for i, id := range want {
		if suggestions[i].DocumentID != id {
			t.Errorf("suggestions[%d] = %s, want %s", i, suggestions[i].DocumentID, id)
		}
	}
}

func TestSuggestEmptyInputs(t *testing.T) {
	s := NewSuggester(suggestTestGraph(), authority.Scores{})

	if got := s.Suggest(nil, 5); len(got) != 0 {
		t.Errorf("no top results: got %v, want empty", got)
	}
	if got := s.Suggest(ranked("a"), 0); len(got) != 0 {
		t.Errorf("topN 0: got %v, want empty", got)
	}
}

func TestSuggestIsolatedSeed(t *testing.T) {
	s := NewSuggester(suggestTestGraph(), authority.Scores{})

	suggestions := s.Suggest(ranked("f"), 5)
	if len(suggestions) != 0 {
		t.Errorf("isolated seed should yield no suggestions, got %v", suggestions)
	}
}
