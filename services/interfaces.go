// Package services defines the query API surface the HTTP layer consumes,
// and the result types it returns. The serving engine implements Searcher;
// handlers depend only on this interface.
package services

// RankedResult is a single scored document in a search response. Derived at
// query time, never persisted.
type RankedResult struct {
	DocumentID  string  `json:"document_id"`
	Occurrences int     `json:"occurrences"`
	Authority   float64 `json:"authority"`
	Score       float64 `json:"score"`
}

// SearchResult is the response to a single-term search.
type SearchResult struct {
	Query   string         `json:"query"`
	Ranking string         `json:"ranking"`
	Results []RankedResult `json:"results"`
	Count   int            `json:"count"`
	QueryID string         `json:"query_id"`
	TookMs  int64          `json:"took_ms"`
}

// AdvancedSearchResult is the response to a pattern search. MatchingTerms is
// a capped preview; TermCount is the full number of vocabulary matches.
type AdvancedSearchResult struct {
	Pattern       string         `json:"pattern"`
	Ranking       string         `json:"ranking"`
	MatchingTerms []string       `json:"matching_terms"`
	TermCount     int            `json:"term_count"`
	Results       []RankedResult `json:"results"`
	Count         int            `json:"count"`
	QueryID       string         `json:"query_id"`
	TookMs        int64          `json:"took_ms"`
}

// Suggestion is one graph-neighbor recommendation: a document adjacent to a
// top-ranked result, reported with its authority score and its edge weight to
// the highest-ranked top document it neighbors.
type Suggestion struct {
	DocumentID  string  `json:"document_id"`
	Authority   float64 `json:"authority"`
	Similarity  float64 `json:"similarity"`
	ReferenceID string  `json:"reference_id"`
}

// SuggestionsResult is the response to a suggestions query.
type SuggestionsResult struct {
	Query       string         `json:"query"`
	TopResults  []RankedResult `json:"top_results"`
	Suggestions []Suggestion   `json:"suggestions"`
	Count       int            `json:"count"`
}

// DocumentInfo describes one document's standing in the graph.
type DocumentInfo struct {
	DocumentID string  `json:"document_id"`
	Authority  float64 `json:"authority"`
	Degree     int     `json:"graph_degree"`
	InGraph    bool    `json:"in_graph"`
}

// DocumentScore pairs a document with its authority score for stats listings.
type DocumentScore struct {
	DocumentID string  `json:"document_id"`
	Authority  float64 `json:"authority"`
}

// HealthInfo is the health-check payload.
type HealthInfo struct {
	Status         string `json:"status"`
	Documents      int    `json:"documents"`
	VocabularySize int    `json:"vocabulary_size"`
	GraphNodes     int    `json:"graph_nodes"`
	GraphEdges     int    `json:"graph_edges"`
}

// StatsInfo is the global statistics payload.
type StatsInfo struct {
	Documents           int             `json:"documents"`
	SkippedDocuments    int             `json:"skipped_documents"`
	VocabularySize      int             `json:"vocabulary_size"`
	GraphNodes          int             `json:"graph_nodes"`
	GraphEdges          int             `json:"graph_edges"`
	GraphDensity        float64         `json:"graph_density"`
	TopAuthority        []DocumentScore `json:"top_authority"`
	AuthorityIterations int             `json:"authority_iterations"`
	AuthorityConverged  bool            `json:"authority_converged"`
}

// Searcher is the query surface served over HTTP. All operations read the
// immutable artifact snapshot; none mutates shared state.
type Searcher interface {
	Health() HealthInfo
	Search(term, mode string) (SearchResult, error)
	AdvancedSearch(pattern, mode string) (AdvancedSearchResult, error)
	Suggestions(term string, topN int) (SuggestionsResult, error)
	DocumentInfo(id string) (DocumentInfo, error)
	Stats() StatsInfo
}
