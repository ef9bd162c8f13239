// Package engine owns the serving lifecycle: it loads the build artifacts
// into an immutable snapshot, computes authority scores once per snapshot,
// and answers every query operation against that snapshot. Handlers never see
// partial state: the active snapshot is swapped atomically and in-flight
// requests keep reading the one they started with.
package engine

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/gutensearch/gutensearch/config"
	"github.com/gutensearch/gutensearch/graph"
	"github.com/gutensearch/gutensearch/index"
	"github.com/gutensearch/gutensearch/internal/authority"
	internalErrors "github.com/gutensearch/gutensearch/internal/errors"
	"github.com/gutensearch/gutensearch/internal/persistence"
	"github.com/gutensearch/gutensearch/internal/search"
	"github.com/gutensearch/gutensearch/internal/tokenizer"
	"github.com/gutensearch/gutensearch/services"
	"github.com/gutensearch/gutensearch/store"
)

const (
	invertedIndexFile   = "inverted_index.gob"
	similarityGraphFile = "similarity_graph.gob"
	documentStoreFile   = "documents.gob"
)

// Snapshot is one corpus build's immutable artifact set plus the authority
// scores derived from it. No request ever mutates a snapshot.
type Snapshot struct {
	Index           *index.InvertedIndex
	Graph           *graph.Graph
	Documents       *store.DocumentStore
	Authority       authority.Scores
	AuthorityResult authority.Result
}

// Engine implements services.Searcher over the active snapshot.
type Engine struct {
	cfg         *config.Config
	log         *logrus.Entry
	tok         *tokenizer.Tokenizer
	matcher     *search.PatternMatcher
	defaultMode search.Mode

	snapshot atomic.Pointer[Snapshot]
	queries  singleflight.Group
}

// New creates an Engine. Call Load before serving queries.
func New(cfg *config.Config, log *logrus.Entry) *Engine {
	return &Engine{
		cfg:         cfg,
		log:         log,
		tok:         tokenizer.New(cfg.Tokenizer.MinTokenLength, cfg.Tokenizer.ExtraStopwords),
		matcher:     search.NewPatternMatcher(cfg.Search.PatternBudget),
		defaultMode: search.ParseMode(cfg.Ranking.DefaultMode, search.ModeHybrid),
	}
}

// Load reads the artifact set from the data directory, computes authority
// scores, and swaps the result in as the active snapshot. In-flight requests
// against the previous snapshot are unaffected. Safe to call again to pick up
// a fresh build.
func (e *Engine) Load() error {
	dataDir := e.cfg.Storage.DataDir

	idx := index.New()
	if err := persistence.LoadGob(filepath.Join(dataDir, invertedIndexFile), idx); err != nil {
		return fmt.Errorf("loading inverted index: %w", err)
	}
	g := graph.New(nil)
	if err := persistence.LoadGob(filepath.Join(dataDir, similarityGraphFile), g); err != nil {
		return fmt.Errorf("loading similarity graph: %w", err)
	}
	ds := &store.DocumentStore{}
	if err := persistence.LoadGob(filepath.Join(dataDir, documentStoreFile), ds); err != nil {
		return fmt.Errorf("loading document list: %w", err)
	}

	opts := authority.Options{
		Damping:       e.cfg.Authority.Damping,
		Tolerance:     e.cfg.Authority.Tolerance,
		MaxIterations: e.cfg.Authority.MaxIterations,
	}
	scores, result := authority.Compute(g, opts)
	if result.Converged {
		e.log.Infof("authority scores converged after %d iterations (delta %.2e)", result.Iterations, result.Delta)
	} else {
		e.log.Infof("authority iteration stopped at the %d-iteration cap (delta %.2e)", result.Iterations, result.Delta)
	}

	e.snapshot.Store(&Snapshot{
		Index:           idx,
		Graph:           g,
		Documents:       ds,
		Authority:       scores,
		AuthorityResult: result,
	})
	e.log.Infof("snapshot active: %d documents, %d terms, %d edges",
		ds.Len(), idx.VocabularySize(), g.NumEdges())
	return nil
}

// Current returns the active snapshot, or an empty one before the first Load.
func (e *Engine) Current() *Snapshot {
	if snap := e.snapshot.Load(); snap != nil {
		return snap
	}
	return &Snapshot{
		Index:     index.New(),
		Graph:     graph.New(nil),
		Documents: &store.DocumentStore{},
		Authority: authority.Scores{},
	}
}

// Health implements services.Searcher.
func (e *Engine) Health() services.HealthInfo {
	snap := e.Current()
	return services.HealthInfo{
		Status:         "ok",
		Documents:      snap.Documents.Len(),
		VocabularySize: snap.Index.VocabularySize(),
		GraphNodes:     snap.Graph.NumNodes(),
		GraphEdges:     snap.Graph.NumEdges(),
	}
}

// Search implements services.Searcher. An unknown term is a successful
// response with zero results; only an empty term is an error. Identical
// concurrent queries are collapsed into one ranking pass.
func (e *Engine) Search(term, mode string) (services.SearchResult, error) {
	start := time.Now()
	normalized := e.tok.NormalizeTerm(term)
	if normalized == "" {
		return services.SearchResult{}, internalErrors.NewEmptyQueryError("query")
	}
	rankMode := search.ParseMode(mode, e.defaultMode)

	key := string(rankMode) + ":" + normalized
	v, _, _ := e.queries.Do(key, func() (interface{}, error) {
		snap := e.Current()
		ranker := search.NewRanker(snap.Index, snap.Authority, e.cfg.Ranking.AuthorityBoost)
		return ranker.RankTerm(normalized, rankMode), nil
	})
	results := v.([]services.RankedResult)

	return services.SearchResult{
		Query:   normalized,
		Ranking: string(rankMode),
		Results: results,
		Count:   len(results),
		QueryID: uuid.New().String(),
		TookMs:  time.Since(start).Milliseconds(),
	}, nil
}

// AdvancedSearch implements services.Searcher. The pattern is evaluated
// against the vocabulary under the configured execution budget; candidates
// are the union of postings over the matching terms, with per-document
// occurrence counts summed across them.
func (e *Engine) AdvancedSearch(pattern, mode string) (services.AdvancedSearchResult, error) {
	start := time.Now()
	if pattern == "" {
		return services.AdvancedSearchResult{}, internalErrors.NewEmptyQueryError("pattern")
	}
	rankMode := search.ParseMode(mode, e.defaultMode)
	snap := e.Current()

	terms, err := e.matcher.Match(snap.Index, pattern)
	if err != nil {
		return services.AdvancedSearchResult{}, err
	}

	ranker := search.NewRanker(snap.Index, snap.Authority, e.cfg.Ranking.AuthorityBoost)
	results := ranker.RankTerms(terms, rankMode)

	preview := terms
	if len(preview) > e.cfg.Search.MatchedTermsLimit {
		preview = preview[:e.cfg.Search.MatchedTermsLimit]
	}
	return services.AdvancedSearchResult{
		Pattern:       pattern,
		Ranking:       string(rankMode),
		MatchingTerms: preview,
		TermCount:     len(terms),
		Results:       results,
		Count:         len(results),
		QueryID:       uuid.New().String(),
		TookMs:        time.Since(start).Milliseconds(),
	}, nil
}

// Suggestions implements services.Searcher. The top-ranked documents for the
// term seed a neighbor walk in the similarity graph; an unknown term yields
// an empty result, not an error.
func (e *Engine) Suggestions(term string, topN int) (services.SuggestionsResult, error) {
	normalized := e.tok.NormalizeTerm(term)
	if normalized == "" {
		return services.SuggestionsResult{}, internalErrors.NewEmptyQueryError("query")
	}
	if topN <= 0 {
		topN = e.cfg.Search.DefaultTopN
	}
	snap := e.Current()

	ranker := search.NewRanker(snap.Index, snap.Authority, e.cfg.Ranking.AuthorityBoost)
	ranked := ranker.RankTerm(normalized, search.ModeHybrid)
	top := ranked
	if len(top) > e.cfg.Search.SuggestionSeeds {
		top = top[:e.cfg.Search.SuggestionSeeds]
	}

	suggester := search.NewSuggester(snap.Graph, snap.Authority)
	suggestions := suggester.Suggest(top, topN)

	return services.SuggestionsResult{
		Query:       normalized,
		TopResults:  top,
		Suggestions: suggestions,
		Count:       len(suggestions),
	}, nil
}

// DocumentInfo implements services.Searcher.
func (e *Engine) DocumentInfo(id string) (services.DocumentInfo, error) {
	snap := e.Current()
	if !snap.Documents.Contains(id) {
		return services.DocumentInfo{}, internalErrors.NewNotFoundError(id)
	}
	return services.DocumentInfo{
		DocumentID: id,
		Authority:  roundAuthority(snap.Authority[id]),
		Degree:     snap.Graph.Degree(id),
		InGraph:    snap.Graph.HasNode(id),
	}, nil
}

// roundAuthority trims scores to 6 decimals for presentation.
func roundAuthority(s float64) float64 {
	return math.Round(s*1e6) / 1e6
}

// Stats implements services.Searcher.
func (e *Engine) Stats() services.StatsInfo {
	snap := e.Current()

	top := make([]services.DocumentScore, 0, len(snap.Authority))
	for docID, score := range snap.Authority {
		top = append(top, services.DocumentScore{DocumentID: docID, Authority: roundAuthority(score)})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Authority != top[j].Authority {
			return top[i].Authority > top[j].Authority
		}
		return top[i].DocumentID < top[j].DocumentID
	})
	if len(top) > e.cfg.Search.TopAuthorityCount {
		top = top[:e.cfg.Search.TopAuthorityCount]
	}

	return services.StatsInfo{
		Documents:           snap.Documents.Len(),
		SkippedDocuments:    len(snap.Documents.Skipped),
		VocabularySize:      snap.Index.VocabularySize(),
		GraphNodes:          snap.Graph.NumNodes(),
		GraphEdges:          snap.Graph.NumEdges(),
		GraphDensity:        snap.Graph.Density(),
		TopAuthority:        top,
		AuthorityIterations: snap.AuthorityResult.Iterations,
		AuthorityConverged:  snap.AuthorityResult.Converged,
	}
}
