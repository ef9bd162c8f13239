// Package similarity builds the document-similarity graph: for every
// unordered pair of documents, the Jaccard coefficient of their token sets,
// kept as an edge when it reaches the configured threshold. This is the
// dominant build cost, O(D²) pair comparisons.
package similarity

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/gutensearch/gutensearch/graph"
	"github.com/gutensearch/gutensearch/internal/corpus"
	"github.com/gutensearch/gutensearch/internal/tokenizer"
)

// DocSet is a document's distinct-token set, possibly capped.
type DocSet struct {
	ID  string
	Set map[string]struct{}
}

// Edge is one weighted undirected edge produced by a strategy.
type Edge struct {
	A, B   string
	Weight float64
}

// Strategy computes the edge set over the documents' token sets. Alternative
// implementations (for example approximate nearest-neighbor pruning) can be
// plugged in without changing the graph model.
type Strategy interface {
	Name() string
	Edges(ctx context.Context, docs []DocSet, threshold float64, workers int) ([]Edge, error)
}

// Jaccard returns |a ∩ b| / |a ∪ b|, exactly 0 when the union is empty.
// The intersection is counted by probing the smaller set against the larger.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for tok := range small {
		if _, ok := large[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// ExactPairwise compares every unordered pair (i, j), i < j. The pair space
// is partitioned by i: each worker owns a disjoint range of row indices, so
// every pair is computed by exactly one worker (the owner of the lower index)
// and the merge is a plain union of the produced edge slices.
type ExactPairwise struct{}

// Name identifies the strategy in build logs.
func (ExactPairwise) Name() string { return "exact-pairwise" }

// Edges computes the thresholded Jaccard edge set.
func (ExactPairwise) Edges(ctx context.Context, docs []DocSet, threshold float64, workers int) ([]Edge, error) {
	n := len(docs)
	if n < 2 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n-1 {
		workers = n - 1
	}

	partials := make([][]Edge, workers)
	g, ctx := errgroup.WithContext(ctx)
	// Row i carries n-1-i comparisons, so contiguous ranges are uneven;
	// striding rows by worker count balances the load well enough.
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			var edges []Edge
			for i := w; i < n-1; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				for j := i + 1; j < n; j++ {
					weight := Jaccard(docs[i].Set, docs[j].Set)
					if weight >= threshold {
						edges = append(edges, Edge{A: docs[i].ID, B: docs[j].ID, Weight: weight})
					}
				}
			}
			partials[w] = edges
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Edge
	for _, part := range partials {
		all = append(all, part...)
	}
	return all, nil
}

// Service builds similarity graphs.
type Service struct {
	threshold float64
	maxTokens int
	workers   int
	strategy  Strategy
	log       *logrus.Entry
}

// NewService creates a graph build service. maxTokens <= 0 disables the
// per-document cap; workers <= 0 means GOMAXPROCS; a nil strategy selects
// exact pairwise comparison.
func NewService(threshold float64, maxTokens, workers int, strategy Strategy, log *logrus.Entry) (*Service, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("jaccard threshold must be in [0,1], got %g", threshold)
	}
	if strategy == nil {
		strategy = ExactPairwise{}
	}
	return &Service{
		threshold: threshold,
		maxTokens: maxTokens,
		workers:   workers,
		strategy:  strategy,
		log:       log,
	}, nil
}

// Build produces the similarity graph over the tokenized corpus. Every
// document is a node even when no edge survives the threshold.
func (s *Service) Build(ctx context.Context, docs []corpus.TokenizedDocument) (*graph.Graph, error) {
	ids := make([]string, len(docs))
	sets := make([]DocSet, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
		sets[i] = DocSet{ID: doc.ID, Set: s.capSet(tokenizer.TokenSet(doc.Tokens))}
	}

	g := graph.New(ids)
	edges, err := s.strategy.Edges(ctx, sets, s.threshold, s.workers)
	if err != nil {
		return nil, fmt.Errorf("computing similarity edges (%s): %w", s.strategy.Name(), err)
	}
	for _, e := range edges {
		g.AddEdge(e.A, e.B, e.Weight)
	}

	pairs := len(docs) * (len(docs) - 1) / 2
	s.log.Infof("similarity graph built: %d nodes, %d edges from %d pair comparisons (threshold %g)",
		g.NumNodes(), g.NumEdges(), pairs, s.threshold)
	return g, nil
}

// capSet bounds a token set at maxTokens using a deterministic truncation:
// sort lexicographically and keep the first maxTokens entries. The same
// document always truncates to the same set, run to run.
func (s *Service) capSet(set map[string]struct{}) map[string]struct{} {
	if s.maxTokens <= 0 || len(set) <= s.maxTokens {
		return set
	}
	tokens := make([]string, 0, len(set))
	for tok := range set {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	capped := make(map[string]struct{}, s.maxTokens)
	for _, tok := range tokens[:s.maxTokens] {
		capped[tok] = struct{}{}
	}
	return capped
}
