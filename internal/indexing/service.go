// Package indexing builds the inverted index from the corpus. Documents are
// tokenized and counted in parallel, one task per document, and merged by
// summing counts. The merge is commutative and associative, so the final index
// is identical regardless of worker interleaving.
package indexing

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/gutensearch/gutensearch/index"
	"github.com/gutensearch/gutensearch/internal/corpus"
	"github.com/gutensearch/gutensearch/internal/tokenizer"
)

// Service builds inverted indexes.
type Service struct {
	tok     *tokenizer.Tokenizer
	workers int
	log     *logrus.Entry
}

// NewService creates an index build service. workers <= 0 means GOMAXPROCS.
func NewService(tok *tokenizer.Tokenizer, workers int, log *logrus.Entry) (*Service, error) {
	if tok == nil {
		return nil, fmt.Errorf("tokenizer must not be nil")
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Service{tok: tok, workers: workers, log: log}, nil
}

type docCounts struct {
	tokens []string
	counts map[string]int
}

// Build tokenizes every document exactly once and produces the inverted index
// plus the tokenized documents for the downstream graph build. The i-th
// tokenized document corresponds to the i-th input document.
func (s *Service) Build(ctx context.Context, docs []corpus.Document) (*index.InvertedIndex, []corpus.TokenizedDocument, error) {
	results := make([]docCounts, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range docs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tokens := s.tok.Tokenize(docs[i].Text)
			counts := make(map[string]int, len(tokens))
			for _, tok := range tokens {
				counts[tok]++
			}
			results[i] = docCounts{tokens: tokens, counts: counts}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("tokenizing corpus: %w", err)
	}

	// Merge sums (term, doc) counts; each document is merged once, so keys
	// never collide and the result is order-independent.
	ii := index.New()
	tokenized := make([]corpus.TokenizedDocument, len(docs))
	for i, doc := range docs {
		ii.AddDocumentCounts(doc.ID, results[i].counts)
		tokenized[i] = corpus.TokenizedDocument{ID: doc.ID, Tokens: results[i].tokens}
	}

	s.log.Infof("indexed %d documents, vocabulary of %d terms", len(docs), ii.VocabularySize())
	return ii, tokenized, nil
}
