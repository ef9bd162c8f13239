package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gutensearch/gutensearch/config"
	"github.com/gutensearch/gutensearch/internal/corpus"
	"github.com/gutensearch/gutensearch/internal/indexing"
	"github.com/gutensearch/gutensearch/internal/persistence"
	"github.com/gutensearch/gutensearch/internal/similarity"
	"github.com/gutensearch/gutensearch/internal/tokenizer"
	"github.com/gutensearch/gutensearch/store"
)

// BuildSummary reports what one offline build produced.
type BuildSummary struct {
	Documents  int
	Skipped    int
	Vocabulary int
	GraphNodes int
	GraphEdges int
	Took       time.Duration
}

// Builder runs the offline build: corpus → tokenize → inverted index +
// similarity graph + document list, persisted under the data directory.
// A later serving session loads the persisted artifact set; a rebuild writes
// a brand-new set, never mutating the one being served.
type Builder struct {
	cfg *config.Config
	log *logrus.Entry
}

// NewBuilder creates a Builder for the given configuration.
func NewBuilder(cfg *config.Config, log *logrus.Entry) *Builder {
	return &Builder{cfg: cfg, log: log}
}

// Run executes the full build and persists the artifacts.
func (b *Builder) Run(ctx context.Context) (*BuildSummary, error) {
	start := time.Now()

	loader := corpus.NewLoader(b.cfg.Corpus.Dir, b.log)
	docs, skipped, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("corpus directory %s contains no readable documents", b.cfg.Corpus.Dir)
	}

	tok := tokenizer.New(b.cfg.Tokenizer.MinTokenLength, b.cfg.Tokenizer.ExtraStopwords)

	indexer, err := indexing.NewService(tok, b.cfg.Similarity.Workers, b.log)
	if err != nil {
		return nil, err
	}
	idx, tokenized, err := indexer.Build(ctx, docs)
	if err != nil {
		return nil, err
	}

	grapher, err := similarity.NewService(
		b.cfg.Similarity.JaccardThreshold,
		b.cfg.Similarity.MaxTokensPerDoc,
		b.cfg.Similarity.Workers,
		nil,
		b.log,
	)
	if err != nil {
		return nil, err
	}
	g, err := grapher.Build(ctx, tokenized)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}
	ds := store.New(ids)
	ds.Skipped = skipped

	dataDir := b.cfg.Storage.DataDir
	if err := persistence.SaveGob(filepath.Join(dataDir, invertedIndexFile), idx); err != nil {
		return nil, fmt.Errorf("persisting inverted index: %w", err)
	}
	if err := persistence.SaveGob(filepath.Join(dataDir, similarityGraphFile), g); err != nil {
		return nil, fmt.Errorf("persisting similarity graph: %w", err)
	}
	if err := persistence.SaveGob(filepath.Join(dataDir, documentStoreFile), ds); err != nil {
		return nil, fmt.Errorf("persisting document list: %w", err)
	}

	summary := &BuildSummary{
		Documents:  len(docs),
		Skipped:    len(skipped),
		Vocabulary: idx.VocabularySize(),
		GraphNodes: g.NumNodes(),
		GraphEdges: g.NumEdges(),
		Took:       time.Since(start),
	}
	b.log.WithFields(logrus.Fields{
		"documents":  summary.Documents,
		"skipped":    summary.Skipped,
		"vocabulary": summary.Vocabulary,
		"nodes":      summary.GraphNodes,
		"edges":      summary.GraphEdges,
		"took":       summary.Took.String(),
	}).Info("build complete")
	return summary, nil
}
