// Package corpus reads the fixed corpus of source documents for a build. The
// document id is the file name, stable across builds of the same snapshot.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/gutensearch/gutensearch/store"
)

// Document is a source document: its stable id and raw content. Content is
// consumed during the build only and not retained afterwards.
type Document struct {
	ID   string
	Text string
}

// TokenizedDocument is the normalized form every build stage consumes.
type TokenizedDocument struct {
	ID     string
	Tokens []string
}

// Loader reads every regular file in a corpus directory.
type Loader struct {
	dir string
	log *logrus.Entry
}

// NewLoader creates a Loader over the given directory.
func NewLoader(dir string, log *logrus.Entry) *Loader {
	return &Loader{dir: dir, log: log}
}

// Load reads the corpus in file-name order. A document that cannot be read is
// logged and recorded as skipped, never fatal for the build; only an
// unreadable corpus directory aborts. Decoding is lenient: the tokenizer
// drops invalid byte sequences downstream.
func (l *Loader) Load() ([]Document, []store.SkippedDocument, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading corpus directory %s: %w", l.dir, err)
	}

	docs := make([]Document, 0, len(entries))
	var skipped []store.SkippedDocument
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id := entry.Name()
		data, err := os.ReadFile(filepath.Join(l.dir, id)) // #nosec G304 -- path comes from the configured corpus dir
		if err != nil {
			l.log.WithError(err).Warnf("skipping unreadable document %s", id)
			skipped = append(skipped, store.SkippedDocument{ID: id, Reason: err.Error()})
			continue
		}
		docs = append(docs, Document{ID: id, Text: string(data)})
	}

	l.log.Infof("loaded %d documents from %s (%d skipped)", len(docs), l.dir, len(skipped))
	return docs, skipped, nil
}
