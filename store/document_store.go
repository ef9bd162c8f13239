// Package store holds the document list artifact: the ordered ids of every
// document the corpus snapshot knows about, plus the documents the build had
// to skip.
package store

// SkippedDocument records a source document excluded from the build, with the
// reason it could not be indexed.
type SkippedDocument struct {
	ID     string
	Reason string
}

// DocumentStore is the ordered list of indexed document ids for one corpus
// snapshot. Like the other artifacts it is immutable once built.
type DocumentStore struct {
	IDs     []string
	Skipped []SkippedDocument
}

// New creates a store over the given ordered document ids.
func New(ids []string) *DocumentStore {
	ds := &DocumentStore{IDs: make([]string, len(ids))}
	copy(ds.IDs, ids)
	return ds
}

// Contains reports whether the document id is part of the corpus.
func (ds *DocumentStore) Contains(id string) bool {
	for _, known := range ds.IDs {
		if known == id {
			return true
		}
	}
	return false
}

// Len returns the number of indexed documents.
func (ds *DocumentStore) Len() int {
	return len(ds.IDs)
}
