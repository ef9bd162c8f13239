// Package index defines the inverted index artifact: a mapping from each
// vocabulary term to the documents containing it with per-document occurrence
// counts. The index is built once per corpus snapshot and is immutable while
// serving, so no locking is required on the read path.
package index

// Postings maps a document id to the term's occurrence count in that document.
// A document appears here iff the term occurred at least once after
// normalization; every stored count is >= 1 and absence means zero.
type Postings map[string]int

// InvertedIndex maps a term (token) to its postings.
type InvertedIndex struct {
	Terms map[string]Postings
}

// New creates an empty inverted index.
func New() *InvertedIndex {
	return &InvertedIndex{Terms: make(map[string]Postings)}
}

// AddDocumentCounts merges one document's token counts into the index. Each
// document must be merged exactly once; (term, doc) keys never collide across
// documents, which makes the merge order-independent.
func (ii *InvertedIndex) AddDocumentCounts(docID string, counts map[string]int) {
	for term, count := range counts {
		if count <= 0 {
			continue
		}
		postings, ok := ii.Terms[term]
		if !ok {
			postings = make(Postings)
			ii.Terms[term] = postings
		}
		postings[docID] += count
	}
}

// Lookup returns the postings for a term, or nil if the term is not in the
// vocabulary.
func (ii *InvertedIndex) Lookup(term string) Postings {
	return ii.Terms[term]
}

// Occurrences returns the occurrence count of term in the given document,
// 0 if either is unknown.
func (ii *InvertedIndex) Occurrences(term, docID string) int {
	return ii.Terms[term][docID]
}

// DocFrequency returns the number of documents containing the term.
func (ii *InvertedIndex) DocFrequency(term string) int {
	return len(ii.Terms[term])
}

// VocabularySize returns the number of distinct terms.
func (ii *InvertedIndex) VocabularySize() int {
	return len(ii.Terms)
}

// TotalOccurrences returns the summed occurrence count of a term across the
// whole corpus.
func (ii *InvertedIndex) TotalOccurrences(term string) int {
	total := 0
	for _, count := range ii.Terms[term] {
		total += count
	}
	return total
}
