// Package tokenizer turns raw document text into normalized tokens: lowercase,
// accents stripped, split on non-word boundaries, short words and stopwords
// dropped. Token identity is case- and accent-insensitive.
package tokenizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nonWordRegex matches sequences of non-letter, non-digit characters.
var nonWordRegex = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// defaultStopwords is the built-in French + English stopword set.
var defaultStopwords = []string{
	"le", "la", "les", "de", "du", "des", "et", "or", "mais", "donc",
	"ou", "un", "une", "au", "aux", "par", "pour", "sur",
	"avec", "sans", "sous", "entre", "dans", "chez", "vers", "depuis",
	"jusqu", "à", "a", "en", "is", "it", "the", "an", "and",
	"but", "in", "on", "at", "to", "for", "of", "by", "from", "up",
	"about", "out", "if", "as", "be", "been", "being", "have", "has",
	"had", "do", "does", "did", "will", "would", "could", "should",
}

// Tokenizer holds the normalization settings. It is safe for concurrent use.
type Tokenizer struct {
	minLength int
	stopwords map[string]struct{}
}

// New creates a Tokenizer with the given minimum token length and any extra
// stopwords on top of the built-in set. Stopwords are themselves normalized so
// accented entries match their stripped forms.
func New(minLength int, extraStopwords []string) *Tokenizer {
	if minLength < 1 {
		minLength = 1
	}
	t := &Tokenizer{
		minLength: minLength,
		stopwords: make(map[string]struct{}, len(defaultStopwords)+len(extraStopwords)),
	}
	for _, w := range defaultStopwords {
		t.stopwords[normalizeWord(w)] = struct{}{}
	}
	for _, w := range extraStopwords {
		if w = strings.TrimSpace(w); w != "" {
			t.stopwords[normalizeWord(w)] = struct{}{}
		}
	}
	return t
}

// stripMarks removes combining marks after NFD decomposition, turning accented
// letters into their base forms.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeWord(word string) string {
	word = strings.ToLower(word)
	stripped, _, err := transform.String(stripMarks, word)
	if err != nil {
		// Malformed input is never fatal: fall back to the lowercased form.
		return word
	}
	return stripped
}

// Tokenize converts raw text into an ordered token sequence. Invalid UTF-8
// sequences are dropped rather than aborting, so a corrupt document yields
// whatever tokens survive. Identical input always yields identical output.
func (t *Tokenizer) Tokenize(text string) []string {
	text = strings.ToValidUTF8(text, "")
	text = normalizeWord(text)

	split := nonWordRegex.Split(text, -1)
	tokens := make([]string, 0, len(split))
	for _, word := range split {
		if word == "" {
			continue
		}
		if utf8.RuneCountInString(word) < t.minLength {
			continue
		}
		if _, isStop := t.stopwords[word]; isStop {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// NormalizeTerm normalizes a single query term the same way document text is
// normalized (lowercase, accents stripped) so lookups are case- and
// accent-insensitive. Length and stopword filters do not apply to queries.
func (t *Tokenizer) NormalizeTerm(term string) string {
	return normalizeWord(strings.TrimSpace(strings.ToValidUTF8(term, "")))
}

// TokenSet derives the distinct-token set used for similarity comparison.
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
