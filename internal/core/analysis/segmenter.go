package analysis

import "strings"

// Segmenter splits raw document text into candidate sentence units in
// original document order. Downstream section inference relies on each
// sentence being findable at its original offset in the source text.
type Segmenter struct {
	minLen int
}

func NewSegmenter() *Segmenter {
	return &Segmenter{minLen: 10}
}

// Split breaks the text on sentence-terminal punctuation runs, trims each
// fragment and drops fragments of 10 characters or fewer.
func (s *Segmenter) Split(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if len(trimmed) > s.minLen {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}
