package text

import (
	"strings"

	"github.com/blevesearch/segment"
)

const nonAlphaNumericChar = 0

// WordCount counts whitespace separated words. Summary lengths and the
// compression ratio are derived from this count, never from the model.
func WordCount(in string) int {
	return len(strings.Fields(in))
}

// Words splits text into lowercased word tokens, dropping punctuation-only
// segments. Used by the sentiment keyword scan.
func Words(in string) []string {
	segmenter := segment.NewWordSegmenterDirect([]byte(in))

	var words []string
	for segmenter.Segment() {
		if segmenter.Type() == nonAlphaNumericChar {
			continue
		}
		words = append(words, strings.ToLower(segmenter.Text()))
	}

	return words
}
