package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var QuoteChars = map[byte]struct{}{
	'"':  {},
	'\'': {},
	'`':  {},
}

func IsQuoteChar(b byte) bool {
	_, ok := QuoteChars[b]
	return ok
}

// NormalizeText prepares raw request text for fingerprinting. Surrounding
// whitespace and enclosing quote pairs are removed, so that `"foo"` and
// `foo` produce the same cache key, then the bytes are normalised to NFKC.
func NormalizeText(in string) string {
	s := strings.TrimSpace(in)

	// strip matching quotes from both ends, re-trimming as we go
	for len(s) >= 2 && IsQuoteChar(s[0]) && s[len(s)-1] == s[0] {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	return norm.NFKC.String(s)
}
