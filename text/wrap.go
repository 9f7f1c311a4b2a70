package text

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

type wrapKey struct {
	s    string
	cols int
}

// Fullscreen notes are redrawn every refresh with identical input.
var wrapCache, _ = lru.New[wrapKey, []string](64)

// Wrap splits s into lines of at most cols bytes, breaking on spaces where
// possible and on newlines always. Words longer than cols are hard-broken.
// The returned slice is shared and must not be modified.
func Wrap(s string, cols int) []string {
	if cols <= 0 {
		return nil
	}

	key := wrapKey{s: s, cols: cols}
	if lines, ok := wrapCache.Get(key); ok {
		return lines
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		lines = append(lines, wrapParagraph(para, cols)...)
	}

	wrapCache.Add(key, lines)
	return lines
}

func wrapParagraph(para string, cols int) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	for _, word := range words {
		// Hard-break words that can never fit on a line
		for len(word) > cols {
			if cur.Len() > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
			}
			lines = append(lines, word[:cols])
			word = word[cols:]
		}
		if word == "" {
			continue
		}

		switch {
		case cur.Len() == 0:
			cur.WriteString(word)
		case cur.Len()+1+len(word) <= cols:
			cur.WriteByte(' ')
			cur.WriteString(word)
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(word)
		}
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
