package document

import (
	"strings"
	"unicode"
)

// Paragraphs normalizes whitespace in raw text and splits it into
// sentence-boundary paragraphs: a new paragraph starts after `.`, `!` or `?`
// when the next word begins with an upper-case letter or a digit. Used by
// the standard (non-deposition) document style.
func Paragraphs(raw string) []string {
	text := strings.Join(strings.Fields(raw), " ")
	if text == "" {
		return nil
	}

	runes := []rune(text)
	var paras []string
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		if !isSentenceEnd(runes[i]) || runes[i+1] != ' ' {
			continue
		}
		next := i + 2
		if next >= len(runes) {
			break
		}
		if !unicode.IsUpper(runes[next]) && !unicode.IsDigit(runes[next]) {
			continue
		}
		paras = append(paras, string(runes[start:i+1]))
		start = next
		i = next - 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		paras = append(paras, tail)
	}
	return paras
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
