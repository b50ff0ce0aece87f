package extractor

import (
	"regexp"
	"strings"
)

var (
	rtfControlWords = regexp.MustCompile(`\\[a-z]+\d*\s*`)
	rtfBraces       = regexp.MustCompile(`[{}]`)
	rtfEscapes      = regexp.MustCompile(`\\[^a-z]`)
	rtfWhitespace   = regexp.MustCompile(`\s+`)
)

// extractRTF strips control-word sequences and group braces, then collapses
// whitespace. Crude, but RTF study notes are mostly flat text.
func extractRTF(data []byte) string {
	content := strings.ToValidUTF8(string(data), "")

	content = rtfControlWords.ReplaceAllString(content, "")
	content = rtfBraces.ReplaceAllString(content, "")
	content = rtfEscapes.ReplaceAllString(content, "")
	content = rtfWhitespace.ReplaceAllString(content, " ")

	content = strings.TrimSpace(content)
	if content == "" {
		return "ملف RTF فارغ أو تالف"
	}
	return content
}
