// Package retrieval scores documents against a user query by naive keyword
// overlap: no term weighting, no length normalization, just token-in-content
// counting.
package retrieval

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"mudarris/internal/models"
)

// DefaultTopN bounds how many documents feed the chat context.
const DefaultTopN = 3

// contextRunes caps how much of each selected document enters the prompt.
const contextRunes = 1000

// Hit pairs a document with its keyword score.
type Hit struct {
	Doc   *models.Document
	Score int
}

// Select scores every document by the number of query tokens (whitespace
// split, lowercased) found as substrings of its lowercased content, drops
// zero scores, sorts by descending score and truncates to topN. Ties break
// on ascending document ID so ranking is deterministic regardless of the
// store's scan order.
func Select(query string, docs []models.Document, topN int) []Hit {
	if topN <= 0 {
		topN = DefaultTopN
	}
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil
	}

	var hits []Hit
	for i := range docs {
		doc := &docs[i]
		if doc.Content == "" {
			continue
		}
		contentLower := strings.ToLower(doc.Content)
		score := 0
		for _, tok := range tokens {
			if strings.Contains(contentLower, tok) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, Hit{Doc: doc, Score: score})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Doc.ID < hits[j].Doc.ID
	})

	if len(hits) > topN {
		hits = hits[:topN]
	}
	return hits
}

// BuildContext renders selected documents into the prompt context block.
// Every excerpt is capped at 1000 runes and ellipsis-terminated, short
// documents included.
func BuildContext(hits []Hit) string {
	if len(hits) == 0 {
		return ""
	}
	parts := make([]string, 0, len(hits))
	for _, h := range hits {
		excerpt := h.Doc.Content
		if r := []rune(excerpt); len(r) > contextRunes {
			excerpt = string(r[:contextRunes])
		}
		parts = append(parts, fmt.Sprintf("من الملف %s:\n%s...", h.Doc.Filename, excerpt))
	}
	return strings.Join(parts, "\n\n")
}

// previewRadius is the window, in runes, on each side of a search match.
const previewRadius = 100

// Preview returns a ±100-rune window around the first case-insensitive
// occurrence of query in content, ellipsis-marked on truncated sides.
// ok is false when the query does not occur.
func Preview(content, query string) (preview string, ok bool) {
	if content == "" || query == "" {
		return "", false
	}

	haystack := foldRunes(content)
	needle := foldRunes(query)
	idx := runeIndex(haystack, needle)
	if idx < 0 {
		return "", false
	}

	runes := []rune(content)
	start := idx - previewRadius
	if start < 0 {
		start = 0
	}
	end := idx + len(needle) + previewRadius
	if end > len(runes) {
		end = len(runes)
	}

	preview = string(runes[start:end])
	if start > 0 {
		preview = "..." + preview
	}
	if end < len(runes) {
		preview = preview + "..."
	}
	return preview, true
}

// foldRunes lowercases rune-by-rune so indexes stay aligned with the
// original text (strings.ToLower may change rune counts for some scripts).
func foldRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
