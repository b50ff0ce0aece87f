package extractor

import (
	"bytes"
	"log"
	"strings"
	"unicode"

	"code.sajari.com/docconv"
	"golang.org/x/text/encoding/charmap"
)

const docPlaceholder = "تنسيق DOC القديم يتطلب تحويل. يرجى حفظ الملف بصيغة DOCX"

// minDocTextLen is the survival threshold for the byte-decode path: fewer
// printable characters than this means we only recovered binary noise.
const minDocTextLen = 100

// extractDoc handles the legacy compound-file Word format: docconv when it
// can, then a best-effort Latin-1 decode with non-printables stripped.
func extractDoc(data []byte) string {
	if body, _, err := docconv.ConvertDoc(bytes.NewReader(data)); err == nil && strings.TrimSpace(body) != "" {
		return strings.TrimSpace(body)
	} else if err != nil {
		log.Printf("extractor: docconv doc failed: %v", err)
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err == nil {
		var b strings.Builder
		for _, r := range string(decoded) {
			if unicode.IsPrint(r) || unicode.IsSpace(r) {
				b.WriteRune(r)
			}
		}
		if cleaned := b.String(); len(cleaned) > minDocTextLen {
			return cleaned
		}
	}

	return docPlaceholder
}
