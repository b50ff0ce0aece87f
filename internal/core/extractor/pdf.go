package extractor

import (
	"bytes"
	"io"
	"log"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
)

const pdfFailure = "فشل في استخراج النص من ملف PDF"

// extractPDF tries docconv first (pdftotext keeps layout, which matters for
// right-to-left scripts), then a pure-Go page-text pass, then gives up with
// the failure marker.
func extractPDF(data []byte) string {
	if body, _, err := docconv.ConvertPDF(bytes.NewReader(data)); err == nil && strings.TrimSpace(body) != "" {
		return strings.TrimSpace(body)
	} else if err != nil {
		log.Printf("extractor: docconv pdf failed: %v", err)
	}

	if text := extractPDFPages(data); strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text)
	}

	return pdfFailure
}

func extractPDFPages(data []byte) (text string) {
	defer func() {
		// the pdf package panics on some malformed files
		if r := recover(); r != nil {
			log.Printf("extractor: pdf page read panicked: %v", r)
			text = ""
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("extractor: pdf open failed: %v", err)
		return ""
	}
	plain, err := r.GetPlainText()
	if err != nil {
		log.Printf("extractor: pdf text failed: %v", err)
		return ""
	}
	var b strings.Builder
	if _, err := io.Copy(&b, plain); err != nil {
		return ""
	}
	return b.String()
}
