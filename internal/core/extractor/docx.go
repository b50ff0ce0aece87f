package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"log"
	"strings"

	"code.sajari.com/docconv"
)

// docx body layout: paragraphs are direct children of w:body, table cells
// hold their own paragraph lists.
type docxDocument struct {
	Body docxBody `xml:"body"`
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"p"`
	Tables     []docxTable     `xml:"tbl"`
}

type docxParagraph struct {
	Texts []string `xml:"r>t"`
}

type docxTable struct {
	Rows []docxRow `xml:"tr"`
}

type docxRow struct {
	Cells []docxCell `xml:"tc"`
}

type docxCell struct {
	Paragraphs []docxParagraph `xml:"p"`
}

func (p docxParagraph) text() string {
	return strings.Join(p.Texts, "")
}

// extractDocx unzips word/document.xml and renders paragraph text in order,
// then table text with cells joined by " | " and rows newline-separated.
// docconv serves as fallback when the package cannot be parsed directly.
func extractDocx(data []byte) string {
	text, err := parseDocx(data)
	if err == nil && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text)
	}
	if err != nil {
		log.Printf("extractor: docx parse failed: %v", err)
	}

	if body, _, err := docconv.ConvertDocx(bytes.NewReader(data)); err == nil && strings.TrimSpace(body) != "" {
		return strings.TrimSpace(body)
	} else if err != nil {
		log.Printf("extractor: docconv docx failed: %v", err)
	}

	return "فشل في معالجة ملف DOCX"
}

func parseDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", err
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", err
			}
			break
		}
	}
	if docXML == nil {
		return "", zip.ErrFormat
	}

	var doc docxDocument
	if err := xml.Unmarshal(docXML, &doc); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, p := range doc.Body.Paragraphs {
		if t := strings.TrimSpace(p.text()); t != "" {
			b.WriteString(t)
			b.WriteString("\n")
		}
	}
	for _, tbl := range doc.Body.Tables {
		for _, row := range tbl.Rows {
			var cells []string
			for _, cell := range row.Cells {
				var parts []string
				for _, p := range cell.Paragraphs {
					if t := strings.TrimSpace(p.text()); t != "" {
						parts = append(parts, t)
					}
				}
				if len(parts) > 0 {
					cells = append(cells, strings.Join(parts, " "))
				}
			}
			if len(cells) > 0 {
				b.WriteString(strings.Join(cells, " | "))
				b.WriteString("\n")
			}
		}
	}
	return b.String(), nil
}
