// Package extractor converts uploaded files into plain text. Every parse
// path returns a string: failures are encoded as Arabic explanatory text in
// the returned content rather than errors, so an upload never fails on a
// damaged document. Only a missing file is reported as an error.
package extractor

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// ErrFileNotFound is returned before any parsing attempt when the path does
// not exist.
var ErrFileNotFound = errors.New("file not found")

// MIME types with dedicated extraction strategies.
const (
	MimePDF  = "application/pdf"
	MimeDoc  = "application/msword"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
	MimeRTF  = "application/rtf"
)

const sniffLen = 4096

type Extractor struct{}

func New() *Extractor { return &Extractor{} }

// Extract reads the file and dispatches on the effective MIME type. The
// declared type wins when present; otherwise the extension, then a content
// sniff decide. Unknown types fall through to the generic text decode.
func (e *Extractor) Extract(filePath, declaredMime string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
		}
		return "", fmt.Errorf("read %s: %w", filePath, err)
	}

	mimeType := ResolveMime(filePath, declaredMime, data)

	var content string
	switch mimeType {
	case MimePDF:
		content = extractPDF(data)
	case MimeDoc:
		content = extractDoc(data)
	case MimeDocx:
		content = extractDocx(data)
	case MimeRTF, "text/rtf":
		content = extractRTF(data)
	default:
		content = extractTxt(data)
	}

	if IsArabic(content) {
		content = normalizeArabic(content)
	}
	return content, nil
}

// ResolveMime picks the effective MIME type for a file.
func ResolveMime(filePath, declaredMime string, data []byte) string {
	if declaredMime != "" && declaredMime != "application/octet-stream" {
		if base, _, err := mime.ParseMediaType(declaredMime); err == nil {
			return base
		}
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filePath))); byExt != "" {
		if base, _, err := mime.ParseMediaType(byExt); err == nil {
			return base
		}
	}
	return SniffMime(data)
}

// SniffMime inspects the leading bytes for known binary signatures and
// defaults to plain text.
func SniffMime(data []byte) string {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}

	switch {
	case bytes.HasPrefix(head, []byte("%PDF")):
		return MimePDF
	case bytes.HasPrefix(head, []byte("PK\x03\x04")) && bytes.Contains(head, []byte("word/")):
		return MimeDocx
	case bytes.HasPrefix(head, []byte{0xd0, 0xcf, 0x11, 0xe0}):
		return MimeDoc
	case bytes.HasPrefix(head, []byte(`{\rtf`)):
		return MimeRTF
	}
	return MimeText
}

// FileInfo summarises an uploaded file for the document record.
type FileInfo struct {
	Filename string
	Size     int64
	MimeType string
	MD5      string
}

// Inspect stats and hashes the file without extracting it.
func Inspect(filePath, declaredMime string) (*FileInfo, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
		}
		return nil, err
	}
	sum := md5.Sum(data)
	return &FileInfo{
		Filename: filepath.Base(filePath),
		Size:     int64(len(data)),
		MimeType: ResolveMime(filePath, declaredMime, data),
		MD5:      hex.EncodeToString(sum[:]),
	}, nil
}
