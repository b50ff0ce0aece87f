package extractor

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSniffMime(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"pdf", []byte("%PDF-1.7 rest"), MimePDF},
		{"docx", append([]byte("PK\x03\x04xxxx"), []byte("word/document.xml")...), MimeDocx},
		{"doc", []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1}, MimeDoc},
		{"rtf", []byte(`{\rtf1\ansi hi}`), MimeRTF},
		{"plain", []byte("مجرد نص"), MimeText},
		{"empty", nil, MimeText},
		{"zip without word dir", []byte("PK\x03\x04other"), MimeText},
	}
	for _, tc := range tests {
		if got := SniffMime(tc.data); got != tc.want {
			t.Errorf("%s: SniffMime = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestResolveMime(t *testing.T) {
	pdfData := []byte("%PDF-1.4")

	// declared type wins, parameters stripped
	if got := ResolveMime("x.bin", "application/pdf; charset=binary", nil); got != MimePDF {
		t.Errorf("declared mime: got %q", got)
	}
	// octet-stream is no declaration at all
	if got := ResolveMime("file", "application/octet-stream", pdfData); got != MimePDF {
		t.Errorf("octet-stream should fall through to sniffing: got %q", got)
	}
	// extension decides when nothing is declared
	if got := ResolveMime("report.pdf", "", nil); got != MimePDF {
		t.Errorf("extension mime: got %q", got)
	}
	// content sniff is the last resort
	if got := ResolveMime("file", "", pdfData); got != MimePDF {
		t.Errorf("sniffed mime: got %q", got)
	}
}

func TestExtractTxtUTF8(t *testing.T) {
	got := extractTxt([]byte("  التعليم أساس التقدم\n"))
	if got != "التعليم أساس التقدم" {
		t.Fatalf("extractTxt = %q", got)
	}
}

func TestExtractTxtWindows1256(t *testing.T) {
	// "سلام!" in cp1256; the odd length keeps the UTF-16 candidate out
	data := []byte{0xd3, 0xe1, 0xc7, 0xe3, 0x21}
	got := extractTxt(data)
	if got != "سلام!" {
		t.Fatalf("extractTxt = %q, want سلام!", got)
	}
}

func TestExtractTxtUTF16(t *testing.T) {
	data := []byte{0xff, 0xfe, 'h', 0x00, 'i', 0x00}
	if got := extractTxt(data); got != "hi" {
		t.Fatalf("extractTxt = %q, want hi", got)
	}
}

func TestExtractRTF(t *testing.T) {
	got := extractRTF([]byte(`{\rtf1\ansi\deff0 Hello World}`))
	if got != "Hello World" {
		t.Fatalf("extractRTF = %q", got)
	}
}

func TestExtractRTFEmpty(t *testing.T) {
	got := extractRTF([]byte(`{\rtf1}`))
	if got != "ملف RTF فارغ أو تالف" {
		t.Fatalf("extractRTF = %q", got)
	}
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractDocxParagraphsAndTables(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>مقدمة في البرمجة</w:t></w:r></w:p>
    <w:p><w:r><w:t>الفصل </w:t></w:r><w:r><w:t>الأول</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>المفهوم</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>الشرح</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

	got := extractDocx(buildDocx(t, docXML))
	want := "مقدمة في البرمجة\nالفصل الأول\nالمفهوم | الشرح"
	if got != want {
		t.Fatalf("extractDocx = %q, want %q", got, want)
	}
}

func TestExtractDocxDamaged(t *testing.T) {
	got := extractDocx([]byte("not a zip archive"))
	if got != "فشل في معالجة ملف DOCX" {
		t.Fatalf("extractDocx = %q", got)
	}
}

func TestExtractDocDamaged(t *testing.T) {
	data := []byte{0xd0, 0xcf, 0x11, 0xe0, 0x01, 0x02}
	got := extractDoc(data)
	if got != "تنسيق DOC القديم يتطلب تحويل. يرجى حفظ الملف بصيغة DOCX" {
		t.Fatalf("extractDoc = %q", got)
	}
}

func TestIsArabic(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", false},
		{"hello world", false},
		{"التعليم أساس التقدم", true},
		{"12345 !!!", false},
		// Arabic share just under a third of the letters
		{"ع abcdefgh", false},
		// mixed but Arabic-dominant
		{"درس lesson درس", true},
	}
	for _, tc := range tests {
		if got := IsArabic(tc.text); got != tc.want {
			t.Errorf("IsArabic(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	if got := DetectLanguage("التعلم رحلة"); got != "ar" {
		t.Errorf("DetectLanguage arabic = %q", got)
	}
	if got := DetectLanguage("plain english text"); got != "en" {
		t.Errorf("DetectLanguage english = %q", got)
	}
	// only the first 1000 runes are sampled
	long := strings.Repeat("a ", 600) + strings.Repeat("ع", 2000)
	if got := DetectLanguage(long); got != "en" {
		t.Errorf("DetectLanguage long = %q, want en from leading sample", got)
	}
}

func TestExtractNormalizesArabicVariants(t *testing.T) {
	// Farsi Yeh and Keheh leak in from some keyboards
	path := writeTemp(t, "درس.txt", []byte("تعلیم ک"))
	got, err := New().Extract(path, "text/plain")
	if err != nil {
		t.Fatal(err)
	}
	if got != "تعليم ك" {
		t.Fatalf("Extract = %q, want normalized letters", got)
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, err := New().Extract(filepath.Join(t.TempDir(), "absent.txt"), "")
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("err = %v, want ErrFileNotFound", err)
	}
}

func TestInspect(t *testing.T) {
	path := writeTemp(t, "notes.txt", []byte("hello"))
	info, err := Inspect(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if info.Filename != "notes.txt" {
		t.Errorf("Filename = %q", info.Filename)
	}
	if info.Size != 5 {
		t.Errorf("Size = %d", info.Size)
	}
	if info.MimeType != MimeText {
		t.Errorf("MimeType = %q", info.MimeType)
	}
	if info.MD5 != "5d41402abc4b2a76b9719d911017c592" {
		t.Errorf("MD5 = %q", info.MD5)
	}
}

func TestInspectMissingFile(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "absent.txt"), "")
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("err = %v, want ErrFileNotFound", err)
	}
}
