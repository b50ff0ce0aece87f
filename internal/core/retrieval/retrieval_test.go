package retrieval

import (
	"strings"
	"testing"

	"mudarris/internal/models"
)

func docWith(id, filename, content string) models.Document {
	d := models.Document{ID: id, Filename: filename}
	d.SetContent(content)
	return d
}

func TestSelectScoresByTokenOverlap(t *testing.T) {
	docs := []models.Document{
		docWith("a", "study.txt", "التعلم مهم جداً في الحياة"),
		docWith("b", "both.txt", "التعلم و الدراسة وجهان لعملة واحدة"),
		docWith("c", "cooking.txt", "وصفات الطبخ السريع"),
	}

	hits := Select("التعلم الدراسة", docs, DefaultTopN)
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[0].Doc.ID != "b" || hits[0].Score != 2 {
		t.Errorf("top hit = %s score %d, want b score 2", hits[0].Doc.ID, hits[0].Score)
	}
	if hits[1].Doc.ID != "a" || hits[1].Score != 1 {
		t.Errorf("second hit = %s score %d, want a score 1", hits[1].Doc.ID, hits[1].Score)
	}
}

func TestSelectTieBreaksOnID(t *testing.T) {
	docs := []models.Document{
		docWith("zzz", "one.txt", "البرمجة ممتعة"),
		docWith("aaa", "two.txt", "البرمجة صعبة"),
	}
	hits := Select("البرمجة", docs, DefaultTopN)
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[0].Doc.ID != "aaa" {
		t.Errorf("tie broke to %s, want aaa", hits[0].Doc.ID)
	}
}

func TestSelectTruncatesToTopN(t *testing.T) {
	docs := []models.Document{
		docWith("a", "a.txt", "كلمة"),
		docWith("b", "b.txt", "كلمة"),
		docWith("c", "c.txt", "كلمة"),
		docWith("d", "d.txt", "كلمة"),
	}
	hits := Select("كلمة", docs, 3)
	if len(hits) != 3 {
		t.Fatalf("hits = %d, want 3", len(hits))
	}
}

func TestSelectCaseInsensitive(t *testing.T) {
	docs := []models.Document{docWith("a", "a.txt", "Machine Learning Basics")}
	hits := Select("machine LEARNING", docs, DefaultTopN)
	if len(hits) != 1 || hits[0].Score != 2 {
		t.Fatalf("hits = %v", hits)
	}
}

func TestSelectIgnoresEmptyInput(t *testing.T) {
	docs := []models.Document{docWith("a", "a.txt", "محتوى")}
	if hits := Select("   ", docs, DefaultTopN); hits != nil {
		t.Errorf("blank query returned %v", hits)
	}
	empty := []models.Document{{ID: "x", Filename: "x.txt"}}
	if hits := Select("محتوى", empty, DefaultTopN); hits != nil {
		t.Errorf("empty-content document matched: %v", hits)
	}
}

func TestBuildContextFormat(t *testing.T) {
	docs := []models.Document{
		docWith("a", "أول.txt", "النص الأول"),
		docWith("b", "ثاني.txt", "النص الثاني"),
	}
	hits := []Hit{{Doc: &docs[0], Score: 1}, {Doc: &docs[1], Score: 1}}

	got := BuildContext(hits)
	want := "من الملف أول.txt:\nالنص الأول...\n\nمن الملف ثاني.txt:\nالنص الثاني..."
	if got != want {
		t.Fatalf("BuildContext = %q, want %q", got, want)
	}
}

func TestBuildContextShortExcerptKeepsMarker(t *testing.T) {
	doc := docWith("a", "short.txt", "نص قصير")
	got := BuildContext([]Hit{{Doc: &doc, Score: 1}})
	if !strings.HasSuffix(got, "نص قصير...") {
		t.Fatalf("short excerpt not ellipsis-terminated: %q", got)
	}
}

func TestBuildContextTruncatesLongDocuments(t *testing.T) {
	doc := docWith("a", "big.txt", strings.Repeat("ن", 1500))
	got := BuildContext([]Hit{{Doc: &doc, Score: 1}})

	if !strings.HasSuffix(got, "...") {
		t.Error("long excerpt not ellipsis-terminated")
	}
	if strings.Contains(got, strings.Repeat("ن", 1001)) {
		t.Error("excerpt exceeds 1000 runes")
	}
}

func TestBuildContextEmpty(t *testing.T) {
	if got := BuildContext(nil); got != "" {
		t.Fatalf("BuildContext(nil) = %q", got)
	}
}

func TestPreviewWindow(t *testing.T) {
	content := strings.Repeat("ا", 300) + "هدف" + strings.Repeat("ب", 300)
	preview, ok := Preview(content, "هدف")
	if !ok {
		t.Fatal("match not found")
	}
	if !strings.HasPrefix(preview, "...") || !strings.HasSuffix(preview, "...") {
		t.Errorf("interior match should be ellipsis-marked on both sides: %q", preview)
	}
	// 100 runes each side plus the 3-rune match plus two 3-rune markers
	if n := len([]rune(preview)); n != 100+3+100+6 {
		t.Errorf("preview length = %d runes, want 209", n)
	}
	if !strings.Contains(preview, "هدف") {
		t.Errorf("preview lost the match: %q", preview)
	}
}

func TestPreviewAtStart(t *testing.T) {
	content := "الهدف هنا " + strings.Repeat("ت", 300)
	preview, ok := Preview(content, "الهدف")
	if !ok {
		t.Fatal("match not found")
	}
	if strings.HasPrefix(preview, "...") {
		t.Errorf("match at start should not have a leading marker: %q", preview)
	}
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("truncated tail should have a trailing marker: %q", preview)
	}
}

func TestPreviewCaseInsensitive(t *testing.T) {
	preview, ok := Preview("Introduction to Algorithms", "ALGORITHMS")
	if !ok {
		t.Fatal("case-folded match not found")
	}
	if preview != "Introduction to Algorithms" {
		t.Errorf("preview = %q", preview)
	}
}

func TestPreviewNoMatch(t *testing.T) {
	if _, ok := Preview("محتوى الملف", "غائب"); ok {
		t.Fatal("reported a match that does not exist")
	}
	if _, ok := Preview("", "شيء"); ok {
		t.Fatal("empty content matched")
	}
	if _, ok := Preview("محتوى", ""); ok {
		t.Fatal("empty query matched")
	}
}
