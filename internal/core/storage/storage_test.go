package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"notes.txt", "notes.txt"},
		{"ملاحظات الدرس.pdf", "ملاحظات_الدرس.pdf"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\win\\system.ini", "system.ini"},
		{"a b  c.txt", "a_b__c.txt"},
		{"weird<>:\"|?*.doc", "weird.doc"},
		{"...", ""},
		{"///", ""},
	}
	for _, tc := range tests {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSaveAndDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	name, path, size, err := store.Save("درس.txt", strings.NewReader("محتوى الدرس"))
	if err != nil {
		t.Fatal(err)
	}
	if size != int64(len("محتوى الدرس")) {
		t.Errorf("size = %d", size)
	}
	if !strings.HasSuffix(name, "_درس.txt") {
		t.Errorf("stored name %q lost the sanitized original", name)
	}
	if filepath.Dir(path) != store.Dir() {
		t.Errorf("path %q outside store dir %q", path, store.Dir())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "محتوى الدرس" {
		t.Errorf("content = %q", data)
	}

	if err := store.Delete(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file survived Delete")
	}

	// deleting again must be a no-op
	if err := store.Delete(path); err != nil {
		t.Errorf("second Delete errored: %v", err)
	}
}

func TestSaveCollidingNamesGetDistinctPaths(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, p1, _, err := store.Save("same.txt", strings.NewReader("أ"))
	if err != nil {
		t.Fatal(err)
	}
	_, p2, _, err := store.Save("same.txt", strings.NewReader("ب"))
	if err != nil {
		t.Fatal(err)
	}
	if p1 == p2 {
		t.Fatalf("two uploads of %q share path %q", "same.txt", p1)
	}
}

func TestSaveGarbageName(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	name, _, _, err := store.Save("...", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(name, "file_") || !strings.HasSuffix(name, ".txt") {
		t.Errorf("fallback name = %q", name)
	}
}

func TestNewLocalStoreRequiresDir(t *testing.T) {
	if _, err := NewLocalStore(""); err == nil {
		t.Fatal("empty dir accepted")
	}
}
