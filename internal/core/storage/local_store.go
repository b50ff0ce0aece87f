package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// LocalStore keeps uploads in a single directory. Stored names carry a
// short random prefix so two uploads of the same filename never race on
// one path.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Save(originalName string, src io.Reader) (string, string, int64, error) {
	prefix := randomHex(8)
	safe := SanitizeFilename(originalName)

	var storedName string
	if safe == "" {
		storedName = "file_" + prefix + ".txt"
	} else {
		storedName = prefix + "_" + safe
	}

	path := filepath.Join(s.dir, storedName)
	dst, err := os.Create(path)
	if err != nil {
		return "", "", 0, fmt.Errorf("create %s: %w", path, err)
	}
	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", "", 0, fmt.Errorf("write %s: %w", path, err)
	}
	return storedName, path, size, nil
}

func (s *LocalStore) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SanitizeFilename strips path components and characters that cannot appear
// in a stored name. Unicode letters survive so Arabic filenames stay
// readable; an all-garbage name collapses to "".
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." || name == "/" {
		return ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}

func randomHex(n int) string {
	buf := make([]byte, (n+1)/2)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)[:n]
}

var _ FileStore = (*LocalStore)(nil)
