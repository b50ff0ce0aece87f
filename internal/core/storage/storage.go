package storage

import "io"

// FileStore abstracts where uploaded files live so handlers never touch
// paths directly.
type FileStore interface {
	// Save writes src under a collision-safe name derived from originalName
	// and returns the stored name and absolute-ish path.
	Save(originalName string, src io.Reader) (storedName string, path string, size int64, err error)
	// Delete removes a stored file, tolerating one that is already gone.
	Delete(path string) error
	Dir() string
}
