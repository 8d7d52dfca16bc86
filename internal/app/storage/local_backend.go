package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

// LocalBackend keeps images as files in a single directory.
type LocalBackend struct {
	dir string
}

// NewLocalBackend creates the directory if needed and returns a backend rooted at it.
func NewLocalBackend(dir string) (*LocalBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %q: %w", dir, err)
	}
	return &LocalBackend{dir: dir}, nil
}

// Put writes to a temporary file first and renames it into place, so a reader
// never observes a partially written image.
func (b *LocalBackend) Put(ctx context.Context, name string, body io.Reader, size int64, contentType string) error {
	tmp, err := os.CreateTemp(b.dir, ".upload-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, copyErr := io.Copy(tmp, body)
	closeErr := tmp.Close()
	if err := errors.Join(copyErr, closeErr, ctx.Err()); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, b.path(name)); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// Delete removes the file. A missing file counts as already removed.
func (b *LocalBackend) Delete(_ context.Context, name string) error {
	err := os.Remove(b.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Serve streams the file with http.ServeContent, which handles Range and
// conditional requests.
func (b *LocalBackend) Serve(w http.ResponseWriter, r *http.Request, name string) error {
	f, err := os.Open(b.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return ErrNotFound
	}

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	http.ServeContent(w, r, name, info.ModTime(), f)
	return nil
}

func (b *LocalBackend) path(name string) string {
	return filepath.Join(b.dir, filepath.Base(name))
}
