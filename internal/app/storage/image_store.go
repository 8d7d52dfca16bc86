package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"profilehub/internal/pkg/logx"
	"profilehub/internal/pkg/metrics"
	"profilehub/internal/pkg/randx"
)

// allowedTypes maps each accepted MIME type to the file extensions it may carry.
// The first extension is used when the original name has no matching one.
var allowedTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/gif":  {".gif"},
}

// ImageStore admits uploads and manages their stored files.
type ImageStore struct {
	backend Backend
	metrics *metrics.Collector
	now     func() time.Time
}

// NewImageStore creates an ImageStore writing to backend. collector may be nil.
func NewImageStore(backend Backend, collector *metrics.Collector) *ImageStore {
	return &ImageStore{
		backend: backend,
		metrics: collector,
		now:     time.Now,
	}
}

// Accept validates up and stores it under a fresh name, which it returns.
//
// The declared size and type are checked first so obviously bad uploads are
// rejected without reading them. The body is then read up to one byte past
// MaxImageSize and its content sniffed; both checks run on the actual bytes.
func (s *ImageStore) Accept(ctx context.Context, up Upload) (string, error) {
	if up.Size > MaxImageSize {
		return "", ErrTooLarge
	}
	if _, ok := allowedTypes[baseMediaType(up.MimeType)]; !ok {
		return "", ErrInvalidType
	}

	data, err := io.ReadAll(io.LimitReader(up.Body, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > MaxImageSize {
		return "", ErrTooLarge
	}

	detected := mimetype.Detect(data)
	contentType := baseMediaType(detected.String())
	exts, ok := allowedTypes[contentType]
	if !ok {
		logx.WarnCtx(ctx, "Upload rejected by content sniffing",
			"declared_type", up.MimeType,
			"detected_type", detected.String(),
		)
		return "", ErrInvalidType
	}

	name := randx.ImageName(s.now(), pickExtension(up.Filename, exts))

	if err := s.backend.Put(ctx, name, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	return name, nil
}

// Remove deletes a stored image on a best-effort basis. Failures are logged and
// counted, never returned: the referencing record already stopped pointing at it.
func (s *ImageStore) Remove(ctx context.Context, name string) {
	if !randx.IsValidImageName(name) {
		logx.Warn("Refusing to remove image with invalid name", "filename", name)
		s.metrics.RecordImageRemoval(metrics.ResultRejected)
		return
	}

	if err := s.backend.Delete(ctx, name); err != nil {
		logx.Error(err, "Failed to remove image file", "filename", name)
		s.metrics.RecordImageRemoval(metrics.ResultFailure)
		return
	}

	logx.Info("Removed image file", "filename", name)
	s.metrics.RecordImageRemoval(metrics.ResultSuccess)
}

// ServeImage writes the stored image name to w.
func (s *ImageStore) ServeImage(w http.ResponseWriter, r *http.Request, name string) error {
	if !randx.IsValidImageName(name) {
		return ErrInvalidName
	}
	return s.backend.Serve(w, r, name)
}

// baseMediaType strips parameters and normalizes case: "Image/PNG; x=y" -> "image/png".
func baseMediaType(v string) string {
	base, _, _ := strings.Cut(v, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// pickExtension keeps the original file's extension when it agrees with the
// detected content, and otherwise falls back to the canonical one.
func pickExtension(filename string, exts []string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return ext
		}
	}
	return exts[0]
}
