/*
Package storage implements the Image Store: admission control for uploaded profile
images and the backends that hold their bytes.

Accepted images are addressed purely by a generated file name. The database record
that references a name is the source of truth for which image is current; the store
itself never decides that a file is in use.
*/
package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
)

// MaxImageSize is the largest accepted image (5 MiB).
const MaxImageSize int64 = 5 << 20

var (
	// ErrInvalidType is returned when the upload is not a JPEG, PNG or GIF image.
	ErrInvalidType = errors.New("invalid image type")

	// ErrTooLarge is returned when the upload exceeds MaxImageSize.
	ErrTooLarge = errors.New("image too large")

	// ErrInvalidName is returned for file names that are not bare stored-image names.
	ErrInvalidName = errors.New("invalid image name")

	// ErrNotFound is returned when no stored image has the requested name.
	ErrNotFound = errors.New("image not found")

	// ErrStoreFailed wraps backend failures while writing an accepted image.
	ErrStoreFailed = errors.New("failed to store image")
)

// Upload is an incoming image as received from the client. Filename, MimeType and
// Size are client-declared and only trusted as far as they can be checked.
type Upload struct {
	Body     io.Reader
	Filename string
	MimeType string
	Size     int64
}

// Backend stores image bytes under a name.
type Backend interface {
	// Put writes body under name. A failed Put leaves nothing visible under name.
	Put(ctx context.Context, name string, body io.Reader, size int64, contentType string) error

	// Delete removes name. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// Serve writes the image to w, or returns ErrNotFound without writing.
	Serve(w http.ResponseWriter, r *http.Request, name string) error
}
