/*
Package req provides helper functions for HTTP request parsing, data binding and validation.

It encapsulates the logic for parsing JSON and Multipart Form data, and integrates
error handling to ensure data format correctness and size constraints, facilitating
subsequent business logic processing.
*/
package req

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"profilehub/internal/pkg/errs"
)

const (
	// MaxJSONBodySize caps JSON request bodies (1 MB).
	MaxJSONBodySize int64 = 1 << 20

	// MaxFormMemory defines the maximum amount of memory (8 MB) ParseMultipartForm
	// will use to store form parts. File parts exceeding this limit are stored in temporary files.
	MaxFormMemory int64 = 8 << 20

	// MaxRequestFileSize defines the maximum allowed size (8 MB) for the entire multipart body.
	// It sits above the image limit so an oversized image is still reported as too large
	// by admission control rather than failing to parse.
	MaxRequestFileSize int64 = 8 << 20
)

// BindJSON attempts to bind the JSON data from the HTTP request body to the destination struct dst.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, MaxJSONBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

// SetupMultipart sets up and parses Multipart Form data from the HTTP request.
func SetupMultipart(w http.ResponseWriter, r *http.Request) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestFileSize)

	err := r.ParseMultipartForm(MaxFormMemory)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			return errs.NewError(errs.ErrFileTooLarge)
		}

		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}
