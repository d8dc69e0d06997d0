// Package fetcher opens dataset sources by location (http, https, ftp, file)
// and streams their CSV rows.
package fetcher

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
)

// ErrNotFound is returned when a source does not exist (HTTP 404, missing file).
var ErrNotFound = eris.New("fetcher: source not found")

// Fetcher defines the interface for reading a remote or local source.
type Fetcher interface {
	// Download opens the location and returns its body. Callers must close it.
	Download(ctx context.Context, location string) (io.ReadCloser, error)
}
