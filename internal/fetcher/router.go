package fetcher

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// Router dispatches a location to the fetcher registered for its scheme.
// Locations without a scheme are treated as local files.
type Router struct {
	schemes map[string]Fetcher
	files   Fetcher
}

// NewRouter wires the HTTP, FTP, and file fetchers behind one Fetcher.
func NewRouter(httpF, ftpF, fileF Fetcher) *Router {
	r := &Router{
		schemes: make(map[string]Fetcher),
		files:   fileF,
	}
	if httpF != nil {
		r.schemes["http"] = httpF
		r.schemes["https"] = httpF
	}
	if ftpF != nil {
		r.schemes["ftp"] = ftpF
	}
	if fileF != nil {
		r.schemes["file"] = fileF
	}
	return r
}

// Download routes the location by scheme.
func (r *Router) Download(ctx context.Context, location string) (io.ReadCloser, error) {
	if strings.TrimSpace(location) == "" {
		return nil, eris.New("fetcher: empty location")
	}

	scheme := ""
	if u, err := url.Parse(location); err == nil {
		scheme = strings.ToLower(u.Scheme)
	}
	// Windows drive letters parse as one-letter schemes.
	if scheme == "" || len(scheme) == 1 {
		if r.files == nil {
			return nil, eris.Errorf("fetcher: no file fetcher for %q", location)
		}
		return r.files.Download(ctx, location)
	}

	f, ok := r.schemes[scheme]
	if !ok {
		return nil, eris.Errorf("fetcher: unsupported scheme %q", scheme)
	}
	return f.Download(ctx, location)
}
