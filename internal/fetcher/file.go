package fetcher

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// FileFetcher reads sources from the local filesystem, optionally relative
// to a base directory.
type FileFetcher struct {
	baseDir string
}

// NewFileFetcher creates a FileFetcher rooted at baseDir ("" means cwd).
func NewFileFetcher(baseDir string) *FileFetcher {
	return &FileFetcher{baseDir: baseDir}
}

// Download opens a plain path or a file:// URL.
func (f *FileFetcher) Download(ctx context.Context, location string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "file: context cancelled")
	}

	path := location
	if u, err := url.Parse(location); err == nil && u.Scheme == "file" {
		path = u.Path
	}
	if !filepath.IsAbs(path) && f.baseDir != "" {
		path = filepath.Join(f.baseDir, path)
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, eris.Wrapf(ErrNotFound, "file: %s", path)
		}
		return nil, eris.Wrap(err, "file: open")
	}
	return file, nil
}
