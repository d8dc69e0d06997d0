package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	got []string
}

func (s *stubFetcher) Download(_ context.Context, location string) (io.ReadCloser, error) {
	s.got = append(s.got, location)
	return io.NopCloser(strings.NewReader(location)), nil
}

func TestRouter_DispatchesByScheme(t *testing.T) {
	httpF, ftpF, fileF := &stubFetcher{}, &stubFetcher{}, &stubFetcher{}
	r := NewRouter(httpF, ftpF, fileF)

	for _, loc := range []string{
		"https://example.in/a.csv",
		"http://example.in/b.csv",
		"ftp://example.in/c.csv",
		"file:///tmp/d.csv",
		"data/e.csv",
		"/abs/f.csv",
	} {
		rc, err := r.Download(context.Background(), loc)
		require.NoError(t, err, loc)
		rc.Close() //nolint:errcheck
	}

	assert.Equal(t, []string{"https://example.in/a.csv", "http://example.in/b.csv"}, httpF.got)
	assert.Equal(t, []string{"ftp://example.in/c.csv"}, ftpF.got)
	assert.Equal(t, []string{"file:///tmp/d.csv", "data/e.csv", "/abs/f.csv"}, fileF.got)
}

func TestRouter_Errors(t *testing.T) {
	r := NewRouter(nil, nil, &stubFetcher{})

	_, err := r.Download(context.Background(), "")
	require.Error(t, err)

	_, err = r.Download(context.Background(), "s3://bucket/key.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme")

	_, err = r.Download(context.Background(), "https://example.in/a.csv")
	require.Error(t, err)
}

func TestRouter_WithRealHTTPAndFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("remote")) //nolint:errcheck
	}))
	defer srv.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.csv"), []byte("local"), 0o644))

	r := NewRouter(newTestFetcher(), NewFTPFetcher(FTPOptions{}), NewFileFetcher(dir))

	rc, err := r.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close() //nolint:errcheck
	assert.Equal(t, "remote", string(data))

	rc, err = r.Download(context.Background(), "local.csv")
	require.NoError(t, err)
	data, _ = io.ReadAll(rc)
	rc.Close() //nolint:errcheck
	assert.Equal(t, "local", string(data))
}

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CITY_CLUSTERS.csv")
	require.NoError(t, os.WriteFile(path, []byte("State,City\n"), 0o644))

	f := NewFileFetcher("")

	rc, err := f.Download(context.Background(), path)
	require.NoError(t, err)
	rc.Close() //nolint:errcheck

	rc, err = f.Download(context.Background(), "file://"+path)
	require.NoError(t, err)
	rc.Close() //nolint:errcheck

	_, err = f.Download(context.Background(), filepath.Join(dir, "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
