package geocode

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// FetchFunc retrieves the raw bytes at url. It returns ErrShardNotFound
// (wrapped or bare, checked with errors.Is) when the shard does not exist,
// and any other error for transport failures.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// ErrShardNotFound is returned by a FetchFunc when the resource at the
// derived URL does not exist.
var ErrShardNotFound = errors.New("geocode: shard not found")

// GunzipFunc decompresses a gzip-framed buffer.
type GunzipFunc func(data []byte) ([]byte, error)

// HTTPFetch returns a FetchFunc backed by client: a plain request/response
// cycle that classifies the result by status code rather than reaching for
// an HTTP client wrapper library.
func HTTPFetch(client *http.Client) FetchFunc {
	return func(ctx context.Context, url string) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("geocode: build request for %s: %w", url, err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("geocode: fetch %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrShardNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("geocode: fetch %s: HTTP %d", url, resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("geocode: read body from %s: %w", url, err)
		}
		return body, nil
	}
}

// StdGunzip decompresses a gzip-framed buffer using the standard library's
// compress/gzip. No pack repo wires a third-party gzip library for this
// exact collaborator concern, and compress/gzip is the obvious default,
// swappable implementation (see DESIGN.md).
func StdGunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("geocode: open gzip stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("geocode: decompress gzip stream: %w", err)
	}
	return out, nil
}
