package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Fetcher opens the raw bytes behind a source
type Fetcher interface {
	Fetch(ctx context.Context, src Source) (io.ReadCloser, error)
}

// FileFetcher reads local files, resolving relative locations against Dir
type FileFetcher struct {
	Dir string
}

func (f *FileFetcher) Fetch(ctx context.Context, src Source) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(resolvePath(f.Dir, src.Location))
}

// HTTPFetcher issues a GET for the location. Any non-2xx status is a failure.
type HTTPFetcher struct {
	Client *http.Client
	Tokens TokenProvider
}

func (f *HTTPFetcher) Fetch(ctx context.Context, src Source) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Location, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	if src.TokenKey != "" && f.Tokens != nil {
		token, err := f.Tokens.Token(src.TokenKey)
		if err != nil {
			return nil, fmt.Errorf("token %q: %w", src.TokenKey, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}
