package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// FetchResult is the discriminated outcome of a single API fetch. A failed
// fetch carries its error instead of being silently dropped, so the caller
// can render an explicit error state.
type FetchResult struct {
	Endpoint string
	Body     json.RawMessage
	Err      error
}

// OK reports whether the fetch succeeded.
func (r FetchResult) OK() bool {
	return r.Err == nil
}

// Fetcher performs the authenticated API reads on behalf of the client.
type Fetcher struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewFetcher creates a fetcher that presents token as a bearer credential.
func NewFetcher(baseURL, token string) *Fetcher {
	return &Fetcher{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{},
	}
}

// FetchAll runs the profile and user-data fetches concurrently. The two are
// independent: neither waits on nor is blocked by the other's failure, and
// nothing is retried.
func (f *Fetcher) FetchAll(ctx context.Context) (profile, userData FetchResult) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		profile = f.fetch(ctx, "/api/profile")
	}()
	go func() {
		defer wg.Done()
		userData = f.fetch(ctx, "/api/user-data")
	}()

	wg.Wait()
	return profile, userData
}

func (f *Fetcher) fetch(ctx context.Context, path string) FetchResult {
	result := FetchResult{Endpoint: path}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		result.Err = fmt.Errorf("create request: %w", err)
		return result
	}
	req.Header.Set("Authorization", "Bearer "+f.token)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		result.Err = fmt.Errorf("fetch %s: %w", path, err)
		return result
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Err = fmt.Errorf("read %s response: %w", path, err)
		return result
	}
	if resp.StatusCode != http.StatusOK {
		result.Err = fmt.Errorf("fetch %s: unexpected status %d: %s", path, resp.StatusCode, body)
		return result
	}

	result.Body = body
	return result
}
