// Package enrichment looks up optional person research from an external
// data provider. A missing person is a normal outcome, not an error.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/account-intel/internal/domain/sources"
)

// Client implements sources.EnrichmentSource
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates an enrichment client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Lookup fetches research for one email. A 404 returns (nil, nil).
func (c *Client) Lookup(ctx context.Context, email string) (*sources.EnrichmentRecord, error) {
	q := url.Values{}
	q.Set("email", email)

	var record *sources.EnrichmentRecord
	fetchFn := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/person?"+q.Encode(), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("X-Api-Key", c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			record = nil
			return nil
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("enrichment provider returned status %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("enrichment provider returned status %d", resp.StatusCode))
		}

		var rec sources.EnrichmentRecord
		if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode enrichment response: %w", err))
		}
		record = &rec
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxElapsedTime = 10 * time.Second

	if err := backoff.Retry(fetchFn, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return record, nil
}
