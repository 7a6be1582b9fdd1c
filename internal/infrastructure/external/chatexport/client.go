// Package chatexport reads account mentions from the internal chat
// platform's search export endpoint.
package chatexport

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

// Client implements sources.ChatSource
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a chat export client
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchMessages searches the export for messages mentioning the account
// name since the given time. Transient failures are retried with
// exponential backoff.
func (c *Client) FetchMessages(ctx context.Context, accountName string, since time.Time) ([]sources.ChatMessage, error) {
	q := url.Values{}
	q.Set("query", accountName)
	q.Set("since", since.UTC().Format(time.RFC3339))

	var messages []sources.ChatMessage
	fetchFn := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/messages/search?"+q.Encode(), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("chat export returned status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("chat export returned status %d", resp.StatusCode))
		}

		messages = messages[:0]
		if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode chat export: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxElapsedTime = 20 * time.Second

	if err := backoff.Retry(fetchFn, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return messages, nil
}
