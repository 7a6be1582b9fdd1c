// Package assemblyai resolves call records from the call-recording
// platform's export feed and hydrates missing summaries from AssemblyAI
// transcripts.
package assemblyai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/account-intel/internal/domain/sources"
)

const transcriptExcerptLimit = 2000

// Client implements sources.CallSource
type Client struct {
	feedURL   string
	feedToken string
	http      *http.Client
	sdk       *aai.Client
	logger    *zap.Logger
}

// NewClient creates a call source over the export feed. apiKey may be
// empty, which disables transcript hydration.
func NewClient(feedURL, feedToken, apiKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		feedURL:   feedURL,
		feedToken: feedToken,
		http:      &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}
	if apiKey != "" {
		sdk := aai.NewClient(apiKey)
		c.sdk = sdk
	}
	return c
}

// FetchCalls lists call records for an account domain since the given
// time. Records that reference an AssemblyAI transcript and carry no
// summary get a transcript excerpt instead; a failed hydration keeps
// the record as-is.
func (c *Client) FetchCalls(ctx context.Context, accountDomain string, since time.Time) ([]sources.CallRecord, error) {
	records, err := c.fetchFeed(ctx, accountDomain, since)
	if err != nil {
		return nil, err
	}

	for i := range records {
		rec := &records[i]
		if rec.Summary != "" || rec.TranscriptID == "" || c.sdk == nil {
			continue
		}
		excerpt, err := c.transcriptExcerpt(ctx, rec.TranscriptID)
		if err != nil {
			c.logger.Warn("transcript hydration failed",
				zap.String("call_id", rec.ID),
				zap.String("transcript_id", rec.TranscriptID),
				zap.Error(err))
			continue
		}
		rec.Summary = excerpt
	}

	return records, nil
}

func (c *Client) fetchFeed(ctx context.Context, accountDomain string, since time.Time) ([]sources.CallRecord, error) {
	q := url.Values{}
	q.Set("domain", accountDomain)
	q.Set("since", since.UTC().Format(time.RFC3339))

	var records []sources.CallRecord
	fetchFn := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL+"?"+q.Encode(), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.feedToken)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("call feed returned status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("call feed returned status %d", resp.StatusCode))
		}

		records = records[:0]
		if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode call feed: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxElapsedTime = 20 * time.Second

	if err := backoff.Retry(fetchFn, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) transcriptExcerpt(ctx context.Context, transcriptID string) (string, error) {
	transcript, err := c.sdk.Transcripts.Get(ctx, transcriptID)
	if err != nil {
		return "", err
	}
	if transcript.Status != aai.TranscriptStatusCompleted {
		return "", fmt.Errorf("transcript %s not completed (status %s)", transcriptID, transcript.Status)
	}
	if transcript.Text == nil {
		return "", fmt.Errorf("transcript %s has no text", transcriptID)
	}

	text := *transcript.Text
	if len(text) > transcriptExcerptLimit {
		text = text[:transcriptExcerptLimit]
	}
	return text, nil
}
