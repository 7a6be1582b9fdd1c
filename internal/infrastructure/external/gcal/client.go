// Package gcal reads meeting history from the Google Calendar API using
// an offline OAuth2 refresh token.
package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/johnquangdev/account-intel/internal/domain/sources"
)

const eventsURL = "https://www.googleapis.com/calendar/v3/calendars/primary/events"

// Client implements sources.CalendarSource
type Client struct {
	config       *oauth2.Config
	refreshToken string
}

// NewClient creates a calendar client. The refresh token must have been
// granted the calendar.readonly scope.
func NewClient(clientID, clientSecret, refreshToken string) *Client {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes: []string{
			"https://www.googleapis.com/auth/calendar.readonly",
		},
		Endpoint: google.Endpoint,
	}

	return &Client{
		config:       config,
		refreshToken: refreshToken,
	}
}

type eventList struct {
	Items         []eventItem `json:"items"`
	NextPageToken string      `json:"nextPageToken"`
}

type eventItem struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Start       struct {
		DateTime time.Time `json:"dateTime"`
		Date     string    `json:"date"`
	} `json:"start"`
	End struct {
		DateTime time.Time `json:"dateTime"`
	} `json:"end"`
	Attendees []struct {
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
		Resource    bool   `json:"resource"`
	} `json:"attendees"`
}

// FetchEvents lists calendar events in the window, following pagination
func (c *Client) FetchEvents(ctx context.Context, since, until time.Time) ([]sources.CalendarEvent, error) {
	token := &oauth2.Token{RefreshToken: c.refreshToken}
	client := c.config.Client(ctx, token)

	var out []sources.CalendarEvent
	pageToken := ""
	for {
		page, err := c.fetchPage(ctx, client, since, until, pageToken)
		if err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			if item.Status == "cancelled" {
				continue
			}
			start := item.Start.DateTime
			if start.IsZero() && item.Start.Date != "" {
				start, _ = time.Parse("2006-01-02", item.Start.Date)
			}
			ev := sources.CalendarEvent{
				ID:          item.ID,
				Title:       item.Summary,
				Start:       start,
				End:         item.End.DateTime,
				Description: item.Description,
			}
			for _, a := range item.Attendees {
				if a.Resource {
					continue
				}
				ev.Attendees = append(ev.Attendees, sources.CalendarAttendee{
					Email: a.Email,
					Name:  a.DisplayName,
				})
			}
			out = append(out, ev)
		}

		if page.NextPageToken == "" {
			return out, nil
		}
		pageToken = page.NextPageToken
	}
}

func (c *Client) fetchPage(ctx context.Context, client *http.Client, since, until time.Time, pageToken string) (*eventList, error) {
	q := url.Values{}
	q.Set("timeMin", since.UTC().Format(time.RFC3339))
	q.Set("timeMax", until.UTC().Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	q.Set("maxResults", "250")
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, eventsURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("calendar API returned status=%d, body=%s", resp.StatusCode, string(body))
	}

	var page eventList
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode calendar response: %w", err)
	}
	return &page, nil
}
