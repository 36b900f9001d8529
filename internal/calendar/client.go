package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultAPIBase = "https://www.googleapis.com/calendar/v3"

// EventTime is the Calendar API start/end object: either a full dateTime
// or an all-day date.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

// Resolve parses the event time. All-day dates resolve to midnight in the
// given location. Returns the zero time when neither field is set.
func (et EventTime) Resolve(loc *time.Location) (time.Time, error) {
	if et.DateTime != "" {
		return time.Parse(time.RFC3339, et.DateTime)
	}
	if et.Date != "" {
		return time.ParseInLocation("2006-01-02", et.Date, loc)
	}
	return time.Time{}, nil
}

// Event is the subset of the Calendar API event object the importer needs.
type Event struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       EventTime `json:"start"`
	End         EventTime `json:"end"`
	Raw         json.RawMessage `json:"-"`
}

// Client is a minimal Google Calendar API client covering the events
// list call with a bearer token.
type Client struct {
	apiBase string
	token   string
	http    *http.Client
}

type Option func(*Client)

// WithAPIBase overrides the API host, used in tests.
func WithAPIBase(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.apiBase = base
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(oauthToken string, opts ...Option) *Client {
	c := &Client{
		apiBase: defaultAPIBase,
		token:   oauthToken,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type eventsResponse struct {
	Items         []json.RawMessage `json:"items"`
	NextPageToken string            `json:"nextPageToken"`
	Error         *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ListEvents returns the single (non-recurring-expanded-free) events of a
// calendar between the given times, following pagination.
func (c *Client) ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]Event, error) {
	var events []Event
	pageToken := ""

	for {
		q := url.Values{}
		q.Set("timeMin", from.Format(time.RFC3339))
		q.Set("timeMax", to.Format(time.RFC3339))
		q.Set("singleEvents", "true")
		q.Set("orderBy", "startTime")
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		endpoint := fmt.Sprintf("%s/calendars/%s/events?%s", c.apiBase, url.PathEscape(calendarID), q.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("calendar request failed: %w", err)
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read calendar response: %w", err)
		}

		var parsed eventsResponse
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse calendar response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			if parsed.Error != nil {
				return nil, fmt.Errorf("calendar API error (status %d): %s", resp.StatusCode, parsed.Error.Message)
			}
			return nil, fmt.Errorf("calendar API returned status %d", resp.StatusCode)
		}

		for _, raw := range parsed.Items {
			var ev Event
			if err := json.Unmarshal(raw, &ev); err != nil {
				return nil, fmt.Errorf("failed to parse calendar event: %w", err)
			}
			ev.Raw = raw
			events = append(events, ev)
		}

		if parsed.NextPageToken == "" {
			return events, nil
		}
		pageToken = parsed.NextPageToken
	}
}
