package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// Update is a single entry from the Bot API getUpdates response.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message is the subset of the Bot API message object the importer needs.
type Message struct {
	MessageID int64 `json:"message_id"`
	From      *struct {
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
	} `json:"from"`
	Chat struct {
		ID int64 `json:"id"`
	} `json:"chat"`
	Date int64  `json:"date"`
	Text string `json:"text"`
	Raw  json.RawMessage `json:"-"`
}

// Sender returns the best available display name for the author.
func (m *Message) Sender() string {
	if m.From == nil {
		return ""
	}
	if m.From.Username != "" {
		return m.From.Username
	}
	return m.From.FirstName
}

// SentAt converts the Bot API unix timestamp.
func (m *Message) SentAt() time.Time {
	return time.Unix(m.Date, 0).UTC()
}

// Client is a minimal Telegram Bot API client covering getUpdates.
type Client struct {
	apiBase string
	token   string
	http    *http.Client
}

type Option func(*Client)

// WithAPIBase overrides the Bot API host, used in tests.
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

func New(token string, opts ...Option) *Client {
	c := &Client{
		apiBase: defaultAPIBase,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type updatesResponse struct {
	OK          bool              `json:"ok"`
	Description string            `json:"description"`
	Result      []json.RawMessage `json:"result"`
}

// GetUpdates fetches pending updates with update_id > offset. Each
// returned Update carries the raw message JSON for archival.
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	q := url.Values{}
	if offset > 0 {
		q.Set("offset", strconv.FormatInt(offset, 10))
	}
	q.Set("timeout", "0")

	endpoint := fmt.Sprintf("%s/bot%s/getUpdates?%s", c.apiBase, c.token, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read telegram response: %w", err)
	}

	var parsed updatesResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse telegram response: %w", err)
	}
	if !parsed.OK {
		return nil, fmt.Errorf("telegram API error: %s", parsed.Description)
	}

	updates := make([]Update, 0, len(parsed.Result))
	for _, raw := range parsed.Result {
		var u Update
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, fmt.Errorf("failed to parse telegram update: %w", err)
		}
		if u.Message != nil {
			var envelope struct {
				Message json.RawMessage `json:"message"`
			}
			if err := json.Unmarshal(raw, &envelope); err == nil {
				u.Message.Raw = envelope.Message
			}
		}
		updates = append(updates, u)
	}
	return updates, nil
}
