package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MolchanovArt/exocortex/internal/logger"
	"github.com/MolchanovArt/exocortex/internal/models"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"

	classifyPrompt = "You sort captured thoughts for a personal productivity system. " +
		"Reply with exactly one word: task, idea, note, or noise. " +
		"task = something actionable, idea = a thought worth developing, " +
		"note = information worth keeping, noise = everything else."

	summarizePrompt = "Rewrite the captured text as a single short imperative sentence " +
		"suitable as a task or note title. Reply with the sentence only."
)

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   defaultModel,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Classify assigns one of the item categories to the captured text. An
// off-vocabulary model reply degrades to note rather than failing.
func (c *Client) Classify(ctx context.Context, text string) (models.ItemType, error) {
	reply, err := c.complete(ctx, classifyPrompt, text)
	if err != nil {
		return "", err
	}

	switch models.ItemType(strings.ToLower(strings.TrimSpace(reply))) {
	case models.ItemTask:
		return models.ItemTask, nil
	case models.ItemIdea:
		return models.ItemIdea, nil
	case models.ItemNoise:
		return models.ItemNoise, nil
	default:
		return models.ItemNote, nil
	}
}

// Summarize produces a one-line summary of the captured text.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	reply, err := c.complete(ctx, summarizePrompt, text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	// Correlation ID for matching local log lines to provider-side request logs.
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("classification request failed (request %s): %w", requestID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read classification response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse classification response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Debug("classification API error", "request_id", requestID, "status", resp.StatusCode)
		if parsed.Error != nil {
			return "", fmt.Errorf("classification API error (status %d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("classification API returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("classification API returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
