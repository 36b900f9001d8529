package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MolchanovArt/exocortex/internal/models"
)

func newTestServer(t *testing.T, reply string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: reply}}},
		})
	}))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		reply string
		want  models.ItemType
	}{
		{"task", models.ItemTask},
		{" Task\n", models.ItemTask},
		{"idea", models.ItemIdea},
		{"note", models.ItemNote},
		{"noise", models.ItemNoise},
		{"probably a task, hard to say", models.ItemNote}, // off-vocabulary degrades to note
		{"", models.ItemNote},
	}

	for _, tt := range tests {
		srv := newTestServer(t, tt.reply, http.StatusOK)
		client := New("test-key", WithBaseURL(srv.URL))

		got, err := client.Classify(context.Background(), "call the bank tomorrow")
		srv.Close()
		if err != nil {
			t.Fatalf("Classify(%q reply) failed: %v", tt.reply, err)
		}
		if got != tt.want {
			t.Errorf("Classify with reply %q = %q, want %q", tt.reply, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	srv := newTestServer(t, "  Call the bank about the mortgage.\n", http.StatusOK)
	defer srv.Close()

	client := New("test-key", WithBaseURL(srv.URL))
	got, err := client.Summarize(context.Background(), "so I was thinking I really need to call the bank...")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if got != "Call the bank about the mortgage." {
		t.Errorf("Summarize = %q", got)
	}
}

func TestAPIErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limit exceeded"}}`))
	}))
	defer srv.Close()

	client := New("test-key", WithBaseURL(srv.URL))
	if _, err := client.Classify(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestEmptyChoicesIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	client := New("test-key", WithBaseURL(srv.URL))
	if _, err := client.Summarize(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
