package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SeagCha/Nelegal/llm"
)

func TestChatParsesChoiceAndUsage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}
		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "gpt-4o" {
			t.Errorf("unexpected model: %q", req.Model)
		}
		if req.Temperature != 0.8 {
			t.Errorf("unexpected temperature: %f", req.Temperature)
		}
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"content": "hello back"}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key")
	res, err := c.Chat(context.Background(), llm.Request{
		Model:       "gpt-4o",
		Temperature: 0.8,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if res.Text != "hello back" {
		t.Errorf("unexpected text: %q", res.Text)
	}
	if res.Usage.TotalTokens != 15 {
		t.Errorf("unexpected usage: %+v", res.Usage)
	}
}

func TestChatSurfacesAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "wrong")
	_, err := c.Chat(context.Background(), llm.Request{Model: "gpt-4o"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "openai http 401: bad key" {
		t.Errorf("unexpected error: %q", got)
	}
}

func TestChatRejectsEmptyChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k")
	if _, err := c.Chat(context.Background(), llm.Request{Model: "gpt-4o"}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
