package session

import (
	"context"
	"strings"
	"testing"

	"github.com/SeagCha/Nelegal/llm"
)

func TestBuildStructuredText(t *testing.T) {
	t.Parallel()

	records := []Record{
		{UserText: "remember this", ForwardedText: Unknown, Link: Unknown},
		{UserText: Unknown, ForwardedText: "forwarded post", Link: "https://t.me/c/123/7"},
	}
	got := BuildStructuredText(records)

	want := "1. My text:\nremember this\n" +
		"2. Forwarded post text:\nunknown\n" +
		"3. Post link:\nunknown\n\n" +
		"1. My text:\nunknown\n" +
		"2. Forwarded post text:\nforwarded post\n" +
		"3. Post link:\nhttps://t.me/c/123/7"
	if got != want {
		t.Errorf("BuildStructuredText() = %q, want %q", got, want)
	}
}

func TestBuildStructuredTextEmpty(t *testing.T) {
	t.Parallel()

	if got := BuildStructuredText(nil); got != "" {
		t.Errorf("BuildStructuredText(nil) = %q", got)
	}
}

func TestConvertLinks(t *testing.T) {
	t.Parallel()

	in := `see <a href="https://example.com/x">the docs</a> here`
	want := "see the docs (https://example.com/x) here"
	if got := ConvertLinks(in); got != want {
		t.Errorf("ConvertLinks() = %q, want %q", got, want)
	}

	plain := "no anchors at all"
	if got := ConvertLinks(plain); got != plain {
		t.Errorf("ConvertLinks() changed plain text: %q", got)
	}
}

type captureClient struct {
	got llm.Request
}

func (c *captureClient) Chat(ctx context.Context, req llm.Request) (llm.Result, error) {
	c.got = req
	return llm.Result{Text: "done"}, nil
}

func TestAssistantSummarizePrimesConversation(t *testing.T) {
	t.Parallel()

	client := &captureClient{}
	a := Assistant{Client: client, Model: "gpt-4o", Temperature: 0.8}

	out, err := a.Summarize(context.Background(), "1. My text:\nhello")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if out != "done" {
		t.Errorf("Summarize() = %q", out)
	}
	msgs := client.got.Messages
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want 3", len(msgs))
	}
	if msgs[0].Role != llm.RoleUser || !strings.Contains(msgs[0].Content, "structure") {
		t.Errorf("priming turn = %+v", msgs[0])
	}
	if msgs[1] != (llm.Message{Role: llm.RoleAssistant, Content: summaryReady}) {
		t.Errorf("ready turn = %+v", msgs[1])
	}
	if msgs[2].Content != "1. My text:\nhello" {
		t.Errorf("structured turn = %+v", msgs[2])
	}
	if client.got.Model != "gpt-4o" || client.got.Temperature != 0.8 {
		t.Errorf("request = %+v", client.got)
	}
}

func TestAssistantReplySendsFullHistory(t *testing.T) {
	t.Parallel()

	client := &captureClient{}
	a := Assistant{Client: client, Model: "gpt-4o"}

	history := []llm.Message{
		{Role: llm.RoleUser, Content: "one"},
		{Role: llm.RoleAssistant, Content: "two"},
		{Role: llm.RoleUser, Content: "three"},
	}
	if _, err := a.Reply(context.Background(), history); err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if len(client.got.Messages) != 3 {
		t.Errorf("messages sent = %+v", client.got.Messages)
	}
}
