package session

import (
	"context"
	"time"

	"github.com/SeagCha/Nelegal/llm"
)

// Summarizer turns structured note text into a formatted digest. Failures
// surface to the user for that one request; there is no retry.
type Summarizer interface {
	Summarize(ctx context.Context, structured string) (string, error)
}

// Conversationalist answers a chat turn given the full conversation so far.
type Conversationalist interface {
	Reply(ctx context.Context, history []llm.Message) (string, error)
}

// Assistant implements both collaborator contracts on top of an llm.Client.
type Assistant struct {
	Client      llm.Client
	Model       string
	Temperature float64
	Timeout     time.Duration
}

func (a Assistant) Summarize(ctx context.Context, structured string) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleUser, Content: summaryPrompt},
		{Role: llm.RoleAssistant, Content: summaryReady},
		{Role: llm.RoleUser, Content: structured},
	}
	return a.chat(ctx, messages)
}

func (a Assistant) Reply(ctx context.Context, history []llm.Message) (string, error) {
	return a.chat(ctx, history)
}

func (a Assistant) chat(ctx context.Context, messages []llm.Message) (string, error) {
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}
	res, err := a.Client.Chat(ctx, llm.Request{
		Model:       a.Model,
		Messages:    messages,
		Temperature: a.Temperature,
	})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
