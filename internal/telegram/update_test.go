package telegram

import (
	"testing"

	"github.com/SeagCha/Nelegal/session"
)

func TestFragmentFromMessageText(t *testing.T) {
	t.Parallel()

	frag, ok := FragmentFromMessage(&Message{Text: "  hello  "})
	if !ok {
		t.Fatal("expected supported fragment")
	}
	if frag.Kind != session.FragmentText || frag.Text != "hello" || frag.Forwarded {
		t.Errorf("fragment = %+v", frag)
	}
}

func TestFragmentFromMessageForwardedText(t *testing.T) {
	t.Parallel()

	frag, ok := FragmentFromMessage(&Message{
		Text:                 "the post",
		ForwardFromChat:      &Chat{ID: -1009876543210},
		ForwardFromMessageID: 7,
	})
	if !ok {
		t.Fatal("expected supported fragment")
	}
	if !frag.Forwarded {
		t.Error("expected forwarded")
	}
	if frag.SourceLink != "https://t.me/c/9876543210/7" {
		t.Errorf("SourceLink = %q", frag.SourceLink)
	}
}

func TestFragmentFromMessageForwardedFromUser(t *testing.T) {
	t.Parallel()

	// Forwarded from a user rather than a channel: forwarded, but no link is
	// derivable.
	frag, ok := FragmentFromMessage(&Message{
		Text:        "private forward",
		ForwardFrom: &User{ID: 5},
	})
	if !ok {
		t.Fatal("expected supported fragment")
	}
	if !frag.Forwarded || frag.SourceLink != "" {
		t.Errorf("fragment = %+v", frag)
	}
}

func TestFragmentFromMessageMediaCaption(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  *Message
	}{
		{"photo", &Message{Photo: []PhotoSize{{FileID: "f"}}, Caption: "cap"}},
		{"video", &Message{Video: &FileRef{FileID: "f"}, Caption: "cap"}},
		{"document", &Message{Document: &FileRef{FileID: "f"}, Caption: "cap"}},
		{"audio", &Message{Audio: &FileRef{FileID: "f"}, Caption: "cap"}},
		{"voice", &Message{Voice: &FileRef{FileID: "f"}, Caption: "cap"}},
		{"sticker", &Message{Sticker: &FileRef{FileID: "f"}, Caption: "cap"}},
		{"video note", &Message{VideoNote: &FileRef{FileID: "f"}, Caption: "cap"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			frag, ok := FragmentFromMessage(tt.msg)
			if !ok {
				t.Fatal("expected supported fragment")
			}
			if frag.Kind != session.FragmentMedia || frag.Text != "cap" {
				t.Errorf("fragment = %+v", frag)
			}
		})
	}
}

func TestFragmentFromMessageUnsupported(t *testing.T) {
	t.Parallel()

	if _, ok := FragmentFromMessage(&Message{}); ok {
		t.Error("empty message must be unsupported")
	}
	if _, ok := FragmentFromMessage(nil); ok {
		t.Error("nil message must be unsupported")
	}
}
