package telegram

import (
	"strings"

	"github.com/SeagCha/Nelegal/session"
)

// FragmentFromMessage reduces a Telegram message to the fragment shape the
// session layer works with. The boolean is false for content types the bot
// does not handle (location, contact, poll, ...).
func FragmentFromMessage(msg *Message) (session.Fragment, bool) {
	if msg == nil {
		return session.Fragment{}, false
	}

	var frag session.Fragment
	switch {
	case msg.Text != "":
		frag.Kind = session.FragmentText
		frag.Text = strings.TrimSpace(msg.Text)
	case hasMedia(msg):
		frag.Kind = session.FragmentMedia
		frag.Text = strings.TrimSpace(msg.Caption)
	default:
		return session.Fragment{}, false
	}

	if msg.ForwardFrom != nil || msg.ForwardFromChat != nil {
		frag.Forwarded = true
		frag.SourceLink = MessageLink(msg)
	}
	return frag, true
}

func hasMedia(msg *Message) bool {
	return len(msg.Photo) > 0 ||
		msg.Video != nil ||
		msg.Document != nil ||
		msg.Audio != nil ||
		msg.Voice != nil ||
		msg.Sticker != nil ||
		msg.VideoNote != nil
}
