package telegram

import (
	"fmt"
	"strconv"
)

const linkHost = "t.me"

// MessageLink builds the canonical deep link to the origin of a forwarded
// channel or group message. Channel chat ids carry a "-100" prefix that is
// not part of the public link, so the first four characters are stripped.
// Returns "" when the message was not forwarded from a channel or group.
func MessageLink(msg *Message) string {
	if msg == nil || msg.ForwardFromChat == nil || msg.ForwardFromMessageID == 0 {
		return ""
	}
	chatID := strconv.FormatInt(msg.ForwardFromChat.ID, 10)
	if len(chatID) > 4 {
		chatID = chatID[4:]
	}
	return fmt.Sprintf("https://%s/c/%s/%d", linkHost, chatID, msg.ForwardFromMessageID)
}
