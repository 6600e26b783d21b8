package session

import (
	"fmt"
	"regexp"
	"strings"
)

// summaryPrompt primes the completion endpoint for the structured note format
// before the accumulated records are sent. The canned assistant acknowledgment
// below keeps the real records as the final user turn.
const summaryPrompt = "Your job is to structure, analyze and format the notes I send you. " +
	"Every request uses numbered blocks: '1. My text' is my own annotation, " +
	"'2. Forwarded post text' is the content of a forwarded post ('unknown' means there is no post), " +
	"'3. Post link' is the link to the post ('unknown' means no link is available). " +
	"Sort the entries into sections such as reminders, calendar items, notes and post-related information, " +
	"keep every link in the output even when the target is inaccessible, " +
	"and write a short headline for each forwarded post you can analyze. " +
	"Reply only 'Ready to work.' and I will start sending notes."

const summaryReady = "Ready to work."

var hrefRe = regexp.MustCompile(`<a href="([^"]+)">([^<]+)</a>`)

// BuildStructuredText renders finalized records into the numbered block
// format the summary prompt describes.
func BuildStructuredText(records []Record) string {
	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "1. My text:\n%s\n", rec.UserText)
		fmt.Fprintf(&b, "2. Forwarded post text:\n%s\n", rec.ForwardedText)
		fmt.Fprintf(&b, "3. Post link:\n%s\n\n", rec.Link)
	}
	return strings.TrimSpace(b.String())
}

// ConvertLinks rewrites HTML anchors into a plain "text (url)" form so the
// completion endpoint sees the link target instead of markup.
func ConvertLinks(text string) string {
	return hrefRe.ReplaceAllString(text, "$2 ($1)")
}
