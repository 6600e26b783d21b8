package session

import "time"

// Unknown is the sentinel for an absent record field. It is part of the
// persisted layout, so changing it invalidates existing state files.
const Unknown = "unknown"

// Record is a finalized note entry. Records are immutable once appended to a
// session's list.
type Record struct {
	UserText      string `json:"user_text"`
	ForwardedText string `json:"forwarded_text"`
	Link          string `json:"link"`
}

// Pending is the single in-flight accumulation buffer of a session. A zero
// LastTouchedAt means the buffer has not been touched since it was created.
type Pending struct {
	UserText      string
	ForwardedText string
	Link          string
	LastTouchedAt time.Time
}

func NewPending() Pending {
	return Pending{
		ForwardedText: Unknown,
		Link:          Unknown,
	}
}

// Empty reports whether nothing has been absorbed into the buffer yet.
// The link alone never makes a pending entry non-empty.
func (p Pending) Empty() bool {
	return p.UserText == "" && p.ForwardedText == Unknown
}

type FragmentKind int

const (
	// FragmentText is a plain text message.
	FragmentText FragmentKind = iota
	// FragmentMedia is a photo, video, document, audio, voice, sticker or
	// video note; its Text carries the caption, possibly empty.
	FragmentMedia
)

// Fragment is one inbound unit of user input together with its
// forwarded-origin metadata. SourceLink is already derived by the transport
// layer; empty means no link could be built.
type Fragment struct {
	Kind       FragmentKind
	Text       string
	Forwarded  bool
	SourceLink string
}
