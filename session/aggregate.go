package session

import "time"

// DefaultWindow is the debounce window after which an untouched pending entry
// is finalized before the next fragment is absorbed. Rapid-fire messages (a
// forwarded post followed by the user's own comment) merge into one record;
// messages separated by a longer pause become independent records.
const DefaultWindow = 1 * time.Second

// Finalize copies a non-empty pending entry into a record and returns a fresh
// empty buffer. Pure empty entries are dropped: the boolean is false and no
// record is produced.
func Finalize(p Pending) (Record, bool, Pending) {
	if p.Empty() {
		return Record{}, false, NewPending()
	}
	rec := Record{
		UserText:      p.UserText,
		ForwardedText: p.ForwardedText,
		Link:          p.Link,
	}
	if rec.UserText == "" {
		rec.UserText = Unknown
	}
	return rec, true, NewPending()
}

// Absorb merges a fragment into the pending buffer. When the buffer was last
// touched more than window ago it is finalized first, so the returned record
// (if any) must be appended to the session before the new pending state is
// kept. The window check always runs before the fragment is absorbed.
func Absorb(p Pending, frag Fragment, now time.Time, window time.Duration) (Pending, Record, bool) {
	if window <= 0 {
		window = DefaultWindow
	}

	var (
		rec       Record
		finalized bool
	)
	if !p.LastTouchedAt.IsZero() && now.Sub(p.LastTouchedAt) > window {
		rec, finalized, p = Finalize(p)
	}

	switch frag.Kind {
	case FragmentText, FragmentMedia:
		if frag.Forwarded {
			p.ForwardedText = frag.Text
			if p.ForwardedText == "" {
				p.ForwardedText = Unknown
			}
			p.Link = frag.SourceLink
			if p.Link == "" {
				p.Link = Unknown
			}
		} else {
			p.UserText = frag.Text
		}
	}
	p.LastTouchedAt = now

	return p, rec, finalized
}
