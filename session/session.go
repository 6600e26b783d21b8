package session

import "github.com/SeagCha/Nelegal/llm"

// Mode values double as the persisted representation, so they keep the
// original short names.
type Mode string

const (
	// ModeIdle shows the main menu and waits for a mode selection.
	ModeIdle Mode = "main"
	// ModeCollecting aggregates inbound fragments into records.
	ModeCollecting Mode = "info"
	// ModeConversing relays text turns to the assistant.
	ModeConversing Mode = "gpt"
)

func (m Mode) Known() bool {
	switch m {
	case ModeIdle, ModeCollecting, ModeConversing:
		return true
	}
	return false
}

// Session is the per-user state. Each session is owned by its user's worker;
// only that worker mutates it. Pending and History are volatile: a restart
// loses any unfinalized pending entry and any in-progress conversation.
type Session struct {
	UserID  int64
	Mode    Mode
	Records []Record
	Pending Pending
	History []llm.Message
}

func NewSession(userID int64) *Session {
	return &Session{
		UserID:  userID,
		Mode:    ModeIdle,
		Pending: NewPending(),
	}
}

// AppendFinalized appends a finalized record. Records are never reordered or
// deduplicated; ClearRecords is the only way to shrink the list.
func (s *Session) AppendFinalized(rec Record) {
	s.Records = append(s.Records, rec)
}

// ClearRecords truncates the record list to at most its first element and
// reports whether there was anything to clear.
func (s *Session) ClearRecords() bool {
	if len(s.Records) == 0 {
		return false
	}
	s.Records = s.Records[:1]
	return true
}

// ResetHistory drops the conversation history. Called on every transition
// into or out of ModeConversing so a new conversation always starts clean.
func (s *Session) ResetHistory() {
	s.History = nil
}
