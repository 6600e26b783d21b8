package session

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/SeagCha/Nelegal/internal/fsstore"
)

// persistedSession is the on-disk shape of one session, keyed by stringified
// user id in a single JSON document. Pending state and conversation history
// are deliberately not persisted.
type persistedSession struct {
	Mode    string   `json:"mode"`
	Records []Record `json:"info_message"`
}

// Store keeps all sessions and their durable snapshots. Live sessions are
// handed out once and then owned by the caller (one worker per user); the
// store itself only guards the maps and the state file. Every save rewrites
// the whole document, last writer wins.
type Store struct {
	mu   sync.Mutex
	path string
	live map[int64]*Session
	snap map[string]persistedSession
}

// Open loads the session document at path. A missing file yields an empty
// store.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		live: make(map[int64]*Session),
		snap: make(map[string]persistedSession),
	}
	found, err := fsstore.ReadJSON(path, &s.snap)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	if found {
		slog.Info("sessions_loaded", "path", path, "count", len(s.snap))
	}
	return s, nil
}

// Get returns the live session for userID, restoring it from the last
// persisted snapshot or creating a fresh one. The returned session must only
// be used by the worker that owns this user.
func (s *Store) Get(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.live[userID]; ok {
		return sess
	}

	sess := NewSession(userID)
	if ps, ok := s.snap[storeKey(userID)]; ok {
		// An unknown persisted mode is kept as-is; the router resets it to
		// idle on the next event.
		sess.Mode = Mode(ps.Mode)
		sess.Records = append([]Record(nil), ps.Records...)
	}
	s.live[userID] = sess
	return sess
}

// Save snapshots sess and rewrites the whole document. The caller must be the
// owner of sess; other users' data is written from their last snapshots, so a
// concurrent mutation elsewhere is never observed mid-flight.
func (s *Store) Save(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := sess.Records
	if records == nil {
		records = []Record{}
	}
	s.snap[storeKey(sess.UserID)] = persistedSession{
		Mode:    string(sess.Mode),
		Records: append([]Record(nil), records...),
	}
	return fsstore.WriteJSONAtomic(s.path, s.snap, fsstore.FileOptions{})
}

func storeKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
