package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SeagCha/Nelegal/llm"
)

// Button labels are commands: pressing a reply-keyboard button sends its
// label as a plain text message.
const (
	ButtonAddInfo   = "Add Info"
	ButtonAskGPT    = "Ask GPT"
	ButtonShowInfo  = "Show Info"
	ButtonClearInfo = "Clear Info"
	ButtonExit      = "Exit to main menu"
)

// Keyboard names one of the three affordance sets the transport renders.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardMain
	KeyboardExit
	KeyboardInfo
)

type Reply struct {
	Text     string
	Keyboard Keyboard
}

// Event is one inbound unit, already reduced to the fragment shape by the
// transport layer. Supported is false when the content type is not
// recognized. A zero At falls back to the router clock. Start marks a /start
// command; it bypasses fragment handling entirely and DisplayName carries the
// name to greet with.
type Event struct {
	UserID      int64
	ChatID      int64
	Fragment    Fragment
	Supported   bool
	At          time.Time
	Start       bool
	DisplayName string
}

const (
	replyChooseOption    = "Please choose one of the menu options."
	replyEnterCollecting = "You are now in info collection mode. Everything you send will be saved."
	replyEnterConversing = "You are now chatting with the assistant. Ask your questions."
	replyLeftCollecting  = "You left info collection mode."
	replyGoodbye         = "Goodbye."
	replySaved           = "Saved. Send the next message or press 'Exit to main menu'."
	replyShown           = "Info shown. Send the next message or press 'Exit to main menu'."
	replyNothingSaved    = "Nothing saved yet."
	replyCleared         = "History cleared, only the first record kept."
	replyNothingToClear  = "Nothing saved to clear."
	replyUnsupported     = "This message type is not supported here. Send text or media."
	replyTextOnly        = "Only text messages are supported here."
	replyUnknownMode     = "Something went wrong. You are back at the main menu."
	replySummaryFailed   = "Sorry, I could not prepare the summary. Please try again."
	replyRequestFailed   = "Sorry, the assistant is unavailable right now. Please try again."
)

const greetingFormat = "Hi, %s! My name is nelegal."

type RouterOptions struct {
	Store             *Store
	Summarizer        Summarizer
	Conversationalist Conversationalist
	Window            time.Duration
	HistoryMax        int
	Logger            *slog.Logger
	Now               func() time.Time
}

// Router is the per-user mode state machine. It owns all session mutations
// and persists the store after every event, whether or not state changed.
type Router struct {
	store             *Store
	summarizer        Summarizer
	conversationalist Conversationalist
	window            time.Duration
	historyMax        int
	logger            *slog.Logger
	nowFn             func() time.Time
}

func NewRouter(opts RouterOptions) (*Router, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("session router: store is required")
	}
	if opts.Summarizer == nil {
		return nil, fmt.Errorf("session router: summarizer is required")
	}
	if opts.Conversationalist == nil {
		return nil, fmt.Errorf("session router: conversationalist is required")
	}
	window := opts.Window
	if window <= 0 {
		window = DefaultWindow
	}
	historyMax := opts.HistoryMax
	if historyMax <= 0 {
		historyMax = 20
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	nowFn := opts.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Router{
		store:             opts.Store,
		summarizer:        opts.Summarizer,
		conversationalist: opts.Conversationalist,
		window:            window,
		historyMax:        historyMax,
		logger:            logger,
		nowFn:             nowFn,
	}, nil
}

// Handle applies one inbound event to its user's session and returns the
// replies to send. Events for the same user must be handled in arrival order;
// the aggregation window is timestamp-sensitive.
func (r *Router) Handle(ctx context.Context, ev Event) []Reply {
	sess := r.store.Get(ev.UserID)
	now := ev.At
	if now.IsZero() {
		now = r.nowFn()
	}

	if ev.Start {
		replies := r.handleStart(sess, ev)
		r.save(sess)
		return replies
	}

	var replies []Reply
	switch sess.Mode {
	case ModeIdle:
		replies = r.handleIdle(sess, ev)
	case ModeCollecting:
		replies = r.handleCollecting(ctx, sess, ev, now)
	case ModeConversing:
		replies = r.handleConversing(ctx, sess, ev)
	default:
		r.logger.Error("unknown_mode_reset", "user_id", sess.UserID, "mode", string(sess.Mode))
		sess.Mode = ModeIdle
		sess.ResetHistory()
		replies = []Reply{{Text: replyUnknownMode, Keyboard: KeyboardMain}}
	}

	r.save(sess)
	return replies
}

// handleStart greets the user and brings them back to the main menu. Any
// in-flight pending entry is finalized first so nothing collected is lost;
// records survive, the conversation history does not.
func (r *Router) handleStart(sess *Session, ev Event) []Reply {
	r.finalizePending(sess)
	sess.Mode = ModeIdle
	sess.ResetHistory()
	name := ev.DisplayName
	if name == "" {
		name = "there"
	}
	r.logger.Info("start_command", "user_id", sess.UserID)
	return []Reply{{Text: fmt.Sprintf(greetingFormat, name), Keyboard: KeyboardMain}}
}

func (r *Router) handleIdle(sess *Session, ev Event) []Reply {
	switch command(ev) {
	case ButtonAddInfo:
		sess.Mode = ModeCollecting
		r.logger.Info("mode_changed", "user_id", sess.UserID, "mode", string(ModeCollecting))
		return []Reply{{Text: replyEnterCollecting, Keyboard: KeyboardExit}}
	case ButtonAskGPT:
		sess.Mode = ModeConversing
		sess.ResetHistory()
		r.logger.Info("mode_changed", "user_id", sess.UserID, "mode", string(ModeConversing))
		return []Reply{{Text: replyEnterConversing, Keyboard: KeyboardExit}}
	default:
		return []Reply{{Text: replyChooseOption, Keyboard: KeyboardMain}}
	}
}

func (r *Router) handleCollecting(ctx context.Context, sess *Session, ev Event, now time.Time) []Reply {
	if !ev.Supported {
		return []Reply{{Text: replyUnsupported, Keyboard: KeyboardInfo}}
	}

	switch command(ev) {
	case ButtonExit:
		r.finalizePending(sess)
		sess.Mode = ModeIdle
		r.logger.Info("mode_changed", "user_id", sess.UserID, "mode", string(ModeIdle))
		return []Reply{{Text: replyLeftCollecting, Keyboard: KeyboardMain}}

	case ButtonShowInfo:
		r.finalizePending(sess)
		if len(sess.Records) == 0 {
			return []Reply{{Text: replyNothingSaved, Keyboard: KeyboardInfo}}
		}
		structured := ConvertLinks(BuildStructuredText(sess.Records))
		answer, err := r.summarizer.Summarize(ctx, structured)
		if err != nil {
			// Detail stays in the log; the chat user gets a fixed notice.
			r.logger.Warn("summarize_error", "user_id", sess.UserID, "error", err.Error())
			return []Reply{{Text: replySummaryFailed, Keyboard: KeyboardInfo}}
		}
		return []Reply{
			{Text: answer},
			{Text: replyShown, Keyboard: KeyboardInfo},
		}

	case ButtonClearInfo:
		if sess.ClearRecords() {
			return []Reply{{Text: replyCleared, Keyboard: KeyboardInfo}}
		}
		return []Reply{{Text: replyNothingToClear, Keyboard: KeyboardInfo}}
	}

	var rec Record
	var finalized bool
	sess.Pending, rec, finalized = Absorb(sess.Pending, ev.Fragment, now, r.window)
	if finalized {
		sess.AppendFinalized(rec)
		r.logger.Info("record_finalized", "user_id", sess.UserID, "records", len(sess.Records))
	}
	return []Reply{{Text: replySaved, Keyboard: KeyboardInfo}}
}

func (r *Router) handleConversing(ctx context.Context, sess *Session, ev Event) []Reply {
	if !ev.Supported || ev.Fragment.Kind != FragmentText {
		return []Reply{{Text: replyTextOnly, Keyboard: KeyboardExit}}
	}

	if ev.Fragment.Text == ButtonExit {
		sess.Mode = ModeIdle
		sess.ResetHistory()
		r.logger.Info("mode_changed", "user_id", sess.UserID, "mode", string(ModeIdle))
		return []Reply{{Text: replyGoodbye, Keyboard: KeyboardMain}}
	}

	sess.History = append(sess.History, llm.Message{Role: llm.RoleUser, Content: ev.Fragment.Text})
	answer, err := r.conversationalist.Reply(ctx, sess.History)
	if err != nil {
		// Drop the optimistic user turn so the history never holds a user
		// turn with no matching assistant turn.
		sess.History = sess.History[:len(sess.History)-1]
		r.logger.Warn("converse_error", "user_id", sess.UserID, "error", err.Error())
		return []Reply{{Text: replyRequestFailed, Keyboard: KeyboardExit}}
	}
	sess.History = append(sess.History, llm.Message{Role: llm.RoleAssistant, Content: answer})
	if len(sess.History) > r.historyMax {
		sess.History = sess.History[len(sess.History)-r.historyMax:]
	}
	return []Reply{{Text: answer, Keyboard: KeyboardExit}}
}

func (r *Router) finalizePending(sess *Session) {
	rec, ok, fresh := Finalize(sess.Pending)
	sess.Pending = fresh
	if ok {
		sess.AppendFinalized(rec)
		r.logger.Info("record_finalized", "user_id", sess.UserID, "records", len(sess.Records))
	}
}

func (r *Router) save(sess *Session) {
	if err := r.store.Save(sess); err != nil {
		// In-memory state is kept; the store catches up on the next
		// successful write.
		r.logger.Warn("session_save_error", "user_id", sess.UserID, "error", err.Error())
	}
}

// command returns the text of a plain text fragment, which is how keyboard
// presses arrive. Media never carries a command.
func command(ev Event) string {
	if !ev.Supported || ev.Fragment.Kind != FragmentText {
		return ""
	}
	return ev.Fragment.Text
}
