package telegram

import "github.com/SeagCha/Nelegal/session"

type KeyboardButton struct {
	Text string `json:"text"`
}

type ReplyKeyboardMarkup struct {
	Keyboard       [][]KeyboardButton `json:"keyboard"`
	ResizeKeyboard bool               `json:"resize_keyboard,omitempty"`
}

func row(labels ...string) []KeyboardButton {
	buttons := make([]KeyboardButton, 0, len(labels))
	for _, l := range labels {
		buttons = append(buttons, KeyboardButton{Text: l})
	}
	return buttons
}

var (
	mainMenuMarkup = &ReplyKeyboardMarkup{
		Keyboard:       [][]KeyboardButton{row(session.ButtonAddInfo, session.ButtonAskGPT)},
		ResizeKeyboard: true,
	}
	exitOnlyMarkup = &ReplyKeyboardMarkup{
		Keyboard:       [][]KeyboardButton{row(session.ButtonExit)},
		ResizeKeyboard: true,
	}
	infoMenuMarkup = &ReplyKeyboardMarkup{
		Keyboard: [][]KeyboardButton{
			row(session.ButtonShowInfo, session.ButtonClearInfo),
			row(session.ButtonExit),
		},
		ResizeKeyboard: true,
	}
)

// MarkupFor maps a named affordance set to its rendered keyboard. KeyboardNone
// yields nil so the previous keyboard stays on screen.
func MarkupFor(kb session.Keyboard) *ReplyKeyboardMarkup {
	switch kb {
	case session.KeyboardMain:
		return mainMenuMarkup
	case session.KeyboardExit:
		return exitOnlyMarkup
	case session.KeyboardInfo:
		return infoMenuMarkup
	default:
		return nil
	}
}
