package reminder

import "remindme/internal/model"

// Reply is the outcome of handling one user message. When Keyboard is
// non-nil the reply is a confirmation prompt and must be sent with the
// attached choice controls; otherwise it is a plain text answer.
type Reply struct {
	Text     string
	Keyboard [][]model.KeyboardButton
}

// Prompt reports whether the reply carries a confirmation keyboard.
func (r Reply) Prompt() bool {
	return r.Keyboard != nil
}
