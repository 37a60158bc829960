package model

// Queue message shapes. Each queue exclusively owns its messages between
// enqueue and dequeue; at most one worker processes a given message.
// The ID is attached at enqueue time for log correlation only.

// TextMessage travels the inboundText, decodedCommand and outboundText queues.
type TextMessage struct {
	ID     string
	UserID string
	Text   string
}

// VoiceMessage travels the inboundVoice queue.
type VoiceMessage struct {
	ID     string
	UserID string
	FileID string
}

// KeyboardButton is one user-facing choice control.
type KeyboardButton struct {
	Label   string
	Payload string
}

// PromptMessage travels the outboundConfirmPrompt queue: a question plus an
// inline keyboard, one button per row.
type PromptMessage struct {
	ID       string
	UserID   string
	Text     string
	Keyboard [][]KeyboardButton
}

// ActionMessage travels the confirmedAction queue after the user presses a
// confirmation button.
type ActionMessage struct {
	ID      string
	UserID  string
	Payload string
}
