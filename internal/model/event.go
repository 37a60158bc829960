package model

// EventType identifies the kind of inbound transport event.
type EventType string

const (
	EventMessage EventType = "message"       // raw text
	EventVoice   EventType = "voice"         // opaque audio-file reference
	EventReply   EventType = "reply_message" // confirmation-button payload
	EventTask    EventType = "task"          // request for the current list
)

// InboundEvent is the envelope the messaging transport hands to the pipeline.
type InboundEvent struct {
	Type   EventType
	UserID string
	Text   string
	FileID string
	// Payload carries the confirmation-button callback data for reply events.
	Payload string
}

// Environment names, used by the HTTP server for mode decisions.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)
