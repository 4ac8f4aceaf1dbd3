package events

import "time"

const TypeMessageFinalized = "MESSAGE_FINALIZED"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "MESSAGE_FINALIZED").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// MessageFinalized is raised once an assistant reply stops changing.
type MessageFinalized struct {
	SessionID     string    `json:"session_id"`
	MessageID     string    `json:"message_id"`
	SpeakableText string    `json:"speakable_text"`
	Failed        bool      `json:"failed"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (e MessageFinalized) EventType() string {
	return TypeMessageFinalized
}

func (e MessageFinalized) Timestamp() time.Time {
	return e.OccurredAt
}
