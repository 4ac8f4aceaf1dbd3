package dto

import (
	"time"

	"party-advisor-be/pkg/response"
)

type CreateSessionRequest struct {
	Mode string `json:"mode" validate:"omitempty,oneof=standard pro"`
}

type SessionResponse struct {
	Id            string    `json:"id"`
	Mode          string    `json:"mode"`
	DocumentCount int       `json:"document_count"`
	PendingCount  int       `json:"pending_count"`
	MessageCount  int       `json:"message_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type SetModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=standard pro"`
}

type SendChatRequest struct {
	Question string `json:"question" validate:"required"`
}

type ChatMessageResponse struct {
	Id             string                   `json:"id"`
	Speaker        string                   `json:"speaker"`
	RawText        string                   `json:"raw_text"`
	ReasoningTrace string                   `json:"reasoning_trace,omitempty"`
	Status         string                   `json:"status"`
	Parsed         *response.ParsedResponse `json:"parsed,omitempty"`
	AttachedFiles  []DocumentResponse       `json:"attached_files,omitempty"`
	SpeechState    string                   `json:"speech_state,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
}

// StreamSnapshot is emitted after every chunk of a streamed reply.
type StreamSnapshot struct {
	SessionId      string                  `json:"session_id"`
	MessageId      string                  `json:"message_id"`
	RawText        string                  `json:"raw_text"`
	ReasoningTrace string                  `json:"reasoning_trace,omitempty"`
	Parsed         response.ParsedResponse `json:"parsed"`
	Done           bool                    `json:"done"`
	Failed         bool                    `json:"failed"`
}

type ChatTurnResponse struct {
	SessionId string               `json:"session_id"`
	Sent      *ChatMessageResponse `json:"sent"`
	Reply     *ChatMessageResponse `json:"reply"`
	Failed    bool                 `json:"failed"`
}

type ShareResponse struct {
	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
}

type SpeechResponse struct {
	MessageId  string  `json:"message_id"`
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	Duration   float64 `json:"duration_seconds"`
	Peak       float64 `json:"peak"`
	Audio      string  `json:"audio_base64"`
}
