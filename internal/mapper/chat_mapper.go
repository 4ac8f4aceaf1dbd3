package mapper

import (
	"party-advisor-be/internal/dto"
	"party-advisor-be/pkg/response"
	"party-advisor-be/pkg/store"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) SessionToResponse(s *store.Session) *dto.SessionResponse {
	if s == nil {
		return nil
	}
	return &dto.SessionResponse{
		Id:            s.ID,
		Mode:          string(s.Mode()),
		DocumentCount: len(s.Documents()),
		PendingCount:  len(s.Pending()),
		MessageCount:  len(s.Messages()),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt(),
	}
}

// MessageToResponse projects a message; assistant replies carry their parsed
// sections, recomputed on every call.
func (m *ChatMapper) MessageToResponse(msg store.Message) *dto.ChatMessageResponse {
	res := &dto.ChatMessageResponse{
		Id:             msg.ID,
		Speaker:        string(msg.Speaker),
		RawText:        msg.RawText,
		ReasoningTrace: msg.ReasoningTrace,
		Status:         string(msg.Status),
		CreatedAt:      msg.CreatedAt,
	}
	if msg.Speaker == store.SpeakerAssistant {
		parsed := response.Parse(msg.RawText)
		res.Parsed = &parsed
	}
	for _, f := range msg.AttachedFiles {
		res.AttachedFiles = append(res.AttachedFiles, *DocumentToResponse(f))
	}
	return res
}

func (m *ChatMapper) MessagesToResponse(msgs []store.Message) []*dto.ChatMessageResponse {
	out := make([]*dto.ChatMessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, m.MessageToResponse(msg))
	}
	return out
}

func (m *ChatMapper) Snapshot(sessionID string, msg store.Message, done bool) dto.StreamSnapshot {
	return dto.StreamSnapshot{
		SessionId:      sessionID,
		MessageId:      msg.ID,
		RawText:        msg.RawText,
		ReasoningTrace: msg.ReasoningTrace,
		Parsed:         response.Parse(msg.RawText),
		Done:           done,
		Failed:         msg.Status == store.StatusFailed,
	}
}
