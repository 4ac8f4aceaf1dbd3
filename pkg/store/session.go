package store

import (
	"sync"
	"time"

	"party-advisor-be/pkg/knowledge"
)

// Mode selects the generation profile of a session.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModePro      Mode = "pro"
)

func (m Mode) Valid() bool {
	return m == ModeStandard || m == ModePro
}

type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

type MessageStatus string

const (
	StatusStreaming MessageStatus = "streaming"
	StatusFinal     MessageStatus = "final"
	StatusFailed    MessageStatus = "failed"
)

// KnowledgeDocument is a categorized reference file sent as model context.
type KnowledgeDocument struct {
	ID            string             `json:"id"`
	DisplayName   string             `json:"display_name"`
	MIMEType      string             `json:"mime_type"`
	Payload       []byte             `json:"-"`
	Category      knowledge.Category `json:"category"`
	ExtractedText string             `json:"-"`
	UploadedAt    time.Time          `json:"uploaded_at"`
}

// PendingDocument waits for the user to pick a category.
type PendingDocument struct {
	ID            string    `json:"id"`
	DisplayName   string    `json:"display_name"`
	MIMEType      string    `json:"mime_type"`
	Payload       []byte    `json:"-"`
	ExtractedText string    `json:"-"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// Promote turns the pending document into a knowledge document.
func (p PendingDocument) Promote(category knowledge.Category) KnowledgeDocument {
	return KnowledgeDocument{
		ID:            p.ID,
		DisplayName:   p.DisplayName,
		MIMEType:      p.MIMEType,
		Payload:       p.Payload,
		Category:      category,
		ExtractedText: p.ExtractedText,
		UploadedAt:    p.UploadedAt,
	}
}

// Message is one turn of the conversation.
type Message struct {
	ID             string              `json:"id"`
	Speaker        Speaker             `json:"speaker"`
	RawText        string              `json:"raw_text"`
	ReasoningTrace string              `json:"reasoning_trace,omitempty"`
	AttachedFiles  []KnowledgeDocument `json:"attached_files,omitempty"`
	Status         MessageStatus       `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
}

// Session represents the active conversation state in memory.
// All mutation goes through its methods, which serialize on mu.
type Session struct {
	ID        string
	OwnerID   string
	CreatedAt time.Time

	mu        sync.RWMutex
	mode      Mode
	documents []KnowledgeDocument
	pending   []PendingDocument
	messages  []Message
	updatedAt time.Time
}

func NewSession(id, ownerID string, mode Mode) *Session {
	now := time.Now()
	if !mode.Valid() {
		mode = ModeStandard
	}
	return &Session{
		ID:        id,
		OwnerID:   ownerID,
		CreatedAt: now,
		mode:      mode,
		updatedAt: now,
	}
}

func (s *Session) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	s.touch()
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// Documents returns a copy of the knowledge documents in upload order.
func (s *Session) Documents() []KnowledgeDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]KnowledgeDocument(nil), s.documents...)
}

func (s *Session) AddDocument(doc KnowledgeDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, doc)
	s.touch()
}

func (s *Session) RemoveDocument(id string) (KnowledgeDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.documents {
		if d.ID == id {
			s.documents = append(s.documents[:i], s.documents[i+1:]...)
			s.touch()
			return d, true
		}
	}
	return KnowledgeDocument{}, false
}

func (s *Session) Pending() []PendingDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]PendingDocument(nil), s.pending...)
}

func (s *Session) AddPending(doc PendingDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, doc)
	s.touch()
}

// TakePending removes and returns a pending document.
func (s *Session) TakePending(id string) (PendingDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.pending {
		if p.ID == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			s.touch()
			return p, true
		}
	}
	return PendingDocument{}, false
}

// ResolvePending promotes a pending document in a single step.
func (s *Session) ResolvePending(id string, category knowledge.Category) (KnowledgeDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.pending {
		if p.ID == id {
			doc := p.Promote(category)
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			s.documents = append(s.documents, doc)
			s.touch()
			return doc, true
		}
	}
	return KnowledgeDocument{}, false
}

// Messages returns a copy of the conversation in chronological order.
func (s *Session) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Message(nil), s.messages...)
}

func (s *Session) Message(id string) (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.messages[i], true
	}
	return Message{}, false
}

// BeginTurn snapshots the prior history and knowledge, then appends the user
// message and an empty streaming assistant message.
func (s *Session) BeginTurn(user, assistant Message) (history []Message, docs []KnowledgeDocument, mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history = append([]Message(nil), s.messages...)
	docs = append([]KnowledgeDocument(nil), s.documents...)
	mode = s.mode

	s.messages = append(s.messages, user, assistant)
	s.touch()
	return history, docs, mode
}

// UpdateMessage replaces the text of a streaming message. Finalized messages
// are left untouched.
func (s *Session) UpdateMessage(id, rawText, reasoning string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 || s.messages[i].Status != StatusStreaming {
		return false
	}
	s.messages[i].RawText = rawText
	s.messages[i].ReasoningTrace = reasoning
	s.touch()
	return true
}

// FinalizeMessage freezes a streaming message with its final text and status.
func (s *Session) FinalizeMessage(id, rawText, reasoning string, status MessageStatus) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 || s.messages[i].Status != StatusStreaming {
		return Message{}, false
	}
	s.messages[i].RawText = rawText
	s.messages[i].ReasoningTrace = reasoning
	s.messages[i].Status = status
	s.touch()
	return s.messages[i], true
}

func (s *Session) indexOf(id string) int {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].ID == id {
			return i
		}
	}
	return -1
}

// touch must be called with mu held.
func (s *Session) touch() {
	s.updatedAt = time.Now()
}
