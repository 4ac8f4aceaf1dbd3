package llm

import (
	"context"
	"strings"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Attachment is an inline binary part sent with a message.
// Text is an optional plain-text rendition for providers that cannot read
// binary documents.
type Attachment struct {
	Name     string
	MIMEType string
	Data     []byte
	Text     string
}

// Message represents a chat turn in a provider-agnostic format
type Message struct {
	Role        string // "user" or "model"
	Content     string
	Preamble    string // text placed before the attachments
	Attachments []Attachment
}

// Chunk is one incremental piece of a streamed reply.
type Chunk struct {
	Text    string
	Thought string
}

// ChunkHandler receives chunks in arrival order. Returning an error aborts
// the stream.
type ChunkHandler func(Chunk) error

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature       float64
	MaxTokens         int
	Model             string // Override default model
	ThinkingBudget    int
	SystemInstruction string
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithThinkingBudget caps internal reasoning tokens. Zero disables thinking.
func WithThinkingBudget(budget int) Option {
	return func(o *Options) {
		o.ThinkingBudget = budget
	}
}

func WithSystemInstruction(instruction string) Option {
	return func(o *Options) {
		o.SystemInstruction = instruction
	}
}

// ApplyOptions resolves opts over the given defaults.
func ApplyOptions(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// StreamProvider defines the contract for any streaming LLM backend
type StreamProvider interface {
	// ChatStream sends the history and calls onChunk for every fragment of
	// the reply. It returns the concatenated reply text.
	ChatStream(ctx context.Context, history []Message, onChunk ChunkHandler, options ...Option) (string, error)

	Name() string
}

// FlattenText renders a message as plain text, inlining attachment text.
// Used by providers without inline binary support.
func FlattenText(m Message) string {
	var sb strings.Builder
	if m.Preamble != "" {
		sb.WriteString(m.Preamble)
	}
	for _, a := range m.Attachments {
		if a.Text == "" {
			continue
		}
		sb.WriteString("\n--- " + a.Name + " ---\n")
		sb.WriteString(a.Text)
		sb.WriteString("\n")
	}
	if sb.Len() > 0 && m.Content != "" {
		sb.WriteString("\n")
	}
	sb.WriteString(m.Content)
	return sb.String()
}
