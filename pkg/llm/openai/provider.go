package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"party-advisor-be/pkg/llm"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to any OpenAI-compatible chat completions endpoint.
type OpenAIProvider struct {
	client    *openai.Client
	ModelName string
}

var _ llm.StreamProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, baseURL, modelName string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIProvider{
		client:    openai.NewClientWithConfig(cfg),
		ModelName: modelName,
	}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) ChatStream(ctx context.Context, history []llm.Message, onChunk llm.ChunkHandler, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{Model: p.ModelName, Temperature: 0.7}, opts...)

	req := openai.ChatCompletionRequest{
		Model:       options.Model,
		Temperature: float32(options.Temperature),
		Stream:      true,
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}

	if options.SystemInstruction != "" {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: options.SystemInstruction,
		})
	}
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == llm.RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: llm.FlattenText(msg),
		})
	}

	stream, err := p.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create openai chat stream: %w", err)
	}
	defer stream.Close()

	var full strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return full.String(), nil
		}
		if err != nil {
			return full.String(), fmt.Errorf("receive openai chat stream: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}

		delta := resp.Choices[0].Delta
		if delta.Content == "" && delta.ReasoningContent == "" {
			continue
		}
		full.WriteString(delta.Content)

		if onChunk != nil {
			if err := onChunk(llm.Chunk{Text: delta.Content, Thought: delta.ReasoningContent}); err != nil {
				return full.String(), err
			}
		}
	}
}
