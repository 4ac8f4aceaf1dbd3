package gemini

import (
	"context"
	"fmt"
	"strings"

	"party-advisor-be/pkg/llm"

	"google.golang.org/genai"
)

type GeminiProvider struct {
	client    *genai.Client
	ModelName string
}

// Ensure GeminiProvider implements StreamProvider
var _ llm.StreamProvider = &GeminiProvider{}

func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiProvider{client: client, ModelName: modelName}, nil
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}

func (g *GeminiProvider) ChatStream(ctx context.Context, history []llm.Message, onChunk llm.ChunkHandler, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{Model: g.ModelName, Temperature: 0.1}, opts...)

	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		contents = append(contents, toContent(msg))
	}

	var full strings.Builder
	for resp, err := range g.client.Models.GenerateContentStream(ctx, options.Model, contents, buildConfig(options)) {
		if err != nil {
			return full.String(), fmt.Errorf("gemini stream: %w", err)
		}

		chunk := chunkFrom(resp)
		if chunk.Text == "" && chunk.Thought == "" {
			continue
		}
		full.WriteString(chunk.Text)

		if onChunk != nil {
			if err := onChunk(chunk); err != nil {
				return full.String(), err
			}
		}
	}

	return full.String(), nil
}

func buildConfig(o llm.Options) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(o.Temperature)),
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget:  genai.Ptr(int32(o.ThinkingBudget)),
			IncludeThoughts: o.ThinkingBudget > 0,
		},
	}
	if o.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(o.SystemInstruction, genai.RoleUser)
	}
	if o.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(o.MaxTokens)
	}
	return cfg
}

func toContent(msg llm.Message) *genai.Content {
	role := genai.RoleUser
	if msg.Role == llm.RoleModel {
		role = genai.RoleModel
	}

	parts := make([]*genai.Part, 0, len(msg.Attachments)+2)
	if msg.Preamble != "" {
		parts = append(parts, &genai.Part{Text: msg.Preamble})
	}
	for _, a := range msg.Attachments {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: a.MIMEType, Data: a.Data}})
	}
	parts = append(parts, &genai.Part{Text: msg.Content})

	return &genai.Content{Role: string(role), Parts: parts}
}

func chunkFrom(resp *genai.GenerateContentResponse) llm.Chunk {
	var chunk llm.Chunk
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return chunk
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Text == "" {
			continue
		}
		if p.Thought {
			chunk.Thought += p.Text
		} else {
			chunk.Text += p.Text
		}
	}
	return chunk
}
