package gemini

import (
	"testing"

	"party-advisor-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToContent(t *testing.T) {
	tests := []struct {
		name      string
		msg       llm.Message
		wantRole  string
		wantTexts []string // "" marks an inline blob
	}{
		{
			name:      "plain user turn",
			msg:       llm.Message{Role: llm.RoleUser, Content: "Yêu cầu nghiệp vụ: câu hỏi"},
			wantRole:  "user",
			wantTexts: []string{"Yêu cầu nghiệp vụ: câu hỏi"},
		},
		{
			name:      "model turn",
			msg:       llm.Message{Role: llm.RoleModel, Content: "**NỘI DUNG THAM MƯU**"},
			wantRole:  "model",
			wantTexts: []string{"**NỘI DUNG THAM MƯU**"},
		},
		{
			name: "documents between preamble and question",
			msg: llm.Message{
				Role:     llm.RoleUser,
				Preamble: "NGỮ CẢNH TRI THỨC BỔ SUNG",
				Content:  "Yêu cầu nghiệp vụ: câu hỏi",
				Attachments: []llm.Attachment{
					{Name: "a.pdf", MIMEType: "application/pdf", Data: []byte("%PDF")},
					{Name: "b.txt", MIMEType: "text/plain", Data: []byte("b"), Text: "b"},
				},
			},
			wantRole:  "user",
			wantTexts: []string{"NGỮ CẢNH TRI THỨC BỔ SUNG", "", "", "Yêu cầu nghiệp vụ: câu hỏi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toContent(tt.msg)
			assert.Equal(t, tt.wantRole, got.Role)
			require.Len(t, got.Parts, len(tt.wantTexts))
			for i, want := range tt.wantTexts {
				if want == "" {
					require.NotNil(t, got.Parts[i].InlineData, "part %d", i)
					assert.Empty(t, got.Parts[i].Text)
					continue
				}
				assert.Nil(t, got.Parts[i].InlineData, "part %d", i)
				assert.Equal(t, want, got.Parts[i].Text)
			}
		})
	}
}

func TestToContentInlinesDocumentBytes(t *testing.T) {
	got := toContent(llm.Message{
		Role:    llm.RoleUser,
		Content: "q",
		Attachments: []llm.Attachment{
			{Name: "a.pdf", MIMEType: "application/pdf", Data: []byte("%PDF-1.4")},
		},
	})

	require.Len(t, got.Parts, 2)
	assert.Equal(t, "application/pdf", got.Parts[0].InlineData.MIMEType)
	assert.Equal(t, []byte("%PDF-1.4"), got.Parts[0].InlineData.Data)
}

func TestBuildConfig(t *testing.T) {
	tests := []struct {
		name         string
		opts         llm.Options
		wantTemp     float32
		wantBudget   int32
		wantThoughts bool
		wantMaxOut   int32
	}{
		{
			name:       "standard",
			opts:       llm.Options{Temperature: 0.1, ThinkingBudget: 0},
			wantTemp:   0.1,
			wantBudget: 0,
		},
		{
			name:         "pro",
			opts:         llm.Options{Temperature: 0.7, ThinkingBudget: 32768},
			wantTemp:     0.7,
			wantBudget:   32768,
			wantThoughts: true,
		},
		{
			name:       "capped reply",
			opts:       llm.Options{Temperature: 0.1, MaxTokens: 2048},
			wantTemp:   0.1,
			wantMaxOut: 2048,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := buildConfig(tt.opts)
			require.NotNil(t, cfg.Temperature)
			assert.InDelta(t, tt.wantTemp, *cfg.Temperature, 1e-6)
			require.NotNil(t, cfg.ThinkingConfig)
			require.NotNil(t, cfg.ThinkingConfig.ThinkingBudget)
			assert.Equal(t, tt.wantBudget, *cfg.ThinkingConfig.ThinkingBudget)
			assert.Equal(t, tt.wantThoughts, cfg.ThinkingConfig.IncludeThoughts)
			assert.Equal(t, tt.wantMaxOut, cfg.MaxOutputTokens)
			assert.Nil(t, cfg.SystemInstruction)
		})
	}
}

func TestBuildConfigSystemInstruction(t *testing.T) {
	cfg := buildConfig(llm.Options{SystemInstruction: "Bạn là Trợ lý Nghiệp vụ"})

	require.NotNil(t, cfg.SystemInstruction)
	require.Len(t, cfg.SystemInstruction.Parts, 1)
	assert.Equal(t, "Bạn là Trợ lý Nghiệp vụ", cfg.SystemInstruction.Parts[0].Text)
}

func TestChunkFrom(t *testing.T) {
	response := func(parts ...*genai.Part) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
		}
	}

	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want llm.Chunk
	}{
		{"nil response", nil, llm.Chunk{}},
		{"no candidates", &genai.GenerateContentResponse{}, llm.Chunk{}},
		{"candidate without content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, llm.Chunk{}},
		{"text only", response(&genai.Part{Text: "Chi bộ "}, &genai.Part{Text: "họp"}), llm.Chunk{Text: "Chi bộ họp"}},
		{
			name: "thoughts kept apart",
			resp: response(
				&genai.Part{Text: "Xét Điều lệ. ", Thought: true},
				&genai.Part{Text: "**NỘI DUNG THAM MƯU**"},
				nil,
				&genai.Part{Text: "Đối chiếu Chỉ thị 50.", Thought: true},
			),
			want: llm.Chunk{Text: "**NỘI DUNG THAM MƯU**", Thought: "Xét Điều lệ. Đối chiếu Chỉ thị 50."},
		},
		{"inline data ignored", response(&genai.Part{InlineData: &genai.Blob{Data: []byte{1}}}), llm.Chunk{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chunkFrom(tt.resp))
		})
	}
}
