package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"party-advisor-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatStream(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/x-ndjson")
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"**NỘI DUNG "}}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"THAM MƯU**"}}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":""},"done":true}`)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "llama3")
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "hỏi"},
		{Role: llm.RoleModel, Content: "đáp"},
		{
			Role:     llm.RoleUser,
			Preamble: "NGỮ CẢNH",
			Content:  "câu hỏi",
			Attachments: []llm.Attachment{
				{Name: "a.pdf", MIMEType: "application/pdf", Data: []byte("%PDF"), Text: "nội dung a"},
				{Name: "b.png", MIMEType: "image/png", Data: []byte{1, 2, 3}},
			},
		},
	}

	var chunks []string
	full, err := p.ChatStream(context.Background(), history, func(c llm.Chunk) error {
		chunks = append(chunks, c.Text)
		return nil
	}, llm.WithSystemInstruction("sys"), llm.WithTemperature(0.1))

	require.NoError(t, err)
	assert.Equal(t, "**NỘI DUNG THAM MƯU**", full)
	assert.Equal(t, []string{"**NỘI DUNG ", "THAM MƯU**"}, chunks)

	require.Len(t, got.Messages, 4)
	assert.True(t, got.Stream)
	assert.Equal(t, "llama3", got.Model)
	assert.Equal(t, 0.1, got.Options.Temperature)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "sys", got.Messages[0].Content)
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Contains(t, got.Messages[3].Content, "nội dung a")
	assert.Contains(t, got.Messages[3].Content, "câu hỏi")
	assert.Equal(t, []string{"AQID"}, got.Messages[3].Images)
}

func TestChatStreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "missing")
	_, err := p.ChatStream(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "x"}}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestChatStreamErrorChunk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"message":{"content":"part"}}`)
		fmt.Fprintln(w, `{"error":"out of memory"}`)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "m")
	full, err := p.ChatStream(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "x"}}, nil)

	require.Error(t, err)
	assert.Equal(t, "part", full)
}

func TestChatStreamHandlerAbort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"message":{"content":"a"}}`)
		fmt.Fprintln(w, `{"message":{"content":"b"}}`)
	}))
	defer srv.Close()

	stop := errors.New("stop")
	p := NewOllamaProvider(srv.URL, "m")
	_, err := p.ChatStream(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "x"}}, func(llm.Chunk) error {
		return stop
	})

	assert.ErrorIs(t, err, stop)
}
