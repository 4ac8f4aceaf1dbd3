package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"party-advisor-be/pkg/utils"

	"google.golang.org/genai"
)

var ErrNoAudio = errors.New("no audio available")

const (
	DefaultModel = "gemini-2.5-flash-preview-tts"
	DefaultVoice = "Kore"

	readAloudPrompt = "Đọc văn bản sau bằng giọng chuyên nghiệp, mạch lạc: "
	maxChunkRunes   = 3000
)

// Synthesizer turns text into speech.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*Audio, error)
}

// Unavailable stands in when no speech backend is configured.
type Unavailable struct{}

func (Unavailable) Synthesize(context.Context, string) (*Audio, error) {
	return nil, ErrNoAudio
}

type GeminiSynthesizer struct {
	client *genai.Client
	model  string
	voice  string
}

var _ Synthesizer = &GeminiSynthesizer{}

func NewGeminiSynthesizer(ctx context.Context, apiKey, model, voice string) (*GeminiSynthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("speech: api key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if voice == "" {
		voice = DefaultVoice
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("speech: create client: %w", err)
	}

	return &GeminiSynthesizer{client: client, model: model, voice: voice}, nil
}

// Synthesize reads text in chunks and concatenates the returned PCM.
func (s *GeminiSynthesizer) Synthesize(ctx context.Context, text string) (*Audio, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoAudio
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: s.voice},
			},
		},
	}

	audio := &Audio{SampleRate: DefaultSampleRate, Channels: DefaultChannels}
	for _, part := range utils.SplitText(text, maxChunkRunes, 0) {
		resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(readAloudPrompt+part), cfg)
		if err != nil {
			return nil, fmt.Errorf("speech: generate: %w", err)
		}
		data := inlineAudio(resp)
		if len(data) == 0 {
			return nil, ErrNoAudio
		}
		audio.PCM = append(audio.PCM, data...)
	}

	if len(audio.PCM) == 0 {
		return nil, ErrNoAudio
	}
	return audio, nil
}

func inlineAudio(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && p.InlineData != nil {
			return p.InlineData.Data
		}
	}
	return nil
}
