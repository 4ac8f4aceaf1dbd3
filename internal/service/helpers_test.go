package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"party-advisor-be/internal/config"
	"party-advisor-be/internal/pkg/logger"
	"party-advisor-be/internal/repository/memory"
	"party-advisor-be/pkg/events"
	"party-advisor-be/pkg/knowledge"
	"party-advisor-be/pkg/llm"
	"party-advisor-be/pkg/speech"
)

const structuredReply = "**NỘI DUNG THAM MƯU**\nChi bộ họp định kỳ mỗi tháng một lần.\n" +
	"**CĂN CỨ TRI THỨC**\nQuy định 294.\n" +
	"**CÂU HỎI GỢI Ý**\n- Nội dung sinh hoạt chuyên đề?\n- Thời hạn nộp báo cáo?"

type stubProvider struct {
	chunks []llm.Chunk
	err    error

	mu      sync.Mutex
	history []llm.Message
	opts    llm.Options
}

func (p *stubProvider) ChatStream(ctx context.Context, history []llm.Message, onChunk llm.ChunkHandler, options ...llm.Option) (string, error) {
	p.mu.Lock()
	p.history = history
	p.opts = llm.ApplyOptions(llm.Options{}, options...)
	p.mu.Unlock()

	var full string
	for _, c := range p.chunks {
		full += c.Text
		if err := onChunk(c); err != nil {
			return full, err
		}
	}
	return full, p.err
}

func (p *stubProvider) Name() string { return "stub" }

type notification struct {
	sessionID string
	kind      string
	data      interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	sent   []notification
	closed []string
}

func (n *recordingNotifier) Notify(sessionID, kind string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{sessionID, kind, data})
}

func (n *recordingNotifier) Close(sessionID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = append(n.closed, sessionID)
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.sent))
	for _, s := range n.sent {
		out = append(out, s.kind)
	}
	return out
}

type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturePublisher) Publish(ctx context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

type fakeSynth struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (f *fakeSynth) Synthesize(ctx context.Context, text string) (*speech.Audio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return nil, errors.New("tts unavailable")
	}
	return &speech.Audio{PCM: []byte(text), SampleRate: speech.DefaultSampleRate, Channels: speech.DefaultChannels}, nil
}

func testAIConfig() config.AIConfig {
	return config.AIConfig{
		Standard:  config.ModeProfile{Model: "flash", Temperature: 0.1},
		Pro:       config.ModeProfile{Model: "pro", Temperature: 0.7, ThinkingBudget: 32768},
		MaxTokens: 2048,
	}
}

type fixture struct {
	repo      *memory.SessionRepository
	provider  *stubProvider
	notifier  *recordingNotifier
	publisher *capturePublisher
	synth     *fakeSynth
	speech    ISpeechService
	chat      IChatbotService
	knowledge IKnowledgeService
}

func newFixture(chunks ...llm.Chunk) *fixture {
	f := &fixture{
		repo:      memory.NewSessionRepository(time.Hour, time.Minute),
		provider:  &stubProvider{chunks: chunks},
		notifier:  &recordingNotifier{},
		publisher: &capturePublisher{},
		synth:     &fakeSynth{},
	}
	f.repo.OnEvicted(f.notifier.Close)
	log := logger.NewNopLogger()
	f.speech = NewSpeechService(f.repo, speech.NewPrefetcher(f.synth, time.Hour), time.Second, log)
	f.chat = NewChatbotService(f.repo, f.provider, f.publisher, f.notifier, f.speech, testAIConfig(), log)
	f.knowledge = NewKnowledgeService(f.repo, knowledge.NewClassifier(knowledge.DefaultKeywords()), f.notifier, 1024, log)
	return f
}
