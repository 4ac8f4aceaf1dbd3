package bootstrap

import (
	"context"
	"fmt"

	"party-advisor-be/internal/config"
	"party-advisor-be/internal/controller"
	"party-advisor-be/internal/handler"
	"party-advisor-be/internal/pkg/logger"
	"party-advisor-be/internal/repository/memory"
	"party-advisor-be/internal/service"
	"party-advisor-be/internal/websocket"
	"party-advisor-be/pkg/knowledge"
	"party-advisor-be/pkg/llm"
	"party-advisor-be/pkg/llm/factory"
	"party-advisor-be/pkg/speech"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	ChatbotController   controller.IChatbotController
	KnowledgeController controller.IKnowledgeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ChatStreamHandler *handler.ChatStreamHandler
	WebSocketHub      *websocket.Hub

	SessionRepository *memory.SessionRepository
	PubSub            *gochannel.GoChannel
	Logger            logger.ILogger
}

// NewContainer builds the production providers from cfg and wires the app.
func NewContainer(cfg *config.Config) (*Container, error) {
	ctx := context.Background()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	provider, err := factory.NewStreamProvider(ctx, factory.ProviderConfig{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.Standard.Model,
		GeminiAPIKey:  cfg.Keys.GoogleGemini,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		OpenAIAPIKey:  cfg.Keys.OpenAI,
		OpenAIBaseURL: cfg.Ai.OpenAIBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}
	sysLogger.Info("Bootstrap", "LLM provider ready", map[string]interface{}{
		"provider": provider.Name(),
		"standard": cfg.Ai.Standard.Model,
		"pro":      cfg.Ai.Pro.Model,
	})

	var synth speech.Synthesizer = speech.Unavailable{}
	gemini, err := speech.NewGeminiSynthesizer(ctx, cfg.Keys.GoogleGemini, cfg.Ai.TTSModel, cfg.Ai.TTSVoice)
	if err != nil {
		sysLogger.Warn("Bootstrap", "Speech synthesis disabled", map[string]interface{}{"error": err.Error()})
	} else {
		synth = gemini
	}

	return Build(cfg, provider, synth, sysLogger), nil
}

// Build wires services and controllers around the given providers.
func Build(cfg *config.Config, provider llm.StreamProvider, synth speech.Synthesizer, sysLogger logger.ILogger) *Container {
	// 1. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2. Session storage and live channel
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.CleanupInterval)

	wsLogger := logger.NewIsolatedLogger(cfg.App.WSLogFilePath)
	wsHub := websocket.NewHub(wsLogger)
	go wsHub.Run()

	sessionRepo.OnEvicted(func(sessionID string) {
		wsHub.Close(sessionID)
	})

	// 3. Services
	prefetcher := speech.NewPrefetcher(synth, cfg.Session.TTL)
	speechService := service.NewSpeechService(sessionRepo, prefetcher, cfg.Ai.SpeechTimeout, sysLogger)

	publisherService := service.NewPublisherService(cfg.Events.MessageFinalizedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Events.MessageFinalizedTopic,
		speechService,
		sysLogger,
	)

	chatbotService := service.NewChatbotService(
		sessionRepo,
		provider,
		publisherService,
		wsHub, // Hub implements SessionNotifier
		speechService,
		cfg.Ai,
		sysLogger,
	)
	knowledgeService := service.NewKnowledgeService(
		sessionRepo,
		knowledge.NewClassifier(knowledge.DefaultKeywords()),
		wsHub,
		cfg.Session.MaxUploadBytes,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		ChatbotController:   controller.NewChatbotController(chatbotService, speechService, cfg.Ai.StreamTimeout),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),
		ChatStreamHandler:   handler.NewChatStreamHandler(chatbotService, wsHub, wsLogger),
		WebSocketHub:        wsHub,
		ConsumerService:     consumerService,
		SessionRepository:   sessionRepo,
		PubSub:              pubSub,
		Logger:              sysLogger,
	}
}
