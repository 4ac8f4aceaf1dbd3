package service

import (
	"context"
	"fmt"
	"time"

	"party-advisor-be/internal/pkg/logger"
	"party-advisor-be/internal/repository/memory"
	"party-advisor-be/pkg/events"
	"party-advisor-be/pkg/response"
	"party-advisor-be/pkg/speech"
	"party-advisor-be/pkg/store"
)

type ISpeechService interface {
	// Prefetch synthesizes a finalized reply ahead of playback.
	Prefetch(ctx context.Context, evt events.MessageFinalized) bool
	// Speak returns audio for an assistant reply, synthesizing it if needed.
	Speak(ctx context.Context, sessionID, messageID string) (*speech.Audio, error)
	State(messageID string) speech.PrefetchState
	Forget(messageIDs ...string)
}

type speechService struct {
	sessionRepo memory.ISessionRepository
	prefetcher  *speech.Prefetcher
	timeout     time.Duration
	logger      logger.ILogger
}

func NewSpeechService(sessionRepo memory.ISessionRepository, prefetcher *speech.Prefetcher, timeout time.Duration, log logger.ILogger) ISpeechService {
	return &speechService{
		sessionRepo: sessionRepo,
		prefetcher:  prefetcher,
		timeout:     timeout,
		logger:      log,
	}
}

func (s *speechService) Prefetch(ctx context.Context, evt events.MessageFinalized) bool {
	if evt.Failed {
		return false
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	started := s.prefetcher.Prefetch(ctx, evt.MessageID, evt.SpeakableText)
	if started {
		s.logger.Info("SpeechService", "Prefetch finished", map[string]interface{}{
			"message_id": evt.MessageID,
			"state":      s.prefetcher.State(evt.MessageID).String(),
		})
	}
	return started
}

func (s *speechService) Speak(ctx context.Context, sessionID, messageID string) (*speech.Audio, error) {
	session, ok := s.sessionRepo.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	msg, ok := session.Message(messageID)
	if !ok {
		return nil, ErrMessageNotFound
	}
	if msg.Speaker != store.SpeakerAssistant {
		return nil, ErrNotAssistantMessage
	}
	if msg.Status == store.StatusStreaming {
		return nil, ErrStreamInProgress
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	text := response.SpeakableText(response.Parse(msg.RawText), msg.RawText)
	audio, err := s.prefetcher.Play(ctx, messageID, text)
	if err != nil {
		s.logger.Warn("SpeechService", "Speech unavailable", map[string]interface{}{
			"message_id": messageID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("message %s: %w", messageID, speech.ErrNoAudio)
	}
	return audio, nil
}

func (s *speechService) State(messageID string) speech.PrefetchState {
	return s.prefetcher.State(messageID)
}

func (s *speechService) Forget(messageIDs ...string) {
	for _, id := range messageIDs {
		s.prefetcher.Forget(id)
	}
}

func (s *speechService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
