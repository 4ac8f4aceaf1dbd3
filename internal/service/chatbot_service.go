package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"party-advisor-be/internal/config"
	"party-advisor-be/internal/constant"
	"party-advisor-be/internal/dto"
	"party-advisor-be/internal/mapper"
	"party-advisor-be/internal/pkg/logger"
	"party-advisor-be/internal/repository/memory"
	"party-advisor-be/pkg/events"
	"party-advisor-be/pkg/llm"
	"party-advisor-be/pkg/response"
	"party-advisor-be/pkg/store"

	"github.com/google/uuid"
)

// Live channel message types.
const (
	NotifySnapshot         = "snapshot"
	NotifyKnowledgeChanged = "knowledge_changed"
)

// SessionNotifier pushes live updates to everyone watching a session.
// Typically implemented by the WebSocket Hub. Watchers are closed by the
// session repository's eviction hook, which also fires on delete.
type SessionNotifier interface {
	Notify(sessionID, kind string, data interface{})
}

// IChatbotService defines the chatbot service interface
type IChatbotService interface {
	CreateSession(ctx context.Context, ownerID string, request *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
	SetMode(ctx context.Context, sessionID string, request *dto.SetModeRequest) (*dto.SessionResponse, error)
	GetHistory(ctx context.Context, sessionID string) ([]*dto.ChatMessageResponse, error)
	// SendChat streams a reply to question. onUpdate receives a snapshot after
	// every chunk and once more when the reply is final.
	SendChat(ctx context.Context, sessionID, question string, onUpdate func(dto.StreamSnapshot) error) (*dto.ChatTurnResponse, error)
	// AskSuggestion sends the index-th suggestion of an earlier reply.
	AskSuggestion(ctx context.Context, sessionID, messageID string, index int, onUpdate func(dto.StreamSnapshot) error) (*dto.ChatTurnResponse, error)
	Share(ctx context.Context, sessionID, messageID string, withHTML bool) (*dto.ShareResponse, error)
}

type chatbotService struct {
	sessionRepo   memory.ISessionRepository
	provider      llm.StreamProvider
	publisher     IPublisherService
	notifier      SessionNotifier
	speechService ISpeechService
	aiCfg         config.AIConfig
	mapper        *mapper.ChatMapper
	logger        logger.ILogger
}

func NewChatbotService(
	sessionRepo memory.ISessionRepository,
	provider llm.StreamProvider,
	publisher IPublisherService,
	notifier SessionNotifier,
	speechService ISpeechService,
	aiCfg config.AIConfig,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		sessionRepo:   sessionRepo,
		provider:      provider,
		publisher:     publisher,
		notifier:      notifier,
		speechService: speechService,
		aiCfg:         aiCfg,
		mapper:        mapper.NewChatMapper(),
		logger:        log,
	}
}

func (cs *chatbotService) CreateSession(ctx context.Context, ownerID string, request *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	mode := store.ModeStandard
	if request != nil && request.Mode != "" {
		mode = store.Mode(request.Mode)
		if !mode.Valid() {
			return nil, ErrInvalidMode
		}
	}

	session := store.NewSession(uuid.NewString(), ownerID, mode)
	cs.sessionRepo.Save(session)

	cs.logger.Info("ChatbotService", "Session created", map[string]interface{}{
		"session_id": session.ID,
		"mode":       string(mode),
	})
	return cs.mapper.SessionToResponse(session), nil
}

func (cs *chatbotService) GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	session, err := cs.session(sessionID)
	if err != nil {
		return nil, err
	}
	return cs.mapper.SessionToResponse(session), nil
}

func (cs *chatbotService) DeleteSession(ctx context.Context, sessionID string) error {
	session, err := cs.session(sessionID)
	if err != nil {
		return err
	}

	ids := make([]string, 0)
	for _, m := range session.Messages() {
		ids = append(ids, m.ID)
	}
	cs.speechService.Forget(ids...)
	cs.sessionRepo.Delete(sessionID)
	return nil
}

func (cs *chatbotService) SetMode(ctx context.Context, sessionID string, request *dto.SetModeRequest) (*dto.SessionResponse, error) {
	mode := store.Mode(request.Mode)
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}
	session, err := cs.session(sessionID)
	if err != nil {
		return nil, err
	}
	session.SetMode(mode)
	return cs.mapper.SessionToResponse(session), nil
}

func (cs *chatbotService) GetHistory(ctx context.Context, sessionID string) ([]*dto.ChatMessageResponse, error) {
	session, err := cs.session(sessionID)
	if err != nil {
		return nil, err
	}

	res := cs.mapper.MessagesToResponse(session.Messages())
	for _, m := range res {
		if m.Speaker == string(store.SpeakerAssistant) {
			m.SpeechState = cs.speechService.State(m.Id).String()
		}
	}
	return res, nil
}

func (cs *chatbotService) SendChat(ctx context.Context, sessionID, question string, onUpdate func(dto.StreamSnapshot) error) (*dto.ChatTurnResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	session, err := cs.session(sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sent := store.Message{
		ID:        uuid.NewString(),
		Speaker:   store.SpeakerUser,
		RawText:   question,
		Status:    store.StatusFinal,
		CreatedAt: now,
	}
	reply := store.Message{
		ID:        uuid.NewString(),
		Speaker:   store.SpeakerAssistant,
		Status:    store.StatusStreaming,
		CreatedAt: now,
	}
	history, docs, mode := session.BeginTurn(sent, reply)
	profile := cs.aiCfg.Profile(mode == store.ModePro)

	cs.logger.Info("ChatbotService", "Generating reply", map[string]interface{}{
		"session_id": sessionID,
		"message_id": reply.ID,
		"mode":       string(mode),
		"model":      profile.Model,
		"history":    len(history),
		"documents":  len(docs),
	})

	emit := func(msg store.Message, done bool) {
		snapshot := cs.mapper.Snapshot(sessionID, msg, done)
		cs.notifier.Notify(sessionID, NotifySnapshot, snapshot)
		if onUpdate == nil {
			return
		}
		if err := onUpdate(snapshot); err != nil {
			cs.logger.Warn("ChatbotService", "Stream listener gone, continuing without it", map[string]interface{}{
				"message_id": reply.ID,
				"error":      err.Error(),
			})
			onUpdate = nil
		}
	}

	var text, thought strings.Builder
	_, genErr := cs.provider.ChatStream(ctx, BuildTurn(history, docs, question), func(chunk llm.Chunk) error {
		if chunk.Text == "" && chunk.Thought == "" {
			return nil
		}
		text.WriteString(chunk.Text)
		thought.WriteString(chunk.Thought)

		reply.RawText = text.String()
		reply.ReasoningTrace = thought.String()
		if session.UpdateMessage(reply.ID, reply.RawText, reply.ReasoningTrace) {
			emit(reply, false)
		}
		return nil
	},
		llm.WithModel(profile.Model),
		llm.WithTemperature(profile.Temperature),
		llm.WithThinkingBudget(profile.ThinkingBudget),
		llm.WithMaxTokens(cs.aiCfg.MaxTokens),
		llm.WithSystemInstruction(constant.SystemInstruction),
	)

	status := store.StatusFinal
	raw := text.String()
	if genErr != nil {
		cs.logger.Error("ChatbotService", "Generation failed", map[string]interface{}{
			"session_id": sessionID,
			"message_id": reply.ID,
			"provider":   cs.provider.Name(),
			"error":      genErr,
		})
		status = store.StatusFailed
		raw = constant.FallbackReply
	}

	final, ok := session.FinalizeMessage(reply.ID, raw, thought.String(), status)
	if !ok {
		final = reply
		final.RawText, final.ReasoningTrace, final.Status = raw, thought.String(), status
	}
	emit(final, true)

	evt := events.MessageFinalized{
		SessionID:     sessionID,
		MessageID:     final.ID,
		SpeakableText: response.SpeakableText(response.Parse(final.RawText), final.RawText),
		Failed:        status == store.StatusFailed,
		OccurredAt:    time.Now(),
	}
	if err := cs.publisher.Publish(context.WithoutCancel(ctx), evt); err != nil {
		cs.logger.Warn("ChatbotService", "Failed to publish finalized reply", map[string]interface{}{
			"message_id": final.ID,
			"error":      err.Error(),
		})
	}

	return &dto.ChatTurnResponse{
		SessionId: sessionID,
		Sent:      cs.mapper.MessageToResponse(sent),
		Reply:     cs.mapper.MessageToResponse(final),
		Failed:    status == store.StatusFailed,
	}, nil
}

func (cs *chatbotService) AskSuggestion(ctx context.Context, sessionID, messageID string, index int, onUpdate func(dto.StreamSnapshot) error) (*dto.ChatTurnResponse, error) {
	msg, err := cs.assistantMessage(sessionID, messageID)
	if err != nil {
		return nil, err
	}

	suggestions := response.Parse(msg.RawText).Suggestions
	if index < 0 || index >= len(suggestions) {
		return nil, fmt.Errorf("index %d of %d: %w", index, len(suggestions), ErrSuggestionNotFound)
	}
	return cs.SendChat(ctx, sessionID, suggestions[index], onUpdate)
}

func (cs *chatbotService) Share(ctx context.Context, sessionID, messageID string, withHTML bool) (*dto.ShareResponse, error) {
	msg, err := cs.assistantMessage(sessionID, messageID)
	if err != nil {
		return nil, err
	}

	res := &dto.ShareResponse{Text: response.ShareText(msg.RawText)}
	if withHTML {
		html, err := response.RenderHTML(response.Parse(msg.RawText))
		if err != nil {
			return nil, err
		}
		res.HTML = html
	}
	return res, nil
}

func (cs *chatbotService) session(sessionID string) (*store.Session, error) {
	session, ok := cs.sessionRepo.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (cs *chatbotService) assistantMessage(sessionID, messageID string) (store.Message, error) {
	session, err := cs.session(sessionID)
	if err != nil {
		return store.Message{}, err
	}
	msg, ok := session.Message(messageID)
	if !ok {
		return store.Message{}, ErrMessageNotFound
	}
	if msg.Speaker != store.SpeakerAssistant {
		return store.Message{}, ErrNotAssistantMessage
	}
	if msg.Status == store.StatusStreaming {
		return store.Message{}, ErrStreamInProgress
	}
	return msg, nil
}

// BuildTurn assembles the generation request: prior turns in order, then the
// question preceded by the session's knowledge documents.
func BuildTurn(history []store.Message, docs []store.KnowledgeDocument, question string) []llm.Message {
	turn := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		if m.RawText == "" && len(m.AttachedFiles) == 0 {
			continue
		}
		role := llm.RoleUser
		if m.Speaker == store.SpeakerAssistant {
			role = llm.RoleModel
		}
		turn = append(turn, llm.Message{
			Role:        role,
			Content:     m.RawText,
			Attachments: toAttachments(m.AttachedFiles),
		})
	}

	last := llm.Message{
		Role:    llm.RoleUser,
		Content: constant.QuestionPrefix + question,
	}
	if len(docs) > 0 {
		var preamble strings.Builder
		preamble.WriteString(constant.KnowledgeContextHeader)
		for _, d := range docs {
			fmt.Fprintf(&preamble, constant.KnowledgeContextFile, d.DisplayName)
		}
		preamble.WriteString(constant.KnowledgeContextFooter)
		last.Preamble = preamble.String()
		last.Attachments = toAttachments(docs)
	}
	return append(turn, last)
}

func toAttachments(docs []store.KnowledgeDocument) []llm.Attachment {
	if len(docs) == 0 {
		return nil
	}
	out := make([]llm.Attachment, 0, len(docs))
	for _, d := range docs {
		out = append(out, llm.Attachment{
			Name:     d.DisplayName,
			MIMEType: d.MIMEType,
			Data:     d.Payload,
			Text:     d.ExtractedText,
		})
	}
	return out
}
