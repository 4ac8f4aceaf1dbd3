package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"party-advisor-be/internal/dto"
	"party-advisor-be/internal/mapper"
	"party-advisor-be/internal/pkg/logger"
	"party-advisor-be/internal/repository/memory"
	"party-advisor-be/pkg/extractor"
	"party-advisor-be/pkg/knowledge"
	"party-advisor-be/pkg/store"

	"github.com/google/uuid"
)

const defaultMIMEType = "application/octet-stream"

type IKnowledgeService interface {
	// Upload classifies each file into a knowledge base; files that cannot be
	// classified are held as pending until the user picks a category.
	Upload(ctx context.Context, sessionID string, files []dto.UploadedFile) ([]*dto.UploadResult, error)
	ResolvePending(ctx context.Context, sessionID, pendingID string, request *dto.ResolvePendingRequest) (*dto.DocumentResponse, error)
	CancelPending(ctx context.Context, sessionID, pendingID string) error
	RemoveDocument(ctx context.Context, sessionID, documentID string) error
	ListDocuments(ctx context.Context, sessionID string) (*dto.ListDocumentsResponse, error)
	Catalogue(ctx context.Context) *dto.CatalogueResponse
}

type knowledgeService struct {
	sessionRepo    memory.ISessionRepository
	classifier     *knowledge.Classifier
	notifier       SessionNotifier
	maxUploadBytes int
	logger         logger.ILogger
}

func NewKnowledgeService(
	sessionRepo memory.ISessionRepository,
	classifier *knowledge.Classifier,
	notifier SessionNotifier,
	maxUploadBytes int,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		sessionRepo:    sessionRepo,
		classifier:     classifier,
		notifier:       notifier,
		maxUploadBytes: maxUploadBytes,
		logger:         log,
	}
}

func (ks *knowledgeService) Upload(ctx context.Context, sessionID string, files []dto.UploadedFile) ([]*dto.UploadResult, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	session, err := ks.session(sessionID)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if ks.maxUploadBytes > 0 && len(f.Data) > ks.maxUploadBytes {
			return nil, fmt.Errorf("%s (%d bytes): %w", f.Name, len(f.Data), ErrFileTooLarge)
		}
	}

	results := make([]*dto.UploadResult, 0, len(files))
	for _, f := range files {
		mimeType := strings.TrimSpace(f.MIMEType)
		if mimeType == "" {
			mimeType = defaultMIMEType
		}
		text := ks.extract(f.Name, mimeType, f.Data)
		now := time.Now()

		category := ks.classifier.Classify(f.Name)
		if category == knowledge.Unclassified {
			pending := store.PendingDocument{
				ID:            uuid.NewString(),
				DisplayName:   f.Name,
				MIMEType:      mimeType,
				Payload:       f.Data,
				ExtractedText: text,
				UploadedAt:    now,
			}
			session.AddPending(pending)
			results = append(results, &dto.UploadResult{
				DisplayName: f.Name,
				Pending:     mapper.PendingToResponse(pending),
			})
			continue
		}

		doc := store.KnowledgeDocument{
			ID:            uuid.NewString(),
			DisplayName:   f.Name,
			MIMEType:      mimeType,
			Payload:       f.Data,
			Category:      category,
			ExtractedText: text,
			UploadedAt:    now,
		}
		session.AddDocument(doc)
		results = append(results, &dto.UploadResult{
			DisplayName: f.Name,
			Classified:  true,
			Document:    mapper.DocumentToResponse(doc),
		})
	}

	ks.logger.Info("KnowledgeService", "Files uploaded", map[string]interface{}{
		"session_id": sessionID,
		"files":      len(files),
	})
	ks.changed(session)
	return results, nil
}

func (ks *knowledgeService) ResolvePending(ctx context.Context, sessionID, pendingID string, request *dto.ResolvePendingRequest) (*dto.DocumentResponse, error) {
	category := knowledge.Category(request.Category)
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	session, err := ks.session(sessionID)
	if err != nil {
		return nil, err
	}

	doc, ok := session.ResolvePending(pendingID, category)
	if !ok {
		return nil, ErrPendingNotFound
	}
	ks.changed(session)
	return mapper.DocumentToResponse(doc), nil
}

func (ks *knowledgeService) CancelPending(ctx context.Context, sessionID, pendingID string) error {
	session, err := ks.session(sessionID)
	if err != nil {
		return err
	}
	if _, ok := session.TakePending(pendingID); !ok {
		return ErrPendingNotFound
	}
	ks.changed(session)
	return nil
}

func (ks *knowledgeService) RemoveDocument(ctx context.Context, sessionID, documentID string) error {
	session, err := ks.session(sessionID)
	if err != nil {
		return err
	}
	if _, ok := session.RemoveDocument(documentID); !ok {
		return ErrDocumentNotFound
	}
	ks.changed(session)
	return nil
}

func (ks *knowledgeService) ListDocuments(ctx context.Context, sessionID string) (*dto.ListDocumentsResponse, error) {
	session, err := ks.session(sessionID)
	if err != nil {
		return nil, err
	}
	return mapper.GroupDocuments(session.Documents(), session.Pending()), nil
}

func (ks *knowledgeService) Catalogue(ctx context.Context) *dto.CatalogueResponse {
	return &dto.CatalogueResponse{
		Bases:            knowledge.Catalogue(),
		StarterQuestions: knowledge.StarterQuestions(),
	}
}

func (ks *knowledgeService) session(sessionID string) (*store.Session, error) {
	session, ok := ks.sessionRepo.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// extract is best effort; a document without text is still sent inline.
func (ks *knowledgeService) extract(name, mimeType string, data []byte) string {
	text, err := extractor.Extract(name, mimeType, data)
	if err != nil {
		level := ks.logger.Warn
		if errors.Is(err, extractor.ErrUnsupported) {
			level = ks.logger.Debug
		}
		level("KnowledgeService", "Text extraction failed", map[string]interface{}{
			"file":  name,
			"error": err.Error(),
		})
		return ""
	}
	return text
}

func (ks *knowledgeService) changed(session *store.Session) {
	ks.notifier.Notify(session.ID, NotifyKnowledgeChanged,
		mapper.GroupDocuments(session.Documents(), session.Pending()))
}
