package dto

import (
	"time"

	"party-advisor-be/pkg/knowledge"
)

// UploadedFile is a fully read upload handed to the knowledge service.
type UploadedFile struct {
	Name     string
	MIMEType string
	Data     []byte
}

type DocumentResponse struct {
	Id          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	MimeType    string    `json:"mime_type"`
	Category    string    `json:"category,omitempty"`
	Size        int       `json:"size"`
	HasText     bool      `json:"has_text"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type UploadResult struct {
	DisplayName string            `json:"display_name"`
	Classified  bool              `json:"classified"`
	Document    *DocumentResponse `json:"document,omitempty"`
	Pending     *DocumentResponse `json:"pending,omitempty"`
}

type ResolvePendingRequest struct {
	Category string `json:"category" validate:"required,oneof=KB1 KB2"`
}

type CategoryDocuments struct {
	Category  string             `json:"category"`
	Title     string             `json:"title"`
	Documents []DocumentResponse `json:"documents"`
}

type ListDocumentsResponse struct {
	Categories []CategoryDocuments `json:"categories"`
	Pending    []DocumentResponse  `json:"pending"`
}

type CatalogueResponse struct {
	Bases            []knowledge.BuiltinBase `json:"bases"`
	StarterQuestions []string                `json:"starter_questions"`
}
