package mapper

import (
	"party-advisor-be/internal/dto"
	"party-advisor-be/pkg/knowledge"
	"party-advisor-be/pkg/store"
)

func DocumentToResponse(d store.KnowledgeDocument) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:          d.ID,
		DisplayName: d.DisplayName,
		MimeType:    d.MIMEType,
		Category:    string(d.Category),
		Size:        len(d.Payload),
		HasText:     d.ExtractedText != "",
		UploadedAt:  d.UploadedAt,
	}
}

func PendingToResponse(p store.PendingDocument) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:          p.ID,
		DisplayName: p.DisplayName,
		MimeType:    p.MIMEType,
		Size:        len(p.Payload),
		HasText:     p.ExtractedText != "",
		UploadedAt:  p.UploadedAt,
	}
}

// GroupDocuments lists both categories, in catalogue order, even when empty.
func GroupDocuments(docs []store.KnowledgeDocument, pending []store.PendingDocument) *dto.ListDocumentsResponse {
	res := &dto.ListDocumentsResponse{Pending: []dto.DocumentResponse{}}
	for _, base := range knowledge.Catalogue() {
		group := dto.CategoryDocuments{
			Category:  string(base.ID),
			Title:     base.Title,
			Documents: []dto.DocumentResponse{},
		}
		for _, d := range docs {
			if d.Category == base.ID {
				group.Documents = append(group.Documents, *DocumentToResponse(d))
			}
		}
		res.Categories = append(res.Categories, group)
	}
	for _, p := range pending {
		res.Pending = append(res.Pending, *PendingToResponse(p))
	}
	return res
}
