package extractor

import (
	"errors"
	"path/filepath"
	"strings"
)

var ErrUnsupported = errors.New("unsupported document type")

// Extract returns the plain text of a knowledge document, chosen by file
// extension first and MIME type second.
func Extract(name, mimeType string, data []byte) (string, error) {
	switch kind(name, mimeType) {
	case "pdf":
		return ExtractPDF(data)
	case "docx":
		return ExtractDOCX(data)
	case "xlsx":
		return ExtractXLSX(data)
	case "txt":
		return ExtractTXT(data)
	default:
		return "", ErrUnsupported
	}
}

func kind(name, mimeType string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "pdf"
	case ".docx":
		return "docx"
	case ".xlsx", ".xlsm":
		return "xlsx"
	case ".txt", ".md", ".csv":
		return "txt"
	}

	switch {
	case mimeType == "application/pdf":
		return "pdf"
	case mimeType == "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return "docx"
	case mimeType == "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return "xlsx"
	case strings.HasPrefix(mimeType, "text/"):
		return "txt"
	}
	return ""
}
