package service

import "errors"

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrMessageNotFound     = errors.New("message not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrPendingNotFound     = errors.New("pending document not found")
	ErrInvalidCategory     = errors.New("invalid knowledge category")
	ErrInvalidMode         = errors.New("invalid session mode")
	ErrEmptyQuestion       = errors.New("question must not be empty")
	ErrNoFiles             = errors.New("no files uploaded")
	ErrFileTooLarge        = errors.New("file exceeds upload limit")
	ErrSuggestionNotFound  = errors.New("suggestion not found")
	ErrNotAssistantMessage = errors.New("message is not an assistant reply")
	ErrStreamInProgress    = errors.New("reply is still streaming")
)
