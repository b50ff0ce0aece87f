package db

import (
	"context"
	"errors"

	"mudarris/internal/models"
)

// ErrNotFound is returned by mutations targeting a row that does not exist.
var ErrNotFound = errors.New("not found")

// DbClient defines all persistence operations the handlers need. It
// abstracts Postgres so higher layers never depend on a specific DB.
type DbClient interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocumentByID(ctx context.Context, id string) (*models.Document, error)
	// ListDocuments returns every document, newest upload first.
	ListDocuments(ctx context.Context) ([]models.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	// TouchDocument bumps the access counter and last-accessed timestamp.
	TouchDocument(ctx context.Context, id string) error

	CreateChatSession(ctx context.Context, session *models.ChatSession) error
	GetChatSessionByID(ctx context.Context, id string) (*models.ChatSession, error)
	// AddChatMessage appends a turn and bumps the owning session's message
	// counter and last-activity timestamp in one transaction.
	AddChatMessage(ctx context.Context, msg *models.ChatMessage) error

	Stats(ctx context.Context) (*models.Stats, error)

	Close() error
}
