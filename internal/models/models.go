package models

import (
	"strings"
	"time"
)

// Document represents an uploaded file and its extracted text.
type Document struct {
	ID               string    `db:"id" json:"id"`
	Filename         string    `db:"filename" json:"filename"`
	OriginalFilename string    `db:"original_filename" json:"original_filename"`
	FilePath         string    `db:"file_path" json:"-"`
	FileSize         int64     `db:"file_size" json:"file_size"`
	MimeType         string    `db:"mime_type" json:"mime_type"`
	Content          string    `db:"content" json:"-"`
	ContentHash      string    `db:"content_hash" json:"-"`
	WordCount        int       `db:"word_count" json:"word_count"`
	Language         string    `db:"language" json:"language"`
	UploadDate       time.Time `db:"upload_date" json:"upload_date"`
	LastAccessed     time.Time `db:"last_accessed" json:"last_accessed"`
	AccessCount      int       `db:"access_count" json:"access_count"`
	ProcessingStatus string    `db:"processing_status" json:"processing_status"` // pending | processing | completed | failed
	ProcessingError  string    `db:"processing_error" json:"-"`
}

// SetContent stores extracted text and recomputes the derived word count.
// Content must never be assigned directly, or the count goes stale.
func (d *Document) SetContent(content string) {
	d.Content = content
	d.WordCount = len(strings.Fields(content))
}

// ChatSession represents one conversation thread.
type ChatSession struct {
	ID           string    `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	LastActivity time.Time `db:"last_activity" json:"last_activity"`
	MessageCount int       `db:"message_count" json:"message_count"`
	Language     string    `db:"language" json:"language"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	IsArchived   bool      `db:"is_archived" json:"is_archived"`
}

// DefaultSessionTitle is the title given to lazily created sessions.
const DefaultSessionTitle = "محادثة جديدة"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage represents an individual chat turn. The assistant-only
// metadata fields stay nil on user and system rows.
type ChatMessage struct {
	ID        string    `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"session_id"`
	Role      string    `db:"role" json:"role"`
	Content   string    `db:"content" json:"content"`
	Timestamp time.Time `db:"ts" json:"timestamp"`
	Language  string    `db:"language" json:"language"`

	Confidence   *float64 `db:"confidence" json:"confidence,omitempty"`
	ResponseTime *float64 `db:"response_time" json:"response_time,omitempty"` // seconds
	ModelUsed    string   `db:"model_used" json:"model_used,omitempty"`
	Sources      string   `db:"sources" json:"sources,omitempty"` // JSON list of source documents
	ContextUsed  string   `db:"context_used" json:"-"`
}

// Stats aggregates store-wide counters for the stats endpoint.
type Stats struct {
	TotalDocuments int        `json:"total_documents"`
	TotalSessions  int        `json:"total_sessions"`
	TotalMessages  int        `json:"total_messages"`
	TotalWords     int64      `json:"total_words"`
	LastUpload     *time.Time `json:"last_upload"`
	LastChat       *time.Time `json:"last_chat"`
}
