package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"mudarris/internal/config"
	"mudarris/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (DbClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(pingCtx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: sqlDB}, nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Documents

const documentColumns = `id, filename, original_filename, file_path, file_size, mime_type,
		content, content_hash, word_count, language, upload_date, last_accessed,
		access_count, processing_status, processing_error`

func (c *DatabaseClient) CreateDocument(ctx context.Context, doc *models.Document) error {
	if doc == nil {
		return errors.New("nil document")
	}
	const q = `
		INSERT INTO documents
			(id, filename, original_filename, file_path, file_size, mime_type,
			 content, content_hash, word_count, language, upload_date, last_accessed,
			 access_count, processing_status, processing_error)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			 COALESCE($11, now()), COALESCE($12, now()), $13, $14, $15)
	`
	_, err := c.db.ExecContext(ctx, q,
		doc.ID, doc.Filename, doc.OriginalFilename, doc.FilePath, doc.FileSize,
		doc.MimeType, doc.Content, doc.ContentHash, doc.WordCount, doc.Language,
		doc.UploadDate, doc.LastAccessed, doc.AccessCount, doc.ProcessingStatus,
		doc.ProcessingError)
	return err
}

func scanDocument(row interface{ Scan(...any) error }) (*models.Document, error) {
	var d models.Document
	err := row.Scan(
		&d.ID, &d.Filename, &d.OriginalFilename, &d.FilePath, &d.FileSize,
		&d.MimeType, &d.Content, &d.ContentHash, &d.WordCount, &d.Language,
		&d.UploadDate, &d.LastAccessed, &d.AccessCount, &d.ProcessingStatus,
		&d.ProcessingError,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *DatabaseClient) GetDocumentByID(ctx context.Context, id string) (*models.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	d, err := scanDocument(c.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (c *DatabaseClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents ORDER BY upload_date DESC`
	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) DeleteDocument(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return nil
}

func (c *DatabaseClient) TouchDocument(ctx context.Context, id string) error {
	const q = `
		UPDATE documents
		SET last_accessed = now(), access_count = access_count + 1
		WHERE id = $1
	`
	res, err := c.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return nil
}

// Chat sessions and messages

func (c *DatabaseClient) CreateChatSession(ctx context.Context, session *models.ChatSession) error {
	if session == nil {
		return errors.New("nil session")
	}
	const q = `
		INSERT INTO chat_sessions
			(id, title, created_at, last_activity, message_count, language, is_active, is_archived)
		VALUES
			($1, $2, COALESCE($3, now()), COALESCE($4, now()), $5, $6, $7, $8)
	`
	_, err := c.db.ExecContext(ctx, q,
		session.ID, session.Title, session.CreatedAt, session.LastActivity,
		session.MessageCount, session.Language, session.IsActive, session.IsArchived)
	return err
}

func (c *DatabaseClient) GetChatSessionByID(ctx context.Context, id string) (*models.ChatSession, error) {
	const q = `
		SELECT id, title, created_at, last_activity, message_count, language, is_active, is_archived
		FROM chat_sessions WHERE id = $1
	`
	var s models.ChatSession
	err := c.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.Title, &s.CreatedAt, &s.LastActivity, &s.MessageCount,
		&s.Language, &s.IsActive, &s.IsArchived,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *DatabaseClient) AddChatMessage(ctx context.Context, msg *models.ChatMessage) error {
	if msg == nil {
		return errors.New("nil message")
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	const insert = `
		INSERT INTO chat_messages
			(id, session_id, role, content, ts, language,
			 confidence, response_time, model_used, sources, context_used)
		VALUES
			($1, $2, $3, $4, COALESCE($5, now()), $6, $7, $8, $9, $10, $11)
	`
	if _, err := tx.ExecContext(ctx, insert,
		msg.ID, msg.SessionID, msg.Role, msg.Content, msg.Timestamp, msg.Language,
		msg.Confidence, msg.ResponseTime, nullIfEmpty(msg.ModelUsed),
		nullIfEmpty(msg.Sources), nullIfEmpty(msg.ContextUsed),
	); err != nil {
		_ = tx.Rollback()
		return err
	}

	const bump = `
		UPDATE chat_sessions
		SET message_count = message_count + 1, last_activity = now()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, bump, msg.SessionID); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Stats

func (c *DatabaseClient) Stats(ctx context.Context) (*models.Stats, error) {
	var st models.Stats

	const counts = `
		SELECT
			(SELECT count(*) FROM documents),
			(SELECT count(*) FROM chat_sessions),
			(SELECT count(*) FROM chat_messages),
			(SELECT COALESCE(sum(word_count), 0) FROM documents)
	`
	if err := c.db.QueryRowContext(ctx, counts).Scan(
		&st.TotalDocuments, &st.TotalSessions, &st.TotalMessages, &st.TotalWords,
	); err != nil {
		return nil, err
	}

	var lastUpload, lastChat sql.NullTime
	if err := c.db.QueryRowContext(ctx, `SELECT max(upload_date) FROM documents`).Scan(&lastUpload); err != nil {
		return nil, err
	}
	if err := c.db.QueryRowContext(ctx, `SELECT max(ts) FROM chat_messages`).Scan(&lastChat); err != nil {
		return nil, err
	}
	if lastUpload.Valid {
		st.LastUpload = &lastUpload.Time
	}
	if lastChat.Valid {
		st.LastChat = &lastChat.Time
	}
	return &st, nil
}

var _ DbClient = (*DatabaseClient)(nil)
