package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	db "mudarris/internal/core/database"
	"mudarris/internal/core/engine"
	"mudarris/internal/core/retrieval"
	"mudarris/internal/models"
)

type ChatHandler struct {
	dbclient db.DbClient
	engine   *engine.Engine
}

func NewChatHandler(dbclient db.DbClient, eng *engine.Engine) *ChatHandler {
	return &ChatHandler{dbclient: dbclient, engine: eng}
}

type chatRequest struct {
	Message               string               `json:"message"`
	ConversationID        string               `json:"conversation_id"`
	ConversationHistory   []engine.HistoryTurn `json:"conversation_history"`
	PreferArabic          *bool                `json:"prefer_arabic"`
	EnhancedArabicMode    *bool                `json:"enhanced_arabic_mode"`
	RequestCompleteAnswer *bool                `json:"request_complete_answer"`
}

type chatSource struct {
	Filename string `json:"filename"`
}

// Chat answers a user message using keyword-matched document context and the
// provider chain. The handler never returns a 5xx for provider trouble: the
// engine always yields text.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "لا توجد رسالة للمعالجة")
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, "الرسالة فارغة")
		return
	}

	opts := engine.Options{
		PreferArabic:          boolOr(req.PreferArabic, true),
		EnhancedArabicMode:    boolOr(req.EnhancedArabicMode, true),
		RequestCompleteAnswer: boolOr(req.RequestCompleteAnswer, true),
	}

	docs, err := h.dbclient.ListDocuments(r.Context())
	if err != nil {
		log.Printf("chat: document scan failed: %v", err)
		docs = nil // degrade to contextless generation
	}
	hits := retrieval.Select(message, docs, retrieval.DefaultTopN)
	docContext := retrieval.BuildContext(hits)

	sources := make([]chatSource, 0, len(hits))
	for _, hit := range hits {
		sources = append(sources, chatSource{Filename: hit.Doc.Filename})
		if err := h.dbclient.TouchDocument(r.Context(), hit.Doc.ID); err != nil {
			log.Printf("chat: touch document %s failed: %v", hit.Doc.ID, err)
		}
	}

	start := time.Now()
	result := h.engine.Generate(r.Context(), message, docContext, req.ConversationHistory, opts)
	elapsed := time.Since(start).Seconds()

	h.persistTurns(r.Context(), req.ConversationID, message, result, elapsed, sources, docContext)

	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "success",
		"response":           result.Text,
		"confidence":         result.Confidence,
		"sources":            sources,
		"is_complete_answer": opts.RequestCompleteAnswer,
		"arabic_enhanced":    opts.EnhancedArabicMode,
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
	})
}

// persistTurns records the user and assistant messages, creating the session
// lazily when the supplied ID is unknown or absent. Persistence trouble is
// logged, never surfaced: the chat path degrades instead of failing.
func (h *ChatHandler) persistTurns(ctx context.Context, sessionID, message string, result engine.Result, elapsed float64, sources []chatSource, docContext string) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	session, err := h.dbclient.GetChatSessionByID(ctx, sessionID)
	if err != nil {
		log.Printf("chat: session lookup %s failed: %v", sessionID, err)
		return
	}
	if session == nil {
		now := time.Now().UTC()
		session = &models.ChatSession{
			ID:           sessionID,
			Title:        models.DefaultSessionTitle,
			CreatedAt:    now,
			LastActivity: now,
			Language:     "ar",
			IsActive:     true,
		}
		if err := h.dbclient.CreateChatSession(ctx, session); err != nil {
			log.Printf("chat: session create failed: %v", err)
			return
		}
	}

	userMsg := &models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      models.RoleUser,
		Content:   message,
		Timestamp: time.Now().UTC(),
		Language:  "ar",
	}
	if err := h.dbclient.AddChatMessage(ctx, userMsg); err != nil {
		log.Printf("chat: save user message failed: %v", err)
		return
	}

	// the assistant turn must sort strictly after the user turn
	assistantTime := time.Now().UTC()
	if !assistantTime.After(userMsg.Timestamp) {
		assistantTime = userMsg.Timestamp.Add(time.Microsecond)
	}

	sourcesJSON, _ := json.Marshal(sources)
	assistantMsg := &models.ChatMessage{
		ID:           uuid.NewString(),
		SessionID:    sessionID,
		Role:         models.RoleAssistant,
		Content:      result.Text,
		Timestamp:    assistantTime,
		Language:     "ar",
		Confidence:   &result.Confidence,
		ResponseTime: &elapsed,
		ModelUsed:    result.Model,
		Sources:      string(sourcesJSON),
		ContextUsed:  docContext,
	}
	if err := h.dbclient.AddChatMessage(ctx, assistantMsg); err != nil {
		log.Printf("chat: save assistant message failed: %v", err)
	}
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
