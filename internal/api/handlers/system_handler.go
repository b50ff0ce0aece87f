package handlers

import (
	"log"
	"net/http"
	"time"

	db "mudarris/internal/core/database"
	"mudarris/internal/core/engine"
)

type SystemHandler struct {
	dbclient db.DbClient
	engine   *engine.Engine
}

func NewSystemHandler(dbclient db.DbClient, eng *engine.Engine) *SystemHandler {
	return &SystemHandler{dbclient: dbclient, engine: eng}
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "healthy",
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
		"version":            Version,
		"ai_engine":          h.engine.Available(),
		"providers":          h.engine.ProviderNames(),
		"document_processor": true,
	})
}

func (h *SystemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dbclient.Stats(r.Context())
	if err != nil {
		log.Printf("stats: query failed: %v", err)
		writeError(w, http.StatusInternalServerError, "خطأ في جلب الإحصائيات")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"stats":  stats,
	})
}
