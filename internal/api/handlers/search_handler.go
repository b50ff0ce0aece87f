package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"mudarris/internal/core/retrieval"
)

type searchRequest struct {
	Query string `json:"query"`
}

type searchResult struct {
	ID             string `json:"id"`
	Filename       string `json:"filename"`
	ContentPreview string `json:"content_preview"`
	WordCount      int    `json:"word_count"`
	CreatedAt      string `json:"created_at"`
}

// Search finds documents containing the query and returns a ±100-character
// preview window around the first match.
func (h *DocumentHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "استعلام البحث فارغ")
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeError(w, http.StatusBadRequest, "استعلام البحث فارغ")
		return
	}

	docs, err := h.dbclient.ListDocuments(r.Context())
	if err != nil {
		log.Printf("search: document scan failed: %v", err)
		writeError(w, http.StatusInternalServerError, "خطأ في البحث")
		return
	}

	results := make([]searchResult, 0)
	for _, doc := range docs {
		preview, ok := retrieval.Preview(doc.Content, query)
		if !ok {
			continue
		}
		results = append(results, searchResult{
			ID:             doc.ID,
			Filename:       doc.Filename,
			ContentPreview: preview,
			WordCount:      doc.WordCount,
			CreatedAt:      doc.UploadDate.Format(time.RFC3339),
		})
		if err := h.dbclient.TouchDocument(r.Context(), doc.ID); err != nil {
			log.Printf("search: touch document %s failed: %v", doc.ID, err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "success",
		"results":       results,
		"query":         query,
		"total_results": len(results),
	})
}
