// File: internal/handlers/recommendation_handler.go
package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/agrisense/agri-gateway/internal/services"
)

type RecommendationHandler struct {
	recommendationService *services.RecommendationService
	markdown              goldmark.Markdown
	logger                services.Logger
}

func NewRecommendationHandler(rs *services.RecommendationService, logger services.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: rs,
		markdown:              goldmark.New(),
		logger:                logger,
	}
}

// GetRecommendations generates personalized recommendations from the user's
// chat history. With format=html the markdown is rendered server-side.
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, "User ID is required", http.StatusBadRequest)
		return
	}

	recommendations, err := h.recommendationService.Recommend(r.Context(), userID)
	if err != nil {
		var svcErr *services.ServiceError
		if errors.As(err, &svcErr) && svcErr.Type == services.ErrTypeNotFound {
			writeError(w, "No chat history found", http.StatusNotFound)
			return
		}
		h.logger.Error("recommendation generation failed", "user_id", userID, "error", err)
		writeError(w, "Failed to generate recommendations", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		var buf bytes.Buffer
		if err := h.markdown.Convert([]byte(recommendations), &buf); err != nil {
			h.logger.Error("markdown rendering failed", "error", err)
			writeError(w, "Failed to generate recommendations", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"recommendations": recommendations})
}
