// File: internal/handlers/analysis_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/agrisense/agri-gateway/internal/services"
)

type AnalysisHandler struct {
	analysisService *services.AnalysisService
	logger          services.Logger
}

func NewAnalysisHandler(as *services.AnalysisService, logger services.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: as,
		logger:          logger,
	}
}

// AnalyzePlant runs the single-shot plant image diagnosis.
func (h *AnalysisHandler) AnalyzePlant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageBase64   string `json:"imageBase64"`
		ImageMimeType string `json:"imageMimeType"`
		Language      string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ImageBase64 == "" || req.ImageMimeType == "" {
		writeError(w, "Image data is required", http.StatusBadRequest)
		return
	}

	analysis, err := h.analysisService.AnalyzePlant(r.Context(), req.ImageBase64, req.ImageMimeType, req.Language)
	if err != nil {
		h.logger.Error("plant analysis failed", "error", err)
		writeError(w, "Failed to analyze plant image", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}
