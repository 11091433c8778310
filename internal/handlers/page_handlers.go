// File: internal/handlers/page_handlers.go
package handlers

import (
	"net/http"
	"path/filepath"
)

// PageHandler serves the two client applications as static pages.
type PageHandler struct {
	staticDir string
}

func NewPageHandler(staticDir string) *PageHandler {
	return &PageHandler{staticDir: staticDir}
}

func (h *PageHandler) ShowPlantIdentifierPage(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.staticDir, "plant-identifier.html"))
}

func (h *PageHandler) ShowAssistantPage(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.staticDir, "agri-assistant.html"))
}
