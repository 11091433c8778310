// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/agrisense/agri-gateway/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
	logger      services.Logger
}

func NewChatHandler(cs *services.ChatService, logger services.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: cs,
		logger:      logger,
	}
}

// GetUserChats returns every chat document for the user, newest first.
func (h *ChatHandler) GetUserChats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, "User ID is required", http.StatusBadRequest)
		return
	}

	chats, err := h.chatService.ListChats(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list chats", "user_id", userID, "error", err)
		writeError(w, "Failed to retrieve chats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

// CreateChat starts a new conversation thread seeded with a welcome message.
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID         string `json:"userId"`
		Lang           string `json:"lang"`
		WelcomeMessage string `json:"welcomeMessage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.Lang == "" || req.WelcomeMessage == "" {
		writeError(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	chat, err := h.chatService.CreateChat(r.Context(), req.UserID, req.Lang, req.WelcomeMessage)
	if err != nil {
		h.logger.Error("failed to create chat", "user_id", req.UserID, "error", err)
		writeError(w, "Failed to create new chat", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, chat)
}

// SendMessage handles one message exchange on an existing chat.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]

	var req struct {
		UserID string `json:"userId"`
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.Prompt == "" {
		writeError(w, "userId and prompt are required", http.StatusBadRequest)
		return
	}

	result, err := h.chatService.SendMessage(r.Context(), req.UserID, chatID, req.Prompt)
	if err != nil {
		var svcErr *services.ServiceError
		if errors.As(err, &svcErr) && svcErr.Type == services.ErrTypeValidation {
			writeError(w, svcErr.Message, http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to process message", "chat_id", chatID, "error", err)
		writeError(w, "Failed to process message", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// DeleteChat removes one chat document.
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, "User ID is required", http.StatusBadRequest)
		return
	}

	if err := h.chatService.DeleteChat(r.Context(), userID, chatID); err != nil {
		h.logger.Error("failed to delete chat", "chat_id", chatID, "error", err)
		writeError(w, "Failed to delete chat", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteAllChats removes the user's whole chat collection.
func (h *ChatHandler) DeleteAllChats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, "User ID is required", http.StatusBadRequest)
		return
	}

	if err := h.chatService.DeleteAllChats(r.Context(), userID); err != nil {
		h.logger.Error("failed to delete all chats", "user_id", userID, "error", err)
		writeError(w, "Failed to delete all chats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
