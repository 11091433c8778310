// File: internal/services/chat_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agrisense/agri-gateway/internal/domain"
	chatrepo "github.com/agrisense/agri-gateway/internal/repository/chat"
	"github.com/agrisense/agri-gateway/internal/services/gemini"
)

// systemInstruction pins the assistant to the agriculture domain. Off-domain
// questions must be refused.
const systemInstruction = `You are 'Agri-Assistant', a specialized AI expert in agriculture. Your sole purpose is to provide information and answer questions related to agriculture. This includes topics like crop cultivation, soil science, pest and disease management, agricultural machinery, farming techniques, government agricultural policies, subsidies, market prices for crops, and sustainable farming practices. You MUST STRICTLY adhere to this domain. If a user asks any question not related to agriculture, you must politely and concisely refuse. Respond in the same language as the user's query.`

const titlePromptFormat = `Generate a very short title (4-5 words max) for a chat conversation that starts with this user query. Respond with only the title. Query: "%s"`

type ChatService struct {
	repo   chatrepo.ChatRepository
	client gemini.Client
	model  string
	logger Logger
}

func NewChatService(repo chatrepo.ChatRepository, client gemini.Client, model string, logger Logger) (*ChatService, error) {
	if repo == nil {
		return nil, NewValidationError("constructor", "chat repository is required")
	}
	if client == nil {
		return nil, NewValidationError("constructor", "gemini client is required")
	}
	if model == "" {
		return nil, NewValidationError("constructor", "text model is required")
	}
	if logger == nil {
		logger = NewNoOpLogger()
	}

	return &ChatService{
		repo:   repo,
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// ExchangeResult is what a completed message exchange returns: the AI reply
// plus the chat document after all mutations.
type ExchangeResult struct {
	AIResponse  domain.ChatMessage `json:"aiResponse"`
	UpdatedChat *domain.Chat       `json:"updatedChat"`
}

// ListChats returns the user's chat documents, newest first.
func (s *ChatService) ListChats(ctx context.Context, userID string) ([]domain.Chat, error) {
	if userID == "" {
		return nil, NewValidationError("list_chats", "User ID is required")
	}

	chats, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, NewStoreError("list_chats", err)
	}
	return chats, nil
}

// CreateChat starts a new conversation thread, seeded with the welcome
// message so the AI always speaks first.
func (s *ChatService) CreateChat(ctx context.Context, userID, lang, welcomeMessage string) (*domain.Chat, error) {
	if userID == "" || lang == "" || welcomeMessage == "" {
		return nil, NewValidationError("create_chat", "Missing required fields")
	}

	chat := &domain.Chat{
		UserID:   userID,
		Language: lang,
		Title:    domain.DefaultTitle(lang),
		Messages: []domain.ChatMessage{{Sender: domain.SenderAI, Text: welcomeMessage}},
	}

	created, err := s.repo.Create(ctx, chat)
	if err != nil {
		return nil, NewStoreError("create_chat", err)
	}
	return created, nil
}

// SendMessage runs one full message exchange: append the user message, send
// the accumulated history to the model, append the reply, and regenerate the
// title while it is still a placeholder.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID, prompt string) (*ExchangeResult, error) {
	if userID == "" || strings.TrimSpace(prompt) == "" {
		return nil, NewValidationError("send_message", "userId and prompt are required")
	}

	updated, err := s.repo.AppendMessage(ctx, userID, chatID,
		domain.ChatMessage{Sender: domain.SenderUser, Text: prompt})
	if err != nil {
		if errors.Is(err, chatrepo.ErrChatNotFound) {
			return nil, NewNotFoundError("send_message", "chat not found")
		}
		return nil, NewStoreError("send_message", err)
	}

	req := &gemini.GenerateContentRequest{
		Contents:          historyToContents(updated.Messages),
		SystemInstruction: &gemini.Content{Parts: []gemini.Part{{Text: systemInstruction}}},
	}

	resp, err := s.client.GenerateContent(ctx, s.model, req)
	if err != nil {
		return nil, NewUpstreamError("send_message", err)
	}

	aiText := resp.FirstText()
	if aiText == "" {
		return nil, NewEmptyResponseError("send_message")
	}

	aiMessage := domain.ChatMessage{Sender: domain.SenderAI, Text: aiText}
	updated, err = s.repo.AppendMessage(ctx, userID, chatID, aiMessage)
	if err != nil {
		return nil, NewStoreError("send_message", err)
	}

	// Title regeneration is best-effort: a failure here never fails the
	// exchange.
	if updated.HasDefaultTitle() {
		if title := s.generateTitle(ctx, prompt); title != "" {
			if err := s.repo.UpdateTitle(ctx, userID, chatID, title); err != nil {
				s.logger.Warn("failed to persist regenerated title", "chat_id", chatID, "error", err)
			} else {
				updated.Title = title
			}
		}
	}

	return &ExchangeResult{AIResponse: aiMessage, UpdatedChat: updated}, nil
}

// DeleteChat removes one conversation thread.
func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID string) error {
	if userID == "" {
		return NewValidationError("delete_chat", "User ID is required")
	}
	if chatID == "" {
		return NewValidationError("delete_chat", "Chat ID is required")
	}

	if err := s.repo.Delete(ctx, userID, chatID); err != nil {
		return NewStoreError("delete_chat", err)
	}
	return nil
}

// DeleteAllChats removes every conversation thread the user owns.
func (s *ChatService) DeleteAllChats(ctx context.Context, userID string) error {
	if userID == "" {
		return NewValidationError("delete_all_chats", "User ID is required")
	}

	if err := s.repo.DeleteAllByUserID(ctx, userID); err != nil {
		return NewStoreError("delete_all_chats", err)
	}
	return nil
}

// generateTitle asks the model for a short chat title derived from the
// triggering user prompt. Returns "" when generation fails.
func (s *ChatService) generateTitle(ctx context.Context, prompt string) string {
	resp, err := s.client.GenerateContent(ctx, s.model, gemini.TextRequest(fmt.Sprintf(titlePromptFormat, prompt)))
	if err != nil {
		s.logger.Warn("title generation failed", "error", err)
		return ""
	}

	title := strings.TrimSpace(resp.FirstText())
	title = strings.Trim(title, `"'*`)
	return strings.TrimSpace(title)
}

// historyToContents maps the stored message sequence onto model turns:
// "user" stays a user turn, everything else becomes a model turn.
func historyToContents(messages []domain.ChatMessage) []gemini.Content {
	contents := make([]gemini.Content, 0, len(messages))
	for _, m := range messages {
		role := gemini.RoleModel
		if m.Sender == domain.SenderUser {
			role = gemini.RoleUser
		}
		contents = append(contents, gemini.Content{
			Role:  role,
			Parts: []gemini.Part{{Text: m.Text}},
		})
	}
	return contents
}
