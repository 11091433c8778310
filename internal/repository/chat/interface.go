package chat

import (
	"context"

	"github.com/agrisense/agri-gateway/internal/domain"
)

// ChatRepository handles chat document operations, always scoped to the
// owning user.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error)
	FindByID(ctx context.Context, userID, chatID string) (*domain.Chat, error)
	FindByUserID(ctx context.Context, userID string) ([]domain.Chat, error)
	AppendMessage(ctx context.Context, userID, chatID string, msg domain.ChatMessage) (*domain.Chat, error)
	UpdateTitle(ctx context.Context, userID, chatID, title string) error
	Delete(ctx context.Context, userID, chatID string) error
	DeleteAllByUserID(ctx context.Context, userID string) error
}
