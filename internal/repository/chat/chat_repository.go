// File: internal/repository/chat/chat_repository.go
package chat

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrisense/agri-gateway/internal/domain"
)

var ErrChatNotFound = errors.New("chat not found")

type gormChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &gormChatRepository{db: db}
}

// Create persists a new chat document. The identifier is generated here so
// the returned record is complete; the default title is selected from the
// chat language when the caller left it empty.
func (r *gormChatRepository) Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error) {
	if chat == nil {
		return nil, errors.New("chat cannot be nil")
	}
	if chat.UserID == "" {
		return nil, errors.New("user ID is required")
	}

	if chat.ID == "" {
		chat.ID = uuid.NewString()
	}
	if chat.Title == "" {
		chat.Title = domain.DefaultTitle(chat.Language)
	}

	if err := r.db.WithContext(ctx).Create(chat).Error; err != nil {
		log.Printf("[ChatRepository] Database error during chat creation for user %s: %v", chat.UserID, err)
		return nil, errors.New("database error creating chat")
	}

	return chat, nil
}

func (r *gormChatRepository) FindByID(ctx context.Context, userID, chatID string) (*domain.Chat, error) {
	if userID == "" || chatID == "" {
		return nil, errors.New("invalid user ID or chat ID")
	}

	var chat domain.Chat
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", chatID, userID).
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		log.Printf("[ChatRepository] Database error finding chat %s for user %s: %v", chatID, userID, err)
		return nil, errors.New("database error fetching chat")
	}

	return &chat, nil
}

// FindByUserID returns every chat document for the user, newest first.
func (r *gormChatRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Chat, error) {
	if userID == "" {
		return nil, errors.New("invalid user ID")
	}

	var chats []domain.Chat
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&chats).Error
	if err != nil {
		log.Printf("[ChatRepository] Database error finding chats for user %s: %v", userID, err)
		return nil, errors.New("database error fetching chats")
	}

	return chats, nil
}

// AppendMessage appends one message to the chat's sequence inside a
// transaction and returns the post-mutation document, so callers never need
// a second read after the write.
func (r *gormChatRepository) AppendMessage(ctx context.Context, userID, chatID string, msg domain.ChatMessage) (*domain.Chat, error) {
	if userID == "" || chatID == "" {
		return nil, errors.New("invalid user ID or chat ID")
	}

	var updated domain.Chat
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", chatID, userID).First(&updated).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChatNotFound
			}
			return err
		}

		updated.Messages = append(updated.Messages, msg)
		return tx.Model(&updated).Update("messages", updated.Messages).Error
	})
	if err != nil {
		if errors.Is(err, ErrChatNotFound) {
			return nil, ErrChatNotFound
		}
		log.Printf("[ChatRepository] Database error appending message to chat %s for user %s: %v", chatID, userID, err)
		return nil, errors.New("database error appending message")
	}

	return &updated, nil
}

// UpdateTitle overwrites the title field only.
func (r *gormChatRepository) UpdateTitle(ctx context.Context, userID, chatID, title string) error {
	if userID == "" || chatID == "" {
		return errors.New("invalid user ID or chat ID")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ? AND user_id = ?", chatID, userID).
		Update("title", title)
	if result.Error != nil {
		log.Printf("[ChatRepository] Database error updating title for chat %s: %v", chatID, result.Error)
		return errors.New("database error updating chat title")
	}
	if result.RowsAffected == 0 {
		return ErrChatNotFound
	}

	return nil
}

// Delete removes one chat document. Deleting a chat that is already gone is
// not an error; the end state is the same.
func (r *gormChatRepository) Delete(ctx context.Context, userID, chatID string) error {
	if userID == "" || chatID == "" {
		return errors.New("invalid user ID or chat ID")
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", chatID, userID).
		Delete(&domain.Chat{})
	if result.Error != nil {
		log.Printf("[ChatRepository] Database error deleting chat %s for user %s: %v", chatID, userID, result.Error)
		return errors.New("database error deleting chat")
	}

	return nil
}

// DeleteAllByUserID removes every chat document for the user in a single
// batched statement.
func (r *gormChatRepository) DeleteAllByUserID(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("invalid user ID")
	}

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.Chat{})
	if result.Error != nil {
		log.Printf("[ChatRepository] Database error deleting chats for user %s: %v", userID, result.Error)
		return errors.New("database error deleting chats")
	}

	log.Printf("[ChatRepository] Deleted %d chats for user %s", result.RowsAffected, userID)
	return nil
}
