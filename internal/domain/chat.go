// File: internal/domain/chat.go
package domain

import "time"

// Message senders as stored in a chat document.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Placeholder titles a chat keeps until the first successful title
// generation. One per supported locale.
const (
	DefaultTitleEN = "New Chat"
	DefaultTitleML = "പുതിയ ചാറ്റ്"
)

// LanguageMalayalam is the locale code for the Malayalam client variant.
const LanguageMalayalam = "ml-IN"

// ChatMessage is one entry in a chat's append-only message sequence.
type ChatMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Chat represents a single conversation thread owned by a user. The message
// sequence lives inline on the row as a JSON document column, so a chat
// behaves like one document: appended to, never edited.
type Chat struct {
	ID        string        `json:"id" gorm:"primarykey"`
	UserID    string        `json:"-" gorm:"index;not null"`
	Title     string        `json:"title"`
	Language  string        `json:"language"`
	CreatedAt time.Time     `json:"createdAt"`
	Messages  []ChatMessage `json:"messages" gorm:"serializer:json"`
}

// DefaultTitle returns the locale-specific placeholder title for a new chat.
func DefaultTitle(lang string) string {
	if lang == LanguageMalayalam {
		return DefaultTitleML
	}
	return DefaultTitleEN
}

// HasDefaultTitle reports whether the title is still one of the placeholder
// values and therefore eligible for regeneration.
func (c *Chat) HasDefaultTitle() bool {
	return c.Title == DefaultTitleEN || c.Title == DefaultTitleML
}
