// File: internal/services/recommendation_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/agrisense/agri-gateway/internal/domain"
	chatrepo "github.com/agrisense/agri-gateway/internal/repository/chat"
	"github.com/agrisense/agri-gateway/internal/services/gemini"
)

const interestProfilePromptFormat = `Analyze this agricultural chat history and create a concise "User Interest Profile" summarizing their main interests, crops, problems, and curiosities.

CHAT HISTORY:
%s`

const recommendationPromptFormat = `Based on this user profile, provide 3-5 actionable, personalized agricultural recommendations in Markdown format.

USER PROFILE:
%s`

const chatDelimiter = "\n\n---\n\n"

// RecommendationService derives personalized recommendations from the whole
// of a user's chat history via two dependent model calls: history → interest
// profile → recommendations. The profile is never persisted.
type RecommendationService struct {
	repo   chatrepo.ChatRepository
	client gemini.Client
	model  string
	logger Logger
}

func NewRecommendationService(repo chatrepo.ChatRepository, client gemini.Client, model string, logger Logger) (*RecommendationService, error) {
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

	return &RecommendationService{repo: repo, client: client, model: model, logger: logger}, nil
}

// Recommend returns 3-5 markdown recommendations for the user. A user with
// no chat history gets a NOT_FOUND failure before any model call; a failure
// at either stage aborts with no partial result.
func (s *RecommendationService) Recommend(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", NewValidationError("recommendations", "User ID is required")
	}

	chats, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return "", NewStoreError("recommendations", err)
	}
	if len(chats) == 0 {
		return "", NewNotFoundError("recommendations", "No chat history found")
	}

	history := buildHistoryText(chats)

	profile, err := s.generateText(ctx, fmt.Sprintf(interestProfilePromptFormat, history), "interest_profile")
	if err != nil {
		return "", err
	}

	return s.generateText(ctx, fmt.Sprintf(recommendationPromptFormat, profile), "recommendations")
}

func (s *RecommendationService) generateText(ctx context.Context, prompt, operation string) (string, error) {
	resp, err := s.client.GenerateContent(ctx, s.model, gemini.TextRequest(prompt))
	if err != nil {
		return "", NewUpstreamError(operation, err)
	}

	text := resp.FirstText()
	if text == "" {
		return "", NewEmptyResponseError(operation)
	}
	return text, nil
}

// buildHistoryText flattens every chat into "sender: text" lines separated
// by a chat delimiter. The seeded welcome message at index 0 is skipped; it
// says nothing about the user.
func buildHistoryText(chats []domain.Chat) string {
	var b strings.Builder
	for _, chat := range chats {
		lines := make([]string, 0, len(chat.Messages))
		for i, m := range chat.Messages {
			if i == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s: %s", m.Sender, m.Text))
		}
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString(chatDelimiter)
	}
	return b.String()
}
