// File: internal/handlers/handlers_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/agrisense/agri-gateway/internal/domain"
	chatrepo "github.com/agrisense/agri-gateway/internal/repository/chat"
	"github.com/agrisense/agri-gateway/internal/services"
	"github.com/agrisense/agri-gateway/internal/services/gemini"
)

// fakeGeminiClient replays scripted replies in call order; an empty reply
// yields a response with no candidates.
type fakeGeminiClient struct {
	requests []*gemini.GenerateContentRequest
	replies  []string
	errs     []error
}

func (f *fakeGeminiClient) GenerateContent(ctx context.Context, model string, req *gemini.GenerateContentRequest) (*gemini.GenerateContentResponse, error) {
	idx := len(f.requests)
	f.requests = append(f.requests, req)

	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}

	reply := ""
	if idx < len(f.replies) {
		reply = f.replies[idx]
	}
	if reply == "" {
		return &gemini.GenerateContentResponse{}, nil
	}
	return &gemini.GenerateContentResponse{
		Candidates: []gemini.Candidate{{Content: gemini.Content{Parts: []gemini.Part{{Text: reply}}}}},
	}, nil
}

type testServer struct {
	router *mux.Router
	repo   chatrepo.ChatRepository
	fake   *fakeGeminiClient
}

// newTestServer wires the real services onto an in-memory store and a fake
// model client, with the same routes the server registers.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Chat{}))

	repo := chatrepo.NewChatRepository(db)
	fake := &fakeGeminiClient{}
	logger := services.NewNoOpLogger()

	chatService, err := services.NewChatService(repo, fake, "test-model", logger)
	require.NoError(t, err)
	analysisService, err := services.NewAnalysisService(fake, "test-model", logger)
	require.NoError(t, err)
	recommendationService, err := services.NewRecommendationService(repo, fake, "test-model", logger)
	require.NoError(t, err)

	chatHandler := NewChatHandler(chatService, logger)
	analysisHandler := NewAnalysisHandler(analysisService, logger)
	recommendationHandler := NewRecommendationHandler(recommendationService, logger)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/analyze-plant", analysisHandler.AnalyzePlant).Methods("POST")
	api.HandleFunc("/chats", chatHandler.GetUserChats).Methods("GET")
	api.HandleFunc("/chats", chatHandler.CreateChat).Methods("POST")
	api.HandleFunc("/chats", chatHandler.DeleteAllChats).Methods("DELETE")
	api.HandleFunc("/chats/{chatId}/messages", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/chats/{chatId}", chatHandler.DeleteChat).Methods("DELETE")
	api.HandleFunc("/recommendations", recommendationHandler.GetRecommendations).Methods("GET")

	return &testServer{router: r, repo: repo, fake: fake}
}

func (ts *testServer) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dst))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	decodeBody(t, rec, &body)
	return body["error"]
}

func (ts *testServer) createChat(t *testing.T, userID, lang, welcome string) domain.Chat {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/chats", map[string]string{
		"userId":         userID,
		"lang":           lang,
		"welcomeMessage": welcome,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var chat domain.Chat
	decodeBody(t, rec, &chat)
	return chat
}
