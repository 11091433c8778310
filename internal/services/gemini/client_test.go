// File: internal/services/gemini/client_test.go
package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHTTPClient(baseURL string) *HTTPClient {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.BaseURL = baseURL
	return NewHTTPClient(cfg)
}

func TestHTTPClientGenerateContent(t *testing.T) {
	var gotPath, gotKey, gotContentType string
	var gotBody GenerateContentRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"a reply"}]}}]}`))
	}))
	defer srv.Close()

	client := newTestHTTPClient(srv.URL)
	req := &GenerateContentRequest{
		Contents:          []Content{{Role: RoleUser, Parts: []Part{{Text: "hello"}}}},
		SystemInstruction: &Content{Parts: []Part{{Text: "stay on topic"}}},
	}

	resp, err := client.GenerateContent(context.Background(), "gemini-1.5-flash-latest", req)
	require.NoError(t, err)
	assert.Equal(t, "a reply", resp.FirstText())

	assert.Equal(t, "/gemini-1.5-flash-latest:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "application/json", gotContentType)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "hello", gotBody.Contents[0].Parts[0].Text)
	require.NotNil(t, gotBody.SystemInstruction)
}

func TestHTTPClientNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"error":{"code":418,"message":"teapot","status":"FAILED_PRECONDITION"}}`))
	}))
	defer srv.Close()

	client := newTestHTTPClient(srv.URL)
	_, err := client.GenerateContent(context.Background(), "test-model", TextRequest("hi"))
	require.Error(t, err)

	var gerr *GeminiError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrTypeAPI, gerr.Type)
	assert.Equal(t, http.StatusTeapot, gerr.Code)
	assert.Equal(t, "FAILED_PRECONDITION", gerr.Status)
	assert.False(t, gerr.Retryable)
}

func TestHTTPClientServiceUnavailableIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"code":503,"message":"The model is overloaded.","status":"UNAVAILABLE"}}`))
	}))
	defer srv.Close()

	client := newTestHTTPClient(srv.URL)
	_, err := client.GenerateContent(context.Background(), "test-model", TextRequest("hi"))
	require.Error(t, err)

	var gerr *GeminiError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrTypeAPI, gerr.Type)
	assert.Equal(t, http.StatusServiceUnavailable, gerr.Code)
	assert.True(t, gerr.Retryable)
}

func TestHTTPClientUnavailableMarkerWithoutStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"backend unavailable","status":"UNAVAILABLE"}}`))
	}))
	defer srv.Close()

	client := newTestHTTPClient(srv.URL)
	_, err := client.GenerateContent(context.Background(), "test-model", TextRequest("hi"))
	require.Error(t, err)

	var gerr *GeminiError
	require.ErrorAs(t, err, &gerr)
	assert.True(t, gerr.Retryable)
}

func TestHTTPClientMalformedResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": [`))
	}))
	defer srv.Close()

	client := newTestHTTPClient(srv.URL)
	_, err := client.GenerateContent(context.Background(), "test-model", TextRequest("hi"))
	require.Error(t, err)

	var gerr *GeminiError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrTypeParse, gerr.Type)
}

func TestHTTPClientValidatesInput(t *testing.T) {
	client := newTestHTTPClient("http://localhost:0")

	_, err := client.GenerateContent(context.Background(), "", TextRequest("hi"))
	var gerr *GeminiError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrTypeValidation, gerr.Type)

	_, err = client.GenerateContent(context.Background(), "test-model", &GenerateContentRequest{})
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrTypeValidation, gerr.Type)
}

func TestFirstText(t *testing.T) {
	assert.Equal(t, "", (&GenerateContentResponse{}).FirstText())
	assert.Equal(t, "", (&GenerateContentResponse{Candidates: []Candidate{{}}}).FirstText())
	assert.Equal(t, "x", textResponse("x").FirstText())
}
