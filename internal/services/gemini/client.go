// File: internal/services/gemini/client.go
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HTTPClient performs a single generateContent POST per call. Retry policy
// lives in RetryClient, not here.
type HTTPClient struct {
	config *Config
	client *http.Client
}

func NewHTTPClient(config *Config) *HTTPClient {
	return &HTTPClient{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

func (c *HTTPClient) GenerateContent(ctx context.Context, model string, payload *GenerateContentRequest) (*GenerateContentResponse, error) {
	if model == "" {
		return nil, NewValidationError("generate_content", "model is required")
	}
	if payload == nil || len(payload.Contents) == 0 {
		return nil, NewValidationError("generate_content", "payload must carry at least one content entry")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, NewValidationError("generate_content", "invalid payload")
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s",
		strings.TrimRight(c.config.BaseURL, "/"), model, url.QueryEscape(c.config.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, NewNetworkError("generate_content", "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, NewNetworkError("generate_content", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.handleErrorStatus(resp)
	}

	var out GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, NewParseError("generate_content", "failed to parse JSON response", err)
	}

	return &out, nil
}

// handleErrorStatus reads the provider's error envelope so the status marker
// can mark the error retryable alongside the HTTP code.
func (c *HTTPClient) handleErrorStatus(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var envelope apiErrorEnvelope
	_ = json.Unmarshal(raw, &envelope)

	msg := envelope.Error.Message
	if msg == "" {
		msg = fmt.Sprintf("API call failed with status %d", resp.StatusCode)
	}

	return NewAPIError("generate_content", resp.StatusCode, envelope.Error.Status, msg)
}
