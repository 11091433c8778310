// File: internal/services/gemini/retry_test.go
package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{}) {}

// scriptedClient fails with errs[i] on call i and succeeds with resp once
// the script runs out.
type scriptedClient struct {
	calls int
	errs  []error
	resp  *GenerateContentResponse
}

func (c *scriptedClient) GenerateContent(ctx context.Context, model string, req *GenerateContentRequest) (*GenerateContentResponse, error) {
	idx := c.calls
	c.calls++
	if idx < len(c.errs) && c.errs[idx] != nil {
		return nil, c.errs[idx]
	}
	return c.resp, nil
}

func textResponse(text string) *GenerateContentResponse {
	return &GenerateContentResponse{
		Candidates: []Candidate{{Content: Content{Parts: []Part{{Text: text}}}}},
	}
}

func newTestRetryClient(inner Client, maxAttempts int) (*RetryClient, *[]time.Duration) {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.MaxAttempts = maxAttempts

	rc := NewRetryClient(inner, cfg, noopLogger{})

	delays := &[]time.Duration{}
	rc.sleep = func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return rc, delays
}

func TestRetryClientSucceedsFirstTry(t *testing.T) {
	inner := &scriptedClient{resp: textResponse("hello")}
	rc, delays := newTestRetryClient(inner, 3)

	resp, err := rc.GenerateContent(context.Background(), "test-model", TextRequest("hi"))
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.FirstText())
	assert.Equal(t, 1, inner.calls)
	assert.Empty(t, *delays)
}

func TestRetryClientRetriesTransientFailures(t *testing.T) {
	unavailable := NewAPIError("generate_content", 503, "UNAVAILABLE", "overloaded")
	inner := &scriptedClient{
		errs: []error{unavailable, unavailable},
		resp: textResponse("recovered"),
	}
	rc, delays := newTestRetryClient(inner, 3)

	resp, err := rc.GenerateContent(context.Background(), "test-model", TextRequest("hi"))
	require.NoError(t, err)
	assert.Equal(t, "recovered", resp.FirstText())
	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, []time.Duration{1000 * time.Millisecond, 2000 * time.Millisecond}, *delays)
}

func TestRetryClientExhaustsAttempts(t *testing.T) {
	unavailable := NewAPIError("generate_content", 503, "UNAVAILABLE", "overloaded")
	inner := &scriptedClient{
		errs: []error{unavailable, unavailable, unavailable},
	}
	rc, delays := newTestRetryClient(inner, 3)

	_, err := rc.GenerateContent(context.Background(), "test-model", TextRequest("hi"))
	require.Error(t, err)

	var gerr *GeminiError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrTypeRetryExhausted, gerr.Type)
	assert.Equal(t, 3, inner.calls)

	// Backoff doubles strictly from the initial 1000ms.
	assert.Equal(t, []time.Duration{1000 * time.Millisecond, 2000 * time.Millisecond}, *delays)
}

func TestRetryClientUnavailableMarkerIsRetryable(t *testing.T) {
	// Some gateways report transient unavailability with a 500 plus the
	// UNAVAILABLE status marker.
	unavailable := NewAPIError("generate_content", 500, "UNAVAILABLE", "try again")
	inner := &scriptedClient{
		errs: []error{unavailable},
		resp: textResponse("recovered"),
	}
	rc, delays := newTestRetryClient(inner, 3)

	resp, err := rc.GenerateContent(context.Background(), "test-model", TextRequest("hi"))
	require.NoError(t, err)
	assert.Equal(t, "recovered", resp.FirstText())
	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, []time.Duration{1000 * time.Millisecond}, *delays)
}

func TestRetryClientNonRetryableFailsImmediately(t *testing.T) {
	badRequest := NewAPIError("generate_content", 400, "INVALID_ARGUMENT", "bad payload")
	inner := &scriptedClient{
		errs: []error{badRequest, badRequest, badRequest},
		resp: textResponse("never"),
	}
	rc, delays := newTestRetryClient(inner, 3)

	_, err := rc.GenerateContent(context.Background(), "test-model", TextRequest("hi"))
	require.Error(t, err)

	var gerr *GeminiError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrTypeAPI, gerr.Type)
	assert.Equal(t, 400, gerr.Code)
	assert.Equal(t, 1, inner.calls)
	assert.Empty(t, *delays)
}

func TestRetryClientParseErrorsAreNotRetried(t *testing.T) {
	parseErr := NewParseError("generate_content", "failed to parse JSON response", errors.New("unexpected EOF"))
	inner := &scriptedClient{errs: []error{parseErr}}
	rc, delays := newTestRetryClient(inner, 3)

	_, err := rc.GenerateContent(context.Background(), "test-model", TextRequest("hi"))
	require.Error(t, err)

	var gerr *GeminiError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrTypeParse, gerr.Type)
	assert.Equal(t, 1, inner.calls)
	assert.Empty(t, *delays)
}
