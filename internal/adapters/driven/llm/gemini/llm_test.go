package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drydock-labs/drydock/internal/core/domain"
)

func TestNewCompletionService_RequiresAPIKey(t *testing.T) {
	_, err := NewCompletionService(Config{})
	assert.Error(t, err)
}

func TestComplete(t *testing.T) {
	var gotPath string
	var gotReq generateContentRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"The BOD is "},{"text":"Trane."}]},"finishReason":"STOP"}]}`))
	}))
	defer server.Close()

	svc, err := NewCompletionService(Config{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	out, err := svc.Complete(context.Background(), "What is the BOD?")
	require.NoError(t, err)
	assert.Equal(t, "The BOD is Trane.", out)

	assert.Equal(t, "/models/"+DefaultModel+":generateContent", gotPath)
	require.Len(t, gotReq.Contents, 1)
	require.Len(t, gotReq.Contents[0].Parts, 1)
	assert.Equal(t, "What is the BOD?", gotReq.Contents[0].Parts[0].Text)
}

func TestComplete_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc, err := NewCompletionService(Config{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestComplete_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	svc, err := NewCompletionService(Config{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestComplete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key invalid","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	svc, err := NewCompletionService(Config{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key invalid")
}
