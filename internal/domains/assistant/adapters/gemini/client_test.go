package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pethaven/pethaven-api/internal/domains/assistant/ports"
)

func TestGenerateParsesFirstCandidate(t *testing.T) {
	var captured generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Brush twice a week.  "}]}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	reply, err := client.Generate(context.Background(), "How often should I brush my cat?")
	require.NoError(t, err)
	require.Equal(t, "Brush twice a week.", reply)

	require.Len(t, captured.Contents, 1)
	require.Equal(t, "How often should I brush my cat?", captured.Contents[0].Parts[0].Text)
	require.Equal(t, 800, captured.GenerationConfig.MaxOutputTokens)
}

func TestGenerateFailsWithoutKey(t *testing.T) {
	client := NewClient("  ")
	_, err := client.Generate(context.Background(), "hi")
	require.ErrorIs(t, err, ports.ErrNotConfigured)
}

func TestGenerateSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	_, err := client.Generate(context.Background(), "hi")
	require.ErrorContains(t, err, "quota")
}

func TestGenerateRejectsEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	_, err := client.Generate(context.Background(), "hi")
	require.ErrorContains(t, err, "no candidates")
}
