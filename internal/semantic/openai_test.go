package semantic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func newTestEmbedder(t *testing.T, baseURL string) *openAIEmbedder {
	t.Helper()
	embedder, err := NewOpenAIEmbedder(Config{
		APIKey:            "test-key",
		BaseURL:           baseURL,
		RequestsPerMinute: 6000,
		Timeout:           2 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(embedder.Close)
	return embedder
}

func TestEmbedderRequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIEmbedder(Config{})
	assert.Error(t, err)
}

func TestEmbedSuccess(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1,0.2,0.3]}]}`))
	})

	embedder := newTestEmbedder(t, server.URL)
	vector, err := embedder.Embed(context.Background(), "starbucks")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vector)
}

func TestEmbedRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"embedding":[1]}]}`))
	})

	embedder := newTestEmbedder(t, server.URL)
	vector, err := embedder.Embed(context.Background(), "costco")
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, vector)
	assert.Equal(t, int32(2), calls.Load())
}

func TestEmbedDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	embedder := newTestEmbedder(t, server.URL)
	_, err := embedder.Embed(context.Background(), "costco")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestEmbedEmptyData(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	embedder := newTestEmbedder(t, server.URL)
	_, err := embedder.Embed(context.Background(), "costco")
	assert.Error(t, err)
}
