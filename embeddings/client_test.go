package embeddings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/embed", r.URL.Path)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "stolen motorbike", req.Inputs)
		assert.True(t, req.Truncate)

		json.NewEncoder(w).Encode([][]float32{{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	vector, err := c.Embed(context.Background(), "stolen motorbike")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
}

func TestEmbedServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestEmbedEmptyVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([][]float32{})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.Embed(context.Background(), "text")
	require.Error(t, err)
}

func TestEmbedUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	_, err := c.Embed(context.Background(), "text")
	require.Error(t, err)
}
