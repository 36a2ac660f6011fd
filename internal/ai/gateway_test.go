package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-next-backend/internal/store"
)

func TestAskRequiresKey(t *testing.T) {
	g := NewGateway()
	_, err := g.Ask(context.Background(), "  ", "Meta Llama 405B", "system", "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestAskSendsPromptAndContext(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		Temperature float32 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi there"}}]}`))
	}))
	defer srv.Close()

	g := NewGatewayWithBase(srv.URL)
	rctx := &store.RepoContext{RepoName: "app", RepoURL: "https://github.com/me/app", Owner: "me", CreatedAt: "2024-03-01T10:00:00Z"}
	reply, err := g.Ask(context.Background(), "key", "Meta Llama 405B", "be helpful", "list issues", rctx)
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)

	assert.Equal(t, "meta-llama/llama-3.1-405b-instruct:free", got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 0.001)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "be helpful", got.Messages[0].Content)
	assert.Contains(t, got.Messages[1].Content, "list issues")
	assert.Contains(t, got.Messages[1].Content, `Current context: You are working with repository "app"`)
	assert.Contains(t, got.Messages[1].Content, "Owner: me")
}

func TestAskNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	g := NewGatewayWithBase(srv.URL)
	_, err := g.Ask(context.Background(), "key", "", "system", "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
