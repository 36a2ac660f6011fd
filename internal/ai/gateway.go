package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"project-next-backend/internal/store"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// ModelCatalog maps the display names the picker shows to OpenRouter model
// ids. Unknown names fall back to DefaultModel.
var ModelCatalog = map[string]string{
	"Meta Llama 405B": "meta-llama/llama-3.1-405b-instruct:free",
	"Meta Llama 70B":  "meta-llama/llama-3.1-70b-instruct:free",
	"Gemma 9B":        "google/gemma-2-9b-it:free",
}

const DefaultModel = "meta-llama/llama-3.1-405b-instruct:free"

// ResolveModel turns a picker display name (or a raw model id) into the
// OpenRouter model id to request.
func ResolveModel(name string) string {
	if id, ok := ModelCatalog[name]; ok {
		return id
	}
	if strings.TrimSpace(name) != "" {
		return name
	}
	return DefaultModel
}

// Gateway sends one chat-completion request per user action and extracts the
// assistant's text. No retry, no backoff; failures surface to the caller.
type Gateway struct {
	baseURL string
}

func NewGateway() *Gateway {
	return &Gateway{baseURL: openRouterBaseURL}
}

// NewGatewayWithBase is used by tests to point the gateway at a fake server.
func NewGatewayWithBase(baseURL string) *Gateway {
	return &Gateway{baseURL: baseURL}
}

// Ask sends the system prompt plus the context-augmented user message and
// returns the first choice's content. The key is per-session state, so the
// client is built per call.
func (g *Gateway) Ask(ctx context.Context, apiKey, model, systemPrompt, userText string, rctx *store.RepoContext) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", fmt.Errorf("chat API key is not configured")
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = g.baseURL
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: ResolveModel(model),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userText + contextInfo(rctx)},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// contextInfo renders the repo context as a human-readable suffix for the
// user message, so follow-up requests land on the right repository.
func contextInfo(rctx *store.RepoContext) string {
	if rctx == nil {
		return ""
	}
	return fmt.Sprintf("\n\nCurrent context: You are working with repository %q (%s). Owner: %s. Created: %s.",
		rctx.RepoName, rctx.RepoURL, rctx.Owner, rctx.CreatedAt)
}
