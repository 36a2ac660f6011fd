package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	AllowedOrigin string
	FrontendURL   string

	// Fallback OpenRouter key used when a session has not supplied its own.
	OpenRouterKey string
	Model         string
	PromptsFile   string

	// Persistence
	DatabaseURL string
	ContextFile string

	// Optional static GitHub token (Personal Access Token) for local testing
	GitHubToken string

	// GitHub OAuth
	GitHubClientID     string
	GitHubClientSecret string
	GitHubRedirectURL  string
	GitHubScopes       []string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:               getEnvDefault("PORT", "8080"),
		AllowedOrigin:      getEnvDefault("ALLOWED_ORIGIN", "*"),
		FrontendURL:        getEnvDefault("FRONTEND_URL", "http://localhost:5173"),
		OpenRouterKey:      os.Getenv("OPENROUTER_API_KEY"),
		Model:              getEnvDefault("OPENROUTER_MODEL", "Meta Llama 405B"),
		PromptsFile:        getEnvDefault("PROMPTS_FILE", "prompts/prompts.yaml"),
		DatabaseURL:        os.Getenv("DB_URL"),
		ContextFile:        getEnvDefault("CONTEXT_FILE", "data/repo_context.json"),
		GitHubToken:        os.Getenv("GITHUB_TOKEN"),
		GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		GitHubRedirectURL:  getEnvDefault("GITHUB_REDIRECT_URL", "http://localhost:8080/api/github/callback"),
		GitHubScopes:       getEnvListDefault("GITHUB_OAUTH_SCOPES", []string{"repo", "read:user"}),
	}
	if cfg.OpenRouterKey == "" {
		log.Println("warning: OPENROUTER_API_KEY is not set; sessions must supply their own key")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvListDefault(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			s := strings.TrimSpace(p)
			if s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
