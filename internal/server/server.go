package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"project-next-backend/internal/ai"
	"project-next-backend/internal/config"
	"project-next-backend/internal/intent"
	"project-next-backend/internal/store"
	"project-next-backend/internal/types"
)

const (
	msgConfigureKey = "Please configure your OpenRouter API key first. Click the OpenRouter integration to set it up."
	msgAIFailure    = "Error connecting to AI service. Please check your API key and try again."
)

// Asker sends one chat-completion request and returns the assistant's text.
type Asker interface {
	Ask(ctx context.Context, apiKey, model, systemPrompt, userText string, rctx *store.RepoContext) (string, error)
}

// Dispatcher routes a parsed action (or raw text) to GitHub and produces the
// user-facing reply.
type Dispatcher interface {
	Handle(ctx context.Context, token, input string, action *ai.Action, raw string) string
}

type Server struct {
	router      *chi.Mux
	cfg         config.Config
	registry    *intent.Registry
	asker       Asker
	dispatcher  Dispatcher
	contexts    store.ContextStore
	credentials *store.CredentialStore
	oauthStates *store.OAuthStateStore
	oauthCfg    *oauth2.Config
	logger      *log.Logger
}

func NewServer(cfg config.Config, registry *intent.Registry, asker Asker, dispatcher Dispatcher, contexts store.ContextStore, logger *log.Logger) *Server {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	oCfg := &oauth2.Config{
		ClientID:     cfg.GitHubClientID,
		ClientSecret: cfg.GitHubClientSecret,
		RedirectURL:  cfg.GitHubRedirectURL,
		Scopes:       cfg.GitHubScopes,
		Endpoint:     githuboauth.Endpoint,
	}

	s := &Server{
		router:      r,
		cfg:         cfg,
		registry:    registry,
		asker:       asker,
		dispatcher:  dispatcher,
		contexts:    contexts,
		credentials: store.NewCredentialStore(),
		oauthStates: store.NewOAuthStateStore(),
		oauthCfg:    oCfg,
		logger:      logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/chat", s.handleChat)
	s.router.Get("/api/context", s.handleGetContext)
	s.router.Delete("/api/context", s.handleClearContext)
	s.router.Get("/api/integrations", s.handleIntegrations)
	s.router.Post("/api/credentials", s.handleSetCredential)
	s.router.Get("/api/models", s.handleModels)
	// GitHub OAuth
	s.router.Get("/api/github/status", s.handleGitHubStatus)
	s.router.Get("/api/github/auth", s.handleGitHubAuth)
	s.router.Get("/api/github/callback", s.handleGitHubCallback)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleChat runs the full pipeline: classify the message, pick the system
// prompt, ask the model, parse its reply as a structured action, dispatch.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sid := getOrCreateSessionID(r, w)
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	apiKey := s.openRouterKey(sid)
	if apiKey == "" {
		s.writeChat(w, sid, types.ChatResponse{SessionID: sid, Reply: msgConfigureKey})
		return
	}

	model := req.Model
	if model == "" {
		model = s.cfg.Model
	}

	rctx, err := s.contexts.Load()
	if err != nil {
		s.logger.Printf("[chat] failed to load repo context: %v", err)
		rctx = nil
	}

	kind := intent.Detect(req.Message)
	systemPrompt := s.registry.PromptFor(kind)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	raw, err := s.asker.Ask(ctx, apiKey, model, systemPrompt, req.Message, rctx)
	if err != nil {
		s.logger.Printf("[chat] chat completion failed: %v", err)
		s.writeChat(w, sid, types.ChatResponse{SessionID: sid, Reply: msgAIFailure, Intent: string(kind)})
		return
	}

	action, ok := ai.ParseAction(raw)
	token := s.gitHubToken(sid)

	reply := s.dispatcher.Handle(ctx, token, req.Message, action, raw)

	resp := types.ChatResponse{SessionID: sid, Reply: reply, Intent: string(kind)}
	if ok {
		resp.Action = action.Action
	}
	s.writeChat(w, sid, resp)
}

func (s *Server) handleGetContext(w http.ResponseWriter, r *http.Request) {
	rctx, err := s.contexts.Load()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to load repository context")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if rctx == nil {
		_ = json.NewEncoder(w).Encode(map[string]any{"context": nil})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"context": rctx})
}

func (s *Server) handleClearContext(w http.ResponseWriter, r *http.Request) {
	if err := s.contexts.Clear(); err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to clear repository context")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"cleared": true})
}

// handleIntegrations lists the connectable services with the session's live
// connected state.
func (s *Server) handleIntegrations(w http.ResponseWriter, r *http.Request) {
	sid := getSessionID(r)
	var creds store.Credentials
	if sid != "" {
		creds = s.credentials.Get(sid)
	}
	integrations := []types.Integration{
		{Name: "GitHub", Icon: "github", Color: "#181717", Connected: s.gitHubToken(sid) != ""},
		{Name: "OpenRouter", Icon: "zap", Color: "#FF6B35", Connected: creds.OpenRouterKey != "" || s.cfg.OpenRouterKey != ""},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"integrations": integrations})
}

// handleSetCredential stores a modal-supplied secret for the session. The
// value only ever lives in process memory.
func (s *Server) handleSetCredential(w http.ResponseWriter, r *http.Request) {
	var req types.CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sid := getOrCreateSessionID(r, w)
	value := strings.TrimSpace(req.Value)
	if value == "" {
		s.writeError(w, http.StatusBadRequest, "value is required")
		return
	}
	switch strings.ToLower(strings.TrimSpace(req.Service)) {
	case "github":
		s.credentials.SetGitHubToken(sid, value)
	case "openrouter":
		s.credentials.SetOpenRouterKey(sid, value)
	default:
		s.writeError(w, http.StatusBadRequest, "unknown service")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Session-Id", sid)
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(ai.ModelCatalog))
	for name := range ai.ModelCatalog {
		names = append(names, name)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"models": names, "default": s.cfg.Model})
}

func (s *Server) writeChat(w http.ResponseWriter, sid string, resp types.ChatResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Session-Id", sid)
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}

// gitHubToken resolves the GitHub token for a session: session credential
// first, static config token as fallback.
func (s *Server) gitHubToken(sessionID string) string {
	if sessionID != "" {
		if t := s.credentials.Get(sessionID).GitHubToken; strings.TrimSpace(t) != "" {
			return t
		}
	}
	return s.cfg.GitHubToken
}

// openRouterKey resolves the chat API key for a session: session credential
// first, config fallback.
func (s *Server) openRouterKey(sessionID string) string {
	if sessionID != "" {
		if k := s.credentials.Get(sessionID).OpenRouterKey; strings.TrimSpace(k) != "" {
			return k
		}
	}
	return s.cfg.OpenRouterKey
}

func newSessionID() string {
	return fmt.Sprintf("s_%d", time.Now().UnixNano())
}

// getSessionID retrieves the session ID from cookie, header, or query param
func getSessionID(r *http.Request) string {
	if cookie, err := GetSessionCookie(r); err == nil && cookie != "" {
		return cookie
	}
	if sid := r.Header.Get("X-Session-Id"); sid != "" {
		return sid
	}
	if sid := r.URL.Query().Get("sessionId"); sid != "" {
		return sid
	}
	return ""
}

// getOrCreateSessionID gets the existing session ID or creates a new one,
// setting the cookie
func getOrCreateSessionID(r *http.Request, w http.ResponseWriter) string {
	sid := getSessionID(r)
	if sid == "" {
		sid = newSessionID()
		SetSessionCookie(w, sid)
	}
	return sid
}
