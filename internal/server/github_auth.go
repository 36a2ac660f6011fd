package server

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// GET /api/github/status
// Returns { authenticated: bool, username?: string }
func (s *Server) handleGitHubStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	sid := getSessionID(r)

	authed := s.gitHubToken(sid) != ""
	resp := map[string]any{"authenticated": authed}
	if sid != "" {
		if username := s.oauthStates.Username(sid); username != "" {
			resp["username"] = username
		}
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// GET /api/github/auth
// Initiates the OAuth flow and returns { url } to redirect the browser
func (s *Server) handleGitHubAuth(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil || s.oauthCfg.ClientID == "" || s.oauthCfg.ClientSecret == "" {
		s.writeError(w, http.StatusBadRequest, "github oauth not configured")
		return
	}
	sid := getOrCreateSessionID(r, w)
	state := randomState()
	s.oauthStates.SetState(sid, state)
	url := s.oauthCfg.AuthCodeURL(state)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Session-Id", sid)
	_ = json.NewEncoder(w).Encode(map[string]string{"url": url, "sessionId": sid})
}

// GET /api/github/callback?code=...&state=...
// Exchanges the code for a token and keeps it as the session's transient
// GitHub credential, then redirects back to the frontend.
func (s *Server) handleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		s.writeError(w, http.StatusBadRequest, "github oauth not configured")
		return
	}
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if state == "" || code == "" {
		s.writeError(w, http.StatusBadRequest, "missing state or code")
		return
	}
	sid := s.oauthStates.SessionByState(state)
	if sid == "" || s.oauthStates.State(sid) != state {
		s.writeError(w, http.StatusBadRequest, "invalid oauth state")
		return
	}

	tok, err := s.oauthCfg.Exchange(r.Context(), code)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "token exchange failed")
		return
	}

	// Token stays in memory only; sessions re-connect after a restart.
	s.credentials.SetGitHubToken(sid, tok.AccessToken)
	if username := fetchGitHubUsername(tok.AccessToken); username != "" {
		s.oauthStates.SetUsername(sid, username)
	}
	s.oauthStates.ClearState(sid)

	// Share the session between the OAuth popup and the main window
	SetSessionCookie(w, sid)

	redirectURL := fmt.Sprintf("%s?githubAuth=success", s.cfg.FrontendURL)
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

func randomState() string {
	var b [24]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// Minimal call to get the GitHub username; uses the stdlib client directly
func fetchGitHubUsername(accessToken string) string {
	req, _ := http.NewRequest("GET", "https://api.github.com/user", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}
	var body struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Login)
}
