package store

import "sync"

// MemoryContextStore keeps the repo context in memory. Used in tests and as
// a fallback when neither a database nor a context file is configured.
type MemoryContextStore struct {
	mu      sync.RWMutex
	current *RepoContext
}

func NewMemoryContextStore() *MemoryContextStore {
	return &MemoryContextStore{}
}

func (m *MemoryContextStore) Save(ctx *RepoContext) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *ctx
	m.current = &c
	return nil
}

func (m *MemoryContextStore) Load() (*RepoContext, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil, nil
	}
	c := *m.current
	return &c, nil
}

func (m *MemoryContextStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	return nil
}

// Credentials are the two user-supplied secrets for a session: the chat API
// key and the GitHub personal access token. They live only in this process;
// nothing writes them to disk or to the database.
type Credentials struct {
	GitHubToken   string
	OpenRouterKey string
}

// CredentialStore holds per-session credentials in memory.
type CredentialStore struct {
	mu       sync.RWMutex
	sessions map[string]Credentials
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{sessions: make(map[string]Credentials)}
}

func (s *CredentialStore) SetGitHubToken(sessionID, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	creds := s.sessions[sessionID]
	creds.GitHubToken = token
	s.sessions[sessionID] = creds
}

func (s *CredentialStore) SetOpenRouterKey(sessionID, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	creds := s.sessions[sessionID]
	creds.OpenRouterKey = key
	s.sessions[sessionID] = creds
}

func (s *CredentialStore) Get(sessionID string) Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID]
}

func (s *CredentialStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// OAuthStateStore tracks the OAuth state nonce issued per session so the
// callback can be matched back to the session that started the flow.
type OAuthStateStore struct {
	mu             sync.Mutex
	stateBySession map[string]string
	sessionByState map[string]string
	userBySession  map[string]string
}

func NewOAuthStateStore() *OAuthStateStore {
	return &OAuthStateStore{
		stateBySession: make(map[string]string),
		sessionByState: make(map[string]string),
		userBySession:  make(map[string]string),
	}
}

func (s *OAuthStateStore) SetState(sessionID, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stateBySession[sessionID] = state
	s.sessionByState[state] = sessionID
}

func (s *OAuthStateStore) State(sessionID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateBySession[sessionID]
}

func (s *OAuthStateStore) SessionByState(state string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionByState[state]
}

func (s *OAuthStateStore) ClearState(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.stateBySession[sessionID]; ok {
		delete(s.sessionByState, st)
		delete(s.stateBySession, sessionID)
	}
}

func (s *OAuthStateStore) SetUsername(sessionID, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userBySession[sessionID] = username
}

func (s *OAuthStateStore) Username(sessionID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userBySession[sessionID]
}
