package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(name string) *RepoContext {
	return &RepoContext{
		RepoName:  name,
		RepoURL:   "https://github.com/me/" + name,
		Owner:     "me",
		CreatedAt: "2024-03-01T10:00:00Z",
		FullName:  "me/" + name,
	}
}

func TestMemoryContextStoreLastWriteWins(t *testing.T) {
	s := NewMemoryContextStore()

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, s.Save(testContext("first")))
	require.NoError(t, s.Save(testContext("second")))

	loaded, err = s.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "me/second", loaded.FullName)

	require.NoError(t, s.Clear())
	loaded, err = s.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryContextStoreReturnsCopy(t *testing.T) {
	s := NewMemoryContextStore()
	require.NoError(t, s.Save(testContext("app")))

	loaded, err := s.Load()
	require.NoError(t, err)
	loaded.FullName = "mutated"

	again, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "me/app", again.FullName)
}

func TestFileContextStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "repo_context.json")
	s := NewFileContextStore(path)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded, "missing file means no context")

	require.NoError(t, s.Save(testContext("blog")))
	loaded, err = s.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "me/blog", loaded.FullName)
	assert.Equal(t, "2024-03-01T10:00:00Z", loaded.CreatedAt)

	// Overwrite, never merge.
	require.NoError(t, s.Save(testContext("notes")))
	loaded, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "me/notes", loaded.FullName)

	require.NoError(t, s.Clear())
	loaded, err = s.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing twice is fine.
	require.NoError(t, s.Clear())
}

func TestCredentialStore(t *testing.T) {
	s := NewCredentialStore()

	assert.Empty(t, s.Get("s1").GitHubToken)

	s.SetGitHubToken("s1", "ghp_abc")
	s.SetOpenRouterKey("s1", "or_key")
	s.SetGitHubToken("s2", "ghp_other")

	creds := s.Get("s1")
	assert.Equal(t, "ghp_abc", creds.GitHubToken)
	assert.Equal(t, "or_key", creds.OpenRouterKey)
	assert.Equal(t, "ghp_other", s.Get("s2").GitHubToken)
	assert.Empty(t, s.Get("s2").OpenRouterKey)

	s.Clear("s1")
	assert.Empty(t, s.Get("s1").GitHubToken)
}

func TestOAuthStateStore(t *testing.T) {
	s := NewOAuthStateStore()

	s.SetState("s1", "nonce1")
	assert.Equal(t, "nonce1", s.State("s1"))
	assert.Equal(t, "s1", s.SessionByState("nonce1"))

	s.SetUsername("s1", "alice")
	assert.Equal(t, "alice", s.Username("s1"))

	s.ClearState("s1")
	assert.Empty(t, s.State("s1"))
	assert.Empty(t, s.SessionByState("nonce1"))
}
