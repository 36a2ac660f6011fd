package intent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptForFallsBackToGeneral(t *testing.T) {
	reg := NewRegistry()

	assert.Contains(t, reg.PromptFor(KindRepoCreation), `"action": "create_repo"`)
	assert.Contains(t, reg.PromptFor(KindReadmeEdit), `"action": "edit_readme"`)
	assert.Contains(t, reg.PromptFor(KindIssueCreation), `"action": "create_issue"`)
	assert.Contains(t, reg.PromptFor(KindViewRepo), `"action": "view_repo"`)

	general := reg.PromptFor(KindGeneral)
	assert.Contains(t, general, "plain text")

	// Kinds without a dedicated prompt degrade to the general prompt.
	for _, kind := range []Kind{KindViewIssues, KindViewPRs, KindRepoDeletion, KindBranchManagement, KindCommitPush} {
		assert.Equal(t, general, reg.PromptFor(kind), "kind %s should use the general prompt", kind)
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, NewRegistry().PromptFor(KindGeneral), reg.PromptFor(KindGeneral))
}

func TestLoadRegistryOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("general: custom general prompt\n"), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "custom general prompt", reg.PromptFor(KindGeneral))
	// Untouched prompts keep their defaults.
	assert.Contains(t, reg.PromptFor(KindRepoCreation), `"action": "create_repo"`)
}
