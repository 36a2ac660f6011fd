package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionFencedJSON(t *testing.T) {
	raw := "```json\n{\"action\":\"create_repo\", \"repo_name\":\"x\", \"description\":\"d\"}\n```"
	action, ok := ParseAction(raw)
	require.True(t, ok)
	assert.Equal(t, ActionCreateRepo, action.Action)
	assert.Equal(t, "x", action.RepoName)
	assert.Equal(t, "d", action.Description)
}

func TestParseActionBareJSON(t *testing.T) {
	action, ok := ParseAction(`{"action":"view_repo","owner":"octocat","repo_name":"hello"}`)
	require.True(t, ok)
	assert.Equal(t, ActionViewRepo, action.Action)
	assert.Equal(t, "octocat", action.Owner)
	assert.Equal(t, "hello", action.RepoName)
}

func TestParseActionProseAroundJSON(t *testing.T) {
	raw := "Sure! Here is the action you asked for:\n```\n{\"action\":\"edit_readme\",\"content\":\"# Hi\"}\n```\nLet me know if you need more."
	action, ok := ParseAction(raw)
	require.True(t, ok)
	assert.Equal(t, ActionEditReadme, action.Action)
	assert.Equal(t, "# Hi", action.Content)
}

func TestParseActionNoJSON(t *testing.T) {
	raw := "I can help you create repositories, issues and more."
	_, ok := ParseAction(raw)
	assert.False(t, ok)
}

func TestParseActionUnknownTag(t *testing.T) {
	_, ok := ParseAction(`{"action":"delete_everything"}`)
	assert.False(t, ok)
}

func TestParseActionMissingTag(t *testing.T) {
	_, ok := ParseAction(`{"repo_name":"x"}`)
	assert.False(t, ok)
}

func TestParseActionMalformedJSON(t *testing.T) {
	_, ok := ParseAction(`{"action":"create_repo",`)
	assert.False(t, ok)
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "meta-llama/llama-3.1-405b-instruct:free", ResolveModel("Meta Llama 405B"))
	assert.Equal(t, "google/gemma-2-9b-it:free", ResolveModel("Gemma 9B"))
	// Raw model ids pass through, empty falls back to the default.
	assert.Equal(t, "some/custom-model", ResolveModel("some/custom-model"))
	assert.Equal(t, DefaultModel, ResolveModel(""))
}
