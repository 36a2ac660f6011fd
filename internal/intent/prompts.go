package intent

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultPrompts are the built-in system prompts. Each JSON-shaped prompt is
// a hard contract with the dispatcher: field names and types must match what
// it expects. The general prompt asks for plain text instead.
var defaultPrompts = map[Kind]string{
	KindRepoCreation: `You are a GitHub repository creation assistant. ONLY respond with valid JSON in this EXACT format with NO additional text, markdown, or explanations:
{
  "action": "create_repo",
  "repo_name": "kebab-case-name",
  "description": "Brief 1-2 sentence description",
  "readme_content": "Complete markdown README content",
  "suggested_files": ["file1.js", "file2.md"],
  "tech_stack": ["javascript", "react", "node"]
}`,

	KindReadmeEdit: `You are a README editor assistant. ONLY respond with valid JSON in this EXACT format with NO additional text, markdown, or explanations:
{
  "action": "edit_readme",
  "content": "Complete new markdown README content",
  "change_summary": "Brief description of what was changed"
}`,

	KindIssueCreation: `You are a GitHub issue creation assistant. ONLY respond with valid JSON in this EXACT format with NO additional text, markdown, or explanations:
{
  "action": "create_issue",
  "title": "Clear, descriptive issue title",
  "body": "Detailed issue description with steps to reproduce if it's a bug",
  "labels": ["bug", "enhancement", "documentation"],
  "assignees": []
}`,

	KindViewRepo: `You are a GitHub repository viewer assistant. ONLY respond with valid JSON in this EXACT format with NO additional text, markdown, or explanations:
{
  "action": "view_repo",
  "owner": "username",
  "repo_name": "repository-name"
}`,

	KindGeneral: `You are a helpful GitHub assistant. Respond with plain text (NOT JSON) to help the user with their GitHub needs. Available actions include: creating repositories, editing README files, creating issues, viewing issues, viewing pull requests, and viewing repositories. Ask the user what they'd like to do.`,
}

// Registry maps intent kinds to system prompts. Kinds without a dedicated
// prompt (view_issues, view_prs, repo_deletion, branch_management,
// commit_push) fall back to the general prompt.
type Registry struct {
	prompts map[Kind]string
}

// NewRegistry returns a registry with the built-in prompts.
func NewRegistry() *Registry {
	prompts := make(map[Kind]string, len(defaultPrompts))
	for k, v := range defaultPrompts {
		prompts[k] = v
	}
	return &Registry{prompts: prompts}
}

// LoadRegistry builds a registry from the built-in prompts overlaid with any
// entries found in the YAML file at path. A missing file is not an error; the
// built-in prompts are used as-is.
func LoadRegistry(path string) (*Registry, error) {
	reg := NewRegistry()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return reg, nil
		}
		return nil, err
	}
	var overrides map[string]string
	if err := yaml.Unmarshal(b, &overrides); err != nil {
		return nil, err
	}
	for k, v := range overrides {
		if v != "" {
			reg.prompts[Kind(k)] = v
		}
	}
	return reg, nil
}

// PromptFor returns the system prompt for a kind, defaulting to general.
func (r *Registry) PromptFor(kind Kind) string {
	if p, ok := r.prompts[kind]; ok {
		return p
	}
	return r.prompts[KindGeneral]
}
