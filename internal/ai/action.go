package ai

// Action is the structured command the model is asked to emit. The Action
// tag must be one of the closed set below; anything else is treated as plain
// text. Constructed per request, never persisted.
type Action struct {
	Action         string   `json:"action"`
	RepoName       string   `json:"repo_name,omitempty"`
	Owner          string   `json:"owner,omitempty"`
	Description    string   `json:"description,omitempty"`
	ReadmeContent  string   `json:"readme_content,omitempty"`
	SuggestedFiles []string `json:"suggested_files,omitempty"`
	TechStack      []string `json:"tech_stack,omitempty"`
	Content        string   `json:"content,omitempty"`
	Response       string   `json:"response,omitempty"`
	ChangeSummary  string   `json:"change_summary,omitempty"`
	Title          string   `json:"title,omitempty"`
	Body           string   `json:"body,omitempty"`
	Labels         []string `json:"labels,omitempty"`
	Assignees      []string `json:"assignees,omitempty"`
}

const (
	ActionCreateRepo  = "create_repo"
	ActionEditReadme  = "edit_readme"
	ActionCreateIssue = "create_issue"
	ActionViewIssues  = "view_issues"
	ActionViewPRs     = "view_prs"
	ActionViewRepo    = "view_repo"
	ActionGeneralHelp = "general_help"
)

var validActions = map[string]bool{
	ActionCreateRepo:  true,
	ActionEditReadme:  true,
	ActionCreateIssue: true,
	ActionViewIssues:  true,
	ActionViewPRs:     true,
	ActionViewRepo:    true,
	ActionGeneralHelp: true,
}

// ValidAction reports whether tag belongs to the closed action set.
func ValidAction(tag string) bool {
	return validActions[tag]
}
