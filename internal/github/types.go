package github

// Repo holds the repository metadata the pipeline needs.
type Repo struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description,omitempty"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// Issue is a repository issue as returned by the issues endpoints.
type Issue struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
	HTMLURL   string `json:"html_url"`
	Body      string `json:"body,omitempty"`
}

// PR is an open pull request with the fields the summaries render.
type PR struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
	HTMLURL   string `json:"html_url"`
	User      struct {
		Login string `json:"login"`
	} `json:"user"`
}

// IssueInput is the payload for creating an issue. Labels and assignees
// default to empty lists when absent.
type IssueInput struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Labels    []string `json:"labels"`
	Assignees []string `json:"assignees"`
}
