package store

// RepoContext is the single persisted record of the repository currently
// being discussed. Created after a successful repo creation or lookup, read
// to enrich prompts and to address follow-up operations without re-specifying
// the repo. Always overwritten whole, never merged.
type RepoContext struct {
	RepoName  string `json:"repo_name"`
	RepoURL   string `json:"repo_url"`
	Owner     string `json:"owner"`
	CreatedAt string `json:"created_at"`
	FullName  string `json:"full_name"`
}

// ContextStore persists at most one RepoContext (last-write-wins).
type ContextStore interface {
	// Save overwrites the stored context.
	Save(ctx *RepoContext) error
	// Load returns the stored context, or nil when none exists.
	Load() (*RepoContext, error)
	// Clear removes the stored context.
	Clear() error
}
