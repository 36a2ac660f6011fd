package dispatch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"project-next-backend/internal/ai"
	"project-next-backend/internal/github"
	"project-next-backend/internal/store"
)

const (
	msgConnectGitHub = "Please connect your GitHub token first to perform this action."
	msgNoContext     = "No repository context found. Please create a repository first."

	readmeCommitMessage = "Update README with AI-generated content"
)

// Controller routes a parsed action (or raw model text) to the GitHub
// gateway, updates the persisted repo context, and produces the user-facing
// reply. Every remote call is attempted exactly once.
type Controller struct {
	gateway  github.Gateway
	contexts store.ContextStore
	logger   *log.Logger

	// readmeDelay is how long the deferred README update waits after repo
	// creation for GitHub to finish auto-initializing the repository.
	readmeDelay time.Duration

	wg sync.WaitGroup
}

func NewController(gateway github.Gateway, contexts store.ContextStore, logger *log.Logger) *Controller {
	return &Controller{
		gateway:     gateway,
		contexts:    contexts,
		logger:      logger,
		readmeDelay: time.Second,
	}
}

// Wait blocks until any background README updates have finished. Used by
// tests and by graceful shutdown.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Handle turns a structured action (or raw text when action is nil) into a
// user-facing message, performing GitHub calls as needed. input is the
// user's original free text, used to derive repo names when the model did
// not supply them.
func (c *Controller) Handle(ctx context.Context, token, input string, action *ai.Action, raw string) string {
	if action == nil {
		return raw
	}

	switch action.Action {
	case ai.ActionCreateRepo, ai.ActionEditReadme, ai.ActionCreateIssue,
		ai.ActionViewIssues, ai.ActionViewPRs, ai.ActionViewRepo:
		if strings.TrimSpace(token) == "" {
			return msgConnectGitHub
		}
	}

	switch action.Action {
	case ai.ActionCreateRepo:
		return c.createRepo(ctx, token, input, action)
	case ai.ActionEditReadme:
		return c.editReadme(ctx, token, action)
	case ai.ActionCreateIssue:
		return c.createIssue(ctx, token, action)
	case ai.ActionViewIssues:
		return c.viewIssues(ctx, token)
	case ai.ActionViewPRs:
		return c.viewPullRequests(ctx, token)
	case ai.ActionViewRepo:
		return c.viewRepo(ctx, token, action)
	default:
		if action.Content != "" {
			return action.Content
		}
		if action.Response != "" {
			return action.Response
		}
		return "I'm not sure how to help with that. Please try rephrasing your request."
	}
}

func (c *Controller) createRepo(ctx context.Context, token, input string, action *ai.Action) string {
	var repoName, description, readmeContent string
	if action.RepoName != "" && action.Description != "" && action.ReadmeContent != "" {
		repoName = action.RepoName
		description = action.Description
		readmeContent = action.ReadmeContent
	} else {
		words := meaningfulWords(input)
		repoName = deriveRepoName(words)
		description = deriveDescription(words)
		readmeContent = deriveReadme(repoName, description)
	}

	repo, err := c.gateway.CreateRepository(ctx, token, repoName, description)
	if err != nil {
		return fmt.Sprintf("Error creating repository: %v", err)
	}

	c.saveContext(repo)

	// The repository is auto-initialized asynchronously on GitHub's side, so
	// the README write is deferred. Its failure is logged, never surfaced;
	// repo creation already succeeded.
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		time.Sleep(c.readmeDelay)
		bg, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := c.gateway.UpdateReadme(bg, token, repo.FullName, readmeContent, readmeCommitMessage); err != nil {
			c.logger.Printf("[dispatch] deferred README update failed for %s: %v", repo.FullName, err)
		}
	}()

	return fmt.Sprintf("Repository %q created successfully! 🎉\n\n%s\n\nRepo URL: %s", repo.Name, description, repo.HTMLURL)
}

func (c *Controller) editReadme(ctx context.Context, token string, action *ai.Action) string {
	rctx := c.loadContext()
	if rctx == nil {
		return msgNoContext
	}
	if action.Content == "" {
		return "No content provided for README update."
	}

	summary := action.ChangeSummary
	if summary == "" {
		summary = "AI-generated update"
	}
	if err := c.gateway.UpdateReadme(ctx, token, rctx.FullName, action.Content, "Update README: "+summary); err != nil {
		return fmt.Sprintf("Error updating README: %v", err)
	}

	changes := action.ChangeSummary
	if changes == "" {
		changes = "Updated content"
	}
	return fmt.Sprintf("README updated successfully! 📝\n\nChanges: %s\n\nView at: %s", changes, rctx.RepoURL)
}

func (c *Controller) createIssue(ctx context.Context, token string, action *ai.Action) string {
	rctx := c.loadContext()
	if rctx == nil {
		return msgNoContext
	}
	if action.Title == "" || action.Body == "" {
		return "Issue title and body are required."
	}

	issue, err := c.gateway.CreateIssue(ctx, token, rctx.FullName, github.IssueInput{
		Title:     action.Title,
		Body:      action.Body,
		Labels:    action.Labels,
		Assignees: action.Assignees,
	})
	if err != nil {
		return fmt.Sprintf("Error creating issue: %v", err)
	}
	return fmt.Sprintf("Issue created successfully! 🐛\n\nTitle: %s\nNumber: #%d\nURL: %s", issue.Title, issue.Number, issue.HTMLURL)
}

func (c *Controller) viewIssues(ctx context.Context, token string) string {
	rctx := c.loadContext()
	if rctx == nil {
		return msgNoContext
	}

	issues, err := c.gateway.GetIssues(ctx, token, rctx.FullName)
	if err != nil {
		return fmt.Sprintf("Error fetching issues: %v", err)
	}
	if len(issues) == 0 {
		return "No issues found in this repository. 🎉"
	}

	lines := make([]string, 0, len(issues))
	for _, issue := range issues {
		lines = append(lines, fmt.Sprintf("#%d: %s\n   State: %s\n   Created: %s\n   URL: %s",
			issue.Number, issue.Title, issue.State, formatDate(issue.CreatedAt), issue.HTMLURL))
	}
	return fmt.Sprintf("Found %d issue(s):\n\n%s", len(issues), strings.Join(lines, "\n\n"))
}

func (c *Controller) viewPullRequests(ctx context.Context, token string) string {
	rctx := c.loadContext()
	if rctx == nil {
		return msgNoContext
	}

	prs, err := c.gateway.GetPullRequests(ctx, token, rctx.FullName)
	if err != nil {
		return fmt.Sprintf("Error fetching pull requests: %v", err)
	}
	if len(prs) == 0 {
		return "No pull requests found in this repository."
	}

	lines := make([]string, 0, len(prs))
	for _, pr := range prs {
		lines = append(lines, fmt.Sprintf("#%d: %s\n   State: %s\n   Author: %s\n   Created: %s\n   URL: %s",
			pr.Number, pr.Title, pr.State, pr.User.Login, formatDate(pr.CreatedAt), pr.HTMLURL))
	}
	return fmt.Sprintf("Found %d pull request(s):\n\n%s", len(prs), strings.Join(lines, "\n\n"))
}

func (c *Controller) viewRepo(ctx context.Context, token string, action *ai.Action) string {
	if action.Owner == "" || action.RepoName == "" {
		return "Please provide both owner and repository name."
	}

	repo, err := c.gateway.GetRepository(ctx, token, action.Owner, action.RepoName)
	if err != nil {
		return fmt.Sprintf("Error viewing repository: %v", err)
	}

	c.saveContext(repo)
	return fmt.Sprintf("Found repository: %s\nURL: %s\nOwner: %s", repo.FullName, repo.HTMLURL, repo.Owner.Login)
}

// saveContext overwrites the persisted repo context with the given repo.
func (c *Controller) saveContext(repo github.Repo) {
	err := c.contexts.Save(&store.RepoContext{
		RepoName:  repo.Name,
		RepoURL:   repo.HTMLURL,
		Owner:     repo.Owner.Login,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		FullName:  repo.FullName,
	})
	if err != nil {
		c.logger.Printf("[dispatch] failed to save repo context for %s: %v", repo.FullName, err)
	}
}

func (c *Controller) loadContext() *store.RepoContext {
	rctx, err := c.contexts.Load()
	if err != nil {
		c.logger.Printf("[dispatch] failed to load repo context: %v", err)
		return nil
	}
	return rctx
}

func formatDate(created string) string {
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return created
	}
	return t.Format("Jan 2, 2006")
}
