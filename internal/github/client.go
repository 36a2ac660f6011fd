package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Gateway is the narrow GitHub surface the dispatcher needs. Each method
// issues exactly one HTTP call (two for UpdateReadme, a read-then-write).
// Token presence is the caller's job; the gateway only sanitizes it.
type Gateway interface {
	CreateRepository(ctx context.Context, token, name, description string) (Repo, error)
	UpdateReadme(ctx context.Context, token, fullName, content, message string) error
	CreateIssue(ctx context.Context, token, fullName string, in IssueInput) (Issue, error)
	GetIssues(ctx context.Context, token, fullName string) ([]Issue, error)
	GetPullRequests(ctx context.Context, token, fullName string) ([]PR, error)
	GetRepository(ctx context.Context, token, owner, name string) (Repo, error)
}

// Client implements Gateway against the GitHub REST API.
type Client struct {
	httpClient *http.Client
	baseAPI    string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseAPI:    "https://api.github.com",
	}
}

// NewClientWithBase is used by tests to point the client at a fake server.
func NewClientWithBase(baseAPI string) *Client {
	c := NewClient()
	c.baseAPI = baseAPI
	return c
}

// sanitizeToken turns the operator-supplied free-text credential into a safe
// HTTP header value: trimmed, printable ASCII only, at most 200 characters.
func sanitizeToken(token string) string {
	token = strings.TrimSpace(token)
	var b strings.Builder
	for _, r := range token {
		if r >= 0x20 && r <= 0x7e {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > 200 {
		out = out[:200]
	}
	return out
}

func (c *Client) do(ctx context.Context, token, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseAPI+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "token "+sanitizeToken(token))
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "Project-Next-App")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

func (c *Client) getJSON(ctx context.Context, token, path string, out any) error {
	resp, err := c.do(ctx, token, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github api %s failed: %s", path, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// remoteMessage extracts the "message" field GitHub puts in error bodies.
func remoteMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(body))
}

// CreateRepository creates a public, auto-initialized repository for the
// authenticated user.
func (c *Client) CreateRepository(ctx context.Context, token, name, description string) (Repo, error) {
	payload, _ := json.Marshal(map[string]any{
		"name":        name,
		"description": description,
		"private":     false,
		"auto_init":   true,
	})
	resp, err := c.do(ctx, token, http.MethodPost, "/user/repos", bytes.NewReader(payload))
	if err != nil {
		return Repo{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		msg := remoteMessage(b)
		if msg == "" {
			msg = "Failed to create repository"
		}
		return Repo{}, fmt.Errorf("%s", msg)
	}
	var repo Repo
	if err := json.NewDecoder(resp.Body).Decode(&repo); err != nil {
		return Repo{}, err
	}
	return repo, nil
}

type readmeFile struct {
	SHA string `json:"sha"`
}

// UpdateReadme reads the current README to obtain its sha, then writes the
// new content with that sha and the given commit message. When the read
// fails the update is silently skipped; a stale sha on the write is rejected
// by GitHub and surfaced as an error.
func (c *Client) UpdateReadme(ctx context.Context, token, fullName, content, message string) error {
	var current readmeFile
	if err := c.getJSON(ctx, token, fmt.Sprintf("/repos/%s/contents/README.md", fullName), &current); err != nil {
		return nil
	}

	payload, _ := json.Marshal(map[string]any{
		"message": message,
		"content": base64.StdEncoding.EncodeToString([]byte(content)),
		"sha":     current.SHA,
	})
	resp, err := c.do(ctx, token, http.MethodPut, fmt.Sprintf("/repos/%s/contents/README.md", fullName), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("readme update failed: %s", remoteMessage(b))
	}
	return nil
}

// CreateIssue opens an issue on the repository.
func (c *Client) CreateIssue(ctx context.Context, token, fullName string, in IssueInput) (Issue, error) {
	if in.Labels == nil {
		in.Labels = []string{}
	}
	if in.Assignees == nil {
		in.Assignees = []string{}
	}
	payload, _ := json.Marshal(in)
	resp, err := c.do(ctx, token, http.MethodPost, fmt.Sprintf("/repos/%s/issues", fullName), bytes.NewReader(payload))
	if err != nil {
		return Issue{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return Issue{}, fmt.Errorf("failed to create issue: %s", remoteMessage(b))
	}
	var issue Issue
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return Issue{}, err
	}
	return issue, nil
}

// GetIssues lists the repository's issues. An empty list is a valid result,
// not an error.
func (c *Client) GetIssues(ctx context.Context, token, fullName string) ([]Issue, error) {
	var issues []Issue
	if err := c.getJSON(ctx, token, fmt.Sprintf("/repos/%s/issues", fullName), &issues); err != nil {
		return nil, fmt.Errorf("failed to fetch issues: %w", err)
	}
	return issues, nil
}

// GetPullRequests lists the repository's open pull requests.
func (c *Client) GetPullRequests(ctx context.Context, token, fullName string) ([]PR, error) {
	var prs []PR
	if err := c.getJSON(ctx, token, fmt.Sprintf("/repos/%s/pulls", fullName), &prs); err != nil {
		return nil, fmt.Errorf("failed to fetch pull requests: %w", err)
	}
	return prs, nil
}

// GetRepository fetches a single repository by owner and name.
func (c *Client) GetRepository(ctx context.Context, token, owner, name string) (Repo, error) {
	var repo Repo
	if err := c.getJSON(ctx, token, fmt.Sprintf("/repos/%s/%s", owner, name), &repo); err != nil {
		return Repo{}, fmt.Errorf("repository not found: %w", err)
	}
	return repo, nil
}
