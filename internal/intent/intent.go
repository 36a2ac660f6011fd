package intent

import "strings"

type Kind string

const (
	KindViewRepo         Kind = "view_repo"
	KindRepoCreation     Kind = "repo_creation"
	KindReadmeEdit       Kind = "readme_edit"
	KindIssueCreation    Kind = "issue_creation"
	KindViewIssues       Kind = "view_issues"
	KindViewPRs          Kind = "view_prs"
	KindRepoDeletion     Kind = "repo_deletion"
	KindBranchManagement Kind = "branch_management"
	KindCommitPush       Kind = "commit_push"
	KindGeneral          Kind = "general"
)

// bucket pairs a kind with its trigger phrases. Buckets are evaluated in
// order and the first match wins, so a text that matches several buckets is
// assigned to the earliest one.
type bucket struct {
	kind     Kind
	triggers []string
}

var buckets = []bucket{
	{KindViewRepo, []string{
		"view repo", "show repo", "open repo", "view my repo", "list repos",
		"see all repos", "browse repos", "check repos", "display repos",
		"explore repos", "repositories", "my repos", "repo list",
		"project list", "show projects", "all projects", "project overview",
		"repo overview", "check my projects", "show me my repos",
	}},
	{KindRepoCreation, []string{
		"create repo", "new project", "make repo", "start project",
		"init repo", "start repo", "new repo", "spin up repo",
		"make new project", "launch repo", "build repo", "set up repo",
		"initialize repo", "kickstart project", "generate repo",
		"create new repo", "add repo", "open new project", "make a repo",
		"spawn repo",
	}},
	{KindReadmeEdit, []string{
		"readme", "edit readme", "update readme", "modify readme",
		"fix readme", "change readme", "revise readme", "improve readme",
		"work on readme", "refresh readme", "touch readme",
		"edit documentation", "update docs", "change docs", "modify docs",
		"fix docs", "docs update", "update project info", "improve docs",
		"documentation fix",
	}},
	{KindIssueCreation, []string{
		"issue", "bug", "problem", "ticket", "error report", "create issue",
		"raise issue", "file issue", "log bug", "open bug", "report bug",
		"report problem", "flag issue", "add bug", "submit bug",
		"bug ticket", "new issue", "issue report", "problem report",
		"track bug",
	}},
	{KindViewIssues, []string{
		"view issues", "show issues", "list issues", "open issues",
		"see issues", "issues overview", "check issues", "display issues",
		"pending issues", "active issues", "problem list", "bug list",
		"all issues", "issue board", "bug board", "view bug reports",
		"review issues", "inspect issues", "show me issues", "issues page",
	}},
	{KindViewPRs, []string{
		"pull request", "pr", "merge request", "review request",
		"check prs", "list prs", "show prs", "view prs", "open prs",
		"pending prs", "active prs", "incoming prs", "merge prs",
		"display prs", "pulls", "pull queue", "review pulls", "pr board",
		"show pull requests", "pr overview",
	}},
	{KindRepoDeletion, []string{
		"delete repo", "remove repo", "nuke repo", "destroy repo",
		"drop repo", "erase repo", "kill repo", "wipe repo",
		"remove project", "delete project", "terminate repo", "repo removal",
		"close repo", "shut repo", "repo delete", "delete my repo",
		"remove my repo", "obliterate repo", "discard repo", "take down repo",
	}},
	{KindBranchManagement, []string{
		"branch", "create branch", "switch branch", "checkout", "branch off",
		"start branch", "new branch", "make branch", "branch switch",
		"move branch", "set branch", "pick branch", "branch change",
		"git branch", "branch out", "checkout branch", "jump branch",
		"branch swap", "repo branch", "branch update",
	}},
	{KindCommitPush, []string{
		"commit", "push", "save changes", "git commit", "git push",
		"record changes", "sync repo", "update repo", "push changes",
		"send commit", "write commit", "commit code", "add commit",
		"upload commit", "repo push", "save code", "upload changes",
		"version commit", "publish commit", "finalize commit",
	}},
}

// Detect maps free text to an intent kind. Lower-cases the input, then walks
// the buckets in priority order looking for the first trigger substring.
// Falls through to KindGeneral when nothing matches.
func Detect(message string) Kind {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return KindGeneral
	}
	for _, b := range buckets {
		if containsAny(text, b.triggers) {
			return b.kind
		}
	}
	return KindGeneral
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
