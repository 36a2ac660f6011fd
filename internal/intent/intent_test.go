package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Kind
	}{
		{"view repo", "show me my repos", KindViewRepo},
		{"create repo", "create repo for my blog", KindRepoCreation},
		{"readme edit", "can you update readme with install steps", KindReadmeEdit},
		{"issue creation", "report bug in the login flow", KindIssueCreation},
		{"view prs", "show pull requests", KindViewPRs},
		{"repo deletion", "delete repo old-experiments", KindRepoDeletion},
		{"branch management", "create branch feature/auth", KindBranchManagement},
		{"commit push", "git push my latest work", KindCommitPush},
		{"no match", "what is the weather like", KindGeneral},
		{"empty", "", KindGeneral},
		{"whitespace only", "   ", KindGeneral},
		{"case insensitive", "CREATE REPO for testing", KindRepoCreation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.message))
		})
	}
}

func TestDetectPriorityOrder(t *testing.T) {
	// A message matching both the view_repo and repo_creation buckets is
	// assigned to view_repo, the earlier bucket.
	assert.Equal(t, KindViewRepo, Detect("list repos then create repo"))
	assert.Equal(t, KindViewRepo, Detect("make a repo and show me my repos"))

	// issue_creation is checked before view_issues, so "view issues"
	// containing the bare "issue" trigger lands in issue_creation.
	assert.Equal(t, KindIssueCreation, Detect("view issues"))

	// readme_edit wins over issue_creation when both match.
	assert.Equal(t, KindReadmeEdit, Detect("fix readme for the bug tracker"))
}
