package store

import (
	"database/sql"
	"fmt"

	"project-next-backend/internal/db"
)

// DatabaseContextStore persists the repo context in PostgreSQL. The table
// holds at most one row; every save upserts it, matching the
// last-write-wins contract of the store.
type DatabaseContextStore struct {
	db *db.DB
}

func NewDatabaseContextStore(database *db.DB) *DatabaseContextStore {
	return &DatabaseContextStore{db: database}
}

func (ds *DatabaseContextStore) Save(ctx *RepoContext) error {
	if ctx == nil || ctx.FullName == "" {
		return fmt.Errorf("repo context full_name is required")
	}

	query := `
		INSERT INTO repo_context (id, repo_name, repo_url, owner, created_at, full_name, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			repo_name = EXCLUDED.repo_name,
			repo_url = EXCLUDED.repo_url,
			owner = EXCLUDED.owner,
			created_at = EXCLUDED.created_at,
			full_name = EXCLUDED.full_name,
			updated_at = NOW()
	`

	if _, err := ds.db.Exec(query, ctx.RepoName, ctx.RepoURL, ctx.Owner, ctx.CreatedAt, ctx.FullName); err != nil {
		return fmt.Errorf("failed to save repo context: %w", err)
	}
	return nil
}

func (ds *DatabaseContextStore) Load() (*RepoContext, error) {
	var ctx RepoContext
	query := `
		SELECT repo_name, repo_url, owner, created_at, full_name
		FROM repo_context
		WHERE id = 1
	`

	err := ds.db.QueryRow(query).Scan(
		&ctx.RepoName,
		&ctx.RepoURL,
		&ctx.Owner,
		&ctx.CreatedAt,
		&ctx.FullName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load repo context: %w", err)
	}
	return &ctx, nil
}

func (ds *DatabaseContextStore) Clear() error {
	if _, err := ds.db.Exec(`DELETE FROM repo_context WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear repo context: %w", err)
	}
	return nil
}
