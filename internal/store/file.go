package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileContextStore persists the repo context as a single JSON file. Writes
// go through a temp file and rename so a crash mid-write never leaves a
// truncated record.
type FileContextStore struct {
	path string
}

func NewFileContextStore(path string) *FileContextStore {
	return &FileContextStore{path: path}
}

func (f *FileContextStore) Save(ctx *RepoContext) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileContextStore) Load() (*RepoContext, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var ctx RepoContext
	if err := json.Unmarshal(b, &ctx); err != nil {
		return nil, err
	}
	if ctx.FullName == "" {
		return nil, nil
	}
	return &ctx, nil
}

func (f *FileContextStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
