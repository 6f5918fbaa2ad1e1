package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileRepository stores the favorites list as a JSON array in a single file.
// This is the standalone-deployment analog of browser local storage: one
// fixed location, read once, rewritten in full.
type FileRepository struct {
	path string
}

// NewFileRepository creates a repository backed by the given file path. If
// path is empty, the file lives in the user's home directory under a name
// derived from the fixed storage key.
func NewFileRepository(path string) *FileRepository {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		path = filepath.Join(home, "."+StorageKey+".json")
	}
	return &FileRepository{path: path}
}

// Load reads the stored labels. A missing file yields an empty list.
func (r *FileRepository) Load(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading favorites file: %w", err)
	}

	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("decoding favorites file: %w", err)
	}
	return labels, nil
}

// Save rewrites the file with the full list.
func (r *FileRepository) Save(_ context.Context, labels []string) error {
	data, err := json.Marshal(labels)
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return fmt.Errorf("writing favorites file: %w", err)
	}
	return nil
}

// Ensure FileRepository implements Repository interface.
var _ Repository = (*FileRepository)(nil)
