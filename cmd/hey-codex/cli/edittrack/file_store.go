package edittrack

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/heycodex/cli/cmd/hey-codex/cli/validation"
)

// CountFilePrefix prefixes every counter file name in the state directory.
const CountFilePrefix = "hey-codex-edit-count-"

// FileStore keeps one newline-delimited file per session under Dir.
type FileStore struct {
	Dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// CountFilePath returns the counter file for key.
func (s *FileStore) CountFilePath(key string) (string, error) {
	if err := validation.ValidateSessionKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, CountFilePrefix+key), nil
}

// Load reads the counter file for key. A missing file is an empty session.
func (s *FileStore) Load(_ context.Context, key string) ([]string, error) {
	path, err := s.CountFilePath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // key validated above
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading edit counter: %w", err)
	}

	return parseCountFile(string(data)), nil
}

// Append adds path to the counter file for key, creating it if needed.
func (s *FileStore) Append(_ context.Context, key, path string) error {
	if err := validation.ValidateTrackedPath(path); err != nil {
		return err
	}
	countFile, err := s.CountFilePath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.Dir, 0o750); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	f, err := os.OpenFile(countFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec // key validated above
	if err != nil {
		return fmt.Errorf("opening edit counter: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(path + "\n"); err != nil {
		return fmt.Errorf("appending to edit counter: %w", err)
	}
	return nil
}

func parseCountFile(content string) []string {
	lines := strings.Split(content, "\n")
	paths := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		paths = append(paths, line)
	}
	return paths
}
