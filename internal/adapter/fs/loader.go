package fs

import (
	"fmt"
	"os"

	"daidelog/internal/domain"
)

// Loader lists directory entries.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// ListEntries returns every entry name in dir in the order the OS reports
// them. Nothing is filtered and subdirectories are not descended into.
func (l *Loader) ListEntries(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDirNotFound, dir)
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
