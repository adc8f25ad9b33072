package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"daidelog/internal/domain"
)

// Writer stores game records as JSON files in the results directory.
type Writer struct {
	dir    string
	indent string
}

func NewWriter(dir, indent string) *Writer {
	return &Writer{
		dir:    dir,
		indent: indent,
	}
}

// Ensure creates the results directory if it doesn't exist.
func (w *Writer) Ensure() error {
	return os.MkdirAll(w.dir, 0755)
}

// Clean removes every regular file directly inside the results directory and
// returns how many were removed.
func (w *Writer) Clean() (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read results directory: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(w.dir, e.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", e.Name(), err)
		}
		removed++
	}
	return removed, nil
}

// OutputPath maps a log path relative to the games directory to its result
// file, replacing the extension with .json.
func (w *Writer) OutputPath(rel string) string {
	name := strings.TrimSuffix(rel, filepath.Ext(rel)) + ".json"
	return filepath.Join(w.dir, filepath.FromSlash(name))
}

// Write stores game as the result for rel and returns the file written.
func (w *Writer) Write(rel string, game *domain.Game) (string, error) {
	path := w.OutputPath(rel)

	data, err := json.MarshalIndent(game, "", w.indent)
	if err != nil {
		return "", fmt.Errorf("failed to encode game: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func (w *Writer) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Remove deletes a result file; a missing file is not an error.
func (w *Writer) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
