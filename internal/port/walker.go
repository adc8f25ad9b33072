package port

import (
	"time"

	"daidelog/internal/domain"
)

// EntryLister lists the names in a directory without filtering.
type EntryLister interface {
	ListEntries(dir string) ([]string, error)
}

type FileWalker interface {
	Walk(root string) ([]FileInfo, error)
}

type FileInfo struct {
	Path    string
	Rel     string
	ModTime time.Time
	Size    int64
}

type FileReader interface {
	FirstLine(path string) (string, error)

	ParseJSON(path string) (any, error)

	DecodeGame(path string) (*domain.Game, error)

	ReadLines(path string) ([]string, error)
}
