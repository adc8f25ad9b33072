package usecase

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"daidelog/internal/port"
)

// HeadsUseCase prints the first line of every entry in a directory.
type HeadsUseCase struct {
	lister port.EntryLister
	reader port.FileReader
	out    io.Writer
	log    *slog.Logger
}

// NewHeadsUseCase creates a new heads use case writing to out.
func NewHeadsUseCase(lister port.EntryLister, reader port.FileReader, out io.Writer, log *slog.Logger) *HeadsUseCase {
	return &HeadsUseCase{
		lister: lister,
		reader: reader,
		out:    out,
		log:    log,
	}
}

// Run writes each entry's first line to the output, one line per entry. A
// first line with its own newline is written unchanged. It stops at the
// first entry that cannot be read and returns how many lines were written.
func (u *HeadsUseCase) Run(dir string) (int, error) {
	names, err := u.lister.ListEntries(dir)
	if err != nil {
		return 0, err
	}

	for i, name := range names {
		line, err := u.reader.FirstLine(filepath.Join(dir, name))
		if err != nil {
			return i, err
		}
		if !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		if _, err := io.WriteString(u.out, line); err != nil {
			return i, fmt.Errorf("failed to write output: %w", err)
		}
		u.log.Debug("first line read", "file", name, "bytes", len(line))
	}

	return len(names), nil
}
