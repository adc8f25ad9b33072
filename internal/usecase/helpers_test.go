package usecase

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"daidelog/internal/domain"
)

const gameLog = `1 >> NME ( 'Alice' ) ( 'v1' )
1 << HLO ( AUS ) ( 1 ) ( ( LVL 0 ) )
2 << HLO ( ENG ) ( 2 ) ( ( LVL 0 ) )
3 << HLO ( FRA ) ( 3 ) ( ( LVL 0 ) )
4 << HLO ( GER ) ( 4 ) ( ( LVL 0 ) )
5 << HLO ( ITA ) ( 5 ) ( ( LVL 0 ) )
6 << HLO ( RUS ) ( 6 ) ( ( LVL 0 ) )
7 << HLO ( TUR ) ( 7 ) ( ( LVL 0 ) )
ALL << SCO ( AUS BUD TRI VIE ) ( ITA NAP ROM VEN )
ALL << NOW ( SPR 1901 ) ( AUS AMY VIE ) ( ITA AMY ROM )
5 >> SND ( SPR 1901 ) ( AUS ) ( PRP ( PCE ( AUS ITA ) ) )
ALL << ORD ( SPR 1901 ) ( ( AUS AMY VIE ) HLD ) ( SUC )
ALL << NOW ( FAL 1901 ) ( AUS AMY VIE ) ( ITA AMY ROM )
ALL << DRW
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// countingReader records which files were opened.
type countingReader struct {
	opened []string
	lines  map[string]string
	values map[string]any
	err    error
}

func (r *countingReader) FirstLine(path string) (string, error) {
	r.opened = append(r.opened, path)
	if r.err != nil {
		return "", r.err
	}
	return r.lines[filepath.Base(path)], nil
}

func (r *countingReader) ParseJSON(path string) (any, error) {
	r.opened = append(r.opened, path)
	if r.err != nil {
		return nil, r.err
	}
	return r.values[filepath.Base(path)], nil
}

func (r *countingReader) DecodeGame(path string) (*domain.Game, error) {
	r.opened = append(r.opened, path)
	if r.err != nil {
		return nil, r.err
	}
	return domain.NewGame(), nil
}

func (r *countingReader) ReadLines(path string) ([]string, error) {
	r.opened = append(r.opened, path)
	return nil, r.err
}

type staticLister struct {
	names []string
	err   error
}

func (l staticLister) ListEntries(string) ([]string, error) {
	return l.names, l.err
}
