package fs

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"daidelog/internal/domain"
)

// maxLineSize bounds a single log line; server logs carry long SMR lines.
const maxLineSize = 1 << 20

type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// FirstLine returns the first line of the file including its trailing
// newline, if the file has one. Later lines are never read.
func (r *Reader) FirstLine(path string) (string, error) {
	f, err := open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("%w %s: %w", domain.ErrOpenFile, path, err)
	}
	return line, nil
}

// ParseJSON parses the full contents of the file as a JSON value.
func (r *Reader) ParseJSON(path string) (any, error) {
	data, err := readAll(path)
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w in %s: %w", domain.ErrMalformedJSON, path, err)
	}
	return v, nil
}

// DecodeGame decodes the file as a game record, rejecting unknown top-level fields.
func (r *Reader) DecodeGame(path string) (*domain.Game, error) {
	data, err := readAll(path)
	if err != nil {
		return nil, err
	}

	var game domain.Game
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&game); err != nil {
		return nil, fmt.Errorf("%w in %s: %w", domain.ErrMalformedJSON, path, err)
	}
	if game.Phases == nil {
		return nil, fmt.Errorf("%w in %s: missing phases", domain.ErrMalformedJSON, path)
	}
	return &game, nil
}

// ReadLines returns every line of the file without line terminators.
func (r *Reader) ReadLines(path string) ([]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w %s: %w", domain.ErrOpenFile, path, err)
	}
	return lines, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", domain.ErrOpenFile, path, err)
	}
	return f, nil
}

func readAll(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", domain.ErrOpenFile, path, err)
	}
	return data, nil
}
