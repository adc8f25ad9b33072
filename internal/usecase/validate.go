package usecase

import (
	"log/slog"
	"path/filepath"

	"daidelog/internal/port"
)

// ValidateUseCase checks that every entry of a directory parses as JSON.
type ValidateUseCase struct {
	lister port.EntryLister
	reader port.FileReader
	log    *slog.Logger
}

// NewValidateUseCase creates a new validate use case.
func NewValidateUseCase(lister port.EntryLister, reader port.FileReader, log *slog.Logger) *ValidateUseCase {
	return &ValidateUseCase{
		lister: lister,
		reader: reader,
		log:    log,
	}
}

// ValidateResult summarises the parsed files by JSON kind.
type ValidateResult struct {
	Files int
	Kinds map[string]int
}

// Run parses each entry in dir. With strict set, each entry must also decode
// as a game record. The first failure is returned.
func (u *ValidateUseCase) Run(dir string, strict bool) (*ValidateResult, error) {
	names, err := u.lister.ListEntries(dir)
	if err != nil {
		return nil, err
	}

	result := &ValidateResult{Kinds: make(map[string]int)}
	for _, name := range names {
		path := filepath.Join(dir, name)

		if strict {
			game, err := u.reader.DecodeGame(path)
			if err != nil {
				return result, err
			}
			u.log.Debug("game record valid", "file", name, "phases", game.Phases.Len())
			result.Kinds["game"]++
		} else {
			v, err := u.reader.ParseJSON(path)
			if err != nil {
				return result, err
			}
			kind := kindOf(v)
			u.log.Debug("json valid", "file", name, "kind", kind)
			result.Kinds[kind]++
		}
		result.Files++
	}

	return result, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}
