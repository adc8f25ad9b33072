package port

import "daidelog/internal/domain"

// GameParser turns the lines of a server log into a game record.
type GameParser interface {
	Parse(lines []string) (*domain.Game, error)
}

// GameWriter persists game records to the results directory.
type GameWriter interface {
	Ensure() error

	Clean() (int, error)

	OutputPath(rel string) string

	Write(rel string, game *domain.Game) (string, error)

	Exists(path string) bool

	Remove(path string) error
}

type GameCatalog interface {
	PutGame(rec domain.GameRecord) error

	GetGame(source string) (domain.GameRecord, bool, error)

	DeleteGame(source string) error

	ListGames() ([]domain.GameRecord, error)

	Clear() error
}
