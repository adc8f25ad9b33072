package domain

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Message is a press message sent by one power to others during a phase.
type Message struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

// Distribution maps a power to its units or supply centres, in the order the
// server reported them.
type Distribution = orderedmap.OrderedMap[string, []string]

// Phase is the board state and press of a single turn, e.g. "SPR 1901".
type Phase struct {
	Messages []Message     `json:"messages"`
	Units    *Distribution `json:"units"`
	SCs      *Distribution `json:"scs"`
}

// Game is the structured record produced from one server log.
type Game struct {
	Phases  *orderedmap.OrderedMap[string, *Phase] `json:"phases"`
	Moves   []string                               `json:"moves"`
	Status  string                                 `json:"status"`
	Summary string                                 `json:"summary"`
}

func NewDistribution() *Distribution {
	return orderedmap.New[string, []string]()
}

func NewPhase() *Phase {
	return &Phase{
		Messages: []Message{},
		Units:    NewDistribution(),
		SCs:      NewDistribution(),
	}
}

func NewGame() *Game {
	return &Game{
		Phases: orderedmap.New[string, *Phase](),
		Moves:  []string{},
	}
}

// MessageCount returns the number of press messages across all phases.
func (g *Game) MessageCount() int {
	n := 0
	for p := g.Phases.Oldest(); p != nil; p = p.Next() {
		n += len(p.Value.Messages)
	}
	return n
}

// PhaseNames returns phase names in play order.
func (g *Game) PhaseNames() []string {
	names := make([]string, 0, g.Phases.Len())
	for p := g.Phases.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}
	return names
}

// GameRecord is the catalog entry describing a converted log.
type GameRecord struct {
	Source      string    `json:"source"`
	Output      string    `json:"output"`
	ModTime     time.Time `json:"mod_time"`
	ConvertedAt time.Time `json:"converted_at"`
	Phases      int       `json:"phases"`
	Moves       int       `json:"moves"`
	Messages    int       `json:"messages"`
	Status      string    `json:"status,omitempty"`
}

// RecordFor summarises a converted game for the catalog.
func RecordFor(source, output string, modTime time.Time, game *Game) GameRecord {
	return GameRecord{
		Source:      source,
		Output:      output,
		ModTime:     modTime,
		ConvertedAt: time.Now(),
		Phases:      game.Phases.Len(),
		Moves:       len(game.Moves),
		Messages:    game.MessageCount(),
		Status:      game.Status,
	}
}
