package daide

import (
	"strings"

	"daidelog/internal/domain"
)

// builder accumulates a game while log lines are replayed in order.
type builder struct {
	powers map[string]string
	game   *domain.Game

	phase     *domain.Phase
	phaseName string
	centres   *domain.Distribution
}

func newBuilder(powers map[string]string) *builder {
	return &builder{
		powers:  powers,
		game:    domain.NewGame(),
		phase:   domain.NewPhase(),
		centres: domain.NewDistribution(),
	}
}

func (b *builder) add(line string) error {
	msg, toServer, err := splitDirection(line)
	if err != nil {
		return err
	}

	if strings.HasPrefix(line, "ALL") {
		return b.broadcast(line, msg)
	}

	power, ok := b.powers[clientID(line)]
	if !ok {
		return malformed(line, "unknown client")
	}

	if toServer && strings.HasPrefix(msg, "SND") {
		return b.press(line, power, msg)
	}
	return nil
}

func (b *builder) broadcast(line, msg string) error {
	switch {
	case strings.Contains(msg, "ORD"):
		b.game.Moves = append(b.game.Moves, msg)
	case strings.Contains(msg, "SCO"):
		return b.supplyCentres(line, msg)
	case strings.Contains(msg, "NOW"):
		return b.now(line, msg)
	case strings.Contains(msg, "SLO"), strings.Contains(msg, "DRW"):
		b.game.Status = msg
	case strings.Contains(msg, "SMR"):
		b.game.Summary = msg
	}
	return nil
}

// supplyCentres replaces the current ownership with an SCO message such as
// "SCO ( AUS BUD TRI VIE ) ( UNO SER )".
func (b *builder) supplyCentres(line, msg string) error {
	groups, err := topGroups(after(msg, "SCO"))
	if err != nil {
		return malformed(line, err.Error())
	}

	centres := domain.NewDistribution()
	for _, g := range groups {
		f := g.fields()
		if len(f) == 0 {
			return malformed(line, "empty supply centre group")
		}
		centres.Set(f[0], f[1:])
	}
	b.centres = centres
	return nil
}

// now opens the phase named by a NOW message. The phase in progress is stored
// unless the server repeats the same turn.
func (b *builder) now(line, msg string) error {
	groups, err := topGroups(after(msg, "NOW"))
	if err != nil {
		return malformed(line, err.Error())
	}
	if len(groups) == 0 || !isTurn(groups[0]) {
		return malformed(line, "NOW without turn")
	}
	turn := strings.Join(groups[0].fields(), " ")

	units := domain.NewDistribution()
	for _, g := range groups[1:] {
		power, unit, ok := parseUnit(g)
		if !ok {
			return malformed(line, "invalid unit "+g.text)
		}
		list, _ := units.Get(power)
		units.Set(power, append(list, unit))
	}

	if b.phaseName != "" && b.phaseName != turn {
		b.game.Phases.Set(b.phaseName, b.phase)
		b.phase = domain.NewPhase()
	}
	b.phaseName = turn
	b.phase.Units = units
	b.phase.SCs = b.centres
	return nil
}

// press records "SND [( turn )] ( recipients ) press" sent by power.
func (b *builder) press(line, power, msg string) error {
	rest := after(msg, "SND")
	groups, err := topGroups(rest)
	if err != nil {
		return malformed(line, err.Error())
	}

	i := 0
	if len(groups) > 0 && isTurn(groups[0]) {
		i = 1
	}
	if len(groups) < i+2 {
		return malformed(line, "SND without recipients and press")
	}

	b.phase.Messages = append(b.phase.Messages, domain.Message{
		Sender:    power,
		Recipient: strings.Join(groups[i].fields(), " "),
		Message:   strings.TrimSpace(rest[groups[i].end+1:]),
	})
	return nil
}

func (b *builder) finish() *domain.Game {
	if b.phaseName != "" {
		b.game.Phases.Set(b.phaseName, b.phase)
	}
	return b.game
}

// parseUnit renders "( AUS AMY BUD )" as AUS, "A BUD". Retreat options after
// MRT are dropped.
func parseUnit(g group) (string, string, bool) {
	f := g.fields()
	for i, tok := range f {
		if tok == "MRT" {
			f = f[:i]
			break
		}
	}
	if len(f) < 3 {
		return "", "", false
	}
	return f[0], f[1][:1] + " " + strings.Join(f[2:], " "), true
}

// after returns the text following the first occurrence of token.
func after(msg, token string) string {
	i := strings.Index(msg, token)
	if i < 0 {
		return msg
	}
	return msg[i+len(token):]
}
