package daide

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"daidelog/internal/domain"
)

var (
	// powerRe finds the power assigned in an HLO line, e.g. "HLO ( AUS ) ( 1234 )".
	powerRe = regexp.MustCompile(`\(\s*([A-Z]{3})\s*\)`)
	turnRe  = regexp.MustCompile(`^(SPR|SUM|FAL|AUT|WIN) [0-9]+$`)
)

// Parser converts DAIDE server logs into game records.
type Parser struct {
	keywords []string
	powers   int
}

// NewParser creates a parser that drops lines containing any of keywords and
// expects one HLO line per power.
func NewParser(keywords []string, powers int) *Parser {
	return &Parser{
		keywords: keywords,
		powers:   powers,
	}
}

// Parse builds a game from the raw lines of a server log.
func (p *Parser) Parse(lines []string) (*domain.Game, error) {
	lines = fromHello(p.filter(lines))
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no HLO line", domain.ErrMalformedLog)
	}
	if len(lines) < p.powers {
		return nil, fmt.Errorf("%w: expected %d HLO lines, log has %d lines after the first", domain.ErrMalformedLog, p.powers, len(lines))
	}

	powers, err := powerMap(lines[:p.powers])
	if err != nil {
		return nil, err
	}

	b := newBuilder(powers)
	for _, line := range lines[p.powers:] {
		if err := b.add(line); err != nil {
			return nil, err
		}
	}
	return b.finish(), nil
}

// filter trims every line and drops blank lines and lines with a filtered keyword.
func (p *Parser) filter(lines []string) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || p.filtered(line) {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

func (p *Parser) filtered(line string) bool {
	for _, kw := range p.keywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

// fromHello drops every line before the first HLO.
func fromHello(lines []string) []string {
	for i, line := range lines {
		if strings.Contains(line, "HLO") {
			return lines[i:]
		}
	}
	return nil
}

// powerMap maps each client id to the power it was assigned in its HLO line.
func powerMap(lines []string) (map[string]string, error) {
	powers := make(map[string]string, len(lines))
	for _, line := range lines {
		if !strings.Contains(line, "HLO") {
			return nil, malformed(line, "expected HLO line")
		}
		m := powerRe.FindStringSubmatch(line)
		if m == nil {
			return nil, malformed(line, "HLO line without power")
		}
		powers[clientID(line)] = m[1]
	}
	return powers, nil
}

func clientID(line string) string {
	r, _ := utf8.DecodeRuneInString(line)
	return string(r)
}

func malformed(line, reason string) error {
	return fmt.Errorf("%w: %s: %q", domain.ErrMalformedLog, reason, line)
}

// splitDirection returns the message after the first ">>" or "<<" marker and
// whether it travels from client to server.
func splitDirection(line string) (string, bool, error) {
	up := strings.Index(line, ">>")
	down := strings.Index(line, "<<")

	switch {
	case up < 0 && down < 0:
		return "", false, malformed(line, "no >> or << marker")
	case down < 0 || (up >= 0 && up < down):
		return strings.TrimSpace(line[up+2:]), true, nil
	default:
		return strings.TrimSpace(line[down+2:]), false, nil
	}
}

func isTurn(g group) bool {
	return turnRe.MatchString(strings.Join(g.fields(), " "))
}
