package daide

import (
	"fmt"
	"strings"
)

// group is a top-level parenthesised span of a DAIDE message.
type group struct {
	text  string // contents between the outer parentheses, trimmed
	start int    // offset of '('
	end   int    // offset of the matching ')'
}

// fields returns the tokens of the group with nested parentheses flattened,
// so "RUS FLT ( STP SCS )" yields RUS, FLT, STP, SCS.
func (g group) fields() []string {
	return tokens(g.text)
}

var parenStripper = strings.NewReplacer("(", " ", ")", " ")

func tokens(s string) []string {
	return strings.Fields(parenStripper.Replace(s))
}

// topGroups splits s into its top-level parenthesised groups. Text outside
// groups is ignored.
func topGroups(s string) ([]group, error) {
	var groups []group
	depth, start := 0, 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			if depth == 0 {
				start = i
			}
			depth++
		case ')':
			if depth == 0 {
				return nil, fmt.Errorf("unbalanced ')' at offset %d", i)
			}
			depth--
			if depth == 0 {
				groups = append(groups, group{
					text:  strings.TrimSpace(s[start+1 : i]),
					start: start,
					end:   i,
				})
			}
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '(' at offset %d", start)
	}
	return groups, nil
}
