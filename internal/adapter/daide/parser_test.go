package daide

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"daidelog/internal/domain"
)

var defaultKeywords = []string{"==", "ADM", "NME", "MDF", "8 >>", "8 <<", "GOF"}

const sampleLog = `
== syntax check passed
1 >> NME ( 'Alice' ) ( 'v1' )
ADM ( 'server' ) ( 'Welcome' )
   1 << HLO ( AUS ) ( 1001 ) ( ( LVL 0 ) ( MTL 5 ) )
2 << HLO ( ENG ) ( 1002 ) ( ( LVL 0 ) ( MTL 5 ) )
3 << HLO ( FRA ) ( 1003 ) ( ( LVL 0 ) ( MTL 5 ) )
8 << HLO ( UNO ) ( 1008 ) ( ( LVL 0 ) )
4 << HLO ( GER ) ( 1004 ) ( ( LVL 0 ) ( MTL 5 ) )
5 << HLO ( ITA ) ( 1005 ) ( ( LVL 0 ) ( MTL 5 ) )
6 << HLO ( RUS ) ( 1006 ) ( ( LVL 0 ) ( MTL 5 ) )
7 << HLO ( TUR ) ( 1007 ) ( ( LVL 0 ) ( MTL 5 ) )
ALL << MDF ( AUS ENG FRA GER ITA RUS TUR ) ( ... )
ALL << SCO ( AUS BUD TRI VIE ) ( ENG EDI LON LVP ) ( UNO BEL )
ALL << NOW ( SPR 1901 ) ( AUS AMY BUD ) ( AUS FLT TRI ) ( RUS FLT ( STP SCS ) )
3 >> SND ( SPR 1901 ) ( ENG ) ( PRP ( PCE ( ENG FRA ) ) )
2 << FRM ( FRA ) ( ENG ) ( PRP ( PCE ( ENG FRA ) ) )
2 >> SND ( FRA GER ) ( YES ( PRP ( PCE ( ENG FRA ) ) ) )

1 >> SUB ( ( AUS AMY BUD ) MTO SER )
1 << GOF
ALL << ORD ( SPR 1901 ) ( ( AUS AMY BUD ) MTO SER ) ( SUC )
ALL << NOW ( FAL 1901 ) ( AUS AMY SER ) ( AUS FLT TRI ) ( TUR AMY BUL MRT ( RUM SER ) )
1 >> SND ( FAL 1901 ) ( TUR ) ( PRP ( ALY ( AUS TUR ) VSS ( RUS ) ) )
ALL << SCO ( AUS BUD SER TRI VIE ) ( ENG EDI LON LVP ) ( UNO BEL )
ALL << DRW
ALL << SMR ( FAL 1901 ) ( AUS ( 'Alice' ) ( 'v1' ) 5 )
`

type entry struct {
	Power  string
	Values []string
}

func entries(d *domain.Distribution) []entry {
	var out []entry
	for p := d.Oldest(); p != nil; p = p.Next() {
		out = append(out, entry{Power: p.Key, Values: p.Value})
	}
	return out
}

func parseSample(t *testing.T, log string) *domain.Game {
	t.Helper()
	game, err := NewParser(defaultKeywords, 7).Parse(strings.Split(log, "\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return game
}

func TestParsePhases(t *testing.T) {
	game := parseSample(t, sampleLog)

	if diff := cmp.Diff([]string{"SPR 1901", "FAL 1901"}, game.PhaseNames()); diff != "" {
		t.Fatalf("phases mismatch (-want +got):\n%s", diff)
	}

	spring, _ := game.Phases.Get("SPR 1901")
	wantUnits := []entry{
		{"AUS", []string{"A BUD", "F TRI"}},
		{"RUS", []string{"F STP SCS"}},
	}
	if diff := cmp.Diff(wantUnits, entries(spring.Units)); diff != "" {
		t.Errorf("spring units mismatch (-want +got):\n%s", diff)
	}

	wantSCs := []entry{
		{"AUS", []string{"BUD", "TRI", "VIE"}},
		{"ENG", []string{"EDI", "LON", "LVP"}},
		{"UNO", []string{"BEL"}},
	}
	if diff := cmp.Diff(wantSCs, entries(spring.SCs)); diff != "" {
		t.Errorf("spring scs mismatch (-want +got):\n%s", diff)
	}

	fall, _ := game.Phases.Get("FAL 1901")
	wantFallUnits := []entry{
		{"AUS", []string{"A SER", "F TRI"}},
		{"TUR", []string{"A BUL"}},
	}
	if diff := cmp.Diff(wantFallUnits, entries(fall.Units)); diff != "" {
		t.Errorf("fall units mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMessages(t *testing.T) {
	game := parseSample(t, sampleLog)

	spring, _ := game.Phases.Get("SPR 1901")
	want := []domain.Message{
		{Sender: "FRA", Recipient: "ENG", Message: "( PRP ( PCE ( ENG FRA ) ) )"},
		{Sender: "ENG", Recipient: "FRA GER", Message: "( YES ( PRP ( PCE ( ENG FRA ) ) ) )"},
	}
	if diff := cmp.Diff(want, spring.Messages); diff != "" {
		t.Errorf("spring messages mismatch (-want +got):\n%s", diff)
	}

	fall, _ := game.Phases.Get("FAL 1901")
	want = []domain.Message{
		{Sender: "AUS", Recipient: "TUR", Message: "( PRP ( ALY ( AUS TUR ) VSS ( RUS ) ) )"},
	}
	if diff := cmp.Diff(want, fall.Messages); diff != "" {
		t.Errorf("fall messages mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMovesStatusSummary(t *testing.T) {
	game := parseSample(t, sampleLog)

	wantMoves := []string{"ORD ( SPR 1901 ) ( ( AUS AMY BUD ) MTO SER ) ( SUC )"}
	if diff := cmp.Diff(wantMoves, game.Moves); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
	if game.Status != "DRW" {
		t.Errorf("expected status DRW, got %q", game.Status)
	}
	if game.Summary != "SMR ( FAL 1901 ) ( AUS ( 'Alice' ) ( 'v1' ) 5 )" {
		t.Errorf("unexpected summary %q", game.Summary)
	}
}

func TestParseRepeatedNowKeepsMessages(t *testing.T) {
	log := hello + `
ALL << NOW ( SPR 1901 ) ( AUS AMY VIE )
1 >> SND ( ITA ) ( PRP ( PCE ( AUS ITA ) ) )
ALL << NOW ( SPR 1901 ) ( AUS AMY VIE ) ( ITA AMY ROM )
`
	game := parseSample(t, log)

	if game.Phases.Len() != 1 {
		t.Fatalf("expected 1 phase, got %d", game.Phases.Len())
	}
	spring, _ := game.Phases.Get("SPR 1901")
	if len(spring.Messages) != 1 {
		t.Errorf("expected message to survive the repeated NOW, got %d", len(spring.Messages))
	}
	if spring.Units.Len() != 2 {
		t.Errorf("expected latest unit positions, got %d powers", spring.Units.Len())
	}
}

func TestParsePressBeforeFirstPhase(t *testing.T) {
	log := hello + `
1 >> SND ( ITA ) ( PRP ( PCE ( AUS ITA ) ) )
ALL << NOW ( SPR 1901 ) ( AUS AMY VIE )
`
	game := parseSample(t, log)

	spring, _ := game.Phases.Get("SPR 1901")
	if len(spring.Messages) != 1 {
		t.Errorf("expected early press in first phase, got %d messages", len(spring.Messages))
	}
}

func TestParseNoPhases(t *testing.T) {
	game := parseSample(t, hello)

	if game.Phases.Len() != 0 {
		t.Errorf("expected no phases, got %d", game.Phases.Len())
	}
	if game.Moves == nil {
		t.Error("expected empty, non-nil moves")
	}
}

const hello = `1 << HLO ( AUS ) ( 1 ) ( ( LVL 0 ) )
2 << HLO ( ENG ) ( 2 ) ( ( LVL 0 ) )
3 << HLO ( FRA ) ( 3 ) ( ( LVL 0 ) )
4 << HLO ( GER ) ( 4 ) ( ( LVL 0 ) )
5 << HLO ( ITA ) ( 5 ) ( ( LVL 0 ) )
6 << HLO ( RUS ) ( 6 ) ( ( LVL 0 ) )
7 << HLO ( TUR ) ( 7 ) ( ( LVL 0 ) )`

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		log  string
	}{
		{"no hello", "ALL << NOW ( SPR 1901 ) ( AUS AMY VIE )"},
		{"too few hello lines", "1 << HLO ( AUS ) ( 1 )\n2 << HLO ( ENG ) ( 2 )"},
		{"hello without power", strings.Replace(hello, "( TUR )", "( 7 )", 1)},
		{"missing direction", hello + "\nALL NOW ( SPR 1901 )"},
		{"unknown client", hello + "\n9 >> SND ( AUS ) ( PRP ( PCE ( AUS ENG ) ) )"},
		{"now without turn", hello + "\nALL << NOW ( AUS AMY VIE )"},
		{"invalid unit", hello + "\nALL << NOW ( SPR 1901 ) ( AUS AMY )"},
		{"unbalanced", hello + "\nALL << NOW ( SPR 1901 ) ( AUS AMY VIE"},
		{"press without recipients", hello + "\n1 >> SND ( PRP ( PCE ( AUS ENG ) ) )"},
		{"press with turn but no body", hello + "\n3 >> SND ( SPR 1901 ) ( ENG )"},
	}

	p := NewParser(defaultKeywords, 7)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(strings.Split(tt.log, "\n"))
			if !errors.Is(err, domain.ErrMalformedLog) {
				t.Errorf("expected ErrMalformedLog, got %v", err)
			}
		})
	}
}

func TestSplitDirection(t *testing.T) {
	tests := []struct {
		line     string
		msg      string
		toServer bool
	}{
		{"1 >> SUB ( ( AUS AMY VIE ) HLD )", "SUB ( ( AUS AMY VIE ) HLD )", true},
		{"ALL << NOW ( SPR 1901 )", "NOW ( SPR 1901 )", false},
		{"3 >> SND ( ENG ) ( TRY ( << ) )", "SND ( ENG ) ( TRY ( << ) )", true},
	}

	for _, tt := range tests {
		msg, toServer, err := splitDirection(tt.line)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.line, err)
		}
		if msg != tt.msg || toServer != tt.toServer {
			t.Errorf("%q: got (%q, %v), want (%q, %v)", tt.line, msg, toServer, tt.msg, tt.toServer)
		}
	}
}
