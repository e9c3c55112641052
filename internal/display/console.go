// Package display renders rule events and table snapshots for people. It
// only reads snapshots; it never touches engine state.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/adna/internal/game"
)

// Options configure a Console
type Options struct {
	Color         bool
	ShowReasoning bool
	// Humans marks the seats whose hands are shown on their own turn
	Humans [game.NumSeats]bool
}

// Console is an EventSubscriber that prints a running commentary of the
// game to a writer
type Console struct {
	out       io.Writer
	theme     *Theme
	formatter *EventFormatter
	humans    [game.NumSeats]bool
}

// NewConsole creates a console writing to out
func NewConsole(out io.Writer, opts Options) *Console {
	theme := NewTheme(out, opts.Color)
	return &Console{
		out:       out,
		theme:     theme,
		formatter: NewEventFormatter(theme, FormattingOptions{ShowReasoning: opts.ShowReasoning}),
		humans:    opts.Humans,
	}
}

// Theme returns the styles the console renders with
func (c *Console) Theme() *Theme {
	return c.theme
}

// OnEvent implements game.EventSubscriber
func (c *Console) OnEvent(event game.GameEvent) {
	for _, line := range c.formatter.Format(event) {
		fmt.Fprintln(c.out, line)
	}
	if ts, ok := event.(game.TurnStartEvent); ok {
		fmt.Fprint(c.out, c.Table(ts.State(), ts.Seat))
	}
}

// Table renders the table as seen by the seat about to act: the top card,
// the draw pile, the pending penalty, every seat's hand size and the hand
// of the acting seat when it is human
func (c *Console) Table(s game.Snapshot, acting int) string {
	return RenderTable(c.theme, s, acting, c.humans)
}

// RenderTable is the table view shared by the console and the terminal UI
func RenderTable(t *Theme, s game.Snapshot, acting int, humans [game.NumSeats]bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Top: %s   Draw pile: %d   Direction: %s\n", t.Card(s.Top), s.DrawPileSize, s.Direction)
	if s.Pending.Active() {
		fmt.Fprintln(&b, t.Error.Render(fmt.Sprintf("Pending penalty: %d cards (%s)", s.Pending.Count, s.Pending.Rank)))
	}

	for _, seat := range s.Seats {
		marker := "  "
		if seat.Seat == acting {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s: %s", marker, t.Seat.Render(seat.Name), plural(seat.HandSize(), "card"))
		if seat.DeclaredLow {
			line += " " + t.Warning.Render("Adná!")
		}
		fmt.Fprintln(&b, line)
	}

	if acting >= 0 && acting < game.NumSeats && humans[acting] {
		fmt.Fprintf(&b, "Your hand: %s\n", t.Hand(s.Seats[acting].Hand))
	}
	return b.String()
}
