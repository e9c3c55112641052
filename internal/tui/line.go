package tui

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/adna/internal/display"
	"github.com/lox/adna/internal/game"
)

// LineAgent is the interactive seat for plain terminals and piped input.
// It reads one command per line and leaves the table view to a
// display.Console printing to the same output.
type LineAgent struct {
	name   string
	in     *bufio.Scanner
	out    io.Writer
	theme  *display.Theme
	logger *log.Logger
}

// NewLineAgent creates a line-mode agent for the seat called name. Seats
// sharing a terminal must share one scanner, since a scanner buffers ahead.
func NewLineAgent(name string, in *bufio.Scanner, out io.Writer, theme *display.Theme, logger *log.Logger) *LineAgent {
	return &LineAgent{
		name:   name,
		in:     in,
		out:    out,
		theme:  theme,
		logger: logger.WithPrefix("ui"),
	}
}

// RequestDecision implements game.Agent
func (a *LineAgent) RequestDecision(_ int, state game.VisibleState) (game.Decision, error) {
	for {
		fmt.Fprintf(a.out, "%s [1-%d, adna n, d, q] > ", a.name, len(state.Hand))
		if !a.in.Scan() {
			if err := a.in.Err(); err != nil {
				return game.Decision{}, fmt.Errorf("read command: %w", err)
			}
			a.logger.Info("Input closed", "seat", a.name)
			return game.Decision{}, game.ErrPlayerQuit
		}

		cmd, err := ParseCommand(a.in.Text())
		if err != nil {
			fmt.Fprintln(a.out, a.theme.Error.Render(Explain(err)))
			continue
		}
		if cmd.Kind == CommandHelp {
			fmt.Fprintln(a.out, HelpText)
			fmt.Fprintf(a.out, "Your hand: %s\n", a.theme.Hand(state.Hand))
			continue
		}
		return cmd.Decision()
	}
}

// Reject implements game.Rejecter
func (a *LineAgent) Reject(err error) {
	fmt.Fprintln(a.out, a.theme.Error.Render(Explain(err)))
}
