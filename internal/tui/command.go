package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/adna/internal/game"
)

// CommandKind is what a typed command asks for
type CommandKind int

const (
	CommandPlay CommandKind = iota
	CommandDraw
	CommandQuit
	CommandHelp
)

// Command is a parsed line of player input
type Command struct {
	Kind    CommandKind
	Index   int  // Zero-based hand index for CommandPlay
	Declare bool // Say Adná while playing
}

var (
	ErrEmptyCommand   = errors.New("no command entered")
	ErrUnknownCommand = errors.New("unknown command")
)

// HelpText lists the commands an interactive seat understands
const HelpText = `Commands:
  n         play card n (cards are numbered from 1)
  adna n    play card n and say Adná (also: n!)
  d         draw
  q         quit
  h         show this help`

// ParseCommand reads one line of input. Card numbers are 1-based on input
// and 0-based in the returned Command.
func ParseCommand(input string) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}

	switch fields[0] {
	case "d", "draw":
		return Command{Kind: CommandDraw}, nil
	case "q", "quit", "exit":
		return Command{Kind: CommandQuit}, nil
	case "h", "help", "?":
		return Command{Kind: CommandHelp}, nil
	case "adna", "adná":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("%q needs a card number: %w", fields[0], ErrUnknownCommand)
		}
		i, err := parseIndex(fields[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandPlay, Index: i, Declare: true}, nil
	}

	if len(fields) != 1 {
		return Command{}, fmt.Errorf("%q: %w", input, ErrUnknownCommand)
	}
	word, declare := strings.CutSuffix(fields[0], "!")
	i, err := parseIndex(word)
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: CommandPlay, Index: i, Declare: declare}, nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q is not a card number: %w", s, ErrUnknownCommand)
	}
	return n - 1, nil
}

// Decision converts the command into an engine decision. Quitting is
// reported as game.ErrPlayerQuit.
func (c Command) Decision() (game.Decision, error) {
	switch c.Kind {
	case CommandPlay:
		if c.Declare {
			return game.PlayAndDeclare(c.Index, "declared by player"), nil
		}
		return game.Play(c.Index, "chosen by player"), nil
	case CommandDraw:
		return game.Draw("chosen by player"), nil
	case CommandQuit:
		return game.Decision{}, game.ErrPlayerQuit
	default:
		return game.Decision{}, fmt.Errorf("command %d: %w", c.Kind, ErrUnknownCommand)
	}
}

// Explain turns an input or rejection error into a message for the player
func Explain(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidDecisionIndex):
		return "You have no card with that number."
	case errors.Is(err, game.ErrCannotDeclareLow):
		return "You can only say Adná when playing from exactly 2 cards."
	case errors.Is(err, ErrEmptyCommand):
		return "Type a card number, d to draw or h for help."
	case errors.Is(err, ErrUnknownCommand):
		return "Unknown command, type h for help."
	default:
		return err.Error()
	}
}
