package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/adna/internal/game"
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// TUIAgent is the interactive seat of a full-screen game. It prompts
// through the model and blocks until the player answers.
type TUIAgent struct {
	name   string
	model  *TUIModel
	sender Sender
	logger *log.Logger
}

// NewTUIAgent creates the agent for the seat called name
func NewTUIAgent(name string, model *TUIModel, sender Sender, logger *log.Logger) *TUIAgent {
	return &TUIAgent{
		name:   name,
		model:  model,
		sender: sender,
		logger: logger.WithPrefix("ui"),
	}
}

// RequestDecision implements game.Agent
func (a *TUIAgent) RequestDecision(seat int, state game.VisibleState) (game.Decision, error) {
	for {
		a.sender.Send(PromptMsg{Seat: seat, Name: a.name, State: state})
		a.logger.Debug("Waiting for user action", "seat", a.name)

		result := a.model.WaitForAction()
		if !result.Continue {
			a.logger.Info("User chose to quit", "seat", a.name)
			return game.Decision{}, game.ErrPlayerQuit
		}

		cmd, err := ParseCommand(result.Input)
		if err != nil {
			a.sender.Send(RejectMsg{Err: err})
			continue
		}
		if cmd.Kind == CommandHelp {
			a.sender.Send(LogMsg{Lines: []string{HelpText}})
			continue
		}

		a.logger.Debug("Received user action", "seat", a.name, "input", result.Input)
		return cmd.Decision()
	}
}

// Reject implements game.Rejecter; the seat is prompted again right after
func (a *TUIAgent) Reject(err error) {
	a.logger.Debug("Decision rejected", "seat", a.name, "error", err)
	a.sender.Send(RejectMsg{Err: err})
}
