package tui

import "github.com/lox/adna/internal/game"

// Bridge forwards engine events to the running program
type Bridge struct {
	sender Sender
}

// NewBridge creates a bridge that sends events through sender
func NewBridge(sender Sender) *Bridge {
	return &Bridge{sender: sender}
}

// OnEvent implements game.EventSubscriber
func (b *Bridge) OnEvent(event game.GameEvent) {
	b.sender.Send(EventMsg{Event: event})
}
