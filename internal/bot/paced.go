package bot

import (
	"time"

	"github.com/coder/quartz"
	"github.com/lox/adna/internal/game"
)

// Paced delays every decision of the wrapped agent so a person watching the
// table can follow automated turns
type Paced struct {
	agent game.Agent
	clock quartz.Clock
	delay time.Duration
}

// NewPaced wraps agent. A nil clock means the real clock.
func NewPaced(agent game.Agent, clock quartz.Clock, delay time.Duration) *Paced {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Paced{agent: agent, clock: clock, delay: delay}
}

func (p *Paced) RequestDecision(seat int, s game.VisibleState) (game.Decision, error) {
	if p.delay > 0 {
		elapsed := make(chan struct{})
		timer := p.clock.AfterFunc(p.delay, func() { close(elapsed) })
		defer timer.Stop()
		<-elapsed
	}
	return p.agent.RequestDecision(seat, s)
}
