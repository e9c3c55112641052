package display

import (
	"fmt"

	"github.com/lox/adna/internal/game"
)

// FormattingOptions controls how events are turned into text
type FormattingOptions struct {
	ShowReasoning bool // Include the policy's explanation after each move
}

// EventFormatter turns rule events into the announcements shown to players
type EventFormatter struct {
	theme *Theme
	opts  FormattingOptions
}

// NewEventFormatter creates a formatter that renders with theme
func NewEventFormatter(theme *Theme, opts FormattingOptions) *EventFormatter {
	return &EventFormatter{theme: theme, opts: opts}
}

// Format returns the announcement lines for event. Events with nothing to
// announce return nil.
func (f *EventFormatter) Format(event game.GameEvent) []string {
	s := event.State()
	name := func(seat int) string { return f.theme.Seat.Render(s.Seats[seat].Name) }

	switch e := event.(type) {
	case game.GameStartEvent:
		return []string{
			f.theme.Header.Render(" Adná "),
			fmt.Sprintf("Game started with seed %d. Top of the pile: %s", e.Seed, f.theme.Card(s.Top)),
		}

	case game.TurnStartEvent:
		return []string{f.theme.Info.Render(fmt.Sprintf("--- Turn %d: %s ---", s.Turn, s.Seats[e.Seat].Name))}

	case game.CardPlayedEvent:
		lines := []string{f.withReasoning(fmt.Sprintf("%s plays %s", name(e.Seat), f.theme.Card(e.Card)), e.Reasoning)}
		if e.DeclaredLow {
			lines = append(lines, f.theme.Warning.Render(fmt.Sprintf("%s says Adná!", s.Seats[e.Seat].Name)))
		}
		return lines

	case game.CardsDrawnEvent:
		return f.formatDraw(e, name(e.Seat))

	case game.DirectionChangedEvent:
		return []string{f.theme.Warning.Render(fmt.Sprintf("Direction reversed, play now goes %s", e.Direction))}

	case game.SeatSkippedEvent:
		return []string{f.theme.Warning.Render(fmt.Sprintf("%s is skipped", s.Seats[e.Seat].Name))}

	case game.PenaltyStackedEvent:
		return []string{f.theme.Error.Render(fmt.Sprintf("Penalty stacked: the next seat owes %d cards", e.Pending.Count))}

	case game.ReshuffleEvent:
		return []string{f.theme.Info.Render(fmt.Sprintf("Discard pile reshuffled into the deck (%d cards)", e.Recycled))}

	case game.GameEndEvent:
		return []string{f.FormatResult(e.Result)}
	}
	return nil
}

func (f *EventFormatter) formatDraw(e game.CardsDrawnEvent, who string) []string {
	var text string
	switch e.Reason {
	case game.DrawReasonStackPenalty:
		text = fmt.Sprintf("%s takes the stacked penalty of %d cards", who, e.Requested)
	case game.DrawReasonLowHand:
		text = fmt.Sprintf("%s did not say Adná and draws %d", who, e.Requested)
	case game.DrawReasonNoCall:
		text = fmt.Sprintf("%s went out without saying Adná and draws %d", who, e.Requested)
	case game.DrawReasonIllegalPlay:
		text = fmt.Sprintf("%s tried an illegal card and draws %d", who, e.Requested)
	default:
		text = fmt.Sprintf("%s draws %s", who, plural(e.Requested, "card"))
	}

	lines := []string{f.withReasoning(text, e.Reasoning)}
	if len(e.Drawn) < e.Requested {
		lines = append(lines, f.theme.Error.Render("The deck ran out"))
	}
	return lines
}

// FormatResult describes how a game ended
func (f *EventFormatter) FormatResult(r game.Result) string {
	switch r.Reason {
	case game.ReasonWinner:
		return f.theme.Success.Render(fmt.Sprintf("%s wins after %d turns!", r.WinnerName, r.Turns))
	case game.ReasonTurnLimit:
		return f.theme.Error.Render(fmt.Sprintf("No winner: stopped after %d turns", r.Turns))
	default:
		return f.theme.Error.Render("No winner: there are no cards left to draw")
	}
}

func (f *EventFormatter) withReasoning(text, reasoning string) string {
	if !f.opts.ShowReasoning || reasoning == "" {
		return text
	}
	return text + " " + f.theme.Info.Render("("+reasoning+")")
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
