package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/adna/internal/game"
	"github.com/lox/adna/internal/statistics"
)

// Summary renders the results of a simulated batch: a table of wins per
// seat followed by game length and rule activity
func Summary(t *Theme, stats *statistics.Statistics, policies [game.NumSeats]string) string {
	var b strings.Builder

	b.WriteString(t.Header.Render(fmt.Sprintf(" %d games ", stats.Games)))
	b.WriteString("\n\n")

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.Info).
		Headers("Seat", "Policy", "Wins", "Win rate", "Mean turns").
		StyleFunc(func(row, col int) lipgloss.Style {
			style := t.renderer.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Inherit(t.Seat)
			}
			return style
		})

	for seat := range game.NumSeats {
		tbl.Row(
			game.SeatName(seat),
			policies[seat],
			fmt.Sprintf("%d", stats.Seats[seat].Wins),
			fmt.Sprintf("%.1f%%", stats.WinRate(seat)*100),
			fmt.Sprintf("%.1f", stats.SeatMean(seat)),
		)
	}
	tbl.Row("-", "no winner", fmt.Sprintf("%d", stats.NoWinner()),
		fmt.Sprintf("%.1f%%", float64(stats.NoWinner())/float64(max(stats.Games, 1))*100), "")

	b.WriteString(tbl.String())
	b.WriteString("\n\n")

	low, high := stats.ConfidenceInterval95()
	fmt.Fprintf(&b, "Game length: mean %.1f turns (95%% CI %.1f to %.1f), median %.0f, shortest %d, longest %d\n",
		stats.Mean(), low, high, stats.Median(), stats.Shortest, stats.Longest)
	fmt.Fprintf(&b, "Ended without a winner: %d out of cards, %d at the turn cap\n",
		stats.DeckExhausted, stats.TurnLimit)
	fmt.Fprintf(&b, "Reshuffles: %d  Stacks served: %d  Low hand penalties: %d  Illegal plays: %d\n",
		stats.Reshuffles, stats.StacksServed, stats.LowHandPenalties, stats.IllegalPlays)

	return b.String()
}
