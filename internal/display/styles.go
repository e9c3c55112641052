package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/adna/internal/card"
	"github.com/muesli/termenv"
)

// Theme holds the styles for one output. Styles are bound to a renderer so
// colour detection follows the writer they end up on.
type Theme struct {
	renderer *lipgloss.Renderer
	suits    map[card.Suit]lipgloss.Style

	Header  lipgloss.Style
	Seat    lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewTheme creates the styles for w. With color false every style renders
// plain text.
func NewTheme(w io.Writer, color bool) *Theme {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Theme{
		renderer: r,
		suits:    map[card.Suit]lipgloss.Style{
			card.Brown:  r.NewStyle().Foreground(lipgloss.Color("#A0522D")).Bold(true),
			card.Orange: r.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true),
			card.Pink:   r.NewStyle().Foreground(lipgloss.Color("#FF69B4")).Bold(true),
			card.Violet: r.NewStyle().Foreground(lipgloss.Color("#8A2BE2")).Bold(true),
		},
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		Seat:    r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Info:    r.NewStyle().Foreground(lipgloss.Color("#626262")),
		Success: r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
}

// Card renders c in its suit colour
func (t *Theme) Card(c card.Card) string {
	return t.suits[c.Suit].Render(c.String())
}

// Hand renders a hand numbered from 1, the way commands refer to cards
func (t *Theme) Hand(hand []card.Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = fmt.Sprintf("%d) %s", i+1, t.Card(c))
	}
	return strings.Join(parts, "  ")
}
