// Package tui is the full-screen terminal table: a scrolling event log, a
// sidebar with the table state and an input line for interactive seats.
// The model runs inside a bubbletea program while the engine runs on its
// own goroutine; the two talk through messages and the action channel.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/adna/internal/display"
	"github.com/lox/adna/internal/game"
)

// Options configure a TUIModel
type Options struct {
	Output        io.Writer // Used for colour detection; defaults to stdout
	Color         bool
	ShowReasoning bool
	TestMode      bool // Capture log lines instead of rendering them
}

// TUIModel is the bubbletea model for a game in progress
type TUIModel struct {
	logger    *log.Logger
	theme     *display.Theme
	formatter *display.EventFormatter

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog      []string
	actionResult chan ActionResult
	done         chan struct{}
	quitting     bool
	focusedPane  int // 0 = log, 1 = input

	// Table state, updated from events
	snapshot    game.Snapshot
	hasSnapshot bool
	prompt      *PromptMsg
	lastError   string
	finished    bool

	// Dimensions
	width       int
	height      int
	initialized bool

	testMode    bool
	capturedLog []string
}

// ActionResult is one submitted line of input
type ActionResult struct {
	Input    string
	Continue bool // False once the player has quit
}

// EventMsg delivers a rule event to the model
type EventMsg struct {
	Event game.GameEvent
}

// PromptMsg asks the player at Seat for a command
type PromptMsg struct {
	Seat  int
	Name  string
	State game.VisibleState
}

// RejectMsg reports a command that could not be used
type RejectMsg struct {
	Err error
}

// LogMsg appends plain lines to the game log
type LogMsg struct {
	Lines []string
}

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

// NewTUIModel creates the model
func NewTUIModel(logger *log.Logger, opts Options) *TUIModel {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	theme := display.NewTheme(out, opts.Color)

	// Sized properly when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Card number, adna n, d to draw, h for help"
	ti.Focus()
	ti.CharLimit = 20
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(focusedBorder).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &TUIModel{
		logger:       logger.WithPrefix("tui"),
		theme:        theme,
		formatter:    display.NewEventFormatter(theme, display.FormattingOptions{ShowReasoning: opts.ShowReasoning}),
		logViewport:  vp,
		actionInput:  ti,
		actionResult: make(chan ActionResult, 1),
		done:         make(chan struct{}),
		focusedPane:  1,
		testMode:     opts.TestMode,
	}
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quit()
		return m, tea.Quit

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case PromptMsg:
		m.prompt = &msg
		m.focusedPane = 1
		m.actionInput.Focus()
		return m, nil

	case LogMsg:
		for _, line := range msg.Lines {
			m.AddLogEntry(line)
		}
		return m, nil

	case RejectMsg:
		m.lastError = Explain(msg.Err)
		m.AddLogEntry(ErrorStyle.Render(m.lastError))
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quit()
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				input := strings.TrimSpace(m.actionInput.Value())
				m.actionInput.SetValue("")
				if m.finished {
					m.quit()
					return m, tea.Quit
				}
				m.submit(input)
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *TUIModel) handleEvent(event game.GameEvent) {
	m.snapshot = event.State()
	m.hasSnapshot = true
	for _, line := range m.formatter.Format(event) {
		m.AddLogEntry(line)
	}

	if end, ok := event.(game.GameEndEvent); ok {
		m.finished = true
		m.prompt = nil
		m.logger.Info("Game finished", "reason", end.Result.Reason, "winner", end.Result.WinnerName)
		m.AddLogEntry(InfoStyle.Render("Press Enter to exit"))
	}
}

// submit hands a line of input to the waiting agent. Input typed while no
// seat is being prompted is dropped.
func (m *TUIModel) submit(input string) {
	if m.prompt == nil {
		return
	}
	m.prompt = nil
	m.lastError = ""
	m.actionResult <- ActionResult{Input: input, Continue: true}
}

func (m *TUIModel) quit() {
	if m.quitting {
		return
	}
	m.quitting = true
	close(m.done)
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderFor(1)).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(mutedBorder).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderFor(0)).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *TUIModel) borderFor(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return focusedBorder
	}
	return mutedBorder
}

// renderSidebarPane shows the public table state
func (m *TUIModel) renderSidebarPane() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" Adná "))
	b.WriteString("\n\n")
	if !m.hasSnapshot {
		return b.String()
	}

	s := m.snapshot
	fmt.Fprintf(&b, "Top: %s\n", m.theme.Card(s.Top))
	fmt.Fprintf(&b, "Draw pile: %d\n", s.DrawPileSize)
	fmt.Fprintf(&b, "Direction: %s\n", s.Direction)
	if s.Pending.Active() {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Pending: %d cards", s.Pending.Count)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, seat := range s.Seats {
		marker := "  "
		if seat.Seat == s.ActiveSeat && !s.Done {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s: %d", marker, seat.Name, seat.HandSize())
		if seat.DeclaredLow {
			line += " Adná!"
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderActionPane renders the hand of the prompted seat and the input line
func (m *TUIModel) renderActionPane() string {
	var b strings.Builder

	switch {
	case m.prompt != nil:
		b.WriteString(HandInfoStyle.Render(fmt.Sprintf("%s, your turn", m.prompt.Name)))
		b.WriteString("\n")
		b.WriteString(m.theme.Hand(m.prompt.State.Hand))
		b.WriteString("\n")
		if m.prompt.State.Pending.Active() {
			b.WriteString(ActionsStyle.Render(fmt.Sprintf("Stack a %s or take %d cards", m.prompt.State.Pending.Rank, m.prompt.State.Pending.Count)))
			b.WriteString("\n")
		}
	case m.finished:
		b.WriteString(HandInfoStyle.Render("Game over"))
		b.WriteString("\n")
	default:
		b.WriteString(HandInfoStyle.Render("Waiting..."))
		b.WriteString("\n")
	}

	if m.lastError != "" {
		b.WriteString(ErrorStyle.Render(m.lastError))
		b.WriteString("\n")
	}

	b.WriteString(m.actionInput.View())
	b.WriteString("\n")
	if m.focusedPane == 0 {
		b.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Tab to input"))
	} else {
		b.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return b.String()
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// WaitForAction blocks until the player submits a line or quits
func (m *TUIModel) WaitForAction() ActionResult {
	select {
	case result := <-m.actionResult:
		return result
	case <-m.done:
		return ActionResult{Continue: false}
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}
