// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wpmtest/internal/corpus"
	"github.com/verte-zerg/wpmtest/internal/history"
	"github.com/verte-zerg/wpmtest/internal/model"
	"github.com/verte-zerg/wpmtest/internal/session"
)

const (
	contentRatio = 0.70
	minTextLines = 3
)

// CorpusMsg delivers a reloaded corpus to the running program.
type CorpusMsg struct {
	Corpus corpus.Corpus
}

type tickMsg struct {
	id int
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	ctrl *session.Controller
	book *history.Book

	input textinput.Model
	keys  keyMap
	help  help.Model
	table table.Model

	showHistory bool
	// tickID is the timer id the pending tick chain belongs to.
	tickID int

	width  int
	height int
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	clockStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	doneStyle        = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F0F0F0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A"))
)

// NewModel constructs a typing TUI model. book may be nil.
func NewModel(ctrl *session.Controller, book *history.Book) *Model {
	m := &Model{
		ctrl:   ctrl,
		book:   book,
		input:  newTypingInput(),
		keys:   defaultKeyMap(),
		help:   help.New(),
		table:  newHistoryTable(),
		tickID: -1,
	}
	m.refreshHistory()
	return m
}

func newTypingInput() textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 0
	// Input is only ever appended to or deleted from the end.
	for _, b := range []*key.Binding{
		&input.KeyMap.CharacterForward,
		&input.KeyMap.CharacterBackward,
		&input.KeyMap.WordForward,
		&input.KeyMap.WordBackward,
		&input.KeyMap.LineStart,
		&input.KeyMap.LineEnd,
		&input.KeyMap.AcceptSuggestion,
		&input.KeyMap.NextSuggestion,
		&input.KeyMap.PrevSuggestion,
	} {
		b.SetEnabled(false)
	}
	input.Focus()
	return input
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(1, msg.Height-6))
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case CorpusMsg:
		m.ctrl.SetCorpus(msg.Corpus)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if !m.ctrl.Tick(msg.id) {
		m.afterTransition()
		return nil
	}
	return tick(msg.id)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case msg.Type == tea.KeyTab:
		return nil
	case key.Matches(msg, m.keys.History):
		m.showHistory = !m.showHistory
		if m.showHistory {
			m.refreshHistory()
		}
		return nil
	}
	if m.showHistory {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
	case key.Matches(msg, m.keys.Next):
		m.ctrl.NextText()
	case key.Matches(msg, m.keys.Pause):
		m.ctrl.ToggleTimer()
	case key.Matches(msg, m.keys.Mode):
		m.ctrl.SetMode(nextMode(m.ctrl.Config().Mode))
	case key.Matches(msg, m.keys.Difficulty):
		m.ctrl.SetDifficulty(nextDifficulty(m.ctrl.Config().Difficulty))
	case key.Matches(msg, m.keys.Time):
		m.ctrl.SetTimeLimit(nextTimeLimit(m.ctrl.Config().TimeLimit))
	default:
		return m.handleInput(msg)
	}
	m.afterTransition()
	return m.scheduleTick()
}

func (m *Model) handleInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	before := m.ctrl.Snapshot()
	if value := m.input.Value(); value != before.Typed {
		m.ctrl.Input(value)
	}
	m.afterTransition()
	return tea.Batch(cmd, m.scheduleTick())
}

// afterTransition keeps the input widget in line with the session, which may
// have rejected or reset the value.
func (m *Model) afterTransition() {
	s := m.ctrl.Snapshot()
	if m.input.Value() != s.Typed {
		m.input.SetValue(s.Typed)
	}
	if s.Completed {
		m.refreshHistory()
	}
}

// scheduleTick starts a tick chain for a newly started timer. Ticks of older
// timer runs are rejected by the controller and end their chain.
func (m *Model) scheduleTick() tea.Cmd {
	s := m.ctrl.Snapshot()
	if !s.TimerActive || s.TimerID == m.tickID {
		return nil
	}
	m.tickID = s.TimerID
	return tick(s.TimerID)
}

func tick(id int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

func nextMode(m model.Mode) model.Mode {
	if m == model.ModeSentence {
		return model.ModeWords
	}
	return model.ModeSentence
}

func nextDifficulty(d model.Difficulty) model.Difficulty {
	return (d + 1) % (model.DifficultyHard + 1)
}

func nextTimeLimit(current int) int {
	for i, limit := range model.TimeLimits {
		if limit == current {
			return model.TimeLimits[(i+1)%len(model.TimeLimits)]
		}
	}
	return model.TimeLimits[0]
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if m.showHistory {
		body = m.historyView()
	} else {
		body = m.typingView()
	}
	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.width == 0 || m.height == 0 {
		return body + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	bodyHeight := m.height - 1
	content := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return content + "\n" + footerLine
}

func (m *Model) typingView() string {
	s := m.ctrl.Snapshot()
	contentWidth := 0
	if m.width > 0 {
		contentWidth = max(1, int(float64(m.width)*contentRatio))
	}

	parts := []string{m.renderHeader(s), "", m.renderText(s, contentWidth), "", m.renderStats(s)}
	if s.Completed {
		parts = append(parts, "", m.renderDone(s))
	}
	view := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if contentWidth > 0 {
		return lipgloss.NewStyle().Width(contentWidth).Render(view)
	}
	return view
}

func (m *Model) renderHeader(s session.Snapshot) string {
	state := "ready"
	switch {
	case s.Completed:
		state = "done"
	case s.TimerActive:
		state = "running"
	case !s.StartedAt.IsZero():
		state = "paused"
	}
	settings := headerStyle.Render(fmt.Sprintf("%s · %s · %ds · %s", s.Mode, s.Difficulty, s.TimeLimit, state))
	return clockStyle.Render(formatClock(s.Remaining)) + "  " + settings
}

func (m *Model) renderText(s session.Snapshot, width int) string {
	target := []rune(s.Target)
	if len(target) == 0 {
		return pendingStyle.Render("No text available.")
	}
	typed := []rune(s.Typed)
	cursorIndex := -1
	if len(typed) < len(target) && !s.Completed {
		cursorIndex = len(typed)
	}
	styled := buildStyledRunes(target, typed, cursorIndex)
	if width <= 0 {
		return renderStyledRunes(styled)
	}
	lines := wrapLines(styled, width)
	if s.Mode == model.ModeWords {
		lines = visibleLines(lines, lineOf(lines, len(typed)), m.textLineLimit())
	}
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = renderStyledRunes(line)
	}
	return strings.Join(rendered, "\n")
}

func (m *Model) textLineLimit() int {
	if m.height <= 0 {
		return minTextLines
	}
	return max(minTextLines, min(5, m.height-10))
}

func (m *Model) renderStats(s session.Snapshot) string {
	mt := s.Metrics
	segments := []string{
		fmt.Sprintf("WPM %d", mt.NetWPM),
		fmt.Sprintf("Raw %d", mt.GrossWPM),
		fmt.Sprintf("Acc %d%%", mt.Accuracy),
		fmt.Sprintf("Cons %d%%", mt.Consistency),
		fmt.Sprintf("Errors %d", s.Errors),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderDone(s session.Snapshot) string {
	lines := []string{"Test complete!"}
	if r := s.Result; r != nil {
		lines = append(lines, fmt.Sprintf("%d WPM · %d%% accuracy · %d words in %ds", r.NetWPM, r.Accuracy, r.WordCount, r.Elapsed))
	}
	if s.NewBest {
		lines = append(lines, "New personal best!")
	}
	lines = append(lines, "ctrl+r to retry, ctrl+n for new text")
	return doneStyle.Render(strings.Join(lines, "\n"))
}

func formatClock(seconds int) string {
	seconds = max(0, seconds)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
