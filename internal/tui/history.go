package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wpmtest/internal/model"
	"github.com/verte-zerg/wpmtest/internal/stats"
)

func historyColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 16},
		{Title: "Mode", Width: 8},
		{Title: "Level", Width: 6},
		{Title: "Time", Width: 5},
		{Title: "WPM", Width: 4},
		{Title: "Raw", Width: 4},
		{Title: "Acc", Width: 5},
		{Title: "Cons", Width: 5},
		{Title: "Errors", Width: 6},
	}
}

func historyRows(results []model.TestResult) []table.Row {
	rows := make([]table.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, table.Row(stats.ResultRow(r)))
	}
	return rows
}

func newHistoryTable() table.Model {
	t := table.New(
		table.WithColumns(historyColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(historyTableStyles())
	return t
}

func historyTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) refreshHistory() {
	if m.book == nil {
		return
	}
	m.table.SetRows(historyRows(m.book.Results()))
	m.table.GotoTop()
}

func (m *Model) historyView() string {
	title := headerStyle.Render("History (newest first)")
	best := m.bestLine()
	if m.book == nil || len(m.book.Results()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", pendingStyle.Render("No tests yet."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, best, "", m.table.View())
}

func (m *Model) bestLine() string {
	if m.book == nil {
		return ""
	}
	pb := m.book.Best()
	if pb.Date == nil {
		return footerStyle.Render("Personal best: none yet")
	}
	return footerStyle.Render(fmt.Sprintf("Personal best: %d WPM · %d%% (%s)", pb.WPM, pb.Accuracy, pb.Date.Local().Format("2006-01-02")))
}
