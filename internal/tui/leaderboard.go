package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/lowkey/internal/session"
	"github.com/verte-zerg/lowkey/internal/stats"
)

// LeaderboardTable renders standings with the current user's row highlighted.
func LeaderboardTable(standings []stats.Standing) string {
	headers, cells := stats.LeaderboardRows(standings)
	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		width := runewidth.StringWidth(h)
		for _, row := range cells {
			if w := runewidth.StringWidth(row[i]); w > width {
				width = w
			}
		}
		columns[i] = table.Column{Title: h, Width: width}
	}
	rows := make([]table.Row, len(cells))
	you := -1
	for i, row := range cells {
		rows[i] = table.Row(row)
		if standings[i].You {
			you = i
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	t.SetStyles(leaderboardStyles(you >= 0))
	if you >= 0 {
		t.SetCursor(you)
	}
	return t.View()
}

func leaderboardStyles(highlight bool) table.Styles {
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
	styles.Selected = styles.Cell
	if highlight {
		styles.Selected = styles.Cell.
			Foreground(lipgloss.Color("#C89A3A")).
			Bold(true)
	}
	return styles
}

// LeaderboardPanel builds the leaderboard screen.
func LeaderboardPanel(standings []stats.Standing) session.Panel {
	p := session.Panel{
		Title:  "Leaderboard",
		Footer: "Press any key to return to menu...",
	}
	if len(standings) == 0 {
		p.Lines = []session.Line{{Text: "No users found."}}
		return p
	}
	p.Lines = []session.Line{{Text: LeaderboardTable(standings)}}
	return p
}
