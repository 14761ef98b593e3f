package tui

import (
	"fmt"

	"github.com/verte-zerg/lowkey/internal/model"
	"github.com/verte-zerg/lowkey/internal/session"
	"github.com/verte-zerg/lowkey/internal/stats"
)

// MenuPanel is the main menu for user.
func MenuPanel(user string, notice *session.Line) session.Panel {
	lines := []session.Line{
		{Text: fmt.Sprintf("Logged in as %s", user), Tone: session.ToneInfo},
		{},
		{Text: "1. Endurance Mode"},
		{Text: "2. Raw Speed Test"},
		{Text: "3. Leaderboard"},
		{Text: "4. Profile"},
		{Text: "5. Exit"},
	}
	if notice != nil {
		lines = append(lines, session.Line{}, *notice)
	}
	return session.Panel{
		Title:  "Main Menu",
		Lines:  lines,
		Footer: "Press 1-5 to choose · Esc to exit",
	}
}

// DifficultyPanel asks which word tier a speed test should use.
func DifficultyPanel(words int) session.Panel {
	return session.Panel{
		Title: "Raw Speed Test",
		Lines: []session.Line{
			{Text: fmt.Sprintf("%d words", words), Tone: session.ToneInfo},
			{},
			{Text: "1. LIGHT"},
			{Text: "2. MEDIUM"},
			{Text: "3. HARD"},
		},
		Footer: "Press 1-3 to choose · Esc to go back",
	}
}

// ProfilePanel shows the stored stats of p and its skill assessment.
func ProfilePanel(p model.Profile) session.Panel {
	rating := stats.SkillRating(p)
	level := stats.AssessSkill(rating)
	tone := session.ToneNormal
	switch level {
	case stats.Expert:
		tone = session.ToneGood
	case stats.Advanced:
		tone = session.ToneInfo
	case stats.Intermediate:
		tone = session.ToneWarn
	}
	return session.Panel{
		Title: "Profile: " + p.Name,
		Lines: []session.Line{
			{Text: fmt.Sprintf("Tests completed: %d", p.TestsCompleted)},
			{Text: fmt.Sprintf("Best WPM: %.2f", p.BestWPM)},
			{Text: fmt.Sprintf("Best accuracy: %.2f%%", p.BestAccuracy)},
			{Text: fmt.Sprintf("Average accuracy: %.2f%%", p.AverageAccuracy)},
			{Text: fmt.Sprintf("Endurance high score: %d words", p.EnduranceHighScore)},
			{},
			{Text: fmt.Sprintf("Skill assessment: %s (%.1f)", level, rating), Tone: tone},
		},
		Footer: "Press any key to return to menu...",
	}
}

// ErrorPanel reports a failed action without leaving the menu.
func ErrorPanel(title string, err error) session.Panel {
	return session.Panel{
		Title:  title,
		Lines:  []session.Line{{Text: err.Error(), Tone: session.ToneBad}},
		Footer: "Press any key to return to menu...",
	}
}
