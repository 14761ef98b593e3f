package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lowkey/internal/model"
	"github.com/verte-zerg/lowkey/internal/scoring"
	"github.com/verte-zerg/lowkey/internal/session"
	"github.com/verte-zerg/lowkey/internal/stats"
)

func drain(ch chan session.KeyEvent) []session.KeyEvent {
	var out []session.KeyEvent
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestModelForwardsKeys(t *testing.T) {
	keys := make(chan session.KeyEvent, 16)
	m := NewModel(keys)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, []session.KeyEvent{
		session.Printable('h'),
		session.Printable('i'),
		session.Printable(' '),
		session.Backspace(),
		session.Enter(),
		session.Cancel(),
		session.Cancel(),
		{Kind: session.KeyOther},
	}, drain(keys))
}

func TestModelDropsKeysWhenFull(t *testing.T) {
	keys := make(chan session.KeyEvent, 1)
	m := NewModel(keys)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})
	assert.Len(t, drain(keys), 1)
}

func TestModelViewFrame(t *testing.T) {
	m := NewModel(nil)
	assert.Equal(t, "", m.View())

	m.Update(frameMsg(session.Frame{
		Header:  []string{"Raw Speed Test"},
		Target:  []rune("abcd"),
		Typed:   []rune("ab"),
		Correct: []bool{true, false},
		Live:    scoring.Breakdown{Correct: 1, Mistyped: 1, Accuracy: 50},
	}))
	out := m.View()
	assert.Contains(t, out, "Raw Speed Test")
	assert.Contains(t, out, "Progress 50%")
	assert.Contains(t, out, "Accuracy 50.0%")
	assert.Contains(t, out, "Errors 1")
}

func TestModelViewWaitingFrame(t *testing.T) {
	m := NewModel(nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m.Update(frameMsg(session.Frame{Target: []rune("go go"), Waiting: true}))
	out := m.View()
	assert.Contains(t, out, "Press any key to start")
	assert.NotContains(t, out, "Progress")
	assert.Len(t, strings.Split(out, "\n"), 20)
}

func TestModelPanelReplacesFrame(t *testing.T) {
	m := NewModel(nil)
	m.Update(frameMsg(session.Frame{Target: []rune("x")}))
	m.Update(panelMsg(session.Panel{
		Title:  "Round 1 Results",
		Lines:  []session.Line{{Text: "WPM: 42.00", Tone: session.ToneInfo}},
		Footer: "Press any key",
	}))
	out := m.View()
	assert.Contains(t, out, "Round 1 Results")
	assert.Contains(t, out, "WPM: 42.00")
	assert.NotContains(t, out, "Progress")
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("ada"))
	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("two words"))
	assert.Error(t, ValidateUsername(strings.Repeat("x", MaxUsernameLen+1)))
}

func TestPromptModelEnter(t *testing.T) {
	m := newPromptModel()
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotEmpty(t, m.errMsg)
	assert.Empty(t, m.value)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ada")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "ada", m.value)
	require.NotNil(t, cmd)
}

func TestPromptModelEsc(t *testing.T) {
	m := newPromptModel()
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.cancelled)
}

func TestLeaderboardTableMarksUser(t *testing.T) {
	standings := stats.Leaderboard([]model.Profile{
		{Name: "ada", BestWPM: 90},
		{Name: "bob", BestWPM: 50},
	}, "bob", stats.LeaderboardSize)
	out := LeaderboardTable(standings)
	assert.Contains(t, out, "Username")
	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "bob")
	assert.NotContains(t, out, "(You)")

	var many []model.Profile
	for i := 0; i < 6; i++ {
		many = append(many, model.Profile{Name: fmt.Sprintf("u%d", i), BestWPM: float64(100 - i)})
	}
	out = LeaderboardTable(stats.Leaderboard(many, "u5", stats.LeaderboardSize))
	assert.Contains(t, out, "u5 (You)")
}

func TestPanels(t *testing.T) {
	p := ProfilePanel(model.Profile{Name: "ada", BestWPM: 100, BestAccuracy: 90, AverageAccuracy: 80})
	assert.Equal(t, "Profile: ada", p.Title)
	last := p.Lines[len(p.Lines)-1]
	assert.Equal(t, "Skill assessment: Intermediate (68.0)", last.Text)

	empty := LeaderboardPanel(nil)
	assert.Equal(t, "No users found.", empty.Lines[0].Text)

	e := ErrorPanel("Raw Speed Test", errors.New("no words available"))
	assert.Equal(t, session.ToneBad, e.Lines[0].Tone)
}
