// Package tui draws practice sessions and panels with Bubble Tea and feeds
// key presses back to the blocking session loop.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lowkey/internal/session"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))

	toneStyles = map[session.Tone]lipgloss.Style{
		session.ToneNormal: lipgloss.NewStyle().Foreground(lipgloss.Color("#D0D0D0")),
		session.ToneInfo:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4FC1E9")),
		session.ToneGood:   lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")),
		session.ToneBad:    incorrectStyle,
		session.ToneWarn:   currentWordStyle,
	}
)

type frameMsg session.Frame

type panelMsg session.Panel

// Model is the Bubble Tea model behind Terminal. It only draws what it is
// sent and forwards key presses; all session state lives in the caller.
type Model struct {
	keys chan<- session.KeyEvent

	width  int
	height int

	frame *session.Frame
	panel *session.Panel
}

// NewModel constructs a model that forwards keys to keys. Keys arriving while
// the channel is full are dropped.
func NewModel(keys chan<- session.KeyEvent) *Model {
	return &Model{keys: keys}
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
		return m, nil
	case frameMsg:
		f := session.Frame(msg)
		m.frame, m.panel = &f, nil
		return m, nil
	case panelMsg:
		p := session.Panel(msg)
		m.panel, m.frame = &p, nil
		return m, nil
	case tea.KeyMsg:
		for _, ev := range keyEvents(msg) {
			m.forward(ev)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) forward(ev session.KeyEvent) {
	if m.keys == nil {
		return
	}
	select {
	case m.keys <- ev:
	default:
	}
}

// keyEvents translates a Bubble Tea key press. Pasted text arrives as one
// message and yields one event per rune.
func keyEvents(msg tea.KeyMsg) []session.KeyEvent {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		return []session.KeyEvent{session.Cancel()}
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyCtrlH:
		return []session.KeyEvent{session.Backspace()}
	case tea.KeySpace:
		return []session.KeyEvent{session.Printable(' ')}
	case tea.KeyEnter:
		return []session.KeyEvent{session.Enter()}
	case tea.KeyRunes:
		out := make([]session.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, session.KeyFromRune(r))
		}
		return out
	default:
		return []session.KeyEvent{{Kind: session.KeyOther}}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	switch {
	case m.panel != nil:
		return m.place(renderPanel(*m.panel), "")
	case m.frame != nil:
		return m.place(m.renderFrame(*m.frame), renderFooter(*m.frame))
	default:
		return ""
	}
}

func (m *Model) place(content, footer string) string {
	if m.width == 0 || m.height == 0 {
		if footer == "" {
			return content
		}
		return content + "\n\n" + footer
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) renderFrame(f session.Frame) string {
	cursorIndex := -1
	if !f.Waiting && len(f.Typed) < len(f.Target) {
		cursorIndex = len(f.Typed)
	}
	styled := buildStyledRunes(f.Target, f.Correct, cursorIndex)
	width := m.contentWidth()
	text := wrapStyledRunes(styled, width)
	if width > 0 {
		text = lipgloss.NewStyle().Width(width).Render(text)
	}

	var b strings.Builder
	for i, line := range f.Header {
		if i == 0 {
			b.WriteString(titleStyle.Render(line))
		} else {
			b.WriteString(headerStyle.Render(line))
		}
		b.WriteString("\n")
	}
	if len(f.Header) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(text)
	return b.String()
}

func renderFooter(f session.Frame) string {
	if len(f.Target) == 0 {
		return ""
	}
	if f.Waiting {
		return footerStyle.Render("Press any key to start...  Esc to go back")
	}
	progress := int(float64(len(f.Typed)) / float64(len(f.Target)) * 100)
	segments := []string{
		fmt.Sprintf("Progress %d%%", progress),
		fmt.Sprintf("Accuracy %.1f%%", f.Live.Accuracy),
	}
	if errs := f.Live.TotalErrors(); errs > 0 {
		segments = append(segments, fmt.Sprintf("Errors %d", errs))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func renderPanel(p session.Panel) string {
	var b strings.Builder
	if p.Title != "" {
		b.WriteString(titleStyle.Render("===== " + p.Title + " ====="))
		b.WriteString("\n\n")
	}
	for _, line := range p.Lines {
		style, ok := toneStyles[line.Tone]
		if !ok {
			style = toneStyles[session.ToneNormal]
		}
		b.WriteString(style.Render(line.Text))
		b.WriteString("\n")
	}
	if p.Footer != "" {
		b.WriteString("\n")
		b.WriteString(footerStyle.Render(p.Footer))
	}
	return strings.TrimRight(b.String(), "\n")
}
