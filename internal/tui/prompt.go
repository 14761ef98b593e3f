package tui

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MaxUsernameLen bounds usernames.
const MaxUsernameLen = 49

// ErrPromptCancelled is returned when the user leaves the prompt with Esc.
var ErrPromptCancelled = errors.New("prompt cancelled")

var promptErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))

// ValidateUsername reports whether name can be used as a profile name.
func ValidateUsername(name string) error {
	if name == "" {
		return errors.New("username must not be empty")
	}
	if len([]rune(name)) > MaxUsernameLen {
		return fmt.Errorf("username must be at most %d characters", MaxUsernameLen)
	}
	for _, r := range name {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return errors.New("username must not contain spaces")
		}
	}
	return nil
}

type promptModel struct {
	input     textinput.Model
	errMsg    string
	value     string
	cancelled bool
}

func newPromptModel() *promptModel {
	ti := textinput.New()
	ti.Prompt = "Enter your username: "
	ti.Placeholder = "name"
	ti.CharLimit = MaxUsernameLen
	ti.Focus()
	return &promptModel{input: ti}
}

// Init implements tea.Model.
func (m *promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			name := strings.TrimSpace(m.input.Value())
			if err := ValidateUsername(name); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.value = name
			return m, tea.Quit
		}
	}
	m.errMsg = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *promptModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("===== LowkeyType ====="))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(promptErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("Enter to continue · Esc to quit"))
	b.WriteString("\n")
	return b.String()
}

// PromptUsername asks for a username on the terminal.
func PromptUsername(opts ...tea.ProgramOption) (string, error) {
	m := newPromptModel()
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run prompt: %w", err)
	}
	pm, ok := final.(*promptModel)
	if !ok || pm.cancelled || pm.value == "" {
		return "", ErrPromptCancelled
	}
	return pm.value, nil
}
