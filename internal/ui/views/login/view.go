package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"climblog/internal/ui/theme"
)

// SubmitMsg is emitted when both fields are filled and the user presses
// enter on the last one.
type SubmitMsg struct {
	Username string
	Password string
}

const (
	fieldUsername = iota
	fieldPassword
	fieldCount
)

type Model struct {
	inputs [fieldCount]textinput.Model
	focus  int
	width  int
	height int
}

func New() Model {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 64
	user.Prompt = "user › "

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.Prompt = "pass › "
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	m := Model{inputs: [fieldCount]textinput.Model{user, pass}}
	m.inputs[fieldUsername].Focus()
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Reset clears the password and focuses it, keeping the username for the
// next try.
func (m *Model) Reset() tea.Cmd {
	m.inputs[fieldPassword].SetValue("")
	return m.setFocus(fieldPassword)
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg.String()); handled {
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleKey(k string) (tea.Cmd, bool) {
	switch k {
	case "tab", "down":
		return m.setFocus((m.focus + 1) % fieldCount), true
	case "shift+tab", "up":
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount), true
	case "enter":
		if m.focus < fieldCount-1 {
			return m.setFocus(m.focus + 1), true
		}
		user := strings.TrimSpace(m.inputs[fieldUsername].Value())
		pass := m.inputs[fieldPassword].Value()
		if user == "" {
			return m.setFocus(fieldUsername), true
		}
		if pass == "" {
			return nil, true
		}
		return func() tea.Msg { return SubmitMsg{Username: user, Password: pass} }, true
	}
	return nil, false
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Climb Log Login") + "\n\n")
	for i := range m.inputs {
		sb.WriteString(m.inputs[i].View() + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("tab: next field  enter: sign in  ctrl+c: quit"))
	form := theme.PaneActive.Width(44).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}
