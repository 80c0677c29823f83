package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"climblog/internal/ui/theme"
)

// PaletteSubmitMsg carries the command line the user confirmed.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted on esc.
type PaletteCancelMsg struct{}

type command struct {
	usage string
	about string
}

// name is the first word of the usage line.
func (c command) name() string { return strings.Fields(c.usage)[0] }

// commands must stay in sync with the switch in app/model.go executePalette.
var commands = []command{
	{"gyms:reload", "fetch the gym list again"},
	{"gyms:select <id>", "start a session at a gym"},
	{"history", "send rates and past sessions"},
	{"session:end <fatigue>", "end the session, fatigue 1-5"},
	{"session:cancel", "discard the session"},
	{"logout", "forget the saved login"},
	{"quit", "leave climblog"},
}

const maxHints = 5

// Palette is the ':' command line overlay.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewPalette() Palette {
	in := textinput.New()
	in.Prompt = ": "
	in.Placeholder = "command"
	in.CharLimit = 128
	return Palette{input: in}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows an empty palette and returns the cursor blink command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.Reset()
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			line := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case "tab":
			if hits := p.Matches(); len(hits) > 0 {
				p.input.SetValue(strings.Fields(hits[0])[0] + " ")
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// Matches lists usage lines whose command starts with the typed word, at
// most maxHints of them.
func (p Palette) Matches() []string {
	typed := strings.ToLower(strings.TrimSpace(p.input.Value()))
	word := typed
	if i := strings.IndexByte(typed, ' '); i >= 0 {
		word = typed[:i]
	}
	var out []string
	for _, c := range commands {
		if len(out) == maxHints {
			break
		}
		if strings.HasPrefix(c.name(), word) || (word != typed && c.name() == word) {
			out = append(out, c.usage)
		}
	}
	return out
}

func about(usage string) string {
	for _, c := range commands {
		if c.usage == usage {
			return c.about
		}
	}
	return ""
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(p.input.View() + "\n")
	if hits := p.Matches(); len(hits) > 0 {
		sb.WriteString("\n")
		for _, usage := range hits {
			sb.WriteString(theme.Hot.Render(lipgloss.NewStyle().Width(24).Render(usage)))
			sb.WriteString(theme.Muted.Render(about(usage)) + "\n")
		}
	}
	w := p.width
	if w < 20 {
		w = 64
	}
	return theme.Modal.Padding(0, 1).Width(w - 2).Render(strings.TrimRight(sb.String(), "\n"))
}
