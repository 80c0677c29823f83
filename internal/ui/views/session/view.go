package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondomain "climblog/internal/modules/session/domain"
	trackerdomain "climblog/internal/modules/tracker/domain"
	trackerdto "climblog/internal/modules/tracker/dto"
	"climblog/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────
// The view never changes session state itself. Each key press becomes an
// intent message the root model hands to the controller.

type StepMsg struct {
	Field trackerdto.DraftField
	Delta int
}

type LogMsg struct{}

type RequestEndMsg struct{}

type CancelMsg struct{}

type FatigueMsg struct{ Level int }

type ConfirmEndMsg struct{}

type DismissEndMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	state  trackerdomain.ActiveSession
	focus  trackerdto.DraftField
	log    table.Model
	width  int
	height int
}

func New() Model {
	t := table.New(
		table.WithColumns(columns(60)),
		table.WithFocused(false),
		table.WithHeight(8),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Surface1).
		BorderBottom(true).
		Foreground(theme.Sapphire).
		Bold(true)
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)
	return Model{log: t, focus: trackerdto.FieldGrade}
}

func columns(width int) []table.Column {
	w := (width - 10) / 6
	if w < 7 {
		w = 7
	}
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Grade", Width: w},
		{Title: "Result", Width: w},
		{Title: "Hold", Width: w},
		{Title: "Angle", Width: w},
		{Title: "Style", Width: w},
		{Title: "Tries", Width: 5},
	}
}

// SetState replaces the session shown. Climbs are listed newest first.
func (m *Model) SetState(st trackerdomain.ActiveSession) {
	m.state = st
	rows := make([]table.Row, 0, len(st.Session.Climbs))
	for i, c := range st.Session.Climbs {
		rows = append(rows, table.Row{
			strconv.Itoa(len(st.Session.Climbs) - i),
			string(c.Grade),
			string(c.Result),
			string(c.HoldType),
			string(c.Angle),
			string(c.Style),
			strconv.Itoa(c.Attempts),
		})
	}
	m.log.SetRows(rows)
}

// Focus is the draft field arrow keys currently step.
func (m Model) Focus() trackerdto.DraftField { return m.focus }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.log.SetColumns(columns(m.width - 6))
		h := m.height - 16
		if h < 3 {
			h = 3
		}
		m.log.SetHeight(h)
		return m, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		if m.state.End.Open {
			cmd = m.modalKey(msg.String())
		} else {
			cmd = m.formKey(msg.String())
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) formKey(k string) tea.Cmd {
	switch k {
	case "up", "k":
		m.focus = m.focus.Prev()
	case "down", "j", "tab":
		m.focus = m.focus.Next()
	case "left", "h", "-":
		return emit(StepMsg{Field: m.focus, Delta: -1})
	case "right", "l", "+", "=":
		return emit(StepMsg{Field: m.focus, Delta: 1})
	case "enter", " ":
		return emit(LogMsg{})
	case "e":
		return emit(RequestEndMsg{})
	case "x":
		return emit(CancelMsg{})
	}
	return nil
}

func (m *Model) modalKey(k string) tea.Cmd {
	switch k {
	case "1", "2", "3", "4", "5":
		n, _ := strconv.Atoi(k)
		return emit(FatigueMsg{Level: n})
	case "left", "h":
		if m.state.End.Fatigue > 1 {
			return emit(FatigueMsg{Level: m.state.End.Fatigue - 1})
		}
	case "right", "l":
		if m.state.End.Fatigue < 5 {
			return emit(FatigueMsg{Level: m.state.End.Fatigue + 1})
		}
	case "enter":
		return emit(ConfirmEndMsg{})
	case "esc":
		return emit(DismissEndMsg{})
	}
	return nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	form := theme.PaneActive.Width(m.width - 4).Render(m.renderDraft())
	logPane := theme.Pane.Width(m.width - 4).Render(theme.Title.Render("This session") + "\n" + m.renderLog())
	body := lipgloss.JoinVertical(lipgloss.Left, header, form, logPane)
	if m.state.End.Open {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderModal())
	}
	return body
}

func (m Model) renderHeader() string {
	s := m.state.Session
	started := ""
	if !s.StartedAt.IsZero() {
		started = fmt.Sprintf("  since %s (%s)", s.StartedAt.Local().Format("15:04"), time.Since(s.StartedAt).Round(time.Minute))
	}
	sends := 0
	for _, c := range s.Climbs {
		if c.Result.IsSend() {
			sends++
		}
	}
	return theme.Hot.Render("● "+s.GymName) + theme.Muted.Render(started) +
		"  " + theme.Send.Render(fmt.Sprintf("%d/%d sent", sends, len(s.Climbs))) + "\n"
}

func (m Model) renderDraft() string {
	v := m.state.Draft.Value()
	values := map[trackerdto.DraftField]string{
		trackerdto.FieldGrade:    string(v.Grade),
		trackerdto.FieldResult:   string(v.Result),
		trackerdto.FieldHoldType: string(v.HoldType),
		trackerdto.FieldAngle:    string(v.Angle),
		trackerdto.FieldStyle:    string(v.Style),
		trackerdto.FieldAttempts: strconv.Itoa(v.Attempts),
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Next climb") + "\n\n")
	for _, f := range trackerdto.DraftFields() {
		label := fmt.Sprintf("%-9s", f.String())
		value := "‹ " + values[f] + " ›"
		if f == m.focus {
			sb.WriteString(theme.Hot.Render("▸ "+label) + theme.Selected.Render(value) + "\n")
			continue
		}
		sb.WriteString("  " + theme.Muted.Render(label) + resultStyle(f, v).Render(values[f]) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("↑/↓ field  ←/→ change  enter log  e end  x cancel"))
	return sb.String()
}

func resultStyle(f trackerdto.DraftField, v sessiondomain.ClimbAttempt) lipgloss.Style {
	if f != trackerdto.FieldResult {
		return lipgloss.NewStyle()
	}
	if v.Result.IsSend() {
		return theme.Send
	}
	return theme.Miss
}

func (m Model) renderLog() string {
	if len(m.state.Session.Climbs) == 0 {
		return theme.Muted.Render("No climbs logged yet.")
	}
	return m.log.View()
}

func (m Model) renderModal() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("End session") + "\n\n")
	sb.WriteString("How tired are you?\n\n")
	for n := 1; n <= 5; n++ {
		cell := fmt.Sprintf(" %d ", n)
		if n == m.state.End.Fatigue {
			sb.WriteString(theme.Selected.Render(cell))
		} else {
			sb.WriteString(theme.Muted.Render(cell))
		}
		sb.WriteString(" ")
	}
	sb.WriteString("\n\n" + theme.Muted.Render("1-5 pick  enter confirm  esc back"))
	return theme.Modal.Render(sb.String())
}
