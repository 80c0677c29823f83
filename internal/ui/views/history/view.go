package history

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	trackerdomain "climblog/internal/modules/tracker/domain"
	"climblog/internal/ui/theme"
)

// CloseMsg asks the root model to leave the history view.
type CloseMsg struct{}

type Model struct {
	state    trackerdomain.HistoryView
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

func New() Model {
	return Model{}
}

func (m *Model) SetState(st trackerdomain.HistoryView) {
	m.state = st
	if m.ready {
		m.viewport.SetContent(m.render())
		m.viewport.GotoTop()
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.width, m.height)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = m.height
		}
		m.viewport.SetContent(m.render())
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "b", "backspace":
			return m, func() tea.Msg { return CloseMsg{} }
		}
	}
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return m.render()
	}
	return m.viewport.View()
}

func (m Model) render() string {
	if len(m.state.Sessions) == 0 {
		return theme.Title.Render("History") + "\n\n" +
			theme.Muted.Render("No sessions yet. Finish one and it shows up here.") + "\n\n" +
			theme.Muted.Render("esc: back")
	}
	climbs, sends := 0, 0
	for _, s := range m.state.Timeline {
		climbs += s.Climbs
		sends += s.Sends
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("History") + "  " +
		theme.Muted.Render(fmt.Sprintf("%d sessions, %d climbs, %d sends", len(m.state.Sessions), climbs, sends)) + "\n\n")

	holds := make([][]string, 0, len(m.state.Holds))
	for _, h := range m.state.Holds {
		holds = append(holds, []string{string(h.HoldType), pct(h.SendPercentage), strconv.Itoa(h.Total)})
	}
	angles := make([][]string, 0, len(m.state.Angles))
	for _, a := range m.state.Angles {
		angles = append(angles, []string{string(a.Key), pct(a.SendPercentage), fmt.Sprintf("%d/%d", a.Sends, a.Total)})
	}
	styles := make([][]string, 0, len(m.state.Styles))
	for _, s := range m.state.Styles {
		styles = append(styles, []string{string(s.Key), pct(s.SendPercentage), fmt.Sprintf("%d/%d", s.Sends, s.Total)})
	}
	breakdown := lipgloss.JoinHorizontal(lipgloss.Top,
		section("Hold types", statTable([]string{"Hold", "Send %", "Climbs"}, holds)), "  ",
		section("Angles", statTable([]string{"Angle", "Send %", "Sent"}, angles)), "  ",
		section("Styles", statTable([]string{"Style", "Send %", "Sent"}, styles)),
	)
	sb.WriteString(breakdown + "\n\n")

	rows := make([][]string, 0, len(m.state.Timeline))
	for i := len(m.state.Timeline) - 1; i >= 0; i-- {
		t := m.state.Timeline[i]
		when := "—"
		if !t.StartedAt.IsZero() {
			when = t.StartedAt.Local().Format("2006-01-02 15:04")
		}
		hardest := string(t.HardestSend)
		if hardest == "" {
			hardest = "—"
		}
		fatigue := "—"
		if t.Fatigue > 0 {
			fatigue = fmt.Sprintf("%d/5", t.Fatigue)
		}
		duration := "—"
		if t.DurationMinutes > 0 {
			duration = fmt.Sprintf("%.0fm", t.DurationMinutes)
		}
		rows = append(rows, []string{when, t.GymName, strconv.Itoa(t.Climbs), strconv.Itoa(t.Sends), hardest, fatigue, duration})
	}
	sb.WriteString(section("Sessions", plainTable([]string{"Started", "Gym", "Climbs", "Sends", "Hardest", "Fatigue", "Time"}, rows)))
	sb.WriteString("\n\n" + theme.Muted.Render("↑/↓ scroll  esc back"))
	return sb.String()
}

func section(title, body string) string {
	return theme.Title.Render(title) + "\n" + body
}

func pct(p int) string { return strconv.Itoa(p) + "%" }

// statTable colours the percentage column by how well that bucket goes.
func statTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Surface1)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return cell.Foreground(theme.Sapphire).Bold(true)
			}
			if col == 1 && row >= 0 && row < len(rows) {
				p, _ := strconv.Atoi(strings.TrimSuffix(rows[row][1], "%"))
				return cell.Inherit(theme.Percent(p))
			}
			return cell.Foreground(theme.Text)
		}).
		String()
}

func plainTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Surface1)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return cell.Foreground(theme.Sapphire).Bold(true)
			}
			return cell.Foreground(theme.Text)
		}).
		String()
}
