package gyms

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	gymdomain "climblog/internal/modules/gym/domain"
	sessiondomain "climblog/internal/modules/session/domain"
	trackerdomain "climblog/internal/modules/tracker/domain"
	"climblog/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

type SelectMsg struct {
	GymID string
}

// ─── list item ───────────────────────────────────────────────────────────────

type gymItem struct {
	gym gymdomain.Gym
}

func (i gymItem) Title() string       { return i.gym.DisplayName() }
func (i gymItem) Description() string { return "📍 " + i.gym.ID }
func (i gymItem) FilterValue() string { return i.gym.DisplayName() + " " + i.gym.ID }

const recentShown = 5

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	list   list.Model
	recent []sessiondomain.Session
	width  int
	height int
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Pick a Gym"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("gym", "gyms")
	return Model{list: l}
}

// SetState replaces the catalog and recent sessions shown.
func (m *Model) SetState(st trackerdomain.GymSelection) tea.Cmd {
	items := make([]list.Item, len(st.Gyms))
	for i, g := range st.Gyms {
		items[i] = gymItem{gym: g}
	}
	m.recent = st.Recent
	return m.list.SetItems(items)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(m.listWidth(), m.height)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "enter" && !m.Filtering() {
			if item, ok := m.list.SelectedItem().(gymItem); ok {
				id := item.gym.ID
				return m, func() tea.Msg { return SelectMsg{GymID: id} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) View() string {
	listPane := lipgloss.NewStyle().Width(m.listWidth()).Height(m.height).Render(m.list.View())
	if len(m.list.Items()) == 0 {
		listPane = lipgloss.NewStyle().Width(m.listWidth()).Height(m.height).Render(
			theme.Title.Render("Pick a Gym") + "\n\n" +
				theme.Muted.Render("No gyms found. Make sure the backend is running, then press r."))
	}
	recentW := m.width - m.listWidth()
	if recentW < 20 {
		return listPane
	}
	recentPane := theme.Pane.Width(recentW - 4).Height(m.height - 4).Render(m.renderRecent())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, recentPane)
}

func (m Model) listWidth() int {
	if m.width < 60 {
		return m.width
	}
	return m.width * 55 / 100
}

func (m Model) renderRecent() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Recent sessions") + "\n\n")
	if len(m.recent) == 0 {
		sb.WriteString(theme.Muted.Render("Nothing logged yet."))
		return sb.String()
	}
	shown := m.recent
	if len(shown) > recentShown {
		shown = shown[len(shown)-recentShown:]
	}
	for i := len(shown) - 1; i >= 0; i-- {
		s := shown[i]
		when := "—"
		if !s.StartedAt.IsZero() {
			when = s.StartedAt.Local().Format("Jan 02 15:04")
		}
		sb.WriteString(fmt.Sprintf("%s  %s\n", theme.Hot.Render(when), s.GymName))
		line := fmt.Sprintf("   %d climbs", len(s.Climbs))
		if s.Fatigue > 0 {
			line += fmt.Sprintf("  fatigue %d/5", s.Fatigue)
		}
		sb.WriteString(theme.Muted.Render(line) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: start  h: history  r: reload"))
	return sb.String()
}
