package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	trackerdomain "climblog/internal/modules/tracker/domain"
	trackerdto "climblog/internal/modules/tracker/dto"
	"climblog/internal/ui/components"
	"climblog/internal/ui/theme"
	gymsview "climblog/internal/ui/views/gyms"
	historyview "climblog/internal/ui/views/history"
	loginview "climblog/internal/ui/views/login"
	sessionview "climblog/internal/ui/views/session"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// The root model only needs the controller. Views never see it; they emit
// intent messages which are translated into controller calls here.

type controllerPort interface {
	Start(ctx context.Context) error
	Login(ctx context.Context, username, password string) error
	ReloadGyms(ctx context.Context) error
	SelectGym(ctx context.Context, gymID string) error
	StepDraft(field trackerdto.DraftField, delta int) error
	LogClimb(ctx context.Context) error
	RequestEnd() error
	SelectFatigue(n int) error
	DismissEnd() error
	ConfirmEnd(ctx context.Context) error
	Cancel(ctx context.Context) error
	OpenHistory(ctx context.Context) error
	CloseHistory() error
	Logout(ctx context.Context) error
	State() trackerdomain.State
	Username() string
}

// ─── async messages ───────────────────────────────────────────────────────────

// resultMsg reports a finished controller call.
type resultMsg struct {
	op  trackerdomain.Op
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Select   key.Binding
	Reload   key.Binding
	History  key.Binding
	Logout   key.Binding
	Field    key.Binding
	Change   key.Binding
	Log      key.Binding
	End      key.Binding
	Discard  key.Binding
	Back     key.Binding
	Fatigue  key.Binding
	Scroll   key.Binding
	Filter   key.Binding
	Password key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start session")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload gyms")),
		History:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		Logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter gyms")),
		Field:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "draft field")),
		Change:   key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "change value")),
		Log:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log climb")),
		End:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end session")),
		Discard:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "discard session")),
		Fatigue:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "fatigue")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Scroll:   key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll history")),
		Password: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next login field")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Password, k.Select, k.Filter, k.Reload, k.History, k.Logout},
		{k.Field, k.Change, k.Log, k.End, k.Discard},
		{k.Fatigue, k.Back, k.Scroll},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes input to the view for the
// controller's current state and runs controller calls as commands. All
// state lives in the controller; after every message the views are re-synced
// from State().
type Model struct {
	ctrl controllerPort

	loginView   loginview.Model
	gymsView    gymsview.Model
	sessionView sessionview.Model
	historyView historyview.Model

	screen   string
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	spinner  spinner.Model
	pending  int
	status   string
	failed   bool
	width    int
	height   int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(ctrl controllerPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Hot
	return Model{
		ctrl:        ctrl,
		loginView:   loginview.New(),
		gymsView:    gymsview.New(),
		sessionView: sessionview.New(),
		historyView: historyview.New(),
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		spinner:     sp,
		status:      "connecting…",
		pending:     1,
	}
}

// Init restores the saved login. pending already counts this call.
func (m Model) Init() tea.Cmd {
	ctrl := m.ctrl
	return tea.Batch(
		m.loginView.Init(),
		m.spinner.Tick,
		func() tea.Msg {
			return resultMsg{op: trackerdomain.OpGyms, err: ctrl.Start(context.Background())}
		},
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	refresh := true
	switch msg.(type) {
	case tea.KeyMsg, spinner.TickMsg:
		// Keys only emit intents and ticks change nothing; views are
		// refreshed when the resulting message arrives.
		refresh = false
	}
	syncCmd := m.sync(refresh)
	return m, tea.Batch(cmd, syncCmd)
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case resultMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.report(msg.op, msg.err)
		if msg.op == trackerdomain.OpLogin && msg.err != nil {
			return m.loginView.Reset()
		}
		return nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		return nil

	// ── intents from views ──

	case loginview.SubmitMsg:
		ctrl := m.ctrl
		return m.call(trackerdomain.OpLogin, func(ctx context.Context) error {
			return ctrl.Login(ctx, msg.Username, msg.Password)
		})

	case gymsview.SelectMsg:
		ctrl := m.ctrl
		return m.call(trackerdomain.OpStart, func(ctx context.Context) error {
			return ctrl.SelectGym(ctx, msg.GymID)
		})

	case sessionview.StepMsg:
		m.local(m.ctrl.StepDraft(msg.Field, msg.Delta))
		return nil

	case sessionview.LogMsg:
		return m.call(trackerdomain.OpLog, m.ctrl.LogClimb)

	case sessionview.RequestEndMsg:
		m.local(m.ctrl.RequestEnd())
		return nil

	case sessionview.FatigueMsg:
		m.local(m.ctrl.SelectFatigue(msg.Level))
		return nil

	case sessionview.DismissEndMsg:
		m.local(m.ctrl.DismissEnd())
		return nil

	case sessionview.ConfirmEndMsg:
		return m.call(trackerdomain.OpEnd, m.ctrl.ConfirmEnd)

	case sessionview.CancelMsg:
		return m.call(trackerdomain.OpCancel, m.ctrl.Cancel)

	case historyview.CloseMsg:
		m.local(m.ctrl.CloseHistory())
		return nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return nil
		}
		if cmd, handled := m.globalKey(msg); handled {
			return cmd
		}
	}

	return m.routeToView(msg)
}

// globalKey handles bindings that work on any screen except while the user
// is typing into a text field.
func (m *Model) globalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.screen == screenLogin || m.screen == "" || (m.screen == screenGyms && m.gymsView.Filtering()) {
		return nil, false
	}
	switch msg.String() {
	case "q":
		if m.screen == screenSession {
			// q is not a session key; leaving must go through end or discard.
			m.setStatus("End (e) or discard (x) the session first.", true)
			return nil, true
		}
		return tea.Quit, true
	case "?":
		m.showHelp = true
		return nil, true
	case ":":
		return m.palette.Open(), true
	}
	if m.screen != screenGyms {
		return nil, false
	}
	switch msg.String() {
	case "r":
		return m.call(trackerdomain.OpGyms, m.ctrl.ReloadGyms), true
	case "h":
		return m.call(trackerdomain.OpHistory, m.ctrl.OpenHistory), true
	case "L":
		return m.call(trackerdomain.OpLogout, m.ctrl.Logout), true
	}
	return nil, false
}

func (m *Model) routeToView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.screen {
	case screenLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case screenGyms:
		m.gymsView, cmd = m.gymsView.Update(msg)
	case screenSession:
		m.sessionView, cmd = m.sessionView.Update(msg)
	case screenHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	}
	return cmd
}

// ─── state sync ──────────────────────────────────────────────────────────────

const (
	screenLogin   = "unauthenticated"
	screenGyms    = "gym_selection"
	screenSession = "active_session"
	screenHistory = "history"
)

// sync copies the controller state into the view that renders it. Entering
// the login screen from elsewhere clears the password field.
func (m *Model) sync(refresh bool) tea.Cmd {
	st := m.ctrl.State()
	entered := st.Name() != m.screen
	m.screen = st.Name()
	if !entered && !refresh {
		return nil
	}

	var cmd tea.Cmd
	switch v := st.(type) {
	case trackerdomain.Unauthenticated:
		if entered {
			cmd = m.loginView.Reset()
		}
	case trackerdomain.GymSelection:
		cmd = m.gymsView.SetState(v)
	case trackerdomain.ActiveSession:
		m.sessionView.SetState(v)
	case trackerdomain.HistoryView:
		if entered {
			m.historyView.SetState(v)
		}
	}
	return cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) activeView() string {
	switch m.screen {
	case screenLogin:
		return m.loginView.View()
	case screenGyms:
		return m.gymsView.View()
	case screenSession:
		return m.sessionView.View()
	case screenHistory:
		return m.historyView.View()
	}
	return lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, m.spinner.View()+" loading")
}

var screenLabels = map[string]string{
	screenLogin:   "Login",
	screenGyms:    "Gyms",
	screenSession: "Session",
	screenHistory: "History",
}

func (m Model) renderHeader() string {
	bar := theme.Hot.Render("climblog") + "  " + theme.Muted.Render(screenLabels[m.screen])
	if user := m.ctrl.Username(); user != "" && m.screen != screenLogin {
		bar += theme.Muted.Render("  │  ") + user
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.failed {
		left = theme.Miss.Render(left)
	}
	if m.pending > 0 {
		left = m.spinner.View() + " " + left
	}
	right := theme.Muted.Render("?:help  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m *Model) executePalette(input string) tea.Cmd {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "gyms:reload":
		return m.call(trackerdomain.OpGyms, m.ctrl.ReloadGyms)

	case "gyms:select":
		if len(parts) < 2 {
			m.setStatus("usage: gyms:select <id>", true)
			return nil
		}
		id, ctrl := parts[1], m.ctrl
		return m.call(trackerdomain.OpStart, func(ctx context.Context) error {
			return ctrl.SelectGym(ctx, id)
		})

	case "history":
		return m.call(trackerdomain.OpHistory, m.ctrl.OpenHistory)

	case "session:end":
		if len(parts) < 2 {
			m.setStatus("usage: session:end <fatigue 1-5>", true)
			return nil
		}
		level, err := strconv.Atoi(parts[1])
		if err != nil {
			m.setStatus("fatigue must be a number from 1 to 5", true)
			return nil
		}
		if err := m.ctrl.RequestEnd(); err != nil {
			m.report("", err)
			return nil
		}
		if err := m.ctrl.SelectFatigue(level); err != nil {
			m.report("", err)
			return nil
		}
		return m.call(trackerdomain.OpEnd, m.ctrl.ConfirmEnd)

	case "session:cancel":
		return m.call(trackerdomain.OpCancel, m.ctrl.Cancel)

	case "logout":
		return m.call(trackerdomain.OpLogout, m.ctrl.Logout)

	case "quit":
		return tea.Quit

	default:
		m.setStatus("unknown command: "+parts[0], true)
	}
	return nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// call runs a controller operation off the update loop.
func (m *Model) call(op trackerdomain.Op, fn func(ctx context.Context) error) tea.Cmd {
	m.pending++
	run := func() tea.Msg {
		return resultMsg{op: op, err: fn(context.Background())}
	}
	if m.pending == 1 {
		return tea.Batch(run, m.spinner.Tick)
	}
	return run
}

// local reports the outcome of a synchronous controller call.
func (m *Model) local(err error) {
	if err != nil {
		m.report("", err)
	}
}

func (m *Model) report(op trackerdomain.Op, err error) {
	if err != nil {
		if text := trackerdomain.Describe(op, err); text != "" {
			m.setStatus(text, true)
		}
		return
	}
	m.setStatus(m.successText(op), false)
}

func (m Model) successText(op trackerdomain.Op) string {
	switch op {
	case trackerdomain.OpLogin:
		return "Signed in as " + m.ctrl.Username() + "."
	case trackerdomain.OpGyms:
		if m.ctrl.State().Name() == screenLogin {
			return "Log in to continue."
		}
		return "Gyms loaded."
	case trackerdomain.OpStart:
		if st, ok := m.ctrl.State().(trackerdomain.ActiveSession); ok {
			return "Session started at " + st.Session.GymName + "."
		}
	case trackerdomain.OpLog:
		if st, ok := m.ctrl.State().(trackerdomain.ActiveSession); ok && len(st.Session.Climbs) > 0 {
			c := st.Session.Climbs[0]
			return fmt.Sprintf("Logged %s %s.", c.Grade, c.Result)
		}
	case trackerdomain.OpEnd:
		return "Session saved."
	case trackerdomain.OpCancel:
		return "Session discarded."
	case trackerdomain.OpLogout:
		return "Logged out."
	}
	return ""
}

func (m *Model) setStatus(text string, failed bool) {
	m.status = text
	m.failed = failed
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 4}
	m.loginView, _ = m.loginView.Update(sz)
	m.gymsView, _ = m.gymsView.Update(sz)
	m.sessionView, _ = m.sessionView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
