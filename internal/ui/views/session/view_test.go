package session_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessiondomain "climblog/internal/modules/session/domain"
	trackerdomain "climblog/internal/modules/tracker/domain"
	trackerdto "climblog/internal/modules/tracker/dto"
	"climblog/internal/ui/views/session"
)

func press(t *testing.T, m session.Model, k tea.KeyMsg) (session.Model, tea.Msg) {
	t.Helper()
	m, cmd := m.Update(k)
	if cmd == nil {
		return m, nil
	}
	return m, cmd()
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func active(open bool, fatigue int) trackerdomain.ActiveSession {
	return trackerdomain.ActiveSession{
		Session: sessiondomain.Session{ID: "s1", GymName: "Barn", Climbs: []sessiondomain.ClimbAttempt{
			{Grade: sessiondomain.GradeV3, Result: sessiondomain.ResultSend, HoldType: sessiondomain.HoldPinch, Angle: sessiondomain.AngleRoof, Style: sessiondomain.StyleDynamic, Attempts: 2},
		}},
		Draft: sessiondomain.NewDraft(),
		End:   trackerdomain.EndFlow{Open: open, Fatigue: fatigue},
	}
}

func TestFormKeysEmitIntents(t *testing.T) {
	t.Parallel()
	m := session.New()
	m.SetState(active(false, 0))

	m, msg := press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, session.StepMsg{Field: trackerdto.FieldGrade, Delta: -1}, msg)

	m, msg = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Nil(t, msg)
	assert.Equal(t, trackerdto.FieldAttempts, m.Focus())

	m, msg = press(t, m, runes("+"))
	assert.Equal(t, session.StepMsg{Field: trackerdto.FieldAttempts, Delta: 1}, msg)

	_, msg = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, session.LogMsg{}, msg)
	_, msg = press(t, m, runes("e"))
	assert.Equal(t, session.RequestEndMsg{}, msg)
	_, msg = press(t, m, runes("x"))
	assert.Equal(t, session.CancelMsg{}, msg)
}

func TestModalKeysEmitFatigueIntents(t *testing.T) {
	t.Parallel()
	m := session.New()
	m.SetState(active(true, 3))

	_, msg := press(t, m, runes("5"))
	assert.Equal(t, session.FatigueMsg{Level: 5}, msg)
	_, msg = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, session.FatigueMsg{Level: 2}, msg)
	_, msg = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, session.ConfirmEndMsg{}, msg)
	_, msg = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, session.DismissEndMsg{}, msg)

	// Form keys do nothing while the prompt is open.
	_, msg = press(t, m, runes("x"))
	assert.Nil(t, msg)
}

func TestViewShowsLogAndModal(t *testing.T) {
	t.Parallel()
	m := session.New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.SetState(active(false, 0))
	out := m.View()
	require.Contains(t, out, "Barn")
	assert.Contains(t, out, "Pinch")
	assert.Contains(t, out, "1/1 sent")

	m.SetState(active(true, 0))
	assert.Contains(t, m.View(), "How tired are you?")
}
