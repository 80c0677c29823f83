package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"climblog/internal/modules/analytics/domain"
	sessiondomain "climblog/internal/modules/session/domain"
)

func TestTimelineSummarisesEachSessionInOrder(t *testing.T) {
	t.Parallel()
	hard := climb(sessiondomain.HoldCrimp, sessiondomain.ResultSend)
	hard.Grade = sessiondomain.GradeV6
	harderFail := climb(sessiondomain.HoldCrimp, sessiondomain.ResultFail)
	harderFail.Grade = sessiondomain.GradeV8
	flash := climb(sessiondomain.HoldJug, sessiondomain.ResultFlash)
	flash.Grade = sessiondomain.GradeV0

	rows := domain.Timeline([]sessiondomain.Session{
		{ID: "b", GymName: "Barn", Fatigue: 4, DurationMinutes: 75, Climbs: []sessiondomain.ClimbAttempt{flash, harderFail, hard}},
		{ID: "a", GymName: "North", Climbs: []sessiondomain.ClimbAttempt{harderFail}},
	})

	require.Len(t, rows, 2)
	require.Equal(t, domain.SessionSummary{
		SessionID: "b", GymName: "Barn", Climbs: 3, Sends: 2, HardestSend: sessiondomain.GradeV6, Fatigue: 4, DurationMinutes: 75,
	}, rows[0])
	require.Equal(t, "a", rows[1].SessionID)
	require.Zero(t, rows[1].Sends)
	require.Empty(t, rows[1].HardestSend)
}
