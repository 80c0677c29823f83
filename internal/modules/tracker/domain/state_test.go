package domain_test

import (
	"testing"

	gymdomain "climblog/internal/modules/gym/domain"
	sessiondomain "climblog/internal/modules/session/domain"
	"climblog/internal/modules/tracker/domain"
)

func TestCloneDetachesSlices(t *testing.T) {
	t.Parallel()
	original := domain.GymSelection{Gyms: []gymdomain.Gym{{ID: "a", Name: "A"}}}
	cloned := domain.Clone(original).(domain.GymSelection)
	cloned.Gyms[0].Name = "changed"
	if original.Gyms[0].Name != "A" {
		t.Fatalf("clone shares gyms backing array")
	}

	active := domain.ActiveSession{Session: sessiondomain.Session{Climbs: []sessiondomain.ClimbAttempt{{Grade: sessiondomain.GradeV1}}}}
	copied := domain.Clone(active).(domain.ActiveSession)
	copied.Session.Climbs[0].Grade = sessiondomain.GradeV9
	if active.Session.Climbs[0].Grade != sessiondomain.GradeV1 {
		t.Fatalf("clone shares climbs backing array")
	}
}

func TestCloneDetachesNestedClimbs(t *testing.T) {
	t.Parallel()
	sessions := []sessiondomain.Session{{ID: "s1", Climbs: []sessiondomain.ClimbAttempt{{Grade: sessiondomain.GradeV2}}}}
	history := domain.HistoryView{Sessions: sessions}
	selection := domain.GymSelection{Recent: sessions}

	domain.Clone(history).(domain.HistoryView).Sessions[0].Climbs[0].Grade = sessiondomain.GradeV9
	domain.Clone(selection).(domain.GymSelection).Recent[0].Climbs[0].Grade = sessiondomain.GradeV8
	if got := sessions[0].Climbs[0].Grade; got != sessiondomain.GradeV2 {
		t.Fatalf("clone shares session climbs, grade now %s", got)
	}
}

func TestStateNames(t *testing.T) {
	t.Parallel()
	names := map[string]domain.State{
		"unauthenticated": domain.Unauthenticated{},
		"gym_selection":   domain.GymSelection{},
		"active_session":  domain.ActiveSession{},
		"history":         domain.HistoryView{},
	}
	for want, s := range names {
		if s.Name() != want {
			t.Fatalf("%T.Name() = %q, want %q", s, s.Name(), want)
		}
	}
}
