package domain_test

import (
	"testing"

	"climblog/internal/modules/session/domain"
)

func TestEnumValidate(t *testing.T) {
	t.Parallel()
	if err := domain.Grade("V13+").Validate(); err != nil {
		t.Fatalf("V13+ should be valid: %v", err)
	}
	if err := domain.Grade("V14").Validate(); err == nil {
		t.Fatalf("V14 should be rejected")
	}
	if err := domain.Result("Onsight").Validate(); err == nil {
		t.Fatalf("unknown result should be rejected")
	}
	if err := domain.HoldType("Undercling").Validate(); err == nil {
		t.Fatalf("unknown hold type should be rejected")
	}
}

func TestCycleWrapsAround(t *testing.T) {
	t.Parallel()
	if got := domain.GradeV13P.Next(); got != domain.GradeV0 {
		t.Fatalf("expected wrap to V0, got %s", got)
	}
	if got := domain.GradeV0.Prev(); got != domain.GradeV13P {
		t.Fatalf("expected wrap to V13+, got %s", got)
	}
	if got := domain.ResultFail.Next(); got != domain.ResultFlash {
		t.Fatalf("expected Flash, got %s", got)
	}
	if got := domain.HoldType("bogus").Next(); got != domain.HoldJug {
		t.Fatalf("unknown value should reset to first, got %s", got)
	}
}

func TestGradeRankAndSends(t *testing.T) {
	t.Parallel()
	if domain.GradeV10.Rank() <= domain.GradeV9.Rank() {
		t.Fatalf("V10 must outrank V9")
	}
	if domain.Grade("??").Rank() != -1 {
		t.Fatalf("unknown grade should rank -1")
	}
	if !domain.ResultFlash.IsSend() || !domain.ResultSend.IsSend() || domain.ResultAttempt.IsSend() || domain.ResultFail.IsSend() {
		t.Fatalf("only flash and send count as sends")
	}
}

func TestClimbAttemptValidateAttempts(t *testing.T) {
	t.Parallel()
	c := domain.NewDraft().Value()
	c.Attempts = 0
	if err := c.Validate(); err == nil {
		t.Fatalf("zero attempts should be rejected")
	}
}

func TestRecordPrependsWithoutMutatingInput(t *testing.T) {
	t.Parallel()
	first := domain.ClimbAttempt{Grade: domain.GradeV1, Result: domain.ResultSend, HoldType: domain.HoldJug, Angle: domain.AngleSlab, Style: domain.StyleBalance, Attempts: 2}
	second := domain.ClimbAttempt{Grade: domain.GradeV4, Result: domain.ResultFail, HoldType: domain.HoldCrimp, Angle: domain.AngleRoof, Style: domain.StylePowerful, Attempts: 3}
	base := domain.Session{ID: "s1", Climbs: []domain.ClimbAttempt{first}}

	next := domain.Record(base, second)
	if len(base.Climbs) != 1 || base.Climbs[0] != first {
		t.Fatalf("input session mutated: %+v", base.Climbs)
	}
	if len(next.Climbs) != 2 || next.Climbs[0] != second || next.Climbs[1] != first {
		t.Fatalf("expected newest first, got %+v", next.Climbs)
	}
}

func TestValidFatigue(t *testing.T) {
	t.Parallel()
	for n := -1; n <= 7; n++ {
		want := n >= 1 && n <= 5
		if domain.ValidFatigue(n) != want {
			t.Fatalf("ValidFatigue(%d) = %v", n, !want)
		}
	}
}
