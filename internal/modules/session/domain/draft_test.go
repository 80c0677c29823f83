package domain_test

import (
	"testing"

	"climblog/internal/modules/session/domain"
)

func TestNewDraftDefaults(t *testing.T) {
	t.Parallel()
	got := domain.NewDraft().Value()
	want := domain.ClimbAttempt{
		Grade:    domain.GradeV0,
		Result:   domain.ResultFlash,
		HoldType: domain.HoldJug,
		Angle:    domain.AngleSlab,
		Style:    domain.StyleTechnical,
		Attempts: 1,
	}
	if got != want {
		t.Fatalf("unexpected default draft: %+v", got)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("default draft should be valid: %v", err)
	}
}

func TestSetResultFlashForcesSingleAttempt(t *testing.T) {
	t.Parallel()
	for _, prior := range []int{1, 2, 7, 40} {
		d := domain.NewDraft()
		d.SetResult(domain.ResultSend)
		for d.Value().Attempts < prior {
			d.IncrementAttempts()
		}
		d.SetResult(domain.ResultFlash)
		if d.Value().Attempts != 1 {
			t.Fatalf("flash after %d attempts should force 1, got %d", prior, d.Value().Attempts)
		}
	}
}

func TestSetResultOtherKeepsAttempts(t *testing.T) {
	t.Parallel()
	d := domain.NewDraft()
	d.IncrementAttempts()
	d.IncrementAttempts()
	for _, r := range []domain.Result{domain.ResultSend, domain.ResultAttempt, domain.ResultFail} {
		d.SetResult(r)
		if d.Value().Attempts != 3 {
			t.Fatalf("result %s should keep attempts=3, got %d", r, d.Value().Attempts)
		}
	}
}

func TestAttemptsFloorAndUnboundedIncrement(t *testing.T) {
	t.Parallel()
	d := domain.NewDraft()
	for i := 0; i < 5; i++ {
		d.DecrementAttempts()
	}
	if d.Value().Attempts != 1 {
		t.Fatalf("decrement must floor at 1, got %d", d.Value().Attempts)
	}
	for i := 0; i < 1000; i++ {
		d.IncrementAttempts()
	}
	if d.Value().Attempts != 1001 {
		t.Fatalf("increment must be unbounded, got %d", d.Value().Attempts)
	}
	d.DecrementAttempts()
	if d.Value().Attempts != 1000 {
		t.Fatalf("expected 1000 after decrement, got %d", d.Value().Attempts)
	}
}

func TestFieldSettersTouchOnlyTheirField(t *testing.T) {
	t.Parallel()
	d := domain.NewDraft()
	d.SetResult(domain.ResultAttempt)
	d.IncrementAttempts()
	before := d.Value()

	d.SetGrade(domain.GradeV13P)
	d.SetHoldType(domain.HoldPocket)
	d.SetAngle(domain.AngleRoof)
	d.SetStyle(domain.StyleDynamic)
	after := d.Value()

	if after.Result != before.Result || after.Attempts != before.Attempts {
		t.Fatalf("setters changed result/attempts: %+v -> %+v", before, after)
	}
	if after.Grade != domain.GradeV13P || after.HoldType != domain.HoldPocket || after.Angle != domain.AngleRoof || after.Style != domain.StyleDynamic {
		t.Fatalf("setters did not apply: %+v", after)
	}
	d.ResetAttempts()
	if d.Value().Attempts != 1 || d.Value().Grade != domain.GradeV13P {
		t.Fatalf("reset attempts should keep other fields: %+v", d.Value())
	}
}
