package domain

// Draft holds the in-progress climb form. Field setters apply the editing
// rules; the zero value is not usable, start from NewDraft.
type Draft struct {
	value ClimbAttempt
}

func NewDraft() Draft {
	return Draft{value: ClimbAttempt{
		Grade:    GradeV0,
		Result:   ResultFlash,
		HoldType: HoldJug,
		Angle:    AngleSlab,
		Style:    StyleTechnical,
		Attempts: 1,
	}}
}

func (d Draft) Value() ClimbAttempt { return d.value }

func (d *Draft) SetGrade(g Grade)       { d.value.Grade = g }
func (d *Draft) SetHoldType(h HoldType) { d.value.HoldType = h }
func (d *Draft) SetAngle(a Angle)       { d.value.Angle = a }
func (d *Draft) SetStyle(s Style)       { d.value.Style = s }

// SetResult forces attempts to 1 for a flash; other results keep attempts.
func (d *Draft) SetResult(r Result) {
	d.value.Result = r
	if r == ResultFlash {
		d.value.Attempts = 1
	}
}

func (d *Draft) IncrementAttempts() { d.value.Attempts++ }

func (d *Draft) DecrementAttempts() {
	if d.value.Attempts > 1 {
		d.value.Attempts--
	}
}

// ResetAttempts runs after a climb is logged; the other fields are kept
// because consecutive climbs tend to share them.
func (d *Draft) ResetAttempts() { d.value.Attempts = 1 }
