package dto

// DraftField is a draft form field the UI can step through.
type DraftField int

const (
	FieldGrade DraftField = iota
	FieldResult
	FieldHoldType
	FieldAngle
	FieldStyle
	FieldAttempts
	fieldCount
)

var fieldLabels = [fieldCount]string{"Grade", "Result", "Hold", "Angle", "Style", "Attempts"}

func (f DraftField) String() string {
	if f < 0 || f >= fieldCount {
		return ""
	}
	return fieldLabels[f]
}

// Next moves the focus, wrapping around.
func (f DraftField) Next() DraftField { return (f + 1) % fieldCount }

func (f DraftField) Prev() DraftField { return (f + fieldCount - 1) % fieldCount }

// DraftFields lists the fields in form order.
func DraftFields() []DraftField {
	out := make([]DraftField, 0, fieldCount)
	for f := FieldGrade; f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}
