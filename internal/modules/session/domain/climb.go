package domain

import "fmt"

type Grade string

const (
	GradeV0   Grade = "V0"
	GradeV1   Grade = "V1"
	GradeV2   Grade = "V2"
	GradeV3   Grade = "V3"
	GradeV4   Grade = "V4"
	GradeV5   Grade = "V5"
	GradeV6   Grade = "V6"
	GradeV7   Grade = "V7"
	GradeV8   Grade = "V8"
	GradeV9   Grade = "V9"
	GradeV10  Grade = "V10"
	GradeV11  Grade = "V11"
	GradeV12  Grade = "V12"
	GradeV13P Grade = "V13+"
)

// Grades lists grades easiest first.
var Grades = []Grade{
	GradeV0, GradeV1, GradeV2, GradeV3, GradeV4, GradeV5, GradeV6,
	GradeV7, GradeV8, GradeV9, GradeV10, GradeV11, GradeV12, GradeV13P,
}

type Result string

const (
	ResultFlash   Result = "Flash"
	ResultSend    Result = "Send"
	ResultAttempt Result = "Attempt"
	ResultFail    Result = "Fail"
)

var Results = []Result{ResultFlash, ResultSend, ResultAttempt, ResultFail}

type HoldType string

const (
	HoldJug    HoldType = "Jug"
	HoldCrimp  HoldType = "Crimp"
	HoldSloper HoldType = "Sloper"
	HoldPinch  HoldType = "Pinch"
	HoldPocket HoldType = "Pocket"
)

var HoldTypes = []HoldType{HoldJug, HoldCrimp, HoldSloper, HoldPinch, HoldPocket}

type Angle string

const (
	AngleSlab     Angle = "Slab"
	AngleVertical Angle = "Vertical"
	AngleOverhang Angle = "Overhang"
	AngleRoof     Angle = "Roof"
)

var Angles = []Angle{AngleSlab, AngleVertical, AngleOverhang, AngleRoof}

type Style string

const (
	StyleTechnical Style = "Technical"
	StylePowerful  Style = "Powerful"
	StyleDynamic   Style = "Dynamic"
	StyleBalance   Style = "Balance"
)

var Styles = []Style{StyleTechnical, StylePowerful, StyleDynamic, StyleBalance}

func (g Grade) Validate() error    { return validate("grade", g, Grades) }
func (r Result) Validate() error   { return validate("result", r, Results) }
func (h HoldType) Validate() error { return validate("hold type", h, HoldTypes) }
func (a Angle) Validate() error    { return validate("angle", a, Angles) }
func (s Style) Validate() error    { return validate("style", s, Styles) }

// Rank orders grades; unknown grades rank below V0.
func (g Grade) Rank() int { return indexOf(g, Grades) }

func (g Grade) Next() Grade       { return cycle(g, Grades, 1) }
func (g Grade) Prev() Grade       { return cycle(g, Grades, -1) }
func (r Result) Next() Result     { return cycle(r, Results, 1) }
func (r Result) Prev() Result     { return cycle(r, Results, -1) }
func (h HoldType) Next() HoldType { return cycle(h, HoldTypes, 1) }
func (h HoldType) Prev() HoldType { return cycle(h, HoldTypes, -1) }
func (a Angle) Next() Angle       { return cycle(a, Angles, 1) }
func (a Angle) Prev() Angle       { return cycle(a, Angles, -1) }
func (s Style) Next() Style       { return cycle(s, Styles, 1) }
func (s Style) Prev() Style       { return cycle(s, Styles, -1) }

// IsSend reports whether the climb was completed.
func (r Result) IsSend() bool {
	return r == ResultFlash || r == ResultSend
}

// ClimbAttempt is one logged climb. JSON tags match the backend payload.
type ClimbAttempt struct {
	Grade    Grade    `json:"grade"`
	Result   Result   `json:"result"`
	HoldType HoldType `json:"hold_type"`
	Angle    Angle    `json:"angle"`
	Style    Style    `json:"style"`
	Attempts int      `json:"attempts"`
}

func (c ClimbAttempt) Validate() error {
	for _, err := range []error{c.Grade.Validate(), c.Result.Validate(), c.HoldType.Validate(), c.Angle.Validate(), c.Style.Validate()} {
		if err != nil {
			return err
		}
	}
	if c.Attempts < 1 {
		return fmt.Errorf("attempts must be at least 1, got %d", c.Attempts)
	}
	return nil
}

func validate[T ~string](field string, v T, allowed []T) error {
	if indexOf(v, allowed) < 0 {
		return fmt.Errorf("unsupported %s %q", field, string(v))
	}
	return nil
}

func indexOf[T comparable](v T, values []T) int {
	for i, candidate := range values {
		if candidate == v {
			return i
		}
	}
	return -1
}

func cycle[T comparable](v T, values []T, step int) T {
	i := indexOf(v, values)
	if i < 0 {
		return values[0]
	}
	n := len(values)
	return values[((i+step)%n+n)%n]
}
