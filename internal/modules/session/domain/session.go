package domain

import "time"

const SchemaVersion = 1

const (
	MinFatigue = 1
	MaxFatigue = 5
)

// Session is a gym visit. Climbs are newest first while the session is live;
// sessions loaded from history keep the backend's chronological order.
type Session struct {
	ID              string
	GymID           string
	GymName         string
	Climbs          []ClimbAttempt
	Fatigue         int
	StartedAt       time.Time
	EndedAt         time.Time
	DurationMinutes float64
	Status          string
}

// Record returns session with attempt prepended. The caller's climb slice is
// not modified.
func Record(session Session, attempt ClimbAttempt) Session {
	climbs := make([]ClimbAttempt, 0, len(session.Climbs)+1)
	climbs = append(climbs, attempt)
	climbs = append(climbs, session.Climbs...)
	session.Climbs = climbs
	return session
}

func ValidFatigue(n int) bool {
	return n >= MinFatigue && n <= MaxFatigue
}
