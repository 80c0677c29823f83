package domain

import (
	"time"

	sessiondomain "climblog/internal/modules/session/domain"
)

// SessionSummary is one row of the per-session timeline.
type SessionSummary struct {
	SessionID       string
	GymName         string
	StartedAt       time.Time
	Climbs          int
	Sends           int
	HardestSend     sessiondomain.Grade
	Fatigue         int
	DurationMinutes float64
}

// Timeline summarises sessions in input order. HardestSend is empty when the
// session has no sends.
func Timeline(sessions []sessiondomain.Session) []SessionSummary {
	out := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		row := SessionSummary{
			SessionID:       s.ID,
			GymName:         s.GymName,
			StartedAt:       s.StartedAt,
			Climbs:          len(s.Climbs),
			Fatigue:         s.Fatigue,
			DurationMinutes: s.DurationMinutes,
		}
		for _, c := range s.Climbs {
			if !c.Result.IsSend() {
				continue
			}
			row.Sends++
			if c.Grade.Rank() > row.HardestSend.Rank() {
				row.HardestSend = c.Grade
			}
		}
		out = append(out, row)
	}
	return out
}
