package dto

import (
	"climblog/internal/modules/analytics/domain"
	sessiondomain "climblog/internal/modules/session/domain"
)

// Report is everything the history view renders for one history snapshot.
type Report struct {
	Holds    []domain.HoldStat
	Angles   []domain.Stat[sessiondomain.Angle]
	Styles   []domain.Stat[sessiondomain.Style]
	Timeline []domain.SessionSummary
	Sessions int
	Climbs   int
	Sends    int
}
