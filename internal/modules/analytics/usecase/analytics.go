package usecase

import (
	"climblog/internal/modules/analytics/domain"
	"climblog/internal/modules/analytics/dto"
	analyticsin "climblog/internal/modules/analytics/port/in"
	sessiondomain "climblog/internal/modules/session/domain"
)

type Interactor struct{}

func NewInteractor() analyticsin.Usecase {
	return Interactor{}
}

// Report is computed fresh from the snapshot on every call; nothing is cached.
func (Interactor) Report(sessions []sessiondomain.Session) dto.Report {
	report := dto.Report{
		Holds:    domain.Aggregate(sessions),
		Angles:   domain.AggregateByAngle(sessions),
		Styles:   domain.AggregateByStyle(sessions),
		Timeline: domain.Timeline(sessions),
		Sessions: len(sessions),
	}
	for _, row := range report.Timeline {
		report.Climbs += row.Climbs
		report.Sends += row.Sends
	}
	return report
}
