package in

import (
	"climblog/internal/modules/analytics/dto"
	sessiondomain "climblog/internal/modules/session/domain"
)

type Usecase interface {
	Report(sessions []sessiondomain.Session) dto.Report
}
