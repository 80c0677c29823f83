package in

import (
	"climblog/internal/modules/analytics/dto"
	analyticsin "climblog/internal/modules/analytics/port/in"
	sessiondto "climblog/internal/modules/session/dto"
)

type CLIHandler struct {
	usecase analyticsin.Usecase
}

func NewCLIHandler(usecase analyticsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Report(history sessiondto.HistoryOutput) dto.Report {
	return h.usecase.Report(history.Sessions)
}
