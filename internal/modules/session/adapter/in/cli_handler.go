package in

import (
	"context"

	sessiondto "climblog/internal/modules/session/dto"
	sessionin "climblog/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) History(ctx context.Context, token string) (sessiondto.HistoryOutput, error) {
	sessions, err := h.usecase.History(ctx, token)
	if err != nil {
		return sessiondto.HistoryOutput{}, err
	}
	return sessiondto.HistoryOutput{Sessions: sessions}, nil
}

// Export fetches the history and writes every session below dir.
func (h CLIHandler) Export(ctx context.Context, token, dir string) (sessiondto.ExportOutput, error) {
	sessions, err := h.usecase.History(ctx, token)
	if err != nil {
		return sessiondto.ExportOutput{}, err
	}
	return h.usecase.Export(ctx, sessiondto.ExportInput{Dir: dir, Sessions: sessions})
}
