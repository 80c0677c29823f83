package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"climblog/internal/modules/session/domain"
	sessiondto "climblog/internal/modules/session/dto"
	"climblog/internal/modules/session/service"
	"climblog/internal/modules/session/usecase"
	apperrors "climblog/internal/platform/errors"
	"climblog/internal/platform/logging"
)

type fakeGateway struct {
	startID   string
	addErr    error
	endErr    error
	deleteErr error
	history   []domain.Session

	calls []string
}

func (f *fakeGateway) Start(_ context.Context, token, gymID string) (string, error) {
	f.calls = append(f.calls, "start:"+token+":"+gymID)
	return f.startID, nil
}

func (f *fakeGateway) AddClimb(_ context.Context, _, sessionID string, climb domain.ClimbAttempt) error {
	f.calls = append(f.calls, "climb:"+sessionID+":"+string(climb.Grade))
	return f.addErr
}

func (f *fakeGateway) End(_ context.Context, _, sessionID string, _ int) error {
	f.calls = append(f.calls, "end:"+sessionID)
	return f.endErr
}

func (f *fakeGateway) Delete(_ context.Context, _, sessionID string) error {
	f.calls = append(f.calls, "delete:"+sessionID)
	return f.deleteErr
}

func (f *fakeGateway) History(context.Context, string) ([]domain.Session, error) {
	f.calls = append(f.calls, "history")
	return f.history, nil
}

type fakeExporter struct {
	saved []string
	err   error
}

func (f *fakeExporter) Save(_ context.Context, dir string, session domain.Session) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	path := dir + "/" + session.ID + ".md"
	f.saved = append(f.saved, path)
	return path, nil
}

func newInteractor(gw *fakeGateway, exp *fakeExporter) *usecase.Interactor {
	svc := service.NewSessionService(gw, exp, logging.Discard())
	return usecase.NewInteractor(svc).(*usecase.Interactor)
}

func TestStartDefaultsGymNameToID(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{startID: "s-1"}
	uc := newInteractor(gw, &fakeExporter{})

	session, err := uc.Start(context.Background(), sessiondto.StartInput{Token: "tok", GymID: "loc-1"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.ID != "s-1" || session.GymName != "loc-1" || len(session.Climbs) != 0 {
		t.Fatalf("unexpected session: %+v", session)
	}
	if strings.Join(gw.calls, ",") != "start:tok:loc-1" {
		t.Fatalf("unexpected calls: %v", gw.calls)
	}
}

func TestOperationsRequireToken(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	uc := newInteractor(gw, &fakeExporter{})
	ctx := context.Background()

	if _, err := uc.Start(ctx, sessiondto.StartInput{GymID: "g"}); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("start without token: %v", err)
	}
	if _, err := uc.LogClimb(ctx, sessiondto.LogClimbInput{Session: domain.Session{ID: "s"}}); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("log without token: %v", err)
	}
	if err := uc.End(ctx, sessiondto.EndInput{SessionID: "s", Fatigue: 3}); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("end without token: %v", err)
	}
	if _, err := uc.History(ctx, ""); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("history without token: %v", err)
	}
	if len(gw.calls) != 0 {
		t.Fatalf("no backend call expected, got %v", gw.calls)
	}
}

func TestLogClimbPrependsOnlyAfterBackendSuccess(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	uc := newInteractor(gw, &fakeExporter{})
	ctx := context.Background()
	first := domain.NewDraft().Value()
	second := first
	second.Grade = domain.GradeV5

	session := domain.Session{ID: "s-1"}
	session, err := uc.LogClimb(ctx, sessiondto.LogClimbInput{Token: "tok", Session: session, Climb: first})
	if err != nil {
		t.Fatalf("log first: %v", err)
	}
	session, err = uc.LogClimb(ctx, sessiondto.LogClimbInput{Token: "tok", Session: session, Climb: second})
	if err != nil {
		t.Fatalf("log second: %v", err)
	}
	if len(session.Climbs) != 2 || session.Climbs[0].Grade != domain.GradeV5 {
		t.Fatalf("expected newest first, got %+v", session.Climbs)
	}

	gw.addErr = errors.New("boom")
	after, err := uc.LogClimb(ctx, sessiondto.LogClimbInput{Token: "tok", Session: session, Climb: first})
	if err == nil {
		t.Fatalf("expected backend failure")
	}
	if len(after.Climbs) != 2 {
		t.Fatalf("failed log must not record locally: %+v", after.Climbs)
	}
}

func TestEndRejectsFatigueBeforeAnyRequest(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	uc := newInteractor(gw, &fakeExporter{})

	for _, fatigue := range []int{0, 6, -1} {
		err := uc.End(context.Background(), sessiondto.EndInput{Token: "tok", SessionID: "s-1", Fatigue: fatigue})
		if !errors.Is(err, domain.ErrInvalidFatigue) {
			t.Fatalf("fatigue %d: expected ErrInvalidFatigue, got %v", fatigue, err)
		}
	}
	if len(gw.calls) != 0 {
		t.Fatalf("no request expected, got %v", gw.calls)
	}
	if err := uc.End(context.Background(), sessiondto.EndInput{Token: "tok", SessionID: "s-1", Fatigue: 5}); err != nil {
		t.Fatalf("end: %v", err)
	}
}

func TestCancelSurfacesDeleteFailure(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{deleteErr: apperrors.ErrTransport}
	uc := newInteractor(gw, &fakeExporter{})

	err := uc.Cancel(context.Background(), sessiondto.CancelInput{Token: "tok", SessionID: "s-1"})
	if !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if err := uc.Cancel(context.Background(), sessiondto.CancelInput{Token: "tok"}); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestExportWritesEverySession(t *testing.T) {
	t.Parallel()
	exp := &fakeExporter{}
	uc := newInteractor(&fakeGateway{}, exp)

	out, err := uc.Export(context.Background(), sessiondto.ExportInput{Dir: "/vault", Sessions: []domain.Session{{ID: "a"}, {ID: "b"}}})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if strings.Join(out.Paths, ",") != "/vault/a.md,/vault/b.md" {
		t.Fatalf("unexpected paths: %v", out.Paths)
	}
	if _, err := uc.Export(context.Background(), sessiondto.ExportInput{Dir: " "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHistoryKeepsAndLogsUnknownClimbValues(t *testing.T) {
	t.Parallel()
	known := domain.ClimbAttempt{Grade: domain.GradeV3, Result: domain.ResultSend, HoldType: domain.HoldCrimp, Angle: domain.AngleSlab, Style: domain.StyleTechnical, Attempts: 1}
	odd := known
	odd.HoldType = "Sidepull"
	gw := &fakeGateway{history: []domain.Session{{ID: "s-9", Climbs: []domain.ClimbAttempt{known, odd}}}}
	var logs bytes.Buffer
	svc := service.NewSessionService(gw, &fakeExporter{}, logging.NewWriter(&logs, "warn"))
	uc := usecase.NewInteractor(svc)

	sessions, err := uc.History(context.Background(), "tok")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(sessions) != 1 || len(sessions[0].Climbs) != 2 {
		t.Fatalf("history dropped climbs: %+v", sessions)
	}
	out := logs.String()
	if strings.Count(out, "history climb has unexpected values") != 1 || !strings.Contains(out, "Sidepull") || !strings.Contains(out, "s-9") {
		t.Fatalf("unexpected log output: %s", out)
	}
}
