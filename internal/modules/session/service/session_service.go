package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"climblog/internal/modules/session/domain"
	sessionout "climblog/internal/modules/session/port/out"
	apperrors "climblog/internal/platform/errors"
)

type SessionService struct {
	gateway  sessionout.Gateway
	exporter sessionout.SessionExporter
	logger   *slog.Logger
}

func NewSessionService(gateway sessionout.Gateway, exporter sessionout.SessionExporter, logger *slog.Logger) *SessionService {
	return &SessionService{gateway: gateway, exporter: exporter, logger: logger}
}

func (s *SessionService) Start(ctx context.Context, token, gymID, gymName string) (domain.Session, error) {
	if strings.TrimSpace(gymID) == "" {
		return domain.Session{}, fmt.Errorf("%w: gym id is required", apperrors.ErrInvalidInput)
	}
	sessionID, err := s.gateway.Start(ctx, token, gymID)
	if err != nil {
		return domain.Session{}, err
	}
	s.logger.Info("session started", "session_id", sessionID, "gym_id", gymID)
	return domain.Session{ID: sessionID, GymID: gymID, GymName: gymName, Status: "active"}, nil
}

// LogClimb writes the climb to the backend and only then records it locally.
// On failure the returned session is the input session, unchanged.
func (s *SessionService) LogClimb(ctx context.Context, token string, session domain.Session, climb domain.ClimbAttempt) (domain.Session, error) {
	if session.ID == "" {
		return session, apperrors.ErrNoActiveSession
	}
	if err := s.gateway.AddClimb(ctx, token, session.ID, climb); err != nil {
		return session, err
	}
	s.logger.Debug("climb logged", "session_id", session.ID, "grade", climb.Grade, "result", climb.Result)
	return domain.Record(session, climb), nil
}

func (s *SessionService) End(ctx context.Context, token, sessionID string, fatigue int) error {
	if !domain.ValidFatigue(fatigue) {
		return domain.ErrInvalidFatigue
	}
	if sessionID == "" {
		return apperrors.ErrNoActiveSession
	}
	if err := s.gateway.End(ctx, token, sessionID, fatigue); err != nil {
		return err
	}
	s.logger.Info("session ended", "session_id", sessionID, "fatigue", fatigue)
	return nil
}

func (s *SessionService) Cancel(ctx context.Context, token, sessionID string) error {
	if sessionID == "" {
		return apperrors.ErrNoActiveSession
	}
	if err := s.gateway.Delete(ctx, token, sessionID); err != nil {
		s.logger.Warn("session delete failed", "session_id", sessionID, "error", err)
		return err
	}
	s.logger.Info("session cancelled", "session_id", sessionID)
	return nil
}

// History returns the server's sessions as sent. Climbs with values this
// client does not know are kept and only logged.
func (s *SessionService) History(ctx context.Context, token string) ([]domain.Session, error) {
	sessions, err := s.gateway.History(ctx, token)
	if err != nil {
		return nil, err
	}
	for _, session := range sessions {
		for _, climb := range session.Climbs {
			if verr := climb.Validate(); verr != nil {
				s.logger.Warn("history climb has unexpected values", "session_id", session.ID, "error", verr)
			}
		}
	}
	return sessions, nil
}

func (s *SessionService) Export(ctx context.Context, dir string, sessions []domain.Session) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: export dir is required", apperrors.ErrInvalidInput)
	}
	if s.exporter == nil {
		return nil, fmt.Errorf("session exporter is not configured")
	}
	paths := make([]string, 0, len(sessions))
	for _, session := range sessions {
		path, err := s.exporter.Save(ctx, dir, session)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
