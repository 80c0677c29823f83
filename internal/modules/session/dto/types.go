package dto

import "climblog/internal/modules/session/domain"

type StartInput struct {
	Token   string
	GymID   string
	GymName string
}

type LogClimbInput struct {
	Token   string
	Session domain.Session
	Climb   domain.ClimbAttempt
}

type EndInput struct {
	Token     string
	SessionID string
	Fatigue   int
}

type CancelInput struct {
	Token     string
	SessionID string
}

type ExportInput struct {
	Dir      string
	Sessions []domain.Session
}

type ExportOutput struct {
	Paths []string
}

type HistoryOutput struct {
	Sessions []domain.Session
}
