package domain

import (
	analyticsdomain "climblog/internal/modules/analytics/domain"
	gymdomain "climblog/internal/modules/gym/domain"
	sessiondomain "climblog/internal/modules/session/domain"
)

// State is the controller's current screen. Exactly one variant is live.
type State interface {
	Name() string
	state()
}

type Unauthenticated struct{}

// GymSelection lists the catalog. Recent is the last fetched history, kept
// so an ended session shows up straight away.
type GymSelection struct {
	Gyms   []gymdomain.Gym
	Recent []sessiondomain.Session
}

// EndFlow is the fatigue prompt shown before a session is ended. Fatigue 0
// means nothing has been picked yet.
type EndFlow struct {
	Open    bool
	Fatigue int
}

type ActiveSession struct {
	Session sessiondomain.Session
	Draft   sessiondomain.Draft
	End     EndFlow
}

type HistoryView struct {
	Sessions []sessiondomain.Session
	Holds    []analyticsdomain.HoldStat
	Angles   []analyticsdomain.Stat[sessiondomain.Angle]
	Styles   []analyticsdomain.Stat[sessiondomain.Style]
	Timeline []analyticsdomain.SessionSummary
}

func (Unauthenticated) Name() string { return "unauthenticated" }
func (GymSelection) Name() string    { return "gym_selection" }
func (ActiveSession) Name() string   { return "active_session" }
func (HistoryView) Name() string     { return "history" }

func (Unauthenticated) state() {}
func (GymSelection) state()    {}
func (ActiveSession) state()   {}
func (HistoryView) state()     {}

// Clone copies the slices a caller could otherwise mutate behind the
// controller's back.
func Clone(s State) State {
	switch v := s.(type) {
	case GymSelection:
		v.Gyms = append([]gymdomain.Gym(nil), v.Gyms...)
		v.Recent = cloneSessions(v.Recent)
		return v
	case ActiveSession:
		v.Session.Climbs = append([]sessiondomain.ClimbAttempt(nil), v.Session.Climbs...)
		return v
	case HistoryView:
		v.Sessions = cloneSessions(v.Sessions)
		v.Holds = append([]analyticsdomain.HoldStat(nil), v.Holds...)
		v.Angles = append([]analyticsdomain.Stat[sessiondomain.Angle](nil), v.Angles...)
		v.Styles = append([]analyticsdomain.Stat[sessiondomain.Style](nil), v.Styles...)
		v.Timeline = append([]analyticsdomain.SessionSummary(nil), v.Timeline...)
		return v
	default:
		return s
	}
}

func cloneSessions(sessions []sessiondomain.Session) []sessiondomain.Session {
	if sessions == nil {
		return nil
	}
	out := make([]sessiondomain.Session, len(sessions))
	for i, s := range sessions {
		s.Climbs = append([]sessiondomain.ClimbAttempt(nil), s.Climbs...)
		out[i] = s
	}
	return out
}
