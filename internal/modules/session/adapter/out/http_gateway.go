package out

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"climblog/internal/modules/session/domain"
	sessionout "climblog/internal/modules/session/port/out"
	"climblog/internal/platform/restclient"
)

type HTTPGateway struct {
	client *restclient.Client
}

func NewHTTPGateway(client *restclient.Client) sessionout.Gateway {
	return &HTTPGateway{client: client}
}

func (g *HTTPGateway) Start(ctx context.Context, token, gymID string) (string, error) {
	var out struct {
		SessionID string `json:"session_id"`
	}
	err := g.client.Do(ctx, restclient.Request{
		Method: http.MethodPost,
		Path:   "/sessions/start",
		Query:  url.Values{"gym_id": {gymID}},
		Token:  token,
		Out:    &out,
	})
	if err != nil {
		return "", err
	}
	if out.SessionID == "" {
		return "", fmt.Errorf("start session: response has no session_id")
	}
	return out.SessionID, nil
}

func (g *HTTPGateway) AddClimb(ctx context.Context, token, sessionID string, climb domain.ClimbAttempt) error {
	return g.client.Do(ctx, restclient.Request{
		Method: http.MethodPost,
		Path:   "/sessions/" + url.PathEscape(sessionID) + "/climb",
		Token:  token,
		Body:   climb,
	})
}

func (g *HTTPGateway) End(ctx context.Context, token, sessionID string, fatigue int) error {
	return g.client.Do(ctx, restclient.Request{
		Method: http.MethodPatch,
		Path:   "/sessions/" + url.PathEscape(sessionID) + "/end",
		Query:  url.Values{"fatigue": {strconv.Itoa(fatigue)}},
		Token:  token,
	})
}

func (g *HTTPGateway) Delete(ctx context.Context, token, sessionID string) error {
	return g.client.Do(ctx, restclient.Request{
		Method: http.MethodDelete,
		Path:   "/sessions/" + url.PathEscape(sessionID),
		Token:  token,
	})
}

func (g *HTTPGateway) History(ctx context.Context, token string) ([]domain.Session, error) {
	var payload []historySession
	err := g.client.Do(ctx, restclient.Request{
		Method: http.MethodGet,
		Path:   "/sessions/history",
		Token:  token,
		Out:    &payload,
	})
	if err != nil {
		return nil, err
	}
	sessions := make([]domain.Session, 0, len(payload))
	for _, item := range payload {
		sessions = append(sessions, item.toDomain())
	}
	return sessions, nil
}

// historySession is the wire shape of one /sessions/history entry. The id
// arrives under different keys depending on the backend serializer.
type historySession struct {
	ID              string                `json:"id"`
	MongoID         string                `json:"_id"`
	SessionID       string                `json:"session_id"`
	GymID           string                `json:"gym_id"`
	GymName         string                `json:"gym_name"`
	StartTime       wireTime              `json:"start_time"`
	EndTime         wireTime              `json:"end_time"`
	DurationMinutes float64               `json:"duration_minutes"`
	FatigueLevel    *int                  `json:"fatigue_level"`
	Status          string                `json:"status"`
	Climbs          []domain.ClimbAttempt `json:"climbs"`
}

func (h historySession) toDomain() domain.Session {
	s := domain.Session{
		ID:              firstNonEmpty(h.ID, h.SessionID, h.MongoID),
		GymID:           h.GymID,
		GymName:         firstNonEmpty(h.GymName, h.GymID),
		Climbs:          h.Climbs,
		StartedAt:       time.Time(h.StartTime),
		EndedAt:         time.Time(h.EndTime),
		DurationMinutes: h.DurationMinutes,
		Status:          h.Status,
	}
	if h.FatigueLevel != nil {
		s.Fatigue = *h.FatigueLevel
	}
	for i := range s.Climbs {
		if s.Climbs[i].Attempts < 1 {
			s.Climbs[i].Attempts = 1
		}
	}
	return s
}

// wireTime accepts RFC 3339 and the zone-less ISO form Python emits for
// naive UTC datetimes.
type wireTime time.Time

var wireTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999"}

func (t *wireTime) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	if raw == "" || raw == "null" {
		*t = wireTime{}
		return nil
	}
	for _, layout := range wireTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			*t = wireTime(parsed.UTC())
			return nil
		}
	}
	return fmt.Errorf("parse time %q", raw)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
