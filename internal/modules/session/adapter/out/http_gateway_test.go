package out_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	sessionout "climblog/internal/modules/session/adapter/out"
	"climblog/internal/modules/session/domain"
	apperrors "climblog/internal/platform/errors"
	"climblog/internal/platform/restclient"
)

func newGateway(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPGatewaySessionLifecycleRequests(t *testing.T) {
	t.Parallel()
	var seen []string
	srv := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.RequestURI())
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/sessions/start":
			_, _ = w.Write([]byte(`{"session_id":"abc123"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/sessions/abc123/climb":
			body, _ := io.ReadAll(r.Body)
			var climb map[string]any
			require.NoError(t, json.Unmarshal(body, &climb))
			require.Equal(t, "V3", climb["grade"])
			require.Equal(t, "Crimp", climb["hold_type"])
			require.EqualValues(t, 2, climb["attempts"])
			_, _ = w.Write([]byte(`{"message":"Climb added"}`))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	})
	gw := sessionout.NewHTTPGateway(restclient.New(srv.URL, time.Second, nil, nil))
	ctx := context.Background()

	id, err := gw.Start(ctx, "tok", "north wall")
	require.NoError(t, err)
	require.Equal(t, "abc123", id)

	climb := domain.ClimbAttempt{Grade: domain.GradeV3, Result: domain.ResultSend, HoldType: domain.HoldCrimp, Angle: domain.AngleVertical, Style: domain.StyleTechnical, Attempts: 2}
	require.NoError(t, gw.AddClimb(ctx, "tok", id, climb))
	require.NoError(t, gw.End(ctx, "tok", id, 4))
	require.NoError(t, gw.Delete(ctx, "tok", id))

	require.Equal(t, []string{
		"POST /sessions/start?gym_id=north+wall",
		"POST /sessions/abc123/climb",
		"PATCH /sessions/abc123/end?fatigue=4",
		"DELETE /sessions/abc123",
	}, seen)
}

func TestHTTPGatewayStartRequiresSessionID(t *testing.T) {
	t.Parallel()
	srv := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	gw := sessionout.NewHTTPGateway(restclient.New(srv.URL, time.Second, nil, nil))
	_, err := gw.Start(context.Background(), "tok", "g1")
	require.ErrorContains(t, err, "no session_id")
}

func TestHTTPGatewayHistoryDecodesBackendShapes(t *testing.T) {
	t.Parallel()
	srv := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sessions/history", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"_id":"m1","gym_id":"loc-1","start_time":"2026-03-01T18:00:00.123456","end_time":"2026-03-01T19:30:00","duration_minutes":90,"fatigue_level":3,"status":"completed",
			 "climbs":[{"grade":"V2","result":"Send","hold_type":"Jug","angle":"Slab","style":"Balance","attempts":2},{"grade":"V5","result":"Fail","hold_type":"Sloper","angle":"Roof"}]},
			{"id":"s2","gym_name":"Boulder Barn","start_time":"2026-03-04T10:00:00Z","fatigue_level":null,"climbs":null}
		]`))
	})
	gw := sessionout.NewHTTPGateway(restclient.New(srv.URL, time.Second, nil, nil))

	sessions, err := gw.History(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	first := sessions[0]
	require.Equal(t, "m1", first.ID)
	require.Equal(t, "loc-1", first.GymName)
	require.Equal(t, 3, first.Fatigue)
	require.Equal(t, 90.0, first.DurationMinutes)
	require.Equal(t, time.Date(2026, 3, 1, 18, 0, 0, 123456000, time.UTC), first.StartedAt)
	require.Len(t, first.Climbs, 2)
	require.Equal(t, domain.HoldSloper, first.Climbs[1].HoldType)
	require.Equal(t, 1, first.Climbs[1].Attempts)

	second := sessions[1]
	require.Equal(t, "s2", second.ID)
	require.Equal(t, "Boulder Barn", second.GymName)
	require.Zero(t, second.Fatigue)
	require.True(t, second.EndedAt.IsZero())
	require.Empty(t, second.Climbs)
}

func TestHTTPGatewayHistoryUnauthorized(t *testing.T) {
	t.Parallel()
	srv := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid or expired token"}`))
	})
	gw := sessionout.NewHTTPGateway(restclient.New(srv.URL, time.Second, nil, nil))
	_, err := gw.History(context.Background(), "old")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
