package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"climblog/internal/modules/session/domain"
	sessionout "climblog/internal/modules/session/port/out"
	"climblog/internal/platform/markdown"
	"climblog/internal/platform/slug"
)

// VaultSessionStore writes sessions as markdown notes with YAML frontmatter,
// one file per session under <dir>/sessions/YYYY/MM/DD.
type VaultSessionStore struct{}

func NewVaultSessionStore() sessionout.SessionExporter {
	return &VaultSessionStore{}
}

func (s *VaultSessionStore) Save(_ context.Context, dir string, session domain.Session) (string, error) {
	date := session.StartedAt
	if date.IsZero() {
		date = time.Unix(0, 0).UTC()
	}
	noteDir := filepath.Join(dir, "sessions", date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(noteDir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(session.GymName+" "+session.ID))
	path := filepath.Join(noteDir, name)

	climbs := make([]map[string]any, 0, len(session.Climbs))
	for _, c := range session.Climbs {
		climbs = append(climbs, map[string]any{
			"grade":     string(c.Grade),
			"result":    string(c.Result),
			"hold_type": string(c.HoldType),
			"angle":     string(c.Angle),
			"style":     string(c.Style),
			"attempts":  c.Attempts,
		})
	}
	meta := map[string]any{
		"schema_version":   domain.SchemaVersion,
		"id":               session.ID,
		"gym_id":           session.GymID,
		"gym":              session.GymName,
		"status":           session.Status,
		"duration_minutes": session.DurationMinutes,
		"climbs":           climbs,
	}
	if !session.StartedAt.IsZero() {
		meta["started_at"] = session.StartedAt.Format(time.RFC3339)
	}
	if !session.EndedAt.IsZero() {
		meta["ended_at"] = session.EndedAt.Format(time.RFC3339)
	}
	if session.Fatigue > 0 {
		meta["fatigue"] = session.Fatigue
	}

	note := markdown.Note{Meta: meta, Body: summaryBlock.Replace(existingBody(path, session), renderSummary(session))}
	rendered, err := note.Render()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}

var summaryBlock = markdown.Block{
	Start: "<!-- climblog:summary:start -->",
	End:   "<!-- climblog:summary:end -->",
}

// existingBody keeps whatever the user wrote around the managed summary when
// a session is exported again.
func existingBody(path string, session domain.Session) string {
	raw, err := os.ReadFile(path)
	if err == nil {
		if note, parseErr := markdown.Parse(string(raw)); parseErr == nil {
			return note.Body
		}
	}
	return fmt.Sprintf("# Session at %s\n", session.GymName)
}

func renderSummary(session domain.Session) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- Climbs: %d\n", len(session.Climbs))
	if session.DurationMinutes > 0 {
		fmt.Fprintf(&sb, "- Duration: %.0f minutes\n", session.DurationMinutes)
	}
	if session.Fatigue > 0 {
		fmt.Fprintf(&sb, "- Fatigue: %d/5\n", session.Fatigue)
	}
	if len(session.Climbs) == 0 {
		return strings.TrimSuffix(sb.String(), "\n")
	}
	sb.WriteString("\n## Climbs\n\n| Grade | Result | Hold | Angle | Style | Tries |\n|---|---|---|---|---|---|\n")
	for _, c := range session.Climbs {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %d |\n", c.Grade, c.Result, c.HoldType, c.Angle, c.Style, c.Attempts)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
