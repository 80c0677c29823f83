package domain

import (
	"sort"

	sessiondomain "climblog/internal/modules/session/domain"
)

// Stat is one bucket of logged climbs. Total counts ClimbAttempt records,
// not their Attempts field.
type Stat[K comparable] struct {
	Key            K
	SendPercentage int
	Sends          int
	Total          int
}

type HoldStat struct {
	HoldType       sessiondomain.HoldType
	SendPercentage int
	Total          int
}

// AggregateBy buckets every climb of every session by key. Buckets appear in
// discovery order, then are stably sorted by send percentage, highest first.
// A bucket exists only if at least one climb landed in it.
func AggregateBy[K comparable](sessions []sessiondomain.Session, key func(sessiondomain.ClimbAttempt) K) []Stat[K] {
	index := map[K]int{}
	stats := []Stat[K]{}
	for _, session := range sessions {
		for _, climb := range session.Climbs {
			k := key(climb)
			i, ok := index[k]
			if !ok {
				i = len(stats)
				index[k] = i
				stats = append(stats, Stat[K]{Key: k})
			}
			stats[i].Total++
			if climb.Result.IsSend() {
				stats[i].Sends++
			}
		}
	}
	for i := range stats {
		stats[i].SendPercentage = percent(stats[i].Sends, stats[i].Total)
	}
	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].SendPercentage > stats[b].SendPercentage
	})
	return stats
}

// Aggregate is the hold-type proficiency table.
func Aggregate(sessions []sessiondomain.Session) []HoldStat {
	stats := AggregateBy(sessions, func(c sessiondomain.ClimbAttempt) sessiondomain.HoldType { return c.HoldType })
	out := make([]HoldStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, HoldStat{HoldType: s.Key, SendPercentage: s.SendPercentage, Total: s.Total})
	}
	return out
}

func AggregateByAngle(sessions []sessiondomain.Session) []Stat[sessiondomain.Angle] {
	return AggregateBy(sessions, func(c sessiondomain.ClimbAttempt) sessiondomain.Angle { return c.Angle })
}

func AggregateByStyle(sessions []sessiondomain.Session) []Stat[sessiondomain.Style] {
	return AggregateBy(sessions, func(c sessiondomain.ClimbAttempt) sessiondomain.Style { return c.Style })
}

// percent is round-half-up of sends/total*100 in integer math. total > 0.
func percent(sends, total int) int {
	return (200*sends + total) / (2 * total)
}
