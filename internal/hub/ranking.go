package hub

import (
	"math"
	"sort"
)

// Rank orders students for the "who is closest to speaking" view. When
// anyone is flagged speaking only speakers are ranked; otherwise the
// whole set is ranked by ambient level. Sort is stable so ties keep
// input order.
func Rank(students []StudentInfo) []RankEntry {
	if len(students) == 0 {
		return []RankEntry{}
	}

	pool := make([]StudentInfo, 0, len(students))
	for _, s := range students {
		if s.Speaking {
			pool = append(pool, s)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, students...)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].LevelDB > pool[j].LevelDB
	})

	order := make([]RankEntry, 0, len(pool))
	for _, s := range pool {
		order = append(order, RankEntry{
			StudentID: s.StudentID,
			DB:        roundDB(s.LevelDB),
		})
	}
	return order
}

func roundDB(v float64) float64 {
	return math.Round(v*10) / 10
}
