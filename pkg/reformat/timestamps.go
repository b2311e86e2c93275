package reformat

import (
	"sort"
	"time"
)

// TimestampLayout renders synthesized timestamps, e.g. "01.01.25 09:00".
const TimestampLayout = "02.01.06 15:04"

// baseTimestamp anchors week 1. The raw transcripts carry no clock
// times, so timestamps are synthesized from week and turn order.
var baseTimestamp = time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)

// AdjustTimestamps assigns a synthetic timestamp to every turn: within
// each (case, week) group, turns sorted by transcript index start at
// the week's base time (7 days per week beyond the first) and step by
// 10 minutes. Turns are modified in place.
func AdjustTimestamps(turns []DialogTurn) {
	type key struct {
		caseID string
		week   int
	}
	groups := make(map[key][]*DialogTurn)
	for i := range turns {
		k := key{turns[i].CaseID, turns[i].Week}
		groups[k] = append(groups[k], &turns[i])
	}

	for k, group := range groups {
		sort.SliceStable(group, func(a, b int) bool {
			return group[a].Index < group[b].Index
		})

		base := baseTimestamp
		if k.week > 1 {
			base = base.AddDate(0, 0, (k.week-1)*7)
		}
		for i, turn := range group {
			turn.Timestamp = base.Add(time.Duration(i) * 10 * time.Minute)
		}
	}
}
