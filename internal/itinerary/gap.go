package itinerary

import (
	"fmt"
	"sort"

	"itinera/pkg/utils"
)

type GapKind string

const (
	GapOverlap    GapKind = "overlap"
	GapBackToBack GapKind = "back_to_back"
	GapTight      GapKind = "tight"
	GapNormal     GapKind = "normal"
	GapExcessive  GapKind = "excessive"
)

// GapPolicy holds the display thresholds for idle time between activities.
type GapPolicy struct {
	TightMinutes     int
	ExcessiveMinutes int
}

func DefaultGapPolicy() GapPolicy {
	return GapPolicy{TightMinutes: 15, ExcessiveMinutes: 180}
}

type Gap struct {
	Kind    GapKind `json:"kind"`
	Minutes int     `json:"minutes"`
	Message string  `json:"message"`
	Warning bool    `json:"warning"`
	After   ItemKey `json:"after"`
	Before  ItemKey `json:"before"`
}

// Classify compares the end of one item with the start of the next one.
func (p GapPolicy) Classify(prevEnd, nextStart string) (Gap, error) {
	minutes, err := utils.DurationMinutes(prevEnd, nextStart)
	if err != nil {
		return Gap{}, err
	}
	return p.classifyMinutes(minutes), nil
}

func (p GapPolicy) classifyMinutes(minutes int) Gap {
	g := Gap{Minutes: minutes}
	switch {
	case minutes < 0:
		g.Kind = GapOverlap
		g.Warning = true
		g.Message = fmt.Sprintf("Overlaps the previous activity by %s", utils.FormatDuration(-minutes))
	case minutes == 0:
		g.Kind = GapBackToBack
		g.Message = "Back-to-back"
	case minutes < p.TightMinutes:
		g.Kind = GapTight
		g.Warning = true
		g.Message = fmt.Sprintf("Only %s between activities, travel time may be insufficient", utils.FormatDuration(minutes))
	case minutes > p.ExcessiveMinutes:
		g.Kind = GapExcessive
		g.Message = fmt.Sprintf("%s free, consider adding an activity", utils.FormatDuration(minutes))
	default:
		g.Kind = GapNormal
		g.Message = fmt.Sprintf("%s break", utils.FormatDuration(minutes))
	}
	return g
}

// DayGaps classifies every adjacent pair of items in start-time order.
// Items with malformed times are left out.
func (p GapPolicy) DayGaps(items []Item) []Gap {
	sorted := sortByStart(items)
	gaps := make([]Gap, 0, len(sorted))
	for i := 1; i < len(sorted); i++ {
		g, err := p.Classify(sorted[i-1].EndTime, sorted[i].StartTime)
		if err != nil {
			continue
		}
		g.After = sorted[i-1].Key()
		g.Before = sorted[i].Key()
		gaps = append(gaps, g)
	}
	return gaps
}

// sortByStart returns a copy of the parseable items ordered by start time,
// keeping insertion order for equal starts.
func sortByStart(items []Item) []Item {
	type keyed struct {
		item  Item
		start int
	}
	ks := make([]keyed, 0, len(items))
	for _, it := range items {
		r, err := it.Range()
		if err != nil {
			continue
		}
		ks = append(ks, keyed{item: it, start: r.Start})
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].start < ks[j].start })

	out := make([]Item, len(ks))
	for i, k := range ks {
		out[i] = k.item
	}
	return out
}
