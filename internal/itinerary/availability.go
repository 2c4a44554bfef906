package itinerary

import (
	"sort"
	"strings"
	"time"

	"itinera/pkg/utils"
)

// SlotOption is one candidate time slot on the target date.
type SlotOption struct {
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	Selectable    bool     `json:"selectable"`
	BlockedBy     *ItemKey `json:"blocked_by,omitempty"`
	BlockedByName string   `json:"blocked_by_name,omitempty"`
}

// SlotMatch separates "catalog not loaded" (Loaded false) from "loaded, but
// nothing offered on that weekday" (Loaded true, Offered false).
type SlotMatch struct {
	Loaded  bool         `json:"loaded"`
	Offered bool         `json:"offered"`
	Weekday string       `json:"weekday"`
	Date    string       `json:"date"`
	Slots   []SlotOption `json:"slots"`
}

// MatchAvailability resolves the weekday of date, picks that weekday's slots
// from catalog, sorts them by start time and marks each one selectable or
// blocked against dayItems. loaded is false when the catalog was never
// fetched. exclude, when set, is the item being edited and never blocks its
// own slot.
func MatchAvailability(date time.Time, catalog []AvailabilityDay, loaded bool, dayItems []Item, exclude *ItemKey) SlotMatch {
	weekday := date.Weekday().String()
	m := SlotMatch{
		Loaded:  loaded,
		Weekday: weekday,
		Date:    utils.FormatDate(date),
		Slots:   []SlotOption{},
	}
	if !loaded {
		return m
	}

	var day *AvailabilityDay
	for i := range catalog {
		if strings.EqualFold(strings.TrimSpace(catalog[i].DayOfWeek), weekday) {
			day = &catalog[i]
			break
		}
	}
	if day == nil {
		return m
	}

	for _, slot := range sortSlots(day.TimeSlots) {
		r, err := NewRange(slot.StartTime, slot.EndTime)
		if err != nil {
			continue
		}
		opt := SlotOption{StartTime: slot.StartTime, EndTime: slot.EndTime, Selectable: true}
		if blocking, ok := FindConflictExcluding(r, dayItems, exclude); ok {
			key := blocking.Key()
			opt.Selectable = false
			opt.BlockedBy = &key
			opt.BlockedByName = blocking.DisplayName()
		}
		m.Slots = append(m.Slots, opt)
	}
	m.Offered = len(m.Slots) > 0
	return m
}

// sortSlots normalizes slot times to "HH:MM", drops malformed slots and
// stable-sorts by start time.
func sortSlots(slots []TimeSlot) []TimeSlot {
	out := make([]TimeSlot, 0, len(slots))
	for _, s := range slots {
		start, err := utils.NormalizeClock(s.StartTime)
		if err != nil {
			continue
		}
		end, err := utils.NormalizeClock(s.EndTime)
		if err != nil {
			continue
		}
		out = append(out, TimeSlot{StartTime: start, EndTime: end})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := utils.ToMinutes(out[i].StartTime)
		b, _ := utils.ToMinutes(out[j].StartTime)
		return a < b
	})
	return out
}

// SelectSlot turns a chosen slot into an item on the draft. With editing nil
// the item is added; otherwise the edited item is moved onto the slot. The
// draft re-validates either way.
func SelectSlot(d Draft, template Item, slot TimeSlot, editing *ItemKey) (Draft, Item, error) {
	start, err := utils.NormalizeClock(slot.StartTime)
	if err != nil {
		return d, Item{}, reject(err, nil)
	}
	end, err := utils.NormalizeClock(slot.EndTime)
	if err != nil {
		return d, Item{}, reject(err, nil)
	}

	item := template
	item.StartTime = start
	item.EndTime = end

	if editing == nil {
		next, err := d.Add(item)
		return next, item, err
	}
	next, err := d.Reschedule(*editing, item.DayNumber, start, end)
	if err != nil {
		return d, Item{}, err
	}
	moved, _ := next.Find(ItemKey{ExperienceID: editing.ExperienceID, DayNumber: item.DayNumber, StartTime: start})
	return next, moved, nil
}
