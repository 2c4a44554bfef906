package itinerary

import (
	"strings"

	"itinera/pkg/utils"
)

// Draft is the itinerary being assembled. It is a value: every transition
// returns a new Draft and leaves the receiver untouched, so a rejected
// transition can never leave a half-applied state behind.
//
// Invariants checked at every transition: each item's day is inside the trip
// and no two items on the same day overlap. Shrinking the bounds is the one
// transition allowed to break the first rule; such items are reported by
// Orphans and block Finalizable.
type Draft struct {
	bounds    TripBounds
	travelers int
	items     []Item
}

func NewDraft(bounds TripBounds, travelers int) (Draft, error) {
	if bounds.EndDate.Before(bounds.StartDate) {
		return Draft{}, reject(utils.ErrInvalidBounds, nil)
	}
	if travelers < 1 {
		travelers = 1
	}
	return Draft{bounds: bounds, travelers: travelers}, nil
}

func (d Draft) Bounds() TripBounds { return d.bounds }
func (d Draft) Travelers() int     { return d.travelers }
func (d Draft) TotalDays() int     { return d.bounds.TotalDays() }
func (d Draft) Len() int           { return len(d.items) }

// Items returns a copy in insertion order.
func (d Draft) Items() []Item {
	out := make([]Item, len(d.items))
	copy(out, d.items)
	return out
}

func (d Draft) Find(key ItemKey) (Item, bool) {
	for _, it := range d.items {
		if it.Key() == key {
			return it, true
		}
	}
	return Item{}, false
}

// Add validates item and appends it.
func (d Draft) Add(item Item) (Draft, error) {
	item, err := d.admit(item, d.items)
	if err != nil {
		return d, err
	}
	if _, exists := d.Find(item.Key()); exists {
		return d, reject(utils.ErrDuplicateItem, nil)
	}

	next := d.clone()
	next.items = append(next.items, item)
	return next, nil
}

// Remove drops the item with key. Removing a missing item is a no-op.
func (d Draft) Remove(key ItemKey) Draft {
	key = canonicalKey(key)
	if _, ok := d.Find(key); !ok {
		return d
	}
	next := d.clone()
	next.items = next.items[:0]
	for _, it := range d.items {
		if it.Key() != key {
			next.items = append(next.items, it)
		}
	}
	return next
}

// Reschedule moves the item identified by key to a new day and time. The
// conflict check runs against every other item, never against the item itself.
func (d Draft) Reschedule(key ItemKey, dayNumber int, start, end string) (Draft, error) {
	key = canonicalKey(key)
	current, ok := d.Find(key)
	if !ok {
		return d, reject(utils.ErrItemNotFound, nil)
	}

	others := d.Remove(key)
	moved := current
	moved.DayNumber = dayNumber
	moved.StartTime = start
	moved.EndTime = end

	moved, err := others.admit(moved, others.items)
	if err != nil {
		return d, err
	}
	if _, exists := others.Find(moved.Key()); exists {
		return d, reject(utils.ErrDuplicateItem, nil)
	}

	next := d.clone()
	for i, it := range next.items {
		if it.Key() == key {
			next.items[i] = moved
			break
		}
	}
	return next, nil
}

// SetBounds replaces the trip dates. Items that fall outside the new range are
// kept and reported by Orphans.
func (d Draft) SetBounds(bounds TripBounds) (Draft, error) {
	if bounds.EndDate.Before(bounds.StartDate) {
		return d, reject(utils.ErrInvalidBounds, nil)
	}
	next := d.clone()
	next.bounds = bounds
	return next, nil
}

func (d Draft) SetTravelers(n int) (Draft, error) {
	if n < 1 {
		return d, reject(utils.ErrInvalidInput, nil)
	}
	next := d.clone()
	next.travelers = n
	return next, nil
}

// ItemsForDay returns the items of one day ordered by start time.
func (d Draft) ItemsForDay(dayNumber int) []Item {
	return sortByStart(d.dayItems(dayNumber))
}

func (d Draft) DaySummaries() []DaySummary {
	return DaySummaries(d.bounds, d.items)
}

// ConflictsFor lists every item on dayNumber that overlaps candidate.
func (d Draft) ConflictsFor(candidate Range, dayNumber int, exclude *ItemKey) []Item {
	var out []Item
	for _, it := range d.dayItems(dayNumber) {
		if exclude != nil && it.Key() == *exclude {
			continue
		}
		if r, err := it.Range(); err == nil && candidate.Overlaps(r) {
			out = append(out, it)
		}
	}
	return out
}

func (d Draft) BudgetEstimate() Budget {
	return EstimateBudget(d.items, d.travelers)
}

// Orphans are items whose day no longer exists after the bounds shrank.
func (d Draft) Orphans() []Item {
	var out []Item
	for _, it := range d.items {
		if !d.bounds.Contains(it.DayNumber) {
			out = append(out, it)
		}
	}
	return out
}

// Finalizable reports whether the draft can be handed to persistence.
func (d Draft) Finalizable() error {
	if len(d.items) == 0 {
		return reject(utils.ErrEmptyDraft, nil)
	}
	if orphans := d.Orphans(); len(orphans) > 0 {
		return reject(utils.ErrOrphanedItems, &orphans[0])
	}
	return nil
}

func (d Draft) admit(item Item, existing []Item) (Item, error) {
	item.ExperienceID = strings.TrimSpace(item.ExperienceID)
	if item.ExperienceID == "" {
		return item, reject(utils.ErrInvalidInput, nil)
	}

	start, err := utils.NormalizeClock(item.StartTime)
	if err != nil {
		return item, reject(err, nil)
	}
	end, err := utils.NormalizeClock(item.EndTime)
	if err != nil {
		return item, reject(err, nil)
	}
	item.StartTime, item.EndTime = start, end

	r, err := item.Range()
	if err != nil {
		return item, reject(err, nil)
	}
	if !d.bounds.Contains(item.DayNumber) {
		return item, reject(utils.ErrDayOutOfRange, nil)
	}

	sameDay := make([]Item, 0, len(existing))
	for _, it := range existing {
		if it.DayNumber == item.DayNumber {
			sameDay = append(sameDay, it)
		}
	}
	if blocking, found := FindConflict(r, sameDay); found {
		if blocking.Key() == item.Key() {
			return item, reject(utils.ErrDuplicateItem, nil)
		}
		return item, conflictWith(blocking)
	}
	return item, nil
}

func (d Draft) dayItems(dayNumber int) []Item {
	var out []Item
	for _, it := range d.items {
		if it.DayNumber == dayNumber {
			out = append(out, it)
		}
	}
	return out
}

func (d Draft) clone() Draft {
	next := d
	next.items = make([]Item, len(d.items), len(d.items)+1)
	copy(next.items, d.items)
	return next
}

func canonicalKey(k ItemKey) ItemKey {
	if start, err := utils.NormalizeClock(k.StartTime); err == nil {
		k.StartTime = start
	}
	k.ExperienceID = strings.TrimSpace(k.ExperienceID)
	return k
}
