package itinerary

import (
	"errors"
	"testing"
	"time"

	"itinera/pkg/utils"
)

func threeDayDraft(t *testing.T) Draft {
	t.Helper()
	bounds, err := NewTripBounds(
		time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 8, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	d, err := NewDraft(bounds, 1)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	return d
}

func item(exp string, day int, start, end string) Item {
	return Item{
		ExperienceID: exp,
		DayNumber:    day,
		StartTime:    start,
		EndTime:      end,
		Snapshot:     ExperienceSnapshot{Name: "Experience " + exp},
	}
}

func mustAdd(t *testing.T, d Draft, it Item) Draft {
	t.Helper()
	next, err := d.Add(it)
	if err != nil {
		t.Fatalf("add %s: %v", it.Key(), err)
	}
	return next
}

func TestDraftAdd_RejectsConflictNamingBlockingItem(t *testing.T) {
	d := mustAdd(t, threeDayDraft(t), item("7", 1, "09:00", "10:00"))

	next, err := d.Add(item("9", 1, "09:30", "10:30"))
	if !errors.Is(err, utils.ErrTimeConflict) {
		t.Fatalf("expected ErrTimeConflict, got %v", err)
	}
	var rej *Rejection
	if !errors.As(err, &rej) || rej.Blocking == nil {
		t.Fatalf("expected rejection with blocking item, got %#v", err)
	}
	if rej.Blocking.ExperienceID != "7" {
		t.Fatalf("expected blocking experience 7, got %s", rej.Blocking.ExperienceID)
	}
	if next.Len() != 1 {
		t.Fatalf("draft changed after rejection: %d items", next.Len())
	}
}

func TestDraftAdd_AllowsBackToBackAndOtherDays(t *testing.T) {
	d := mustAdd(t, threeDayDraft(t), item("7", 1, "09:00", "10:00"))
	d = mustAdd(t, d, item("8", 1, "10:00", "11:00"))
	d = mustAdd(t, d, item("9", 2, "09:30", "10:30"))
	if d.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", d.Len())
	}
}

func TestDraftAdd_ValidatesInput(t *testing.T) {
	base := threeDayDraft(t)
	cases := []struct {
		name string
		it   Item
		want error
	}{
		{"day zero", item("1", 0, "09:00", "10:00"), utils.ErrDayOutOfRange},
		{"day past end", item("1", 4, "09:00", "10:00"), utils.ErrDayOutOfRange},
		{"zero length", item("1", 1, "09:00", "09:00"), utils.ErrInvalidTimeRange},
		{"inverted", item("1", 1, "10:00", "09:00"), utils.ErrInvalidTimeRange},
		{"malformed", item("1", 1, "9am", "10:00"), utils.ErrMalformedTime},
		{"missing experience", item(" ", 1, "09:00", "10:00"), utils.ErrInvalidInput},
	}
	for _, tc := range cases {
		_, err := base.Add(tc.it)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestDraftAdd_DuplicateIdentity(t *testing.T) {
	d := mustAdd(t, threeDayDraft(t), item("7", 1, "09:00", "10:00"))
	_, err := d.Add(item("7", 1, "09:00:00", "09:30"))
	if !errors.Is(err, utils.ErrDuplicateItem) {
		t.Fatalf("expected ErrDuplicateItem, got %v", err)
	}
}

func TestDraftAdd_PostConditionNoConflictWithRest(t *testing.T) {
	d := threeDayDraft(t)
	for _, it := range []Item{
		item("a", 1, "08:00", "09:00"),
		item("b", 1, "09:00", "10:30"),
		item("c", 1, "13:00", "14:00"),
		item("d", 2, "08:00", "12:00"),
	} {
		d = mustAdd(t, d, it)
	}
	for _, it := range d.Items() {
		r, _ := it.Range()
		key := it.Key()
		if other, found := FindConflictExcluding(r, d.ItemsForDay(it.DayNumber), &key); found {
			t.Fatalf("%s conflicts with %s after add", it.Key(), other.Key())
		}
	}
}

func TestDraftRemove_MissingIsNoOp(t *testing.T) {
	d := mustAdd(t, threeDayDraft(t), item("7", 1, "09:00", "10:00"))
	after := d.Remove(ItemKey{ExperienceID: "99", DayNumber: 1, StartTime: "09:00"})
	if after.Len() != d.Len() || after.Bounds() != d.Bounds() {
		t.Fatalf("draft changed on missing remove")
	}

	after = d.Remove(ItemKey{ExperienceID: "7", DayNumber: 1, StartTime: "9:00"})
	if after.Len() != 0 {
		t.Fatalf("expected item removed, %d left", after.Len())
	}
	if d.Len() != 1 {
		t.Fatalf("original draft mutated")
	}
}

func TestDraftReschedule(t *testing.T) {
	d := mustAdd(t, threeDayDraft(t), item("7", 1, "09:00", "10:00"))
	d = mustAdd(t, d, item("8", 1, "11:00", "12:00"))
	key := ItemKey{ExperienceID: "7", DayNumber: 1, StartTime: "09:00"}

	// Overlapping its own old slot is fine.
	moved, err := d.Reschedule(key, 1, "09:30", "10:30")
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if _, ok := moved.Find(ItemKey{ExperienceID: "7", DayNumber: 1, StartTime: "09:30"}); !ok {
		t.Fatalf("rescheduled item not found")
	}

	_, err = d.Reschedule(key, 1, "10:30", "11:30")
	var rej *Rejection
	if !errors.As(err, &rej) || !errors.Is(err, utils.ErrTimeConflict) || rej.Blocking.ExperienceID != "8" {
		t.Fatalf("expected conflict with 8, got %v", err)
	}

	if _, err := d.Reschedule(key, 3, "10:30", "11:30"); err != nil {
		t.Fatalf("move to day 3: %v", err)
	}

	_, err = d.Reschedule(ItemKey{ExperienceID: "x", DayNumber: 1, StartTime: "09:00"}, 1, "13:00", "14:00")
	if !errors.Is(err, utils.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestDraftSetBounds_OrphansBlockFinalization(t *testing.T) {
	d := mustAdd(t, threeDayDraft(t), item("7", 3, "09:00", "10:00"))
	if err := d.Finalizable(); err != nil {
		t.Fatalf("expected finalizable, got %v", err)
	}

	b := d.Bounds()
	shrunk, err := d.SetBounds(TripBounds{StartDate: b.StartDate, EndDate: b.StartDate.AddDate(0, 0, 1)})
	if err != nil {
		t.Fatalf("set bounds: %v", err)
	}
	if shrunk.Len() != 1 || len(shrunk.Orphans()) != 1 {
		t.Fatalf("expected orphan retained, items=%d orphans=%d", shrunk.Len(), len(shrunk.Orphans()))
	}
	if err := shrunk.Finalizable(); !errors.Is(err, utils.ErrOrphanedItems) {
		t.Fatalf("expected ErrOrphanedItems, got %v", err)
	}

	if _, err := d.SetBounds(TripBounds{StartDate: b.EndDate, EndDate: b.StartDate}); !errors.Is(err, utils.ErrInvalidBounds) {
		t.Fatalf("expected ErrInvalidBounds, got %v", err)
	}
}

func TestDraftFinalizable_Empty(t *testing.T) {
	if err := threeDayDraft(t).Finalizable(); !errors.Is(err, utils.ErrEmptyDraft) {
		t.Fatalf("expected ErrEmptyDraft, got %v", err)
	}
}

func TestDraftConflictsFor(t *testing.T) {
	d := mustAdd(t, threeDayDraft(t), item("7", 1, "09:00", "10:00"))
	d = mustAdd(t, d, item("8", 1, "10:00", "11:00"))

	r, _ := NewRange("09:30", "10:30")
	if got := d.ConflictsFor(r, 1, nil); len(got) != 2 {
		t.Fatalf("expected 2 conflicts, got %d", len(got))
	}
	if got := d.ConflictsFor(r, 2, nil); len(got) != 0 {
		t.Fatalf("expected no conflicts on day 2, got %d", len(got))
	}
	exclude := ItemKey{ExperienceID: "7", DayNumber: 1, StartTime: "09:00"}
	if got := d.ConflictsFor(r, 1, &exclude); len(got) != 1 || got[0].ExperienceID != "8" {
		t.Fatalf("expected only 8 when excluding 7, got %+v", got)
	}
}

func TestDraftDaySummaries_EmptyDays(t *testing.T) {
	d := mustAdd(t, threeDayDraft(t), item("7", 2, "09:00", "10:00"))
	d = mustAdd(t, d, item("8", 2, "13:00", "14:30"))

	sums := d.DaySummaries()
	if len(sums) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(sums))
	}
	if !sums[0].IsEmpty || !sums[2].IsEmpty {
		t.Fatalf("expected days 1 and 3 empty: %+v", sums)
	}
	if sums[1].IsEmpty || sums[1].ItemCount != 2 || sums[1].OccupiedMinutes != 150 {
		t.Fatalf("unexpected day 2 summary: %+v", sums[1])
	}
	want := time.Date(2026, 5, 7, 0, 0, 0, 0, time.UTC)
	if !sums[1].Date.Equal(want) {
		t.Fatalf("expected day 2 date %s, got %s", want, sums[1].Date)
	}
}

func TestRejection_Messages(t *testing.T) {
	d := threeDayDraft(t)
	d = mustAdd(t, d, item("7", 1, "09:00", "11:00"))
	d = mustAdd(t, d, item("9", 3, "09:00", "10:00"))

	_, err := d.Add(item("8", 1, "10:00", "12:00"))
	if err == nil || err.Error() != "conflicts with Experience 7 (09:00-11:00)" {
		t.Fatalf("unexpected conflict message %v", err)
	}

	shrunk, _ := NewTripBounds(
		time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 7, 0, 0, 0, 0, time.UTC),
	)
	d, err = d.SetBounds(shrunk)
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	err = d.Finalizable()
	if !errors.Is(err, utils.ErrOrphanedItems) {
		t.Fatalf("expected ErrOrphanedItems, got %v", err)
	}
	if want := utils.ErrOrphanedItems.Error() + ": Experience 9 on day 3"; err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
