package itinerary

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Back-to-back ranges do not overlap, so consecutive bookings are allowed.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

func (r Range) Overlaps(o Range) bool {
	return Overlaps(r.Start, r.End, o.Start, o.End)
}

// FindConflict returns the first item, in collection order, whose range
// overlaps candidate. Items with unparseable times are skipped.
func FindConflict(candidate Range, items []Item) (Item, bool) {
	for _, it := range items {
		r, err := it.Range()
		if err != nil {
			continue
		}
		if candidate.Overlaps(r) {
			return it, true
		}
	}
	return Item{}, false
}

// FindConflictExcluding is FindConflict ignoring the item identified by exclude,
// used when an existing item is being edited.
func FindConflictExcluding(candidate Range, items []Item, exclude *ItemKey) (Item, bool) {
	if exclude == nil {
		return FindConflict(candidate, items)
	}
	others := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Key() != *exclude {
			others = append(others, it)
		}
	}
	return FindConflict(candidate, others)
}
