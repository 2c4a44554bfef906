package itinerary

import (
	"errors"
	"fmt"

	"itinera/pkg/utils"
)

// Rejection is returned by every refused draft transition. Reason is one of the
// utils sentinels; Blocking is set when another item caused the refusal.
type Rejection struct {
	Reason   error
	Blocking *Item
}

func (r *Rejection) Error() string {
	switch {
	case r.Blocking == nil:
		return r.Reason.Error()
	case errors.Is(r.Reason, utils.ErrTimeConflict):
		return fmt.Sprintf("conflicts with %s (%s-%s)", r.Blocking.DisplayName(), r.Blocking.StartTime, r.Blocking.EndTime)
	default:
		return fmt.Sprintf("%s: %s on day %d", r.Reason, r.Blocking.DisplayName(), r.Blocking.DayNumber)
	}
}

func (r *Rejection) Unwrap() error { return r.Reason }

func reject(reason error, blocking *Item) *Rejection {
	return &Rejection{Reason: reason, Blocking: blocking}
}

func conflictWith(it Item) *Rejection {
	return reject(utils.ErrTimeConflict, &it)
}
