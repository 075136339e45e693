// Package `event` contains the `Event` struct, a single named entry on the
// calendar with a validated time span.
//
// An `Event` always ends strictly after it starts (at least one whole second
// later). The start/end setters take the event by value and hand back either
// the updated copy or an error, the original is never touched:
//
//	standup := event.New("Standup", civil.Date{Year: 2024, Month: 1, Day: 10})
//	standup, err := standup.SetStartTime(civil.Time{Hour: 9})
//	if err != nil {
//	    // standup still holds the full-day event
//	}
//
// Only the name is mutable in place, through `SetName`. The ID is assigned
// once by `New` and never changes.
//
// Events are totally ordered by (start, end, name, id), see `Compare`.

package event
