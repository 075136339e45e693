// The `calendar` package holds many events at once, indexed both by ID and
// by chronological order.
//
// # Notes:
//   - Both views share the same *event.Event, an edit made through a pointer
//     returned by Get is visible when iterating and the other way around.
//   - The chronological index stores a snapshot of (start, end, name, id) per
//     event. Use Rename rather than (*event.Event).SetName on a stored event
//     if the new name should also move the event in the order.
//   - The calendar does no locking. Guard it externally when it is shared
//     between goroutines.
package calendar

import (
	"iter"
	"towcal/src-server/event"

	"cloud.google.com/go/civil"
	"github.com/google/btree"
	"github.com/google/uuid"
)

const btreeDegree = 16

type entry struct {
	event *event.Event
	// the value this event is currently indexed under
	key event.Event
}

type EventCalendar struct {
	byID  map[uuid.UUID]*entry
	index *btree.BTreeG[event.Event]
}

// Initialize an empty calendar
func New() *EventCalendar {
	return &EventCalendar{
		byID: make(map[uuid.UUID]*entry),
		index: btree.NewG(btreeDegree, func(a, b event.Event) bool {
			return event.Compare(a, b) < 0
		}),
	}
}

// Add an event to the calendar. Returns true if its ID was not in the
// calendar yet, false if it replaced an event with the same ID.
func (c *EventCalendar) AddEvent(e event.Event) bool {
	old, exists := c.byID[e.ID()]
	if exists {
		c.index.Delete(old.key)
	}
	stored := e
	c.byID[e.ID()] = &entry{event: &stored, key: e}
	c.index.ReplaceOrInsert(e)
	return !exists
}

// Iterate, in chronological order, over every event whose start or end lies
// within [start, end]. Events that only straddle the window are left out.
//
// Each range over the returned sequence walks the calendar as it is at that
// moment.
func (c *EventCalendar) EventsInRange(start, end civil.DateTime) iter.Seq[*event.Event] {
	within := func(dt civil.DateTime) bool {
		return !dt.Before(start) && !dt.After(end)
	}
	return func(yield func(*event.Event) bool) {
		c.index.Ascend(func(key event.Event) bool {
			// starts only grow from here on, and the end can't come before them
			if key.Start().After(end) {
				return false
			}
			if !within(key.Start()) && !within(key.End()) {
				return true
			}
			return yield(c.byID[key.ID()].event)
		})
	}
}

// Iterate over every event in chronological order.
func (c *EventCalendar) All() iter.Seq[*event.Event] {
	return func(yield func(*event.Event) bool) {
		c.index.Ascend(func(key event.Event) bool {
			return yield(c.byID[key.ID()].event)
		})
	}
}

// Get the chronologically first event of the calendar.
func (c *EventCalendar) FirstEvent() (*event.Event, bool) {
	key, ok := c.index.Min()
	if !ok {
		return nil, false
	}
	return c.byID[key.ID()].event, true
}

// Get an event by its ID.
func (c *EventCalendar) Get(id uuid.UUID) (*event.Event, bool) {
	e, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return e.event, true
}

// Get an event by the textual form of its ID. An ID that doesn't parse is
// simply not in the calendar.
func (c *EventCalendar) GetString(id string) (*event.Event, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, false
	}
	return c.Get(parsed)
}

// Rename a stored event and move it to its new place in the order.
// Returns false if there's no event with that ID.
func (c *EventCalendar) Rename(id uuid.UUID, name string) bool {
	e, ok := c.byID[id]
	if !ok {
		return false
	}
	c.index.Delete(e.key)
	e.event.SetName(name)
	e.key = *e.event
	c.index.ReplaceOrInsert(e.key)
	return true
}

// Get the number of events in the calendar
func (c *EventCalendar) Len() int {
	return len(c.byID)
}
