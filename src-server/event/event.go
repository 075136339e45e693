package event

import (
	"bytes"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// fields are declared in comparison order, see Compare
type Event struct {
	start civil.DateTime
	end   civil.DateTime
	name  string
	id    uuid.UUID
}

var (
	dayStart = civil.Time{Hour: 0, Minute: 0, Second: 0}
	dayEnd   = civil.Time{Hour: 23, Minute: 59, Second: 59}
)

// Create a full-day event on the given date, from 00:00:00 to 23:59:59,
// with a freshly generated ID.
func New(name string, date civil.Date) Event {
	return Event{
		start: civil.DateTime{Date: date, Time: dayStart},
		end:   civil.DateTime{Date: date, Time: dayEnd},
		name:  name,
		id:    uuid.New(),
	}
}

// Rebuild an event that already has an ID, e.g. one read back from storage.
func Load(id uuid.UUID, name string, start, end civil.DateTime) (Event, error) {
	if !spanValid(start, end) {
		return Event{}, ErrInvalidEndTime
	}
	return Event{
		start: start,
		end:   end,
		name:  name,
		id:    id,
	}, nil
}

// end must be at least one whole second after start, sub-second leftovers
// are truncated
func spanValid(start, end civil.DateTime) bool {
	diff := end.In(time.UTC).Sub(start.In(time.UTC))
	return int64(diff/time.Second) > 0
}

// #region Getters

// Get the event start date-time
func (e Event) Start() civil.DateTime {
	return e.start
}

// Get the event end date-time
func (e Event) End() civil.DateTime {
	return e.end
}

// Get the event name
func (e Event) Name() string {
	return e.name
}

// Get the event ID
func (e Event) ID() uuid.UUID {
	return e.id
}

// #endregion

// #region Setters

// Replace the start date-time.
func (e Event) SetStart(start civil.DateTime) (Event, error) {
	if !spanValid(start, e.end) {
		return e, ErrInvalidStartTime
	}
	e.start = start
	return e, nil
}

// Replace the time of day of the start, keeping its date.
func (e Event) SetStartTime(t civil.Time) (Event, error) {
	return e.SetStart(civil.DateTime{Date: e.start.Date, Time: t})
}

// Replace the date of the start, keeping its time of day.
func (e Event) SetStartDate(d civil.Date) (Event, error) {
	return e.SetStart(civil.DateTime{Date: d, Time: e.start.Time})
}

// Replace the end date-time.
func (e Event) SetEnd(end civil.DateTime) (Event, error) {
	if !spanValid(e.start, end) {
		return e, ErrInvalidEndTime
	}
	e.end = end
	return e, nil
}

// Replace the time of day of the end, keeping its date.
func (e Event) SetEndTime(t civil.Time) (Event, error) {
	return e.SetEnd(civil.DateTime{Date: e.end.Date, Time: t})
}

// Replace the date of the end, keeping its time of day.
func (e Event) SetEndDate(d civil.Date) (Event, error) {
	return e.SetEnd(civil.DateTime{Date: d, Time: e.end.Time})
}

// Rename the event in place.
func (e *Event) SetName(name string) {
	e.name = name
}

// #endregion

// Order two events by start, then end, then name, then ID. Returns -1, 0
// or +1.
func Compare(a, b Event) int {
	if c := compareDateTime(a.start, b.start); c != 0 {
		return c
	}
	if c := compareDateTime(a.end, b.end); c != 0 {
		return c
	}
	switch {
	case a.name < b.name:
		return -1
	case a.name > b.name:
		return 1
	}
	return bytes.Compare(a.id[:], b.id[:])
}

// Report whether all four fields of a and b are equal.
func Equal(a, b Event) bool {
	return a.start == b.start && a.end == b.end && a.name == b.name && a.id == b.id
}

func compareDateTime(a, b civil.DateTime) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

type serialized struct {
	Start civil.DateTime `json:"start"`
	End   civil.DateTime `json:"end"`
	Name  string         `json:"name"`
	ID    uuid.UUID      `json:"id"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(serialized{
		Start: e.start,
		End:   e.end,
		Name:  e.name,
		ID:    e.id,
	})
}

// Encode the event as a JSON object with the keys start, end, name and id.
//
// Every field is always encodable, a failure here is a bug and panics.
func (e Event) Serialize() string {
	data, err := json.Marshal(e)
	if err != nil {
		panic(fmt.Sprintf("(Event).Serialize: %v", err))
	}
	return string(data)
}

func (e Event) String() string {
	return fmt.Sprintf("%s [%s, %s] %s", e.name, e.start, e.end, e.id)
}
