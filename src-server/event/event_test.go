package event_test

import (
	"testing"
	"towcal/src-server/event"

	"cloud.google.com/go/civil"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan10 = civil.Date{Year: 2024, Month: 1, Day: 10}

func at(d civil.Date, hour, minute, second int) civil.DateTime {
	return civil.DateTime{Date: d, Time: civil.Time{Hour: hour, Minute: minute, Second: second}}
}

func TestNew(t *testing.T) {
	e := event.New("Standup", jan10)
	assert.Equal(t, at(jan10, 0, 0, 0), e.Start())
	assert.Equal(t, at(jan10, 23, 59, 59), e.End())
	assert.Equal(t, "Standup", e.Name())
	assert.NotEqual(t, uuid.Nil, e.ID())

	other := event.New("Standup", jan10)
	assert.NotEqual(t, e.ID(), other.ID(), "every event gets its own id")
}

func TestSetStartTime(t *testing.T) {
	e := event.New("Standup", jan10)

	e, err := e.SetStartTime(civil.Time{Hour: 9})
	require.NoError(t, err)
	assert.Equal(t, at(jan10, 9, 0, 0), e.Start())

	// zero length span
	failed, err := e.SetStartTime(civil.Time{Hour: 23, Minute: 59, Second: 59})
	require.ErrorIs(t, err, event.ErrInvalidStartTime)
	assert.Equal(t, at(jan10, 9, 0, 0), failed.Start(), "failed setter keeps the old start")
	assert.Equal(t, at(jan10, 9, 0, 0), e.Start())
}

func TestSetStartAndEndRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		start civil.DateTime
		end   civil.DateTime
	}{
		{"same day", at(jan10, 8, 0, 0), at(jan10, 17, 30, 0)},
		{"one second", at(jan10, 12, 0, 0), at(jan10, 12, 0, 1)},
		{"multi day", at(jan10, 22, 0, 0), at(jan10.AddDays(3), 2, 0, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := event.New("Trip", jan10)
			// widen first so the start setter never trips over the old end
			e, err := e.SetEnd(at(jan10.AddDays(10), 0, 0, 0))
			require.NoError(t, err)
			e, err = e.SetStart(tc.start)
			require.NoError(t, err)
			e, err = e.SetEnd(tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.start, e.Start())
			assert.Equal(t, tc.end, e.End())
		})
	}
}

func TestInvalidSpans(t *testing.T) {
	base := event.New("Review", jan10)

	cases := []struct {
		name  string
		start civil.DateTime
	}{
		{"equal", at(jan10, 23, 59, 59)},
		{"after end", at(jan10.AddDays(1), 0, 0, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := base.SetStart(tc.start)
			assert.ErrorIs(t, err, event.ErrInvalidStartTime)
		})
	}

	_, err := base.SetEnd(base.Start())
	assert.ErrorIs(t, err, event.ErrInvalidEndTime)
	_, err = base.SetEnd(at(jan10.AddDays(-1), 12, 0, 0))
	assert.ErrorIs(t, err, event.ErrInvalidEndTime)

	// less than a whole second is not a positive duration
	subSecond := civil.DateTime{Date: jan10, Time: civil.Time{Nanosecond: 500_000_000}}
	_, err = base.SetEnd(subSecond)
	assert.ErrorIs(t, err, event.ErrInvalidEndTime)
}

func TestDateAndTimeSetters(t *testing.T) {
	e := event.New("Offsite", jan10)

	e, err := e.SetEndDate(jan10.AddDays(2))
	require.NoError(t, err)
	assert.Equal(t, at(jan10.AddDays(2), 23, 59, 59), e.End())

	e, err = e.SetStartDate(jan10.AddDays(1))
	require.NoError(t, err)
	assert.Equal(t, at(jan10.AddDays(1), 0, 0, 0), e.Start())

	e, err = e.SetEndTime(civil.Time{Hour: 12})
	require.NoError(t, err)
	assert.Equal(t, at(jan10.AddDays(2), 12, 0, 0), e.End())

	_, err = e.SetStartDate(jan10.AddDays(3))
	assert.ErrorIs(t, err, event.ErrInvalidStartTime)
	_, err = e.SetEndDate(jan10)
	assert.ErrorIs(t, err, event.ErrInvalidEndTime)
	_, err = e.SetEndTime(civil.Time{Hour: 0})
	assert.NoError(t, err, "end date is still after the start date")
}

func TestSetterKeepsID(t *testing.T) {
	e := event.New("Standup", jan10)
	moved, err := e.SetStartTime(civil.Time{Hour: 10})
	require.NoError(t, err)
	assert.Equal(t, e.ID(), moved.ID())
	assert.Equal(t, e.Name(), moved.Name())
}

func TestSetName(t *testing.T) {
	e := event.New("Standup", jan10)
	e.SetName("Daily")
	e.SetName("Daily")
	assert.Equal(t, "Daily", e.Name())
}

func TestCompare(t *testing.T) {
	early := event.New("b", jan10)
	late, err := event.New("a", jan10).SetStartTime(civil.Time{Hour: 1})
	require.NoError(t, err)
	assert.Equal(t, -1, event.Compare(early, late), "start wins over name")
	assert.Equal(t, 1, event.Compare(late, early))

	shortEnd, err := event.New("z", jan10).SetEndTime(civil.Time{Hour: 12})
	require.NoError(t, err)
	assert.Equal(t, -1, event.Compare(shortEnd, early), "end breaks start ties")

	a := event.New("a", jan10)
	b := event.New("b", jan10)
	assert.Equal(t, -1, event.Compare(a, b), "name breaks span ties")

	idA, idB := uuid.MustParse("00000000-0000-4000-8000-000000000001"), uuid.MustParse("00000000-0000-4000-8000-000000000002")
	x, err := event.Load(idA, "same", at(jan10, 9, 0, 0), at(jan10, 10, 0, 0))
	require.NoError(t, err)
	y, err := event.Load(idB, "same", at(jan10, 9, 0, 0), at(jan10, 10, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, -1, event.Compare(x, y), "id breaks the remaining ties")
	assert.Equal(t, 0, event.Compare(x, x))
	assert.True(t, event.Equal(x, x))
	assert.False(t, event.Equal(x, y))
}

func TestLoad(t *testing.T) {
	id := uuid.New()
	e, err := event.Load(id, "Stored", at(jan10, 9, 0, 0), at(jan10, 9, 30, 0))
	require.NoError(t, err)
	assert.Equal(t, id, e.ID())
	assert.Equal(t, "Stored", e.Name())

	_, err = event.Load(id, "Broken", at(jan10, 9, 0, 0), at(jan10, 9, 0, 0))
	assert.ErrorIs(t, err, event.ErrInvalidEndTime)
}

func TestSerialize(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	e, err := event.Load(id, "Standup", at(jan10, 9, 0, 0), at(jan10, 9, 15, 0))
	require.NoError(t, err)

	assert.Equal(t,
		`{"start":"2024-01-10T09:00:00","end":"2024-01-10T09:15:00","name":"Standup","id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8"}`,
		e.Serialize(),
	)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(e.Serialize()), &decoded))
	assert.Len(t, decoded, 4)
}
