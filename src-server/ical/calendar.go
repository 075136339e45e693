// The `ical` package turns calendar events into iCalendar files and back.
//
// # References:
// - RFC5545: https://datatracker.ietf.org/doc/html/rfc5545
//
// # Notes:
//   - Only UID, SUMMARY, DTSTART and DTEND are read and written.
//   - Event times carry no zone. They are pinned to the given location when
//     exporting and read back in that location when importing.
//   - A UID that isn't a UUID is mapped to a name-based (SHA-1) UUID so the
//     same UID always lands on the same event.
//
// # Example usage:
//
//	output := ical.Export("towcal", cal.All(), time.UTC)
//	events, err := ical.Import(strings.NewReader(output), time.UTC)
package ical

import (
	"io"
	"iter"
	"log/slog"
	"time"
	"towcal/src-server/event"

	"cloud.google.com/go/civil"
	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const prodID = "-//towcal//towcal calendar//EN"

// Marshal events into an iCalendar string.
func Export(name string, events iter.Seq[*event.Event], loc *time.Location) string {
	cal := ics.NewCalendar()
	cal.SetProductId(prodID)
	cal.SetMethod(ics.MethodPublish)
	if name != "" {
		cal.SetXWRCalName(name)
	}

	stamp := time.Now().UTC()
	for e := range events {
		vevent := cal.AddEvent(e.ID().String())
		vevent.SetDtStampTime(stamp)
		vevent.SetSummary(e.Name())
		vevent.SetStartAt(e.Start().In(loc))
		vevent.SetEndAt(e.End().In(loc))
	}

	return cal.Serialize()
}

// Unmarshal every VEVENT of an iCalendar stream into events. VEVENTs that
// can't become a valid event are skipped.
func Import(r io.Reader, loc *time.Location) ([]event.Event, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, NewCustomError("can't parse iCalendar", map[string]any{
			"err": err,
		})
	}

	events := make([]event.Event, 0)
	for _, vevent := range cal.Events() {
		e, err := fromVEvent(vevent, loc)
		if err != nil {
			slog.Warn("skipping vevent", "where", "ical.Import", "uid", vevent.Id(), "error", err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func fromVEvent(vevent *ics.VEvent, loc *time.Location) (event.Event, error) {
	uid := vevent.Id()
	if uid == "" {
		return event.Event{}, NewCustomError("missing UID", nil)
	}
	id, err := uuid.Parse(uid)
	if err != nil {
		id = uuid.NewSHA1(uuid.NameSpaceURL, []byte(uid))
	}

	name := ""
	if prop := vevent.GetProperty(ics.ComponentPropertySummary); prop != nil {
		name = prop.Value
	}

	startAt, err := vevent.GetStartAt()
	if err != nil {
		return event.Event{}, NewCustomError("can't read DTSTART", map[string]any{
			"uid": uid,
			"err": err,
		})
	}
	start := civil.DateTimeOf(startAt.In(loc))

	// no DTEND: the event runs until the end of its start day
	end := civil.DateTime{Date: start.Date, Time: civil.Time{Hour: 23, Minute: 59, Second: 59}}
	if endAt, err := vevent.GetEndAt(); err == nil {
		end = civil.DateTimeOf(endAt.In(loc))
	}

	result, err := event.Load(id, name, start, end)
	if err != nil {
		return event.Event{}, NewCustomError("invalid event span", map[string]any{
			"uid":   uid,
			"start": start,
			"end":   end,
			"err":   err,
		})
	}
	return result, nil
}
