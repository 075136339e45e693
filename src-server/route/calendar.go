package route

import (
	"context"
	"log/slog"
	"net/http"
	"time"
	"towcal/src-server/calendar"
	"towcal/src-server/event"
	"towcal/src-server/model"
	"towcal/src-server/utils"

	"cloud.google.com/go/civil"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	respBodyJson, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Can't marshal response body", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(respBodyJson); err != nil {
		slog.Warn("can't write to response", "where", "route/calendar.go", "error", err)
	}
}

// store the event, reporting the write latency
func saveEvent(ctx context.Context, as *utils.AppState, e event.Event) error {
	startTimer := time.Now()
	eventModel := model.FromEvent(e)
	if err := eventModel.Upsert(ctx, as.BunDB); err != nil {
		return err
	}
	as.MetricChans.ReportDatabaseWrite(time.Since(startTimer))
	return nil
}

func Calendar(muxer *http.ServeMux, as *utils.AppState) {
	now := func() time.Time {
		return time.Now().In(as.Config.GetLocation())
	}

	// get all events whose start or end is in the range
	muxer.HandleFunc("GET /events", func(w http.ResponseWriter, r *http.Request) {
		// #region - parse date
		query := r.URL.Query()
		if query.Get("start") == "" || query.Get("end") == "" {
			http.Error(w, "Please provide a start date and end date", http.StatusBadRequest)
			return
		}
		startDate, err := utils.ParseDateTime(query.Get("start"), as.When, now())
		if err != nil {
			http.Error(w, "Invalid start date: "+err.Error(), http.StatusBadRequest)
			return
		}
		endDate, err := utils.ParseDateTime(query.Get("end"), as.When, now())
		if err != nil {
			http.Error(w, "Invalid end date: "+err.Error(), http.StatusBadRequest)
			return
		}
		// #endregion

		respBody := make([]event.Event, 0)
		as.ReadCalendar(func(cal *calendar.EventCalendar) {
			for e := range cal.EventsInRange(startDate, endDate) {
				respBody = append(respBody, *e)
			}
		})
		writeJSON(w, http.StatusOK, respBody)
	})

	// get the chronologically first event
	muxer.HandleFunc("GET /events/first", func(w http.ResponseWriter, r *http.Request) {
		var (
			first event.Event
			ok    bool
		)
		as.ReadCalendar(func(cal *calendar.EventCalendar) {
			var e *event.Event
			if e, ok = cal.FirstEvent(); ok {
				first = *e
			}
		})
		if !ok {
			http.Error(w, "Calendar is empty", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, first)
	})

	// get one event by ID
	muxer.HandleFunc("GET /events/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid event ID", http.StatusBadRequest)
			return
		}
		var (
			found event.Event
			ok    bool
		)
		as.ReadCalendar(func(cal *calendar.EventCalendar) {
			var e *event.Event
			if e, ok = cal.Get(id); ok {
				found = *e
			}
		})
		if !ok {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, found)
	})

	type CreateEventReqBody struct {
		Name      string `json:"name"`
		Date      string `json:"date"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}

	// create a full-day event, optionally narrowed down by start/end time
	muxer.HandleFunc("POST /events", func(w http.ResponseWriter, r *http.Request) {
		var reqBody CreateEventReqBody
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		date, err := utils.ParseDate(reqBody.Date, as.When, now())
		if err != nil {
			http.Error(w, "Invalid date: "+err.Error(), http.StatusBadRequest)
			return
		}

		newEvent, err := func() (event.Event, error) {
			newEvent := event.New(utils.CleanupString(reqBody.Name), date)
			if reqBody.StartTime != "" {
				startTime, err := civil.ParseTime(reqBody.StartTime)
				if err != nil {
					return event.Event{}, err
				}
				if newEvent, err = newEvent.SetStartTime(startTime); err != nil {
					return event.Event{}, err
				}
			}
			if reqBody.EndTime != "" {
				endTime, err := civil.ParseTime(reqBody.EndTime)
				if err != nil {
					return event.Event{}, err
				}
				if newEvent, err = newEvent.SetEndTime(endTime); err != nil {
					return event.Event{}, err
				}
			}
			return newEvent, nil
		}()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := saveEvent(r.Context(), as, newEvent); err != nil {
			slog.Error("can't save event", "where", "route/calendar.go", "error", err)
			http.Error(w, "Can't create event", http.StatusInternalServerError)
			return
		}
		as.WriteCalendar(func(cal *calendar.EventCalendar) {
			cal.AddEvent(newEvent)
		})
		writeJSON(w, http.StatusCreated, newEvent)
	})

	type RenameEventReqBody struct {
		Name string `json:"name"`
	}

	// rename an existing event
	muxer.HandleFunc("PATCH /events/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid event ID", http.StatusBadRequest)
			return
		}
		var reqBody RenameEventReqBody
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		name := utils.CleanupString(reqBody.Name)

		var (
			renamed event.Event
			ok      bool
		)
		as.ReadCalendar(func(cal *calendar.EventCalendar) {
			var e *event.Event
			if e, ok = cal.Get(id); ok {
				renamed = *e
			}
		})
		if !ok {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		renamed.SetName(name)

		if err := saveEvent(r.Context(), as, renamed); err != nil {
			slog.Error("can't save event", "where", "route/calendar.go", "error", err)
			http.Error(w, "Can't rename event", http.StatusInternalServerError)
			return
		}
		as.WriteCalendar(func(cal *calendar.EventCalendar) {
			cal.Rename(id, name)
		})
		writeJSON(w, http.StatusOK, renamed)
	})
}
