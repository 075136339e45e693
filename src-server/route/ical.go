package route

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"
	"towcal/src-server/calendar"
	"towcal/src-server/ical"
	"towcal/src-server/model"
	"towcal/src-server/utils"

	"github.com/uptrace/bun"
)

// upper bound of an uploaded .ics file
const maxIcalSize = 8 << 20

func Ical(muxer *http.ServeMux, as *utils.AppState) {
	// export the whole calendar
	muxer.HandleFunc("GET /calendar.ics", func(w http.ResponseWriter, r *http.Request) {
		var output string
		as.ReadCalendar(func(cal *calendar.EventCalendar) {
			output = ical.Export(as.Config.GetCalendarName(), cal.All(), as.Config.GetLocation())
		})

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, output); err != nil {
			slog.Warn("can't write to response", "where", "route/ical.go", "err", err)
		}
	})

	type ImportRespBody struct {
		Imported int `json:"imported"`
		New      int `json:"new"`
	}

	// import every event of an uploaded .ics file, events with a known ID
	// are replaced
	muxer.HandleFunc("POST /calendar.ics", func(w http.ResponseWriter, r *http.Request) {
		events, err := ical.Import(http.MaxBytesReader(w, r.Body, maxIcalSize), as.Config.GetLocation())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		startTimer := time.Now()
		if err := as.BunDB.RunInTx(r.Context(), nil, func(ctx context.Context, tx bun.Tx) error {
			for _, e := range events {
				eventModel := model.FromEvent(e)
				if err := eventModel.Upsert(ctx, tx); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			slog.Error("can't save imported events", "where", "route/ical.go", "error", err)
			http.Error(w, "Can't import calendar", http.StatusInternalServerError)
			return
		}
		as.MetricChans.ReportDatabaseWrite(time.Since(startTimer))

		respBody := ImportRespBody{Imported: len(events)}
		as.WriteCalendar(func(cal *calendar.EventCalendar) {
			for _, e := range events {
				if cal.AddEvent(e) {
					respBody.New++
				}
			}
		})
		writeJSON(w, http.StatusOK, respBody)
	})
}
