package model

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"towcal/src-server/calendar"

	"github.com/uptrace/bun"
)

// Read every stored event into a fresh calendar. Rows that don't make a
// valid event are skipped.
func LoadCalendar(ctx context.Context, db bun.IDB) (*calendar.EventCalendar, error) {
	eventModels := make([]Event, 0)
	if err := db.NewSelect().
		Model(&eventModels).
		Order("start_date ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("LoadCalendar: %w", err)
	}

	cal := calendar.New()
	for _, eventModel := range eventModels {
		e, err := eventModel.ToEvent()
		if err != nil {
			slog.Warn("skipping stored event", "where", "model.LoadCalendar", "id", eventModel.ID, "error", err)
			continue
		}
		cal.AddEvent(e)
	}
	return cal, nil
}

// Write every event of the calendar, in one transaction.
func SaveCalendar(ctx context.Context, db *bun.DB, cal *calendar.EventCalendar) error {
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for e := range cal.All() {
			eventModel := FromEvent(*e)
			if err := eventModel.Upsert(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("SaveCalendar: %w", err)
	}
	return nil
}
