package model

import (
	"context"
	"fmt"
	"time"
	"towcal/src-server/event"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID   string `bun:"id,pk"`        // required
	Name string `bun:"name,notnull"` // may be blank

	// civil date-times in their textual form, e.g. 2024-01-10T09:00:00
	StartDate string `bun:"start_date,notnull"` // required
	EndDate   string `bun:"end_date,notnull"`   // required

	CreatedAt int64 `bun:"created_at,notnull"`
	UpdatedAt int64 `bun:"updated_at"`
}

// Turn a calendar event into its database row
func FromEvent(e event.Event) Event {
	return Event{
		ID:        e.ID().String(),
		Name:      e.Name(),
		StartDate: e.Start().String(),
		EndDate:   e.End().String(),
	}
}

// Turn a database row back into a calendar event
func (e *Event) ToEvent() (event.Event, error) {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return event.Event{}, fmt.Errorf("(*Event).ToEvent: invalid id %q: %w", e.ID, err)
	}
	start, err := civil.ParseDateTime(e.StartDate)
	if err != nil {
		return event.Event{}, fmt.Errorf("(*Event).ToEvent: invalid start date: %w", err)
	}
	end, err := civil.ParseDateTime(e.EndDate)
	if err != nil {
		return event.Event{}, fmt.Errorf("(*Event).ToEvent: invalid end date: %w", err)
	}
	result, err := event.Load(id, e.Name, start, end)
	if err != nil {
		return event.Event{}, fmt.Errorf("(*Event).ToEvent: %w", err)
	}
	return result, nil
}

func (e *Event) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case e.ID == "":
		return fmt.Errorf("(*Event).Upsert: event id is blank")
	case e.StartDate == "":
		return fmt.Errorf("(*Event).Upsert: start date is blank")
	case e.EndDate == "":
		return fmt.Errorf("(*Event).Upsert: end date is blank")
	}
	if _, err := e.ToEvent(); err != nil {
		return fmt.Errorf("(*Event).Upsert: %w", err)
	}

	exists, err := db.NewSelect().
		Model((*Event)(nil)).
		Where("id = ?", e.ID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*Event).Upsert: %w", err)
	}

	now := time.Now().UTC().Unix()
	switch exists {
	case true:
		e.UpdatedAt = now
		if _, err := db.NewUpdate().
			Model(e).
			Column("name", "start_date", "end_date", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	case false:
		if e.CreatedAt == 0 {
			e.CreatedAt = now
		}
		if _, err := db.NewInsert().
			Model(e).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	}

	return nil
}
