package utils

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"sync"
	"time"
	"towcal/src-server/calendar"
	"towcal/src-server/model"

	"github.com/olebedev/when"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

type AppState struct {
	Config      *Config
	RawDB       *sql.DB
	BunDB       *bun.DB
	When        *when.Parser
	MetricChans *Metric

	// the calendar does no locking of its own, every access goes through
	// CalendarLock
	Calendar     *calendar.EventCalendar
	CalendarLock sync.RWMutex

	AppCloseSignalChan chan os.Signal

	shutdownMu    sync.Mutex
	shutdownChans []chan struct{}
}

func NewAppState() *AppState {
	as := &AppState{}

	// env
	as.Config = NewConfig()

	// date parser
	as.When = NewWhen()

	as.MetricChans = NewMetric()
	as.Calendar = calendar.New()
	as.AppCloseSignalChan = make(chan os.Signal, 1)

	// database
	var err error
	as.RawDB, err = sql.Open(sqliteshim.ShimName, "file:"+as.Config.GetDatabasePath()+"?mode=rwc")
	if err != nil {
		slog.Error("cannot open sqlite database", "error", err)
		os.Exit(1)
	}
	as.RawDB.SetMaxIdleConns(8)

	as.BunDB = bun.NewDB(as.RawDB, sqlitedialect.New())
	as.BunDB.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithVerbose(true),
		bundebug.FromEnv("BUNDEBUG"),
	))

	return as
}

// Run fn with shared access to the calendar
func (as *AppState) ReadCalendar(fn func(cal *calendar.EventCalendar)) {
	as.CalendarLock.RLock()
	defer as.CalendarLock.RUnlock()
	fn(as.Calendar)
}

// Run fn with exclusive access to the calendar
func (as *AppState) WriteCalendar(fn func(cal *calendar.EventCalendar)) {
	as.CalendarLock.Lock()
	defer as.CalendarLock.Unlock()
	fn(as.Calendar)
}

// Get a channel that is closed once GracefulShutdown runs
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.shutdownMu.Lock()
	defer as.shutdownMu.Unlock()
	ch := make(chan struct{})
	as.shutdownChans = append(as.shutdownChans, ch)
	return &ch
}

// Notify every background goroutine and close the database
func (as *AppState) GracefulShutdown() {
	as.shutdownMu.Lock()
	for _, ch := range as.shutdownChans {
		close(ch)
	}
	as.shutdownChans = nil
	as.shutdownMu.Unlock()

	if as.BunDB != nil {
		if err := as.BunDB.Close(); err != nil {
			slog.Warn("can't close database", "error", err)
		}
	}
}

// Load every stored event into the in-memory calendar
func (as *AppState) LoadCalendar(ctx context.Context) error {
	startTimer := time.Now()
	cal, err := model.LoadCalendar(ctx, as.BunDB)
	if err != nil {
		return err
	}
	as.MetricChans.ReportDatabaseRead(time.Since(startTimer))
	as.CalendarLock.Lock()
	as.Calendar = cal
	as.CalendarLock.Unlock()
	return nil
}
