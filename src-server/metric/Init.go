package metric

import (
	"log/slog"
	"time"
	"towcal/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
)

// register the gauge, an already registered one is fine
func register(gauge prometheus.Gauge, name string) {
	if err := prometheus.Register(gauge); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register metric", "name", name, "error", err)
			return
		}
	}
	slog.Debug("metric registered", "name", name)
	gauge.Set(0)
}

func unregister(gauge prometheus.Gauge, name string) {
	switch prometheus.Unregister(gauge) {
	case true:
		slog.Debug("metric unregistered", "name", name)
	case false:
		slog.Warn("metric not registered", "name", name)
	}
}

// sample the number of events in the calendar every tick
func calendarEvents(as *utils.AppState, tickerInterval time.Duration) {
	const name = "towcal_calendar_events"
	calendarEvents := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: "The number of events held in the calendar",
	})
	register(calendarEvents, name)
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(calendarEvents, name)
				return
			case <-ticker.C:
				as.CalendarLock.RLock()
				count := as.Calendar.Len()
				as.CalendarLock.RUnlock()
				calendarEvents.Set(float64(count))
			}
		}
	}()
}

// keep the latest latency coming through latencyCh, back to 0 when nothing
// came in for a while
func latency(as *utils.AppState, name, help string, latencyCh chan float64, clearTickerInterval time.Duration) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	})
	register(gauge, name)
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(gauge, name)
				return
			case latency := <-latencyCh:
				gauge.Set(latency)
				clearTicker.Reset(clearTickerInterval)
			case <-clearTicker.C:
				gauge.Set(0)
			}
		}
	}()
}

func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := as.Config.GetMetricCollectionInterval() * 2

	calendarEvents(as, tickerInterval)
	latency(as,
		"towcal_database_read_microsec",
		"The latency of a database read in microseconds",
		as.MetricChans.DatabaseRead,
		clearTickerInterval,
	)
	latency(as,
		"towcal_database_write_microsec",
		"The latency of a database write in microseconds",
		as.MetricChans.DatabaseWrite,
		clearTickerInterval,
	)
}
