package utils

import "time"

// latest latencies in microseconds, drained by the metric package
type Metric struct {
	DatabaseRead  chan float64
	DatabaseWrite chan float64
}

func NewMetric() *Metric {
	return &Metric{
		DatabaseRead:  make(chan float64, 1),
		DatabaseWrite: make(chan float64, 1),
	}
}

// Report a database read latency, dropped if nobody is listening
func (m *Metric) ReportDatabaseRead(latency time.Duration) {
	report(m.DatabaseRead, latency)
}

// Report a database write latency, dropped if nobody is listening
func (m *Metric) ReportDatabaseWrite(latency time.Duration) {
	report(m.DatabaseWrite, latency)
}

func report(ch chan float64, latency time.Duration) {
	select {
	case ch <- float64(latency.Microseconds()):
	default:
	}
}
