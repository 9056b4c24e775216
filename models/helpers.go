package models

import (
	"strconv"
)

// ─── shared formatting helpers (package-private) ────────────────────────

func itoa(v int) string      { return strconv.Itoa(v) }
func utoa64(v uint64) string { return strconv.FormatUint(v, 10) }
func ftoa(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// Layouts for the two time columns of a telemetry row.
const (
	TimestampLayout = "2006-01-02T15:04:05.000Z"
	GPSTimeLayout   = "15:04:05"
)

// CSVRowWriter is the interface every loggable model must satisfy.
type CSVRowWriter interface {
	CSVHeader() []string
	CSVRow() []string
}
