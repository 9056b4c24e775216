package utils

import (
	"fmt"
	"time"
)

// UTCClock returns the current wall-clock time in UTC. It is the default
// clock handed to the sensor synthesizer.
func UTCClock() time.Time {
	return time.Now().UTC()
}

// FormatDuration renders an elapsed flight time as T+mm:ss.s.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d / time.Minute)
	s := (d % time.Minute).Seconds()
	return fmt.Sprintf("T+%02d:%04.1f", m, s)
}
