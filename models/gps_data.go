package models

import "time"

// GPSFix is the receiver output attached to each telemetry sample.
type GPSFix struct {
	Time      time.Time `json:"gps_time"` // UTC, reported at 1 s resolution
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Altitude  float64   `json:"altitude"` // metres, mirrors barometric altitude
	Sats      int       `json:"num_sats"`
}

func (g *GPSFix) csvFields() []string {
	return []string{
		g.Time.UTC().Format(GPSTimeLayout),
		ftoa(g.Latitude, 6),
		ftoa(g.Longitude, 6),
		ftoa(g.Altitude, 2),
		itoa(g.Sats),
	}
}
