package models

import "time"

// Point is the canonical coordinate representation. The geocoding
// provider answers with a "longitude latitude" position string; that
// ordering is flipped into named fields at exactly one place, the
// provider response parser, and never leaks past it.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Coordinate is one cached geocoding result, keyed by the exact
// address string. Lat/Lon stay NULL when the provider had no match for
// the address, so a permanently bad address is asked about only once.
type Coordinate struct {
	ID         int64      `db:"id" json:"id"`
	Address    string     `db:"address" json:"address"`
	Lat        *float64   `db:"lat" json:"lat,omitempty"`
	Lon        *float64   `db:"lon" json:"lon,omitempty"`
	RecordedAt time.Time  `db:"recorded_at" json:"recorded_at"`
}

// Resolved reports whether the record carries usable coordinates.
func (c Coordinate) Resolved() bool {
	return c.Lat != nil && c.Lon != nil
}

// Point converts a resolved record to a Point. Callers must check
// Resolved first.
func (c Coordinate) Point() Point {
	return Point{Lat: *c.Lat, Lon: *c.Lon}
}
