// Package model defines the value types shared by the coordinate audit pipeline.
package model

import "math"

// GeoRecord is a read-only snapshot of one catalog location entry.
// LatRaw and LngRaw hold the coordinate text exactly as written in the
// source file; precision counting and duplicate keys operate on these so a
// float round-trip cannot change what the source says.
type GeoRecord struct {
	ID        string
	Name      string
	Slug      string
	Address   string
	Lat       float64
	Lng       float64
	LatRaw    string
	LngRaw    string
	Partition string
	Locator   string
}

// CoordKey returns the exact-string duplicate key for the record.
func (r GeoRecord) CoordKey() string {
	return r.LatRaw + "," + r.LngRaw
}

// HasFiniteCoords reports whether both coordinates are finite numbers.
func (r GeoRecord) HasFiniteCoords() bool {
	return !math.IsNaN(r.Lat) && !math.IsInf(r.Lat, 0) &&
		!math.IsNaN(r.Lng) && !math.IsInf(r.Lng, 0)
}

// Ref returns a reference suitable for embedding in an Issue.
func (r GeoRecord) Ref() RecordRef {
	return RecordRef{
		ID:        r.ID,
		Name:      r.Name,
		Partition: r.Partition,
		Locator:   r.Locator,
		Lat:       r.Lat,
		Lng:       r.Lng,
	}
}

// RecordRef identifies a record inside an issue without retaining the full
// snapshot.
type RecordRef struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Partition string  `json:"partition"`
	Locator   string  `json:"locator"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}
