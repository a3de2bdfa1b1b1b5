// math/latlong.go
// Copyright(c) 2024-2026 efb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"encoding/json"
	gomath "math"
)

// Point2LL represents a 2D point on the surface of the earth; the first
// element is the longitude and the second is the latitude, both in degrees.
type Point2LL [2]float32

func (p Point2LL) Longitude() float32 {
	return p[0]
}

func (p Point2LL) Latitude() float32 {
	return p[1]
}

// NMDistance2LL returns the distance in nautical miles between two
// provided lat-long coordinates.
func NMDistance2LL(a Point2LL, b Point2LL) float32 {
	// https://www.movable-type.co.uk/scripts/latlong.html
	const R = 6371000 // metres
	rad := func(d float64) float64 { return float64(d) / 180 * gomath.Pi }
	lat1, lon1 := rad(float64(a[1])), rad(float64(a[0]))
	lat2, lon2 := rad(float64(b[1])), rad(float64(b[0]))
	dlat, dlon := lat2-lat1, lon2-lon1

	x := Sqr(gomath.Sin(dlat/2)) + gomath.Cos(lat1)*gomath.Cos(lat2)*Sqr(gomath.Sin(dlon/2))
	c := 2 * gomath.Atan2(gomath.Sqrt(x), gomath.Sqrt(1-x))
	dm := R * c // in metres

	return float32(dm * 0.000539957)
}

// GreatCircleHeading2LL returns the initial true course in degrees when
// following the great circle from |from| to |to|.
func GreatCircleHeading2LL(from Point2LL, to Point2LL) float32 {
	rad := func(d float64) float64 { return float64(d) / 180 * gomath.Pi }
	lat1, lon1 := rad(float64(from[1])), rad(float64(from[0]))
	lat2, lon2 := rad(float64(to[1])), rad(float64(to[0]))
	dlon := lon2 - lon1

	y := gomath.Sin(dlon) * gomath.Cos(lat2)
	x := gomath.Cos(lat1)*gomath.Sin(lat2) - gomath.Sin(lat1)*gomath.Cos(lat2)*gomath.Cos(dlon)

	return NormalizeHeading(Degrees(float32(gomath.Atan2(y, x))))
}

// Store Point2LLs as two-element arrays in JSON.
func (p Point2LL) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float32(p))
}

func (p *Point2LL) UnmarshalJSON(b []byte) error {
	var pt [2]float32
	if err := json.Unmarshal(b, &pt); err != nil {
		return err
	}
	*p = pt
	return nil
}
