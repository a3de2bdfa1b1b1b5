// route/leg.go
// Copyright(c) 2024-2026 efb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"time"

	"github.com/openefb/efb/fp"
	"github.com/openefb/efb/math"
	"github.com/openefb/efb/navdata"
)

// Fix is a resolved route point: an airport (with optional runway) or a
// waypoint. Its identity for leg chaining is the resolved navigation-data
// key, not the token text it came from.
type Fix struct {
	Ident    string
	Location math.Point2LL
	Airport  *navdata.Airport
	Runway   *navdata.Runway
	Waypoint *navdata.Waypoint
}

func AirportFix(ap *navdata.Airport, rwy *navdata.Runway) Fix {
	return Fix{Ident: ap.ICAO, Location: ap.Location, Airport: ap, Runway: rwy}
}

func WaypointFix(wp *navdata.Waypoint) Fix {
	return Fix{Ident: wp.Ident, Location: wp.Location, Waypoint: wp}
}

func (f Fix) IsAirport() bool { return f.Airport != nil }

// Key returns the fix's navigation-data key: terminal waypoints are
// qualified by their area so that the same ident in two areas never
// aliases.
func (f Fix) Key() string {
	if f.Waypoint != nil && !f.Waypoint.Enroute() {
		return string(f.Waypoint.Area) + "/" + f.Ident
	}
	return f.Ident
}

// Leg is a directed segment between two fixes, carrying the performance
// snapshot in force when its destination was encountered. Distance and
// true course are always available; the remaining values are computed
// only when their inputs are present and are otherwise absent, never
// zero-filled.
type Leg struct {
	Origin      Fix
	Destination Fix
	Performance PerformanceSnapshot

	// Distance in nautical miles and initial true course in degrees.
	Distance float32
	Course   float32

	wca, gs, heading, magneticCourse *float32
	ete                              *time.Duration
}

// newLeg builds the leg and computes whatever the snapshot allows. magVar
// is the magnetic variation at the origin, or nil without a date & time
// context. A zero true airspeed leaves the wind triangle unsolvable (the
// law of sines divides by it), so the derived values stay absent even
// when both speed and wind were given.
func newLeg(origin, destination Fix, perf PerformanceSnapshot, magVar *float32) Leg {
	l := Leg{
		Origin:      origin,
		Destination: destination,
		Performance: perf,
		Distance:    math.NMDistance2LL(origin.Location, destination.Location),
		Course:      math.GreatCircleHeading2LL(origin.Location, destination.Location),
	}

	if perf.Speed != nil && perf.Wind != nil {
		tas := perf.Speed.Knots()
		ws := perf.Wind.Speed.Knots()
		if tas > 0 {
			// Law of sines: sin(wca)/ws = sin(wind angle)/tas, where the
			// wind angle is measured from the wind's azimuth (direction
			// it blows toward) to the course.
			windAzimuth := perf.Wind.Direction + 180
			windAngle := math.Radians(l.Course - windAzimuth)
			wcaRad := math.Asin(ws / tas * math.Sin(windAngle))

			gs := math.Sqrt(tas*tas + ws*ws -
				2*tas*ws*math.Cos(math.Radians(l.Course-perf.Wind.Direction)+wcaRad))

			wca := math.NormalizeHeading(math.Degrees(wcaRad))
			heading := math.NormalizeHeading(l.Course + math.Degrees(wcaRad))
			l.wca, l.gs, l.heading = &wca, &gs, &heading

			if gs > 0 {
				ete := time.Duration(float64(l.Distance) / float64(gs) * float64(time.Hour))
				l.ete = &ete
			}
		}
	}

	if magVar != nil {
		mc := math.NormalizeHeading(l.Course + *magVar)
		l.magneticCourse = &mc
	}

	return l
}

// WCA returns the wind correction angle in degrees, normalized to
// [0,360) so a left correction of 5 degrees reads 355.
func (l Leg) WCA() (float32, bool) {
	if l.wca == nil {
		return 0, false
	}
	return *l.wca, true
}

// GS returns the ground speed in knots.
func (l Leg) GS() (float32, bool) {
	if l.gs == nil {
		return 0, false
	}
	return *l.gs, true
}

// Heading returns the true heading: course corrected for wind.
func (l Leg) Heading() (float32, bool) {
	if l.heading == nil {
		return 0, false
	}
	return *l.heading, true
}

// ETE returns the estimated time enroute for the leg.
func (l Leg) ETE() (time.Duration, bool) {
	if l.ete == nil {
		return 0, false
	}
	return *l.ete, true
}

// MagneticCourse returns the course corrected for the magnetic variation
// at the leg's origin; it is present only when the decoder was given a
// magnetic model and a date & time.
func (l Leg) MagneticCourse() (float32, bool) {
	if l.magneticCourse == nil {
		return 0, false
	}
	return *l.magneticCourse, true
}

// Fuel returns the fuel consumed on the leg under the given cruise
// performance profile; absent without a profile or without the speed and
// wind needed for an ETE.
func (l Leg) Fuel(perf fp.Performance) (fp.Fuel, bool) {
	if perf == nil || l.ete == nil {
		return 0, false
	}
	ff := perf.FuelFlowAt(l.Performance.Level)
	return fp.Fuel(float64(ff) * l.ete.Hours()), true
}
