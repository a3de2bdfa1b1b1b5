// route/route.go
// Copyright(c) 2024-2026 efb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package route decodes flight-plan route strings into validated legs.
// Decoding is context sensitive: the same token can be an airport, a
// waypoint, or a performance element depending on the navigation data and
// on where in the route it appears, so the pass runs in two stages, a
// shape classification over the whole string followed by a left-to-right
// resolution that threads terminal-area scope and a carry-forward
// performance snapshot.
package route

import (
	"time"

	"github.com/openefb/efb/fp"
	"github.com/openefb/efb/log"
	"github.com/openefb/efb/math"
	"github.com/openefb/efb/navdata"
)

///////////////////////////////////////////////////////////////////////////
// Route

// Route is a decoded route: an ordered chain of legs where each leg's
// destination is the next leg's origin.
type Route struct {
	legs        []Leg
	origin      Fix
	destination Fix

	cruiseSpeed *fp.Speed
	cruiseLevel *fp.VerticalDistance
}

func (r *Route) Legs() []Leg      { return r.legs }
func (r *Route) Origin() Fix      { return r.origin }
func (r *Route) Destination() Fix { return r.destination }

// CruiseSpeed returns the first speed given in the route string.
func (r *Route) CruiseSpeed() (fp.Speed, bool) {
	if r.cruiseSpeed == nil {
		return fp.Speed{}, false
	}
	return *r.cruiseSpeed, true
}

// CruiseLevel returns the first level given in the route string.
func (r *Route) CruiseLevel() (fp.VerticalDistance, bool) {
	if r.cruiseLevel == nil {
		return fp.VerticalDistance{}, false
	}
	return *r.cruiseLevel, true
}

// TotalDistance returns the route length in nautical miles.
func (r *Route) TotalDistance() float32 {
	var d float32
	for _, l := range r.legs {
		d += l.Distance
	}
	return d
}

// TotalETE sums the per-leg estimated times enroute; absent if any leg
// lacks one.
func (r *Route) TotalETE() (time.Duration, bool) {
	var total time.Duration
	for _, l := range r.legs {
		ete, ok := l.ETE()
		if !ok {
			return 0, false
		}
		total += ete
	}
	return total, true
}

///////////////////////////////////////////////////////////////////////////
// Decoder

// Decoder decodes route strings against a navigation dataset. The zero
// value with only ND set is usable; Magnetic and Time together enable
// magnetic courses, and Log enables decode tracing.
type Decoder struct {
	ND       navdata.Lookup
	Magnetic navdata.MagneticModel
	// Time is the date & time context for magnetic variation; the zero
	// time means no context.
	Time time.Time
	Log  *log.Logger
}

// Decode is a convenience for decoding without magnetic or time context.
func Decode(s string, nd navdata.Lookup) (*Route, error) {
	return Decoder{ND: nd}.Decode(s)
}

// Decode decodes the route string. On failure the returned error wraps
// one of the package's sentinel errors; errors that concern a specific
// token are a *DecodeError carrying the token and its position.
func (d Decoder) Decode(s string) (*Route, error) {
	tokens, err := ScanRoute(s)
	if err != nil {
		return nil, err
	}
	words, err := classifyWords(tokens, d.ND)
	if err != nil {
		return nil, err
	}

	res := resolver{nd: d.ND, lg: d.Log}
	r := &Route{}
	var sc TerminalScope
	var snap PerformanceSnapshot
	var from *Fix

	addFix := func(f Fix) {
		if from == nil {
			r.origin = f
		} else {
			r.legs = append(r.legs, newLeg(*from, f, snap, d.magneticVariation(from.Location)))
		}
		r.destination = f
		from = &f
	}

	for i, w := range words {
		switch w.kind {
		case wordSpeed:
			snap = snap.withSpeed(w.speed)
			if r.cruiseSpeed == nil {
				r.cruiseSpeed = &w.speed
			}
		case wordLevel:
			snap = snap.withLevel(w.level)
			if r.cruiseLevel == nil {
				r.cruiseLevel = &w.level
			}
		case wordWind:
			snap = snap.withWind(w.wind)

		case wordVia:
			// A via boundary closes any open terminal area. If an airport
			// follows, it reopens the scope on its own.
			sc = sc.Close()

		case wordAirport:
			prevVia := i > 0 && words[i-1].kind == wordVia
			sc = sc.Open(w.airport, prevVia)
			// DCT <airport> <waypoint> opens the airport's area for the
			// waypoint without routing over the airport itself.
			if prevVia && i+1 < len(words) && words[i+1].kind == wordWaypoint {
				d.Log.Debugf("opening terminal area of %s without routing over it", w.airport.ICAO)
				continue
			}
			addFix(AirportFix(w.airport, w.runway))

		case wordWaypoint:
			wp, err := res.resolveWaypoint(w.tok, sc.WithInbound(lookaheadAirport(words[i+1:])))
			if err != nil {
				return nil, err
			}
			addFix(WaypointFix(wp))
		}
	}

	if len(r.legs) == 0 {
		return nil, ErrMissingOriginOrDestination
	}
	return r, nil
}

// magneticVariation returns the variation at p, or nil when the decoder
// lacks a magnetic model or a date & time context.
func (d Decoder) magneticVariation(p math.Point2LL) *float32 {
	if d.Magnetic == nil || d.Time.IsZero() {
		return nil
	}
	v, ok := d.Magnetic.Variation(p, d.Time)
	if !ok {
		return nil
	}
	return &v
}

// Alternate builds the diversion leg from the route's destination to the
// given fix, carrying forward the final leg's performance snapshot.
func (r *Route) Alternate(to Fix, d Decoder) Leg {
	snap := r.legs[len(r.legs)-1].Performance
	return newLeg(r.destination, to, snap, d.magneticVariation(r.destination.Location))
}
