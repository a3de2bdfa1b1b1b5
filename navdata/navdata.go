// navdata/navdata.go
// Copyright(c) 2024-2026 efb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package navdata

import (
	"iter"
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/openefb/efb/math"
)

// AreaID identifies a terminal area; waypoints published for an airport's
// vicinity are scoped to the area of that airport.
type AreaID string

type Airport struct {
	ICAO      string        `json:"icao"`
	Name      string        `json:"name,omitempty"`
	Elevation int           `json:"elevation,omitempty"`
	Location  math.Point2LL `json:"location"`
	Runways   []Runway      `json:"runways,omitempty"`
}

type Runway struct {
	ID        string        `json:"id"`
	Heading   float32       `json:"heading,omitempty"`
	Elevation int           `json:"elevation,omitempty"`
	Threshold math.Point2LL `json:"threshold,omitempty"`
}

type Waypoint struct {
	Ident    string        `json:"ident"`
	Name     string        `json:"name,omitempty"`
	Location math.Point2LL `json:"location"`
	// Area is the terminal area the waypoint belongs to; empty for enroute
	// waypoints.
	Area AreaID `json:"area,omitempty"`
}

// Enroute reports whether the waypoint is an enroute fix rather than one
// scoped to a terminal area.
func (wp *Waypoint) Enroute() bool { return wp.Area == "" }

// Lookup is the read-only capability the route decoder needs from
// navigation data. Implementations must be safe for concurrent readers;
// mutation must be serialized against decoding by the caller.
type Lookup interface {
	LookupAirport(ident string) (*Airport, bool)
	LookupRunway(ap *Airport, designator string) (*Runway, bool)
	LookupTerminalWaypoint(ident string, area AreaID) (*Waypoint, bool)
	// LookupEnrouteWaypoints yields all enroute waypoints with the given
	// ident; the iteration order defines the decoder's first-match
	// tie-break and must be stable across calls.
	LookupEnrouteWaypoints(ident string) iter.Seq[*Waypoint]
	TerminalAreaOf(ap *Airport) AreaID
}

///////////////////////////////////////////////////////////////////////////
// Database

// Database is the reference in-memory Lookup implementation. Enroute
// waypoints are kept in insertion order so that ambiguous enroute idents
// resolve deterministically to the earliest-added match.
type Database struct {
	airports map[string]*Airport
	terminal map[AreaID]map[string]*Waypoint
	enroute  *orderedmap.OrderedMap // ident -> []*Waypoint
}

func New() *Database {
	return &Database{
		airports: make(map[string]*Airport),
		terminal: make(map[AreaID]map[string]*Waypoint),
		enroute:  orderedmap.New(),
	}
}

func (db *Database) AddAirport(ap *Airport) {
	db.airports[ap.ICAO] = ap
}

// AddWaypoint files the waypoint under its terminal area, or in the
// enroute index if it has none.
func (db *Database) AddWaypoint(wp *Waypoint) {
	if wp.Area != "" {
		wps, ok := db.terminal[wp.Area]
		if !ok {
			wps = make(map[string]*Waypoint)
			db.terminal[wp.Area] = wps
		}
		wps[wp.Ident] = wp
		return
	}

	if prev, ok := db.enroute.Get(wp.Ident); ok {
		db.enroute.Set(wp.Ident, append(prev.([]*Waypoint), wp))
	} else {
		db.enroute.Set(wp.Ident, []*Waypoint{wp})
	}
}

func (db *Database) LookupAirport(ident string) (*Airport, bool) {
	ap, ok := db.airports[ident]
	return ap, ok
}

func (db *Database) LookupRunway(ap *Airport, designator string) (*Runway, bool) {
	for i, rwy := range ap.Runways {
		if rwy.ID == designator || strings.TrimLeft(rwy.ID, "0") == strings.TrimLeft(designator, "0") {
			return &ap.Runways[i], true
		}
	}
	return nil, false
}

func (db *Database) LookupTerminalWaypoint(ident string, area AreaID) (*Waypoint, bool) {
	wp, ok := db.terminal[area][ident]
	return wp, ok
}

func (db *Database) LookupEnrouteWaypoints(ident string) iter.Seq[*Waypoint] {
	return func(yield func(*Waypoint) bool) {
		wps, ok := db.enroute.Get(ident)
		if !ok {
			return
		}
		for _, wp := range wps.([]*Waypoint) {
			if !yield(wp) {
				return
			}
		}
	}
}

func (db *Database) TerminalAreaOf(ap *Airport) AreaID {
	return AreaID(ap.ICAO)
}

// EnrouteWaypoints yields every enroute waypoint in insertion order.
func (db *Database) EnrouteWaypoints() iter.Seq[*Waypoint] {
	return func(yield func(*Waypoint) bool) {
		for _, ident := range db.enroute.Keys() {
			wps, _ := db.enroute.Get(ident)
			for _, wp := range wps.([]*Waypoint) {
				if !yield(wp) {
					return
				}
			}
		}
	}
}
