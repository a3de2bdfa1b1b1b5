// route/scope.go
// Copyright(c) 2024-2026 efb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import "github.com/openefb/efb/navdata"

type ScopeState uint8

const (
	// ScopeClosed means no terminal area is active; waypoints resolve
	// enroute only.
	ScopeClosed ScopeState = iota
	// ScopeOpen means one terminal area's waypoints are implicitly
	// resolvable.
	ScopeOpen
	// ScopeCrossing means the route is between two bordering terminal
	// areas; both areas' waypoints are implicitly resolvable, with
	// single-area matches winning without an explicit via.
	ScopeCrossing
)

// TerminalScope tracks which terminal areas are open for implicit
// waypoint resolution. It is a value threaded through the decode pass:
// transitions return a new scope rather than mutating shared state.
//
// The outbound area is the one opened behind the aircraft by the last
// airport (or DCT <airport>) encountered; the inbound area is the one it
// is moving toward, found by looking ahead to the next airport token.
type TerminalScope struct {
	outbound *navdata.Airport
	inbound  *navdata.Airport
	// explicit is set when the outbound area was opened by DCT <airport>,
	// which pins waypoint resolution to that area.
	explicit bool
}

func (s TerminalScope) State() ScopeState {
	switch {
	case s.outbound == nil && s.inbound == nil:
		return ScopeClosed
	case s.outbound != nil && s.inbound != nil:
		return ScopeCrossing
	default:
		return ScopeOpen
	}
}

// Open replaces the scope with the given airport's area; any previously
// open area is implicitly closed.
func (s TerminalScope) Open(ap *navdata.Airport, explicit bool) TerminalScope {
	return TerminalScope{outbound: ap, explicit: explicit}
}

// Close returns the closed scope; encountering a bare DCT is an explicit
// scope boundary.
func (s TerminalScope) Close() TerminalScope {
	return TerminalScope{}
}

// WithInbound adds the area the route is moving toward. Moving toward the
// airport whose area is already open is not a crossing.
func (s TerminalScope) WithInbound(ap *navdata.Airport) TerminalScope {
	if ap == nil || ap == s.outbound {
		return s
	}
	s.inbound = ap
	return s
}

func (s TerminalScope) Outbound() *navdata.Airport { return s.outbound }
func (s TerminalScope) Inbound() *navdata.Airport  { return s.inbound }
