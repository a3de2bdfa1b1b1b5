// route/resolve.go
// Copyright(c) 2024-2026 efb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"log/slog"

	"github.com/openefb/efb/log"
	"github.com/openefb/efb/navdata"
)

type resolver struct {
	nd navdata.Lookup
	lg *log.Logger
}

// resolveWaypoint resolves a waypoint token against the open terminal
// area(s), falling back to an enroute lookup. Terminal matches in exactly
// one open area win without an explicit via; matches in both areas are
// ambiguous unless the outbound area was pinned with DCT <airport>.
func (r resolver) resolveWaypoint(tok Token, sc TerminalScope) (*navdata.Waypoint, error) {
	var outbound, inbound *navdata.Waypoint
	if ap := sc.Outbound(); ap != nil {
		outbound, _ = r.nd.LookupTerminalWaypoint(tok.Text, r.nd.TerminalAreaOf(ap))
	}
	if ap := sc.Inbound(); ap != nil {
		inbound, _ = r.nd.LookupTerminalWaypoint(tok.Text, r.nd.TerminalAreaOf(ap))
	}

	switch {
	case outbound != nil && inbound != nil:
		if sc.explicit {
			return outbound, nil
		}
		r.lg.Debug("ambiguous terminal waypoint",
			slog.String("ident", tok.Text),
			slog.String("outbound", string(outbound.Area)),
			slog.String("inbound", string(inbound.Area)))
		return nil, decodeError(tok, ErrAmbiguousWaypoint)
	case outbound != nil:
		return outbound, nil
	case inbound != nil:
		return inbound, nil
	}

	// No terminal-scoped match; first enroute match in the dataset's
	// iteration order wins.
	for wp := range r.nd.LookupEnrouteWaypoints(tok.Text) {
		return wp, nil
	}

	if perfLike(tok.Text) {
		// Not a waypoint anywhere; a token like N12 is better reported as
		// a malformed speed group than an unknown fix.
		return nil, decodeError(tok, ErrInvalidPerformanceFormat)
	}
	return nil, decodeError(tok, ErrUnknownWaypoint)
}

// lookaheadAirport finds the airport the route is moving toward: the next
// airport word, unless a via boundary intervenes.
func lookaheadAirport(words []word) *navdata.Airport {
	for _, w := range words {
		switch w.kind {
		case wordAirport:
			return w.airport
		case wordVia:
			return nil
		}
	}
	return nil
}
