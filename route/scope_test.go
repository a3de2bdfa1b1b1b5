// route/scope_test.go
// Copyright(c) 2024-2026 efb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"testing"

	"github.com/openefb/efb/navdata"
)

func TestTerminalScopeTransitions(t *testing.T) {
	eddh := &navdata.Airport{ICAO: "EDDH"}
	edhf := &navdata.Airport{ICAO: "EDHF"}

	var sc TerminalScope
	if sc.State() != ScopeClosed {
		t.Fatal("zero scope should be closed")
	}

	sc = sc.Open(eddh, false)
	if sc.State() != ScopeOpen || sc.Outbound() != eddh {
		t.Fatal("airport should open its area")
	}

	// Opening a second airport replaces the first area.
	sc = sc.Open(edhf, true)
	if sc.Outbound() != edhf || !sc.explicit {
		t.Fatal("second open should replace the area and carry the pin")
	}

	sc = sc.Close()
	if sc.State() != ScopeClosed || sc.explicit {
		t.Fatal("close should drop the area and the pin")
	}
}

func TestTerminalScopeCrossing(t *testing.T) {
	eddh := &navdata.Airport{ICAO: "EDDH"}
	edhf := &navdata.Airport{ICAO: "EDHF"}

	sc := TerminalScope{}.Open(eddh, false)

	crossing := sc.WithInbound(edhf)
	if crossing.State() != ScopeCrossing {
		t.Error("an inbound airport in a different area forms a crossing")
	}
	if crossing.Inbound() != edhf {
		t.Error("inbound airport not recorded")
	}

	// Heading toward the airport whose area is already open is not a
	// crossing, nor is a nil lookahead.
	if sc.WithInbound(eddh).State() != ScopeOpen {
		t.Error("inbound matching the open area must not form a crossing")
	}
	if sc.WithInbound(nil).State() != ScopeOpen {
		t.Error("nil inbound must leave the scope alone")
	}

	// WithInbound returns a modified copy.
	if sc.State() != ScopeOpen || sc.Inbound() != nil {
		t.Error("WithInbound must not mutate the receiver")
	}
}
