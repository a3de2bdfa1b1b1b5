// route/route_test.go
// Copyright(c) 2024-2026 efb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"errors"
	"testing"
	"time"

	"github.com/openefb/efb/fp"
	"github.com/openefb/efb/math"
	"github.com/openefb/efb/navdata"
)

// testNavData builds a small dataset around Hamburg: EDDH with its
// terminal waypoints, two airfields whose areas share the ident W, an
// enroute fix, and a duplicated enroute ident.
func testNavData() *navdata.Database {
	db := navdata.New()

	db.AddAirport(&navdata.Airport{
		ICAO:     "EDDH",
		Location: math.Point2LL{9.99, 53.63},
		Runways: []navdata.Runway{
			{ID: "05", Heading: 49},
			{ID: "23", Heading: 229},
			{ID: "15", Heading: 148},
			{ID: "33", Heading: 328},
		},
	})
	db.AddAirport(&navdata.Airport{
		ICAO:     "EDHF",
		Location: math.Point2LL{9.58, 53.99},
		Runways: []navdata.Runway{
			{ID: "02", Heading: 23},
			{ID: "20", Heading: 203},
		},
	})
	db.AddAirport(&navdata.Airport{ICAO: "EDHL", Location: math.Point2LL{10.72, 53.81}})
	db.AddAirport(&navdata.Airport{ICAO: "EDAH", Location: math.Point2LL{14.15, 53.88}})
	db.AddAirport(&navdata.Airport{ICAO: "KSFO", Location: math.Point2LL{-122.375, 37.619}})
	db.AddAirport(&navdata.Airport{ICAO: "KSAN", Location: math.Point2LL{-117.19, 32.733}})

	db.AddWaypoint(&navdata.Waypoint{Ident: "N1", Location: math.Point2LL{9.9, 53.7}, Area: "EDDH"})
	db.AddWaypoint(&navdata.Waypoint{Ident: "N2", Location: math.Point2LL{10.0, 53.75}, Area: "EDDH"})
	db.AddWaypoint(&navdata.Waypoint{Ident: "P2", Location: math.Point2LL{9.8, 53.78}, Area: "EDDH"})
	db.AddWaypoint(&navdata.Waypoint{Ident: "W1", Location: math.Point2LL{9.5, 53.9}, Area: "EDHF"})
	db.AddWaypoint(&navdata.Waypoint{Ident: "W2", Location: math.Point2LL{9.55, 53.85}, Area: "EDHF"})
	db.AddWaypoint(&navdata.Waypoint{Ident: "W", Location: math.Point2LL{10.8, 53.75}, Area: "EDHL"})
	db.AddWaypoint(&navdata.Waypoint{Ident: "W", Location: math.Point2LL{14.0, 53.8}, Area: "EDAH"})

	db.AddWaypoint(&navdata.Waypoint{Ident: "HLW", Location: math.Point2LL{10.35, 53.71}})
	db.AddWaypoint(&navdata.Waypoint{Ident: "ABAMI", Location: math.Point2LL{9.0, 54.2}})
	db.AddWaypoint(&navdata.Waypoint{Ident: "ABAMI", Location: math.Point2LL{12.5, 52.0}})

	return db
}

// fixKeys returns the route's points as a key sequence: the origin, then
// every leg destination.
func fixKeys(r *Route) []string {
	keys := []string{r.Origin().Key()}
	for _, l := range r.Legs() {
		keys = append(keys, l.Destination.Key())
	}
	return keys
}

func wantKeys(t *testing.T, r *Route, want ...string) {
	t.Helper()
	got := fixKeys(r)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDecodeDirect(t *testing.T) {
	r, err := Decode("N0120 F090 KSFO DCT KSAN", testNavData())
	if err != nil {
		t.Fatal(err)
	}
	wantKeys(t, r, "KSFO", "KSAN")

	if spd, ok := r.CruiseSpeed(); !ok || spd.Knots() != 120 {
		t.Errorf("cruise speed %v %v, want 120 kt", spd, ok)
	}
	if lvl, ok := r.CruiseLevel(); !ok || lvl.Kind != fp.FlightLevel || lvl.Feet != 9000 {
		t.Errorf("cruise level %v %v, want FL090", lvl, ok)
	}

	leg := r.Legs()[0]
	if leg.Performance.Speed == nil || leg.Performance.Level == nil {
		t.Error("leg should carry the speed and level in force")
	}
	if leg.Performance.Wind != nil {
		t.Error("no wind was given")
	}
	if _, ok := leg.GS(); ok {
		t.Error("GS should be absent without wind")
	}
	if leg.Distance < 400 || leg.Distance > 500 {
		t.Errorf("KSFO-KSAN distance %.0f nm, want about 440", leg.Distance)
	}
}

func TestDecodeTerminalDeparture(t *testing.T) {
	r, err := Decode("EDDH33 N0100 F050 13509KT N1 N2 DCT HLW DCT EDHF02", testNavData())
	if err != nil {
		t.Fatal(err)
	}
	wantKeys(t, r, "EDDH", "EDDH/N1", "EDDH/N2", "HLW", "EDHF")

	if rwy := r.Origin().Runway; rwy == nil || rwy.ID != "33" {
		t.Errorf("origin runway %v, want 33", rwy)
	}
	if rwy := r.Destination().Runway; rwy == nil || rwy.ID != "02" {
		t.Errorf("destination runway %v, want 02", rwy)
	}

	for i, leg := range r.Legs() {
		if w := leg.Performance.Wind; w == nil || w.Direction != 135 {
			t.Errorf("leg %d wind %v, want 135@9", i, w)
		}
		if _, ok := leg.GS(); !ok {
			t.Errorf("leg %d should have a ground speed", i)
		}
		if _, ok := leg.ETE(); !ok {
			t.Errorf("leg %d should have an ETE", i)
		}
	}

	if _, ok := r.TotalETE(); !ok {
		t.Error("route total ETE should be available")
	}
}

func TestDecodeLegChain(t *testing.T) {
	r, err := Decode("EDDH33 N0100 F050 13509KT N1 N2 DCT HLW DCT EDHF02", testNavData())
	if err != nil {
		t.Fatal(err)
	}
	legs := r.Legs()
	for i := 1; i < len(legs); i++ {
		if legs[i-1].Destination.Key() != legs[i].Origin.Key() {
			t.Errorf("leg %d ends at %s but leg %d starts at %s",
				i-1, legs[i-1].Destination.Key(), i, legs[i].Origin.Key())
		}
	}
	if r.Origin().Key() != legs[0].Origin.Key() {
		t.Error("route origin is not the first leg's origin")
	}
	if r.Destination().Key() != legs[len(legs)-1].Destination.Key() {
		t.Error("route destination is not the last leg's destination")
	}
}

func TestDecodeWindChange(t *testing.T) {
	r, err := Decode("N0100 F050 13509KT EDDH DCT HLW 18009KT DCT EDHL", testNavData())
	if err != nil {
		t.Fatal(err)
	}
	wantKeys(t, r, "EDDH", "HLW", "EDHL")

	legs := r.Legs()
	if w := legs[0].Performance.Wind; w == nil || w.Direction != 135 {
		t.Errorf("first leg wind %v, want 135@9", w)
	}
	if w := legs[1].Performance.Wind; w == nil || w.Direction != 180 {
		t.Errorf("second leg wind %v, want 180@9", w)
	}
	// Speed and level carry forward across the wind change.
	if s := legs[1].Performance.Speed; s == nil || s.Knots() != 100 {
		t.Errorf("second leg speed %v, want 100 kt", s)
	}
	if l := legs[1].Performance.Level; l == nil || l.Feet != 5000 {
		t.Errorf("second leg level %v, want FL050", l)
	}
}

func TestDecodeScopeSuppression(t *testing.T) {
	// DCT EDHF opens Itzehoe's area for W1 without routing over the field.
	r, err := Decode("EDDH DCT EDHF W1 EDHF", testNavData())
	if err != nil {
		t.Fatal(err)
	}
	wantKeys(t, r, "EDDH", "EDHF/W1", "EDHF")
}

func TestDecodeCrossingSingleMatch(t *testing.T) {
	nd := testNavData()

	// P2 sits between departure and destination with no via boundary, so
	// both areas are open; it is published only in EDDH's, which decides
	// the match without an explicit DCT.
	r, err := Decode("N0107 A025 01005KT EDDH33 P2 EDHF02", nd)
	if err != nil {
		t.Fatal(err)
	}
	wantKeys(t, r, "EDDH", "EDDH/P2", "EDHF")

	if rwy := r.Origin().Runway; rwy == nil || rwy.ID != "33" {
		t.Errorf("origin runway %v, want 33", rwy)
	}
	if rwy := r.Destination().Runway; rwy == nil || rwy.ID != "02" {
		t.Errorf("destination runway %v, want 02", rwy)
	}
	for i, leg := range r.Legs() {
		if w := leg.Performance.Wind; w == nil || w.Direction != 10 || w.Speed.Knots() != 5 {
			t.Errorf("leg %d wind %v, want 010@5", i, w)
		}
	}

	// A match only in the inbound area decides the same way.
	r, err = Decode("EDDH W1 EDHF", nd)
	if err != nil {
		t.Fatal(err)
	}
	wantKeys(t, r, "EDDH", "EDHF/W1", "EDHF")
}

func TestDecodeCrossingAmbiguity(t *testing.T) {
	nd := testNavData()

	// Between Lübeck and Heringsdorf both areas publish a W.
	_, err := Decode("EDHL W EDAH", nd)
	if !errors.Is(err, ErrAmbiguousWaypoint) {
		t.Fatalf("got %v, want ambiguous waypoint", err)
	}

	// DCT <airport> pins resolution to that airport's area.
	r, err := Decode("EDHL DCT EDHL W EDAH", nd)
	if err != nil {
		t.Fatal(err)
	}
	wantKeys(t, r, "EDHL", "EDHL/W", "EDAH")
	if wp := r.Legs()[0].Destination.Waypoint; wp == nil || wp.Area != "EDHL" {
		t.Errorf("W resolved in %v, want EDHL", wp)
	}

	r, err = Decode("EDHL DCT EDAH W EDAH", nd)
	if err != nil {
		t.Fatal(err)
	}
	wantKeys(t, r, "EDHL", "EDAH/W", "EDAH")
}

func TestDecodeEnrouteDeterminism(t *testing.T) {
	nd := testNavData()
	var first math.Point2LL
	for i := 0; i < 3; i++ {
		r, err := Decode("EDDH DCT ABAMI DCT EDHF", nd)
		if err != nil {
			t.Fatal(err)
		}
		wp := r.Legs()[0].Destination.Waypoint
		if wp == nil {
			t.Fatal("ABAMI did not resolve to a waypoint")
		}
		if i == 0 {
			first = wp.Location
			if first != (math.Point2LL{9.0, 54.2}) {
				t.Errorf("ABAMI resolved to %v, want the earliest-added fix", first)
			}
		} else if wp.Location != first {
			t.Errorf("decode %d resolved ABAMI to %v, previously %v", i, wp.Location, first)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	nd := testNavData()
	for _, tc := range []struct {
		name  string
		route string
		want  error
	}{
		{name: "empty", route: "", want: ErrEmptyRoute},
		{name: "blank", route: "   ", want: ErrEmptyRoute},
		{name: "single fix", route: "EDDH", want: ErrMissingOriginOrDestination},
		{name: "performance only", route: "N0100 F050", want: ErrMissingOriginOrDestination},
		{name: "unknown airport with runway", route: "ZZZZ12 DCT EDDH", want: ErrUnknownAirport},
		{name: "no such runway", route: "EDDH07 DCT EDHF", want: ErrInvalidRunway},
		{name: "unknown waypoint", route: "EDDH DCT QQQQQ DCT EDHF", want: ErrUnknownWaypoint},
		{name: "truncated speed group", route: "EDDH N12 EDHF", want: ErrInvalidPerformanceFormat},
		{name: "wind direction out of range", route: "EDDH 40009KT EDHF", want: ErrInvalidPerformanceFormat},
		{name: "garbage token", route: "EDDH 1234567890 EDHF", want: ErrInvalidToken},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.route, nd)
			if !errors.Is(err, tc.want) {
				t.Errorf("Decode(%q) = %v, want %v", tc.route, err, tc.want)
			}
		})
	}
}

func TestDecodeErrorToken(t *testing.T) {
	_, err := Decode("EDDH DCT QQQQQ DCT EDHF", testNavData())
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("got %T, want *DecodeError", err)
	}
	if derr.Token.Text != "QQQQQ" || derr.Token.Index != 2 {
		t.Errorf("offending token %q at %d, want QQQQQ at 2", derr.Token.Text, derr.Token.Index)
	}
}

func TestDecodeLowercase(t *testing.T) {
	r, err := Decode("eddh33 n0100 dct hlw dct edhf", testNavData())
	if err != nil {
		t.Fatal(err)
	}
	wantKeys(t, r, "EDDH", "HLW", "EDHF")
}

func TestDecodeMagneticCourse(t *testing.T) {
	nd := testNavData()
	dec := Decoder{
		ND:       nd,
		Magnetic: navdata.ConstantVariation(2),
		Time:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	r, err := dec.Decode("EDDH DCT HLW")
	if err != nil {
		t.Fatal(err)
	}
	leg := r.Legs()[0]
	mc, ok := leg.MagneticCourse()
	if !ok {
		t.Fatal("magnetic course not computed")
	}
	approx(t, "magnetic course", mc, math.NormalizeHeading(leg.Course+2), 0.01)

	// Without a date & time there is no variation to apply.
	dec.Time = time.Time{}
	r, err = dec.Decode("EDDH DCT HLW")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Legs()[0].MagneticCourse(); ok {
		t.Error("magnetic course should be absent without a time context")
	}
}

func TestRouteAlternate(t *testing.T) {
	nd := testNavData()
	dec := Decoder{ND: nd}
	r, err := dec.Decode("N0100 13509KT EDDH DCT EDHF")
	if err != nil {
		t.Fatal(err)
	}

	alt, _ := nd.LookupAirport("EDHL")
	leg := r.Alternate(AirportFix(alt, nil), dec)
	if leg.Origin.Key() != "EDHF" || leg.Destination.Key() != "EDHL" {
		t.Errorf("alternate leg %s-%s, want EDHF-EDHL", leg.Origin.Key(), leg.Destination.Key())
	}
	if _, ok := leg.GS(); !ok {
		t.Error("alternate leg should inherit the final performance snapshot")
	}
}
