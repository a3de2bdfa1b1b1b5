// route/performance.go
// Copyright(c) 2024-2026 efb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	gomath "math"
	"strconv"
	"strings"

	"github.com/openefb/efb/fp"
)

// PerformanceSnapshot is the speed, level, and wind in force at a point in
// the route. Fields persist from token to token until overridden; a nil
// field has never been set.
type PerformanceSnapshot struct {
	Speed *fp.Speed
	Level *fp.VerticalDistance
	Wind  *fp.Wind
}

func (s PerformanceSnapshot) withSpeed(v fp.Speed) PerformanceSnapshot {
	s.Speed = &v
	return s
}

func (s PerformanceSnapshot) withLevel(v fp.VerticalDistance) PerformanceSnapshot {
	s.Level = &v
	return s
}

func (s PerformanceSnapshot) withWind(v fp.Wind) PerformanceSnapshot {
	s.Wind = &v
	return s
}

const metersToFeet = 3.28084

// parseSpeed parses an ICAO speed group: K or N followed by 4 digits
// (km/h, knots), or M followed by 3 digits (hundredths of Mach). ok
// reports whether the token has the speed shape at all; err is non-nil if
// it does but the digits are malformed.
func parseSpeed(s string) (fp.Speed, bool, error) {
	if len(s) < 1 {
		return fp.Speed{}, false, nil
	}
	var unit fp.SpeedUnit
	var digits int
	switch s[0] {
	case 'K':
		unit, digits = fp.KilometersPerHour, 4
	case 'N':
		unit, digits = fp.Knots, 4
	case 'M':
		unit, digits = fp.MachNumber, 3
	default:
		return fp.Speed{}, false, nil
	}
	if len(s) != 1+digits || !allDigits(s[1:]) {
		return fp.Speed{}, false, nil
	}

	v, err := strconv.Atoi(s[1:])
	if err != nil {
		return fp.Speed{}, true, ErrInvalidPerformanceFormat
	}
	value := float32(v)
	if unit == fp.MachNumber {
		value /= 100 // M082 is Mach 0.82
	}
	return fp.Speed{Value: value, Unit: unit}, true, nil
}

// parseLevel parses an ICAO level group per Doc 4444: F, S, or A followed
// by 3 digits (flight level, standard metric level in tens of meters,
// altitude in hundreds of feet), or M followed by 4 digits (altitude in
// tens of meters).
func parseLevel(s string) (fp.VerticalDistance, bool, error) {
	if len(s) < 1 {
		return fp.VerticalDistance{}, false, nil
	}

	var digits int
	switch s[0] {
	case 'F', 'S', 'A':
		digits = 3
	case 'M':
		digits = 4
	default:
		return fp.VerticalDistance{}, false, nil
	}
	if len(s) != 1+digits || !allDigits(s[1:]) {
		return fp.VerticalDistance{}, false, nil
	}

	v, err := strconv.Atoi(s[1:])
	if err != nil {
		return fp.VerticalDistance{}, true, ErrInvalidPerformanceFormat
	}

	switch s[0] {
	case 'F':
		return fp.VerticalDistance{Kind: fp.FlightLevel, Feet: v * 100}, true, nil
	case 'S':
		// Tens of meters, expressed as a flight level in hundreds of feet.
		fl := int(gomath.Round(float64(v) * 10 * metersToFeet / 100))
		return fp.VerticalDistance{Kind: fp.FlightLevel, Feet: fl * 100}, true, nil
	case 'A':
		return fp.VerticalDistance{Kind: fp.Altitude, Feet: v * 100}, true, nil
	default: // M
		ft := int(gomath.Round(float64(v) * 10 * metersToFeet))
		return fp.VerticalDistance{Kind: fp.Altitude, Feet: ft}, true, nil
	}
}

// parseWind parses a METAR-style wind group: 3-digit direction, 2-3 digit
// speed, literal KT suffix.
func parseWind(s string) (fp.Wind, bool, error) {
	if !strings.HasSuffix(s, "KT") {
		return fp.Wind{}, false, nil
	}
	digits := s[:len(s)-2]
	if len(digits) < 5 || len(digits) > 6 || !allDigits(digits) {
		return fp.Wind{}, false, nil
	}

	dir, err := strconv.Atoi(digits[:3])
	if err != nil || dir > 360 {
		return fp.Wind{}, true, ErrInvalidPerformanceFormat
	}
	speed, err := strconv.Atoi(digits[3:])
	if err != nil {
		return fp.Wind{}, true, ErrInvalidPerformanceFormat
	}

	return fp.Wind{Direction: float32(dir), Speed: fp.SpeedKnots(float32(speed))}, true, nil
}
