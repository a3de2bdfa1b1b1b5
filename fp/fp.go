// fp/fp.go
// Copyright(c) 2024-2026 efb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package fp holds the typed performance quantities carried on routes and
// the interface to the flight-planning collaborator. Fuel, mass, and
// runway-analysis arithmetic live with the collaborator, not here.
package fp

import "fmt"

type SpeedUnit int8

const (
	Knots SpeedUnit = iota
	KilometersPerHour
	MachNumber
)

// Speed is a true airspeed or wind speed with its unit of measure.
type Speed struct {
	Value float32
	Unit  SpeedUnit
}

func SpeedKnots(v float32) Speed { return Speed{Value: v, Unit: Knots} }

// machKnots is the ISA sea-level speed of sound; Mach values are
// converted with it absent an atmosphere model.
const machKnots = 661.47

func (s Speed) Knots() float32 {
	switch s.Unit {
	case KilometersPerHour:
		return s.Value * 0.539957
	case MachNumber:
		return s.Value * machKnots
	default:
		return s.Value
	}
}

func (s Speed) String() string {
	switch s.Unit {
	case KilometersPerHour:
		return fmt.Sprintf("%.0f km/h", s.Value)
	case MachNumber:
		return fmt.Sprintf("M%.2f", s.Value)
	default:
		return fmt.Sprintf("%.0f kt", s.Value)
	}
}

type VerticalDistanceKind int8

const (
	// FlightLevel is a pressure level in the standard atmosphere.
	FlightLevel VerticalDistanceKind = iota
	// Altitude is height above mean sea level.
	Altitude
)

// VerticalDistance is a cruise level or altitude, stored in feet.
type VerticalDistance struct {
	Kind VerticalDistanceKind
	Feet int
}

func (v VerticalDistance) String() string {
	if v.Kind == FlightLevel {
		return fmt.Sprintf("FL%03d", v.Feet/100)
	}
	return fmt.Sprintf("%d ft", v.Feet)
}

// Wind is a wind vector given as the direction it blows from, in degrees
// true, and its speed.
type Wind struct {
	Direction float32
	Speed     Speed
}

func (w Wind) String() string {
	return fmt.Sprintf("%03.0f@%.0fKT", w.Direction, w.Speed.Knots())
}

// Fuel is an amount of fuel in liters.
type Fuel float32

func (f Fuel) String() string { return fmt.Sprintf("%.1f L", float32(f)) }

// FuelFlow is a fuel consumption rate in liters per hour.
type FuelFlow float32

// Performance is the cruise performance profile supplied by the
// flight-planning collaborator; the route decoder only uses it to gate and
// compute per-leg fuel.
type Performance interface {
	// FuelFlowAt returns the cruise fuel flow at the given level; level is
	// nil when no level is active on the leg.
	FuelFlowAt(level *VerticalDistance) FuelFlow
}

// ConstantFuelFlow is a Performance with a level-independent fuel flow.
type ConstantFuelFlow FuelFlow

func (ff ConstantFuelFlow) FuelFlowAt(level *VerticalDistance) FuelFlow { return FuelFlow(ff) }
