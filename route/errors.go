// route/errors.go
// Copyright(c) 2024-2026 efb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyRoute                 = errors.New("No tokens in route")
	ErrInvalidToken               = errors.New("Unrecognized route token")
	ErrInvalidPerformanceFormat   = errors.New("Malformed performance element")
	ErrUnknownAirport             = errors.New("Unknown airport")
	ErrInvalidRunway              = errors.New("No such runway at airport")
	ErrUnknownWaypoint            = errors.New("Unknown waypoint")
	ErrAmbiguousWaypoint          = errors.New("Waypoint matches in multiple terminal areas")
	ErrMissingOriginOrDestination = errors.New("Route needs both an origin and a destination")
)

// DecodeError reports a failed decode together with the offending token
// and its position in the route string. It unwraps to one of the
// package's sentinel errors.
type DecodeError struct {
	Token Token
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%q (token %d): %v", e.Token.Text, e.Token.Index, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeError(tok Token, err error) *DecodeError {
	return &DecodeError{Token: tok, Err: err}
}
