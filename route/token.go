// route/token.go
// Copyright(c) 2024-2026 efb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"strings"

	"github.com/openefb/efb/fp"
	"github.com/openefb/efb/navdata"
)

// Token is a single whitespace-delimited element of the route string,
// with its zero-based position.
type Token struct {
	Text  string
	Index int
}

// ScanRoute splits the route string into ordered tokens. Tokens are
// uppercased; classification is left to classify since the same surface
// shape can mean different things depending on navigation data and
// position.
func ScanRoute(s string) ([]Token, error) {
	fields := strings.Fields(strings.ToUpper(s))
	if len(fields) == 0 {
		return nil, ErrEmptyRoute
	}

	tokens := make([]Token, len(fields))
	for i, f := range fields {
		tokens[i] = Token{Text: f, Index: i}
	}
	return tokens, nil
}

type wordKind uint8

const (
	wordVia wordKind = iota
	wordSpeed
	wordLevel
	wordWind
	wordAirport
	wordWaypoint
)

// word is a classified token. Waypoint words stay unresolved here;
// resolving them needs the terminal-area scope, which depends on the
// surrounding words.
type word struct {
	tok     Token
	kind    wordKind
	speed   fp.Speed
	level   fp.VerticalDistance
	wind    fp.Wind
	airport *navdata.Airport
	runway  *navdata.Runway
}

func classifyWords(tokens []Token, nd navdata.Lookup) ([]word, error) {
	words := make([]word, len(tokens))
	for i, tok := range tokens {
		w, err := classify(tok, nd)
		if err != nil {
			return nil, err
		}
		words[i] = w
	}
	return words, nil
}

func classify(tok Token, nd navdata.Lookup) (word, error) {
	s := tok.Text

	if s == "DCT" {
		return word{tok: tok, kind: wordVia}, nil
	}

	if ap, ok := nd.LookupAirport(s); ok {
		return word{tok: tok, kind: wordAirport, airport: ap}, nil
	}

	if v, ok, err := parseSpeed(s); ok {
		if err != nil {
			return word{}, decodeError(tok, err)
		}
		return word{tok: tok, kind: wordSpeed, speed: v}, nil
	}
	if v, ok, err := parseLevel(s); ok {
		if err != nil {
			return word{}, decodeError(tok, err)
		}
		return word{tok: tok, kind: wordLevel, level: v}, nil
	}
	if v, ok, err := parseWind(s); ok {
		if err != nil {
			return word{}, decodeError(tok, err)
		}
		return word{tok: tok, kind: wordWind, wind: v}, nil
	}

	// An ICAO identifier with a trailing runway designator, e.g. EDDH33.
	if ident, designator, ok := splitRunway(s); ok {
		ap, found := nd.LookupAirport(ident)
		if !found {
			return word{}, decodeError(tok, ErrUnknownAirport)
		}
		rwy, found := nd.LookupRunway(ap, designator)
		if !found {
			return word{}, decodeError(tok, ErrInvalidRunway)
		}
		return word{tok: tok, kind: wordAirport, airport: ap, runway: rwy}, nil
	}

	if isWaypointIdent(s) {
		return word{tok: tok, kind: wordWaypoint}, nil
	}

	if perfLike(s) {
		return word{}, decodeError(tok, ErrInvalidPerformanceFormat)
	}
	return word{}, decodeError(tok, ErrInvalidToken)
}

// splitRunway splits an airport-with-runway token into its 4-character
// ICAO identifier and runway designator (1-2 digits plus an optional L, R,
// or C suffix).
func splitRunway(s string) (ident, designator string, ok bool) {
	if len(s) < 5 {
		return "", "", false
	}
	ident, designator = s[:4], s[4:]
	for _, ch := range ident {
		if ch < 'A' || ch > 'Z' {
			return "", "", false
		}
	}

	d := designator
	if last := d[len(d)-1]; last == 'L' || last == 'R' || last == 'C' {
		d = d[:len(d)-1]
	}
	if len(d) == 0 || len(d) > 2 {
		return "", "", false
	}
	for _, ch := range d {
		if ch < '0' || ch > '9' {
			return "", "", false
		}
	}
	return ident, designator, true
}

// isWaypointIdent reports whether s could be a fix identifier: 1-5
// alphanumeric characters, starting with a letter or digit.
func isWaypointIdent(s string) bool {
	if len(s) == 0 || len(s) > 5 {
		return false
	}
	for _, ch := range s {
		if (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') {
			return false
		}
	}
	return true
}

// perfLike reports whether s has the rough shape of a performance element
// (a speed/level letter followed by digits, or a digits+KT wind) without
// being a valid one; used to report such tokens as malformed performance
// rather than unknown waypoints.
func perfLike(s string) bool {
	if strings.HasSuffix(s, "KT") && len(s) > 2 {
		return allDigits(s[:len(s)-2])
	}
	if len(s) < 2 {
		return false
	}
	switch s[0] {
	case 'K', 'N', 'M', 'F', 'S', 'A':
		return allDigits(s[1:])
	}
	return false
}

func allDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return len(s) > 0
}
