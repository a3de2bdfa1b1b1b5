// navdata/snapshot.go
// Copyright(c) 2024-2026 efb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package navdata

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/openefb/efb/util"
)

// Snapshot is the host handoff format for navigation data: the host parses
// whatever source it has (ARINC 424, AIXM, hand-built fixtures) into a
// snapshot and this package builds the lookup structures from it. Waypoint
// order in the snapshot is preserved and defines the enroute tie-break
// order.
type Snapshot struct {
	Airports  []Airport  `json:"airports"`
	Waypoints []Waypoint `json:"waypoints"`
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// LoadSnapshot reads a JSON snapshot, optionally zstd-compressed, and
// builds a Database from it.
func LoadSnapshot(r io.Reader) (*Database, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(4); err == nil && bytes.Equal(magic, zstdMagic) {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		return loadSnapshotJSON(zr)
	}
	return loadSnapshotJSON(br)
}

func loadSnapshotJSON(r io.Reader) (*Database, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding navigation data snapshot: %w", err)
	}

	db := New()
	for i := range snap.Airports {
		db.AddAirport(&snap.Airports[i])
	}
	for i := range snap.Waypoints {
		db.AddWaypoint(&snap.Waypoints[i])
	}
	return db, nil
}

// SaveSnapshot writes the database as a JSON snapshot, zstd-compressed if
// compress is set. Enroute waypoints keep their insertion order; terminal
// waypoints are written per area, areas sorted, so that a load-save
// round trip is deterministic.
func (db *Database) SaveSnapshot(w io.Writer, compress bool) error {
	var snap Snapshot
	snap.Airports = util.MapSlice(util.SortedMapKeys(db.airports),
		func(icao string) Airport { return *db.airports[icao] })
	for wp := range db.EnrouteWaypoints() {
		snap.Waypoints = append(snap.Waypoints, *wp)
	}
	for _, area := range util.SortedMapKeys(db.terminal) {
		wps := db.terminal[area]
		for _, ident := range util.SortedMapKeys(wps) {
			snap.Waypoints = append(snap.Waypoints, *wps[ident])
		}
	}

	if compress {
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("zstd: %w", err)
		}
		if err := json.NewEncoder(zw).Encode(snap); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	}
	return json.NewEncoder(w).Encode(snap)
}
