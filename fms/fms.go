// fms/fms.go
// Copyright(c) 2024-2026 efb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package fms ties navigation data and route decoding together for a
// planning session: it owns the dataset, the current route, and an
// optional alternate, and keeps them consistent when the data changes.
package fms

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/openefb/efb/log"
	"github.com/openefb/efb/navdata"
	"github.com/openefb/efb/route"
)

var (
	ErrNoRoute          = errors.New("No route is active")
	ErrUnknownAlternate = errors.New("Alternate matches no airport or waypoint")
)

// Decoded routes are cached per dataset revision; decoding is
// deterministic so a hit is always valid.
const routeCacheSize = 64

// FMS is safe for concurrent use: decoding and reads may run from
// multiple goroutines while dataset mutation is serialized.
type FMS struct {
	mu sync.RWMutex
	db *navdata.Database
	lg *log.Logger

	magnetic navdata.MagneticModel
	now      func() time.Time

	cache    *lru.Cache[string, *route.Route]
	revision uint64

	routeStr     string
	current      *route.Route
	alternateID  string
	alternateLeg *route.Leg
}

func New(db *navdata.Database, lg *log.Logger) *FMS {
	cache, _ := lru.New[string, *route.Route](routeCacheSize)
	return &FMS{
		db:    db,
		lg:    lg,
		now:   time.Now,
		cache: cache,
	}
}

// SetMagneticModel enables magnetic courses on subsequently decoded
// routes. It does not retrofit the current route.
func (f *FMS) SetMagneticModel(m navdata.MagneticModel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.magnetic = m
}

func (f *FMS) decoder() route.Decoder {
	d := route.Decoder{ND: f.db, Log: f.lg}
	if f.magnetic != nil {
		d.Magnetic = f.magnetic
		d.Time = f.now()
	}
	return d
}

func (f *FMS) cacheKey(s string) string {
	return strconv.FormatUint(f.revision, 10) + "\x00" + s
}

// Decode decodes the route string and makes the result the session's
// current route. On failure the previous route stays active.
func (f *FMS) Decode(s string) (*route.Route, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s = strings.Join(strings.Fields(strings.ToUpper(s)), " ")
	r, err := f.decodeLocked(s)
	if err != nil {
		return nil, err
	}

	f.routeStr = s
	f.current = r
	f.refreshAlternateLocked()
	return r, nil
}

func (f *FMS) decodeLocked(s string) (*route.Route, error) {
	if r, ok := f.cache.Get(f.cacheKey(s)); ok {
		return r, nil
	}
	r, err := f.decoder().Decode(s)
	if err != nil {
		f.lg.Warnf("route decode failed: %v", err)
		return nil, err
	}
	f.cache.Add(f.cacheKey(s), r)
	return r, nil
}

// Route returns the current route, or nil when none is active.
func (f *FMS) Route() *route.Route {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// ModifyNavData applies a dataset mutation and re-decodes the current
// route against the changed data. If the route no longer decodes it is
// dropped and the decode error returned; the mutation itself stands.
func (f *FMS) ModifyNavData(mutate func(*navdata.Database)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	mutate(f.db)
	f.revision++
	return f.redecodeLocked()
}

// ReplaceNavData swaps in a whole new dataset, as with an AIRAC cycle
// update, and re-decodes the current route against it.
func (f *FMS) ReplaceNavData(db *navdata.Database) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.db = db
	f.revision++
	return f.redecodeLocked()
}

func (f *FMS) redecodeLocked() error {
	if f.routeStr == "" {
		return nil
	}
	r, err := f.decodeLocked(f.routeStr)
	if err != nil {
		f.lg.Warnf("route %q dropped after dataset change: %v", f.routeStr, err)
		f.routeStr = ""
		f.current = nil
		f.alternateLeg = nil
		return err
	}
	f.current = r
	f.refreshAlternateLocked()
	return nil
}

// SetAlternate sets the diversion target by ident: an airport, or failing
// that an enroute waypoint. The alternate leg continues from the current
// route's destination under its final performance snapshot.
func (f *FMS) SetAlternate(ident string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current == nil {
		return ErrNoRoute
	}

	ident = strings.ToUpper(strings.TrimSpace(ident))
	fix, ok := f.lookupAlternateLocked(ident)
	if !ok {
		return ErrUnknownAlternate
	}

	leg := f.current.Alternate(fix, f.decoder())
	f.alternateID = ident
	f.alternateLeg = &leg
	return nil
}

// ClearAlternate drops the diversion leg.
func (f *FMS) ClearAlternate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alternateID = ""
	f.alternateLeg = nil
}

// AlternateLeg returns the diversion leg, if one is set.
func (f *FMS) AlternateLeg() (route.Leg, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.alternateLeg == nil {
		return route.Leg{}, false
	}
	return *f.alternateLeg, true
}

func (f *FMS) lookupAlternateLocked(ident string) (route.Fix, bool) {
	if ap, ok := f.db.LookupAirport(ident); ok {
		return route.AirportFix(ap, nil), true
	}
	for wp := range f.db.LookupEnrouteWaypoints(ident) {
		return route.WaypointFix(wp), true
	}
	return route.Fix{}, false
}

// refreshAlternateLocked recomputes the alternate leg after the route or
// the dataset changed; an alternate that no longer resolves is dropped.
func (f *FMS) refreshAlternateLocked() {
	if f.alternateID == "" || f.current == nil {
		f.alternateLeg = nil
		return
	}
	fix, ok := f.lookupAlternateLocked(f.alternateID)
	if !ok {
		f.lg.Warnf("alternate %s no longer resolves; dropping it", f.alternateID)
		f.alternateID = ""
		f.alternateLeg = nil
		return
	}
	leg := f.current.Alternate(fix, f.decoder())
	f.alternateLeg = &leg
}
