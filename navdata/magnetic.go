// navdata/magnetic.go
// Copyright(c) 2024-2026 efb contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package navdata

import (
	"time"

	"github.com/openefb/efb/math"
)

// MagneticModel provides the magnetic variation (declination) at a point
// for a given date. East variation is positive. The second return value is
// false if the model has no data for the point or date.
type MagneticModel interface {
	Variation(p math.Point2LL, t time.Time) (float32, bool)
}

// ConstantVariation is a MagneticModel with a single variation everywhere;
// mostly useful in tests and for small-area datasets.
type ConstantVariation float32

func (v ConstantVariation) Variation(p math.Point2LL, t time.Time) (float32, bool) {
	return float32(v), true
}

// MagneticGrid is a MagneticModel backed by a regular lat-long grid of
// declination samples for a single model epoch; points are resolved to the
// nearest sample.
type MagneticGrid struct {
	MinLatitude, MaxLatitude   float32
	MinLongitude, MaxLongitude float32
	LatLongStep                float32
	Epoch                      time.Time
	Samples                    []float32
}

func (mg *MagneticGrid) Variation(p math.Point2LL, t time.Time) (float32, bool) {
	if p[0] < mg.MinLongitude || p[0] > mg.MaxLongitude ||
		p[1] < mg.MinLatitude || p[1] > mg.MaxLatitude {
		return 0, false
	}

	nlat := int(1 + (mg.MaxLatitude-mg.MinLatitude)/mg.LatLongStep)
	nlong := int(1 + (mg.MaxLongitude-mg.MinLongitude)/mg.LatLongStep)

	// Round to nearest
	lat := min(int((p[1]-mg.MinLatitude)/mg.LatLongStep+0.5), nlat-1)
	long := min(int((p[0]-mg.MinLongitude)/mg.LatLongStep+0.5), nlong-1)

	i := long + nlong*lat
	if i < 0 || i >= len(mg.Samples) {
		return 0, false
	}
	return mg.Samples[i], true
}
