/*
Copyright © 2026 the rsigrid authors.
This file is part of rsigrid.

rsigrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

rsigrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with rsigrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package rsigrid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// VerticalKind tags the vertical coordinate convention a VerticalModel's
// Levels are expressed in.
type VerticalKind int

const (
	// VGSigmaPressureHydrostatic is a hydrostatic sigma-pressure
	// coordinate (MM5-style VGSGPH3).
	VGSigmaPressureHydrostatic VerticalKind = iota
	// VGSigmaPressureNonHydrostatic is a non-hydrostatic sigma-pressure
	// coordinate (MM5-style VGSGPN3). It shares the hydrostatic formula:
	// the source's computeZ dispatch checks VGSGPN3 in the same branch as
	// VGSGPH3 and VGWRFEM (an apparent typo checking it twice), which is
	// behaviorally equivalent to enumerating the three as one family, so
	// that is what this model does.
	VGSigmaPressureNonHydrostatic
	// VGWRFSigmaPressure is the WRF sigma-pressure coordinate, part of the
	// same hydrostatic-sigma family as the two kinds above.
	VGWRFSigmaPressure
	// VGPressure is pressure in Pascals.
	VGPressure
	// VGSigmaZ is a linear sigma-height blend between the surface and a
	// fixed model top height.
	VGSigmaZ
	// VGHeightMSL is height in meters above mean sea level.
	VGHeightMSL
	// VGHeightAGL is height in meters above ground level.
	VGHeightAGL
)

func (k VerticalKind) isHydrostaticSigma() bool {
	switch k {
	case VGSigmaPressureHydrostatic, VGSigmaPressureNonHydrostatic, VGWRFSigmaPressure:
		return true
	}
	return false
}

func (k VerticalKind) isSigma() bool {
	return k.isHydrostaticSigma() || k == VGSigmaZ
}

// Code returns the numeric vgtyp code written into the grid header's
// "# Grid:" line, following the IOAPI vertical-type numbering the source
// pipeline's headers use.
func (k VerticalKind) Code() int {
	switch k {
	case VGSigmaPressureHydrostatic:
		return 1
	case VGSigmaPressureNonHydrostatic:
		return 2
	case VGWRFSigmaPressure:
		return 7
	case VGPressure:
		return 4
	case VGSigmaZ:
		return 3
	case VGHeightMSL:
		return 5
	case VGHeightAGL:
		return 6
	}
	return -1
}

// recomputeThreshold is the surface-elevation change (meters) past which a
// cached z edge array must be recomputed for a new profile.
const recomputeThreshold = 40.0

// VerticalModel converts level coordinates to meters above mean sea level.
// TopValue is the model-top pressure (Pascals) for the sigma-pressure
// family, or the model-top height (meters) for VGSigmaZ; it is unused for
// VGPressure, VGHeightMSL, and VGHeightAGL.
type VerticalModel struct {
	Kind     VerticalKind
	TopValue float64
	// Levels holds layers+1 cell-edge coordinates: strictly decreasing in
	// [0, 1] for sigma kinds, strictly decreasing for VGPressure (pressure
	// falls with height), strictly increasing otherwise (with min >= -1000
	// and max <= 1e6 for non-sigma kinds).
	Levels []float64

	// MM5 hydrostatic-sigma physical constants.
	G, R, A, T0s, P00 float64

	cachedSurfaceElevation float64
	cachedValid            bool
	cachedZ                []float64
}

// NewVerticalModel validates and constructs a VerticalModel.
func NewVerticalModel(kind VerticalKind, topValue float64, levels []float64, g, r, a, t0s, p00 float64) (*VerticalModel, error) {
	const op = "rsigrid.NewVerticalModel"
	if len(levels) < 2 {
		return nil, newConstructionError(InvalidArgument, op, "levels must have at least 2 entries (one layer)", nil)
	}
	for _, l := range levels {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			return nil, newConstructionError(InvalidArgument, op, "non-finite level value", nil)
		}
	}
	vm := &VerticalModel{Kind: kind, TopValue: topValue, Levels: append([]float64(nil), levels...), G: g, R: r, A: a, T0s: t0s, P00: p00}
	if vm.Kind.isSigma() {
		for i := 1; i < len(levels); i++ {
			if levels[i] >= levels[i-1] {
				return nil, newConstructionError(InvalidArgument, op, "sigma levels must be strictly decreasing", nil)
			}
			if levels[i] < 0 || levels[i] > 1 {
				return nil, newConstructionError(InvalidArgument, op, "sigma levels must lie in [0, 1]", nil)
			}
		}
		if levels[0] < 0 || levels[0] > 1 {
			return nil, newConstructionError(InvalidArgument, op, "sigma levels must lie in [0, 1]", nil)
		}
	} else if vm.Kind == VGPressure {
		for i := 1; i < len(levels); i++ {
			if levels[i] >= levels[i-1] {
				return nil, newConstructionError(InvalidArgument, op, "pressure levels must be strictly decreasing", nil)
			}
		}
		if levels[len(levels)-1] < -1000 || levels[0] > 1e6 {
			return nil, newConstructionError(InvalidArgument, op, "levels must lie within [-1000, 1e6]", nil)
		}
	} else {
		for i := 1; i < len(levels); i++ {
			if levels[i] <= levels[i-1] {
				return nil, newConstructionError(InvalidArgument, op, "levels must be strictly increasing", nil)
			}
		}
		if levels[0] < -1000 || levels[len(levels)-1] > 1e6 {
			return nil, newConstructionError(InvalidArgument, op, "levels must lie within [-1000, 1e6] meters", nil)
		}
	}
	return vm, nil
}

// Layers returns the number of layers (len(Levels) - 1).
func (vm *VerticalModel) Layers() int { return len(vm.Levels) - 1 }

// ComputeZ returns the monotone-increasing cell-edge elevations (meters MSL)
// for the given terrain surface elevation, recomputing only if
// surfaceElevation differs from the last computed value by more than 40 m;
// otherwise the cached array is returned as-is to avoid repeating the
// (relatively expensive) sigma-pressure transform for every sample sharing
// a grid column.
func (vm *VerticalModel) ComputeZ(surfaceElevation float64) ([]float64, error) {
	if vm.cachedValid && math.Abs(surfaceElevation-vm.cachedSurfaceElevation) <= recomputeThreshold {
		return vm.cachedZ, nil
	}
	z := make([]float64, len(vm.Levels))
	if err := vm.computeInto(surfaceElevation, z); err != nil {
		return nil, err
	}
	vm.cachedZ = z
	vm.cachedSurfaceElevation = surfaceElevation
	vm.cachedValid = true
	return z, nil
}

// computeInto fills z (len(vm.Levels)) for the given surface elevation with
// no caching, so concurrent callers can each own a private buffer (see
// Grid's per-worker zScratch, which calls this directly instead of sharing
// the cache above across goroutines).
func (vm *VerticalModel) computeInto(surfaceElevation float64, z []float64) error {
	var err error
	switch {
	case vm.Kind.isHydrostaticSigma():
		err = vm.computeZSigmaPressure(surfaceElevation, z)
	case vm.Kind == VGPressure:
		computeZPressure(vm.Levels, z)
	case vm.Kind == VGSigmaZ:
		computeZSigmaZ(vm.Levels, surfaceElevation, vm.TopValue, z)
	case vm.Kind == VGHeightMSL:
		copy(z, vm.Levels)
	case vm.Kind == VGHeightAGL:
		for i, l := range vm.Levels {
			z[i] = surfaceElevation + l
		}
	default:
		return newError(InvalidArgument, "rsigrid.VerticalModel.ComputeZ", "unknown vertical kind", nil)
	}
	if err != nil {
		return err
	}
	if floats.HasNaN(z) {
		return projError("rsigrid.VerticalModel.ComputeZ", "non-finite z, got %v", z)
	}
	for i := 1; i < len(z); i++ {
		if z[i] <= z[i-1] {
			return projError("rsigrid.VerticalModel.ComputeZ", "z must be strictly increasing, got %v", z)
		}
	}
	return nil
}

// computeZSigmaPressure implements the MM5 hydrostatic sigma-pressure to
// height transform shared by the VGSGPH3/VGSGPN3/VGWRFEM family:
//
//	H0s   = R*T0s/g
//	sq    = sqrt(1 - 2*A/T0s/H0s*Zs)
//	q*    = sigma + (1-sigma)*(Pt/P00)*exp(2*Zs/H0s/sq)
//	z     = Zs - H0s*ln(q*)*(A/(2*T0s)*ln(q*) + sq)
func (vm *VerticalModel) computeZSigmaPressure(surfaceElevation float64, z []float64) error {
	h0s := vm.R * vm.T0s / vm.G
	zs := surfaceElevation
	inner := 1 - 2*vm.A/vm.T0s/h0s*zs
	if inner < 0 {
		return projError("rsigrid.VerticalModel.ComputeZ", "sigma-pressure: sqrt of negative value for surface elevation %g", zs)
	}
	sq := math.Sqrt(inner)
	for i, sigma := range vm.Levels {
		qstar := sigma + (1-sigma)*(vm.TopValue/vm.P00)*math.Exp(2*zs/h0s/sq)
		if qstar <= 0 {
			return projError("rsigrid.VerticalModel.ComputeZ", "sigma-pressure: log of non-positive q* at level %d", i)
		}
		lnq := math.Log(qstar)
		z[i] = zs - h0s*lnq*(vm.A/(2*vm.T0s)*lnq+sq)
	}
	return nil
}

// computeZPressure implements z = -7200*ln(p_hPa / 1012.5), a
// log-barometric formula with a standard surface pressure reference of
// 1012.5 hPa. levels are expected in Pascals.
func computeZPressure(levels, z []float64) {
	for i, pPa := range levels {
		pHPa := pPa / 100
		z[i] = -7200 * math.Log(pHPa/1012.5)
	}
}

// computeZSigmaZ implements the linear sigma-height blend
// z = Zs + (1-sigma)*(Ztop - Zs), so sigma = 1 is the surface and sigma = 0
// the model top.
func computeZSigmaZ(levels []float64, zs, ztop float64, z []float64) {
	for i, sigma := range levels {
		z[i] = zs + (1-sigma)*(ztop-zs)
	}
}
