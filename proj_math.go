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

import "math"

// Shared iterative/series helpers for the conformal and equal-area
// projections below. Grounded on github.com/ctessum/geom/proj's common.go,
// lcc.go and aea.go, which implement the same Snyder (1987) formulas.

const (
	twoPi  = math.Pi * 2
	halfPi = math.Pi / 2
	// sPi is slightly greater than Pi so that values that exceed the
	// -180..180 degree range by a tiny floating-point amount don't get
	// wrapped across the antimeridian.
	sPi       = 3.14159265359
	projEpsln = 1.0e-10
)

func signOf(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// adjustLon wraps a longitude difference (radians) into [-pi, pi].
func adjustLon(x float64) float64 {
	if math.Abs(x) <= sPi {
		return x
	}
	return x - signOf(x)*twoPi
}

// msfnz is Snyder's m(phi) function: the ratio between the parallel's
// radius and the equatorial radius.
func msfnz(eccent, sinphi, cosphi float64) float64 {
	con := eccent * sinphi
	return cosphi / math.Sqrt(1-con*con)
}

// tsfnz is Snyder's t(phi) function, used by conformal projections.
func tsfnz(eccent, phi, sinphi float64) float64 {
	con := eccent * sinphi
	com := 0.5 * eccent
	con = math.Pow((1-con)/(1+con), com)
	return math.Tan(0.5*(halfPi-phi)) / con
}

// phi2z inverts tsfnz by fixed-point iteration, converging within a fixed
// maximum iteration count; on non-convergence the caller substitutes the
// nearest pole.
func phi2z(eccent, ts float64) (float64, bool) {
	eccnth := 0.5 * eccent
	phi := halfPi - 2*math.Atan(ts)
	for i := 0; i <= 15; i++ {
		con := eccent * math.Sin(phi)
		dphi := halfPi - 2*math.Atan(ts*math.Pow((1-con)/(1+con), eccnth)) - phi
		phi += dphi
		if math.Abs(dphi) <= 1e-10 {
			return phi, true
		}
	}
	return phi, false
}

// qsfnz is Snyder's q(phi) function used by the Albers equal-area forward
// and inverse equations.
func qsfnz(eccent, sinphi float64) float64 {
	if eccent > 1.0e-7 {
		con := eccent * sinphi
		return (1 - eccent*eccent) * (sinphi/(1-con*con) - (0.5/eccent)*math.Log((1-con)/(1+con)))
	}
	return 2 * sinphi
}

// aeaPhi1z inverts qsfnz for the Albers equal-area inverse equations,
// converging within a fixed iteration count.
func aeaPhi1z(eccent, qs float64) (float64, bool) {
	phi := asinz(0.5 * qs)
	if eccent < projEpsln {
		return phi, true
	}
	eccnts := eccent * eccent
	for i := 0; i < 25; i++ {
		sinphi := math.Sin(phi)
		cosphi := math.Cos(phi)
		con := eccent * sinphi
		com := 1 - con*con
		dphi := 0.5 * com * com / cosphi * (qs/(1-eccnts) - sinphi/com + 0.5/eccent*math.Log((1-con)/(1+con)))
		phi += dphi
		if math.Abs(dphi) <= 1e-7 {
			return phi, true
		}
	}
	return phi, false
}

// asinz clamps its argument to [-1, 1] before calling math.Asin, guarding
// against floating-point overshoot at the poles.
func asinz(x float64) float64 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return math.Asin(x)
}

const degToRad = math.Pi / 180.0
const radToDeg = 180.0 / math.Pi
