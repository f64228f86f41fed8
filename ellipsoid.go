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

// Ellipsoid is a pair of positive semi-axes describing a reference
// ellipsoid, major >= minor, both finite and positive.
type Ellipsoid struct {
	Major float64 // semi-major axis, meters
	Minor float64 // semi-minor axis, meters
}

// WGS84 is the World Geodetic System 1984 reference ellipsoid.
var WGS84 = Ellipsoid{Major: 6378137.0, Minor: 6356752.314245}

// Sphere is a perfect-sphere approximation with the radius commonly used by
// meteorological grid projections (e.g. NCEP/NCAR reanalysis grids).
var Sphere = Ellipsoid{Major: 6370997.0, Minor: 6370997.0}

func (e Ellipsoid) valid() bool {
	return !math.IsNaN(e.Major) && !math.IsNaN(e.Minor) &&
		!math.IsInf(e.Major, 0) && !math.IsInf(e.Minor, 0) &&
		e.Major > 0 && e.Minor > 0 && e.Major >= e.Minor
}

// isSphere reports whether the ellipsoid is (to floating-point tolerance) a
// perfect sphere, which matters because some projection formulas take a
// simplified spherical branch.
func (e Ellipsoid) isSphere() bool {
	return math.Abs(e.Major-e.Minor) < 1e-6
}

// eccentricity returns sqrt((a^2 - b^2) / a^2) for the ellipsoid.
func (e Ellipsoid) eccentricity() float64 {
	f := e.Minor / e.Major
	return math.Sqrt(1 - f*f)
}

// adjustSphereLatitude corrects a latitude (radians) measured against the
// WGS84 spheroid to the equivalent geocentric latitude on a perfect sphere,
// or vice versa, matching the correction the grid applies to cell-center
// caches when its projection is defined on a sphere. The formula is the
// standard geodetic-to-geocentric latitude conversion using the flattening
// derived from the two ellipsoids' axis ratios.
func adjustSphereLatitude(latRad float64, from, to Ellipsoid) float64 {
	if from.isSphere() && to.isSphere() {
		return latRad
	}
	// Convert from geodetic (on `from`) to geocentric, then to geodetic on `to`.
	fFrom := 1 - from.Minor/from.Major
	e2From := fFrom * (2 - fFrom)
	geocentric := math.Atan((1 - e2From) * math.Tan(latRad))

	fTo := 1 - to.Minor/to.Major
	e2To := fTo * (2 - fTo)
	if e2To == 0 {
		return geocentric
	}
	return math.Atan(math.Tan(geocentric) / (1 - e2To))
}
