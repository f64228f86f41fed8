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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ProjectionKind tags which cartographic projection a Projection performs.
// Dispatch on Kind is the sum-type substitute for the hand-rolled
// function-pointer structs the original engine used to select a
// projection at runtime (see the teacher's geom/proj package, which
// registers one Transformer pair per named projection).
type ProjectionKind int

const (
	KindLambertConformalConic ProjectionKind = iota
	KindMercator
	KindStereographic
	KindAlbersEqualArea
	KindIdentity
)

func (k ProjectionKind) String() string {
	switch k {
	case KindLambertConformalConic:
		return "lcc"
	case KindMercator:
		return "mercator"
	case KindStereographic:
		return "stereographic"
	case KindAlbersEqualArea:
		return "albers"
	case KindIdentity:
		return "lonlat"
	default:
		return "unknown"
	}
}

// Projection is a bidirectional map between (longitude, latitude) in
// degrees and planar (x, y) in meters (degrees, for KindIdentity). The
// zero value is not valid; construct with one of the New* functions below.
//
// Comparison tolerance for Equal is 1e-6, matching spec.
type Projection struct {
	Kind ProjectionKind

	// Lat1, Lat2 are tangent/secant standard parallels (degrees), used by
	// LCC and Albers. Lat0 is the origin latitude. Lon0 is the central
	// meridian. LatTS is the latitude of true scale, used by Stereographic
	// and optionally Mercator.
	Lat1, Lat2, Lat0, Lon0, LatTS float64
	Ellip                         Ellipsoid

	d derivedConstants
}

// derivedConstants holds the once-computed values each projection variant
// needs on every forward/inverse call.
type derivedConstants struct {
	e      float64 // first eccentricity
	sphere bool

	// LCC / Mercator / Stereographic
	ns, f0, rh0, k0 float64

	// Albers
	ns0, c, rh00 float64

	// Stereographic
	chi1, cosChi1, sinChi1 float64
}

// projError builds a DomainError for a projection failure.
func projError(op, format string, args ...interface{}) error {
	return newError(DomainError, op, fmt.Sprintf(format, args...), nil)
}

func validLonLat(lon, lat float64) bool {
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return false
	}
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

// nudgeFromPole nudges a latitude (radians) away from a pole singularity by
// a small epsilon toward the interior of the valid domain, so round-trip
// unprojection recovers the original longitude instead of snapping to the
// central meridian.
func nudgeFromPole(latRad float64) float64 {
	if math.Abs(halfPi-math.Abs(latRad)) < projEpsln {
		return signOf(latRad) * (halfPi - 2*projEpsln)
	}
	return latRad
}

// NewLCC constructs a Lambert Conformal Conic projection with two standard
// parallels lat1, lat2, origin latitude lat0, and central meridian lon0
// (all degrees).
func NewLCC(lat1, lat2, lat0, lon0 float64, ellip Ellipsoid) (*Projection, error) {
	if !ellip.valid() {
		return nil, newConstructionError(InvalidArgument, "rsigrid.NewLCC", "invalid ellipsoid", nil)
	}
	if math.Abs(lat1+lat2) < 1e-6 {
		return nil, newConstructionError(InvalidArgument, "rsigrid.NewLCC", "standard parallels cannot be equal and opposite across the equator", nil)
	}
	p := &Projection{Kind: KindLambertConformalConic, Lat1: lat1, Lat2: lat2, Lat0: lat0, Lon0: lon0, Ellip: ellip}
	l1, l2, l0 := lat1*degToRad, lat2*degToRad, lat0*degToRad
	e := ellip.eccentricity()
	p.d.e = e
	p.d.sphere = ellip.isSphere()

	sin1, cos1 := math.Sin(l1), math.Cos(l1)
	ms1 := msfnz(e, sin1, cos1)
	ts1 := tsfnz(e, l1, sin1)
	sin2, cos2 := math.Sin(l2), math.Cos(l2)
	ms2 := msfnz(e, sin2, cos2)
	ts2 := tsfnz(e, l2, sin2)
	ts0 := tsfnz(e, l0, math.Sin(l0))

	var ns float64
	if math.Abs(l1-l2) > projEpsln {
		ns = math.Log(ms1/ms2) / math.Log(ts1/ts2)
	} else {
		ns = sin1
	}
	if math.IsNaN(ns) {
		ns = sin1
	}
	f0 := ms1 / (ns * math.Pow(ts1, ns))
	p.d.ns = ns
	p.d.f0 = f0
	p.d.rh0 = ellip.Major * f0 * math.Pow(ts0, ns)
	return p, nil
}

// NewMercator constructs a Mercator projection with central meridian lon0
// and, optionally, a latitude of true scale latTS (pass math.NaN() to use
// scale factor 1 at the equator instead).
func NewMercator(lon0, latTS float64, ellip Ellipsoid) (*Projection, error) {
	if !ellip.valid() {
		return nil, newConstructionError(InvalidArgument, "rsigrid.NewMercator", "invalid ellipsoid", nil)
	}
	p := &Projection{Kind: KindMercator, Lon0: lon0, LatTS: latTS, Ellip: ellip}
	e := ellip.eccentricity()
	p.d.e = e
	p.d.sphere = ellip.isSphere()
	if !math.IsNaN(latTS) {
		ts := latTS * degToRad
		if p.d.sphere {
			p.d.k0 = math.Cos(ts)
		} else {
			p.d.k0 = msfnz(e, math.Sin(ts), math.Cos(ts))
		}
	} else {
		p.d.k0 = 1
	}
	return p, nil
}

// NewStereographic constructs a polar (or oblique) Stereographic
// projection tangent at latitude lat0, central meridian lon0, with scale
// factor k0 at the origin (pass 1 for a tangent projection).
func NewStereographic(lat0, lon0, k0 float64, ellip Ellipsoid) (*Projection, error) {
	if !ellip.valid() {
		return nil, newConstructionError(InvalidArgument, "rsigrid.NewStereographic", "invalid ellipsoid", nil)
	}
	p := &Projection{Kind: KindStereographic, Lat0: lat0, Lon0: lon0, Ellip: ellip}
	e := ellip.eccentricity()
	p.d.e = e
	p.d.sphere = ellip.isSphere()
	p.d.k0 = k0
	l0 := lat0 * degToRad
	// Conformal latitude of the origin, used by the ellipsoidal forward
	// and inverse equations (Snyder 1987, eqs. 3-1 and 21-3 through 21-5).
	chi1 := conformalLatitude(e, l0)
	p.d.chi1 = chi1
	p.d.sinChi1 = math.Sin(chi1)
	p.d.cosChi1 = math.Cos(chi1)
	return p, nil
}

// conformalLatitude converts a geodetic latitude (radians) to Snyder's
// conformal latitude chi for an ellipsoid of eccentricity e.
func conformalLatitude(e, phi float64) float64 {
	sinphi := math.Sin(phi)
	return 2*math.Atan(tsfnzInverseForm(e, phi, sinphi)) - halfPi
}

// tsfnzInverseForm returns 1/tsfnz's reciprocal form used by the conformal
// latitude definition: tan(pi/4 + chi/2) = (tan(pi/4+phi/2)) * ((1-e sin
// phi)/(1+e sin phi))^(e/2).
func tsfnzInverseForm(e, phi, sinphi float64) float64 {
	con := e * sinphi
	return math.Tan(fortPiL+0.5*phi) * math.Pow((1-con)/(1+con), e/2)
}

const fortPiL = math.Pi / 4

// NewAlbers constructs an Albers Equal-Area Conic projection with two
// standard parallels lat1, lat2, origin latitude lat0, and central
// meridian lon0 (degrees).
func NewAlbers(lat1, lat2, lat0, lon0 float64, ellip Ellipsoid) (*Projection, error) {
	if !ellip.valid() {
		return nil, newConstructionError(InvalidArgument, "rsigrid.NewAlbers", "invalid ellipsoid", nil)
	}
	if math.Abs(lat1+lat2) < 1e-6 {
		return nil, newConstructionError(InvalidArgument, "rsigrid.NewAlbers", "standard parallels cannot be equal and opposite across the equator", nil)
	}
	p := &Projection{Kind: KindAlbersEqualArea, Lat1: lat1, Lat2: lat2, Lat0: lat0, Lon0: lon0, Ellip: ellip}
	l1, l2, l0 := lat1*degToRad, lat2*degToRad, lat0*degToRad
	e := ellip.eccentricity()
	p.d.e = e
	p.d.sphere = ellip.isSphere()

	sinPo, cosPo := math.Sin(l1), math.Cos(l1)
	con := sinPo
	ms1 := msfnz(e, sinPo, cosPo)
	qs1 := qsfnz(e, sinPo)

	sinPo, cosPo = math.Sin(l2), math.Cos(l2)
	ms2 := msfnz(e, sinPo, cosPo)
	qs2 := qsfnz(e, sinPo)

	qs0 := qsfnz(e, math.Sin(l0))

	var ns0 float64
	if math.Abs(l1-l2) > projEpsln {
		ns0 = (ms1*ms1 - ms2*ms2) / (qs2 - qs1)
	} else {
		ns0 = con
	}
	c := ms1*ms1 + ns0*qs1
	p.d.ns0 = ns0
	p.d.c = c
	p.d.rh00 = ellip.Major * math.Sqrt(c-ns0*qs0) / ns0
	return p, nil
}

// NewIdentity constructs the pass-through lon/lat projection: project and
// unproject are the identity function (x=lon, y=lat, in degrees).
func NewIdentity() *Projection {
	return &Projection{Kind: KindIdentity, Ellip: WGS84}
}

// Ellipsoid reports the ellipsoid this projection is defined on.
func (p *Projection) Ellipsoid() Ellipsoid { return p.Ellip }

// Clone returns an independent copy of p.
func (p *Projection) Clone() *Projection {
	cp := *p
	return &cp
}

// Equal reports whether p and q describe the same projection within a
// tolerance of 1e-6 on every parameter.
func (p *Projection) Equal(q *Projection) bool {
	if q == nil || p.Kind != q.Kind {
		return false
	}
	const tol = 1e-6
	close := func(a, b float64) bool {
		if math.IsNaN(a) && math.IsNaN(b) {
			return true
		}
		return floats.EqualWithinAbs(a, b, tol)
	}
	return close(p.Lat1, q.Lat1) && close(p.Lat2, q.Lat2) &&
		close(p.Lat0, q.Lat0) && close(p.Lon0, q.Lon0) &&
		close(p.LatTS, q.LatTS) &&
		close(p.Ellip.Major, q.Ellip.Major) && close(p.Ellip.Minor, q.Ellip.Minor)
}

// Project maps (lonDeg, latDeg) to planar (x, y) meters (degrees for
// KindIdentity). It fails with a DomainError when the input is non-finite
// or outside [-180, 180] x [-90, 90].
func (p *Projection) Project(lonDeg, latDeg float64) (x, y float64, err error) {
	if !validLonLat(lonDeg, latDeg) {
		return 0, 0, projError("rsigrid.Projection.Project", "input (%g, %g) is non-finite or out of domain", lonDeg, latDeg)
	}
	if p.Kind == KindIdentity {
		return lonDeg, latDeg, nil
	}
	lon := lonDeg * degToRad
	lat := nudgeFromPole(latDeg * degToRad)

	switch p.Kind {
	case KindLambertConformalConic:
		return p.projectLCC(lon, lat)
	case KindMercator:
		return p.projectMerc(lon, lat)
	case KindStereographic:
		return p.projectStereo(lon, lat)
	case KindAlbersEqualArea:
		return p.projectAEA(lon, lat)
	}
	return 0, 0, projError("rsigrid.Projection.Project", "unknown projection kind %v", p.Kind)
}

// Unproject maps planar (x, y) back to (lonDeg, latDeg). It satisfies
// Unproject(Project(lon, lat)) ~= (lon, lat) within 1e-6 degrees for inputs
// at least 1e-6 degrees from a singular point (poles, antimeridian).
func (p *Projection) Unproject(x, y float64) (lonDeg, latDeg float64, err error) {
	if p.Kind == KindIdentity {
		return x, y, nil
	}
	var lon, lat float64
	switch p.Kind {
	case KindLambertConformalConic:
		lon, lat, err = p.unprojectLCC(x, y)
	case KindMercator:
		lon, lat, err = p.unprojectMerc(x, y)
	case KindStereographic:
		lon, lat, err = p.unprojectStereo(x, y)
	case KindAlbersEqualArea:
		lon, lat, err = p.unprojectAEA(x, y)
	default:
		err = projError("rsigrid.Projection.Unproject", "unknown projection kind %v", p.Kind)
	}
	if err != nil {
		return 0, 0, err
	}
	return lon * radToDeg, lat * radToDeg, nil
}

// --- Lambert Conformal Conic ---
// Forward/inverse equations follow Snyder (1987), as implemented in the
// teacher's geom/proj/lcc.go.

func (p *Projection) projectLCC(lon, lat float64) (x, y float64, err error) {
	e, ns, f0, rh0 := p.d.e, p.d.ns, p.d.f0, p.d.rh0
	con := math.Abs(math.Abs(lat) - halfPi)
	var ts, rh1 float64
	if con > projEpsln {
		ts = tsfnz(e, lat, math.Sin(lat))
		rh1 = p.Ellip.Major * f0 * math.Pow(ts, ns)
	} else {
		con = lat * ns
		if con <= 0 {
			return 0, 0, projError("rsigrid.Projection.Project", "lcc: point projects to infinity")
		}
		rh1 = 0
	}
	theta := ns * adjustLon(lon-p.Lon0*degToRad)
	x = rh1 * math.Sin(theta)
	y = rh0 - rh1*math.Cos(theta)
	return x, y, nil
}

func (p *Projection) unprojectLCC(x, y float64) (lon, lat float64, err error) {
	e, ns, f0, rh0 := p.d.e, p.d.ns, p.d.f0, p.d.rh0
	y = rh0 - y
	var rh1, con float64
	if ns > 0 {
		rh1 = math.Sqrt(x*x + y*y)
		con = 1
	} else {
		rh1 = -math.Sqrt(x*x + y*y)
		con = -1
	}
	theta := 0.0
	if rh1 != 0 {
		theta = math.Atan2(con*x, con*y)
	}
	if rh1 != 0 || ns > 0 {
		c := 1 / ns
		ts := math.Pow(rh1/(p.Ellip.Major*f0), c)
		var ok bool
		lat, ok = phi2z(e, ts)
		if !ok {
			lat = signOf(ns) * halfPi
		}
	} else {
		lat = -halfPi
	}
	lon = adjustLon(theta/ns + p.Lon0*degToRad)
	return lon, lat, nil
}

// --- Mercator ---

func (p *Projection) projectMerc(lon, lat float64) (x, y float64, err error) {
	if math.Abs(math.Abs(lat)-halfPi) <= projEpsln {
		return 0, 0, projError("rsigrid.Projection.Project", "mercator: |lat| == pi/2")
	}
	lon0 := p.Lon0 * degToRad
	if p.d.sphere {
		x = p.Ellip.Major * p.d.k0 * adjustLon(lon-lon0)
		y = p.Ellip.Major * p.d.k0 * math.Log(math.Tan(fortPiL+0.5*lat))
	} else {
		ts := tsfnz(p.d.e, lat, math.Sin(lat))
		x = p.Ellip.Major * p.d.k0 * adjustLon(lon-lon0)
		y = -p.Ellip.Major * p.d.k0 * math.Log(ts)
	}
	return x, y, nil
}

func (p *Projection) unprojectMerc(x, y float64) (lon, lat float64, err error) {
	lon0 := p.Lon0 * degToRad
	if p.d.sphere {
		lat = halfPi - 2*math.Atan(math.Exp(-y/(p.Ellip.Major*p.d.k0)))
	} else {
		ts := math.Exp(-y / (p.Ellip.Major * p.d.k0))
		var ok bool
		lat, ok = phi2z(p.d.e, ts)
		if !ok {
			lat = signOf(y) * halfPi
		}
	}
	lon = adjustLon(lon0 + x/(p.Ellip.Major*p.d.k0))
	return lon, lat, nil
}

// --- Polar/oblique Stereographic ---
// Ellipsoidal forward/inverse via Snyder (1987) eqs. 21-3 through 21-5 and
// 21-15, using the conformal-latitude substitution shared with the
// Mercator/LCC family above.

func (p *Projection) projectStereo(lon, lat float64) (x, y float64, err error) {
	lon0 := p.Lon0 * degToRad
	dlon := adjustLon(lon - lon0)
	if p.d.sphere {
		k := 2 * p.d.k0 / (1 + p.d.sinChi1*math.Sin(lat) + p.d.cosChi1*math.Cos(lat)*math.Cos(dlon))
		x = p.Ellip.Major * k * math.Cos(lat) * math.Sin(dlon)
		y = p.Ellip.Major * k * (p.d.cosChi1*math.Sin(lat) - p.d.sinChi1*math.Cos(lat)*math.Cos(dlon))
		return x, y, nil
	}
	chi := conformalLatitude(p.d.e, lat)
	sinChi, cosChi := math.Sin(chi), math.Cos(chi)
	k := 2 * p.d.k0 / (1 + p.d.sinChi1*sinChi + p.d.cosChi1*cosChi*math.Cos(dlon))
	x = p.Ellip.Major * k * cosChi * math.Sin(dlon)
	y = p.Ellip.Major * k * (p.d.cosChi1*sinChi - p.d.sinChi1*cosChi*math.Cos(dlon))
	return x, y, nil
}

func (p *Projection) unprojectStereo(x, y float64) (lon, lat float64, err error) {
	lon0 := p.Lon0 * degToRad
	rho := math.Hypot(x, y)
	if rho < 1e-12 {
		return lon0, p.Lat0 * degToRad, nil
	}
	c := 2 * math.Atan2(rho, 2*p.Ellip.Major*p.d.k0)
	sinC, cosC := math.Sin(c), math.Cos(c)
	chi := asinz(cosC*p.d.sinChi1 + y*sinC*p.d.cosChi1/rho)
	lon = adjustLon(lon0 + math.Atan2(x*sinC, rho*p.d.cosChi1*cosC-y*p.d.sinChi1*sinC))
	if p.d.sphere {
		return lon, chi, nil
	}
	// Invert the conformal-latitude substitution by fixed-point iteration,
	// mirroring the convergence pattern used by phi2z above.
	phi := chi
	for i := 0; i < 15; i++ {
		sinphi := math.Sin(phi)
		chiPrime := conformalLatitude(p.d.e, phi)
		dphi := chi - chiPrime
		phi += dphi
		if math.Abs(dphi) < 1e-11 {
			break
		}
		_ = sinphi
	}
	return lon, phi, nil
}

// --- Albers Equal-Area Conic ---

func (p *Projection) projectAEA(lon, lat float64) (x, y float64, err error) {
	e, ns0, c := p.d.e, p.d.ns0, p.d.c
	sinphi := math.Sin(lat)
	qs := qsfnz(e, sinphi)
	rh1 := p.Ellip.Major * math.Sqrt(c-ns0*qs) / ns0
	theta := ns0 * adjustLon(lon-p.Lon0*degToRad)
	x = rh1 * math.Sin(theta)
	y = p.d.rh00 - rh1*math.Cos(theta)
	return x, y, nil
}

func (p *Projection) unprojectAEA(x, y float64) (lon, lat float64, err error) {
	e, ns0, c := p.d.e, p.d.ns0, p.d.c
	y = p.d.rh00 - y
	var rh1, con float64
	if ns0 >= 0 {
		rh1 = math.Sqrt(x*x + y*y)
		con = 1
	} else {
		rh1 = -math.Sqrt(x*x + y*y)
		con = -1
	}
	theta := 0.0
	if rh1 != 0 {
		theta = math.Atan2(con*x, con*y)
	}
	con = rh1 * ns0 / p.Ellip.Major
	if p.d.sphere {
		lat = asinz((c - con*con) / (2 * ns0))
	} else {
		qs := (c - con*con) / ns0
		var ok bool
		lat, ok = aeaPhi1z(e, qs)
		if !ok {
			lat = signOf(ns0) * halfPi
		}
	}
	lon = adjustLon(theta/ns0 + p.Lon0*degToRad)
	return lon, lat, nil
}
