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
	"testing"
)

func mustProjection(t *testing.T, p *Projection, err error) *Projection {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestProjectionRoundTrip(t *testing.T) {
	projections := map[string]*Projection{
		"lcc":      mustProjection(t, NewLCC(33, 45, 40, -97, WGS84)),
		"mercator": mustProjection(t, NewMercator(-90, math.NaN(), WGS84)),
		"stereo":   mustProjection(t, NewStereographic(90, -98, 1, WGS84)),
		"albers":   mustProjection(t, NewAlbers(29.5, 45.5, 23, -96, WGS84)),
		"identity": NewIdentity(),
	}

	lons := []float64{-120, -100, -80, -60, 10, 100}
	lats := []float64{20, 35, 50, 60, -10, -45}

	for name, p := range projections {
		for i, lon := range lons {
			lat := lats[i]
			if math.Abs(lat-90) < 1e-3 || math.Abs(lat+90) < 1e-3 {
				continue
			}
			x, y, err := p.Project(lon, lat)
			if err != nil {
				t.Errorf("%s: project(%g, %g): %v", name, lon, lat, err)
				continue
			}
			lon2, lat2, err := p.Unproject(x, y)
			if err != nil {
				t.Errorf("%s: unproject round trip: %v", name, err)
				continue
			}
			if math.Abs(lon2-lon) > 1e-4 || math.Abs(lat2-lat) > 1e-4 {
				t.Errorf("%s: round trip (%g, %g) -> (%g, %g), want within 1e-4", name, lon, lat, lon2, lat2)
			}
		}
	}
}

func TestProjectionInvalidLatitude(t *testing.T) {
	p := mustProjection(t, NewLCC(33, 45, 40, -97, WGS84))
	if _, _, err := p.Project(-97, 91); err == nil {
		t.Error("expected an error for an out-of-range latitude")
	}
}

func TestProjectionEqual(t *testing.T) {
	p1 := mustProjection(t, NewLCC(33, 45, 40, -97, WGS84))
	p2 := mustProjection(t, NewLCC(33, 45, 40, -97, WGS84))
	if !p1.Equal(p2) {
		t.Error("identical LCC projections should compare equal")
	}
	p3 := mustProjection(t, NewLCC(33, 46, 40, -97, WGS84))
	if p1.Equal(p3) {
		t.Error("LCC projections with different Lat2 should not compare equal")
	}
}

func TestIdentityIsPassthrough(t *testing.T) {
	p := NewIdentity()
	x, y, err := p.Project(-95.5, 35.5)
	if err != nil {
		t.Fatal(err)
	}
	if x != -95.5 || y != 35.5 {
		t.Errorf("identity projection should pass coordinates through unchanged, got (%g, %g)", x, y)
	}
}
