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
	"testing"
)

func TestVerticalModelSigmaPressureMonotone(t *testing.T) {
	levels := []float64{1.0, 0.9, 0.7, 0.4, 0.1, 0.0}
	vm, err := NewVerticalModel(VGSigmaPressureHydrostatic, 10000, levels, 9.81, 287.04, 50.0, 290.0, 100000.0)
	if err != nil {
		t.Fatal(err)
	}
	z, err := vm.ComputeZ(200)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(z); i++ {
		if z[i] <= z[i-1] {
			t.Fatalf("z not strictly increasing at %d: %v", i, z)
		}
	}
	if z[0] > z[vm.Layers()] {
		t.Errorf("z[0] = %g should be <= z[layers] = %g", z[0], z[vm.Layers()])
	}
}

func TestVerticalModelSigmaZ(t *testing.T) {
	vm, err := NewVerticalModel(VGSigmaZ, 5000, []float64{1.0, 0.5, 0.0}, 0, 0, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	z, err := vm.ComputeZ(100)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{100, 2550, 5000}
	for i, w := range want {
		if z[i] != w {
			t.Errorf("z[%d] = %g, want %g", i, z[i], w)
		}
	}
}

func TestVerticalModelRejectsNonMonotoneSigma(t *testing.T) {
	_, err := NewVerticalModel(VGSigmaZ, 5000, []float64{0.5, 0.6, 0.0}, 0, 0, 0, 0, 0)
	if err == nil {
		t.Error("expected an error for non-monotone sigma levels")
	}
}

func TestVerticalModelCachesNearbySurfaceElevation(t *testing.T) {
	vm, err := NewVerticalModel(VGHeightAGL, 0, []float64{0, 100, 200}, 0, 0, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	z1, err := vm.ComputeZ(1000)
	if err != nil {
		t.Fatal(err)
	}
	z2, err := vm.ComputeZ(1010) // within the 40m recompute threshold
	if err != nil {
		t.Fatal(err)
	}
	if &z1[0] != &z2[0] {
		t.Error("expected the cached z slice to be reused for a nearby surface elevation")
	}
	z3, err := vm.ComputeZ(1100) // outside the threshold
	if err != nil {
		t.Fatal(err)
	}
	if z3[0] != 1100 {
		t.Errorf("z3[0] = %g, want 1100 after recompute", z3[0])
	}
}

func TestHydrostaticSigmaFamily(t *testing.T) {
	for _, k := range []VerticalKind{VGSigmaPressureHydrostatic, VGSigmaPressureNonHydrostatic, VGWRFSigmaPressure} {
		if !k.isHydrostaticSigma() {
			t.Errorf("%v should be in the hydrostatic-sigma family", k)
		}
	}
	if VGPressure.isHydrostaticSigma() {
		t.Error("VGPressure should not be in the hydrostatic-sigma family")
	}
}
