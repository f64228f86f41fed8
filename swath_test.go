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

	"github.com/ctessum/geom"
)

// TestRegridSwathSingleCellCoverage covers a quadrilateral that exactly
// covers one grid cell with the Mean policy: exactly that cell is emitted,
// and its mean must equal the quad's value.
func TestRegridSwathSingleCellCoverage(t *testing.T) {
	g := testGrid(t)
	out, err := g.RegridSwath(SwathInput{
		Policy:     Mean,
		CornerLon:  []float64{-95, -94, -94, -95},
		CornerLat:  []float64{35, 35, 36, 36},
		Value:      []float64{7.5},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.N != 1 {
		t.Fatalf("N = %d, want 1", out.N)
	}
	if out.Column[0] != 6 || out.Row[0] != 6 {
		t.Errorf("column=%d row=%d, want column=6 row=6", out.Column[0], out.Row[0])
	}
	if math.Abs(out.Data[0]-7.5) > 1e-6 {
		t.Errorf("data = %g, want 7.5", out.Data[0])
	}
}

// TestRegridSwathSpansMultipleCells covers a quadrilateral straddling four
// cells with Weighted policy; every touched cell's value must equal the
// quad's value (since only one quad contributes to each).
func TestRegridSwathSpansMultipleCells(t *testing.T) {
	g := testGrid(t)
	out, err := g.RegridSwath(SwathInput{
		Policy:    Weighted,
		CornerLon: []float64{-95.5, -94.5, -94.5, -95.5},
		CornerLat: []float64{35.5, 35.5, 36.5, 36.5},
		Value:     []float64{3.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.N != 4 {
		t.Fatalf("N = %d, want 4 (spans a 2x2 block of cells)", out.N)
	}
	for i := 0; i < out.N; i++ {
		if math.Abs(out.Data[i]-3.0) > 1e-6 {
			t.Errorf("cell %d data = %g, want 3.0", i, out.Data[i])
		}
	}
}

// TestRegridSwathRejectsNearest matches spec.md's restriction that the
// swath path only supports Mean and Weighted.
func TestRegridSwathRejectsNearest(t *testing.T) {
	g := testGrid(t)
	_, err := g.RegridSwath(SwathInput{
		Policy:    Nearest,
		CornerLon: []float64{-95, -94, -94, -95},
		CornerLat: []float64{35, 35, 36, 36},
		Value:     []float64{1.0},
	})
	if err == nil {
		t.Error("expected an error for Nearest policy")
	}
}

// TestRegridSwathDegenerateQuadSkipped covers a zero-area quadrilateral
// (all four corners collinear), which must be skipped rather than error.
func TestRegridSwathDegenerateQuadSkipped(t *testing.T) {
	g := testGrid(t)
	out, err := g.RegridSwath(SwathInput{
		Policy:    Mean,
		CornerLon: []float64{-95, -95, -95, -95},
		CornerLat: []float64{35, 35.2, 35.4, 35.6},
		Value:     []float64{9.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.N != 0 {
		t.Errorf("N = %d, want 0 for a degenerate quadrilateral", out.N)
	}
}

func TestCloseAndOrientCCW(t *testing.T) {
	cw := []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	oriented := closeAndOrientCCW(cw)
	if len(oriented) != 5 {
		t.Fatalf("len = %d, want 5 (closed ring)", len(oriented))
	}
	if oriented[0] != oriented[len(oriented)-1] {
		t.Error("ring should be closed")
	}
	poly := geom.Polygon{oriented}
	if poly.Area() <= 0 {
		t.Errorf("oriented unit square should have positive area, got %g", poly.Area())
	}
}
