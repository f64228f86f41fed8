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

func TestCellMean(t *testing.T) {
	var c Cell
	c.reset(1, 1, 1, 0, 0, 0, 0)
	c.contribute(Mean, 10, 0, false, 0, 0, 0, 0)
	c.contribute(Mean, 20, 0, false, 0.5, 0.5, 0, 0)
	c.contribute(Mean, 30, 0, false, -0.5, -0.5, 0, 0)
	c.finalize(Mean)
	if math.Abs(c.Data-20.0) > 1e-9 {
		t.Errorf("mean = %g, want 20", c.Data)
	}
}

func TestCellWeighted(t *testing.T) {
	var c Cell
	c.reset(1, 1, 1, 0, 0, 0, 0)
	c.contribute(Weighted, 100, 0, false, 0, 0, 0, 0)
	c.contribute(Weighted, 200, 0, false, 1, 0, 0, 0)
	c.finalize(Weighted)

	w1 := 1 / TOLERANCE
	w2 := 1 / radiusSq(1, 0, 0)
	want := (100*w1 + 200*w2) / (w1 + w2)
	if math.Abs(c.Data-want) > 1e-6 {
		t.Errorf("weighted mean = %g, want %g", c.Data, want)
	}
}

func TestCellNearestFirstWriterWins(t *testing.T) {
	var c Cell
	c.reset(1, 1, 1, 0, 0, 0, 0)
	c.contribute(Nearest, 1.0, 0, false, 0.2, 0.2, 0, 0)
	c.contribute(Nearest, 2.0, 0, false, -0.2, -0.2, 0, 0) // equal radius_sq, arrives second
	c.finalize(Nearest)
	if c.Data != 1.0 {
		t.Errorf("nearest on exact tie = %g, want 1.0 (first writer)", c.Data)
	}
}

func TestCellNearestCloserWins(t *testing.T) {
	var c Cell
	c.reset(1, 1, 1, 0, 0, 0, 0)
	c.contribute(Nearest, 1.0, 0, false, 0.5, 0.5, 0, 0)
	c.contribute(Nearest, 2.0, 0, false, 0.1, 0.1, 0, 0)
	c.finalize(Nearest)
	if c.Data != 2.0 {
		t.Errorf("nearest = %g, want 2.0 (closer sample)", c.Data)
	}
}

func TestRadiusSqClampsToTolerance(t *testing.T) {
	if r := radiusSq(0, 0, 0); r != TOLERANCE {
		t.Errorf("radiusSq(0,0,0) = %g, want %g", r, TOLERANCE)
	}
}
