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

// testGrid builds the 10x10, 1-degree identity-projection grid used by
// spec.md's S1-S5 scenarios, rooted at (-100, 30).
func testGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := NewGrid(GridConfig{
		Projection: NewIdentity(),
		Columns:    10,
		Rows:       10,
		WestEdge:   -100,
		SouthEdge:  30,
		CellWidth:  1,
		CellHeight: 1,
		Workers:    4,
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestCellCenterRoundTrip(t *testing.T) {
	g := testGrid(t)
	for row := 1; row <= g.Rows; row++ {
		for col := 1; col <= g.Columns; col++ {
			lon, lat := g.CellCenter(row, col)
			x, y, err := g.Projection().Project(lon, lat)
			if err != nil {
				t.Fatalf("project(%g, %g): %v", lon, lat, err)
			}
			wantX := g.WestEdge + (float64(col)-0.5)*g.CellWidth
			wantY := g.SouthEdge + (float64(row)-0.5)*g.CellHeight
			if math.Abs(x-wantX) > g.CellWidth/2 || math.Abs(y-wantY) > g.CellHeight/2 {
				t.Errorf("row=%d col=%d: cell center (%g,%g) projects to (%g,%g), want within half a cell of (%g,%g)",
					row, col, lon, lat, x, y, wantX, wantY)
			}
		}
	}
}

func TestNewGridRejectsInvalidConfig(t *testing.T) {
	cases := []GridConfig{
		{Projection: nil, Columns: 1, Rows: 1, CellWidth: 1, CellHeight: 1},
		{Projection: NewIdentity(), Columns: 0, Rows: 1, CellWidth: 1, CellHeight: 1},
		{Projection: NewIdentity(), Columns: 1, Rows: 1, CellWidth: 0, CellHeight: 1},
	}
	for i, cfg := range cases {
		if _, err := NewGrid(cfg); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestSubset(t *testing.T) {
	g := testGrid(t)
	sub, err := g.Subset(1, 1, 3, 5, 2, 6)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Rows != 3 || sub.Columns != 5 {
		t.Fatalf("subset dims = %dx%d, want 3x5", sub.Rows, sub.Columns)
	}
	parentLon, parentLat := g.CellCenter(3, 2)
	subLon, subLat := sub.CellCenter(1, 1)
	if math.Abs(parentLon-subLon) > 1e-9 || math.Abs(parentLat-subLat) > 1e-9 {
		t.Errorf("subset (1,1) center = (%g,%g), want parent (3,2) center (%g,%g)", subLon, subLat, parentLon, parentLat)
	}
}
