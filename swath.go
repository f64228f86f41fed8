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

	"github.com/ctessum/geom"
)

// SwathInput is the input to RegridSwath: one axis-aligned-in-lon/lat
// quadrilateral footprint per sample, with corners listed in ring order,
// clockwise or counter-clockwise (a clockwise ring is reversed to
// counter-clockwise internally). Policy must be Mean or Weighted;
// Nearest has no meaning for an areal footprint.
type SwathInput struct {
	Policy            Policy
	MinimumValidValue float64

	// CornerLon/CornerLat have length Quads*4, laid out
	// [quad*4 + corner].
	CornerLon, CornerLat []float64
	Value                []float64 // length Quads
}

// SwathOutput is the compact result of RegridSwath.
type SwathOutput struct {
	N                int
	Column, Row      []int
	GridLon, GridLat []float64
	Data             []float64
}

func (in *SwathInput) quads() int { return len(in.Value) }

// minQuadArea is the planar area (projected units squared) below which a
// quadrilateral is treated as degenerate (zero-area) and skipped.
const minQuadArea = 1e-6

// RegridSwath projects and reorders the four corners of every swath
// quadrilateral, then bins its scalar value over every grid cell the
// quadrilateral's planar bounding box intersects, using
// github.com/ctessum/geom's polygon clipping (which itself wraps
// github.com/ctessum/polyclip-go) for the cell-by-cell intersection area.
// See spec.md section 4.6.
func (g *Grid) RegridSwath(in SwathInput) (*SwathOutput, error) {
	const op = "rsigrid.Grid.RegridSwath"
	if in.Policy != Mean && in.Policy != Weighted {
		return nil, newError(InvalidArgument, op, "swath regridding supports only Mean and Weighted policies", nil)
	}
	n := in.quads()
	if len(in.CornerLon) != n*4 || len(in.CornerLat) != n*4 {
		return nil, newError(InvalidArgument, op, "corner arrays must have length 4*len(Value)", nil)
	}

	g.resetCells(in.MinimumValidValue)

	nprocs := g.workers
	done := make(chan struct{}, nprocs)
	started := 0
	for w := 0; w < nprocs; w++ {
		started++
		go func(workerID int) {
			for i := workerID; i < n; i += nprocs {
				g.regridOneQuad(in, i)
			}
			done <- struct{}{}
		}(w)
	}
	for i := 0; i < started; i++ {
		<-done
	}

	out := g.compactSwathOutput(in)
	g.finalizeCells()
	return out, nil
}

// regridOneQuad projects and reorders one quadrilateral's corners, then
// clips it against every grid cell whose planar bounding box intersects
// the quadrilateral's own bounding box, contributing value*area (Weighted)
// or value (Mean) to each intersected cell.
func (g *Grid) regridOneQuad(in SwathInput, i int) {
	adjust := g.proj.Ellipsoid().isSphere()
	var ring []geom.Point
	for c := 0; c < 4; c++ {
		lon, lat := in.CornerLon[i*4+c], in.CornerLat[i*4+c]
		if adjust {
			lat = adjustSphereLatitude(lat*degToRad, WGS84, Sphere) * radToDeg
		}
		x, y, err := g.proj.Project(lon, lat)
		if err != nil {
			return
		}
		ring = append(ring, geom.Point{X: x, Y: y})
	}
	ring = closeAndOrientCCW(ring)
	quad := geom.Polygon{ring}
	if quad.Area() < minQuadArea {
		return // degenerate quadrilateral
	}
	bounds := quad.Bounds()
	minX, minY, maxX, maxY := bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y

	east := g.WestEdge + float64(g.Columns)*g.CellWidth
	north := g.SouthEdge + float64(g.Rows)*g.CellHeight
	if maxX < g.WestEdge || minX > east || maxY < g.SouthEdge || minY > north {
		return
	}
	colMin := clampInt(int(math.Floor((minX-g.WestEdge)/g.CellWidth))+1, 1, g.Columns)
	colMax := clampInt(int(math.Floor((maxX-g.WestEdge)/g.CellWidth))+1, 1, g.Columns)
	rowMin := clampInt(int(math.Floor((minY-g.SouthEdge)/g.CellHeight))+1, 1, g.Rows)
	rowMax := clampInt(int(math.Floor((maxY-g.SouthEdge)/g.CellHeight))+1, 1, g.Rows)

	value := in.Value[i]
	if value < in.MinimumValidValue {
		return
	}

	for row := rowMin; row <= rowMax; row++ {
		cy0 := g.SouthEdge + float64(row-1)*g.CellHeight
		cy1 := cy0 + g.CellHeight
		for col := colMin; col <= colMax; col++ {
			cx0 := g.WestEdge + float64(col-1)*g.CellWidth
			cx1 := cx0 + g.CellWidth
			cellPoly := geom.Polygon{{
				{X: cx0, Y: cy0}, {X: cx1, Y: cy0}, {X: cx1, Y: cy1}, {X: cx0, Y: cy1}, {X: cx0, Y: cy0},
			}}
			clipped := quad.Intersection(cellPoly)
			area := clipped.Area()
			if area <= 0 {
				continue
			}
			g.locks.lock(row, col, g.Columns)
			idx := g.slabIndex(col, row, 1)
			c := &g.Cells[idx]
			switch in.Policy {
			case Weighted:
				c.WeightSum += area
				c.Data += value * area
				c.Count++
			case Mean:
				c.Data += value
				c.Count++
			}
			g.locks.unlock(row, col, g.Columns)
		}
	}
}

// closeAndOrientCCW appends a closing point equal to the first if missing,
// and reverses winding order if the ring is clockwise, so the polygon area
// computation and clipping both see a consistent orientation. It does not
// detect quadrilaterals that straddle the antimeridian, and it does not
// reorder corners that form a self-intersecting ring.
func closeAndOrientCCW(ring []geom.Point) []geom.Point {
	if len(ring) == 0 {
		return ring
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	signedArea := 0.0
	for i := 0; i < len(ring)-1; i++ {
		signedArea += (ring[i+1].X - ring[i].X) * (ring[i+1].Y + ring[i].Y)
	}
	if signedArea < 0 {
		// already counter-clockwise under the shoelace-with-y-sum sign convention
		return ring
	}
	for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
		ring[i], ring[j] = ring[j], ring[i]
	}
	return ring
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// compactSwathOutput finalizes every non-empty cell (dividing by the
// weight/count accumulated in regridOneQuad) and rejects cells whose mean
// falls below MinimumValidValue, then compacts the survivors into dense
// output arrays, recovering lon/lat of cell centers via the cached
// cell-center table.
func (g *Grid) compactSwathOutput(in SwathInput) *SwathOutput {
	out := &SwathOutput{}
	for row := 1; row <= g.Rows; row++ {
		for col := 1; col <= g.Columns; col++ {
			c := &g.Cells[g.slabIndex(col, row, 1)]
			if c.Count == 0 {
				continue
			}
			var mean float64
			switch in.Policy {
			case Weighted:
				if c.WeightSum <= 0 {
					continue
				}
				mean = c.Data / c.WeightSum
			case Mean:
				mean = c.Data / float64(c.Count)
			}
			if mean < in.MinimumValidValue {
				continue
			}
			out.Column = append(out.Column, col)
			out.Row = append(out.Row, row)
			out.GridLon = append(out.GridLon, c.Longitude)
			out.GridLat = append(out.GridLat, c.Latitude)
			out.Data = append(out.Data, mean)
			out.N++
		}
	}
	return out
}
