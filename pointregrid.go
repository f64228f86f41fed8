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
	"sync"
)

// elevationTolerance bounds how much successive profile elevations may
// differ and still be treated as the same (collapsed) sub-surface sample
// when walking up from the bottom of a profile to find its surface layer.
const elevationTolerance = 1.0

// PointInput is the input to RegridPoints. Lon/Lat have length Points.
// Elevations, Data, and Data2 are laid out [point*Levels + level]. Levels
// is 1 for plain point data, or the number of vertical samples per profile.
// Elevations may be nil only when Levels == 1, in which case a surface
// elevation of 0 is assumed for vertical placement (single-level satellite
// products with no terrain information).
type PointInput struct {
	Policy            Policy
	MinimumValidValue float64

	Lon, Lat   []float64
	Levels     int
	Elevations []float64 // optional; required if Levels > 1
	Data       []float64
	Data2      []float64 // optional second vector component
	Notes      []string  // optional, length Points
}

// PointOutput is the compact result of RegridPoints: parallel dense arrays
// of length N (the number of input points that mapped to an in-domain
// cell with at least one valid contribution at emission time).
type PointOutput struct {
	N int

	Column, Row []int
	Layer       []int // nil for a 2-D grid (Layers == 1)

	GridLon, GridLat []float64
	GridZ            []float64 // nil when the grid has no vertical model

	Data, Data2 []float64 // Data2 nil if PointInput.Data2 was nil
	Note        []string  // nil if PointInput.Notes was nil
}

func (in *PointInput) points() int {
	if in.Levels <= 0 {
		return 0
	}
	return len(in.Lon)
}

// RegridPoints projects each scalar/vector sample, locates its 3-D cell,
// and drives the Aggregator for policy in.Policy. See spec section 4.5 for
// the full algorithm; this implements it with one worker goroutine per
// runtime.GOMAXPROCS(0) slot (or Grid.workers if configured), striding over
// points the way the teacher's framework.go strides over cells.
func (g *Grid) RegridPoints(in PointInput) (*PointOutput, error) {
	const op = "rsigrid.Grid.RegridPoints"
	points := in.points()
	if len(in.Lat) != points {
		return nil, newError(InvalidArgument, op, "lon/lat length mismatch", nil)
	}
	if in.Levels < 1 {
		return nil, newError(InvalidArgument, op, "levels must be >= 1", nil)
	}
	if len(in.Data) != points*in.Levels {
		return nil, newError(InvalidArgument, op, "data length does not match points*levels", nil)
	}
	hasData2 := in.Data2 != nil
	if hasData2 && len(in.Data2) != points*in.Levels {
		return nil, newError(InvalidArgument, op, "data2 length does not match points*levels", nil)
	}
	if in.Elevations != nil && len(in.Elevations) != points*in.Levels {
		return nil, newError(InvalidArgument, op, "elevations length does not match points*levels", nil)
	}
	if in.Elevations == nil && in.Levels > 1 {
		return nil, newError(InvalidArgument, op, "elevations are required for profile data (levels > 1)", nil)
	}
	if in.Notes != nil && len(in.Notes) != points {
		return nil, newError(InvalidArgument, op, "notes length does not match points", nil)
	}

	g.resetCells(in.MinimumValidValue)

	nprocs := g.workers
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for w := 0; w < nprocs; w++ {
		go func(workerID int) {
			defer wg.Done()
			for i := workerID; i < points; i += nprocs {
				g.regridOnePoint(in, i, hasData2, workerID)
			}
		}(w)
	}
	wg.Wait()

	for i := range g.Cells {
		g.Cells[i].finalize(in.Policy)
	}

	out := g.compactPointOutput(in, hasData2)
	g.finalizeCells()
	return out, nil
}

// regridOnePoint implements steps 2a-2e of the point-regridder algorithm
// for a single input point, run concurrently by one of RegridPoints'
// worker goroutines.
func (g *Grid) regridOnePoint(in PointInput, i int, hasData2 bool, workerID int) {
	lon, lat := in.Lon[i], in.Lat[i]
	adjust := g.proj.Ellipsoid().isSphere()
	plat := lat
	if adjust {
		plat = adjustSphereLatitude(lat*degToRad, WGS84, Sphere) * radToDeg
	}
	x, y, err := g.proj.Project(lon, plat)
	if err != nil {
		return
	}
	east := g.WestEdge + float64(g.Columns)*g.CellWidth
	north := g.SouthEdge + float64(g.Rows)*g.CellHeight
	if x < g.WestEdge || x > east || y < g.SouthEdge || y > north {
		return
	}
	col, xOff, okCol := cellIndex(x, g.WestEdge, g.CellWidth, g.Columns)
	row, yOff, okRow := cellIndex(y, g.SouthEdge, g.CellHeight, g.Rows)
	if !okCol || !okRow {
		return
	}

	g.locks.lock(row, col, g.Columns)
	defer g.locks.unlock(row, col, g.Columns)

	base := i * in.Levels
	if g.Layers == 1 {
		g.contributeAt(col, row, 1, in, base, xOff, yOff, 0, 0, hasData2, i)
		return
	}
	if in.Levels == 1 {
		g.regridSingleLevel(in, i, base, col, row, xOff, yOff, hasData2, workerID)
		return
	}
	g.regridProfile(in, i, base, col, row, xOff, yOff, hasData2, workerID)
}

// regridSingleLevel places a single-level sample into a 3-D grid using its
// elevation (0 if none supplied), applying the one documented exception:
// an elevation in [0, layer-1's lower edge) is forced into layer 1 with
// zOffset = -1. This HACK is preserved from the source rather than
// "corrected", per the design notes.
func (g *Grid) regridSingleLevel(in PointInput, i, base, col, row int, xOff, yOff float64, hasData2 bool, workerID int) {
	var elev float64
	if in.Elevations != nil {
		elev = in.Elevations[base]
	}
	z, err := g.zForWorker(workerID, elev)
	if err != nil {
		return
	}
	layer, zOff, ok := locateLayer(z, elev, 0)
	if !ok {
		if elev >= 0 && elev < z[0] {
			layer, zOff, ok = 1, -1, true
		}
	}
	if !ok {
		return
	}
	g.contributeAt(col, row, layer, in, base, xOff, yOff, zOff, elev, hasData2, i)
}

// regridProfile places every data level of a multi-level profile sample,
// first determining the profile's surface layer (skipping collapsed
// sub-surface duplicates) and recomputing the vertical edges for that
// surface elevation if it has drifted from the worker's cached value.
func (g *Grid) regridProfile(in PointInput, i, base, col, row int, xOff, yOff float64, hasData2 bool, workerID int) {
	levels := in.Levels
	j := 0
	for j+1 < levels && math.Abs(in.Elevations[base+j+1]-in.Elevations[base+j]) <= elevationTolerance {
		j++
	}
	surfaceElev := in.Elevations[base+j]
	z, err := g.zForWorker(workerID, surfaceElev)
	if err != nil {
		return
	}
	hint := 0
	for lvl := j; lvl < levels; lvl++ {
		elev := in.Elevations[base+lvl]
		layer, zOff, ok := locateLayer(z, elev, hint)
		if !ok {
			continue
		}
		hint = layer - 1
		g.contributeAt(col, row, layer, in, base+lvl, xOff, yOff, zOff, surfaceElev, hasData2, i)
	}
}

// contributeAt applies one data-level contribution to the cell at
// (col, row, layer), after the MinimumValidValue filter.
func (g *Grid) contributeAt(col, row, layer int, in PointInput, dataIdx int, xOff, yOff, zOff, surfaceElev float64, hasData2 bool, pointIdx int) {
	value := in.Data[dataIdx]
	if value < in.MinimumValidValue {
		return
	}
	var value2 float64
	if hasData2 {
		value2 = in.Data2[dataIdx]
	}
	idx := g.slabIndex(col, row, layer)
	g.Cells[idx].contribute(in.Policy, value, value2, hasData2, xOff, yOff, zOff, surfaceElev)
	if in.Notes != nil {
		g.Cells[idx].Note = in.Notes[pointIdx]
	}
}

// compactPointOutput walks the cells in row-major order (row, then column,
// then layer) emitting only those with Count > 0 and Data >= their
// MinimumValidValue; empty layers within a non-empty column of a 3-D
// output are emitted as BADVAL rather than skipped, matching spec.md
// section 4.5 step 3.
func (g *Grid) compactPointOutput(in PointInput, hasData2 bool) *PointOutput {
	out := &PointOutput{}
	threeD := g.Layers > 1
	for row := 1; row <= g.Rows; row++ {
		for col := 1; col <= g.Columns; col++ {
			columnHasData := false
			for layer := 1; layer <= g.Layers; layer++ {
				c := &g.Cells[g.slabIndex(col, row, layer)]
				if c.Count > 0 && c.Data >= c.MinimumValidValue {
					columnHasData = true
					break
				}
			}
			if !columnHasData {
				continue
			}
			for layer := 1; layer <= g.Layers; layer++ {
				c := &g.Cells[g.slabIndex(col, row, layer)]
				out.Column = append(out.Column, col)
				out.Row = append(out.Row, row)
				if threeD {
					out.Layer = append(out.Layer, layer)
				}
				out.GridLon = append(out.GridLon, c.Longitude)
				out.GridLat = append(out.GridLat, c.Latitude)
				if g.Vertical != nil {
					out.GridZ = append(out.GridZ, c.Elevation)
				}
				if c.Count > 0 && c.Data >= c.MinimumValidValue {
					out.Data = append(out.Data, c.Data)
					if hasData2 {
						out.Data2 = append(out.Data2, c.Data2)
					}
				} else {
					out.Data = append(out.Data, BADVAL)
					if hasData2 {
						out.Data2 = append(out.Data2, BADVAL)
					}
				}
				if in.Notes != nil {
					out.Note = append(out.Note, c.Note)
				}
				out.N++
				if !threeD {
					break
				}
			}
		}
	}
	return out
}
