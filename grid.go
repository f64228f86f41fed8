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
	"runtime"

	"github.com/ctessum/sparse"
)

// Grid is a rectilinear cartographic grid: the owner of a projection, its
// planar geometry, a cached cell-center lon/lat table, an optional
// vertical model, and the dense array of per-cell accumulators a regrid
// call fills in. Grid is effectively immutable after construction except
// for Cells, which is reset at the start of each regrid call and finalized
// at the end.
type Grid struct {
	proj *Projection // exclusively owned

	Columns, Rows, Layers int
	WestEdge, SouthEdge   float64 // planar meters (or degrees for an identity projection)
	CellWidth, CellHeight float64

	Vertical *VerticalModel // nil for a purely 2-D grid

	// cellCenterLon/cellCenterLat are rows*columns caches of the unprojected
	// center of every 2-D cell, built once at construction. Backed by
	// sparse.DenseArray the same way the teacher's CTM variable data is
	// (vargrid.go: sparse.ZerosDense(ny, nx)) since this is exactly that
	// shape of dense 2-D grid field.
	cellCenterLon *sparse.DenseArray
	cellCenterLat *sparse.DenseArray

	// zScratch is per-worker scratch for terrain-dependent vertical edge
	// recomputation: (workers+1) rows of (layers+1) doubles, backed by one
	// DenseArray whose rows are sliced out via Elements for each worker.
	zScratch     *sparse.DenseArray
	zLastSurface []float64
	zLastValid   []bool
	workers      int

	Cells []Cell

	locks *cellLocks
}

// GridConfig collects the parameters needed to construct a Grid.
type GridConfig struct {
	Projection            *Projection
	Columns, Rows, Layers int // Layers may be 0 or 1 for a 2-D grid
	WestEdge, SouthEdge   float64
	CellWidth, CellHeight float64
	Vertical              *VerticalModel
	Workers               int // 0 selects runtime.GOMAXPROCS(0)
}

// NewGrid validates cfg and constructs a Grid, taking ownership of
// cfg.Projection (the caller must not reuse or further mutate it; pass
// Clone() if it is needed elsewhere).
func NewGrid(cfg GridConfig) (*Grid, error) {
	const op = "rsigrid.NewGrid"
	if cfg.Projection == nil {
		return nil, newConstructionError(InvalidArgument, op, "projection is required", nil)
	}
	if cfg.Columns <= 0 || cfg.Rows <= 0 {
		return nil, newConstructionError(InvalidArgument, op, "columns and rows must be positive", nil)
	}
	if cfg.CellWidth <= 0 || cfg.CellHeight <= 0 {
		return nil, newConstructionError(InvalidArgument, op, "cell width and height must be positive", nil)
	}
	layers := cfg.Layers
	if layers < 1 {
		layers = 1
	}
	if cfg.Vertical != nil && cfg.Vertical.Layers() != layers {
		return nil, newConstructionError(DimensionMismatch, op, "vertical model layer count does not match grid layers", nil)
	}
	// overflow guard: rows*columns*layers must not overflow int.
	if cfg.Columns > math.MaxInt/cfg.Rows/layers {
		return nil, newConstructionError(ResourceError, op, "rows*columns*layers overflows", nil)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g := &Grid{
		proj:       cfg.Projection,
		Columns:    cfg.Columns,
		Rows:       cfg.Rows,
		Layers:     layers,
		WestEdge:   cfg.WestEdge,
		SouthEdge:  cfg.SouthEdge,
		CellWidth:  cfg.CellWidth,
		CellHeight: cfg.CellHeight,
		Vertical:   cfg.Vertical,
		workers:    workers,
	}

	if err := g.buildCellCenterCache(); err != nil {
		return nil, err
	}

	g.zScratch = sparse.ZerosDense(workers+1, layers+1)
	g.zLastSurface = make([]float64, workers+1)
	g.zLastValid = make([]bool, workers+1)

	g.Cells = make([]Cell, g.Rows*g.Columns*layers)
	return g, nil
}

// zForWorker returns the vertical cell-edge array for worker workerID at
// the given surface elevation, recomputing into that worker's private
// scratch buffer only if the surface elevation has drifted by more than
// the recompute threshold since the worker's last call. Each worker owns
// index workerID exclusively for the duration of one regrid call, so this
// requires no locking (design note: replaces the original's
// thread-local/omp_get_thread_num() indexed buffer).
func (g *Grid) zForWorker(workerID int, surfaceElevation float64) ([]float64, error) {
	rowLen := g.zScratch.Shape[1]
	buf := g.zScratch.Elements[workerID*rowLen : (workerID+1)*rowLen]
	if g.zLastValid[workerID] && math.Abs(surfaceElevation-g.zLastSurface[workerID]) <= recomputeThreshold {
		return buf, nil
	}
	if err := g.Vertical.computeInto(surfaceElevation, buf); err != nil {
		return nil, err
	}
	g.zLastSurface[workerID] = surfaceElevation
	g.zLastValid[workerID] = true
	return buf, nil
}

// buildCellCenterCache unprojects every 2-D cell center once, applying the
// sphere<->WGS84 latitude adjustment when the grid's projection is defined
// on a sphere (so cached lon/lats refer to the geodetic WGS84 latitude
// regardless of what ellipsoid the projection itself uses internally).
func (g *Grid) buildCellCenterCache() error {
	const op = "rsigrid.NewGrid"
	g.cellCenterLon = sparse.ZerosDense(g.Rows, g.Columns)
	g.cellCenterLat = sparse.ZerosDense(g.Rows, g.Columns)
	adjust := g.proj.Ellipsoid().isSphere()
	for row := 1; row <= g.Rows; row++ {
		y := g.SouthEdge + (float64(row)-0.5)*g.CellHeight
		for col := 1; col <= g.Columns; col++ {
			x := g.WestEdge + (float64(col)-0.5)*g.CellWidth
			lon, lat, err := g.proj.Unproject(x, y)
			if err != nil {
				return newConstructionError(ResourceError, op, "failed to build cell-center cache", err)
			}
			if adjust {
				lat = adjustSphereLatitude(lat*degToRad, Sphere, WGS84) * radToDeg
			}
			g.cellCenterLon.Set(lon, row-1, col-1)
			g.cellCenterLat.Set(lat, row-1, col-1)
		}
	}
	return nil
}

// CellCenter returns the cached (longitude, latitude) of the center of the
// 1-based (row, column) cell.
func (g *Grid) CellCenter(row, column int) (lon, lat float64) {
	return g.cellCenterLon.Get(row-1, column-1), g.cellCenterLat.Get(row-1, column-1)
}

// Projection returns the grid's projection, for callers (such as package
// wireio) that need its parameters to write a header. The returned pointer
// is owned by the grid and must not be mutated.
func (g *Grid) Projection() *Projection { return g.proj }

// Subset returns a new Grid covering the rectangular slab
// [firstLayer,lastLayer] x [firstRow,lastRow] x [firstColumn,lastColumn]
// (all inclusive, 1-based), with a cloned projection.
func (g *Grid) Subset(firstLayer, lastLayer, firstRow, lastRow, firstColumn, lastColumn int) (*Grid, error) {
	const op = "rsigrid.Grid.Subset"
	if firstLayer < 1 || lastLayer > g.Layers || firstLayer > lastLayer ||
		firstRow < 1 || lastRow > g.Rows || firstRow > lastRow ||
		firstColumn < 1 || lastColumn > g.Columns || firstColumn > lastColumn {
		return nil, newConstructionError(DimensionMismatch, op, "subset range outside parent grid", nil)
	}
	sub := &Grid{
		proj:       g.proj.Clone(),
		Columns:    lastColumn - firstColumn + 1,
		Rows:       lastRow - firstRow + 1,
		Layers:     lastLayer - firstLayer + 1,
		WestEdge:   g.WestEdge + float64(firstColumn-1)*g.CellWidth,
		SouthEdge:  g.SouthEdge + float64(firstRow-1)*g.CellHeight,
		CellWidth:  g.CellWidth,
		CellHeight: g.CellHeight,
		workers:    g.workers,
	}
	if g.Vertical != nil {
		v := *g.Vertical
		v.Levels = append([]float64(nil), g.Vertical.Levels[firstLayer-1:lastLayer+1]...)
		v.cachedValid = false
		sub.Vertical = &v
	}
	if err := sub.buildCellCenterCache(); err != nil {
		return nil, err
	}
	sub.zScratch = sparse.ZerosDense(sub.workers+1, sub.Layers+1)
	sub.zLastSurface = make([]float64, sub.workers+1)
	sub.zLastValid = make([]bool, sub.workers+1)
	sub.Cells = make([]Cell, sub.Rows*sub.Columns*sub.Layers)
	return sub, nil
}

// cellIndex is the cell-addressing arithmetic shared by ProjectXY and the
// regridders: column/row are 1-based, offsets are normalized to [-1, 1].
func cellIndex(v, edge, size float64, n int) (index int, offset float64, inDomain bool) {
	f := (v-edge)/size + 1
	idx := int(math.Floor(f))
	if idx < 1 || idx > n+1 {
		return 0, 0, false
	}
	if idx > n {
		// a point exactly on the east/north edge
		idx = n
		offset = 1
		return idx, offset, true
	}
	offset = 2 * (f - float64(idx) - 0.5)
	return idx, offset, true
}

// ProjectXY projects each (lon, lat) pair, testing against the grid
// rectangle and deriving 1-based cell indices and centered offsets in
// [-1, 1]. Points outside the rectangle yield zero indices. withLonLat
// requests the optional grid-adjusted lon/lat outputs. The output slices
// are safe to write at disjoint indices from multiple goroutines.
func (g *Grid) ProjectXY(lons, lats []float64, withLonLat bool) (columns, rows []int, xOffsets, yOffsets, gridLon, gridLat []float64, nInDomain int, err error) {
	const op = "rsigrid.Grid.ProjectXY"
	if len(lons) != len(lats) {
		return nil, nil, nil, nil, nil, nil, 0, newError(InvalidArgument, op, "lon/lat length mismatch", nil)
	}
	n := len(lons)
	columns = make([]int, n)
	rows = make([]int, n)
	xOffsets = make([]float64, n)
	yOffsets = make([]float64, n)
	if withLonLat {
		gridLon = make([]float64, n)
		gridLat = make([]float64, n)
	}
	adjust := g.proj.Ellipsoid().isSphere()
	east := g.WestEdge + float64(g.Columns)*g.CellWidth
	north := g.SouthEdge + float64(g.Rows)*g.CellHeight

	count := 0
	for i := 0; i < n; i++ {
		lon, lat := lons[i], lats[i]
		plat := lat
		if adjust {
			plat = adjustSphereLatitude(lat*degToRad, WGS84, Sphere) * radToDeg
		}
		x, y, perr := g.proj.Project(lon, plat)
		if perr != nil {
			continue // per-point failures are silently dropped
		}
		if x < g.WestEdge || x > east || y < g.SouthEdge || y > north {
			continue
		}
		col, xOff, okCol := cellIndex(x, g.WestEdge, g.CellWidth, g.Columns)
		row, yOff, okRow := cellIndex(y, g.SouthEdge, g.CellHeight, g.Rows)
		if !okCol || !okRow {
			continue
		}
		columns[i] = col
		rows[i] = row
		xOffsets[i] = xOff
		yOffsets[i] = yOff
		if withLonLat {
			gridLon[i], gridLat[i] = g.CellCenter(row, col)
		}
		count++
	}
	return columns, rows, xOffsets, yOffsets, gridLon, gridLat, count, nil
}

// ProjectZ locates each elevation in the global nominal layer stack
// (ignoring terrain), for profile data supplied without a surface
// elevation. It is a thin wrapper over the vertical model's z edges
// computed at surface elevation 0.
func (g *Grid) ProjectZ(elevations []float64, withGridZ bool) (layers []int, zOffsets []float64, gridZ []float64, nInDomain int, err error) {
	const op = "rsigrid.Grid.ProjectZ"
	if g.Vertical == nil {
		return nil, nil, nil, 0, newError(InvalidArgument, op, "grid has no vertical model", nil)
	}
	z, zerr := g.Vertical.ComputeZ(0)
	if zerr != nil {
		return nil, nil, nil, 0, zerr
	}
	n := len(elevations)
	layers = make([]int, n)
	zOffsets = make([]float64, n)
	if withGridZ {
		gridZ = make([]float64, n)
	}
	count := 0
	for i, elev := range elevations {
		layer, zOff, ok := locateLayer(z, elev, 0)
		if !ok {
			continue
		}
		layers[i] = layer
		zOffsets[i] = zOff
		if withGridZ {
			gridZ[i] = 0.5 * (z[layer-1] + z[layer])
		}
		count++
	}
	return layers, zOffsets, gridZ, count, nil
}

// locateLayer finds the 1-based layer whose [z[l-1], z[l]) edge interval
// contains elev, searching linearly starting from the 0-based hint index
// (profiles are monotone, so successive calls can resume near the previous
// match instead of restarting from the bottom).
func locateLayer(z []float64, elev float64, hint int) (layer int, offset float64, ok bool) {
	nlayers := len(z) - 1
	if hint < 0 {
		hint = 0
	}
	for l := hint; l < nlayers; l++ {
		if elev >= z[l] && elev < z[l+1] {
			mid := 0.5 * (z[l] + z[l+1])
			half := 0.5 * (z[l+1] - z[l])
			return l + 1, (elev - mid) / half, true
		}
	}
	// also search backward in case the hint overshot
	for l := hint - 1; l >= 0; l-- {
		if elev >= z[l] && elev < z[l+1] {
			mid := 0.5 * (z[l] + z[l+1])
			half := 0.5 * (z[l+1] - z[l])
			return l + 1, (elev - mid) / half, true
		}
	}
	if nlayers > 0 && elev == z[nlayers] {
		mid := 0.5 * (z[nlayers-1] + z[nlayers])
		half := 0.5 * (z[nlayers] - z[nlayers-1])
		return nlayers, (elev - mid) / half, true
	}
	return 0, 0, false
}

// resetCells reinitializes every cell to the Empty state and (re)allocates
// the per-column lock array for a fresh regrid call.
func (g *Grid) resetCells(minimumValidValue float64) {
	g.locks = newCellLocks(g.Rows, g.Columns)
	for i := range g.zLastValid {
		g.zLastValid[i] = false
	}
	nprocs := g.workers
	total := len(g.Cells)
	step := (total + nprocs - 1) / nprocs
	if step < 1 {
		step = total
	}
	doneCh := make(chan struct{}, nprocs)
	started := 0
	for start := 0; start < total; start += step {
		end := start + step
		if end > total {
			end = total
		}
		started++
		go func(start, end int) {
			for i := start; i < end; i++ {
				col := (i % (g.Columns * g.Layers)) / g.Layers
				row := i / (g.Columns * g.Layers)
				layer := i % g.Layers
				lon, lat := g.CellCenter(row+1, col+1)
				g.Cells[i].reset(col+1, row+1, layer+1, lon, lat, 0, minimumValidValue)
			}
			doneCh <- struct{}{}
		}(start, end)
	}
	for i := 0; i < started; i++ {
		<-doneCh
	}
}

// finalizeCells destroys the lock array, releasing it for garbage
// collection; it is called once the regrid call is complete.
func (g *Grid) finalizeCells() {
	g.locks = nil
}

// slabIndex returns the 0-based index into g.Cells for 1-based
// (column, row, layer).
func (g *Grid) slabIndex(column, row, layer int) int {
	return (row-1)*g.Columns*g.Layers + (column-1)*g.Layers + (layer - 1)
}
