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

// Package rsigrid regrids scattered geospatial observations -- point
// measurements, multi-level vertical profiles, and satellite swath
// quadrilaterals -- onto a regular rectilinear cartographic grid, optionally
// three-dimensional, aggregating multiple contributions per cell into a
// single representative value.
//
// The package covers the regridding engine only: cartographic projection,
// 2-D/3-D cell indexing, per-cell aggregation, vertical-coordinate
// transforms, and swath rasterization. File I/O, CLI/HTTP layers, and wire
// framing for downstream consumers live outside the package (see
// sub-package wireio for the latter).
package rsigrid

// BADVAL is the sentinel value written into output arrays for grid cells
// that received no valid contribution. Preserved bit-for-bit for downstream
// tools; never substitute NaN.
const BADVAL = -9.999e36

// TOLERANCE bounds radius-squared away from zero so that an exact
// cell-center hit does not produce a divide-by-zero in the Weighted
// aggregator.
const TOLERANCE = 1e-10
