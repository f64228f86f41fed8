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

// CompactReal implements compact_real: given the number of valid stations at
// each timestep (points[t]) and a fixed-stride [timestep*station] array
// where only the first points[t] stations of each timestep row are valid,
// produce a dense array of length sum(points) with the per-timestep runs
// packed back to back. stationStride is the row length of packed (the
// per-timestep capacity, not sum(points)).
func CompactReal(points []int, packed []float64, stationStride int) ([]float64, error) {
	const op = "rsigrid.CompactReal"
	total, err := validatePackedDims(points, len(packed), stationStride, op)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, total)
	for t, n := range points {
		row := packed[t*stationStride : t*stationStride+n]
		out = append(out, row...)
	}
	return out, nil
}

// CompactInt is CompactReal's integer counterpart, used for station/cell
// index arrays that travel alongside the regridded values.
func CompactInt(points []int, packed []int, stationStride int) ([]int, error) {
	const op = "rsigrid.CompactInt"
	total, err := validatePackedDims(points, len(packed), stationStride, op)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, total)
	for t, n := range points {
		row := packed[t*stationStride : t*stationStride+n]
		out = append(out, row...)
	}
	return out, nil
}

func validatePackedDims(points []int, packedLen, stationStride int, op string) (int, error) {
	if stationStride <= 0 {
		return 0, newError(InvalidArgument, op, "stationStride must be positive", nil)
	}
	total := 0
	for _, n := range points {
		if n < 0 || n > stationStride {
			return 0, newError(InvalidArgument, op, "points[timestep] out of range for stationStride", nil)
		}
		total += n
	}
	if packedLen != len(points)*stationStride {
		return 0, newError(DimensionMismatch, op, "packed array length does not match len(points)*stationStride", nil)
	}
	return total, nil
}

// CopyLonLatFromInterleaved implements copy_lonlat_from_interleaved,
// splitting an interleaved [lon, lat, lon, lat, ...] array into two parallel
// arrays.
func CopyLonLatFromInterleaved(interleaved []float64) (lon, lat []float64, err error) {
	const op = "rsigrid.CopyLonLatFromInterleaved"
	if len(interleaved)%2 != 0 {
		return nil, nil, newError(InvalidArgument, op, "interleaved array must have even length", nil)
	}
	n := len(interleaved) / 2
	lon = make([]float64, n)
	lat = make([]float64, n)
	for i := 0; i < n; i++ {
		lon[i] = interleaved[2*i]
		lat[i] = interleaved[2*i+1]
	}
	return lon, lat, nil
}
