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
	"reflect"
	"testing"
)

func TestCompactReal(t *testing.T) {
	points := []int{2, 0, 1}
	// stationStride 3: three timesteps, each with capacity for 3 stations,
	// only the leading points[t] of each row are valid.
	packed := []float64{
		1.1, 2.2, 99, // timestep 0: 2 valid
		99, 99, 99, // timestep 1: 0 valid
		3.3, 99, 99, // timestep 2: 1 valid
	}
	got, err := CompactReal(points, packed, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1.1, 2.2, 3.3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CompactReal = %v, want %v", got, want)
	}
}

func TestCompactInt(t *testing.T) {
	points := []int{1, 2}
	packed := []int{7, 0, 8, 9}
	got, err := CompactInt(points, packed, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{7, 8, 9}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CompactInt = %v, want %v", got, want)
	}
}

func TestCompactRealRejectsMismatch(t *testing.T) {
	if _, err := CompactReal([]int{1, 1}, []float64{1, 2}, 2); err == nil {
		t.Error("expected an error for a packed length that doesn't match len(points)*stride")
	}
	if _, err := CompactReal([]int{3}, []float64{1, 2}, 2); err == nil {
		t.Error("expected an error for points[t] exceeding stationStride")
	}
}

func TestCopyLonLatFromInterleaved(t *testing.T) {
	lon, lat, err := CopyLonLatFromInterleaved([]float64{-95.5, 35.5, -94.0, 36.0})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(lon, []float64{-95.5, -94.0}) {
		t.Errorf("lon = %v", lon)
	}
	if !reflect.DeepEqual(lat, []float64{35.5, 36.0}) {
		t.Errorf("lat = %v", lat)
	}
}

func TestCopyLonLatFromInterleavedRejectsOddLength(t *testing.T) {
	if _, _, err := CopyLonLatFromInterleaved([]float64{1, 2, 3}); err == nil {
		t.Error("expected an error for an odd-length interleaved array")
	}
}
