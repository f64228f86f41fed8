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

package wireio

import (
	"fmt"
	"io"
	"math"
)

// SwathHeader is the text preamble of a "Swath 2.0" stream: a description,
// an ISO-8601 timestamp, the scan/variable dimensions, the variable names
// and units, and the domain's longitude/latitude bounding box.
type SwathHeader struct {
	Description string
	Timestamp   string // ISO-8601
	Scans       int
	Variables   []string
	Units       []string
	MinLon, MaxLon, MinLat, MaxLat float64
}

// WriteSwathHeader writes the "Swath 2.0" text preamble.
func WriteSwathHeader(w io.Writer, h SwathHeader) error {
	if len(h.Variables) != len(h.Units) {
		return fmt.Errorf("wireio: swath header variables/units length mismatch")
	}
	if _, err := fmt.Fprintf(w, "Swath 2.0\n%s\n%s\n%d %d\n", h.Description, h.Timestamp, h.Scans, len(h.Variables)); err != nil {
		return err
	}
	for i, v := range h.Variables {
		if _, err := fmt.Fprintf(w, "%s %s\n", v, h.Units[i]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%.6f %.6f %.6f %.6f\n", h.MinLon, h.MaxLon, h.MinLat, h.MaxLat)
	return err
}

// WriteSwathTimestamps writes one MSB 64-bit integer per scan.
func WriteSwathTimestamps(w io.Writer, timestamps []int64) error {
	return writeInt64s(w, timestamps)
}

// WriteSwathPointCounts writes one MSB 64-bit integer per scan, the number
// of swath quadrilaterals in that scan.
func WriteSwathPointCounts(w io.Writer, counts []int64) error {
	return writeInt64s(w, counts)
}

// WriteSwathVariable writes one scan's worth of MSB IEEE-754 64-bit reals
// for a single variable. The caller writes each variable's data for each
// scan in turn, matching the header's declared variable order.
func WriteSwathVariable(w io.Writer, values []float64) error {
	return writeFloat64s(w, values)
}

func writeInt64s(w io.Writer, values []int64) error {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		byteOrder.PutUint64(buf[i*8:], uint64(v))
	}
	_, err := w.Write(buf)
	return err
}

func writeFloat64s(w io.Writer, values []float64) error {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		byteOrder.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	_, err := w.Write(buf)
	return err
}
