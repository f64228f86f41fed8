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

	"github.com/USEPA/rsigrid"
)

// Grid3Header is the text preamble of a "SUBSET 9.0 CMAQ" gridded L3
// stream: timestep/variable/layer/row/column dimensions, the variable
// names and units, and the grid's projection and vertical levels.
type Grid3Header struct {
	Description string
	Timestamp   string // ISO-8601
	Timesteps   int
	Variables   []string
	Units       []string
}

// WriteGrid3Header writes the "SUBSET 9.0 CMAQ" text preamble, including the
// grid's projection/grid header (see WriteGridHeader), for a grid whose
// Layers/Rows/Columns determine the declared dimensions.
func WriteGrid3Header(w io.Writer, h Grid3Header, g *rsigrid.Grid) error {
	if len(h.Variables) != len(h.Units) {
		return fmt.Errorf("wireio: grid3 header variables/units length mismatch")
	}
	if _, err := fmt.Fprintf(w, "SUBSET 9.0 CMAQ\n%s\n%s\n", h.Description, h.Timestamp); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%d %d %d %d %d\n", h.Timesteps, len(h.Variables), g.Layers, g.Rows, g.Columns); err != nil {
		return err
	}
	for i, v := range h.Variables {
		if _, err := fmt.Fprintf(w, "%s %s\n", v, h.Units[i]); err != nil {
			return err
		}
	}
	return WriteGridHeader(w, g)
}

// WriteGrid3Variable writes one variable's full [timesteps][layers][rows][columns]
// block of MSB IEEE-754 64-bit reals. The caller supplies data already
// flattened in that order (package rsigrid's BADVAL fills any cell with no
// valid contribution; this function does not itself substitute it).
func WriteGrid3Variable(w io.Writer, data []float64) error {
	return writeFloat64s(w, data)
}
