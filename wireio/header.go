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

// WriteGridHeader writes the ASCII projection/grid header spec.md section 6
// describes: a `# <kind> projection: ...` line with the projection's
// defining parameters, followed by a `# Grid: ...` line with the grid's
// geometry and vertical schedule.
func WriteGridHeader(w io.Writer, g *rsigrid.Grid) error {
	p := g.Projection()
	if err := writeProjectionLine(w, p); err != nil {
		return err
	}
	return writeGridLine(w, g)
}

func writeProjectionLine(w io.Writer, p *rsigrid.Projection) error {
	ellip := p.Ellipsoid()
	switch p.Kind {
	case rsigrid.KindLambertConformalConic:
		_, err := fmt.Fprintf(w, "# lcc projection: lat_1 lat_2 lat_0 lon_0 major_semiaxis minor_semiaxis\n%.6f %.6f %.6f %.6f %.3f %.3f\n",
			p.Lat1, p.Lat2, p.Lat0, p.Lon0, ellip.Major, ellip.Minor)
		return err
	case rsigrid.KindMercator:
		_, err := fmt.Fprintf(w, "# mercator projection: lat_ts lon_0 major_semiaxis minor_semiaxis\n%.6f %.6f %.3f %.3f\n",
			p.LatTS, p.Lon0, ellip.Major, ellip.Minor)
		return err
	case rsigrid.KindStereographic:
		_, err := fmt.Fprintf(w, "# stereographic projection: lat_0 lon_0 major_semiaxis minor_semiaxis\n%.6f %.6f %.3f %.3f\n",
			p.Lat0, p.Lon0, ellip.Major, ellip.Minor)
		return err
	case rsigrid.KindAlbersEqualArea:
		_, err := fmt.Fprintf(w, "# albers projection: lat_1 lat_2 lat_0 lon_0 major_semiaxis minor_semiaxis\n%.6f %.6f %.6f %.6f %.3f %.3f\n",
			p.Lat1, p.Lat2, p.Lat0, p.Lon0, ellip.Major, ellip.Minor)
		return err
	case rsigrid.KindIdentity:
		_, err := fmt.Fprintf(w, "# lonlat projection: major_semiaxis minor_semiaxis\n%.3f %.3f\n", ellip.Major, ellip.Minor)
		return err
	}
	return fmt.Errorf("wireio: unknown projection kind %v", p.Kind)
}

func writeGridLine(w io.Writer, g *rsigrid.Grid) error {
	vgtyp, vgtop, levels := 0, 0.0, []float64(nil)
	if v := g.Vertical; v != nil {
		vgtyp = v.Kind.Code()
		vgtop = v.TopValue
		levels = v.Levels
	}
	if _, err := fmt.Fprintf(w, "# Grid: ncols nrows xorig yorig xcell ycell vgtyp vgtop vglvls[%d]:\n", len(levels)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%d %d %.6f %.6f %.6f %.6f %d %.6f", g.Columns, g.Rows, g.WestEdge, g.SouthEdge, g.CellWidth, g.CellHeight, vgtyp, vgtop); err != nil {
		return err
	}
	for _, l := range levels {
		if _, err := fmt.Fprintf(w, " %.8f", l); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
