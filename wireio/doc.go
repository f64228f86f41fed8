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

// Package wireio is a thin framing adapter for the ancillary text and
// binary formats the surrounding pipeline exchanges with downstream tools:
// projection/grid headers, the swath stream, and the gridded L3 stream.
// It never opens a file itself -- every function takes an io.Writer or
// io.Reader -- and it preserves the wire formats bit-for-bit: big-endian
// 64-bit integers and IEEE-754 reals, and package rsigrid's BADVAL sentinel
// rather than NaN for missing data.
package wireio

import "encoding/binary"

// byteOrder is the wire byte order for every binary payload this package
// frames. Per the format's interface obligation, this is always big-endian,
// whatever the host's native order.
var byteOrder = binary.BigEndian
