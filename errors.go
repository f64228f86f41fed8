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
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind tags the category of a construction or validation failure, per
// the error taxonomy a caller needs to branch on.
type ErrorKind int

const (
	// InvalidArgument marks out-of-range geometry, non-finite inputs, or
	// incoherent dimensions passed to a constructor.
	InvalidArgument ErrorKind = iota
	// DomainError marks a projection or vertical transform that produced a
	// non-finite intermediate (e.g. log of a non-positive number).
	DomainError
	// ResourceError marks an allocation failure.
	ResourceError
	// DimensionMismatch marks subset indices outside the parent grid, or a
	// level count inconsistent with the layer count.
	DimensionMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case DomainError:
		return "DomainError"
	case ResourceError:
		return "ResourceError"
	case DimensionMismatch:
		return "DimensionMismatch"
	default:
		return "UnknownError"
	}
}

// Error is the error type surfaced by rsigrid constructors and transforms.
// It carries the ErrorKind so callers can use errors.As to recover it, and
// wraps the underlying cause (if any) via github.com/pkg/errors so the
// original stack/context is not lost.
type Error struct {
	Kind ErrorKind
	Op   string // e.g. "rsigrid.NewGrid"
	Msg  string
	Err  error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// Unwrap allows errors.Is/errors.As to see through to the cause.
func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, op, msg string, cause error) *Error {
	var err error
	if cause != nil {
		err = errors.Wrap(cause, msg)
	}
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

// newConstructionError is newError plus the single-line failure message
// spec.md section 7 requires be "recorded (hookable via the caller's
// logger)" on construction failure. It must only be used at constructor
// return sites, never in the per-point regrid hot loop, where per-point
// DomainError failures are silently dropped by design rather than logged.
func newConstructionError(kind ErrorKind, op, msg string, cause error) *Error {
	e := newError(kind, op, msg, cause)
	logFailure(op, e)
	return e
}
