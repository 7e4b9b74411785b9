// seehuhn.de/go/tiler - a tile-based 2D vector renderer
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package tiler

import (
	"errors"
	"fmt"
)

var (
	// ErrAtlasExhausted is returned by an [Allocator] when fewer slots
	// remain than were requested.
	ErrAtlasExhausted = errors.New("tiler: alpha atlas exhausted")

	// ErrInstanceBufferOverflow means that a batch needs more instances
	// than the instance buffer provided by the caller can hold.
	ErrInstanceBufferOverflow = errors.New("tiler: instance buffer overflow")

	// ErrInvalidConfig is returned for a canvas with zero width or height.
	ErrInvalidConfig = errors.New("tiler: invalid canvas dimensions")
)

// FrameBuildError reports that a frame could not be built with the
// resources provisioned by the caller. The caller is expected to resize
// its buffers and encode the whole frame again.
type FrameBuildError struct {
	Batch     int // index of the offending batch
	Instances int // instances needed by the batch
	Capacity  int // instances available
	Err       error
}

func (e *FrameBuildError) Error() string {
	return fmt.Sprintf("tiler: batch %d needs %d instances, capacity is %d: %v",
		e.Batch, e.Instances, e.Capacity, e.Err)
}

func (e *FrameBuildError) Unwrap() error {
	return e.Err
}
