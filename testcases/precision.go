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

package testcases

import (
	"seehuhn.de/go/geom/path"
)

var precisionCases = []TestCase{
	{Name: "subpixel_offset_00", Width: 64, Height: 64,
		Layers: fill(offsetRectangle(20, 20, 24, 24, 0.0), NonZero)},
	{Name: "subpixel_offset_25", Width: 64, Height: 64,
		Layers: fill(offsetRectangle(20, 20, 24, 24, 0.25), NonZero)},
	{Name: "subpixel_offset_50", Width: 64, Height: 64,
		Layers: fill(offsetRectangle(20, 20, 24, 24, 0.5), NonZero)},
	{Name: "subpixel_offset_75", Width: 64, Height: 64,
		Layers: fill(offsetRectangle(20, 20, 24, 24, 0.75), NonZero)},
	{Name: "thin_sliver", Width: 64, Height: 64,
		Layers: fill(rectangle(5, 10.25, 59, 10.75), NonZero)},
	{Name: "large_coord_centered", Width: 64, Height: 64,
		Layers: fill(shiftedSquare(1000, 1000, 20), NonZero)},
	{Name: "small_shape_large_offset", Width: 64, Height: 64,
		Layers: fill(shiftedSquare(10000, 10000, 2), NonZero)},
	{Name: "float64_precision", Width: 64, Height: 64,
		Layers: fill(rectangle(22.123456789012345, 22.123456789012345,
			42.123456789012346, 42.123456789012346), NonZero)},
	{Name: "far_outside", Width: 64, Height: 64,
		Layers: fill(triangle(-1e6, -1e6, 1e6, -1e6, 0, 1e6), NonZero)},
}

// offsetRectangle builds a rectangular path with a subpixel offset applied to all coordinates.
func offsetRectangle(x1, y1, w, h, offset float64) *path.Data {
	return rectangle(x1+offset, y1+offset, x1+w+offset, y1+h+offset)
}

// shiftedSquare builds a square centered at large coordinates and
// translates it back to the canvas center.
func shiftedSquare(cx, cy, size float64) *path.Data {
	dx := 32 - cx
	dy := 32 - cy
	return rectangle(cx-size/2+dx, cy-size/2+dy, cx+size/2+dx, cy+size/2+dy)
}
