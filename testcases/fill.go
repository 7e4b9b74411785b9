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
	"math"

	"seehuhn.de/go/geom/path"
)

var fillCases = []TestCase{
	{
		Name:   "triangle_nonzero",
		Width:  64,
		Height: 64,
		Layers: fill(triangle(10, 50, 32, 10, 54, 50), NonZero),
	},
	{
		Name:   "triangle_evenodd",
		Width:  64,
		Height: 64,
		Layers: fill(triangle(10, 50, 32, 10, 54, 50), EvenOdd),
	},
	{
		Name:   "star_nonzero",
		Width:  64,
		Height: 64,
		Layers: fill(fivePointStar(32, 32, 25), NonZero),
	},
	{
		Name:   "star_evenodd",
		Width:  64,
		Height: 64,
		Layers: fill(fivePointStar(32, 32, 25), EvenOdd),
	},
	{
		Name:   "rectangle",
		Width:  64,
		Height: 64,
		Layers: fill(rectangle(10, 10, 44, 44), NonZero),
	},
	{
		Name:   "rectangle_tile_aligned",
		Width:  64,
		Height: 64,
		Layers: fill(rectangle(8, 12, 56, 40), NonZero),
	},
	{
		Name:   "rectangle_reversed",
		Width:  64,
		Height: 64,
		Layers: fill(rectangle(44, 10, 10, 44), NonZero),
	},
	{
		Name:   "odd_canvas",
		Width:  61,
		Height: 37,
		Layers: fill(triangle(-5, 40, 30, -3, 70, 33), NonZero),
	},
}

// triangle builds a triangular path.
func triangle(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3)).
		Close()
}

// fivePointStar builds a five-pointed star (self-intersecting).
func fivePointStar(cx, cy, r float64) *path.Data {
	p := &path.Data{}
	// connect every second point: 0 -> 2 -> 4 -> 1 -> 3
	for j, i := range []int{0, 2, 4, 1, 3} {
		angle := float64(i)*2*math.Pi/5 - math.Pi/2
		q := pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
		if j == 0 {
			p = p.MoveTo(q)
		} else {
			p = p.LineTo(q)
		}
	}
	return p.Close()
}

// rectangle builds a rectangular path.
func rectangle(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x1, y2)).
		Close()
}
