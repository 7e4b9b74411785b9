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

// largeCases contains test cases with bounding boxes > 65536 pixels
// to exercise the active edge list in the coverage accumulator.
var largeCases = []TestCase{
	{Name: "large_rectangle", Width: 512, Height: 512,
		Layers: fill(rectangle(50, 50, 462, 462), NonZero)},
	{Name: "large_concentric_nonzero", Width: 512, Height: 512,
		Layers: fill(concentricRectangles(256, 256, 200, 100), NonZero)},
	{Name: "large_concentric_evenodd", Width: 512, Height: 512,
		Layers: fill(concentricRectangles(256, 256, 200, 100), EvenOdd)},
	{Name: "large_diamond", Width: 512, Height: 512,
		Layers: fill(diamond(256, 256, 180), NonZero)},
	{Name: "large_grid", Width: 512, Height: 512,
		Layers: fill(rectangleGrid(8, 8, 512, 512, 4), NonZero)},
	{Name: "large_clipped", Width: 512, Height: 512,
		Layers: fill(rectangle(-100, 100, 612, 400), NonZero)},
	{Name: "large_circle", Width: 800, Height: 600,
		Layers: fill(circle(400, 300, 250), NonZero)},
}

// concentricRectangles builds two squares around (cx, cy) with the same
// orientation.
func concentricRectangles(cx, cy, outer, inner float64) *path.Data {
	p := rectangle(cx-outer, cy-outer, cx+outer, cy+outer)
	return p.
		MoveTo(pt(cx-inner, cy-inner)).
		LineTo(pt(cx+inner, cy-inner)).
		LineTo(pt(cx+inner, cy+inner)).
		LineTo(pt(cx-inner, cy+inner)).
		Close()
}

// diamond builds a square rotated by 45 degrees.
func diamond(cx, cy, r float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(cx, cy-r)).
		LineTo(pt(cx+r, cy)).
		LineTo(pt(cx, cy+r)).
		LineTo(pt(cx-r, cy)).
		Close()
}

// rectangleGrid builds a grid of rectangles.
func rectangleGrid(rows, cols, width, height int, gap float64) *path.Data {
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			x1 := float64(col)*cellW + gap
			y1 := float64(row)*cellH + gap
			x2 := float64(col+1)*cellW - gap
			y2 := float64(row+1)*cellH - gap

			p = p.
				MoveTo(pt(x1, y1)).
				LineTo(pt(x2, y1)).
				LineTo(pt(x2, y2)).
				LineTo(pt(x1, y2)).
				Close()
		}
	}

	return p
}
