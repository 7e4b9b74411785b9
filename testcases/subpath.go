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

var subpathCases = []TestCase{
	{Name: "two_triangles", Width: 64, Height: 64,
		Layers: fill(twoTriangles(16, 32, 48, 32, 12), NonZero)},
	{Name: "overlapping_rect_nonzero", Width: 64, Height: 64,
		Layers: fill(overlappingRectangles(10, 10, 40, 40, 24, 24, 54, 54), NonZero)},
	{Name: "overlapping_rect_evenodd", Width: 64, Height: 64,
		Layers: fill(overlappingRectangles(10, 10, 40, 40, 24, 24, 54, 54), EvenOdd)},
	{Name: "ring_shape", Width: 64, Height: 64,
		Layers: fill(concentricRectangles(32, 32, 25, 12), EvenOdd)},
	{Name: "multiple_rings", Width: 128, Height: 128,
		Layers: fill(multipleRings(64, 64), EvenOdd)},
	{Name: "many_small_shapes", Width: 128, Height: 128,
		Layers: fill(manySmallShapes(8, 8), NonZero)},
	{Name: "open_subpaths", Width: 64, Height: 64,
		Layers: fill(openSubpaths(), NonZero)},
}

// twoTriangles builds two separate, disjoint triangles.
func twoTriangles(cx1, cy1, cx2, cy2 float64, size float64) *path.Data {
	p := triangle(cx1, cy1-size, cx1+size, cy1+size, cx1-size, cy1+size)
	return p.
		MoveTo(pt(cx2, cy2-size)).
		LineTo(pt(cx2+size, cy2+size)).
		LineTo(pt(cx2-size, cy2+size)).
		Close()
}

// overlappingRectangles builds two overlapping rectangles.
func overlappingRectangles(x1a, y1a, x2a, y2a, x1b, y1b, x2b, y2b float64) *path.Data {
	p := rectangle(x1a, y1a, x2a, y2a)
	return p.
		MoveTo(pt(x1b, y1b)).
		LineTo(pt(x2b, y1b)).
		LineTo(pt(x2b, y2b)).
		LineTo(pt(x1b, y2b)).
		Close()
}

// multipleRings builds three square rings around (cx, cy).
func multipleRings(cx, cy float64) *path.Data {
	rings := []struct{ cx, cy, outer, inner float64 }{
		{cx - 30, cy - 30, 20, 10},
		{cx + 30, cy - 30, 20, 10},
		{cx, cy + 30, 20, 10},
	}

	p := &path.Data{}
	for _, r := range rings {
		for _, s := range []float64{r.outer, r.inner} {
			p = p.
				MoveTo(pt(r.cx-s, r.cy-s)).
				LineTo(pt(r.cx+s, r.cy-s)).
				LineTo(pt(r.cx+s, r.cy+s)).
				LineTo(pt(r.cx-s, r.cy+s)).
				Close()
		}
	}
	return p
}

// manySmallShapes builds a grid of small triangles.
func manySmallShapes(rows, cols int) *path.Data {
	const size, spacing = 5.0, 14.0

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			cx := 10.0 + float64(col)*spacing
			cy := 10.0 + float64(row)*spacing
			p = p.
				MoveTo(pt(cx, cy-size)).
				LineTo(pt(cx+size, cy+size)).
				LineTo(pt(cx-size, cy+size)).
				Close()
		}
	}
	return p
}

// openSubpaths builds two subpaths without a closing command.
// Filling closes them implicitly.
func openSubpaths() *path.Data {
	return (&path.Data{}).
		MoveTo(pt(8, 8)).
		LineTo(pt(30, 8)).
		LineTo(pt(30, 30)).
		MoveTo(pt(34, 34)).
		LineTo(pt(56, 34)).
		QuadTo(pt(56, 56), pt(34, 56))
}
