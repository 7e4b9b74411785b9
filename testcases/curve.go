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

// kappa for cubic Bezier approximation of a quarter circle
const kappa = 0.5522847498307936

var curveCases = []TestCase{
	{Name: "quadratic", Width: 64, Height: 64,
		Layers: fill(quadraticCurve(10, 50, 32, 10, 54, 50), NonZero)},
	{Name: "quadratic_shallow", Width: 64, Height: 64,
		Layers: fill(quadraticCurve(10, 32, 32, 28, 54, 32), NonZero)},
	{Name: "quadratic_deep", Width: 64, Height: 64,
		Layers: fill(quadraticCurve(10, 50, 32, 5, 54, 50), NonZero)},
	{Name: "quadratic_below", Width: 64, Height: 64,
		Layers: fill(quadraticCurve(10, 20, 32, 55, 54, 20), NonZero)},
	{Name: "quadratic_s_shape", Width: 64, Height: 64,
		Layers: fill(sCurveQuadratic(10, 32, 54, 32), NonZero)},
	{Name: "quadratic_degenerate", Width: 64, Height: 64,
		Layers: fill(quadraticCurve(10, 32, 10, 32, 54, 32), NonZero)},

	{Name: "cubic", Width: 64, Height: 64,
		Layers: fill(cubicCurve(10, 50, 20, 10, 44, 10, 54, 50), NonZero)},
	{Name: "cubic_shallow", Width: 64, Height: 64,
		Layers: fill(cubicCurve(10, 32, 22, 28, 42, 28, 54, 32), NonZero)},
	{Name: "cubic_deep", Width: 64, Height: 64,
		Layers: fill(cubicCurve(10, 50, 15, 5, 49, 5, 54, 50), NonZero)},
	{Name: "cubic_scurve", Width: 64, Height: 64,
		Layers: fill(cubicCurve(10, 50, 10, 10, 54, 54, 54, 14), NonZero)},
	{Name: "cubic_loop_nonzero", Width: 64, Height: 64,
		Layers: fill(cubicCurve(10, 32, 60, 5, 4, 59, 54, 32), NonZero)},
	{Name: "cubic_loop_evenodd", Width: 64, Height: 64,
		Layers: fill(cubicCurve(10, 32, 60, 5, 4, 59, 54, 32), EvenOdd)},
	{Name: "cubic_cusp", Width: 64, Height: 64,
		Layers: fill(cubicCurve(10, 50, 54, 10, 10, 10, 54, 50), NonZero)},
	{Name: "cubic_degenerate", Width: 64, Height: 64,
		Layers: fill(cubicCurve(32, 32, 32, 32, 32, 32, 32, 32), NonZero)},

	{Name: "circle", Width: 64, Height: 64,
		Layers: fill(circle(32, 32, 25), NonZero)},
	{Name: "circle_small", Width: 64, Height: 64,
		Layers: fill(circle(32, 32, 5), NonZero)},
	{Name: "circle_large", Width: 128, Height: 128,
		Layers: fill(circle(64, 64, 100), NonZero)},
	{Name: "ellipse", Width: 64, Height: 64,
		Layers: fill(ellipse(32, 32, 28, 14), NonZero)},
	{Name: "arc", Width: 64, Height: 64,
		Layers: fill(arc(32, 32, 25, 3), NonZero)},
	{Name: "curve_many_segments", Width: 128, Height: 64,
		Layers: fill(cubicCurve(5, 60, 5, 5, 123, 5, 123, 60), NonZero)},
	{Name: "mixed_lines_curves", Width: 64, Height: 64,
		Layers: fill(mixedLinesCurves(), NonZero)},
	{Name: "glyph_like", Width: 64, Height: 64,
		Layers: fill(glyphLikeShape(), NonZero)},
}

// quadraticCurve builds a closed shape with a quadratic Bezier curve.
func quadraticCurve(x1, y1, cx, cy, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt(cx, cy), pt(x2, y2)).
		Close()
}

// cubicCurve builds a closed shape with a cubic Bezier curve.
func cubicCurve(x1, y1, c1x, c1y, c2x, c2y, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		CubeTo(pt(c1x, c1y), pt(c2x, c2y), pt(x2, y2)).
		Close()
}

// sCurveQuadratic builds a closed S-shaped path from two quadratic Bezier curves.
func sCurveQuadratic(x1, y1, x2, y2 float64) *path.Data {
	midX := (x1 + x2) / 2
	midY := (y1 + y2) / 2

	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt((x1+midX)/2, y1-20), pt(midX, midY)).
		QuadTo(pt((midX+x2)/2, y2+20), pt(x2, y2)).
		Close()
}

// ellipseQuadrants appends n quarter arcs of the ellipse with center
// (cx, cy) and radii rx, ry to p, starting at the rightmost point and
// running counter-clockwise on screen.
func ellipseQuadrants(p *path.Data, cx, cy, rx, ry float64, n int) *path.Data {
	kx := rx * kappa
	ky := ry * kappa
	// (x, y) of the quadrant start points, in units of the radii
	dirs := [5][2]float64{{1, 0}, {0, -1}, {-1, 0}, {0, 1}, {1, 0}}
	for i := range min(n, 4) {
		a, b := dirs[i], dirs[i+1]
		p0 := pt(cx+a[0]*rx, cy+a[1]*ry)
		p3 := pt(cx+b[0]*rx, cy+b[1]*ry)
		c1 := pt(p0.X+b[0]*kx, p0.Y+b[1]*ky)
		c2 := pt(p3.X+a[0]*kx, p3.Y+a[1]*ky)
		p = p.CubeTo(c1, c2, p3)
	}
	return p
}

// circle builds an approximate circle using four cubic Bezier curves.
func circle(cx, cy, r float64) *path.Data {
	return ellipse(cx, cy, r, r)
}

// ellipse builds an approximate ellipse using four cubic Bezier curves.
func ellipse(cx, cy, rx, ry float64) *path.Data {
	p := (&path.Data{}).MoveTo(pt(cx+rx, cy))
	return ellipseQuadrants(p, cx, cy, rx, ry, 4).Close()
}

// arc builds a pie slice covering the given number of quadrants,
// starting at the right.
func arc(cx, cy, r float64, quadrants int) *path.Data {
	p := (&path.Data{}).
		MoveTo(pt(cx, cy)).
		LineTo(pt(cx+r, cy))
	return ellipseQuadrants(p, cx, cy, r, r, quadrants).Close()
}

// mixedLinesCurves builds a path combining line segments and Bezier curves.
func mixedLinesCurves() *path.Data {
	return (&path.Data{}).
		MoveTo(pt(10, 50)).
		LineTo(pt(20, 30)).
		QuadTo(pt(32, 10), pt(44, 30)).
		LineTo(pt(54, 50)).
		CubeTo(pt(48, 60), pt(16, 60), pt(10, 50)).
		Close()
}

// glyphLikeShape builds a shape resembling a lowercase 'a': a round bowl
// with a stem and a counter of opposite orientation.
func glyphLikeShape() *path.Data {
	const cx, cy, r, ir = 32.0, 38.0, 18.0, 8.0
	ik := ir * kappa

	p := (&path.Data{}).MoveTo(pt(cx+r, cy))
	p = ellipseQuadrants(p, cx, cy, r, r, 4)
	p = p.
		LineTo(pt(cx+r, 10)).
		LineTo(pt(cx+r-6, 10)).
		LineTo(pt(cx+r-6, cy)).
		LineTo(pt(cx+ir, cy))

	// the counter runs clockwise on screen
	return p.
		CubeTo(pt(cx+ir, cy+ik), pt(cx+ik, cy+ir), pt(cx, cy+ir)).
		CubeTo(pt(cx-ik, cy+ir), pt(cx-ir, cy+ik), pt(cx-ir, cy)).
		CubeTo(pt(cx-ir, cy-ik), pt(cx-ik, cy-ir), pt(cx, cy-ir)).
		CubeTo(pt(cx+ik, cy-ir), pt(cx+ir, cy-ik), pt(cx+ir, cy)).
		Close()
}
