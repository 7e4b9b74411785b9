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
	"image/color"

	"seehuhn.de/go/geom/path"
)

// sceneCases contain several layers of different colors.
var sceneCases = []TestCase{
	{
		Name:   "opaque_rectangle",
		Width:  256,
		Height: 256,
		Layers: []Layer{
			{Path: rectangle(50, 50, 150, 150), Rule: NonZero, Color: Red},
		},
	},
	{
		Name:   "single_circle",
		Width:  256,
		Height: 256,
		Layers: []Layer{
			{Path: circle(128, 128, 50), Rule: NonZero, Color: Red},
		},
	},
	{
		Name:   "draw_order",
		Width:  256,
		Height: 256,
		Layers: []Layer{
			{Path: rectangle(40, 40, 160, 160), Rule: NonZero, Color: Red},
			{Path: rectangle(100, 100, 220, 220), Rule: NonZero, Color: Blue},
		},
	},
	{
		Name:   "translucent",
		Width:  128,
		Height: 128,
		Layers: []Layer{
			{Path: circle(48, 48, 30), Rule: NonZero, Color: color.NRGBA{R: 255, A: 128}},
			{Path: circle(80, 48, 30), Rule: NonZero, Color: color.NRGBA{G: 255, A: 128}},
			{Path: circle(64, 76, 30), Rule: NonZero, Color: color.NRGBA{B: 255, A: 128}},
		},
	},
	{
		Name:   "star_over_ring",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{Path: concentricRectangles(32, 32, 28, 14), Rule: EvenOdd, Color: Green},
			{Path: fivePointStar(32, 32, 25), Rule: EvenOdd, Color: Red},
		},
	},
	{
		Name:   "outside_canvas",
		Width:  64,
		Height: 64,
		Layers: []Layer{
			{Path: rectangle(-40, -40, -8, -8), Rule: NonZero, Color: Red},
			{Path: rectangle(70, 10, 90, 30), Rule: NonZero, Color: Green},
			{Path: circle(32, 32, 10), Rule: NonZero, Color: Blue},
		},
	},
	{
		Name:   "empty",
		Width:  64,
		Height: 64,
	},
	{
		Name:   "atlas_overflow",
		Width:  512,
		Height: 512,
		Layers: circleGrid(24, 24, 512, 6.3),
	},
	{
		Name:   "many_layers",
		Width:  256,
		Height: 256,
		Layers: staircase(200),
	},
}

// circleGrid covers a square canvas with rows×cols small circles, each in
// its own layer.
func circleGrid(rows, cols int, size int, r float64) []Layer {
	cellW := float64(size) / float64(cols)
	cellH := float64(size) / float64(rows)

	var layers []Layer
	for row := range rows {
		for col := range cols {
			c := color.NRGBA{
				R: uint8(255 * row / rows),
				G: uint8(255 * col / cols),
				B: 128,
				A: 255,
			}
			layers = append(layers, Layer{
				Path:  circle((float64(col)+0.5)*cellW, (float64(row)+0.5)*cellH, r),
				Rule:  NonZero,
				Color: c,
			})
		}
	}
	return layers
}

// staircase returns n overlapping rectangles, moving diagonally across a
// 256×256 canvas.
func staircase(n int) []Layer {
	layers := make([]Layer, n)
	for i := range layers {
		x := 0.3 + float64(i)*1.1
		var p *path.Data
		if i%3 == 0 {
			p = circle(x+20, x+20, 18.5)
		} else {
			p = rectangle(x, x+2.5, x+40.25, x+30)
		}
		layers[i] = Layer{
			Path:  p,
			Rule:  FillRule(i % 2),
			Color: color.NRGBA{R: uint8(i), G: uint8(255 - i), B: uint8(3 * i), A: uint8(128 + i%128)},
		}
	}
	return layers
}
