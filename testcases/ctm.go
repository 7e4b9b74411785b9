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
	"seehuhn.de/go/geom/matrix"
)

var ctmCases = []TestCase{
	// uniform scaling
	{Name: "scale_2x", Width: 128, Height: 128,
		Layers: fillCTM(rectangle(0, 0, 20, 20), matrix.Scale(2, 2).Translate(24, 24))},
	{Name: "scale_half", Width: 64, Height: 64,
		Layers: fillCTM(rectangle(0, 0, 80, 80), matrix.Scale(0.5, 0.5).Translate(12, 12))},
	{Name: "scale_10x", Width: 128, Height: 128,
		Layers: fillCTM(rectangle(0, 0, 4, 4), matrix.Scale(10, 10).Translate(44, 44))},

	// rotation
	{Name: "rotate_45deg", Width: 64, Height: 64,
		Layers: fillCTM(rectangle(-10, -10, 10, 10), matrix.RotateDeg(45).Translate(32, 32))},
	{Name: "rotate_90deg", Width: 64, Height: 64,
		Layers: fillCTM(rectangle(-15, -10, 15, 10), matrix.RotateDeg(90).Translate(32, 32))},
	{Name: "rotate_5deg", Width: 64, Height: 64,
		Layers: fillCTM(rectangle(-20, -10, 20, 10), matrix.RotateDeg(5).Translate(32, 32))},

	// non-uniform scaling
	{Name: "scale_2x_1y", Width: 128, Height: 64,
		Layers: fillCTM(rectangle(-10, -10, 10, 10), matrix.Scale(2, 1).Translate(64, 32))},
	{Name: "circle_to_ellipse", Width: 128, Height: 64,
		Layers: fillCTM(circle(0, 0, 15), matrix.Scale(2, 1).Translate(64, 32))},

	// shear
	{Name: "shear_horizontal", Width: 64, Height: 64,
		Layers: fillCTM(rectangle(-15, -15, 15, 15), matrix.Matrix{1, 0, 0.5, 1, 0, 0}.Translate(32, 32))},
	{Name: "shear_and_rotate", Width: 64, Height: 64,
		Layers: fillCTM(rectangle(-12, -12, 12, 12), matrix.Matrix{1, 0, 0.3, 1, 0, 0}.RotateDeg(30).Translate(32, 32))},
}
