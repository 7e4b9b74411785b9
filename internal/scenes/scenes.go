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

// Package scenes converts test cases into tiler scenes.
package scenes

import (
	"seehuhn.de/go/tiler"
	"seehuhn.de/go/tiler/testcases"
)

// Convert returns the scene and canvas described by tc.
func Convert(tc testcases.TestCase) (tiler.Scene, tiler.Config) {
	scene := make(tiler.Scene, len(tc.Layers))
	for i, l := range tc.Layers {
		rule := tiler.NonZero
		if l.Rule == testcases.EvenOdd {
			rule = tiler.EvenOdd
		}
		scene[i] = tiler.Path{
			Data:  l.Path,
			Rule:  rule,
			Color: tiler.FromColor(l.Color),
			CTM:   l.CTM,
		}
	}
	cfg := tiler.Config{Width: uint32(tc.Width), Height: uint32(tc.Height)}
	return scene, cfg
}

// Find returns the test case with the given category and name.
func Find(category, name string) (testcases.TestCase, bool) {
	for _, tc := range testcases.All[category] {
		if tc.Name == name {
			return tc, true
		}
	}
	return testcases.TestCase{}, false
}
