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

// Package testcases holds the scenes used to test the tiler.
//
// The package deliberately does not import the tiler itself, so that the
// scenes can be shared between the tests of all packages and the
// reference generators in the subdirectories.
package testcases

import (
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// TestCase defines a single scene.
type TestCase struct {
	Name   string  // lowercase a-z, 0-9 and _ only
	Width  int     // canvas width in pixels
	Height int     // canvas height in pixels
	Layers []Layer // back to front
}

// Layer is one filled path of a scene.
type Layer struct {
	Path  *path.Data
	Rule  FillRule
	Color color.NRGBA
	CTM   matrix.Matrix // zero value means no transform
}

// FillRule specifies the rule for determining interior points.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// Colors used by the scenes.
var (
	White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Red   = color.NRGBA{R: 255, A: 255}
	Green = color.NRGBA{G: 255, A: 255}
	Blue  = color.NRGBA{B: 255, A: 255}
)

// fill returns a scene with a single white layer.
func fill(p *path.Data, rule FillRule) []Layer {
	return []Layer{{Path: p, Rule: rule, Color: White}}
}

// fillCTM returns a scene with a single white layer drawn under a
// transformation.
func fillCTM(p *path.Data, ctm matrix.Matrix) []Layer {
	return []Layer{{Path: p, Rule: NonZero, Color: White, CTM: ctm}}
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
