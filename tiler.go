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

// Package tiler converts filled vector paths into a compact command stream
// for an instanced GPU compositing pass.
//
// The canvas is divided into 4×4 pixel tiles. For every path, in draw
// order, the tiler computes antialiased coverage, classifies each tile as
// empty, fully covered or partially covered, merges horizontal runs of
// equal tiles into [WideTileCommand]s, and packs the coverage of partial
// tiles into a fixed-size [AlphaAtlas] of 1024 slots. When a frame needs
// more slots than one atlas holds, the commands emitted so far are flushed
// as a [Batch] and tiling continues on an empty atlas.
package tiler

import (
	"fmt"
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
)

// Tile dimensions in pixels.
const (
	TileWidth  = 4
	TileHeight = 4
)

// OpaqueAlphaIdx is the alpha index of commands which need no coverage
// mask.
const OpaqueAlphaIdx = 0xFFFF

// FillRule selects how the winding number of a point determines whether
// it is inside the path.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return fmt.Sprintf("FillRule(%d)", uint8(r))
	}
}

// Color is a straight-alpha RGBA color, packed as 0xRRGGBBAA.
type Color uint32

// RGBA packs four 8-bit channels into a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// FromColor converts c to a straight-alpha Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
}

// Channels returns the unpacked channels of c.
func (c Color) Channels() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Path is a filled shape of a scene.
// A Path must not be modified after it has been passed to the tiler.
type Path struct {
	// Data is the outline of the shape in user space.
	Data *path.Data

	// Rule selects the fill rule.
	Rule FillRule

	// Color is the solid fill color.
	Color Color

	// CTM maps user space to canvas pixels.
	// The zero value means identity.
	CTM matrix.Matrix
}

// Scene is a list of paths in back-to-front order.
type Scene []Path

// Config holds the canvas dimensions in pixels.
type Config struct {
	Width  uint32
	Height uint32
}

// NDC maps pixel coordinates to normalized device coordinates, with the
// y axis pointing up.
func (c Config) NDC(px, py float32) (x, y float32) {
	x = -1 + 2*px/float32(c.Width)
	y = 1 - 2*py/float32(c.Height)
	return x, y
}

// TileColumns returns the number of tile columns covering the canvas.
func (c Config) TileColumns() int {
	return (int(c.Width) + TileWidth - 1) / TileWidth
}

// TileRows returns the number of tile rows covering the canvas.
func (c Config) TileRows() int {
	return (int(c.Height) + TileHeight - 1) / TileHeight
}

// WideTileCommand draws a horizontal run of tiles in a single color.
type WideTileCommand struct {
	X, Y  uint32 // pixel coordinates of the top-left tile
	Width uint32 // in pixels, a positive multiple of TileWidth

	// AlphaIdx is OpaqueAlphaIdx, or the first of Width/TileWidth
	// consecutive atlas slots.
	AlphaIdx uint32

	Color Color
}

// Tiles returns the number of tiles covered by the command.
func (c WideTileCommand) Tiles() int {
	return int(c.Width) / TileWidth
}

// IsOpaque reports whether the command is drawn without a coverage mask.
func (c WideTileCommand) IsOpaque() bool {
	return c.AlphaIdx == OpaqueAlphaIdx
}
