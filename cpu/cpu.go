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

// Package cpu composites tiler frames on the CPU.
//
// The compositor reads the same buffers as the GPU shader in package gpu,
// and is used as a reference for it.
package cpu

import (
	"encoding/binary"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"seehuhn.de/go/tiler"
	"seehuhn.de/go/tiler/gpu"
)

// Render returns a new image of the frame's canvas size, filled with bg
// and with the frame composited on top.
func Render(f *tiler.Frame, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(f.Config.Width), int(f.Config.Height)))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	Composite(img, f)
	return img
}

// Composite draws all batches of f onto dst, in order, using premultiplied
// source-over blending. Pixels outside the canvas or outside dst are left
// unchanged.
func Composite(dst *image.RGBA, f *tiler.Frame) {
	_, batches := gpu.EncodeFrame(f)
	clip := dst.Bounds().Intersect(image.Rect(0, 0, int(f.Config.Width), int(f.Config.Height)))
	for _, b := range batches {
		for i := range int(b.InstanceCount) {
			cmd := gpu.DecodeInstance(b.Instances, i)
			drawInstance(dst, clip, cmd, b.Atlas)
		}
	}
}

func drawInstance(dst *image.RGBA, clip image.Rectangle, cmd tiler.WideTileCommand, atlas []byte) {
	r, g, b, a := cmd.Color.Channels()
	x0, y0 := int(cmd.X), int(cmd.Y)
	quad := image.Rect(x0, y0, x0+int(cmd.Width), y0+tiler.TileHeight).Intersect(clip)

	for py := quad.Min.Y; py < quad.Max.Y; py++ {
		row := py - y0
		for px := quad.Min.X; px < quad.Max.X; px++ {
			cov := uint32(255)
			if !cmd.IsOpaque() {
				col := px - x0
				slot := int(cmd.AlphaIdx) + col/tiler.TileWidth
				off := (slot*tiler.TileWidth + col%tiler.TileWidth) * 4
				word := binary.LittleEndian.Uint32(atlas[off:])
				cov = (word >> (8 * row)) & 0xFF
			}
			if cov == 0 {
				continue
			}
			blend(dst.PixOffset(px, py), dst.Pix, r, g, b, uint8(div255(uint32(a)*cov)))
		}
	}
}

// blend composites a straight-alpha color with alpha a onto the
// premultiplied pixel at pix[i:i+4].
func blend(i int, pix []uint8, r, g, b, a uint8) {
	ia := 255 - uint32(a)
	pix[i+0] = uint8(div255(uint32(r)*uint32(a)) + div255(uint32(pix[i+0])*ia))
	pix[i+1] = uint8(div255(uint32(g)*uint32(a)) + div255(uint32(pix[i+1])*ia))
	pix[i+2] = uint8(div255(uint32(b)*uint32(a)) + div255(uint32(pix[i+2])*ia))
	pix[i+3] = uint8(uint32(a) + div255(uint32(pix[i+3])*ia))
}

// div255 returns x/255, rounded to the nearest integer, for x <= 255*255.
func div255(x uint32) uint32 {
	x += 128
	return (x + x>>8) >> 8
}
