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

package tiler

import (
	"cmp"
	"image"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// edge represents a line segment in canvas pixel coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0), precomputed for x-intercept calculation
}

// Block holds the quantized coverage of one tile, indexed as [column][row].
type Block [TileWidth][TileHeight]uint8

// Coverage is the dense coverage of one path over a tile-aligned region.
// Pixels outside Rect have coverage 0.
type Coverage struct {
	Rect   image.Rectangle // multiples of the tile size
	Values []float32       // row-major, Rect.Dx() values per row, in [0, 1]
}

// Reset empties c, keeping the allocated memory.
func (c *Coverage) Reset() {
	c.Rect = image.Rectangle{}
	c.Values = c.Values[:0]
}

// Empty reports whether c covers no pixels.
func (c *Coverage) Empty() bool {
	return c.Rect.Empty()
}

// At returns the coverage of pixel (x, y).
func (c *Coverage) At(x, y int) float32 {
	if !(image.Point{X: x, Y: y}.In(c.Rect)) {
		return 0
	}
	return c.Values[(y-c.Rect.Min.Y)*c.Rect.Dx()+x-c.Rect.Min.X]
}

// Block returns the quantized coverage of the tile whose top-left pixel
// is (x, y).
func (c *Coverage) Block(x, y int) Block {
	var b Block
	if !(image.Point{X: x, Y: y}.In(c.Rect)) {
		return b
	}
	stride := c.Rect.Dx()
	base := (y-c.Rect.Min.Y)*stride + x - c.Rect.Min.X
	for row := range TileHeight {
		vals := c.Values[base+row*stride : base+row*stride+TileWidth]
		for col, v := range vals {
			b[col][row] = Quantize(v)
		}
	}
	return b
}

// Quantize converts a coverage value in [0, 1] to 8 bits, rounding to
// the nearest value.
func Quantize(c float32) uint8 {
	if !(c > 0) {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return uint8(c*255 + 0.5)
}

// Accumulator computes antialiased coverage for flattened paths.
// Create one instance and reuse it for many paths: internal buffers grow
// as needed but never shrink, achieving zero allocations in steady state.
//
// An Accumulator is not safe for concurrent use.
type Accumulator struct {
	// smallPathThreshold is the maximum region area (in pixels) for
	// using 2D buffers (Approach A). Larger regions use the active edge
	// list (Approach B).
	smallPathThreshold int

	area      []float32 // area within pixel
	cover     []float32 // cover change per pixel (Approach B only)
	edges     []edge
	activeIdx []int
	crossings []float64

	edgeBBoxFirst bool
	edgeXMin      float64
	edgeXMax      float64
	edgeYMin      float64
	edgeYMax      float64
}

// NewAccumulator returns a new Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		smallPathThreshold: smallPathThreshold,
	}
}

// Accumulate computes the coverage of p under the given fill rule and
// stores it in dst. The coverage region is the bounding box of p, rounded
// outwards to whole tiles and intersected with clip. The clip rectangle
// must be tile-aligned.
func (a *Accumulator) Accumulate(p *Polyline, rule FillRule, clip image.Rectangle, dst *Coverage) {
	dst.Reset()
	switch rule {
	case NonZero, EvenOdd:
	default:
		panic("tiler: invalid fill rule " + rule.String())
	}

	region, ok := a.collectEdges(p, clip)
	if !ok {
		return
	}

	size := region.Dx() * region.Dy()
	dst.Rect = region
	dst.Values = slices.Grow(dst.Values[:0], size)[:size]
	clear(dst.Values)

	if size < a.smallPathThreshold {
		a.fillSmall(region, rule, dst.Values)
	} else {
		a.fillLarge(region, rule, dst.Values)
	}
}

// collectEdges builds the edge list for p and returns the tile-aligned
// region which needs to be rasterised.
func (a *Accumulator) collectEdges(p *Polyline, clip image.Rectangle) (image.Rectangle, bool) {
	a.edges = a.edges[:0]
	a.edgeBBoxFirst = true

	for p0, p1 := range p.Edges() {
		a.addEdge(p0, p1)
	}
	if len(a.edges) == 0 {
		return image.Rectangle{}, false
	}

	xMin := alignDown(a.edgeXMin, TileWidth, clip.Min.X, clip.Max.X)
	xMax := alignUp(a.edgeXMax, TileWidth, clip.Min.X, clip.Max.X)
	yMin := alignDown(a.edgeYMin, TileHeight, clip.Min.Y, clip.Max.Y)
	yMax := alignUp(a.edgeYMax, TileHeight, clip.Min.Y, clip.Max.Y)
	if xMin >= xMax || yMin >= yMax {
		return image.Rectangle{}, false
	}
	return image.Rect(xMin, yMin, xMax, yMax), true
}

// alignDown rounds v down to a multiple of step and clamps it to [lo, hi].
func alignDown(v float64, step int, lo, hi int) int {
	s := float64(step)
	v = math.Floor(v/s) * s
	return int(max(float64(lo), min(float64(hi), v)))
}

// alignUp rounds v up to a multiple of step and clamps it to [lo, hi].
func alignUp(v float64, step int, lo, hi int) int {
	s := float64(step)
	v = math.Ceil(v/s) * s
	return int(max(float64(lo), min(float64(hi), v)))
}

// addEdge appends the edge p0→p1 to the edge list. Horizontal edges do
// not contribute to coverage and are skipped.
func (a *Accumulator) addEdge(p0, p1 vec.Vec2) {
	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	a.edges = append(a.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})

	if a.edgeBBoxFirst {
		a.edgeXMin = min(p0.X, p1.X)
		a.edgeXMax = max(p0.X, p1.X)
		a.edgeYMin = min(p0.Y, p1.Y)
		a.edgeYMax = max(p0.Y, p1.Y)
		a.edgeBBoxFirst = false
	} else {
		a.edgeXMin = min(a.edgeXMin, p0.X, p1.X)
		a.edgeXMax = max(a.edgeXMax, p0.X, p1.X)
		a.edgeYMin = min(a.edgeYMin, p0.Y, p1.Y)
		a.edgeYMax = max(a.edgeYMax, p0.Y, p1.Y)
	}
}

// Coverage accumulation model:
//
// For each pixel, we track two values:
//   cover: signed vertical extent of edges crossing this pixel column
//   area:  horizontal position weighting (how far right the crossing is)
//
// An edge crossing a pixel contributes:
//   cover = sign * dy   (where sign is +1 for downward, -1 for upward)
//   area  = cover * (1 - xFrac)   (where xFrac is the horizontal position within the pixel)
//
// Final coverage is computed by integrateRow:
//   pixel_coverage = accumulated_cover + area[i]
//   accumulated_cover += cover[i]   (carry forward for next pixel)
//
// This is the signed area of the path within each pixel. Clamping its
// absolute value to [0,1] gives nonzero coverage, folding it gives
// even-odd coverage.

// accumulateEdge adds the contribution of e within scanline y to the cover
// and area buffers, which are indexed by x - xMin. Geometry to the left of
// xMin is attributed to the first pixel; geometry at or beyond xMax does
// not affect the region and is dropped.
func (a *Accumulator) accumulateEdge(e *edge, y int, cover, area []float32, xMin, xMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xAtYTop := e.x0 + e.dxdy*(yTop-e.y0)
	xAtYBot := e.x0 + e.dxdy*(yBot-e.y0)
	xLeft, xRight := min(xAtYTop, xAtYBot), max(xAtYTop, xAtYBot)

	if xLeft >= float64(xMax) {
		return
	}
	if xRight < float64(xMin) {
		coverVal := sign * float32(yBot-yTop)
		cover[0] += coverVal
		area[0] += coverVal
		return
	}

	pixLeft := pixelColumn(xLeft, xMin, xMax)
	pixRight := pixelColumn(xRight, xMin, xMax)

	if pixLeft == pixRight {
		a.accumulateSegment(e, yTop, yBot, sign, pixLeft, cover, area, xMin, xMax)
		return
	}

	// The edge spans several pixel columns: split it where it crosses
	// integer x coordinates.
	dydx := 1 / e.dxdy
	a.crossings = append(a.crossings[:0], yTop, yBot)
	for x := pixLeft + 1; x <= pixRight; x++ {
		yAtX := e.y0 + dydx*(float64(x)-e.x0)
		if yAtX > yTop && yAtX < yBot {
			a.crossings = append(a.crossings, yAtX)
		}
	}
	slices.Sort(a.crossings)

	for i := range len(a.crossings) - 1 {
		y0, y1 := a.crossings[i], a.crossings[i+1]
		if y1 <= y0 {
			continue
		}
		yMid := (y0 + y1) / 2
		pix := pixelColumn(e.x0+e.dxdy*(yMid-e.y0), xMin, xMax)
		a.accumulateSegment(e, y0, y1, sign, pix, cover, area, xMin, xMax)
	}
}

// pixelColumn returns the pixel column containing x, clamped to
// [xMin-1, xMax]. The clamp is applied before the conversion to int, so
// that coordinates far outside the region cannot overflow.
func pixelColumn(x float64, xMin, xMax int) int {
	return int(max(float64(xMin-1), min(float64(xMax), math.Floor(x))))
}

// accumulateSegment handles the part of e between yTop and yBot, which
// lies within the single pixel column pix.
func (a *Accumulator) accumulateSegment(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, xMin, xMax int) {
	coverVal := sign * float32(yBot-yTop)

	if pix < xMin {
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pix >= xMax {
		return
	}

	yMid := (yTop + yBot) / 2
	xMid := e.x0 + e.dxdy*(yMid-e.y0)
	xFrac := xMid - float64(pix)

	idx := pix - xMin
	cover[idx] += coverVal
	area[idx] += coverVal * float32(1-xFrac)
}

// integrateRow converts accumulated cover/area values to coverage using
// the given fill rule. out may alias cover.
func integrateRow(out, cover, area []float32, rule FillRule) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]

		if raw < 0 {
			raw = -raw
		}
		var cov float32
		switch rule {
		case EvenOdd:
			mod := raw - 2*float32(int(raw/2))
			cov = 1 - abs32(1-mod)
		default:
			cov = min(raw, 1)
		}
		out[i] = cov
	}
}

// abs32 returns the absolute value of a float32.
func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// fillSmall rasterises using 2D buffers (Approach A). The cover values are
// accumulated directly in out, which is then integrated in place.
func (a *Accumulator) fillSmall(region image.Rectangle, rule FillRule, out []float32) {
	width := region.Dx()
	height := region.Dy()
	xMin, xMax := region.Min.X, region.Max.X
	yMin, yMax := region.Min.Y, region.Max.Y

	size := width * height
	a.area = slices.Grow(a.area[:0], size)[:size]
	clear(a.area)

	for i := range a.edges {
		e := &a.edges[i]

		edgeYMin := int(max(float64(yMin), min(float64(yMax), math.Floor(min(e.y0, e.y1)))))
		edgeYMax := int(max(float64(yMin), min(float64(yMax), math.Ceil(max(e.y0, e.y1)))))

		for y := edgeYMin; y < edgeYMax; y++ {
			off := (y - yMin) * width
			a.accumulateEdge(e, y, out[off:off+width], a.area[off:off+width], xMin, xMax)
		}
	}

	for row := range height {
		off := row * width
		integrateRow(out[off:off+width], out[off:off+width], a.area[off:off+width], rule)
	}
}

// fillLarge rasterises using 1D buffers and an active edge list
// (Approach B).
func (a *Accumulator) fillLarge(region image.Rectangle, rule FillRule, out []float32) {
	width := region.Dx()
	xMin, xMax := region.Min.X, region.Max.X
	yMin, yMax := region.Min.Y, region.Max.Y

	a.cover = slices.Grow(a.cover[:0], width)[:width]
	a.area = slices.Grow(a.area[:0], width)[:width]

	slices.SortFunc(a.edges, func(e, f edge) int {
		return cmp.Compare(min(e.y0, e.y1), min(f.y0, f.y1))
	})

	a.activeIdx = a.activeIdx[:0]
	nextEdge := 0
	for nextEdge < len(a.edges) && max(a.edges[nextEdge].y0, a.edges[nextEdge].y1) <= float64(yMin) {
		nextEdge++
	}

	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		yfNext := float64(y + 1)

		for nextEdge < len(a.edges) {
			e := &a.edges[nextEdge]
			if min(e.y0, e.y1) >= yfNext {
				break
			}
			a.activeIdx = append(a.activeIdx, nextEdge)
			nextEdge++
		}

		if len(a.activeIdx) == 0 {
			continue
		}

		clear(a.cover)
		clear(a.area)

		for i := 0; i < len(a.activeIdx); {
			e := &a.edges[a.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				a.activeIdx[i] = a.activeIdx[len(a.activeIdx)-1]
				a.activeIdx = a.activeIdx[:len(a.activeIdx)-1]
				continue
			}
			a.accumulateEdge(e, y, a.cover, a.area, xMin, xMax)
			i++
		}

		off := (y - yMin) * width
		integrateRow(out[off:off+width], a.cover, a.area, rule)
	}
}

// Numerical constants of the accumulator.
const (
	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the maximum region area (in pixels) for using
	// 2D buffers (Approach A).
	smallPathThreshold = 65536
)
