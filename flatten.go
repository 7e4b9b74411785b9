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
	"iter"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// DefaultTolerance is the default flattening tolerance in pixels.
const DefaultTolerance = 0.1

// maxCurveSegments bounds the number of line segments a single curve is
// split into.
const maxCurveSegments = 1 << 12

// Polyline is a flattened path in canvas pixel coordinates.
// Every loop is implicitly closed: the last point connects back to the
// first point of the same loop.
type Polyline struct {
	Points []vec.Vec2
	Starts []int // index into Points of the first point of each loop

	// Dropped counts the segments removed because they were zero-length
	// or had non-finite coordinates.
	Dropped int
}

// Reset clears the polyline, keeping the allocated memory.
func (p *Polyline) Reset() {
	p.Points = p.Points[:0]
	p.Starts = p.Starts[:0]
	p.Dropped = 0
}

// NumLoops returns the number of closed loops.
func (p *Polyline) NumLoops() int {
	return len(p.Starts)
}

// Loop returns the points of loop i.
func (p *Polyline) Loop(i int) []vec.Vec2 {
	end := len(p.Points)
	if i+1 < len(p.Starts) {
		end = p.Starts[i+1]
	}
	return p.Points[p.Starts[i]:end]
}

// Edges iterates over all edges of all loops, including the closing edges.
func (p *Polyline) Edges() iter.Seq2[vec.Vec2, vec.Vec2] {
	return func(yield func(vec.Vec2, vec.Vec2) bool) {
		for i := range p.Starts {
			loop := p.Loop(i)
			for j, a := range loop {
				b := loop[0]
				if j+1 < len(loop) {
					b = loop[j+1]
				}
				if !yield(a, b) {
					return
				}
			}
		}
	}
}

// Bounds returns the bounding box of all points.
// The result is not ok if the polyline is empty.
func (p *Polyline) Bounds() (rect.Rect, bool) {
	if len(p.Points) == 0 {
		return rect.Rect{}, false
	}
	b := rect.Rect{
		LLx: p.Points[0].X, LLy: p.Points[0].Y,
		URx: p.Points[0].X, URy: p.Points[0].Y,
	}
	for _, pt := range p.Points[1:] {
		b.LLx = min(b.LLx, pt.X)
		b.URx = max(b.URx, pt.X)
		b.LLy = min(b.LLy, pt.Y)
		b.URy = max(b.URy, pt.Y)
	}
	return b, true
}

// Flattener approximates paths by polylines.
// A Flattener holds no state between calls and may be copied freely.
type Flattener struct {
	// Tolerance is the maximal distance in pixels between a curve and its
	// approximating polyline. Values <= 0 select DefaultTolerance.
	Tolerance float64

	// CTM maps path coordinates to pixels. The zero value means identity.
	CTM matrix.Matrix
}

// Flatten replaces the contents of dst with the flattened outline of p.
func (f Flattener) Flatten(p *path.Data, dst *Polyline) {
	dst.Reset()
	if p == nil {
		return
	}

	b := loopBuilder{
		dst:       dst,
		ctm:       f.CTM,
		tolerance: f.Tolerance,
	}
	if b.ctm == (matrix.Matrix{}) {
		b.ctm = matrix.Identity
	}
	if !(b.tolerance > 0) {
		b.tolerance = DefaultTolerance
	}

	for cmd, pts := range p.Iter() {
		switch cmd {
		case path.CmdMoveTo:
			b.closeLoop()
			b.moveTo(pts[0])
		case path.CmdLineTo:
			b.lineTo(pts[0])
		case path.CmdQuadTo:
			b.quadTo(pts[0], pts[1])
		case path.CmdCubeTo:
			b.cubeTo(pts[0], pts[1], pts[2])
		case path.CmdClose:
			b.closeLoop()
		}
	}
	b.closeLoop()

	if dst.Dropped > 0 {
		Logger().Debug("dropped degenerate segments", "count", dst.Dropped)
	}
}

// loopBuilder collects device space points for one Flatten call.
type loopBuilder struct {
	dst       *Polyline
	ctm       matrix.Matrix
	tolerance float64

	inLoop     bool
	hasCurrent bool
	start      int      // index of the first point of the current loop
	current    vec.Vec2 // current point in device space
}

func (b *loopBuilder) transform(p vec.Vec2) vec.Vec2 {
	return b.ctm.Apply(p)
}

func (b *loopBuilder) moveTo(p vec.Vec2) {
	q := b.transform(p)
	if !isFinite(q) {
		b.dst.Dropped++
		b.inLoop = false
		b.hasCurrent = false
		return
	}
	b.start = len(b.dst.Points)
	b.dst.Points = append(b.dst.Points, q)
	b.current = q
	b.inLoop = true
	b.hasCurrent = true
}

// reopen starts a new loop at the current point, for drawing commands
// which follow a ClosePath without a MoveTo. If there is no current
// point, the segment is counted as dropped and reopen returns false.
func (b *loopBuilder) reopen() bool {
	if b.inLoop {
		return true
	}
	if !b.hasCurrent {
		b.dst.Dropped++
		return false
	}
	b.start = len(b.dst.Points)
	b.dst.Points = append(b.dst.Points, b.current)
	b.inLoop = true
	return true
}

// addPoint appends the end point of a line segment starting at the
// current point.
func (b *loopBuilder) addPoint(q vec.Vec2) {
	if !isFinite(q) || q == b.current {
		b.dst.Dropped++
		return
	}
	b.dst.Points = append(b.dst.Points, q)
	b.current = q
}

func (b *loopBuilder) lineTo(p vec.Vec2) {
	if !b.reopen() {
		return
	}
	b.addPoint(b.transform(p))
}

// quadTo flattens a quadratic Bézier curve from the current point.
// The number of segments is ceil(sqrt(|P0 - 2P1 + P2| / (4ε))).
func (b *loopBuilder) quadTo(p1, p2 vec.Vec2) {
	if !b.reopen() {
		return
	}
	p0 := b.current
	q1 := b.transform(p1)
	q2 := b.transform(p2)
	if !isFinite(q1) || !isFinite(q2) {
		b.dst.Dropped++
		return
	}

	e := p0.Sub(q1.Mul(2)).Add(q2).Mul(0.25)
	n := 1
	if errDev := e.Length(); errDev > b.tolerance {
		n = segmentCount(math.Sqrt(errDev / b.tolerance))
	}

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(q1.Mul(2 * omt * t)).Add(q2.Mul(t * t))
		if i == n {
			pt = q2
		}
		b.addPoint(pt)
	}
}

// cubeTo flattens a cubic Bézier curve from the current point, using
// Wang's formula for the number of segments.
func (b *loopBuilder) cubeTo(p1, p2, p3 vec.Vec2) {
	if !b.reopen() {
		return
	}
	p0 := b.current
	q1 := b.transform(p1)
	q2 := b.transform(p2)
	q3 := b.transform(p3)
	if !isFinite(q1) || !isFinite(q2) || !isFinite(q3) {
		b.dst.Dropped++
		return
	}

	d1 := p0.Sub(q1.Mul(2)).Add(q2)
	d2 := q1.Sub(q2.Mul(2)).Add(q3)
	m := max(d1.Length(), d2.Length())
	n := 1
	if m > 0 {
		if nFloat := math.Sqrt(3 * m / (4 * b.tolerance)); nFloat > 1 {
			n = segmentCount(nFloat)
		}
	}

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(q1.Mul(3 * omt2 * t)).Add(q2.Mul(3 * omt * t2)).Add(q3.Mul(t2 * t))
		if i == n {
			pt = q3
		}
		b.addPoint(pt)
	}
}

// closeLoop finishes the current loop. Loops with fewer than three
// distinct points enclose no area and are removed.
func (b *loopBuilder) closeLoop() {
	if !b.inLoop {
		return
	}
	b.inLoop = false

	pts := b.dst.Points
	first := pts[b.start]
	b.current = first
	if len(pts)-b.start > 1 && pts[len(pts)-1] == first {
		pts = pts[:len(pts)-1]
	}
	if n := len(pts) - b.start; n < 3 {
		if n > 1 {
			b.dst.Dropped++
		}
		b.dst.Points = pts[:b.start]
		return
	}
	b.dst.Points = pts
	b.dst.Starts = append(b.dst.Starts, b.start)
}

func segmentCount(x float64) int {
	if !(x < maxCurveSegments) {
		return maxCurveSegments
	}
	return max(1, int(math.Ceil(x)))
}

func isFinite(p vec.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
