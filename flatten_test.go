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
	"context"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func TestFlattenPolygon(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 1, Y: 2}).
		LineTo(vec.Vec2{X: 5, Y: 2}).
		LineTo(vec.Vec2{X: 5, Y: 6}).
		LineTo(vec.Vec2{X: 1, Y: 6}).
		Close()

	poly := &Polyline{}
	Flattener{}.Flatten(p, poly)

	if poly.NumLoops() != 1 {
		t.Fatalf("got %d loops, want 1", poly.NumLoops())
	}
	want := []vec.Vec2{{X: 1, Y: 2}, {X: 5, Y: 2}, {X: 5, Y: 6}, {X: 1, Y: 6}}
	if !slices.Equal(poly.Loop(0), want) {
		t.Errorf("got %v, want %v", poly.Loop(0), want)
	}
	if poly.Dropped != 0 {
		t.Errorf("dropped %d segments", poly.Dropped)
	}

	n := 0
	for a, b := range poly.Edges() {
		if a == b {
			t.Errorf("zero-length edge at %v", a)
		}
		n++
	}
	if n != 4 {
		t.Errorf("got %d edges, want 4", n)
	}

	b, ok := poly.Bounds()
	if want := (rect.Rect{LLx: 1, LLy: 2, URx: 5, URy: 6}); !ok || b != want {
		t.Errorf("got bounds %v, want %v", b, want)
	}
}

// TestFlattenExplicitClose checks that a final LineTo back to the start
// point does not produce a duplicate vertex.
func TestFlattenExplicitClose(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 4, Y: 0}).
		LineTo(vec.Vec2{X: 0, Y: 4}).
		LineTo(vec.Vec2{X: 0, Y: 0}).
		Close()

	poly := &Polyline{}
	Flattener{}.Flatten(p, poly)
	if len(poly.Points) != 3 {
		t.Errorf("got %d points, want 3", len(poly.Points))
	}
}

func TestFlattenDegenerate(t *testing.T) {
	cases := map[string]*path.Data{
		"point": (&path.Data{}).
			MoveTo(vec.Vec2{X: 3, Y: 3}).
			LineTo(vec.Vec2{X: 3, Y: 3}).
			Close(),
		"line": (&path.Data{}).
			MoveTo(vec.Vec2{X: 3, Y: 3}).
			LineTo(vec.Vec2{X: 9, Y: 3}).
			Close(),
		"back_and_forth": (&path.Data{}).
			MoveTo(vec.Vec2{X: 3, Y: 3}).
			LineTo(vec.Vec2{X: 9, Y: 7}).
			LineTo(vec.Vec2{X: 3, Y: 3}).
			Close(),
		"nan": (&path.Data{}).
			MoveTo(vec.Vec2{X: 3, Y: 3}).
			LineTo(vec.Vec2{X: math.NaN(), Y: 3}).
			LineTo(vec.Vec2{X: 9, Y: 3}).
			Close(),
		"cubic_point": (&path.Data{}).
			MoveTo(vec.Vec2{X: 3, Y: 3}).
			CubeTo(vec.Vec2{X: 3, Y: 3}, vec.Vec2{X: 3, Y: 3}, vec.Vec2{X: 3, Y: 3}).
			Close(),
	}

	for name, p := range cases {
		poly := &Polyline{}
		Flattener{}.Flatten(p, poly)
		if poly.NumLoops() != 0 || len(poly.Points) != 0 {
			t.Errorf("%s: got %d loops with %d points, want none",
				name, poly.NumLoops(), len(poly.Points))
		}
		if poly.Dropped == 0 {
			t.Errorf("%s: nothing reported as dropped", name)
		}
	}
}

func TestFlattenNonFiniteMoveTo(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: math.Inf(1), Y: 0}).
		LineTo(vec.Vec2{X: 5, Y: 0}).
		QuadTo(vec.Vec2{X: 5, Y: 5}, vec.Vec2{X: 0, Y: 5}).
		CubeTo(vec.Vec2{X: 0, Y: 4}, vec.Vec2{X: 0, Y: 2}, vec.Vec2{X: 0, Y: 1}).
		Close().
		MoveTo(vec.Vec2{X: 1, Y: 1}).
		LineTo(vec.Vec2{X: 9, Y: 1}).
		LineTo(vec.Vec2{X: 1, Y: 9}).
		Close()

	poly := &Polyline{}
	Flattener{}.Flatten(p, poly)

	if poly.NumLoops() != 1 {
		t.Fatalf("got %d loops, want 1", poly.NumLoops())
	}
	// the move and the three segments which follow it
	if poly.Dropped != 4 {
		t.Errorf("got %d dropped, want 4", poly.Dropped)
	}

	scene := Scene{{Data: p, Color: RGBA(0, 0, 0, 255)}}
	frame, err := NewEncoder(nil).Encode(context.Background(), scene, Config{Width: 16, Height: 16})
	if err != nil {
		t.Fatal(err)
	}
	if got := frame.Stats().Dropped; got != 4 {
		t.Errorf("frame reports %d dropped, want 4", got)
	}
}

func TestFlattenNil(t *testing.T) {
	poly := &Polyline{Points: []vec.Vec2{{X: 1, Y: 1}}, Starts: []int{0}}
	Flattener{}.Flatten(nil, poly)
	if len(poly.Points) != 0 || poly.NumLoops() != 0 {
		t.Error("polyline not reset")
	}
}

// TestFlattenReopen checks that drawing after ClosePath starts a new loop
// at the start point of the closed one.
func TestFlattenReopen(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 10}).
		Close().
		LineTo(vec.Vec2{X: 0, Y: 10}).
		LineTo(vec.Vec2{X: -5, Y: 5}).
		Close()

	poly := &Polyline{}
	Flattener{}.Flatten(p, poly)
	if poly.NumLoops() != 2 {
		t.Fatalf("got %d loops, want 2", poly.NumLoops())
	}
	if first := poly.Loop(1)[0]; first != (vec.Vec2{}) {
		t.Errorf("second loop starts at %v, want origin", first)
	}
}

func TestFlattenCTM(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 1, Y: 0}).
		LineTo(vec.Vec2{X: 0, Y: 1}).
		Close()

	poly := &Polyline{}
	Flattener{CTM: matrix.Matrix{2, 0, 0, 3, 10, 20}}.Flatten(p, poly)

	want := []vec.Vec2{{X: 10, Y: 20}, {X: 12, Y: 20}, {X: 10, Y: 23}}
	if !slices.Equal(poly.Points, want) {
		t.Errorf("got %v, want %v", poly.Points, want)
	}
}

// TestFlattenTolerance checks that the flattened circle stays within the
// requested distance of the true circle.
func TestFlattenTolerance(t *testing.T) {
	const cx, cy, r = 100.0, 100.0, 50.0
	const k = r * 0.5522847498307936
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: cx + r, Y: cy}).
		CubeTo(vec.Vec2{X: cx + r, Y: cy - k}, vec.Vec2{X: cx + k, Y: cy - r}, vec.Vec2{X: cx, Y: cy - r}).
		CubeTo(vec.Vec2{X: cx - k, Y: cy - r}, vec.Vec2{X: cx - r, Y: cy - k}, vec.Vec2{X: cx - r, Y: cy}).
		CubeTo(vec.Vec2{X: cx - r, Y: cy + k}, vec.Vec2{X: cx - k, Y: cy + r}, vec.Vec2{X: cx, Y: cy + r}).
		CubeTo(vec.Vec2{X: cx + k, Y: cy + r}, vec.Vec2{X: cx + r, Y: cy + k}, vec.Vec2{X: cx + r, Y: cy}).
		Close()
	center := vec.Vec2{X: cx, Y: cy}

	for _, tol := range []float64{1, 0.25, DefaultTolerance, 0.01} {
		poly := &Polyline{}
		Flattener{Tolerance: tol}.Flatten(p, poly)

		// the cubic approximation of the circle is off by up to 0.03% of r
		slack := tol + 0.0003*r
		for a, b := range poly.Edges() {
			for _, q := range []vec.Vec2{a, a.Add(b).Mul(0.5)} {
				d := q.Sub(center).Length()
				if d > r+slack || d < r-slack {
					t.Fatalf("tol=%g: point %v at distance %g from center", tol, q, d)
				}
			}
		}
	}

	coarse, fine := &Polyline{}, &Polyline{}
	Flattener{Tolerance: 1}.Flatten(p, coarse)
	Flattener{Tolerance: 0.01}.Flatten(p, fine)
	if len(fine.Points) <= len(coarse.Points) {
		t.Errorf("finer tolerance gave %d points, coarse %d", len(fine.Points), len(coarse.Points))
	}
}

func TestFlattenQuadratic(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		QuadTo(vec.Vec2{X: 50, Y: 100}, vec.Vec2{X: 100, Y: 0}).
		Close()

	poly := &Polyline{}
	Flattener{}.Flatten(p, poly)

	pts := poly.Loop(0)
	if pts[0] != (vec.Vec2{}) || pts[len(pts)-1] != (vec.Vec2{X: 100, Y: 0}) {
		t.Errorf("end points not preserved: %v ... %v", pts[0], pts[len(pts)-1])
	}
	// the apex of the parabola is at y = 50
	apex := 0.0
	for _, q := range pts {
		apex = max(apex, q.Y)
	}
	if apex < 49.5 || apex > 50 {
		t.Errorf("apex at %g, want 50", apex)
	}
}

func TestFlattenDeterministic(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 50}).
		CubeTo(vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 54, Y: 54}, vec.Vec2{X: 54, Y: 14}).
		QuadTo(vec.Vec2{X: 30, Y: 0}, vec.Vec2{X: 12, Y: 20}).
		Close()

	a, b := &Polyline{}, &Polyline{}
	f := Flattener{Tolerance: 0.05}
	f.Flatten(p, a)
	f.Flatten(p, b)
	if !slices.Equal(a.Points, b.Points) || !slices.Equal(a.Starts, b.Starts) {
		t.Error("flattening is not deterministic")
	}
}
