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
	"fmt"
	"image"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"seehuhn.de/go/geom/matrix"
)

// Options configure an [Encoder].
type Options struct {
	// Tolerance is the curve flattening tolerance in pixels.
	// Values <= 0 select DefaultTolerance.
	Tolerance float64

	// Workers is the number of goroutines computing path coverage.
	// Values <= 1 compute everything on the calling goroutine.
	Workers int

	// MaxInstances is the capacity of the consumer's instance buffer.
	// Zero means unlimited.
	MaxInstances int

	// Allocator hands out atlas slots. If nil, a BumpAllocator is used.
	Allocator Allocator

	// Logger receives debug output. If nil, the package logger is used.
	Logger *slog.Logger
}

// DefaultOptions returns the options used by NewEncoder(nil).
func DefaultOptions() *Options {
	return &Options{
		Tolerance: DefaultTolerance,
		Workers:   1,
	}
}

// Batch is a list of commands together with the atlas they refer to.
// Batches are drawn in order; every batch is drawn with its own atlas.
type Batch struct {
	Commands []WideTileCommand
	Atlas    *AlphaAtlas
	Used     int // number of atlas slots in use
}

// Frame is the output of one [Encoder.Encode] call.
type Frame struct {
	Config  Config
	Batches []Batch

	paths   int
	dropped int
}

// Stats summarizes a frame.
type Stats struct {
	Paths           int // paths in the scene
	Batches         int
	Instances       int // commands, over all batches
	OpaqueInstances int
	PartialTiles    int // atlas slots, over all batches
	Dropped         int // degenerate segments removed by the flattener
}

// Stats returns summary statistics for f.
func (f *Frame) Stats() Stats {
	s := Stats{
		Paths:   f.paths,
		Batches: len(f.Batches),
		Dropped: f.dropped,
	}
	for _, b := range f.Batches {
		s.Instances += len(b.Commands)
		s.PartialTiles += b.Used
		for _, cmd := range b.Commands {
			if cmd.IsOpaque() {
				s.OpaqueInstances++
			}
		}
	}
	return s
}

// Encoder converts scenes into frames.
// An Encoder can be reused for many frames, but it is not safe for
// concurrent use.
type Encoder struct {
	tolerance    float64
	workers      int
	maxInstances int
	alloc        Allocator
	log          *slog.Logger

	scratch []*workerScratch
	cov     []Coverage
	dropped []int
}

// workerScratch holds the buffers of one coverage worker.
type workerScratch struct {
	acc  *Accumulator
	poly Polyline
}

// NewEncoder returns a new Encoder. If opt is nil, DefaultOptions are
// used.
func NewEncoder(opt *Options) *Encoder {
	if opt == nil {
		opt = DefaultOptions()
	}
	e := &Encoder{
		tolerance:    opt.Tolerance,
		workers:      max(opt.Workers, 1),
		maxInstances: max(opt.MaxInstances, 0),
		alloc:        opt.Allocator,
		log:          opt.Logger,
	}
	if !(e.tolerance > 0) {
		e.tolerance = DefaultTolerance
	}
	if e.alloc == nil {
		e.alloc = NewBumpAllocator()
	}

	window := e.workers
	if e.workers > 1 {
		window *= 2
	}
	e.scratch = make([]*workerScratch, e.workers)
	for i := range e.scratch {
		e.scratch[i] = &workerScratch{acc: NewAccumulator()}
	}
	e.cov = make([]Coverage, window)
	e.dropped = make([]int, window)
	return e
}

func (e *Encoder) logger() *slog.Logger {
	if e.log != nil {
		return e.log
	}
	return Logger()
}

// Encode tiles all paths of the scene, in order, and returns the
// resulting frame.
//
// If the atlas fills up, the commands emitted so far are closed off into a
// batch and tiling continues with an empty atlas. If a batch needs more
// instances than Options.MaxInstances, a *FrameBuildError is returned.
// If ctx is cancelled, the partial frame is discarded and ctx.Err() is
// returned.
func (e *Encoder) Encode(ctx context.Context, scene Scene, cfg Config) (*Frame, error) {
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	for i := range scene {
		switch scene[i].Rule {
		case NonZero, EvenOdd:
		default:
			panic(fmt.Sprintf("tiler: path %d: invalid fill rule %s", i, scene[i].Rule))
		}
	}

	clip := image.Rect(0, 0, cfg.TileColumns()*TileWidth, cfg.TileRows()*TileHeight)

	fb := &frameBuilder{
		frame: &Frame{Config: cfg, paths: len(scene)},
		alloc: e.alloc,
		log:   e.logger(),
	}
	fb.startBatch()
	m := &Merger{Sink: fb}

	window := len(e.cov)
	for start := 0; start < len(scene); start += window {
		end := min(start+window, len(scene))
		if err := e.computeCoverage(ctx, scene, start, end, clip); err != nil {
			return nil, err
		}

		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			cov := &e.cov[i-start]
			fb.frame.dropped += e.dropped[i-start]
			if cov.Empty() {
				continue
			}
			for y := cov.Rect.Min.Y; y < cov.Rect.Max.Y; y += TileHeight {
				if err := m.MergeRow(cov, y, scene[i].Color); err != nil {
					return nil, fmt.Errorf("path %d: %w", i, err)
				}
			}
		}
	}
	fb.endBatch()

	frame := fb.frame
	if e.maxInstances > 0 {
		for i, b := range frame.Batches {
			if len(b.Commands) > e.maxInstances {
				err := &FrameBuildError{
					Batch:     i,
					Instances: len(b.Commands),
					Capacity:  e.maxInstances,
					Err:       ErrInstanceBufferOverflow,
				}
				fb.log.Warn("instance buffer too small",
					"batch", i,
					"instances", len(b.Commands),
					"capacity", e.maxInstances)
				return nil, err
			}
		}
	}

	if fb.log.Enabled(ctx, slog.LevelDebug) {
		s := frame.Stats()
		fb.log.Debug("frame encoded",
			"width", cfg.Width,
			"height", cfg.Height,
			"paths", s.Paths,
			"batches", s.Batches,
			"instances", s.Instances,
			"partial_tiles", s.PartialTiles)
	}
	return frame, nil
}

// computeCoverage flattens and rasterises scene[start:end] into e.cov.
func (e *Encoder) computeCoverage(ctx context.Context, scene Scene, start, end int, clip image.Rectangle) error {
	if e.workers == 1 {
		ws := e.scratch[0]
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.coverPath(ws, &scene[i], i-start, clip)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for k := range e.workers {
		ws := e.scratch[k]
		g.Go(func() error {
			for i := start + k; i < end; i += e.workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				e.coverPath(ws, &scene[i], i-start, clip)
			}
			return nil
		})
	}
	return g.Wait()
}

// coverPath computes the coverage of one path into slot j of e.cov.
func (e *Encoder) coverPath(ws *workerScratch, p *Path, j int, clip image.Rectangle) {
	f := Flattener{Tolerance: e.tolerance, CTM: p.CTM}
	if f.CTM == (matrix.Matrix{}) {
		f.CTM = matrix.Identity
	}
	f.Flatten(p.Data, &ws.poly)
	e.dropped[j] = ws.poly.Dropped
	ws.acc.Accumulate(&ws.poly, p.Rule, clip, &e.cov[j])
}

// frameBuilder collects the batches of a frame. It implements Sink.
type frameBuilder struct {
	frame *Frame
	cur   Batch
	alloc Allocator
	log   *slog.Logger
}

func (fb *frameBuilder) startBatch() {
	fb.cur = Batch{Atlas: new(AlphaAtlas)}
	fb.alloc.Reset()
}

func (fb *frameBuilder) endBatch() {
	fb.cur.Used = fb.alloc.Used()
	fb.frame.Batches = append(fb.frame.Batches, fb.cur)
}

func (fb *frameBuilder) Allocate() (uint32, error) {
	return fb.alloc.Allocate(1)
}

func (fb *frameBuilder) Store(slot uint32, b *Block) {
	fb.cur.Atlas.Store(slot, b)
}

func (fb *frameBuilder) Emit(cmd WideTileCommand) {
	fb.cur.Commands = append(fb.cur.Commands, cmd)
}

func (fb *frameBuilder) Flush() error {
	if fb.alloc.Used() == 0 {
		// flushing an empty atlas frees nothing
		return ErrAtlasExhausted
	}
	fb.log.Debug("alpha atlas full, flushing batch",
		"batch", len(fb.frame.Batches),
		"instances", len(fb.cur.Commands))
	fb.endBatch()
	fb.startBatch()
	return nil
}
