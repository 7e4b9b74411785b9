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
	"errors"
)

// TileClass classifies the coverage of a single tile.
type TileClass uint8

const (
	// ClassEmpty tiles are not drawn.
	ClassEmpty TileClass = iota

	// ClassFull tiles are drawn without a coverage mask.
	ClassFull

	// ClassPartial tiles need an atlas slot.
	ClassPartial
)

func (c TileClass) String() string {
	switch c {
	case ClassEmpty:
		return "empty"
	case ClassFull:
		return "full"
	case ClassPartial:
		return "partial"
	default:
		return "invalid"
	}
}

// Classify returns the class of a quantized coverage block.
func Classify(b *Block) TileClass {
	var all, any uint8 = 255, 0
	for col := range b {
		for _, v := range b[col] {
			all &= v
			any |= v
		}
	}
	switch {
	case any == 0:
		return ClassEmpty
	case all == 255:
		return ClassFull
	default:
		return ClassPartial
	}
}

// Sink receives the output of a [Merger].
type Sink interface {
	// Allocate reserves one atlas slot. It returns ErrAtlasExhausted if
	// the current atlas is full.
	Allocate() (uint32, error)

	// Store writes the coverage of a partial tile to an allocated slot.
	Store(slot uint32, b *Block)

	// Emit appends a command to the current batch.
	Emit(cmd WideTileCommand)

	// Flush ends the current batch and starts a new one with an empty
	// atlas.
	Flush() error
}

// run is a wide tile command under construction.
type run struct {
	class TileClass
	x     int // pixel x of the first tile
	tiles int
	slot  uint32 // first atlas slot, partial runs only
}

// Merger merges horizontally adjacent tiles of the same class into wide
// tile commands.
//
// When the sink runs out of atlas slots, the open run is emitted into the
// current batch, the batch is flushed, and the allocation is retried on
// the fresh atlas.
type Merger struct {
	Sink Sink

	open run
}

// MergeRow emits the commands for the tile row starting at pixel row y of
// cov. Commands are emitted from left to right.
func (m *Merger) MergeRow(cov *Coverage, y int, color Color) error {
	m.open = run{}
	for x := cov.Rect.Min.X; x < cov.Rect.Max.X; x += TileWidth {
		b := cov.Block(x, y)
		class := Classify(&b)

		switch class {
		case ClassEmpty:
			m.closeRun(y, color)

		case ClassFull:
			if m.open.class == ClassFull && m.open.x+m.open.tiles*TileWidth == x {
				m.open.tiles++
				continue
			}
			m.closeRun(y, color)
			m.open = run{class: ClassFull, x: x, tiles: 1}

		case ClassPartial:
			slot, err := m.Sink.Allocate()
			if errors.Is(err, ErrAtlasExhausted) {
				m.closeRun(y, color)
				if err := m.Sink.Flush(); err != nil {
					return err
				}
				slot, err = m.Sink.Allocate()
			}
			if err != nil {
				return err
			}
			m.Sink.Store(slot, &b)

			if m.open.class == ClassPartial &&
				m.open.x+m.open.tiles*TileWidth == x &&
				m.open.slot+uint32(m.open.tiles) == slot {
				m.open.tiles++
				continue
			}
			m.closeRun(y, color)
			m.open = run{class: ClassPartial, x: x, tiles: 1, slot: slot}
		}
	}
	m.closeRun(y, color)
	return nil
}

// closeRun emits the open run, if any.
func (m *Merger) closeRun(y int, color Color) {
	if m.open.tiles == 0 {
		m.open = run{}
		return
	}
	alphaIdx := uint32(OpaqueAlphaIdx)
	if m.open.class == ClassPartial {
		alphaIdx = m.open.slot
	}
	m.Sink.Emit(WideTileCommand{
		X:        uint32(m.open.x),
		Y:        uint32(y),
		Width:    uint32(m.open.tiles * TileWidth),
		AlphaIdx: alphaIdx,
		Color:    color,
	})
	m.open = run{}
}
