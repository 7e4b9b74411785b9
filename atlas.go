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
	"sync/atomic"
)

// AtlasCapacity is the number of coverage blocks in an [AlphaAtlas].
const AtlasCapacity = 1024

// AlphaAtlas stores the coverage of partially covered tiles.
//
// Entry i holds atlas slot i. Word c of an entry holds column c of the
// tile, with the coverage of row r in byte r (least significant byte
// first). This is the layout of the alpha_masks uniform read by the
// compositing shader.
type AlphaAtlas [AtlasCapacity][TileWidth]uint32

// Store packs b into the given slot.
func (a *AlphaAtlas) Store(slot uint32, b *Block) {
	for col := range TileWidth {
		a[slot][col] = uint32(b[col][0]) |
			uint32(b[col][1])<<8 |
			uint32(b[col][2])<<16 |
			uint32(b[col][3])<<24
	}
}

// Load unpacks the block stored in the given slot.
func (a *AlphaAtlas) Load(slot uint32) Block {
	var b Block
	for col := range TileWidth {
		w := a[slot][col]
		for row := range TileHeight {
			b[col][row] = uint8(w >> (8 * row))
		}
	}
	return b
}

// At returns the coverage stored for pixel (col, row) of the given slot.
func (a *AlphaAtlas) At(slot uint32, col, row int) uint8 {
	return uint8(a[slot][col] >> (8 * row))
}

// Reset clears all slots.
func (a *AlphaAtlas) Reset() {
	clear(a[:])
}

// Allocator hands out atlas slots.
//
// Allocate reserves n consecutive slots and returns the first one. If
// fewer than n slots are left, it returns ErrAtlasExhausted and reserves
// nothing. Reset makes all slots available again; it must only be called
// once the previous contents of the atlas have been handed to the
// consumer.
type Allocator interface {
	Allocate(n int) (uint32, error)
	Reset()
	Used() int
}

// BumpAllocator is a deterministic Allocator for use by a single
// goroutine.
type BumpAllocator struct {
	next int
}

// NewBumpAllocator returns an empty BumpAllocator.
func NewBumpAllocator() *BumpAllocator {
	return &BumpAllocator{}
}

func (b *BumpAllocator) Allocate(n int) (uint32, error) {
	if n <= 0 || b.next+n > AtlasCapacity {
		return 0, ErrAtlasExhausted
	}
	slot := b.next
	b.next += n
	return uint32(slot), nil
}

func (b *BumpAllocator) Reset() {
	b.next = 0
}

func (b *BumpAllocator) Used() int {
	return b.next
}

// AtomicAllocator is an Allocator which is safe for concurrent use.
// Slots are taken from a single atomic cursor, so no slot is ever handed
// out twice between resets.
type AtomicAllocator struct {
	next atomic.Int64
}

// NewAtomicAllocator returns an empty AtomicAllocator.
func NewAtomicAllocator() *AtomicAllocator {
	return &AtomicAllocator{}
}

func (a *AtomicAllocator) Allocate(n int) (uint32, error) {
	if n <= 0 {
		return 0, ErrAtlasExhausted
	}
	for {
		cur := a.next.Load()
		if cur+int64(n) > AtlasCapacity {
			return 0, ErrAtlasExhausted
		}
		if a.next.CompareAndSwap(cur, cur+int64(n)) {
			return uint32(cur), nil
		}
	}
}

func (a *AtomicAllocator) Reset() {
	a.next.Store(0)
}

func (a *AtomicAllocator) Used() int {
	return int(a.next.Load())
}
