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
	"slices"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestAtlasLayout(t *testing.T) {
	var b Block
	for col := range TileWidth {
		for row := range TileHeight {
			b[col][row] = uint8(16*col + row + 1)
		}
	}

	var atlas AlphaAtlas
	atlas.Store(7, &b)

	// word = column, byte = row, least significant byte first
	if got, want := atlas[7][2], uint32(0x24232221); got != want {
		t.Errorf("word 2: got %08x, want %08x", got, want)
	}
	if got := atlas.At(7, 3, 1); got != 0x32 {
		t.Errorf("At(7, 3, 1) = %02x, want 32", got)
	}
	if atlas.Load(7) != b {
		t.Error("Load does not return the stored block")
	}
	if atlas[6] != [TileWidth]uint32{} || atlas[8] != [TileWidth]uint32{} {
		t.Error("neighbouring slots modified")
	}

	atlas.Reset()
	if atlas.Load(7) != (Block{}) {
		t.Error("Reset did not clear the atlas")
	}
}

func TestBumpAllocator(t *testing.T) {
	a := NewBumpAllocator()
	for i := range AtlasCapacity {
		slot, err := a.Allocate(1)
		if err != nil {
			t.Fatalf("allocation %d: %v", i, err)
		}
		if slot != uint32(i) {
			t.Fatalf("allocation %d: got slot %d", i, slot)
		}
	}
	if _, err := a.Allocate(1); !errors.Is(err, ErrAtlasExhausted) {
		t.Errorf("got %v, want ErrAtlasExhausted", err)
	}
	if a.Used() != AtlasCapacity {
		t.Errorf("Used() = %d", a.Used())
	}

	a.Reset()
	if a.Used() != 0 {
		t.Errorf("Used() = %d after Reset", a.Used())
	}
	if slot, err := a.Allocate(10); err != nil || slot != 0 {
		t.Errorf("Allocate(10) = %d, %v", slot, err)
	}
	if _, err := a.Allocate(AtlasCapacity - 9); !errors.Is(err, ErrAtlasExhausted) {
		t.Errorf("oversized request: got %v, want ErrAtlasExhausted", err)
	}
	if a.Used() != 10 {
		t.Errorf("failed request changed Used() to %d", a.Used())
	}
	if _, err := a.Allocate(0); err == nil {
		t.Error("Allocate(0) succeeded")
	}
}

func TestAtomicAllocatorConcurrent(t *testing.T) {
	a := NewAtomicAllocator()

	var mu sync.Mutex
	var slots []uint32
	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			var mine []uint32
			for {
				slot, err := a.Allocate(3)
				if errors.Is(err, ErrAtlasExhausted) {
					break
				} else if err != nil {
					return err
				}
				mine = append(mine, slot, slot+1, slot+2)
			}
			mu.Lock()
			slots = append(slots, mine...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	slices.Sort(slots)
	if len(slots) != AtlasCapacity/3*3 {
		t.Fatalf("got %d slots, want %d", len(slots), AtlasCapacity/3*3)
	}
	for i, s := range slots {
		if s != uint32(i) {
			t.Fatalf("slot %d handed out as %d", i, s)
		}
	}
	if a.Used() != len(slots) {
		t.Errorf("Used() = %d, want %d", a.Used(), len(slots))
	}
}
