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

package gpu

import (
	"context"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"

	"seehuhn.de/go/tiler"
	"seehuhn.de/go/tiler/internal/scenes"
)

func TestAppendInstances(t *testing.T) {
	cmds := []tiler.WideTileCommand{
		{X: 48, Y: 52, Width: 96, AlphaIdx: tiler.OpaqueAlphaIdx, Color: 0xFF0000FF},
		{X: 148, Y: 52, Width: 4, AlphaIdx: 27, Color: 0x01020304},
	}
	buf := AppendInstances([]byte{0xAA}, cmds)

	if len(buf) != 1+2*InstanceSize {
		t.Fatalf("got %d bytes, want %d", len(buf), 1+2*InstanceSize)
	}
	if buf[0] != 0xAA {
		t.Error("existing contents overwritten")
	}
	want := []uint32{48, 52, 96, 0xFFFF, 0xFF0000FF, 148, 52, 4, 27, 0x01020304}
	for i, w := range want {
		if got := binary.LittleEndian.Uint32(buf[1+4*i:]); got != w {
			t.Errorf("word %d: got %#x, want %#x", i, got, w)
		}
	}

	for i, cmd := range cmds {
		if got := DecodeInstance(buf[1:], i); got != cmd {
			t.Errorf("DecodeInstance(%d) = %+v, want %+v", i, got, cmd)
		}
	}
}

func TestQuadIndices(t *testing.T) {
	if VerticesPerInstance != 4 {
		t.Fatalf("got %d vertices per instance, want 4", VerticesPerInstance)
	}
	if IndexFormat.Size() != 2 {
		t.Errorf("index size %d, want 2", IndexFormat.Size())
	}

	// corners in vertex index order, as in vs_main
	corners := [VerticesPerInstance][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	var area float64
	for i := 0; i < IndexCount; i += 3 {
		var tri [3][2]float64
		for j := range 3 {
			idx := QuadIndices[i+j]
			if int(idx) >= VerticesPerInstance {
				t.Fatalf("index %d out of range", idx)
			}
			tri[j] = corners[idx]
		}
		a := ((tri[1][0]-tri[0][0])*(tri[2][1]-tri[0][1]) -
			(tri[2][0]-tri[0][0])*(tri[1][1]-tri[0][1])) / 2
		if a <= 0 {
			t.Errorf("triangle %d has area %g", i/3, a)
		}
		area += a
	}
	if area != 1 {
		t.Errorf("triangles cover area %g, want 1", area)
	}

	buf := AppendIndices(nil)
	if len(buf) != IndexCount*int(IndexFormat.Size()) {
		t.Fatalf("got %d bytes", len(buf))
	}
	for i, idx := range QuadIndices {
		if got := binary.LittleEndian.Uint16(buf[2*i:]); got != idx {
			t.Errorf("index %d: got %d, want %d", i, got, idx)
		}
	}
}

func TestAppendAtlas(t *testing.T) {
	var b tiler.Block
	b[2][1] = 0x77
	var atlas tiler.AlphaAtlas
	atlas.Store(5, &b)

	buf := AppendAtlas(nil, &atlas)
	if len(buf) != AtlasSize {
		t.Fatalf("got %d bytes, want %d", len(buf), AtlasSize)
	}
	// slot 5, column 2, row 1
	off := 5*16 + 2*4 + 1
	for i, v := range buf {
		want := byte(0)
		if i == off {
			want = 0x77
		}
		if v != want {
			t.Fatalf("byte %d: got %#x, want %#x", i, v, want)
		}
	}
}

func TestAppendConfig(t *testing.T) {
	buf := AppendConfig(nil, tiler.Config{Width: 800, Height: 600})
	if len(buf) != ConfigSize {
		t.Fatalf("got %d bytes", len(buf))
	}
	if binary.LittleEndian.Uint32(buf) != 800 || binary.LittleEndian.Uint32(buf[4:]) != 600 {
		t.Errorf("unexpected contents %v", buf)
	}
}

func TestEncodeFrame(t *testing.T) {
	tc, ok := scenes.Find("scene", "atlas_overflow")
	if !ok {
		t.Fatal("test case not found")
	}
	scene, cfg := scenes.Convert(tc)
	frame, err := tiler.NewEncoder(nil).Encode(context.Background(), scene, cfg)
	if err != nil {
		t.Fatal(err)
	}

	config, batches := EncodeFrame(frame)
	if len(config) != ConfigSize {
		t.Errorf("config has %d bytes", len(config))
	}
	if len(batches) != len(frame.Batches) {
		t.Fatalf("got %d batches, want %d", len(batches), len(frame.Batches))
	}
	for i, b := range batches {
		n := len(frame.Batches[i].Commands)
		if int(b.InstanceCount) != n || len(b.Instances) != n*InstanceSize {
			t.Errorf("batch %d: %d instances in %d bytes, want %d",
				i, b.InstanceCount, len(b.Instances), n)
		}
		if len(b.Atlas) != AtlasSize {
			t.Errorf("batch %d: atlas has %d bytes", i, len(b.Atlas))
		}
	}
}

func TestInstanceLayout(t *testing.T) {
	l := InstanceLayout()
	if l.ArrayStride != InstanceSize {
		t.Errorf("stride %d, want %d", l.ArrayStride, InstanceSize)
	}
	if l.StepMode != gputypes.VertexStepModeInstance {
		t.Error("instance buffer does not advance per instance")
	}
	if len(l.Attributes) != 5 {
		t.Fatalf("got %d attributes, want 5", len(l.Attributes))
	}
	for i, a := range l.Attributes {
		if int(a.Offset) != 4*i || int(a.ShaderLocation) != i {
			t.Errorf("attribute %d: offset %d, location %d", i, a.Offset, a.ShaderLocation)
		}
		if a.Format != gputypes.VertexFormatUint32 {
			t.Errorf("attribute %d: format %v", i, a.Format)
		}
	}
}

func TestBindGroupLayout(t *testing.T) {
	entries := BindGroupLayoutEntries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	for _, e := range entries {
		if e.Buffer == nil || e.Buffer.Type != gputypes.BufferBindingTypeUniform {
			t.Errorf("binding %d is not a uniform buffer", e.Binding)
		}
	}
	if entries[1].Buffer.MinBindingSize != AtlasSize {
		t.Errorf("atlas binding size %d", entries[1].Buffer.MinBindingSize)
	}
}

func TestShaderSource(t *testing.T) {
	if ShaderSource == "" {
		t.Fatal("shader source is empty")
	}
	for _, s := range []string{
		"fn " + VertexEntryPoint + "(",
		"fn " + FragmentEntryPoint + "(",
		"array<vec4<u32>, 1024>",
		"array<vec2<f32>, 4>",
		"0xFFFFu",
	} {
		if !strings.Contains(ShaderSource, s) {
			t.Errorf("shader source lacks %q", s)
		}
	}
}

// TestShaderCompilation tests that the WGSL shader compiles to SPIR-V.
func TestShaderCompilation(t *testing.T) {
	if _, err := naga.Compile(ShaderSource); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "not yet implemented") || strings.Contains(errStr, "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
	}

	spirv, err := CompileShader()
	if err != nil {
		t.Fatalf("failed to compile compositing shader: %v", err)
	}
	if len(spirv) == 0 {
		t.Fatal("SPIR-V output is empty")
	}
	if spirv[0] != 0x07230203 {
		t.Errorf("invalid SPIR-V magic number: %#08x", spirv[0])
	}
}
