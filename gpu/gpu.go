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

// Package gpu describes how the output of the tiler is handed to a GPU.
//
// The package does not own a device. It provides the byte layout of the
// instance, index and uniform buffers, the matching vertex and bind group
// layouts, and the WGSL source of the compositing shader. A frame is drawn
// by uploading the buffers of each batch in turn and issuing one indexed,
// instanced draw of IndexCount indices per batch.
package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"

	"seehuhn.de/go/tiler"
)

//go:embed shader.wgsl
var ShaderSource string

// Shader entry points.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Buffer sizes in bytes.
const (
	InstanceSize = 5 * 4
	AtlasSize    = tiler.AtlasCapacity * tiler.TileWidth * 4
	ConfigSize   = 2 * 4
)

// Every instance is drawn as a quad of VerticesPerInstance corners,
// indexed by QuadIndices: top-left, top-right, bottom-left, bottom-right.
const VerticesPerInstance = 4

// QuadIndices splits the quad into two triangles.
var QuadIndices = [6]uint16{0, 1, 2, 2, 1, 3}

// IndexFormat is the format of the QuadIndices index buffer.
const IndexFormat = gputypes.IndexFormatUint16

// IndexCount is the number of indices drawn per instance.
const IndexCount = len(QuadIndices)

// Topology is the primitive topology of the draw.
const Topology = gputypes.PrimitiveTopologyTriangleList

// Buffer usages required by the compositing pass.
const (
	InstanceBufferUsage = gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
	IndexBufferUsage    = gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst
	UniformBufferUsage  = gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst
)

// Bind group entries of the compositing shader.
const (
	ConfigBinding = 0
	AtlasBinding  = 1
)

// AppendInstances appends the instance buffer contents for cmds to dst.
// Every command becomes five little-endian u32 values.
func AppendInstances(dst []byte, cmds []tiler.WideTileCommand) []byte {
	dst = growBytes(dst, len(cmds)*InstanceSize)
	for _, c := range cmds {
		dst = binary.LittleEndian.AppendUint32(dst, c.X)
		dst = binary.LittleEndian.AppendUint32(dst, c.Y)
		dst = binary.LittleEndian.AppendUint32(dst, c.Width)
		dst = binary.LittleEndian.AppendUint32(dst, c.AlphaIdx)
		dst = binary.LittleEndian.AppendUint32(dst, uint32(c.Color))
	}
	return dst
}

// AppendIndices appends the index buffer contents of QuadIndices to dst.
func AppendIndices(dst []byte) []byte {
	dst = growBytes(dst, IndexCount*2)
	for _, i := range QuadIndices {
		dst = binary.LittleEndian.AppendUint16(dst, i)
	}
	return dst
}

// AppendAtlas appends the alpha_masks uniform contents to dst.
func AppendAtlas(dst []byte, a *tiler.AlphaAtlas) []byte {
	dst = growBytes(dst, AtlasSize)
	for slot := range a {
		for _, w := range a[slot] {
			dst = binary.LittleEndian.AppendUint32(dst, w)
		}
	}
	return dst
}

// AppendConfig appends the config uniform contents to dst.
func AppendConfig(dst []byte, cfg tiler.Config) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, cfg.Width)
	return binary.LittleEndian.AppendUint32(dst, cfg.Height)
}

func growBytes(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}
	res := make([]byte, len(b), len(b)+n)
	copy(res, b)
	return res
}

// BatchData holds the buffer contents for one draw call.
type BatchData struct {
	Instances     []byte
	Atlas         []byte
	InstanceCount uint32
}

// EncodeFrame returns the config uniform and the per-batch buffer
// contents of f.
func EncodeFrame(f *tiler.Frame) (config []byte, batches []BatchData) {
	config = AppendConfig(nil, f.Config)
	batches = make([]BatchData, len(f.Batches))
	for i, b := range f.Batches {
		batches[i] = BatchData{
			Instances:     AppendInstances(nil, b.Commands),
			Atlas:         AppendAtlas(nil, b.Atlas),
			InstanceCount: uint32(len(b.Commands)),
		}
	}
	return config, batches
}

// DecodeInstance reads the command at index i of an instance buffer.
func DecodeInstance(buf []byte, i int) tiler.WideTileCommand {
	b := buf[i*InstanceSize : (i+1)*InstanceSize]
	return tiler.WideTileCommand{
		X:        binary.LittleEndian.Uint32(b[0:]),
		Y:        binary.LittleEndian.Uint32(b[4:]),
		Width:    binary.LittleEndian.Uint32(b[8:]),
		AlphaIdx: binary.LittleEndian.Uint32(b[12:]),
		Color:    tiler.Color(binary.LittleEndian.Uint32(b[16:])),
	}
}

// InstanceLayout returns the vertex buffer layout of the instance buffer.
func InstanceLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: InstanceSize,
		StepMode:    gputypes.VertexStepModeInstance,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatUint32, Offset: 0, ShaderLocation: 0},  // x
			{Format: gputypes.VertexFormatUint32, Offset: 4, ShaderLocation: 1},  // y
			{Format: gputypes.VertexFormatUint32, Offset: 8, ShaderLocation: 2},  // width
			{Format: gputypes.VertexFormatUint32, Offset: 12, ShaderLocation: 3}, // alpha_idx
			{Format: gputypes.VertexFormatUint32, Offset: 16, ShaderLocation: 4}, // color
		},
	}
}

// BindGroupLayoutEntries returns the layout of the uniform bind group.
func BindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    ConfigBinding,
			Visibility: gputypes.ShaderStageVertex,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           gputypes.BufferBindingTypeUniform,
				MinBindingSize: ConfigSize,
			},
		},
		{
			Binding:    AtlasBinding,
			Visibility: gputypes.ShaderStageFragment,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           gputypes.BufferBindingTypeUniform,
				MinBindingSize: AtlasSize,
			},
		},
	}
}

// CompileShader translates ShaderSource to SPIR-V.
func CompileShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(ShaderSource)
	if err != nil {
		return nil, fmt.Errorf("compile compositing shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile compositing shader: SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}

	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = binary.LittleEndian.Uint32(spirvBytes[4*i:])
	}
	return spirvCode, nil
}
