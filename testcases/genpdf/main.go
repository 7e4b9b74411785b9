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

// Command genpdf generates reference images for the tiler tests.
// It writes every test scene to a PDF file and renders it to a grayscale
// PNG using Ghostscript. Every layer is painted in the luminance of its
// color on a black background, so that single-layer white scenes give the
// plain coverage of the path.
package main

import (
	"bytes"
	"fmt"
	"image/color"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/tiler/testcases"
)

const refDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(refDir, name+".pdf")
			pngPath := filepath.Join(refDir, name+".png")

			if err := generatePDF(tc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := renderPNG(pdfPath, pngPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generatePDF(tc testcases.TestCase, pdfPath string) error {
	w, err := pdf.Create(pdfPath, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	content := &bytes.Buffer{}
	setGray(content, 0)
	// 1 point = 1 pixel at 72 DPI
	fmt.Fprintf(content, "0 0 %d %d re f\n", tc.Width, tc.Height)

	// PDF origin is bottom-left; test cases assume top-left.
	flip := matrix.Matrix{1, 0, 0, -1, 0, float64(tc.Height)}

	for _, l := range tc.Layers {
		ctm := l.CTM
		if ctm == (matrix.Matrix{}) {
			ctm = matrix.Identity
		}
		ctm = ctm.Mul(flip)
		setGray(content, luminance(l.Color))

		// PDF has no quadratic segments
		for cmd, pts := range l.Path.Iter().ToCubic() {
			switch cmd {
			case path.CmdMoveTo:
				writePoints(content, ctm, pts, "m")
			case path.CmdLineTo:
				writePoints(content, ctm, pts, "l")
			case path.CmdCubeTo:
				writePoints(content, ctm, pts, "c")
			case path.CmdClose:
				content.WriteString("h\n")
			}
		}

		if l.Rule == testcases.EvenOdd {
			content.WriteString("f*\n")
		} else {
			content.WriteString("f\n")
		}
	}

	pagesRef := w.Alloc()
	pageRef := w.Alloc()
	contentRef := w.Alloc()

	stm, err := w.OpenStream(contentRef, nil)
	if err != nil {
		return err
	}
	if _, err := stm.Write(content.Bytes()); err != nil {
		return err
	}
	if err := stm.Close(); err != nil {
		return err
	}

	err = w.Put(pageRef, pdf.Dict{
		"Type":   pdf.Name("Page"),
		"Parent": pagesRef,
		"MediaBox": pdf.Array{
			pdf.Integer(0), pdf.Integer(0),
			pdf.Integer(tc.Width), pdf.Integer(tc.Height),
		},
		"Resources": pdf.Dict{},
		"Contents":  contentRef,
	})
	if err != nil {
		return err
	}
	err = w.Put(pagesRef, pdf.Dict{
		"Type":  pdf.Name("Pages"),
		"Kids":  pdf.Array{pageRef},
		"Count": pdf.Integer(1),
	})
	if err != nil {
		return err
	}
	w.GetMeta().Catalog.Pages = pagesRef

	return w.Close()
}

// setGray writes the operator which sets the fill color to the given
// gray level.
func setGray(buf *bytes.Buffer, gray float64) {
	values, _, op := pdfcolor.Operator(pdfcolor.DeviceGray(gray))
	for _, v := range values {
		fmt.Fprintf(buf, "%.4g ", v)
	}
	buf.WriteString(strings.ToLower(op))
	buf.WriteByte('\n')
}

// writePoints writes the points of one path segment, mapped to page space,
// followed by the operator.
func writePoints(buf *bytes.Buffer, m matrix.Matrix, pts []vec.Vec2, op string) {
	for _, p := range pts {
		q := m.Apply(p)
		fmt.Fprintf(buf, "%.6f %.6f ", q.X, q.Y)
	}
	buf.WriteString(op)
	buf.WriteByte('\n')
}

// luminance returns the gray value of c, ignoring its alpha.
func luminance(c color.NRGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

func renderPNG(pdfPath, pngPath string) error {
	// -sDEVICE=pnggray: 8-bit grayscale
	// -r72: 72 DPI (1 point = 1 pixel)
	// -dGraphicsAlphaBits=4: 4x supersampling for anti-aliasing
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
