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

// Command tilerdemo renders one of the test scenes through the tiler and
// the CPU compositor, and saves the result as a PNG image.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"maps"
	"os"
	"runtime"
	"slices"
	"strings"

	"seehuhn.de/go/tiler"
	"seehuhn.de/go/tiler/cpu"
	"seehuhn.de/go/tiler/internal/scenes"
	"seehuhn.de/go/tiler/testcases"
)

func main() {
	var (
		name    = flag.String("case", "scene/draw_order", "test case, as category/name")
		output  = flag.String("output", "tilerdemo.png", "output file")
		workers = flag.Int("workers", runtime.GOMAXPROCS(0), "number of coverage workers")
		verbose = flag.Bool("v", false, "log debug messages")
		list    = flag.Bool("list", false, "list the available test cases and exit")
	)
	flag.Parse()

	if *list {
		for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
			for _, tc := range testcases.All[category] {
				fmt.Printf("%s/%s\n", category, tc.Name)
			}
		}
		return
	}

	if *verbose {
		tiler.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	category, caseName, ok := strings.Cut(*name, "/")
	if !ok {
		log.Fatalf("invalid test case %q, expected category/name", *name)
	}
	tc, ok := scenes.Find(category, caseName)
	if !ok {
		log.Fatalf("unknown test case %q", *name)
	}
	scene, cfg := scenes.Convert(tc)

	opt := tiler.DefaultOptions()
	opt.Workers = *workers
	frame, err := tiler.NewEncoder(opt).Encode(context.Background(), scene, cfg)
	if err != nil {
		log.Fatalf("encode %s: %v", *name, err)
	}
	img := cpu.Render(frame, color.White)

	if err := writePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	st := frame.Stats()
	log.Printf("%s saved to %s (%dx%d, %d instances in %d batches)\n",
		*name, *output, cfg.Width, cfg.Height, st.Instances, st.Batches)
}

func writePNG(fname string, img *image.RGBA) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
