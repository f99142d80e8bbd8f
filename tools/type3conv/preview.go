// seehuhn.de/go/type3conv - convert PDF Type 3 fonts to OpenType
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

package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"seehuhn.de/go/type3conv"
	"seehuhn.de/go/type3conv/charproc"
)

// shades is ordered from no coverage to full coverage.
const shades = " .:-=+*#%@"

func runPreview(log *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	size := fs.Int("size", 0, "preview size in characters (default: fit the terminal)")
	fs.Parse(args)
	if fs.NArg() < 1 {
		return errors.New("preview: no font file given")
	}

	f, uid, err := readFontFile(fs.Arg(0))
	if err != nil {
		return err
	}
	req := &type3conv.Request{Font: f, FontID: fontID(fs.Arg(0)), FontUID: uid}
	ext := &charproc.Extractor{Logger: log}
	glyphs, err := ext.ExtractGlyphs(req)
	if err != nil {
		return err
	}

	selected := fs.Args()[1:]
	n := *size
	if n <= 0 {
		n = terminalSize()
	}
	for _, g := range glyphs {
		if len(selected) > 0 && !slices.Contains(selected, g.Name) {
			continue
		}
		fmt.Printf("%s (code %d, width %g)\n", g.Name, g.Code, g.Width)
		if g.HasImage || g.Stroked {
			fmt.Println("  note: only filled paths are shown")
		}
		if g.EvenOdd {
			fmt.Println("  note: even-odd fill is shown using the nonzero rule")
		}
		writeASCII(os.Stdout, charproc.Rasterize(g, n))
		fmt.Println()
	}
	return nil
}

// terminalSize returns a preview size which fits into the terminal.
func terminalSize() int {
	const maxSize = 32
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return maxSize
	}
	// Characters are about twice as high as wide.
	return max(min(w/2, h-2, maxSize), 4)
}

// writeASCII prints img using two characters per pixel.
func writeASCII(w io.Writer, img *image.Alpha) {
	b := img.Bounds()
	line := &strings.Builder{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		line.Reset()
		for x := b.Min.X; x < b.Max.X; x++ {
			a := int(img.AlphaAt(x, y).A)
			c := shades[a*(len(shades)-1)/255]
			line.WriteByte(c)
			line.WriteByte(c)
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}
