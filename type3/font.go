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

// Package type3 provides an in-memory representation of Type 3 font data.
//
// The [Font] type implements [type3conv.Font] and can be used where the data
// of a Type 3 font dictionary has already been read from a PDF file, or for
// constructing fonts in tests.
package type3

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/type3conv"
)

// Font holds the information from a Type 3 font dictionary.
type Font struct {
	// Matrix maps glyph space to text space.
	Matrix matrix.Matrix

	// BBox (optional) is the font bounding box in glyph space units.
	BBox *rect.Rect

	// Encoding maps character codes to glyph names.
	// Unused codes are represented by the empty string.
	Encoding [256]string

	// Widths contains the glyph widths for all character codes,
	// in glyph space units.
	Widths [256]float64

	// CharProcs maps glyph names to the content streams which paint the
	// glyphs.
	CharProcs map[string]*CharProc
}

// CharProc is the content stream of one glyph.
type CharProc struct {
	Data []byte

	// BBox (optional) is the glyph bounding box in glyph space units.
	BBox *rect.Rect
}

var _ type3conv.Font = (*Font)(nil)

// ErrNoCode is returned by [Font.GlyphWidth] for glyphs which are not
// reachable through the encoding.
var ErrNoCode = errors.New("glyph not in encoding")

// FontMatrix implements the [type3conv.Font] interface.
func (f *Font) FontMatrix() matrix.Matrix {
	return f.Matrix
}

// FontBBox implements the [type3conv.Font] interface.
func (f *Font) FontBBox() *rect.Rect {
	return f.BBox
}

// GlyphName implements the [type3conv.Font] interface.
func (f *Font) GlyphName(code byte) string {
	return f.Encoding[code]
}

// CharProcNames implements the [type3conv.Font] interface.
// The names are returned in sorted order.
func (f *Font) CharProcNames() []string {
	names := maps.Keys(f.CharProcs)
	slices.Sort(names)
	return names
}

// CharProc implements the [type3conv.Font] interface.
func (f *Font) CharProc(name string) []byte {
	cp := f.CharProcs[name]
	if cp == nil {
		return nil
	}
	return cp.Data
}

// CharCode implements the [type3conv.Font] interface.
// If several codes map to the same glyph, the smallest code is returned.
func (f *Font) CharCode(name string) (byte, bool) {
	if name == "" {
		return 0, false
	}
	for code, glyphName := range f.Encoding {
		if glyphName == name {
			return byte(code), true
		}
	}
	return 0, false
}

// GlyphWidth implements the [type3conv.Font] interface.
func (f *Font) GlyphWidth(name string) (float64, error) {
	code, ok := f.CharCode(name)
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrNoCode)
	}
	return f.Widths[code], nil
}

// GlyphBBox implements the [type3conv.Font] interface.
func (f *Font) GlyphBBox(name string) *rect.Rect {
	cp := f.CharProcs[name]
	if cp == nil {
		return nil
	}
	return cp.BBox
}

// Repair fixes invalid data in the font, in place.
func (f *Font) Repair() {
	if f.Matrix == (matrix.Matrix{}) || !isFinite(f.Matrix[:]...) {
		f.Matrix = matrix.Matrix{0.001, 0, 0, 0.001, 0, 0}
	}
	if f.BBox != nil && (*f.BBox == (rect.Rect{}) || !isFinite(f.BBox.LLx, f.BBox.LLy, f.BBox.URx, f.BBox.URy)) {
		f.BBox = nil
	}
	for code, w := range f.Widths {
		if !isFinite(w) {
			f.Widths[code] = 0
		}
	}
}

// Validate checks that every glyph name used in the encoding has a char proc.
func (f *Font) Validate() error {
	var missing []string
	for _, name := range f.Encoding {
		if name == "" || name == ".notdef" {
			continue
		}
		if _, ok := f.CharProcs[name]; !ok && !slices.Contains(missing, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing char procs for %q", missing)
	}
	return nil
}

func isFinite(xx ...float64) bool {
	for _, x := range xx {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
