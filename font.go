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

package type3conv

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Font gives read-only access to the data of a Type 3 font.
//
// Implementations are provided by the host's PDF object model.
// The package [seehuhn.de/go/type3conv/type3] contains an in-memory
// implementation.
type Font interface {
	// FontMatrix returns the matrix which maps glyph space to text space.
	FontMatrix() matrix.Matrix

	// FontBBox returns the font bounding box in glyph space units,
	// or nil if the font does not specify one.
	FontBBox() *rect.Rect

	// GlyphName returns the glyph name the encoding assigns to code,
	// or the empty string if the code is not mapped.
	GlyphName(code byte) string

	// CharProcNames returns the names of all glyphs which have a char proc.
	// The order of the names is not specified.
	CharProcNames() []string

	// CharProc returns the raw content stream of the named glyph.
	CharProc(name string) []byte

	// CharCode returns the character code which selects the named glyph.
	CharCode(name string) (byte, bool)

	// GlyphWidth returns the advance width of the named glyph,
	// in glyph space units.
	GlyphWidth(name string) (float64, error)

	// GlyphBBox returns the bounding box of the named glyph,
	// or nil if no glyph-specific bounding box is known.
	GlyphBBox(name string) *rect.Rect
}

// Request describes one occurrence of a Type 3 font in a document.
// A Request must not be modified once it has been passed to a Synthesizer.
type Request struct {
	Font Font

	// Document is an opaque handle to the host document.
	// It is passed unchanged to the glyph extractor.
	Document any

	// FontID identifies the font within the document,
	// for example its resource name.
	FontID string

	// FontUID is a caller-assigned unique identifier for the font.
	FontUID string

	// Page is the page number where the font was found.
	Page int
}

// GlyphOutline is the extracted shape of one glyph of a Type 3 font.
type GlyphOutline struct {
	Name string

	// Code is the character code of the glyph, or -1 if the glyph is not
	// reachable through the encoding.
	Code int

	// Width is the advance width, in glyph space units.
	Width float64

	// BBox is the glyph bounding box, in glyph space units.
	BBox rect.Rect

	// Path is the filled outline of the glyph, in glyph space units.
	Path []Segment

	// EvenOdd is set if the glyph is filled using the even-odd rule.
	EvenOdd bool

	// Stroked is set if the glyph paints stroked paths.
	Stroked bool

	// HasImage is set if the glyph paints images, XObjects, shadings or text.
	HasImage bool

	// Colored is set if the glyph sets its own colours.
	Colored bool
}

// IsBlank reports whether the glyph paints nothing.
func (g *GlyphOutline) IsBlank() bool {
	return len(g.Path) == 0 && !g.Stroked && !g.HasImage
}

// SegmentOp is the type of a path segment.
type SegmentOp byte

// These are the path construction operations.
const (
	MoveTo SegmentOp = iota
	LineTo
	CurveTo
	Close
)

// Segment is one element of a glyph path.
// MoveTo and LineTo use P[0], CurveTo uses P[0] to P[2]
// (two control points and the end point), Close uses no points.
type Segment struct {
	Op SegmentOp
	P  [3]vec.Vec2
}
