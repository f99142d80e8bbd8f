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

package outline

import (
	"errors"
	"math"
	"strings"
	"unicode"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"
	"seehuhn.de/go/postscript/type1/names"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/os2"

	"seehuhn.de/go/type3conv"
)

// unitsPerEm is the design grid of the generated fonts.
const unitsPerEm = 1000

// symbolBase is where unmapped character codes are placed in the cmap,
// following the convention for symbol fonts.
const symbolBase = 0xF000

var errNoGlyphs = errors.New("no glyphs to convert")

// builder converts glyph outlines from glyph space into design units.
type builder struct {
	m matrix.Matrix

	ascent, descent float64
	seen            bool
}

// buildFont constructs an OpenType/CFF font from the extracted glyphs.
// The second return value lists the names of all glyphs in the font,
// except for .notdef.
func buildFont(family string, fm matrix.Matrix, glyphs []*type3conv.GlyphOutline) (*sfnt.Font, []string, error) {
	if len(glyphs) == 0 {
		return nil, nil, errNoGlyphs
	}

	b := &builder{m: fm}

	notdef := cff.NewGlyph(".notdef", 0)
	cffGlyphs := []*cff.Glyph{notdef}
	encoding := make([]glyph.ID, 256)
	cmapSub := cmap.Format4{}
	var coverage []string
	used := map[string]bool{".notdef": true}

	var capHeight, xHeight float64
	for _, g := range glyphs {
		if g.Name == ".notdef" {
			notdef.Width = b.width(g.Width)
			b.draw(notdef, g.Path)
			continue
		}
		if g.Name == "" || used[g.Name] {
			continue
		}
		used[g.Name] = true

		cg := cff.NewGlyph(g.Name, b.width(g.Width))
		top := b.draw(cg, g.Path)
		gid := glyph.ID(len(cffGlyphs))
		cffGlyphs = append(cffGlyphs, cg)
		coverage = append(coverage, g.Name)

		if g.Code >= 0 && g.Code < 256 && encoding[g.Code] == 0 {
			encoding[g.Code] = gid
		}

		if r := glyphRune(g); r >= 0 {
			if _, dup := cmapSub[uint16(r)]; !dup {
				cmapSub[uint16(r)] = gid
			}
		}

		switch g.Name {
		case "H":
			capHeight = top
		case "x":
			xHeight = top
		}
	}

	if !b.seen {
		b.ascent, b.descent = 0.8*unitsPerEm, -0.2*unitsPerEm
	}
	if capHeight == 0 {
		capHeight = b.ascent
	}

	b.ascent = max(b.ascent, 0)
	b.descent = min(b.descent, 0)

	cmapData := cmapSub.Encode(0)
	cmapTable := cmap.Table{
		{PlatformID: 0, EncodingID: 3}: cmapData,
		{PlatformID: 3, EncodingID: 1}: cmapData,
	}

	outlines := &cff.Outlines{
		Glyphs: cffGlyphs,
		Private: []*type1.PrivateDict{
			{
				BlueScale: 0.039625,
				BlueShift: 7,
				BlueFuzz:  1,
			},
		},
		FDSelect: func(glyph.ID) int { return 0 },
		Encoding: encoding,
	}

	info := &sfnt.Font{
		FamilyName:         family,
		Width:              os2.WidthNormal,
		Weight:             os2.WeightNormal,
		IsRegular:          true,
		PermUse:            os2.PermInstall,
		UnitsPerEm:         unitsPerEm,
		FontMatrix:         matrix.Matrix{1.0 / unitsPerEm, 0, 0, 1.0 / unitsPerEm, 0, 0},
		Ascent:             funit.Int16(math.Round(b.ascent)),
		Descent:            funit.Int16(math.Round(b.descent)),
		LineGap:            funit.Int16(math.Round(0.2 * unitsPerEm)),
		CapHeight:          funit.Int16(math.Round(capHeight)),
		XHeight:            funit.Int16(math.Round(xHeight)),
		UnderlinePosition:  -100,
		UnderlineThickness: 50,
		CMapTable:          cmapTable,
		Outlines:           outlines,
	}
	return info, coverage, nil
}

// glyphRune returns the character a glyph is mapped to in the cmap,
// or -1 if the glyph cannot be mapped.
func glyphRune(g *type3conv.GlyphOutline) rune {
	rr := []rune(names.ToUnicode(g.Name, ""))
	if len(rr) == 1 && rr[0] <= 0xFFFF && !unicode.Is(unicode.Co, rr[0]) {
		return rr[0]
	}
	if g.Code >= 0 && g.Code < 256 {
		return symbolBase + rune(g.Code)
	}
	return -1
}

// apply maps a point from glyph space to design units.
func (b *builder) apply(x, y float64) (float64, float64) {
	m := b.m
	return unitsPerEm * (m[0]*x + m[2]*y + m[4]),
		unitsPerEm * (m[1]*x + m[3]*y + m[5])
}

// width maps an advance width from glyph space to design units.
func (b *builder) width(w float64) float64 {
	return math.Round(unitsPerEm * b.m[0] * w)
}

// draw adds the path to the glyph and returns the top of the outline,
// in design units.  CFF contours are closed implicitly.  A subpath which
// continues after a closepath starts at the closed subpath's start point.
func (b *builder) draw(cg *cff.Glyph, path []type3conv.Segment) float64 {
	var top float64
	var startX, startY float64
	open := false
	first := true
	track := func(x, y float64) {
		if first || y > top {
			top = y
		}
		first = false
		if !b.seen {
			b.ascent, b.descent = y, y
			b.seen = true
		}
		b.ascent = max(b.ascent, y)
		b.descent = min(b.descent, y)
	}
	ensureOpen := func() {
		if !open {
			cg.MoveTo(startX, startY)
			open = true
		}
	}

	for _, seg := range path {
		switch seg.Op {
		case type3conv.MoveTo:
			startX, startY = b.apply(seg.P[0].X, seg.P[0].Y)
			cg.MoveTo(startX, startY)
			track(startX, startY)
			open = true
		case type3conv.LineTo:
			ensureOpen()
			x, y := b.apply(seg.P[0].X, seg.P[0].Y)
			cg.LineTo(x, y)
			track(x, y)
		case type3conv.CurveTo:
			ensureOpen()
			x1, y1 := b.apply(seg.P[0].X, seg.P[0].Y)
			x2, y2 := b.apply(seg.P[1].X, seg.P[1].Y)
			x3, y3 := b.apply(seg.P[2].X, seg.P[2].Y)
			cg.CurveTo(x1, y1, x2, y2, x3, y3)
			track(x3, y3)
		case type3conv.Close:
			open = false
		}
	}
	return top
}

// familyName returns the family name for a converted font.
// The result only contains characters which are allowed in PostScript
// font names.
func familyName(prefix, fp string) string {
	hexPart := strings.TrimPrefix(fp, "sha256:")
	if len(hexPart) > 8 {
		hexPart = hexPart[:8]
	}
	name := prefix + "Type3-" + strings.ToUpper(hexPart)
	return strings.Map(func(r rune) rune {
		if r < 33 || r > 126 || strings.ContainsRune("[](){}<>/%", r) {
			return -1
		}
		return r
	}, name)
}
