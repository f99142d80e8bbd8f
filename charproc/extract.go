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

package charproc

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/type3conv"
)

// Extractor obtains glyph outlines by interpreting the char procs of a font.
// It implements [type3conv.Extractor].
type Extractor struct {
	// Logger (optional) receives diagnostics.
	Logger logrus.FieldLogger
}

var _ type3conv.Extractor = (*Extractor)(nil)

var errNoFont = errors.New("request has no font")

// ExtractGlyphs implements the [type3conv.Extractor] interface.
//
// The glyphs are returned in order of their names.  If the content stream of
// any glyph is malformed, an error naming the glyph is returned.
func (e *Extractor) ExtractGlyphs(req *type3conv.Request) ([]*type3conv.GlyphOutline, error) {
	if req == nil || req.Font == nil {
		return nil, errNoFont
	}
	f := req.Font

	log := e.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	names := slices.Clone(f.CharProcNames())
	slices.Sort(names)
	names = slices.Compact(names)

	res := make([]*type3conv.GlyphOutline, 0, len(names))
	for _, name := range names {
		data := f.CharProc(name)
		if data == nil {
			continue
		}

		code := -1
		if c, ok := f.CharCode(name); ok {
			code = int(c)
		}
		width, err := f.GlyphWidth(name)
		if err != nil {
			width = math.NaN()
		}

		g, err := Interpret(name, data, code, width)
		if err != nil {
			return nil, fmt.Errorf("glyph %q: %w", name, err)
		}
		if g.BBox.LLx == g.BBox.URx && g.BBox.LLy == g.BBox.URy {
			if bbox := f.GlyphBBox(name); bbox != nil {
				g.BBox = *bbox
			}
		}
		res = append(res, g)
	}

	log.WithFields(logrus.Fields{
		"font":   req.FontID,
		"glyphs": len(res),
	}).Debug("glyphs extracted")
	return res, nil
}
