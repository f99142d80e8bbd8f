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
	"errors"
	"sync/atomic"
)

// Extractor extracts the glyph outlines of a Type 3 font.
//
// Extraction may be expensive.  Strategies access it through a
// [GlyphContext], which makes sure that the work is done at most once.
type Extractor interface {
	ExtractGlyphs(req *Request) ([]*GlyphOutline, error)
}

// ExtractorFunc adapts an ordinary function to the [Extractor] interface.
type ExtractorFunc func(req *Request) ([]*GlyphOutline, error)

// ExtractGlyphs calls f(req).
func (f ExtractorFunc) ExtractGlyphs(req *Request) ([]*GlyphOutline, error) {
	return f(req)
}

// ErrNoExtractor is returned by [GlyphContext.Glyphs] if no glyph extractor
// has been configured.
var ErrNoExtractor = errors.New("no glyph extractor configured")

// GlyphContext caches the glyph outlines of the font of one request.
//
// The context is shared by all strategies which are run for the request.
// The first call to Glyphs extracts the outlines; all later calls return
// the stored result.
type GlyphContext struct {
	req *Request
	ext Extractor

	result atomic.Pointer[extraction]
}

type extraction struct {
	glyphs []*GlyphOutline
	err    error
}

// NewGlyphContext returns a glyph context for the given request.
// No extraction is performed until the first call to Glyphs.
func NewGlyphContext(req *Request, ext Extractor) *GlyphContext {
	return &GlyphContext{req: req, ext: ext}
}

// Request returns the request the context belongs to.
func (gc *GlyphContext) Request() *Request {
	return gc.req
}

// Font returns the font of the request.
func (gc *GlyphContext) Font() Font {
	if gc.req == nil {
		return nil
	}
	return gc.req.Font
}

// Glyphs returns the glyph outlines of the font.
//
// Errors are cached as well, so a failed extraction is not repeated.
// If two goroutines race to extract, the result stored first is returned
// to both and the other one is discarded.
func (gc *GlyphContext) Glyphs() ([]*GlyphOutline, error) {
	if res := gc.result.Load(); res != nil {
		return res.glyphs, res.err
	}

	res := &extraction{}
	if gc.ext == nil {
		res.err = ErrNoExtractor
	} else {
		res.glyphs, res.err = gc.ext.ExtractGlyphs(gc.req)
	}

	if !gc.result.CompareAndSwap(nil, res) {
		res = gc.result.Load()
	}
	return res.glyphs, res.err
}

// IsExtracted reports whether the glyph outlines have been extracted.
func (gc *GlyphContext) IsExtracted() bool {
	return gc.result.Load() != nil
}
