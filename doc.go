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

// Package type3conv converts PDF Type 3 fonts into conventional font programs.
//
// Type 3 fonts define their glyphs as small content streams ("char procs")
// instead of outline data.  Structured export, web rendering, subsetting and
// archival normalization all need a regular font program instead.  This
// package runs a list of conversion strategies against one font occurrence
// and reports one [Candidate] per strategy:
//
//	syn := type3conv.New([]type3conv.Strategy{libStrategy, outlineStrategy}, nil)
//	cands := syn.Synthesize(&type3conv.Request{
//		Font:   font,
//		FontID: "F3",
//		Page:   1,
//	})
//	if c := type3conv.FirstSuccess(cands); c != nil {
//		... use c.Native, c.Web or c.PDF ...
//	}
//
// Strategies share a [GlyphContext], so that the glyph outlines of a font are
// extracted at most once per request, however many strategies need them.
//
// Each candidate carries exactly one [Status].  Errors raised by a strategy
// never escape from [Synthesizer.Synthesize]; they are turned into candidates
// with status [Failure] or [Unsupported].
//
// The subpackages provide the pieces around this core:
//
//	signature  content fingerprints of Type 3 fonts
//	library    a read-only index of previously converted fonts
//	type3      an in-memory representation of Type 3 font data
//	charproc   glyph extraction by interpreting char procs
//	outline    a strategy which builds OpenType/CFF fonts from glyph outlines
//	woff       WOFF 1.0 encoding of sfnt font files
package type3conv
