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
	"fmt"
	"strings"
)

// Candidate is the outcome of running one strategy against one font.
type Candidate struct {
	// StrategyID and StrategyLabel identify the strategy which produced
	// this candidate.
	StrategyID    string
	StrategyLabel string

	Status Status

	// Native is the primary font program.
	Native *Payload

	// Web (optional) is a font program suitable for use with CSS @font-face.
	Web *Payload

	// PDF (optional) is a font program which can be embedded in a PDF file.
	PDF *Payload

	// Coverage (optional) lists the glyph names covered by the font programs,
	// in sorted order.  This is advisory only.
	Coverage []string

	// Message is a human-readable description of the outcome.
	Message string
}

// Payloads returns the non-empty payloads of the candidate,
// in the order Native, Web, PDF.
func (c *Candidate) Payloads() []*Payload {
	var res []*Payload
	for _, p := range []*Payload{c.Native, c.Web, c.PDF} {
		if !p.IsEmpty() {
			res = append(res, p)
		}
	}
	return res
}

func (c *Candidate) String() string {
	s := c.StrategyID + ": " + c.Status.String()
	if c.Message != "" {
		s += " (" + c.Message + ")"
	}
	return s
}

// FirstSuccess returns the first candidate with status [Success],
// or nil if there is none.
func FirstSuccess(cands []*Candidate) *Candidate {
	for _, c := range cands {
		if c != nil && c.Status == Success {
			return c
		}
	}
	return nil
}

// Payload is an encoded font program.
type Payload struct {
	Data   []byte
	Format Format
}

// IsEmpty reports whether p is nil or contains no data.
func (p *Payload) IsEmpty() bool {
	return p == nil || len(p.Data) == 0
}

// Format identifies the encoding of a font program.
type Format int

// These are the supported font program formats.
const (
	// None indicates that the format is unknown.
	None Format = iota

	// CFF indicates a bare CFF font program.
	CFF

	// OpenTypeCFF indicates an OpenType font with a "CFF " table.
	OpenTypeCFF

	// OpenTypeGlyf indicates an OpenType font with a "glyf" table.
	OpenTypeGlyf

	// TrueType indicates a TrueType font.
	TrueType

	// Type1 indicates a Type 1 font program.
	Type1

	// WOFF indicates an sfnt font wrapped in WOFF 1.0 format.
	WOFF

	// WOFF2 indicates an sfnt font wrapped in WOFF 2.0 format.
	WOFF2
)

func (f Format) String() string {
	switch f {
	case None:
		return "None"
	case CFF:
		return "CFF"
	case OpenTypeCFF:
		return "OpenType/CFF"
	case OpenTypeGlyf:
		return "OpenType/glyf"
	case TrueType:
		return "TrueType"
	case Type1:
		return "Type1"
	case WOFF:
		return "WOFF"
	case WOFF2:
		return "WOFF2"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Ext returns the usual file name extension for the format,
// including the leading dot.
func (f Format) Ext() string {
	switch f {
	case CFF:
		return ".cff"
	case OpenTypeCFF:
		return ".otf"
	case OpenTypeGlyf, TrueType:
		return ".ttf"
	case Type1:
		return ".pfb"
	case WOFF:
		return ".woff"
	case WOFF2:
		return ".woff2"
	default:
		return ".bin"
	}
}

// ParseFormat converts a format tag, as used in library manifests,
// into a Format.
func ParseFormat(tag string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "cff":
		return CFF, nil
	case "otf", "opentype", "opentype-cff":
		return OpenTypeCFF, nil
	case "otf-glyf", "opentype-glyf":
		return OpenTypeGlyf, nil
	case "ttf", "truetype":
		return TrueType, nil
	case "pfb", "pfa", "t1", "type1":
		return Type1, nil
	case "woff":
		return WOFF, nil
	case "woff2":
		return WOFF2, nil
	default:
		return None, fmt.Errorf("unknown font format %q", tag)
	}
}
