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
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/type3conv/type3"
)

// fontFile is a YAML description of a Type 3 font, for example:
//
//	matrix: [0.001, 0, 0, 0.001, 0, 0]
//	uid: my-font
//	glyphs:
//	  - name: A
//	    code: 65
//	    width: 600
//	    proc: "600 0 d0 100 0 m 500 0 l 300 700 l f"
type fontFile struct {
	Matrix []float64    `yaml:"matrix"`
	BBox   []float64    `yaml:"bbox"`
	UID    string       `yaml:"uid"`
	Glyphs []*glyphFile `yaml:"glyphs"`
}

type glyphFile struct {
	Name  string    `yaml:"name"`
	Code  *int      `yaml:"code"`
	Width float64   `yaml:"width"`
	BBox  []float64 `yaml:"bbox"`
	Proc  string    `yaml:"proc"`
}

var errNoGlyphName = errors.New("glyph without name")

// readFontFile reads a font description and returns the font together with
// its UID.
func readFontFile(fname string) (*type3.Font, string, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, "", err
	}
	f, uid, err := parseFont(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", fname, err)
	}
	return f, uid, nil
}

func parseFont(data []byte) (*type3.Font, string, error) {
	ff := &fontFile{}
	err := yaml.UnmarshalStrict(data, ff)
	if err != nil {
		return nil, "", err
	}

	f := &type3.Font{
		CharProcs: make(map[string]*type3.CharProc, len(ff.Glyphs)),
	}
	switch len(ff.Matrix) {
	case 0:
		// Repair fills in the default matrix.
	case 6:
		copy(f.Matrix[:], ff.Matrix)
	default:
		return nil, "", fmt.Errorf("font matrix has %d entries, want 6", len(ff.Matrix))
	}
	f.BBox, err = toRect(ff.BBox)
	if err != nil {
		return nil, "", fmt.Errorf("font bbox: %w", err)
	}

	for i, g := range ff.Glyphs {
		if g.Name == "" {
			return nil, "", fmt.Errorf("glyph %d: %w", i, errNoGlyphName)
		}
		if _, dup := f.CharProcs[g.Name]; dup {
			return nil, "", fmt.Errorf("duplicate glyph %q", g.Name)
		}
		bbox, err := toRect(g.BBox)
		if err != nil {
			return nil, "", fmt.Errorf("glyph %q: %w", g.Name, err)
		}
		f.CharProcs[g.Name] = &type3.CharProc{Data: []byte(g.Proc), BBox: bbox}

		if g.Code != nil {
			code := *g.Code
			if code < 0 || code > 255 {
				return nil, "", fmt.Errorf("glyph %q: invalid code %d", g.Name, code)
			}
			f.Encoding[code] = g.Name
			f.Widths[code] = g.Width
		}
	}

	f.Repair()
	return f, ff.UID, nil
}

func toRect(xx []float64) (*rect.Rect, error) {
	switch len(xx) {
	case 0:
		return nil, nil
	case 4:
		return &rect.Rect{LLx: xx[0], LLy: xx[1], URx: xx[2], URy: xx[3]}, nil
	default:
		return nil, fmt.Errorf("bounding box has %d entries, want 4", len(xx))
	}
}
