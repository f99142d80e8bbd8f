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

// Package signature computes content fingerprints of Type 3 fonts.
//
// A fingerprint only depends on the data which defines the font: the font
// matrix, the bounding box, the encoding and the char procs.  It does not
// depend on object numbers, on the order in which char procs are stored, or
// on the document in which the font was found.  This allows fonts which are
// reused across documents to be recognised.
//
// The byte sequence which is hashed must not change, since fingerprints are
// stored in pre-built font libraries.
package signature

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"
	"slices"
	"strings"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/type3conv"
)

// Prefix is the prefix of all fingerprints.
const Prefix = "sha256:"

// sentinel is written in place of an absent bounding box.
var sentinel = []byte{0xFF, 0xFF, 0xFF, 0xFF}

// Compute returns the fingerprint of the font f, in the form
// "sha256:<hex digits>".  If f is nil, the empty string is returned.
func Compute(f type3conv.Font) string {
	if f == nil {
		return ""
	}

	d := &digest{h: sha256.New()}

	// font matrix, as two rows of the affine map
	m := f.FontMatrix()
	rows := [][]float64{
		{m[0], m[2], m[4]},
		{m[1], m[3], m[5]},
	}
	d.int(len(rows))
	for _, row := range rows {
		d.int(len(row))
		for _, x := range row {
			d.float(x)
		}
	}

	fontBBox := f.FontBBox()
	d.bbox(fontBBox)

	// Unmapped codes are skipped, so that equivalent sparse encodings give
	// equal fingerprints.
	for code := 0; code < 256; code++ {
		name := f.GlyphName(byte(code))
		if name == "" {
			continue
		}
		d.int(code)
		d.string(name)
	}

	names := slices.Clone(f.CharProcNames())
	slices.SortFunc(names, compareGlyphNames)
	count := 0
	for _, name := range names {
		data := f.CharProc(name)
		if data == nil {
			continue
		}

		d.string(name)
		if code, ok := f.CharCode(name); ok {
			d.int(int(code))
		} else {
			d.int(-1)
		}
		width, err := f.GlyphWidth(name)
		if err != nil {
			width = 0
		}
		d.float(width)
		d.int(len(data))
		d.h.Write(data)

		glyphBBox := f.GlyphBBox(name)
		if glyphBBox == nil {
			glyphBBox = fontBBox
		}
		d.bbox(glyphBBox)

		count++
	}
	d.int(count)

	return Prefix + hex.EncodeToString(d.h.Sum(nil))
}

// IsValid reports whether s has the syntax of a fingerprint.
func IsValid(s string) bool {
	hexPart, ok := strings.CutPrefix(s, Prefix)
	if !ok || len(hexPart) != 2*sha256.Size {
		return false
	}
	for _, c := range hexPart {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}

// compareGlyphNames orders glyph names case-insensitively.
// Names which differ only in case are ordered by their exact spelling.
func compareGlyphNames(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// digest feeds values into a hash using a fixed binary encoding:
// integers as 4-byte big-endian values, floats as big-endian IEEE 754
// single precision values, and strings as a length followed by the
// UTF-8 bytes.
type digest struct {
	h   hash.Hash
	buf [4]byte
}

func (d *digest) int(x int) {
	binary.BigEndian.PutUint32(d.buf[:], uint32(int32(x)))
	d.h.Write(d.buf[:])
}

func (d *digest) float(x float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		x = 0
	}
	binary.BigEndian.PutUint32(d.buf[:], math.Float32bits(float32(x)))
	d.h.Write(d.buf[:])
}

func (d *digest) string(s string) {
	d.int(len(s))
	d.h.Write([]byte(s))
}

func (d *digest) bbox(r *rect.Rect) {
	if r == nil {
		d.h.Write(sentinel)
		return
	}
	d.float(r.LLx)
	d.float(r.LLy)
	d.float(r.URx)
	d.float(r.URy)
}
