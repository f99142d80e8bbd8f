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

package signature

import (
	"math"
	"slices"
	"strings"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/type3conv"
	"seehuhn.de/go/type3conv/type3"
)

// makeFont returns the font "A" from the end-to-end scenario:
// one glyph "A" at code 65, with content bytes 1, 2, 3.
func makeFont() *type3.Font {
	f := &type3.Font{
		Matrix: matrix.Matrix{1, 0, 0, 1, 0, 0},
		BBox:   &rect.Rect{LLx: 0, LLy: 0, URx: 1000, URy: 1000},
		CharProcs: map[string]*type3.CharProc{
			"A": {Data: []byte{1, 2, 3}},
		},
	}
	f.Encoding[65] = "A"
	f.Widths[65] = 500
	return f
}

func makeMultiGlyphFont() *type3.Font {
	f := makeFont()
	f.CharProcs["b"] = &type3.CharProc{Data: []byte("0 0 d0")}
	f.CharProcs["C"] = &type3.CharProc{Data: []byte("100 0 d0 0 0 m 10 10 l f")}
	f.CharProcs["a"] = &type3.CharProc{Data: []byte{9, 9}}
	f.Encoding[66] = "b"
	f.Encoding[67] = "C"
	f.Encoding[97] = "a"
	return f
}

// reordered returns the char proc names of the wrapped font in a
// caller-defined order.
type reordered struct {
	*type3.Font
	order func([]string)
}

func (r reordered) CharProcNames() []string {
	names := r.Font.CharProcNames()
	r.order(names)
	return names
}

func TestFormat(t *testing.T) {
	sig := Compute(makeFont())
	if !strings.HasPrefix(sig, "sha256:") {
		t.Errorf("missing prefix: %q", sig)
	}
	if !IsValid(sig) {
		t.Errorf("invalid signature syntax: %q", sig)
	}
	if sig != strings.ToLower(sig) {
		t.Errorf("signature is not lower case: %q", sig)
	}
}

func TestNil(t *testing.T) {
	if sig := Compute(nil); sig != "" {
		t.Errorf("Compute(nil) = %q, want empty string", sig)
	}
}

func TestDeterminism(t *testing.T) {
	a := Compute(makeMultiGlyphFont())
	for range 10 {
		if b := Compute(makeMultiGlyphFont()); b != a {
			t.Fatalf("signature changed: %q != %q", b, a)
		}
	}
}

func TestOrderIndependence(t *testing.T) {
	f := makeMultiGlyphFont()
	want := Compute(f)

	orders := map[string]func([]string){
		"reversed": slices.Reverse[[]string],
		"rotated": func(names []string) {
			if len(names) > 1 {
				first := names[0]
				copy(names, names[1:])
				names[len(names)-1] = first
			}
		},
		"case-sorted": func(names []string) {
			slices.SortFunc(names, func(a, b string) int {
				return strings.Compare(strings.ToUpper(b), strings.ToUpper(a))
			})
		},
	}
	for name, order := range orders {
		got := Compute(reordered{Font: f, order: order})
		if got != want {
			t.Errorf("%s: signature depends on char proc order", name)
		}
	}
}

func TestSensitivity(t *testing.T) {
	base := Compute(makeMultiGlyphFont())

	cases := []struct {
		name   string
		modify func(f *type3.Font)
	}{
		{"char proc byte", func(f *type3.Font) { f.CharProcs["A"].Data = []byte{1, 2, 4} }},
		{"char proc length", func(f *type3.Font) { f.CharProcs["A"].Data = []byte{1, 2, 3, 0} }},
		{"glyph name", func(f *type3.Font) {
			f.CharProcs["B"] = f.CharProcs["b"]
			delete(f.CharProcs, "b")
			f.Encoding[66] = "B"
		}},
		{"code mapping", func(f *type3.Font) {
			f.Encoding[65] = ""
			f.Encoding[68] = "A"
			f.Widths[68] = f.Widths[65]
		}},
		{"extra mapping", func(f *type3.Font) { f.Encoding[200] = "A" }},
		{"bbox LLx", func(f *type3.Font) { f.BBox.LLx = -1 }},
		{"bbox URy", func(f *type3.Font) { f.BBox.URy = 999 }},
		{"no bbox", func(f *type3.Font) { f.BBox = nil }},
		{"glyph bbox", func(f *type3.Font) {
			f.CharProcs["a"].BBox = &rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}
		}},
		{"width", func(f *type3.Font) { f.Widths[65] = 501 }},
		{"matrix", func(f *type3.Font) { f.Matrix[3] = 2 }},
		{"matrix translation", func(f *type3.Font) { f.Matrix[5] = 1 }},
		{"extra glyph", func(f *type3.Font) { f.CharProcs["z"] = &type3.CharProc{Data: []byte{}} }},
		{"removed glyph", func(f *type3.Font) { delete(f.CharProcs, "C") }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := makeMultiGlyphFont()
			c.modify(f)
			if sig := Compute(f); sig == base {
				t.Errorf("signature did not change")
			}
		})
	}
}

func TestFloatNormalization(t *testing.T) {
	zeroWidth := makeFont()
	zeroWidth.Widths[65] = 0
	want := Compute(zeroWidth)

	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		f := makeFont()
		f.Widths[65] = x
		if got := Compute(f); got != want {
			t.Errorf("width %g: signature differs from width 0", x)
		}
	}

	zeroMatrix := makeFont()
	zeroMatrix.Matrix[4] = 0
	want = Compute(zeroMatrix)
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		f := makeFont()
		f.Matrix[4] = x
		if got := Compute(f); got != want {
			t.Errorf("matrix entry %g: signature differs from entry 0", x)
		}
	}
}

func TestWidthLookupFailure(t *testing.T) {
	// A glyph outside the encoding has no width.  The lookup error must not
	// propagate, and the glyph is hashed with width 0 and code -1.
	f := makeFont()
	f.CharProcs["unencoded"] = &type3.CharProc{Data: []byte("0 0 d0")}
	sig := Compute(f)
	if !IsValid(sig) {
		t.Fatalf("invalid signature %q", sig)
	}
	if sig == Compute(makeFont()) {
		t.Error("unencoded glyph did not change the signature")
	}
}

func TestScenario(t *testing.T) {
	a := makeFont()
	b := makeFont()
	b.CharProcs["A"].Data = []byte{1, 2, 4}

	if Compute(a) == Compute(b) {
		t.Error("fonts A and B have the same signature")
	}
}

func TestIndependentOfStorage(t *testing.T) {
	// Two separately allocated fonts with equal content give equal
	// signatures, independent of which Font implementation is used.
	var f1 type3conv.Font = makeMultiGlyphFont()
	f2 := reordered{Font: makeMultiGlyphFont(), order: func([]string) {}}
	if Compute(f1) != Compute(f2) {
		t.Error("signature depends on the font object")
	}
}

func TestIsValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"sha256:", false},
		{"sha256:" + strings.Repeat("0", 64), true},
		{"sha256:" + strings.Repeat("a", 63), false},
		{"sha256:" + strings.Repeat("A", 64), false},
		{"md5:" + strings.Repeat("0", 64), false},
	}
	for _, c := range cases {
		if got := IsValid(c.in); got != c.want {
			t.Errorf("IsValid(%q) = %t, want %t", c.in, got, c.want)
		}
	}
}
