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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		Success:     "SUCCESS",
		Failure:     "FAILURE",
		Unsupported: "UNSUPPORTED",
		Skipped:     "SKIPPED",
		Status(0):   "Status(0)",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("%d: got %q, want %q", int(s), got, want)
		}
	}
}

func TestPayloads(t *testing.T) {
	native := &Payload{Data: []byte("OTTO"), Format: OpenTypeCFF}
	pdf := &Payload{Data: []byte("CFF"), Format: CFF}
	c := &Candidate{
		Native: native,
		Web:    &Payload{Format: WOFF},
		PDF:    pdf,
	}
	if d := cmp.Diff([]*Payload{native, pdf}, c.Payloads()); d != "" {
		t.Errorf("payloads (-want +got):\n%s", d)
	}

	var p *Payload
	if !p.IsEmpty() {
		t.Error("nil payload is not empty")
	}
}

func TestFirstSuccess(t *testing.T) {
	if FirstSuccess(nil) != nil {
		t.Error("FirstSuccess(nil) is not nil")
	}
	a := &Candidate{StrategyID: "a", Status: Failure}
	b := &Candidate{StrategyID: "b", Status: Success}
	c := &Candidate{StrategyID: "c", Status: Success}
	if got := FirstSuccess([]*Candidate{a, nil, b, c}); got != b {
		t.Errorf("got %v, want b", got)
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		tag  string
		want Format
		ext  string
	}{
		{"otf", OpenTypeCFF, ".otf"},
		{" OpenType ", OpenTypeCFF, ".otf"},
		{"ttf", TrueType, ".ttf"},
		{"otf-glyf", OpenTypeGlyf, ".ttf"},
		{"cff", CFF, ".cff"},
		{"pfb", Type1, ".pfb"},
		{"WOFF", WOFF, ".woff"},
		{"woff2", WOFF2, ".woff2"},
	}
	for _, c := range cases {
		got, err := ParseFormat(c.tag)
		if err != nil {
			t.Errorf("%q: %v", c.tag, err)
			continue
		}
		if got != c.want {
			t.Errorf("%q: got %s, want %s", c.tag, got, c.want)
		}
		if got.Ext() != c.ext {
			t.Errorf("%q: extension %q, want %q", c.tag, got.Ext(), c.ext)
		}
	}

	if _, err := ParseFormat("svg"); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestCandidateString(t *testing.T) {
	c := &Candidate{StrategyID: "library", Status: Unsupported, Message: "no match"}
	if got, want := c.String(), "library: UNSUPPORTED (no match)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
