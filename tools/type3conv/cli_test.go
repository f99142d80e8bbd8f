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
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"seehuhn.de/go/type3conv"
	"seehuhn.de/go/type3conv/library"
	"seehuhn.de/go/type3conv/signature"
)

func TestConvertPipeline(t *testing.T) {
	f, uid, err := parseFont([]byte(squareFont))
	if err != nil {
		t.Fatal(err)
	}

	log, _ := test.NewNullLogger()
	cfg := defaultConfig()
	s := newSynthesizer(cfg, log)
	cands := s.Synthesize(&type3conv.Request{Font: f, FontID: "square", FontUID: uid})
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2", len(cands))
	}
	if cands[0].Status != type3conv.Skipped {
		t.Errorf("library: %s", cands[0])
	}
	best := type3conv.FirstSuccess(cands)
	if best == nil {
		t.Fatalf("no success: %v", cands)
	}

	dir := filepath.Join(t.TempDir(), "out")
	err = writePayloads(dir, "square", best)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"square.native.otf", "square.web.woff", "square.pdf.otf"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Error(err)
		}
	}
}

func TestMissingLibrary(t *testing.T) {
	log, hook := test.NewNullLogger()
	cfg := defaultConfig()
	cfg.applyFlags(filepath.Join(t.TempDir(), "nothing"), false, "")

	s := newSynthesizer(cfg, log)
	if len(s.Strategies()) != 2 {
		t.Fatal("strategies missing")
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.WarnLevel {
		t.Error("missing library not reported")
	}

	f, _, err := parseFont([]byte(squareFont))
	if err != nil {
		t.Fatal(err)
	}
	cands := s.Synthesize(&type3conv.Request{Font: f})
	if cands[0].Message != "library not loaded" {
		t.Errorf("library: %s", cands[0])
	}
}

func TestListLibrary(t *testing.T) {
	f, _, err := parseFont([]byte(squareFont))
	if err != nil {
		t.Fatal(err)
	}
	fp := signature.Compute(f)
	idx, err := library.NewIndex([]*library.Entry{{
		Label:       "Square",
		Fingerprint: fp,
		Coverage:    []string{"A", "uni20AC"},
		Web:         &type3conv.Payload{Data: []byte("wOFF"), Format: type3conv.WOFF},
	}})
	if err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	listLibrary(buf, idx, true)
	out := buf.String()
	for _, want := range []string{fp, "Square", "2 glyphs", "web=WOFF", "LATIN CAPITAL LETTER A", "EURO SIGN", "1 entries"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestDescribeGlyph(t *testing.T) {
	if got := describeGlyph("A"); got != `"A" LATIN CAPITAL LETTER A` {
		t.Errorf("describeGlyph(A) = %q", got)
	}
}

func TestWriteASCII(t *testing.T) {
	img := image.NewAlpha(image.Rect(0, 0, 3, 2))
	img.Pix[0] = 255
	img.Pix[4] = 128

	buf := &bytes.Buffer{}
	writeASCII(buf, img)
	want := "@@\n  ==\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFontID(t *testing.T) {
	if got := fontID("/tmp/fonts/cmr10.yaml"); got != "cmr10" {
		t.Errorf("fontID = %q", got)
	}
}
