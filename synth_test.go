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
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// testFont is a minimal implementation of the Font interface.
type testFont struct{}

func (testFont) FontMatrix() matrix.Matrix               { return matrix.Matrix{0.001, 0, 0, 0.001, 0, 0} }
func (testFont) FontBBox() *rect.Rect                    { return nil }
func (testFont) GlyphName(code byte) string              { return "" }
func (testFont) CharProcNames() []string                 { return nil }
func (testFont) CharProc(name string) []byte             { return nil }
func (testFont) CharCode(name string) (byte, bool)       { return 0, false }
func (testFont) GlyphWidth(name string) (float64, error) { return 0, nil }
func (testFont) GlyphBBox(name string) *rect.Rect        { return nil }

// fakeStrategy is a configurable strategy for testing the synthesizer.
type fakeStrategy struct {
	Base
	available bool
	supports  func() (bool, error)
	convert   func(gc *GlyphContext) (*Candidate, error)
}

func (s *fakeStrategy) IsAvailable() bool {
	return s.available
}

func (s *fakeStrategy) Supports(req *Request, gc *GlyphContext) (bool, error) {
	if s.supports == nil {
		return s.Base.Supports(req, gc)
	}
	return s.supports()
}

func (s *fakeStrategy) Convert(req *Request, gc *GlyphContext) (*Candidate, error) {
	return s.convert(gc)
}

func newFake(id string, convert func(gc *GlyphContext) (*Candidate, error)) *fakeStrategy {
	return &fakeStrategy{
		Base:      Base{StrategyID: id, StrategyLabel: "Fake " + id},
		available: true,
		convert:   convert,
	}
}

func succeed(gc *GlyphContext) (*Candidate, error) {
	return &Candidate{Status: Success, Native: &Payload{Data: []byte{1}, Format: CFF}}, nil
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type outcome struct {
	ID      string
	Label   string
	Status  Status
	Message string
}

func outcomes(cands []*Candidate) []outcome {
	var res []outcome
	for _, c := range cands {
		res = append(res, outcome{c.StrategyID, c.StrategyLabel, c.Status, c.Message})
	}
	return res
}

func TestSynthesizeDegenerate(t *testing.T) {
	s := New([]Strategy{newFake("a", succeed)}, &Options{Logger: quietLogger()})

	for _, req := range []*Request{nil, {}} {
		res := s.Synthesize(req)
		if res == nil || len(res) != 0 {
			t.Errorf("got %v, want empty non-nil slice", res)
		}
	}
}

func TestSynthesizeNoStrategies(t *testing.T) {
	log, hook := test.NewNullLogger()
	s := New(nil, &Options{Logger: log})
	res := s.Synthesize(&Request{Font: testFont{}})
	if res == nil || len(res) != 0 {
		t.Errorf("got %v, want empty non-nil slice", res)
	}
	if len(hook.Entries) != 1 || hook.LastEntry().Level != logrus.WarnLevel {
		t.Errorf("expected one warning, got %d log entries", len(hook.Entries))
	}
}

func TestSynthesizeStates(t *testing.T) {
	unavailable := newFake("unavailable", succeed)
	unavailable.available = false

	unsupported := newFake("unsupported", succeed)
	unsupported.supports = func() (bool, error) { return false, nil }

	checkFails := newFake("check-fails", succeed)
	checkFails.supports = func() (bool, error) { return false, errors.New("bad header") }

	checkPanics := newFake("check-panics", succeed)
	checkPanics.supports = func() (bool, error) { panic("boom") }

	convertFails := newFake("convert-fails", func(*GlyphContext) (*Candidate, error) {
		return nil, errors.New("out of glyphs")
	})
	convertPanics := newFake("convert-panics", func(*GlyphContext) (*Candidate, error) {
		panic("crash")
	})
	noResult := newFake("no-result", func(*GlyphContext) (*Candidate, error) {
		return nil, nil
	})
	ownStatus := newFake("own-status", func(*GlyphContext) (*Candidate, error) {
		return &Candidate{Status: Unsupported, Message: "not in library"}, nil
	})
	ok := newFake("ok", succeed)

	strategies := []Strategy{
		unavailable, unsupported, nil, checkFails, checkPanics,
		convertFails, convertPanics, noResult, ownStatus, ok,
	}
	s := New(strategies, &Options{Logger: quietLogger()})
	res := s.Synthesize(&Request{Font: testFont{}, FontID: "F1", Page: 3})

	want := []outcome{
		{"unavailable", "Fake unavailable", Skipped, "strategy not available"},
		{"unsupported", "Fake unsupported", Unsupported, "font not supported by this strategy"},
		{"check-fails", "Fake check-fails", Unsupported, "support check failed: bad header"},
		{"check-panics", "Fake check-panics", Unsupported, "support check failed: panic: boom"},
		{"convert-fails", "Fake convert-fails", Failure, "conversion failed: out of glyphs"},
		{"convert-panics", "Fake convert-panics", Failure, "conversion failed: panic: crash"},
		{"no-result", "Fake no-result", Failure, "strategy returned no result"},
		{"own-status", "Fake own-status", Unsupported, "not in library"},
		{"ok", "Fake ok", Success, ""},
	}
	if d := cmp.Diff(want, outcomes(res)); d != "" {
		t.Errorf("outcomes (-want +got):\n%s", d)
	}

	if c := FirstSuccess(res); c == nil || c.StrategyID != "ok" {
		t.Errorf("FirstSuccess returned %v", c)
	}
}

func TestSynthesizeKeepsStrategyIDs(t *testing.T) {
	st := newFake("outer", func(*GlyphContext) (*Candidate, error) {
		return &Candidate{StrategyID: "inner", Status: Success}, nil
	})
	res := New([]Strategy{st}, &Options{Logger: quietLogger()}).Synthesize(&Request{Font: testFont{}})
	if res[0].StrategyID != "inner" {
		t.Errorf("strategy ID was overwritten: %q", res[0].StrategyID)
	}
	if res[0].StrategyLabel != "Fake outer" {
		t.Errorf("empty label not filled in: %q", res[0].StrategyLabel)
	}
}

func TestSynthesizeSharedContext(t *testing.T) {
	calls := 0
	ext := ExtractorFunc(func(req *Request) ([]*GlyphOutline, error) {
		calls++
		return []*GlyphOutline{{Name: "A"}}, nil
	})

	var contexts []*GlyphContext
	useGlyphs := func(gc *GlyphContext) (*Candidate, error) {
		contexts = append(contexts, gc)
		if _, err := gc.Glyphs(); err != nil {
			return nil, err
		}
		return &Candidate{Status: Failure, Message: "tracing failed"}, nil
	}

	strategies := []Strategy{
		newFake("first", useGlyphs),
		newFake("second", useGlyphs),
		newFake("third", useGlyphs),
	}
	s := New(strategies, &Options{Extractor: ext, Logger: quietLogger()})

	res := s.Synthesize(&Request{Font: testFont{}})
	if len(res) != 3 {
		t.Fatalf("got %d candidates", len(res))
	}
	if calls != 1 {
		t.Errorf("extractor called %d times, want 1", calls)
	}
	for _, gc := range contexts[1:] {
		if gc != contexts[0] {
			t.Error("strategies got different glyph contexts")
		}
	}

	// A second request gets a fresh context.
	s.Synthesize(&Request{Font: testFont{}})
	if calls != 2 {
		t.Errorf("extractor called %d times after second request, want 2", calls)
	}
}

func TestSynthesizeLazyExtraction(t *testing.T) {
	ext := ExtractorFunc(func(req *Request) ([]*GlyphOutline, error) {
		t.Error("extractor called although no strategy needs glyphs")
		return nil, nil
	})
	s := New([]Strategy{newFake("a", succeed), newFake("b", succeed)},
		&Options{Extractor: ext, Logger: quietLogger()})
	res := s.Synthesize(&Request{Font: testFont{}})
	if len(res) != 2 {
		t.Errorf("got %d candidates", len(res))
	}
}

func TestStrategiesNilDropped(t *testing.T) {
	s := New([]Strategy{nil, newFake("a", succeed), nil}, nil)
	if n := len(s.Strategies()); n != 1 {
		t.Errorf("%d strategies registered, want 1", n)
	}
	res := s.Synthesize(&Request{Font: testFont{}})
	if len(res) != 1 {
		t.Errorf("got %d candidates, want 1", len(res))
	}
}

func TestLazyContext(t *testing.T) {
	s := New(nil, nil)
	req := &Request{Font: testFont{}}
	get := s.lazyContext(req)

	gc := get()
	if gc == nil || gc.Request() != req {
		t.Fatal("wrong glyph context")
	}
	if get() != gc {
		t.Error("glyph context was created twice")
	}
	if s.lazyContext(req)() == gc {
		t.Error("glyph context shared between calls")
	}
}

func TestUnavailableGetsNoContext(t *testing.T) {
	var seen []*GlyphContext
	record := func(gc *GlyphContext) (*Candidate, error) {
		seen = append(seen, gc)
		return &Candidate{Status: Success}, nil
	}
	off := newFake("off", record)
	off.available = false
	on := newFake("on", record)

	s := New([]Strategy{off, on, off}, &Options{Logger: quietLogger()})
	res := s.Synthesize(&Request{Font: testFont{}})
	if len(res) != 3 || len(seen) != 1 || seen[0] == nil {
		t.Errorf("%d candidates, %d contexts seen", len(res), len(seen))
	}
}
