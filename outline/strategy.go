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

// Package outline converts Type 3 fonts into OpenType fonts by copying
// the filled glyph outlines.
//
// This works for the common case of Type 3 fonts whose glyphs are drawn
// using filled paths only.  Glyphs which paint images or shadings, or which
// only stroke their paths, cannot be represented and the font is reported
// as unsupported.
package outline

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/type3conv"
	"seehuhn.de/go/type3conv/signature"
	"seehuhn.de/go/type3conv/woff"
)

// These are the identifier and label of the outline strategy.
const (
	StrategyID    = "outline"
	StrategyLabel = "Outline synthesis"
)

// Options control the outline strategy.
type Options struct {
	// Enabled switches the strategy on.
	Enabled bool `yaml:"enabled"`

	// FamilyPrefix is prepended to the family names of the generated fonts.
	FamilyPrefix string `yaml:"family_prefix"`

	// Logger (optional) receives diagnostics.
	Logger logrus.FieldLogger `yaml:"-"`
}

// Strategy synthesizes OpenType/CFF fonts from the glyph outlines of a
// Type 3 font.
type Strategy struct {
	type3conv.Base
	opt Options
	log logrus.FieldLogger
}

var _ type3conv.Strategy = (*Strategy)(nil)

// New returns an outline strategy.
// If opt is nil, the strategy is enabled and uses default settings.
func New(opt *Options) *Strategy {
	if opt == nil {
		opt = &Options{Enabled: true}
	}
	s := &Strategy{
		Base: type3conv.Base{StrategyID: StrategyID, StrategyLabel: StrategyLabel},
		opt:  *opt,
		log:  opt.Logger,
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	return s
}

// IsAvailable implements the [type3conv.Strategy] interface.
func (s *Strategy) IsAvailable() bool {
	return s.opt.Enabled
}

// Supports implements the [type3conv.Strategy] interface.
// Fonts without char procs are not supported.
func (s *Strategy) Supports(req *type3conv.Request, _ *type3conv.GlyphContext) (bool, error) {
	if req == nil || req.Font == nil {
		return false, nil
	}
	return len(req.Font.CharProcNames()) > 0, nil
}

// Convert implements the [type3conv.Strategy] interface.
func (s *Strategy) Convert(req *type3conv.Request, gc *type3conv.GlyphContext) (*type3conv.Candidate, error) {
	glyphs, err := gc.Glyphs()
	if err != nil {
		return nil, fmt.Errorf("glyph extraction: %w", err)
	}

	fillable := 0
	for _, g := range glyphs {
		switch {
		case g.HasImage:
			return s.NewCandidate(type3conv.Unsupported,
				fmt.Sprintf("glyph %q paints images", g.Name)), nil
		case g.Stroked && len(g.Path) == 0:
			return s.NewCandidate(type3conv.Unsupported,
				fmt.Sprintf("glyph %q is stroked", g.Name)), nil
		case g.EvenOdd && numContours(g.Path) > 1:
			// CFF outlines are filled using the nonzero winding rule.
			return s.NewCandidate(type3conv.Unsupported,
				fmt.Sprintf("glyph %q uses even-odd fill", g.Name)), nil
		case len(g.Path) > 0:
			fillable++
		}
	}
	if fillable == 0 {
		return s.NewCandidate(type3conv.Unsupported, "no fillable outlines"), nil
	}

	fp := signature.Compute(req.Font)
	family := familyName(s.opt.FamilyPrefix, fp)
	info, coverage, err := buildFont(family, req.Font.FontMatrix(), glyphs)
	if err != nil {
		return nil, err
	}

	native := &bytes.Buffer{}
	_, err = info.Write(native)
	if err != nil {
		return nil, fmt.Errorf("writing OpenType font: %w", err)
	}
	web, err := woff.Encode(native.Bytes())
	if err != nil {
		return nil, fmt.Errorf("writing WOFF font: %w", err)
	}
	pdfData := &bytes.Buffer{}
	err = info.WriteOpenTypeCFFPDF(pdfData)
	if err != nil {
		return nil, fmt.Errorf("writing PDF font: %w", err)
	}

	slices.Sort(coverage)

	s.log.WithFields(logrus.Fields{
		"font":        req.FontID,
		"fingerprint": fp,
		"family":      family,
		"glyphs":      len(coverage),
	}).Info("outlines converted")

	c := s.NewCandidate(type3conv.Success,
		fmt.Sprintf("synthesized %s with %d glyphs", family, len(coverage)))
	c.Native = &type3conv.Payload{Data: native.Bytes(), Format: type3conv.OpenTypeCFF}
	c.Web = &type3conv.Payload{Data: web, Format: type3conv.WOFF}
	c.PDF = &type3conv.Payload{Data: pdfData.Bytes(), Format: type3conv.OpenTypeCFF}
	c.Coverage = coverage
	return c, nil
}

func numContours(path []type3conv.Segment) int {
	n := 0
	for _, seg := range path {
		if seg.Op == type3conv.MoveTo {
			n++
		}
	}
	return n
}
