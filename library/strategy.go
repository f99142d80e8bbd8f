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

package library

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/type3conv"
	"seehuhn.de/go/type3conv/signature"
)

// These are the identifier and label of the library strategy.
const (
	StrategyID    = "library"
	StrategyLabel = "Library match"
)

var base = type3conv.Base{StrategyID: StrategyID, StrategyLabel: StrategyLabel}

// Config is the configuration of the library strategy.
type Config struct {
	// Enabled switches library matching on.
	Enabled bool `yaml:"enabled"`

	// Dir is the library directory.
	Dir string `yaml:"dir"`
}

// NewStrategy returns a library strategy for the configuration.
//
// If the library is enabled, it is loaded from c.Dir.  When loading fails,
// the strategy is still returned, together with the error.  The strategy
// then reports all fonts as skipped.
func (c *Config) NewStrategy(log logrus.FieldLogger) (*Strategy, error) {
	s := &Strategy{
		Store:   NewStore(nil),
		Enabled: c.Enabled,
		Logger:  log,
	}
	if !c.Enabled || c.Dir == "" {
		return s, nil
	}
	err := s.Store.Reload(c.Dir)
	if err != nil {
		return s, fmt.Errorf("library %q: %w", c.Dir, err)
	}
	return s, nil
}

// Strategy looks up fonts in a library of previously converted fonts.
// It never synthesizes outlines and does not use the glyph context.
type Strategy struct {
	Store   *Store
	Enabled bool

	// Logger (optional) receives diagnostics.
	Logger logrus.FieldLogger
}

var _ type3conv.Strategy = (*Strategy)(nil)

// ID implements the [type3conv.Strategy] interface.
func (s *Strategy) ID() string {
	return StrategyID
}

// Label implements the [type3conv.Strategy] interface.
func (s *Strategy) Label() string {
	return StrategyLabel
}

// IsAvailable implements the [type3conv.Strategy] interface.
// Library lookups have no runtime prerequisites; a disabled or missing
// library is reported by Convert.
func (s *Strategy) IsAvailable() bool {
	return true
}

// Supports implements the [type3conv.Strategy] interface.
func (s *Strategy) Supports(req *type3conv.Request, gc *type3conv.GlyphContext) (bool, error) {
	return base.Supports(req, gc)
}

// Convert implements the [type3conv.Strategy] interface.
func (s *Strategy) Convert(req *type3conv.Request, _ *type3conv.GlyphContext) (*type3conv.Candidate, error) {
	if !s.Enabled {
		return base.NewCandidate(type3conv.Skipped, "library matching disabled"), nil
	}
	idx := s.Store.Index()
	if idx == nil {
		return base.NewCandidate(type3conv.Skipped, "library not loaded"), nil
	}

	fp := signature.Compute(req.Font)
	log := s.logger().WithFields(logrus.Fields{
		"font":        req.FontID,
		"fingerprint": fp,
	})

	m := idx.MatchFingerprint(fp, req.FontUID)
	if m == nil {
		log.Debug("no library match")
		return base.NewCandidate(type3conv.Unsupported,
			"no library entry for "+fp), nil
	}

	e := m.Entry
	log = log.WithFields(logrus.Fields{"entry": e.Label, "match": m.Kind})
	if !e.HasPayload() {
		log.Warn("library entry has no font data")
		return base.NewCandidate(type3conv.Failure,
			fmt.Sprintf("library entry %q has no font data", e.Label)), nil
	}

	log.Info("library match")
	c := base.NewCandidate(type3conv.Success,
		fmt.Sprintf("matched library entry %q (%s)", e.Label, m.Kind))
	c.Native = nonEmpty(e.Native)
	c.Web = nonEmpty(e.Web)
	c.PDF = nonEmpty(e.PDF)
	c.Coverage = slices.Clone(e.Coverage)
	return c, nil
}

func (s *Strategy) logger() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}

func nonEmpty(p *type3conv.Payload) *type3conv.Payload {
	if p.IsEmpty() {
		return nil
	}
	return p
}
