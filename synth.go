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

	"github.com/sirupsen/logrus"
)

// Options control the behaviour of a [Synthesizer].
type Options struct {
	// Extractor is used to obtain glyph outlines for strategies which
	// need them.
	Extractor Extractor

	// Logger receives diagnostics.
	// If this is nil, the logrus standard logger is used.
	Logger logrus.FieldLogger
}

// Synthesizer runs a fixed, ordered list of strategies against Type 3 fonts.
//
// A Synthesizer is safe for concurrent use by multiple goroutines, provided
// that the strategies are.  Each call to Synthesize works on its own
// [GlyphContext].
type Synthesizer struct {
	strategies []Strategy
	ext        Extractor
	log        logrus.FieldLogger
}

// New returns a Synthesizer which runs the given strategies, in the given
// order.  Nil entries in the list are ignored.
func New(strategies []Strategy, opt *Options) *Synthesizer {
	if opt == nil {
		opt = &Options{}
	}
	s := &Synthesizer{
		ext: opt.Extractor,
		log: opt.Logger,
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	for _, st := range strategies {
		if st != nil {
			s.strategies = append(s.strategies, st)
		}
	}
	return s
}

// Strategies returns the registered strategies, in priority order.
func (s *Synthesizer) Strategies() []Strategy {
	return append([]Strategy(nil), s.strategies...)
}

// Synthesize runs all strategies against the font of req and returns one
// candidate per strategy, in registration order.
//
// Synthesize never fails.  If req or req.Font is nil, or if no strategies
// are registered, the result is empty.
func (s *Synthesizer) Synthesize(req *Request) []*Candidate {
	res := []*Candidate{}
	if req == nil || req.Font == nil {
		return res
	}

	log := s.log.WithFields(logrus.Fields{
		"font": req.FontID,
		"page": req.Page,
	})
	if len(s.strategies) == 0 {
		log.Warn("no conversion strategies registered")
		return res
	}

	gc := s.lazyContext(req)
	for _, st := range s.strategies {
		c := s.run(st, req, gc, log.WithField("strategy", st.ID()))
		if c.StrategyID == "" {
			c.StrategyID = st.ID()
		}
		if c.StrategyLabel == "" {
			c.StrategyLabel = st.Label()
		}
		res = append(res, c)
	}
	return res
}

// lazyContext returns a function which creates the glyph context for req
// on its first call and returns the same context on later calls.
func (s *Synthesizer) lazyContext(req *Request) func() *GlyphContext {
	var gc *GlyphContext
	return func() *GlyphContext {
		if gc == nil {
			gc = NewGlyphContext(req, s.ext)
		}
		return gc
	}
}

func (s *Synthesizer) run(st Strategy, req *Request, getContext func() *GlyphContext, log logrus.FieldLogger) *Candidate {
	base := Base{StrategyID: st.ID(), StrategyLabel: st.Label()}

	if !isAvailable(st) {
		log.Debug("strategy not available")
		return base.NewCandidate(Skipped, "strategy not available")
	}
	gc := getContext()

	ok, err := supports(st, req, gc)
	if err != nil {
		log.WithError(err).Debug("support check failed")
		return base.NewCandidate(Unsupported, "support check failed: "+err.Error())
	} else if !ok {
		log.Debug("font not supported")
		return base.NewCandidate(Unsupported, "font not supported by this strategy")
	}

	c, err := convert(st, req, gc)
	if err != nil {
		log.WithError(err).Warn("conversion failed")
		return base.NewCandidate(Failure, "conversion failed: "+err.Error())
	} else if c == nil {
		log.Warn("strategy returned no result")
		return base.NewCandidate(Failure, "strategy returned no result")
	}

	log.WithField("status", c.Status).Debug("conversion finished")
	return c
}

func isAvailable(st Strategy) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return st.IsAvailable()
}

func supports(st Strategy, req *Request, gc *GlyphContext) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("panic: %v", r)
		}
	}()
	return st.Supports(req, gc)
}

func convert(st Strategy, req *Request, gc *GlyphContext) (c *Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return st.Convert(req, gc)
}
