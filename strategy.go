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

// Strategy is one way of converting a Type 3 font into a font program.
//
// The Synthesizer drives every strategy through the same steps:
//
//   - If IsAvailable returns false, the outcome is [Skipped].
//   - If Supports returns false or an error, the outcome is [Unsupported].
//   - If Convert returns an error or a nil candidate, the outcome is [Failure].
//   - Otherwise the candidate returned by Convert is used as it is.
type Strategy interface {
	// ID returns a short, stable identifier for the strategy.
	ID() string

	// Label returns a human-readable name for the strategy.
	Label() string

	// IsAvailable reports whether the runtime prerequisites of the strategy
	// are met.  Strategies which cannot tell must return false.
	IsAvailable() bool

	// Supports is a fast check which rejects fonts the strategy cannot
	// handle, before any real work is done.
	Supports(req *Request, gc *GlyphContext) (bool, error)

	// Convert performs the conversion.  A strategy which cannot produce a
	// candidate must return an error.
	Convert(req *Request, gc *GlyphContext) (*Candidate, error)
}

// Base can be embedded into strategy implementations.  It provides the
// ID and Label methods, and the default Supports check.
type Base struct {
	StrategyID    string
	StrategyLabel string
}

// ID implements the [Strategy] interface.
func (b Base) ID() string {
	return b.StrategyID
}

// Label implements the [Strategy] interface.
func (b Base) Label() string {
	return b.StrategyLabel
}

// Supports implements the [Strategy] interface.
// It returns true whenever the request has a font.
func (b Base) Supports(req *Request, _ *GlyphContext) (bool, error) {
	return req != nil && req.Font != nil, nil
}

// NewCandidate returns a candidate which is tagged with the strategy's
// ID and label.
func (b Base) NewCandidate(status Status, msg string) *Candidate {
	return &Candidate{
		StrategyID:    b.StrategyID,
		StrategyLabel: b.StrategyLabel,
		Status:        status,
		Message:       msg,
	}
}
