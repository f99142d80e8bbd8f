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

import "fmt"

// Status describes the outcome of one conversion strategy.
type Status int

// These are the possible outcomes of a conversion attempt.
const (
	// Success indicates that the strategy produced a font program.
	Success Status = iota + 1

	// Failure indicates that the strategy attempted the conversion
	// and did not complete it.
	Failure

	// Unsupported indicates that the strategy does not handle fonts of
	// this shape.  This is an expected outcome, not an error.
	Unsupported

	// Skipped indicates that the environment lacks a prerequisite of the
	// strategy, so that no attempt was made.
	Skipped
)

func (s Status) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case Failure:
		return "FAILURE"
	case Unsupported:
		return "UNSUPPORTED"
	case Skipped:
		return "SKIPPED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}
