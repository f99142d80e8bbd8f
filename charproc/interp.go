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

package charproc

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/type3conv"
)

// Interpret runs the content stream of one glyph and returns the painted
// outline, in glyph space units.
//
// The code is stored in the result unchanged.  If width is NaN, the advance
// width is taken from the d0 or d1 operator.  The glyph bounding box is taken
// from d1 if present, and is computed from the painted path otherwise.
//
// Only the path construction and path painting operators contribute to the
// outline.  Operators which paint images, shadings, XObjects or text are
// recorded in the HasImage field.
func Interpret(name string, data []byte, code int, width float64) (*type3conv.GlyphOutline, error) {
	ip := &interpreter{
		ctm: matrix.Matrix{1, 0, 0, 1, 0, 0},
		g: &type3conv.GlyphOutline{
			Name: name,
			Code: code,
		},
	}

	s := NewScanner(data)
	for op, args := range s.All() {
		ip.do(op, args)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	g := ip.g
	if math.IsNaN(width) || math.IsInf(width, 0) {
		width = ip.wx
	}
	g.Width = width
	if ip.bbox != nil {
		g.BBox = *ip.bbox
	} else {
		g.BBox = pathBBox(g.Path)
	}
	return g, nil
}

type interpreter struct {
	g *type3conv.GlyphOutline

	ctm   matrix.Matrix
	stack []matrix.Matrix

	// wx and bbox are set by the d0 and d1 operators.
	wx       float64
	bbox     *rect.Rect
	d0       bool
	setWidth bool

	path         []type3conv.Segment
	current      vec.Vec2
	subpathStart vec.Vec2
	hasCurrent   bool
}

func (ip *interpreter) do(op string, args []Object) {
	switch op {
	case "d0":
		if nums, ok := numbers(args, 2); ok && !ip.setWidth {
			ip.wx = nums[0]
			ip.d0 = true
			ip.setWidth = true
		}
	case "d1":
		if nums, ok := numbers(args, 6); ok && !ip.setWidth {
			ip.wx = nums[0]
			ip.bbox = normalize(nums[2], nums[3], nums[4], nums[5])
			ip.setWidth = true
		}

	case "q":
		ip.stack = append(ip.stack, ip.ctm)
	case "Q":
		if n := len(ip.stack); n > 0 {
			ip.ctm = ip.stack[n-1]
			ip.stack = ip.stack[:n-1]
		}
	case "cm":
		if nums, ok := numbers(args, 6); ok {
			var m matrix.Matrix
			copy(m[:], nums)
			ip.ctm = concat(m, ip.ctm)
		}

	case "m":
		if nums, ok := numbers(args, 2); ok {
			p := ip.apply(nums[0], nums[1])
			ip.path = append(ip.path, type3conv.Segment{Op: type3conv.MoveTo, P: [3]vec.Vec2{p}})
			ip.current = p
			ip.subpathStart = p
			ip.hasCurrent = true
		}
	case "l":
		if nums, ok := numbers(args, 2); ok && ip.hasCurrent {
			p := ip.apply(nums[0], nums[1])
			ip.path = append(ip.path, type3conv.Segment{Op: type3conv.LineTo, P: [3]vec.Vec2{p}})
			ip.current = p
		}
	case "c":
		if nums, ok := numbers(args, 6); ok && ip.hasCurrent {
			ip.curveTo(ip.apply(nums[0], nums[1]), ip.apply(nums[2], nums[3]), ip.apply(nums[4], nums[5]))
		}
	case "v":
		if nums, ok := numbers(args, 4); ok && ip.hasCurrent {
			ip.curveTo(ip.current, ip.apply(nums[0], nums[1]), ip.apply(nums[2], nums[3]))
		}
	case "y":
		if nums, ok := numbers(args, 4); ok && ip.hasCurrent {
			p3 := ip.apply(nums[2], nums[3])
			ip.curveTo(ip.apply(nums[0], nums[1]), p3, p3)
		}
	case "h":
		ip.closePath()
	case "re":
		if nums, ok := numbers(args, 4); ok {
			x, y, w, h := nums[0], nums[1], nums[2], nums[3]
			p := ip.apply(x, y)
			ip.path = append(ip.path,
				type3conv.Segment{Op: type3conv.MoveTo, P: [3]vec.Vec2{p}},
				type3conv.Segment{Op: type3conv.LineTo, P: [3]vec.Vec2{ip.apply(x+w, y)}},
				type3conv.Segment{Op: type3conv.LineTo, P: [3]vec.Vec2{ip.apply(x+w, y+h)}},
				type3conv.Segment{Op: type3conv.LineTo, P: [3]vec.Vec2{ip.apply(x, y+h)}},
				type3conv.Segment{Op: type3conv.Close},
			)
			ip.current = p
			ip.subpathStart = p
			ip.hasCurrent = true
		}

	case "f", "F":
		ip.fill(false)
	case "f*":
		ip.fill(true)
	case "B":
		ip.g.Stroked = true
		ip.fill(false)
	case "B*":
		ip.g.Stroked = true
		ip.fill(true)
	case "b":
		ip.closePath()
		ip.g.Stroked = true
		ip.fill(false)
	case "b*":
		ip.closePath()
		ip.g.Stroked = true
		ip.fill(true)
	case "S", "s":
		if len(ip.path) > 0 {
			ip.g.Stroked = true
		}
		ip.endPath()
	case "n":
		ip.endPath()
	case "W", "W*":
		// Clipping paths are ignored.  The path is consumed by the
		// following painting operator.

	case "CS", "cs", "SC", "SCN", "sc", "scn", "G", "g", "RG", "rg", "K", "k":
		// Colour operators are ignored in uncoloured glyphs.
		if ip.d0 {
			ip.g.Colored = true
		}

	case "BI", "Do", "sh", "Tj", "TJ", "'", "\"":
		ip.g.HasImage = true
	}
}

func (ip *interpreter) apply(x, y float64) vec.Vec2 {
	m := ip.ctm
	return vec.Vec2{
		X: m[0]*x + m[2]*y + m[4],
		Y: m[1]*x + m[3]*y + m[5],
	}
}

func (ip *interpreter) curveTo(p1, p2, p3 vec.Vec2) {
	ip.path = append(ip.path, type3conv.Segment{
		Op: type3conv.CurveTo,
		P:  [3]vec.Vec2{p1, p2, p3},
	})
	ip.current = p3
}

func (ip *interpreter) closePath() {
	if !ip.hasCurrent {
		return
	}
	if n := len(ip.path); n > 0 && ip.path[n-1].Op == type3conv.Close {
		return
	}
	ip.path = append(ip.path, type3conv.Segment{Op: type3conv.Close})
	ip.current = ip.subpathStart
}

func (ip *interpreter) fill(evenOdd bool) {
	if len(ip.path) > 0 {
		ip.g.Path = append(ip.g.Path, ip.path...)
		if evenOdd {
			ip.g.EvenOdd = true
		}
	}
	ip.endPath()
}

func (ip *interpreter) endPath() {
	ip.path = ip.path[:0]
	ip.hasCurrent = false
}

// concat returns the matrix which first applies m1 and then m2.
func concat(m1, m2 matrix.Matrix) matrix.Matrix {
	return matrix.Matrix{
		m1[0]*m2[0] + m1[1]*m2[2],
		m1[0]*m2[1] + m1[1]*m2[3],
		m1[2]*m2[0] + m1[3]*m2[2],
		m1[2]*m2[1] + m1[3]*m2[3],
		m1[4]*m2[0] + m1[5]*m2[2] + m2[4],
		m1[4]*m2[1] + m1[5]*m2[3] + m2[5],
	}
}

// numbers returns the last n operands as numbers.
func numbers(args []Object, n int) ([]float64, bool) {
	if len(args) < n {
		return nil, false
	}
	res := make([]float64, n)
	for i, arg := range args[len(args)-n:] {
		x, ok := arg.(float64)
		if !ok || math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, false
		}
		res[i] = x
	}
	return res, true
}

func normalize(x1, y1, x2, y2 float64) *rect.Rect {
	return &rect.Rect{
		LLx: min(x1, x2),
		LLy: min(y1, y2),
		URx: max(x1, x2),
		URy: max(y1, y2),
	}
}

// pathBBox returns the bounding box of all points of the path,
// including control points.
func pathBBox(path []type3conv.Segment) rect.Rect {
	var res rect.Rect
	first := true
	for _, seg := range path {
		var pts []vec.Vec2
		switch seg.Op {
		case type3conv.MoveTo, type3conv.LineTo:
			pts = seg.P[:1]
		case type3conv.CurveTo:
			pts = seg.P[:]
		}
		for _, p := range pts {
			if first {
				res = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
				first = false
				continue
			}
			res.LLx = min(res.LLx, p.X)
			res.LLy = min(res.LLy, p.Y)
			res.URx = max(res.URx, p.X)
			res.URy = max(res.URy, p.Y)
		}
	}
	return res
}
