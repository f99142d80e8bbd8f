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
	"image"

	"golang.org/x/image/vector"

	"seehuhn.de/go/type3conv"
)

// Rasterize renders the filled outline of g into a size×size image.
//
// The glyph bounding box is scaled to fit the image, keeping the aspect
// ratio.  Paths are filled using the non-zero winding rule, also for glyphs
// with the EvenOdd flag set.  Glyphs with an empty bounding box give a blank
// image.
func Rasterize(g *type3conv.GlyphOutline, size int) *image.Alpha {
	if size <= 0 {
		size = 1
	}
	img := image.NewAlpha(image.Rect(0, 0, size, size))
	if g == nil || len(g.Path) == 0 {
		return img
	}

	bbox := g.BBox
	w := bbox.URx - bbox.LLx
	h := bbox.URy - bbox.LLy
	if w <= 0 || h <= 0 {
		bbox = pathBBox(g.Path)
		w = bbox.URx - bbox.LLx
		h = bbox.URy - bbox.LLy
	}
	if w <= 0 && h <= 0 {
		return img
	}
	scale := float64(size) / max(w, h)
	dx := (float64(size) - w*scale) / 2
	dy := (float64(size) - h*scale) / 2

	// device coordinates have the y-axis pointing down
	tr := func(x, y float64) (float32, float32) {
		return float32((x-bbox.LLx)*scale + dx),
			float32(float64(size) - ((y-bbox.LLy)*scale + dy))
	}

	z := vector.NewRasterizer(size, size)
	open := false
	for _, seg := range g.Path {
		switch seg.Op {
		case type3conv.MoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(tr(seg.P[0].X, seg.P[0].Y))
			open = true
		case type3conv.LineTo:
			z.LineTo(tr(seg.P[0].X, seg.P[0].Y))
		case type3conv.CurveTo:
			x1, y1 := tr(seg.P[0].X, seg.P[0].Y)
			x2, y2 := tr(seg.P[1].X, seg.P[1].Y)
			x3, y3 := tr(seg.P[2].X, seg.P[2].Y)
			z.CubeTo(x1, y1, x2, y2, x3, y3)
		case type3conv.Close:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}
	z.Draw(img, img.Bounds(), image.Opaque, image.Point{})
	return img
}
