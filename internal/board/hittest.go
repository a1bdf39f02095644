package board

import (
	"math"

	"tradeboard/internal/geom"
)

// HitTest returns the topmost element within threshold world units of p, or
// nil. Elements are tested in reverse z-order so overlapping elements
// resolve to the one drawn last. A coarse bounds-plus-threshold rejection
// runs before the per-type test to keep large documents cheap.
func HitTest(p geom.Point, elements []*Element, threshold float64) *Element {
	for i := len(elements) - 1; i >= 0; i-- {
		e := elements[i]
		if !e.Bounds().Expand(threshold).Contains(p) {
			continue
		}
		if hitElement(p, e, threshold) {
			return e
		}
	}
	return nil
}

func hitElement(p geom.Point, e *Element, threshold float64) bool {
	switch e.Type {
	case TypePencil, TypeEraser:
		// Vertex distance only, not full segments. Freehand strokes sample
		// densely enough that this cheap test is indistinguishable in use.
		for _, v := range e.Points {
			if math.Hypot(p.X-v.X, p.Y-v.Y) <= threshold {
				return true
			}
		}
		return false
	case TypeLine, TypeArrow:
		return geom.PointSegmentDistance(p, e.Start, e.End) <= threshold
	case TypeRectangle, TypeText:
		return e.Bounds().Contains(p)
	case TypeCircle:
		// The ellipse is approximated by a circle of its larger semi-axis; a
		// hit is a point near that ring.
		b := e.Bounds()
		cx, cy := (b.MinX+b.MaxX)/2, (b.MinY+b.MaxY)/2
		radius := math.Max(b.Width(), b.Height()) / 2
		dist := math.Hypot(p.X-cx, p.Y-cy)
		return math.Abs(dist-radius) <= threshold
	default:
		return false
	}
}
