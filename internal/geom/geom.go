// Package geom holds the pure geometry used by the board engine: the
// world/screen coordinate transform, bounding boxes and hit-testing.
// Everything here is stateless and float64; the UI layer converts to
// fyne's float32 at the boundary.
package geom

import "math"

// Point is a position in world space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box in world space.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the box.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Contains reports whether p lies inside the box (inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Expand grows the box by d world units on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Transform maps world coordinates to screen pixels:
//
//	screen = world*Scale + Offset
//
// It is owned by the engine; pan mutates Offset, zoom mutates both so the
// point under the cursor stays fixed.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Identity returns the transform with scale 1 and no offset.
func Identity() Transform { return Transform{Scale: 1} }

// WorldToScreen projects a world point into screen pixels.
func (t Transform) WorldToScreen(p Point) Point {
	return Point{X: p.X*t.Scale + t.OffsetX, Y: p.Y*t.Scale + t.OffsetY}
}

// ScreenToWorld inverts WorldToScreen.
func (t Transform) ScreenToWorld(p Point) Point {
	return Point{X: (p.X - t.OffsetX) / t.Scale, Y: (p.Y - t.OffsetY) / t.Scale}
}

// ZoomAt rescales the transform to newScale, anchored at the given screen
// position: the world point under screenAt maps to the same screen position
// before and after. The caller clamps newScale.
func (t Transform) ZoomAt(screenAt Point, newScale float64) Transform {
	world := t.ScreenToWorld(screenAt)
	return Transform{
		Scale:   newScale,
		OffsetX: screenAt.X - world.X*newScale,
		OffsetY: screenAt.Y - world.Y*newScale,
	}
}

// Pan shifts the transform offset by a screen-pixel delta.
func (t Transform) Pan(dx, dy float64) Transform {
	t.OffsetX += dx
	t.OffsetY += dy
	return t
}

// PointSegmentDistance returns the distance from p to the segment ab,
// clamping the projection to the segment ends.
func PointSegmentDistance(p, a, b Point) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	apx, apy := p.X-a.X, p.Y-a.Y
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return math.Hypot(apx, apy)
	}
	u := (apx*abx + apy*aby) / lenSq
	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}
	return math.Hypot(p.X-(a.X+u*abx), p.Y-(a.Y+u*aby))
}
