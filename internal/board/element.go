// Package board implements the whiteboard engine: the element model, the
// document and its history, and the interaction state machine that turns
// pointer and keyboard events into document mutations.
package board

import (
	"github.com/google/uuid"

	"tradeboard/internal/geom"
)

// ElementType identifies one variant of the element union.
type ElementType int

const (
	TypePencil ElementType = iota
	TypeEraser
	TypeLine
	TypeArrow
	TypeRectangle
	TypeCircle
	TypeText
)

func (t ElementType) String() string {
	switch t {
	case TypePencil:
		return "pencil"
	case TypeEraser:
		return "eraser"
	case TypeLine:
		return "line"
	case TypeArrow:
		return "arrow"
	case TypeRectangle:
		return "rectangle"
	case TypeCircle:
		return "circle"
	case TypeText:
		return "text"
	default:
		return "unknown"
	}
}

// elementTypeFromTag is the inverse of String, used when decoding persisted
// documents. Unknown tags report false.
func elementTypeFromTag(tag string) (ElementType, bool) {
	switch tag {
	case "pencil":
		return TypePencil, true
	case "eraser":
		return TypeEraser, true
	case "line":
		return TypeLine, true
	case "arrow":
		return TypeArrow, true
	case "rectangle":
		return TypeRectangle, true
	case "circle":
		return TypeCircle, true
	case "text":
		return TypeText, true
	}
	return 0, false
}

// IsPath reports whether the variant carries a point sequence.
func (t ElementType) IsPath() bool { return t == TypePencil || t == TypeEraser }

// IsShape reports whether the variant is defined by two corner points.
func (t ElementType) IsShape() bool {
	return t == TypeLine || t == TypeArrow || t == TypeRectangle || t == TypeCircle
}

// Element is one drawable item on the board. It is a tagged union: path
// variants use Points, two-point shapes use Start/End, text uses Start as
// its anchor plus the font fields. All coordinates are world space; Size is
// the stroke width in screen pixels (pre-scale).
type Element struct {
	ID    string      `json:"id"`
	Type  ElementType `json:"-"`
	Color string      `json:"color"`
	Size  float64     `json:"size"`

	Points []geom.Point `json:"points,omitempty"`

	Start geom.Point `json:"start"`
	End   geom.Point `json:"end,omitempty"`

	Text     string  `json:"text,omitempty"`
	FontName string  `json:"fontName,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
}

// NewElement returns an element of the given type with a fresh id.
func NewElement(t ElementType, color string, size float64) *Element {
	return &Element{ID: uuid.NewString(), Type: t, Color: color, Size: size}
}

// Clone returns a deep copy of the element.
func (e *Element) Clone() *Element {
	dup := *e
	if e.Points != nil {
		dup.Points = make([]geom.Point, len(e.Points))
		copy(dup.Points, e.Points)
	}
	return &dup
}

// Translate moves the element by a world-space delta.
func (e *Element) Translate(dx, dy float64) {
	for i := range e.Points {
		e.Points[i].X += dx
		e.Points[i].Y += dy
	}
	e.Start.X += dx
	e.Start.Y += dy
	e.End.X += dx
	e.End.Y += dy
}

// charWidthFactor approximates average glyph advance as a fraction of the
// font size. Text bounds use character count times this heuristic, not real
// text metrics; the box is knowingly wrong for proportional fonts.
const charWidthFactor = 0.6

// Bounds returns the world-space bounding box of the element.
func (e *Element) Bounds() geom.Rect {
	switch e.Type {
	case TypePencil, TypeEraser:
		if len(e.Points) == 0 {
			return geom.Rect{MinX: e.Start.X, MinY: e.Start.Y, MaxX: e.Start.X, MaxY: e.Start.Y}
		}
		r := geom.Rect{MinX: e.Points[0].X, MinY: e.Points[0].Y, MaxX: e.Points[0].X, MaxY: e.Points[0].Y}
		for _, p := range e.Points[1:] {
			if p.X < r.MinX {
				r.MinX = p.X
			}
			if p.X > r.MaxX {
				r.MaxX = p.X
			}
			if p.Y < r.MinY {
				r.MinY = p.Y
			}
			if p.Y > r.MaxY {
				r.MaxY = p.Y
			}
		}
		return r
	case TypeText:
		w := float64(len(e.Text)) * e.FontSize * charWidthFactor
		return geom.Rect{MinX: e.Start.X, MinY: e.Start.Y, MaxX: e.Start.X + w, MaxY: e.Start.Y + e.FontSize}
	default:
		r := geom.Rect{MinX: e.Start.X, MinY: e.Start.Y, MaxX: e.End.X, MaxY: e.End.Y}
		if r.MinX > r.MaxX {
			r.MinX, r.MaxX = r.MaxX, r.MinX
		}
		if r.MinY > r.MaxY {
			r.MinY, r.MaxY = r.MaxY, r.MinY
		}
		return r
	}
}
