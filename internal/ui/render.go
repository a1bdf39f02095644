package ui

import (
	"image/color"
	"log"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"tradeboard/internal/board"
	"tradeboard/internal/geom"
)

var (
	boardBackground = color.NRGBA{R: 245, G: 246, B: 248, A: 255}
	gridColor       = color.NRGBA{R: 215, G: 218, B: 224, A: 120}
	selectionColor  = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
)

// baseGridSpacing is the grid interval in world units before the spacing is
// adapted to the zoom level.
const baseGridSpacing = 50.0

// renderElement projects one element through the view transform into canvas
// objects. Stroke widths stay in screen pixels so lines keep their visual
// thickness at every zoom; text scales with the content.
func renderElement(el *board.Element, view geom.Transform) []fyne.CanvasObject {
	switch el.Type {
	case board.TypePencil:
		return renderStroke(el.Points, view, parseColor(el.Color), float32(el.Size))
	case board.TypeEraser:
		// Erase is just drawing in the background color: rebuilding the
		// layer in z-order can re-cover "erased" pixels, which is the
		// intended behavior, not a bug.
		return renderStroke(el.Points, view, boardBackground, float32(el.Size))
	case board.TypeLine:
		return []fyne.CanvasObject{segment(view, el.Start, el.End, parseColor(el.Color), float32(el.Size))}
	case board.TypeArrow:
		return renderArrow(el, view)
	case board.TypeRectangle:
		return []fyne.CanvasObject{renderRectangle(el, view)}
	case board.TypeCircle:
		return []fyne.CanvasObject{renderCircle(el, view)}
	case board.TypeText:
		return []fyne.CanvasObject{renderText(el, view)}
	default:
		return nil
	}
}

func renderStroke(points []geom.Point, view geom.Transform, col color.Color, width float32) []fyne.CanvasObject {
	if len(points) < 2 {
		return nil
	}
	objects := make([]fyne.CanvasObject, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		objects = append(objects, segment(view, points[i-1], points[i], col, width))
	}
	return objects
}

func segment(view geom.Transform, a, b geom.Point, col color.Color, width float32) *canvas.Line {
	sa, sb := view.WorldToScreen(a), view.WorldToScreen(b)
	line := canvas.NewLine(col)
	line.StrokeWidth = width
	line.Position1 = fyne.NewPos(float32(sa.X), float32(sa.Y))
	line.Position2 = fyne.NewPos(float32(sb.X), float32(sb.Y))
	return line
}

// renderArrow draws the shaft plus a V head angled off the shaft direction.
func renderArrow(el *board.Element, view geom.Transform) []fyne.CanvasObject {
	col := parseColor(el.Color)
	width := float32(el.Size)
	shaft := segment(view, el.Start, el.End, col, width)

	tip := view.WorldToScreen(el.End)
	tail := view.WorldToScreen(el.Start)
	angle := math.Atan2(tip.Y-tail.Y, tip.X-tail.X)
	headLen := math.Max(12, el.Size*3)
	const headSpread = math.Pi / 6

	objects := []fyne.CanvasObject{shaft}
	for _, da := range []float64{headSpread, -headSpread} {
		wing := canvas.NewLine(col)
		wing.StrokeWidth = width
		wing.Position1 = fyne.NewPos(float32(tip.X), float32(tip.Y))
		wing.Position2 = fyne.NewPos(
			float32(tip.X-headLen*math.Cos(angle-da)),
			float32(tip.Y-headLen*math.Sin(angle-da)),
		)
		objects = append(objects, wing)
	}
	return objects
}

func renderRectangle(el *board.Element, view geom.Transform) fyne.CanvasObject {
	b := el.Bounds()
	min := view.WorldToScreen(geom.Point{X: b.MinX, Y: b.MinY})
	rect := canvas.NewRectangle(color.Transparent)
	rect.StrokeColor = parseColor(el.Color)
	rect.StrokeWidth = float32(el.Size)
	rect.Move(fyne.NewPos(float32(min.X), float32(min.Y)))
	rect.Resize(fyne.NewSize(float32(b.Width()*view.Scale), float32(b.Height()*view.Scale)))
	return rect
}

func renderCircle(el *board.Element, view geom.Transform) fyne.CanvasObject {
	b := el.Bounds()
	min := view.WorldToScreen(geom.Point{X: b.MinX, Y: b.MinY})
	max := view.WorldToScreen(geom.Point{X: b.MaxX, Y: b.MaxY})
	circle := canvas.NewCircle(color.Transparent)
	circle.StrokeColor = parseColor(el.Color)
	circle.StrokeWidth = float32(el.Size)
	circle.Position1 = fyne.NewPos(float32(min.X), float32(min.Y))
	circle.Position2 = fyne.NewPos(float32(max.X), float32(max.Y))
	return circle
}

func renderText(el *board.Element, view geom.Transform) fyne.CanvasObject {
	anchor := view.WorldToScreen(el.Start)
	text := canvas.NewText(el.Text, parseColor(el.Color))
	text.TextSize = float32(el.FontSize * view.Scale)
	text.Move(fyne.NewPos(float32(anchor.X), float32(anchor.Y)))
	return text
}

// renderGrid emits grid lines covering the visible viewport. The world
// spacing doubles or halves with zoom so the on-screen density stays in a
// readable band at any scale.
func renderGrid(view geom.Transform, viewportW, viewportH float64) []fyne.CanvasObject {
	if viewportW <= 0 || viewportH <= 0 {
		return nil
	}
	spacing := baseGridSpacing
	for spacing*view.Scale < 30 {
		spacing *= 2
	}
	for spacing*view.Scale > 120 {
		spacing /= 2
	}

	topLeft := view.ScreenToWorld(geom.Point{})
	bottomRight := view.ScreenToWorld(geom.Point{X: viewportW, Y: viewportH})

	var lines []fyne.CanvasObject
	for x := math.Floor(topLeft.X/spacing) * spacing; x <= bottomRight.X; x += spacing {
		sx := float32(view.WorldToScreen(geom.Point{X: x}).X)
		line := canvas.NewLine(gridColor)
		line.StrokeWidth = 1
		line.Position1 = fyne.NewPos(sx, 0)
		line.Position2 = fyne.NewPos(sx, float32(viewportH))
		lines = append(lines, line)
	}
	for y := math.Floor(topLeft.Y/spacing) * spacing; y <= bottomRight.Y; y += spacing {
		sy := float32(view.WorldToScreen(geom.Point{Y: y}).Y)
		line := canvas.NewLine(gridColor)
		line.StrokeWidth = 1
		line.Position1 = fyne.NewPos(0, sy)
		line.Position2 = fyne.NewPos(float32(viewportW), sy)
		lines = append(lines, line)
	}
	return lines
}

// renderSelection draws the selection bounding box and its corner handles
// on the active surface.
func renderSelection(bounds geom.Rect, view geom.Transform) []fyne.CanvasObject {
	min := view.WorldToScreen(geom.Point{X: bounds.MinX, Y: bounds.MinY})
	max := view.WorldToScreen(geom.Point{X: bounds.MaxX, Y: bounds.MaxY})

	box := canvas.NewRectangle(color.Transparent)
	box.StrokeColor = selectionColor
	box.StrokeWidth = 1
	box.Move(fyne.NewPos(float32(min.X), float32(min.Y)))
	box.Resize(fyne.NewSize(float32(max.X-min.X), float32(max.Y-min.Y)))

	objects := []fyne.CanvasObject{box}
	const handle = 8
	for _, corner := range []geom.Point{
		{X: min.X, Y: min.Y}, {X: max.X, Y: min.Y},
		{X: min.X, Y: max.Y}, {X: max.X, Y: max.Y},
	} {
		h := canvas.NewRectangle(selectionColor)
		h.Move(fyne.NewPos(float32(corner.X)-handle/2, float32(corner.Y)-handle/2))
		h.Resize(fyne.NewSize(handle, handle))
		objects = append(objects, h)
	}
	return objects
}

// parseColor understands #rgb and #rrggbb plus the palette names the
// toolbar uses. Unknown values render black, with one log line.
func parseColor(s string) color.Color {
	switch s {
	case "", "black":
		return color.Black
	case "white":
		return color.White
	case "red":
		return color.NRGBA{R: 220, G: 60, B: 60, A: 255}
	case "green":
		return color.NRGBA{R: 60, G: 160, B: 90, A: 255}
	case "blue":
		return color.NRGBA{R: 60, G: 100, B: 220, A: 255}
	}
	if len(s) == 4 && s[0] == '#' {
		r, okR := hexNibble(s[1])
		g, okG := hexNibble(s[2])
		b, okB := hexNibble(s[3])
		if okR && okG && okB {
			return color.NRGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}
		}
	}
	if len(s) == 7 && s[0] == '#' {
		var out [3]uint8
		ok := true
		for i := 0; i < 3; i++ {
			hi, okH := hexNibble(s[1+i*2])
			lo, okL := hexNibble(s[2+i*2])
			ok = ok && okH && okL
			out[i] = hi<<4 | lo
		}
		if ok {
			return color.NRGBA{R: out[0], G: out[1], B: out[2], A: 255}
		}
	}
	log.Printf("ui: unknown color %q, rendering black", s)
	return color.Black
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
