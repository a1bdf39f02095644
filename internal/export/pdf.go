// Package export renders a board document into a PDF page via gofpdf.
package export

import (
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"

	"tradeboard/internal/board"
	"tradeboard/internal/geom"
)

const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
	marginMM     = 10.0
)

// PDF writes the document to an A4 page at path, scaled and centered so the
// whole drawing fits inside the margins. Eraser strokes are skipped: on
// paper there is no background to erase through.
func PDF(path string, doc *board.Document) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	p.SetFont("Helvetica", "", 12)

	fit := fitTransform(doc)
	for _, el := range doc.Elements() {
		drawElement(p, el, fit)
	}
	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// fitTransform maps world coordinates onto the printable page area,
// preserving aspect ratio.
func fitTransform(doc *board.Document) geom.Transform {
	bounds, ok := doc.Bounds()
	if !ok || (bounds.Width() == 0 && bounds.Height() == 0) {
		return geom.Identity()
	}
	usableW := pageWidthMM - 2*marginMM
	usableH := pageHeightMM - 2*marginMM
	scale := 1.0
	if bounds.Width() > 0 {
		scale = usableW / bounds.Width()
	}
	if bounds.Height() > 0 {
		scale = math.Min(scale, usableH/bounds.Height())
	}
	return geom.Transform{
		Scale:   scale,
		OffsetX: marginMM - bounds.MinX*scale,
		OffsetY: marginMM - bounds.MinY*scale,
	}
}

func drawElement(p *gofpdf.Fpdf, el *board.Element, fit geom.Transform) {
	r, g, b := pdfColor(el.Color)
	p.SetDrawColor(r, g, b)
	p.SetTextColor(r, g, b)
	p.SetLineWidth(math.Max(el.Size*fit.Scale*0.3, 0.2))

	switch el.Type {
	case board.TypePencil:
		for i := 1; i < len(el.Points); i++ {
			a := fit.WorldToScreen(el.Points[i-1])
			c := fit.WorldToScreen(el.Points[i])
			p.Line(a.X, a.Y, c.X, c.Y)
		}
	case board.TypeEraser:
		// skipped
	case board.TypeLine:
		a, c := fit.WorldToScreen(el.Start), fit.WorldToScreen(el.End)
		p.Line(a.X, a.Y, c.X, c.Y)
	case board.TypeArrow:
		a, c := fit.WorldToScreen(el.Start), fit.WorldToScreen(el.End)
		p.Line(a.X, a.Y, c.X, c.Y)
		drawArrowHead(p, a, c)
	case board.TypeRectangle:
		bounds := el.Bounds()
		min := fit.WorldToScreen(geom.Point{X: bounds.MinX, Y: bounds.MinY})
		p.Rect(min.X, min.Y, bounds.Width()*fit.Scale, bounds.Height()*fit.Scale, "D")
	case board.TypeCircle:
		bounds := el.Bounds()
		cx := (bounds.MinX + bounds.MaxX) / 2
		cy := (bounds.MinY + bounds.MaxY) / 2
		center := fit.WorldToScreen(geom.Point{X: cx, Y: cy})
		p.Ellipse(center.X, center.Y, bounds.Width()/2*fit.Scale, bounds.Height()/2*fit.Scale, 0, "D")
	case board.TypeText:
		anchor := fit.WorldToScreen(el.Start)
		p.SetFontSize(math.Max(el.FontSize*fit.Scale*2.8, 6))
		p.Text(anchor.X, anchor.Y+el.FontSize*fit.Scale, el.Text)
	}
}

func drawArrowHead(p *gofpdf.Fpdf, tail, tip geom.Point) {
	angle := math.Atan2(tip.Y-tail.Y, tip.X-tail.X)
	const spread = math.Pi / 6
	headLen := 4.0
	for _, da := range []float64{spread, -spread} {
		p.Line(tip.X, tip.Y,
			tip.X-headLen*math.Cos(angle-da),
			tip.Y-headLen*math.Sin(angle-da))
	}
}

// pdfColor resolves the element color string to RGB, defaulting to black.
func pdfColor(s string) (int, int, int) {
	switch s {
	case "red":
		return 220, 60, 60
	case "green":
		return 60, 160, 90
	case "blue":
		return 60, 100, 220
	case "white":
		return 255, 255, 255
	}
	if len(s) == 7 && s[0] == '#' {
		var rgb [3]int
		ok := true
		for i := 0; i < 3; i++ {
			hi, okH := hexVal(s[1+i*2])
			lo, okL := hexVal(s[2+i*2])
			ok = ok && okH && okL
			rgb[i] = hi*16 + lo
		}
		if ok {
			return rgb[0], rgb[1], rgb[2]
		}
	}
	return 0, 0, 0
}

func hexVal(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}
