package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"tradeboard/internal/board"
	"tradeboard/internal/geom"
)

// BoardWidget is the Fyne mount point for the whiteboard engine. It adapts
// pointer events into engine calls and presents the two drawing surfaces:
// a persisted layer rebuilt when the document or view changes, and an
// active layer rebuilt on every pointer move for the in-progress element
// and selection chrome.
type BoardWidget struct {
	widget.BaseWidget
	engine *board.Engine

	background     *canvas.Rectangle
	persistedLayer *fyne.Container
	activeLayer    *fyne.Container
	overlay        *fyne.Container

	showGrid bool
	ctrlHeld bool

	textEntry *boardTextEntry
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

// NewBoardWidget wires a widget to the engine.
func NewBoardWidget(engine *board.Engine) *BoardWidget {
	b := &BoardWidget{
		engine:         engine,
		background:     canvas.NewRectangle(boardBackground),
		persistedLayer: container.NewWithoutLayout(),
		activeLayer:    container.NewWithoutLayout(),
		overlay:        container.NewWithoutLayout(),
		showGrid:       true,
	}
	b.ExtendBaseWidget(b)

	engine.OnRedraw = func(persisted, active bool) {
		// The flush arrives on the frame timer goroutine; repaint on the
		// Fyne thread with whatever state is current by then.
		fyne.Do(func() {
			if persisted {
				b.rebuildPersisted()
			}
			if active {
				b.rebuildActive()
			}
		})
	}
	engine.OnTextEdit = b.openTextEntry
	return b
}

// Engine returns the engine driving this widget.
func (b *BoardWidget) Engine() *board.Engine { return b.engine }

// SetShowGrid toggles the viewport grid.
func (b *BoardWidget) SetShowGrid(show bool) {
	b.showGrid = show
	b.rebuildPersisted()
}

// ShowGrid reports whether the grid is drawn.
func (b *BoardWidget) ShowGrid() bool { return b.showGrid }

// SetCtrlHeld tracks the ctrl/cmd modifier for wheel zoom, fed by the
// desktop canvas key hooks since scroll events carry no modifiers.
func (b *BoardWidget) SetCtrlHeld(held bool) { b.ctrlHeld = held }

func (b *BoardWidget) rebuildPersisted() {
	view := b.engine.View()
	var objects []fyne.CanvasObject
	if b.showGrid {
		w, h := b.engine.Viewport()
		objects = append(objects, renderGrid(view, w, h)...)
	}
	for _, el := range b.engine.Document().Elements() {
		objects = append(objects, renderElement(el, view)...)
	}
	b.persistedLayer.Objects = objects
	b.persistedLayer.Refresh()
}

func (b *BoardWidget) rebuildActive() {
	view := b.engine.View()
	var objects []fyne.CanvasObject
	if cur := b.engine.Current(); cur != nil {
		objects = append(objects, renderElement(cur, view)...)
	}
	if _, bounds, ok := b.engine.Selected(); ok {
		objects = append(objects, renderSelection(bounds, view)...)
	}
	b.activeLayer.Objects = objects
	b.activeLayer.Refresh()
}

func (b *BoardWidget) MouseDown(ev *desktop.MouseEvent) {
	middle := ev.Button == desktop.MouseButtonTertiary
	shift := ev.Modifier&fyne.KeyModifierShift != 0
	b.engine.PointerDown(pointOf(ev.Position), middle, shift)
}

func (b *BoardWidget) MouseUp(ev *desktop.MouseEvent) {
	b.engine.PointerUp(pointOf(ev.Position))
}

func (b *BoardWidget) Dragged(ev *fyne.DragEvent) {
	b.engine.PointerMove(pointOf(ev.Position))
}

func (b *BoardWidget) DragEnd() {}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}
func (b *BoardWidget) MouseOut()                      {}

func (b *BoardWidget) Scrolled(ev *fyne.ScrollEvent) {
	b.engine.Wheel(pointOf(ev.Position), float64(ev.Scrolled.DX), float64(ev.Scrolled.DY), b.ctrlHeld)
}

func pointOf(p fyne.Position) geom.Point {
	return geom.Point{X: float64(p.X), Y: float64(p.Y)}
}

// openTextEntry places a single-line entry at the clicked position. Enter
// commits, Escape cancels, clicking elsewhere commits on focus loss.
func (b *BoardWidget) openTextEntry(screenAt geom.Point) {
	entry := newBoardTextEntry(
		func(text string) {
			b.engine.CommitText(text)
			b.closeTextEntry()
		},
		func() {
			b.engine.CancelText()
			b.closeTextEntry()
		},
	)
	b.textEntry = entry
	entry.Move(fyne.NewPos(float32(screenAt.X), float32(screenAt.Y)))
	entry.Resize(fyne.NewSize(200, entry.MinSize().Height))
	b.overlay.Objects = []fyne.CanvasObject{entry}
	b.overlay.Refresh()
	if c := fyne.CurrentApp().Driver().CanvasForObject(b); c != nil {
		c.Focus(entry)
	}
}

func (b *BoardWidget) closeTextEntry() {
	b.textEntry = nil
	b.overlay.Objects = nil
	b.overlay.Refresh()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardRenderer{board: b}
}

type boardRenderer struct {
	board *BoardWidget
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{
		r.board.background,
		r.board.persistedLayer,
		r.board.activeLayer,
		r.board.overlay,
	}
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.board.background.Resize(size)
	r.board.persistedLayer.Resize(size)
	r.board.activeLayer.Resize(size)
	r.board.overlay.Resize(size)
	r.board.engine.SetViewport(float64(size.Width), float64(size.Height))
}

func (r *boardRenderer) MinSize() fyne.Size { return fyne.NewSize(400, 300) }

func (r *boardRenderer) Refresh() { canvas.Refresh(r.board) }

func (r *boardRenderer) Destroy() {}

// boardTextEntry is a plain entry with escape and focus-loss hooks for the
// in-place text tool.
type boardTextEntry struct {
	widget.Entry
	onCancel func()
}

func newBoardTextEntry(onCommit func(string), onCancel func()) *boardTextEntry {
	e := &boardTextEntry{onCancel: onCancel}
	e.ExtendBaseWidget(e)
	e.OnSubmitted = onCommit
	return e
}

func (e *boardTextEntry) TypedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape {
		if e.onCancel != nil {
			e.onCancel()
		}
		return
	}
	e.Entry.TypedKey(ev)
}

func (e *boardTextEntry) FocusLost() {
	e.Entry.FocusLost()
	if e.OnSubmitted != nil {
		e.OnSubmitted(e.Text)
	}
}
