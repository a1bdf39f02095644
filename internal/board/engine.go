package board

import (
	"log"
	"math"

	"tradeboard/internal/geom"
)

const (
	minScale = 0.1
	maxScale = 10

	minBrushSize = 1
	maxBrushSize = 20

	wheelZoomStep = 1.1

	// hitThresholdPx is the selection slop in screen pixels; it is divided
	// by the current scale so picking feels the same at every zoom.
	hitThresholdPx = 6
	handleSizePx   = 8

	// minCommitExtent rejects degenerate shapes: a click with no drag
	// produces a box under one world unit and is silently discarded.
	minCommitExtent = 1

	defaultFontName = "sans"
	defaultFontSize = 18
)

// Engine owns the document, its history and the view transform, and turns
// pointer/keyboard events into commits. All methods must be called from the
// UI event thread; the engine serializes access by construction. Callback
// fields are set once before first use, the teacher pattern for wiring the
// widget to its host.
type Engine struct {
	doc     *Document
	history *History
	view    geom.Transform

	tool      Tool
	color     string
	brushSize float64
	fontSize  float64

	state   State
	current *Element // in-progress element, outside the document until commit

	lastScreen geom.Point // panning: previous pointer position
	dragStart  geom.Point // drag/resize: world position of pointer-down
	dragOrig   *Element   // drag/resize: captured pre-gesture geometry
	preEdit    []*Element // drag/resize: pre-gesture document snapshot
	moved      bool
	handle     Handle
	textAnchor geom.Point

	selectedID     string
	selectedBounds geom.Rect

	viewportW float64
	viewportH float64

	sched *frameScheduler

	// OnRedraw is invoked off the event thread, once per frame at most,
	// with the surfaces that went dirty since the previous flush.
	OnRedraw func(persisted, active bool)
	// OnPersist receives a deep clone of the document after every committed
	// mutation. The host debounces the actual write.
	OnPersist func(elements []*Element)
	// OnTextEdit asks the host to open a text entry at a screen position.
	OnTextEdit func(screenAt geom.Point)
}

// NewEngine creates an engine seeded with previously persisted elements
// (nil for an empty board).
func NewEngine(elements []*Element) *Engine {
	e := &Engine{
		doc:       NewDocument(),
		history:   NewHistory(),
		view:      geom.Identity(),
		tool:      ToolPencil,
		color:     "#1a1a2e",
		brushSize: 3,
		fontSize:  defaultFontSize,
	}
	e.doc.ReplaceAll(elements)
	e.sched = newFrameScheduler(func(persisted, active bool) {
		if e.OnRedraw != nil {
			e.OnRedraw(persisted, active)
		}
	})
	return e
}

// Close cancels pending frame callbacks. Called on unmount.
func (e *Engine) Close() { e.sched.Stop() }

// Document returns the engine's document. The engine retains exclusive
// ownership; callers read, never mutate.
func (e *Engine) Document() *Document { return e.doc }

// History exposes the undo/redo stacks, mainly for tests and status UI.
func (e *Engine) History() *History { return e.history }

// View returns the current world-to-screen transform.
func (e *Engine) View() geom.Transform { return e.view }

// State returns the active interaction state.
func (e *Engine) State() State { return e.state }

// Current returns the in-progress element, or nil outside a draw.
func (e *Engine) Current() *Element { return e.current }

// Selected returns the selected element and its cached bounding box.
func (e *Engine) Selected() (*Element, geom.Rect, bool) {
	if e.selectedID == "" {
		return nil, geom.Rect{}, false
	}
	el := e.doc.FindByID(e.selectedID)
	if el == nil {
		return nil, geom.Rect{}, false
	}
	return el, e.selectedBounds, true
}

// Tool returns the active tool.
func (e *Engine) Tool() Tool { return e.tool }

// SetTool switches tools, abandoning any in-progress interaction and
// clearing the selection.
func (e *Engine) SetTool(t Tool) {
	if e.state == StateTextEditing {
		e.CancelText()
	}
	e.tool = t
	e.state = StateIdle
	e.current = nil
	e.clearSelection()
	e.sched.Request(SurfaceActive)
}

// Color returns the active stroke color.
func (e *Engine) Color() string { return e.color }

// SetColor sets the stroke color for new elements.
func (e *Engine) SetColor(c string) { e.color = c }

// BrushSize returns the active stroke width in screen pixels.
func (e *Engine) BrushSize() float64 { return e.brushSize }

// SetBrushSize clamps and sets the stroke width.
func (e *Engine) SetBrushSize(s float64) {
	e.brushSize = math.Min(math.Max(s, minBrushSize), maxBrushSize)
}

// AdjustBrushSize nudges the stroke width, bound to the bracket keys.
func (e *Engine) AdjustBrushSize(delta float64) { e.SetBrushSize(e.brushSize + delta) }

// FontSize returns the text size for new text elements, in world units.
func (e *Engine) FontSize() float64 { return e.fontSize }

// SetFontSize sets the text size for new text elements.
func (e *Engine) SetFontSize(s float64) {
	if s > 0 {
		e.fontSize = s
	}
}

// SetViewport records the widget's pixel dimensions, used for grid bounds
// and center-anchored zoom buttons.
func (e *Engine) SetViewport(w, h float64) {
	e.viewportW, e.viewportH = w, h
	e.sched.Request(SurfacePersisted)
}

// Viewport returns the last reported widget dimensions.
func (e *Engine) Viewport() (w, h float64) { return e.viewportW, e.viewportH }

// PointerDown starts an interaction. middle selects panning regardless of
// tool, as does shift-click.
func (e *Engine) PointerDown(screen geom.Point, middle, shift bool) {
	if e.state == StateTextEditing {
		// The overlay commits on blur; a stray click just cancels.
		e.CancelText()
	}
	world := e.view.ScreenToWorld(screen)

	if e.tool == ToolPan || middle || shift {
		e.state = StatePanning
		e.lastScreen = screen
		return
	}

	switch e.tool {
	case ToolSelect:
		e.pointerDownSelect(world)
	case ToolText:
		e.state = StateTextEditing
		e.textAnchor = world
		if e.OnTextEdit != nil {
			e.OnTextEdit(e.view.WorldToScreen(world))
		}
	case ToolPencil, ToolEraser:
		t, _ := e.tool.elementType()
		e.current = NewElement(t, e.color, e.brushSize)
		e.current.Points = []geom.Point{world}
		e.state = StateDrawing
		e.sched.Request(SurfaceActive)
	default:
		t, ok := e.tool.elementType()
		if !ok {
			return
		}
		e.current = NewElement(t, e.color, e.brushSize)
		e.current.Start = world
		e.current.End = world
		e.state = StateDrawing
		e.sched.Request(SurfaceActive)
	}
}

func (e *Engine) pointerDownSelect(world geom.Point) {
	if e.selectedID != "" {
		if h := e.handleAt(world); h != HandleNone {
			if el := e.doc.FindByID(e.selectedID); el != nil {
				e.state = StateResizing
				e.handle = h
				e.dragStart = world
				e.dragOrig = el.Clone()
				e.preEdit = e.doc.Clone()
				e.moved = false
				return
			}
		}
	}
	threshold := hitThresholdPx / e.view.Scale
	hit := HitTest(world, e.doc.Elements(), threshold)
	if hit == nil {
		e.clearSelection()
		e.sched.Request(SurfaceActive)
		return
	}
	e.selectedID = hit.ID
	e.selectedBounds = hit.Bounds()
	e.state = StateDraggingSelection
	e.dragStart = world
	e.dragOrig = hit.Clone()
	e.preEdit = e.doc.Clone()
	e.moved = false
	e.sched.Request(SurfaceActive)
}

// PointerMove advances the active interaction.
func (e *Engine) PointerMove(screen geom.Point) {
	world := e.view.ScreenToWorld(screen)
	switch e.state {
	case StatePanning:
		e.view = e.view.Pan(screen.X-e.lastScreen.X, screen.Y-e.lastScreen.Y)
		e.lastScreen = screen
		e.sched.Request(SurfacePersisted)
		e.sched.Request(SurfaceActive)
	case StateDrawing:
		if e.current == nil {
			return
		}
		if e.current.Type.IsPath() {
			e.current.Points = append(e.current.Points, world)
		} else {
			e.current.End = world
		}
		e.sched.Request(SurfaceActive)
	case StateDraggingSelection:
		live := e.doc.FindByID(e.selectedID)
		if live == nil || e.dragOrig == nil {
			return
		}
		// Reapply the delta to the captured geometry each move, never to
		// the live element, so repeated moves cannot accumulate drift.
		restoreGeometry(live, e.dragOrig)
		live.Translate(world.X-e.dragStart.X, world.Y-e.dragStart.Y)
		e.selectedBounds = live.Bounds()
		e.moved = true
		e.sched.Request(SurfacePersisted)
		e.sched.Request(SurfaceActive)
	case StateResizing:
		live := e.doc.FindByID(e.selectedID)
		if live == nil || e.dragOrig == nil {
			return
		}
		restoreGeometry(live, e.dragOrig)
		resizeAboutFixedCorner(live, e.dragOrig.Bounds(), e.handle, world)
		e.selectedBounds = live.Bounds()
		e.moved = true
		e.sched.Request(SurfacePersisted)
		e.sched.Request(SurfaceActive)
	}
}

// PointerUp finishes the active interaction, committing when it produced a
// non-degenerate edit.
func (e *Engine) PointerUp(screen geom.Point) {
	switch e.state {
	case StatePanning:
		e.state = StateIdle
	case StateDrawing:
		e.commitCurrent()
	case StateDraggingSelection, StateResizing:
		if e.moved && e.preEdit != nil {
			e.history.Push(e.preEdit)
			e.persist()
		}
		e.dragOrig = nil
		e.preEdit = nil
		e.moved = false
		e.handle = HandleNone
		e.state = StateIdle
		e.sched.Request(SurfaceActive)
	}
}

// commitCurrent validates and commits the in-progress element. Degenerate
// attempts are discarded without touching history.
func (e *Engine) commitCurrent() {
	el := e.current
	e.current = nil
	e.state = StateIdle
	e.sched.Request(SurfaceActive)
	if el == nil || !commitable(el) {
		return
	}
	e.history.Snapshot(e.doc)
	e.doc.Append(el)
	e.persist()
	e.sched.Request(SurfacePersisted)
}

func commitable(el *Element) bool {
	if el.Type.IsPath() {
		return len(el.Points) >= 2
	}
	b := el.Bounds()
	return b.Width() > minCommitExtent || b.Height() > minCommitExtent
}

// Wheel handles scroll events: with ctrl/cmd held the board zooms anchored
// at the pointer, otherwise the wheel pans both axes.
func (e *Engine) Wheel(screen geom.Point, dx, dy float64, ctrl bool) {
	if ctrl {
		factor := wheelZoomStep
		if dy < 0 {
			factor = 1 / wheelZoomStep
		}
		newScale := math.Min(math.Max(e.view.Scale*factor, minScale), maxScale)
		e.view = e.view.ZoomAt(screen, newScale)
	} else {
		e.view = e.view.Pan(dx, dy)
	}
	e.sched.Request(SurfacePersisted)
	e.sched.Request(SurfaceActive)
}

// ZoomIn zooms one step anchored at the viewport center.
func (e *Engine) ZoomIn() { e.zoomCenter(wheelZoomStep) }

// ZoomOut zooms one step out anchored at the viewport center.
func (e *Engine) ZoomOut() { e.zoomCenter(1 / wheelZoomStep) }

func (e *Engine) zoomCenter(factor float64) {
	center := geom.Point{X: e.viewportW / 2, Y: e.viewportH / 2}
	newScale := math.Min(math.Max(e.view.Scale*factor, minScale), maxScale)
	e.view = e.view.ZoomAt(center, newScale)
	e.sched.Request(SurfacePersisted)
	e.sched.Request(SurfaceActive)
}

// ResetView restores the identity transform.
func (e *Engine) ResetView() {
	e.view = geom.Identity()
	e.sched.Request(SurfacePersisted)
	e.sched.Request(SurfaceActive)
}

// Undo rolls the document back one snapshot. No-op at the stack boundary.
func (e *Engine) Undo() {
	if !e.history.Undo(e.doc) {
		return
	}
	e.clearSelection()
	e.persist()
	e.sched.Request(SurfacePersisted)
	e.sched.Request(SurfaceActive)
}

// Redo reapplies the most recently undone snapshot. No-op when empty.
func (e *Engine) Redo() {
	if !e.history.Redo(e.doc) {
		return
	}
	e.clearSelection()
	e.persist()
	e.sched.Request(SurfacePersisted)
	e.sched.Request(SurfaceActive)
}

// DeleteSelected removes the selected element. No-op without a selection.
func (e *Engine) DeleteSelected() {
	if e.selectedID == "" {
		return
	}
	e.history.Snapshot(e.doc)
	if !e.doc.RemoveByID(e.selectedID) {
		log.Printf("board: selected element %s vanished before delete", e.selectedID)
	}
	e.clearSelection()
	e.persist()
	e.sched.Request(SurfacePersisted)
	e.sched.Request(SurfaceActive)
}

// Clear wipes the document. Undoable like any other commit.
func (e *Engine) Clear() {
	if e.doc.Len() == 0 {
		return
	}
	e.history.Snapshot(e.doc)
	e.doc.Clear()
	e.clearSelection()
	e.persist()
	e.sched.Request(SurfacePersisted)
	e.sched.Request(SurfaceActive)
}

// Escape cancels text editing, or failing that clears the selection.
func (e *Engine) Escape() {
	if e.state == StateTextEditing {
		e.CancelText()
		return
	}
	e.clearSelection()
	e.sched.Request(SurfaceActive)
}

// CommitText finishes text entry with the given content. Empty or
// whitespace-free-empty content is discarded like a degenerate shape.
func (e *Engine) CommitText(content string) {
	if e.state != StateTextEditing {
		return
	}
	e.state = StateIdle
	if content == "" {
		return
	}
	el := NewElement(TypeText, e.color, e.brushSize)
	el.Start = e.textAnchor
	el.Text = content
	el.FontName = defaultFontName
	el.FontSize = e.fontSize
	e.history.Snapshot(e.doc)
	e.doc.Append(el)
	e.persist()
	e.sched.Request(SurfacePersisted)
}

// CancelText abandons text entry without a commit.
func (e *Engine) CancelText() {
	if e.state == StateTextEditing {
		e.state = StateIdle
	}
}

// LoadFromFile replaces the document wholesale, as an undoable commit.
func (e *Engine) LoadFromFile(elements []*Element) {
	e.history.Snapshot(e.doc)
	e.doc.ReplaceAll(elements)
	e.clearSelection()
	e.persist()
	e.sched.Request(SurfacePersisted)
	e.sched.Request(SurfaceActive)
}

func (e *Engine) persist() {
	if e.OnPersist != nil {
		e.OnPersist(e.doc.Clone())
	}
}

func (e *Engine) clearSelection() {
	e.selectedID = ""
	e.selectedBounds = geom.Rect{}
}

// handleAt returns the selection corner handle under a world point, if any.
func (e *Engine) handleAt(world geom.Point) Handle {
	slop := handleSizePx / e.view.Scale
	b := e.selectedBounds
	corners := []struct {
		h Handle
		p geom.Point
	}{
		{HandleNW, geom.Point{X: b.MinX, Y: b.MinY}},
		{HandleNE, geom.Point{X: b.MaxX, Y: b.MinY}},
		{HandleSW, geom.Point{X: b.MinX, Y: b.MaxY}},
		{HandleSE, geom.Point{X: b.MaxX, Y: b.MaxY}},
	}
	for _, c := range corners {
		if math.Abs(world.X-c.p.X) <= slop && math.Abs(world.Y-c.p.Y) <= slop {
			return c.h
		}
	}
	return HandleNone
}

// restoreGeometry copies the captured geometry back onto the live element
// before a fresh delta is applied.
func restoreGeometry(dst, src *Element) {
	if src.Points != nil {
		if len(dst.Points) != len(src.Points) {
			dst.Points = make([]geom.Point, len(src.Points))
		}
		copy(dst.Points, src.Points)
	}
	dst.Start = src.Start
	dst.End = src.End
}

// resizeAboutFixedCorner scales el so the dragged corner of origBounds
// follows the pointer while the opposite corner stays fixed.
func resizeAboutFixedCorner(el *Element, orig geom.Rect, h Handle, world geom.Point) {
	var fixed, moving geom.Point
	switch h {
	case HandleNW:
		fixed = geom.Point{X: orig.MaxX, Y: orig.MaxY}
		moving = geom.Point{X: orig.MinX, Y: orig.MinY}
	case HandleNE:
		fixed = geom.Point{X: orig.MinX, Y: orig.MaxY}
		moving = geom.Point{X: orig.MaxX, Y: orig.MinY}
	case HandleSW:
		fixed = geom.Point{X: orig.MaxX, Y: orig.MinY}
		moving = geom.Point{X: orig.MinX, Y: orig.MaxY}
	case HandleSE:
		fixed = geom.Point{X: orig.MinX, Y: orig.MinY}
		moving = geom.Point{X: orig.MaxX, Y: orig.MaxY}
	default:
		return
	}
	sx, sy := 1.0, 1.0
	if dx := moving.X - fixed.X; dx != 0 {
		sx = (world.X - fixed.X) / dx
	}
	if dy := moving.Y - fixed.Y; dy != 0 {
		sy = (world.Y - fixed.Y) / dy
	}
	scalePoint := func(p geom.Point) geom.Point {
		return geom.Point{X: fixed.X + (p.X-fixed.X)*sx, Y: fixed.Y + (p.Y-fixed.Y)*sy}
	}
	for i := range el.Points {
		el.Points[i] = scalePoint(el.Points[i])
	}
	el.Start = scalePoint(el.Start)
	el.End = scalePoint(el.End)
}
