package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeboard/internal/geom"
)

func newTestEngine() *Engine {
	e := NewEngine(nil)
	e.SetViewport(800, 600)
	return e
}

// drawPencil drags a pencil stroke through the given screen points.
func drawPencil(e *Engine, points ...geom.Point) {
	e.SetTool(ToolPencil)
	e.PointerDown(points[0], false, false)
	for _, p := range points[1:] {
		e.PointerMove(p)
	}
	e.PointerUp(points[len(points)-1])
}

func TestPencilStrokeCommitUndoRedo(t *testing.T) {
	e := newTestEngine()

	drawPencil(e, geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 10})

	require.Equal(t, 1, e.Document().Len())
	require.Equal(t, 1, e.History().UndoDepth())
	stroke := e.Document().Elements()[0]
	assert.Equal(t, TypePencil, stroke.Type)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}, stroke.Points)

	e.Undo()
	assert.Equal(t, 0, e.Document().Len())

	e.Redo()
	require.Equal(t, 1, e.Document().Len())
	assert.Equal(t, stroke.ID, e.Document().Elements()[0].ID)
	assert.Equal(t, stroke.Points, e.Document().Elements()[0].Points)
}

func TestDegenerateShapeDiscarded(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolRectangle)

	// Pointer down and up at the same coordinate: no drag, no element.
	at := geom.Point{X: 50, Y: 50}
	e.PointerDown(at, false, false)
	e.PointerUp(at)

	assert.Equal(t, 0, e.Document().Len())
	assert.Equal(t, 0, e.History().UndoDepth())
	assert.Nil(t, e.Current())
	assert.Equal(t, StateIdle, e.State())
}

func TestDegenerateStrokeDiscarded(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolPencil)

	at := geom.Point{X: 5, Y: 5}
	e.PointerDown(at, false, false)
	e.PointerUp(at)

	assert.Equal(t, 0, e.Document().Len())
	assert.Equal(t, 0, e.History().UndoDepth())
}

func TestShapeDrawingTracksEndPoint(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolCircle)

	e.PointerDown(geom.Point{X: 10, Y: 10}, false, false)
	require.Equal(t, StateDrawing, e.State())
	e.PointerMove(geom.Point{X: 60, Y: 40})
	require.NotNil(t, e.Current())
	assert.Equal(t, geom.Point{X: 60, Y: 40}, e.Current().End)
	e.PointerUp(geom.Point{X: 60, Y: 40})

	require.Equal(t, 1, e.Document().Len())
	assert.Equal(t, TypeCircle, e.Document().Elements()[0].Type)
	assert.Nil(t, e.Current(), "in-progress element is discarded after commit")
}

func TestWheelZoomAnchorsAtPointer(t *testing.T) {
	e := newTestEngine()
	at := geom.Point{X: 100, Y: 100}

	before := e.View().ScreenToWorld(at)
	e.Wheel(at, 0, 1, true)
	after := e.View().ScreenToWorld(at)

	assert.Greater(t, e.View().Scale, 1.0)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestWheelZoomClamped(t *testing.T) {
	e := newTestEngine()
	at := geom.Point{X: 0, Y: 0}

	for i := 0; i < 100; i++ {
		e.Wheel(at, 0, 1, true)
	}
	assert.InDelta(t, 10, e.View().Scale, 1e-9)

	for i := 0; i < 200; i++ {
		e.Wheel(at, 0, -1, true)
	}
	assert.InDelta(t, 0.1, e.View().Scale, 1e-9)
}

func TestWheelWithoutCtrlPans(t *testing.T) {
	e := newTestEngine()
	e.Wheel(geom.Point{X: 0, Y: 0}, 7, -3, false)
	assert.Equal(t, 1.0, e.View().Scale)
	assert.Equal(t, 7.0, e.View().OffsetX)
	assert.Equal(t, -3.0, e.View().OffsetY)
}

func TestPanningLeavesDocumentAndHistoryAlone(t *testing.T) {
	e := newTestEngine()
	drawPencil(e, geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 10})
	require.Equal(t, 1, e.History().UndoDepth())

	e.SetTool(ToolPan)
	e.PointerDown(geom.Point{X: 100, Y: 100}, false, false)
	require.Equal(t, StatePanning, e.State())
	e.PointerMove(geom.Point{X: 130, Y: 80})
	e.PointerUp(geom.Point{X: 130, Y: 80})

	assert.Equal(t, 30.0, e.View().OffsetX)
	assert.Equal(t, -20.0, e.View().OffsetY)
	assert.Equal(t, 1, e.History().UndoDepth(), "panning is view-only")
}

func TestShiftClickPansRegardlessOfTool(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolPencil)
	e.PointerDown(geom.Point{X: 10, Y: 10}, false, true)
	assert.Equal(t, StatePanning, e.State())
	e.PointerUp(geom.Point{X: 10, Y: 10})
	assert.Equal(t, 0, e.Document().Len())
}

func TestSelectAndDragCommitsOnce(t *testing.T) {
	e := newTestEngine()
	drawPencil(e, geom.Point{X: 10, Y: 10}, geom.Point{X: 20, Y: 20})
	id := e.Document().Elements()[0].ID

	e.SetTool(ToolSelect)
	e.PointerDown(geom.Point{X: 10, Y: 10}, false, false)
	require.Equal(t, StateDraggingSelection, e.State())
	sel, _, ok := e.Selected()
	require.True(t, ok)
	assert.Equal(t, id, sel.ID)

	// Many moves; the final geometry must equal original plus the last
	// delta, not the sum of the intermediate ones.
	for i := 1; i <= 10; i++ {
		e.PointerMove(geom.Point{X: 10 + float64(i*5), Y: 10})
	}
	e.PointerUp(geom.Point{X: 60, Y: 10})

	el := e.Document().FindByID(id)
	require.NotNil(t, el)
	assert.Equal(t, geom.Point{X: 60, Y: 10}, el.Points[0])
	assert.Equal(t, geom.Point{X: 70, Y: 20}, el.Points[1])
	assert.Equal(t, 2, e.History().UndoDepth(), "one commit for the draw, one for the drag")

	// Undo restores the pre-drag geometry.
	e.Undo()
	el = e.Document().FindByID(id)
	require.NotNil(t, el)
	assert.Equal(t, geom.Point{X: 10, Y: 10}, el.Points[0])
}

func TestClickWithoutDragDoesNotCommit(t *testing.T) {
	e := newTestEngine()
	drawPencil(e, geom.Point{X: 10, Y: 10}, geom.Point{X: 20, Y: 20})

	e.SetTool(ToolSelect)
	e.PointerDown(geom.Point{X: 10, Y: 10}, false, false)
	e.PointerUp(geom.Point{X: 10, Y: 10})

	assert.Equal(t, 1, e.History().UndoDepth(), "a selection click is not an edit")
	_, _, ok := e.Selected()
	assert.True(t, ok, "selection survives the click")
}

func TestSelectMissClearsSelection(t *testing.T) {
	e := newTestEngine()
	drawPencil(e, geom.Point{X: 10, Y: 10}, geom.Point{X: 20, Y: 20})

	e.SetTool(ToolSelect)
	e.PointerDown(geom.Point{X: 15, Y: 15}, false, false)
	e.PointerUp(geom.Point{X: 15, Y: 15})
	_, _, ok := e.Selected()
	require.True(t, ok)

	e.PointerDown(geom.Point{X: 500, Y: 500}, false, false)
	e.PointerUp(geom.Point{X: 500, Y: 500})
	_, _, ok = e.Selected()
	assert.False(t, ok)
}

func TestResizeScalesAboutOppositeCorner(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolRectangle)
	e.PointerDown(geom.Point{X: 10, Y: 10}, false, false)
	e.PointerMove(geom.Point{X: 30, Y: 30})
	e.PointerUp(geom.Point{X: 30, Y: 30})
	id := e.Document().Elements()[0].ID

	e.SetTool(ToolSelect)
	e.PointerDown(geom.Point{X: 20, Y: 20}, false, false)
	e.PointerUp(geom.Point{X: 20, Y: 20})
	_, bounds, ok := e.Selected()
	require.True(t, ok)
	require.Equal(t, geom.Rect{MinX: 10, MinY: 10, MaxX: 30, MaxY: 30}, bounds)

	// Grab the SE handle and drag it out to (50,50): doubles both axes
	// about the fixed NW corner.
	e.PointerDown(geom.Point{X: 30, Y: 30}, false, false)
	require.Equal(t, StateResizing, e.State())
	e.PointerMove(geom.Point{X: 50, Y: 50})
	e.PointerUp(geom.Point{X: 50, Y: 50})

	el := e.Document().FindByID(id)
	require.NotNil(t, el)
	b := el.Bounds()
	assert.InDelta(t, 10, b.MinX, 1e-9)
	assert.InDelta(t, 10, b.MinY, 1e-9)
	assert.InDelta(t, 50, b.MaxX, 1e-9)
	assert.InDelta(t, 50, b.MaxY, 1e-9)
	assert.Equal(t, 2, e.History().UndoDepth(), "one commit for the draw, one for the resize")
}

func TestDeleteSelected(t *testing.T) {
	e := newTestEngine()
	drawPencil(e, geom.Point{X: 10, Y: 10}, geom.Point{X: 20, Y: 20})

	e.SetTool(ToolSelect)
	e.PointerDown(geom.Point{X: 15, Y: 15}, false, false)
	e.PointerUp(geom.Point{X: 15, Y: 15})

	e.DeleteSelected()
	assert.Equal(t, 0, e.Document().Len())
	_, _, ok := e.Selected()
	assert.False(t, ok)

	e.Undo()
	assert.Equal(t, 1, e.Document().Len())
}

func TestDeleteWithoutSelectionIsNoOp(t *testing.T) {
	e := newTestEngine()
	drawPencil(e, geom.Point{X: 0, Y: 0}, geom.Point{X: 5, Y: 5})
	depth := e.History().UndoDepth()
	e.DeleteSelected()
	assert.Equal(t, 1, e.Document().Len())
	assert.Equal(t, depth, e.History().UndoDepth())
}

func TestClearIsUndoable(t *testing.T) {
	e := newTestEngine()
	drawPencil(e, geom.Point{X: 0, Y: 0}, geom.Point{X: 5, Y: 5})
	drawPencil(e, geom.Point{X: 10, Y: 0}, geom.Point{X: 15, Y: 5})

	e.Clear()
	assert.Equal(t, 0, e.Document().Len())
	e.Undo()
	assert.Equal(t, 2, e.Document().Len())
}

func TestTextCommit(t *testing.T) {
	e := newTestEngine()
	var editAt *geom.Point
	e.OnTextEdit = func(at geom.Point) { editAt = &at }
	e.SetTool(ToolText)

	e.PointerDown(geom.Point{X: 40, Y: 50}, false, false)
	require.Equal(t, StateTextEditing, e.State())
	require.NotNil(t, editAt)

	e.CommitText("R:R 2.5 on the breakout")
	require.Equal(t, 1, e.Document().Len())
	el := e.Document().Elements()[0]
	assert.Equal(t, TypeText, el.Type)
	assert.Equal(t, "R:R 2.5 on the breakout", el.Text)
	assert.Equal(t, geom.Point{X: 40, Y: 50}, el.Start)
	assert.Equal(t, StateIdle, e.State())
}

func TestTextEmptyCommitAndCancel(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolText)

	e.PointerDown(geom.Point{X: 10, Y: 10}, false, false)
	e.CommitText("")
	assert.Equal(t, 0, e.Document().Len())
	assert.Equal(t, 0, e.History().UndoDepth())

	e.PointerDown(geom.Point{X: 10, Y: 10}, false, false)
	e.CancelText()
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, 0, e.Document().Len())
}

func TestEscapeClearsSelection(t *testing.T) {
	e := newTestEngine()
	drawPencil(e, geom.Point{X: 10, Y: 10}, geom.Point{X: 20, Y: 20})
	e.SetTool(ToolSelect)
	e.PointerDown(geom.Point{X: 15, Y: 15}, false, false)
	e.PointerUp(geom.Point{X: 15, Y: 15})

	e.Escape()
	_, _, ok := e.Selected()
	assert.False(t, ok)
}

func TestBrushSizeClamped(t *testing.T) {
	e := newTestEngine()
	e.SetBrushSize(3)
	for i := 0; i < 30; i++ {
		e.AdjustBrushSize(1)
	}
	assert.Equal(t, 20.0, e.BrushSize())
	for i := 0; i < 30; i++ {
		e.AdjustBrushSize(-1)
	}
	assert.Equal(t, 1.0, e.BrushSize())
}

func TestToolChangeResetsInteraction(t *testing.T) {
	e := newTestEngine()
	drawPencil(e, geom.Point{X: 10, Y: 10}, geom.Point{X: 20, Y: 20})
	e.SetTool(ToolSelect)
	e.PointerDown(geom.Point{X: 15, Y: 15}, false, false)
	e.PointerUp(geom.Point{X: 15, Y: 15})
	_, _, ok := e.Selected()
	require.True(t, ok)

	e.SetTool(ToolPencil)
	_, _, ok = e.Selected()
	assert.False(t, ok, "selection is ephemeral across tool changes")
	assert.Equal(t, StateIdle, e.State())
}

func TestPersistCalledOnCommitsWithClones(t *testing.T) {
	e := newTestEngine()
	var saves [][]*Element
	e.OnPersist = func(elements []*Element) { saves = append(saves, elements) }

	drawPencil(e, geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 10})
	require.Len(t, saves, 1)

	// The persisted slice is a deep clone: mutating the live document must
	// not reach it.
	e.Document().Elements()[0].Points[0].X = 12345
	assert.Equal(t, 0.0, saves[0][0].Points[0].X)

	e.Undo()
	require.Len(t, saves, 2, "undo persists the restored document")
	assert.Len(t, saves[1], 0)
}

func TestZoomThenDrawLandsInWorldSpace(t *testing.T) {
	e := newTestEngine()
	at := geom.Point{X: 200, Y: 200}
	e.Wheel(at, 0, 1, true) // scale 1.1, anchored at (200,200)

	drawPencil(e, geom.Point{X: 200, Y: 200}, geom.Point{X: 255, Y: 200})
	stroke := e.Document().Elements()[0]

	// The anchor point (200,200) maps to the same world point as before
	// the zoom; the second point is 55 screen px right, which is 50 world
	// units at scale 1.1.
	assert.InDelta(t, 200, stroke.Points[0].X, 1e-9)
	assert.InDelta(t, 250, stroke.Points[1].X, 1e-6)
}
