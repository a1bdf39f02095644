package board

// maxHistoryDepth bounds the undo stack; the oldest snapshot is evicted
// first once the bound is reached.
const maxHistoryDepth = 50

// History is a linear undo/redo stack over deep document snapshots. Any new
// committed mutation discards the redo branch.
type History struct {
	undo [][]*Element
	redo [][]*Element
}

// NewHistory returns an empty history.
func NewHistory() *History { return &History{} }

// Snapshot records the current document state. Call it immediately before a
// mutating commit so undo restores the pre-mutation document.
func (h *History) Snapshot(d *Document) {
	h.Push(d.Clone())
}

// Push records an already-captured snapshot. Drag and resize mutate the
// live element for immediate feedback, so the pre-edit state is cloned at
// gesture start and pushed here on commit.
func (h *History) Push(snapshot []*Element) {
	h.undo = append(h.undo, snapshot)
	if len(h.undo) > maxHistoryDepth {
		h.undo = h.undo[1:]
	}
	h.redo = nil
}

// Undo restores the most recent snapshot into the document, pushing the
// current state onto the redo stack. No-op on an empty stack; returns
// whether the document changed.
func (h *History) Undo(d *Document) bool {
	if len(h.undo) == 0 {
		return false
	}
	h.redo = append(h.redo, d.Clone())
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	d.ReplaceAll(last)
	return true
}

// Redo is the inverse of Undo. No-op on an empty redo stack.
func (h *History) Redo(d *Document) bool {
	if len(h.redo) == 0 {
		return false
	}
	h.undo = append(h.undo, d.Clone())
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	d.ReplaceAll(last)
	return true
}

// UndoDepth returns the number of undoable snapshots.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth returns the number of redoable snapshots.
func (h *History) RedoDepth() int { return len(h.redo) }
