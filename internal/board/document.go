package board

import "tradeboard/internal/geom"

// Document is the ordered element sequence. Slice order is z-order: later
// elements draw on top. The engine owns the document; nothing mutates it
// during an in-progress draw — the in-progress element lives in the engine's
// current-element slot until committed.
type Document struct {
	elements []*Element
}

// NewDocument returns an empty document.
func NewDocument() *Document { return &Document{} }

// Len returns the number of elements.
func (d *Document) Len() int { return len(d.elements) }

// Elements returns the element slice in z-order. Callers must not mutate it.
func (d *Document) Elements() []*Element { return d.elements }

// Append adds an element on top of the z-order.
func (d *Document) Append(e *Element) {
	d.elements = append(d.elements, e)
}

// RemoveByID deletes the element with the given id, preserving the order of
// the rest. Returns false if no element matches.
func (d *Document) RemoveByID(id string) bool {
	for i, e := range d.elements {
		if e.ID == id {
			d.elements = append(d.elements[:i], d.elements[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns the element with the given id, or nil.
func (d *Document) FindByID(id string) *Element {
	for _, e := range d.elements {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// ReplaceAll swaps in a new element sequence. Used by undo/redo and load.
func (d *Document) ReplaceAll(elements []*Element) {
	d.elements = elements
}

// Clear removes every element.
func (d *Document) Clear() {
	d.elements = nil
}

// Clone returns a deep copy of the document's elements, the snapshot unit
// used by the history stacks.
func (d *Document) Clone() []*Element {
	if d.elements == nil {
		return nil
	}
	dup := make([]*Element, len(d.elements))
	for i, e := range d.elements {
		dup[i] = e.Clone()
	}
	return dup
}

// Bounds returns the union of all element bounds, and false when the
// document is empty.
func (d *Document) Bounds() (geom.Rect, bool) {
	if len(d.elements) == 0 {
		return geom.Rect{}, false
	}
	r := d.elements[0].Bounds()
	for _, e := range d.elements[1:] {
		b := e.Bounds()
		if b.MinX < r.MinX {
			r.MinX = b.MinX
		}
		if b.MinY < r.MinY {
			r.MinY = b.MinY
		}
		if b.MaxX > r.MaxX {
			r.MaxX = b.MaxX
		}
		if b.MaxY > r.MaxY {
			r.MaxY = b.MaxY
		}
	}
	return r, true
}
