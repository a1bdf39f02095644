package board

// Tool is the active drawing tool selected in the toolbar.
type Tool int

const (
	ToolPan Tool = iota
	ToolSelect
	ToolPencil
	ToolEraser
	ToolLine
	ToolArrow
	ToolRectangle
	ToolCircle
	ToolText
)

func (t Tool) String() string {
	switch t {
	case ToolPan:
		return "pan"
	case ToolSelect:
		return "select"
	case ToolPencil:
		return "pencil"
	case ToolEraser:
		return "eraser"
	case ToolLine:
		return "line"
	case ToolArrow:
		return "arrow"
	case ToolRectangle:
		return "rectangle"
	case ToolCircle:
		return "circle"
	case ToolText:
		return "text"
	default:
		return "unknown"
	}
}

// elementType maps a drawing tool to the element variant it creates.
// Non-drawing tools report false.
func (t Tool) elementType() (ElementType, bool) {
	switch t {
	case ToolPencil:
		return TypePencil, true
	case ToolEraser:
		return TypeEraser, true
	case ToolLine:
		return TypeLine, true
	case ToolArrow:
		return TypeArrow, true
	case ToolRectangle:
		return TypeRectangle, true
	case ToolCircle:
		return TypeCircle, true
	}
	return 0, false
}

// State is the single active interaction mode. Modeling this as one enum
// instead of a pile of booleans makes illegal combinations (panning while
// resizing, say) unrepresentable.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StatePanning
	StateDraggingSelection
	StateResizing
	StateTextEditing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StatePanning:
		return "panning"
	case StateDraggingSelection:
		return "dragging-selection"
	case StateResizing:
		return "resizing"
	case StateTextEditing:
		return "text-editing"
	default:
		return "unknown"
	}
}

// Handle identifies a corner of the selection box during a resize.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleNE
	HandleSW
	HandleSE
)
