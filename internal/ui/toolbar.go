package ui

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tradeboard/internal/board"
	"tradeboard/internal/export"
	"tradeboard/internal/storage"
)

// colorSwatch is a tappable color square for the palette.
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	Value    string
	OnTapped func(string)
}

func newColorSwatch(c color.Color, value string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Color: c, Value: value, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Value)
	}
}

// NewToolbar builds the tool strip: tools, palette, stroke slider, history
// and view actions, and the file actions (save/load JSON, export PDF).
func NewToolbar(b *BoardWidget, win fyne.Window) fyne.CanvasObject {
	engine := b.Engine()

	tools := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() { engine.SetTool(board.ToolPencil) }),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() { engine.SetTool(board.ToolEraser) }),
		widget.NewToolbarAction(theme.RadioButtonIcon(), func() { engine.SetTool(board.ToolCircle) }),
		widget.NewToolbarAction(theme.CheckButtonIcon(), func() { engine.SetTool(board.ToolRectangle) }),
		widget.NewToolbarAction(theme.ContentRemoveIcon(), func() { engine.SetTool(board.ToolLine) }),
		widget.NewToolbarAction(theme.NavigateNextIcon(), func() { engine.SetTool(board.ToolArrow) }),
		widget.NewToolbarAction(theme.DocumentIcon(), func() { engine.SetTool(board.ToolText) }),
		widget.NewToolbarAction(theme.SearchIcon(), func() { engine.SetTool(board.ToolSelect) }),
		widget.NewToolbarAction(theme.MoveUpIcon(), func() { engine.SetTool(board.ToolPan) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.NavigateBackIcon(), engine.Undo),
		widget.NewToolbarAction(theme.NavigateNextIcon(), engine.Redo),
		widget.NewToolbarAction(theme.DeleteIcon(), engine.Clear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ZoomInIcon(), engine.ZoomIn),
		widget.NewToolbarAction(theme.ZoomOutIcon(), engine.ZoomOut),
		widget.NewToolbarAction(theme.ZoomFitIcon(), engine.ResetView),
		widget.NewToolbarAction(theme.GridIcon(), func() { b.SetShowGrid(!b.ShowGrid()) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { saveBoard(b, win) }),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() { loadBoard(b, win) }),
		widget.NewToolbarAction(theme.MailForwardIcon(), func() { exportBoard(b, win) }),
	)

	palette := container.NewHBox(
		newColorSwatch(color.Black, "black", engine.SetColor),
		newColorSwatch(parseColor("red"), "red", engine.SetColor),
		newColorSwatch(parseColor("green"), "green", engine.SetColor),
		newColorSwatch(parseColor("blue"), "blue", engine.SetColor),
	)

	strokeSlider := widget.NewSlider(1, 20)
	strokeSlider.SetValue(engine.BrushSize())
	strokeSlider.OnChanged = func(v float64) { engine.SetBrushSize(v) }
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), strokeSlider)

	return container.NewHBox(
		tools,
		widget.NewSeparator(),
		palette,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderBox,
		layout.NewSpacer(),
	)
}

func saveBoard(b *BoardWidget, win fyne.Window) {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := storage.WriteFile(writer, b.Engine().Document().Elements()); err != nil {
			log.Printf("ui: save board: %v", err)
			dialog.ShowError(err, win)
		}
	}, win)
}

func loadBoard(b *BoardWidget, win fyne.Window) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		elements, err := storage.ReadFile(reader)
		if err != nil {
			log.Printf("ui: load board: %v", err)
			dialog.ShowError(err, win)
			return
		}
		b.Engine().LoadFromFile(elements)
	}, win)
}

func exportBoard(b *BoardWidget, win fyne.Window) {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := export.PDF(path, b.Engine().Document()); err != nil {
			log.Printf("ui: export pdf: %v", err)
			dialog.ShowError(err, win)
		}
	}, win)
}
