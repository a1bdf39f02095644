package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"

	"tradeboard/internal/board"
	"tradeboard/internal/storage"
)

const appID = "io.tradeboard.app"

// RunApp wires storage, engine and widgets together and runs the event
// loop. This is the host-page boundary: everything above the board widget
// is shell.
func RunApp() {
	a := app.NewWithID(appID)
	win := a.NewWindow("Tradeboard")
	win.Resize(fyne.NewSize(1200, 800))

	store := storage.NewPreferencesStore(a.Preferences(), "")
	saver := storage.NewSaver(store)

	engine := board.NewEngine(store.Load())
	engine.OnPersist = saver.Schedule

	boardWidget := NewBoardWidget(engine)
	toolbar := NewToolbar(boardWidget, win)

	win.SetContent(container.NewBorder(toolbar, nil, nil, nil, boardWidget))
	bindKeys(win, boardWidget)

	win.SetOnClosed(func() {
		engine.Close()
		saver.Flush()
	})
	win.ShowAndRun()
}

// bindKeys attaches the global keyboard surface: undo/redo shortcuts,
// delete/escape, bracket brush sizing, and the ctrl tracking the wheel-zoom
// needs because scroll events carry no modifier state.
func bindKeys(win fyne.Window, b *BoardWidget) {
	engine := b.Engine()
	c := win.Canvas()

	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { engine.Undo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
		func(fyne.Shortcut) { engine.Redo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { engine.Redo() })

	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			engine.DeleteSelected()
		case fyne.KeyEscape:
			engine.Escape()
		case fyne.KeyLeftBracket:
			engine.AdjustBrushSize(-1)
		case fyne.KeyRightBracket:
			engine.AdjustBrushSize(1)
		}
	})

	if dc, ok := c.(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if isModifierKey(ev.Name) {
				b.SetCtrlHeld(true)
			}
		})
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			if isModifierKey(ev.Name) {
				b.SetCtrlHeld(false)
			}
		})
	}
}

func isModifierKey(name fyne.KeyName) bool {
	switch name {
	case desktop.KeyControlLeft, desktop.KeyControlRight,
		desktop.KeySuperLeft, desktop.KeySuperRight:
		return true
	}
	return false
}
