package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// CustomMultiLineEntry extends widget.Entry to handle Escape, Shift+Enter
// and window shortcuts while the entry has focus
type CustomMultiLineEntry struct {
	widget.Entry
	onEscape     func()
	onShiftEnter func()
	onShortcut   func(fyne.Shortcut) bool

	shiftHeld bool
}

// NewCustomMultiLineEntry creates a new custom multi-line entry
func NewCustomMultiLineEntry() *CustomMultiLineEntry {
	entry := &CustomMultiLineEntry{}
	entry.MultiLine = true
	entry.Wrapping = fyne.TextWrapWord
	entry.ExtendBaseWidget(entry)
	return entry
}

// KeyDown tracks the shift modifier
func (e *CustomMultiLineEntry) KeyDown(key *fyne.KeyEvent) {
	if key.Name == desktop.KeyShiftLeft || key.Name == desktop.KeyShiftRight {
		e.shiftHeld = true
	}
	e.Entry.KeyDown(key)
}

// KeyUp tracks the shift modifier
func (e *CustomMultiLineEntry) KeyUp(key *fyne.KeyEvent) {
	if key.Name == desktop.KeyShiftLeft || key.Name == desktop.KeyShiftRight {
		e.shiftHeld = false
	}
	e.Entry.KeyUp(key)
}

// TypedKey handles key events
func (e *CustomMultiLineEntry) TypedKey(key *fyne.KeyEvent) {
	switch {
	case key.Name == fyne.KeyEscape && e.onEscape != nil:
		e.onEscape()
		return
	case (key.Name == fyne.KeyReturn || key.Name == fyne.KeyEnter) && e.shiftHeld && e.onShiftEnter != nil:
		e.onShiftEnter()
		return
	}
	e.Entry.TypedKey(key)
}

// TypedShortcut offers shortcuts to the window handler first, the focused
// entry would otherwise swallow them
func (e *CustomMultiLineEntry) TypedShortcut(s fyne.Shortcut) {
	if e.onShortcut != nil && e.onShortcut(s) {
		return
	}
	e.Entry.TypedShortcut(s)
}

// SetOnEscape sets the callback for when Escape is pressed
func (e *CustomMultiLineEntry) SetOnEscape(f func()) {
	e.onEscape = f
}

// SetOnShiftEnter sets the callback for Shift+Enter
func (e *CustomMultiLineEntry) SetOnShiftEnter(f func()) {
	e.onShiftEnter = f
}

// SetOnShortcut sets the shortcut hook. It returns true when it handled the shortcut.
func (e *CustomMultiLineEntry) SetOnShortcut(f func(fyne.Shortcut) bool) {
	e.onShortcut = f
}
