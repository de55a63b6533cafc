package gui

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/modtranslator/internal/view"
)

// History is a widget listing past notifications, newest first.
// All methods must be called on the UI goroutine.
type History struct {
	widget.BaseWidget

	entry      *widget.Entry
	scrollView *container.Scroll

	messages    []string
	maxMessages int
	now         func() time.Time
}

// NewHistory creates a new notification history widget
func NewHistory() *History {
	h := &History{
		maxMessages: 100,
		now:         time.Now,
	}

	// Read-only multiline entry
	h.entry = widget.NewMultiLineEntry()
	h.entry.Disable()
	h.entry.Wrapping = fyne.TextWrapWord

	h.scrollView = container.NewScroll(h.entry)
	h.scrollView.SetMinSize(fyne.NewSize(0, 120))

	h.ExtendBaseWidget(h)
	return h
}

// CreateRenderer implements fyne.Widget
func (h *History) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.scrollView)
}

// Notify records n with a timestamp
func (h *History) Notify(n view.Notification) {
	mark := " "
	if n.Destructive {
		mark = "!"
	}
	line := fmt.Sprintf("[%s] %s %s: %s", h.now().Format("15:04:05"), mark, n.Title, n.Description)

	// Prepend (newest first) and drop the oldest beyond the limit
	h.messages = append([]string{line}, h.messages...)
	if len(h.messages) > h.maxMessages {
		h.messages = h.messages[:h.maxMessages]
	}

	h.entry.SetText(strings.Join(h.messages, "\n"))
	h.scrollView.Offset = fyne.NewPos(0, 0)
	h.scrollView.Refresh()
}

// Messages returns the recorded lines, newest first
func (h *History) Messages() []string {
	return append([]string(nil), h.messages...)
}

// Clear removes all recorded notifications
func (h *History) Clear() {
	h.messages = h.messages[:0]
	h.entry.SetText("")
}
