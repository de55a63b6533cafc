package gui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/modtranslator/internal/view"
)

// DefaultToastDuration is how long a notification stays visible
const DefaultToastDuration = 4 * time.Second

// Toast shows the most recent notification and hides itself after a while.
// All methods must be called on the UI goroutine.
type Toast struct {
	widget.BaseWidget

	container  *fyne.Container
	background *canvas.Rectangle
	icon       *widget.Icon
	title      *widget.Label
	message    *widget.Label

	duration time.Duration
	// generation of the visible notification, older hide timers are ignored
	generation uint64
}

// NewToast creates a hidden toast. A zero duration keeps notifications
// visible until the next one.
func NewToast(duration time.Duration) *Toast {
	t := &Toast{duration: duration}

	t.background = canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	t.background.CornerRadius = theme.InputRadiusSize()
	t.background.StrokeWidth = 1
	t.background.StrokeColor = theme.Color(theme.ColorNameInputBorder)

	t.icon = widget.NewIcon(theme.InfoIcon())
	t.title = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	t.message = widget.NewLabel("")

	t.container = container.NewStack(
		t.background,
		container.NewPadded(container.NewBorder(nil, nil, t.icon, nil,
			container.NewVBox(t.title, t.message),
		)),
	)

	t.ExtendBaseWidget(t)
	t.Hide()
	return t
}

// CreateRenderer implements fyne.Widget
func (t *Toast) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.container)
}

// Notify replaces the visible notification with n
func (t *Toast) Notify(n view.Notification) {
	t.generation++
	generation := t.generation

	t.title.SetText(n.Title)
	t.message.SetText(n.Description)
	if n.Destructive {
		t.icon.SetResource(theme.ErrorIcon())
		t.title.Importance = widget.DangerImportance
	} else {
		t.icon.SetResource(theme.ConfirmIcon())
		t.title.Importance = widget.SuccessImportance
	}
	t.title.Refresh()

	t.Show()

	if t.duration > 0 {
		time.AfterFunc(t.duration, func() {
			fyne.Do(func() {
				if t.generation == generation {
					t.Hide()
				}
			})
		})
	}
}

// Text returns the visible title and description
func (t *Toast) Text() (title, description string) {
	return t.title.Text, t.message.Text
}
