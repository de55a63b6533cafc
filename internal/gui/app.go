package gui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/modtranslator/internal"
	"codeberg.org/snonux/modtranslator/internal/messages"
	"codeberg.org/snonux/modtranslator/internal/view"
)

// errNoClipboard is returned when the platform offers no clipboard
var errNoClipboard = errors.New("clipboard not available")

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	sourceEntry       *CustomMultiLineEntry
	targetEntry       *CustomMultiLineEntry
	sourceCount       *widget.Label
	targetCount       *widget.Label
	translateButton   *ttwidget.Button
	clearSourceButton *ttwidget.Button
	copyButton        *ttwidget.Button
	clearTargetButton *ttwidget.Button
	toast             *Toast
	history           *History

	// Shortcuts by name, shared by the canvas and the focused entries
	shortcuts map[string]func()

	ctrl    *view.Controller
	catalog *messages.Catalog
	logger  *log.Logger

	// rendering is set while render writes into the entries, so their
	// OnChanged callbacks do not feed the text back into the controller
	rendering bool

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// runAsync runs translations off the UI goroutine, uiDo schedules UI updates
	runAsync func(func())
	uiDo     func(func())
}

// Config holds GUI application configuration
type Config struct {
	Translator view.Translator
	Locale     string
	Logger     *log.Logger
	// ToastDuration defaults to DefaultToastDuration
	ToastDuration time.Duration
}

// New creates a new GUI application
func New(config *Config) *Application {
	myApp := app.NewWithID("dev.modtranslator")
	myApp.SetIcon(GetAppIcon())
	return newApplication(myApp, config)
}

func newApplication(fyneApp fyne.App, config *Config) *Application {
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.ToastDuration == 0 {
		config.ToastDuration = DefaultToastDuration
	}

	ctx, cancel := context.WithCancel(context.Background())

	a := &Application{
		app:       fyneApp,
		catalog:   messages.NewCatalog(config.Locale),
		logger:    config.Logger,
		shortcuts: make(map[string]func()),
		ctx:       ctx,
		cancel:    cancel,
		uiDo:      fyne.Do,
	}
	a.runAsync = func(f func()) {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			f()
		}()
	}

	a.ctrl = view.NewController(config.Translator,
		view.WithCatalog(a.catalog),
		view.WithLogger(a.logger),
		view.WithClipboard(clipboardWriter{app: fyneApp}),
		view.WithNotifier(view.NotifierFunc(a.onNotification)),
	)

	a.toast = NewToast(config.ToastDuration)
	a.history = NewHistory()

	a.setupUI()

	// Render the latest state, not the snapshot, so a late update never
	// rolls the entries back
	a.ctrl.OnChange(func(view.State) {
		a.uiDo(func() {
			a.render(a.ctrl.State())
		})
	})
	a.render(a.ctrl.State())

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	t := a.catalog.T

	a.window = a.app.NewWindow(fmt.Sprintf("%s v%s", t(messages.AppTitle, nil), internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(1100, 760))

	// Header
	title := widget.NewLabelWithStyle(t(messages.AppTitle, nil), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	title.SizeName = theme.SizeNameHeadingText
	subtitle := widget.NewLabel(t(messages.AppSubtitle, nil))
	subtitle.Importance = widget.LowImportance
	header := container.NewVBox(title, subtitle)

	// Source pane
	a.sourceEntry = NewCustomMultiLineEntry()
	a.sourceEntry.SetPlaceHolder(t(messages.SourcePlaceholder, nil))
	a.sourceEntry.TextStyle = fyne.TextStyle{Monospace: true}
	a.sourceEntry.OnChanged = func(text string) {
		if a.rendering {
			return
		}
		a.ctrl.EditSource(text)
	}
	a.sourceEntry.SetOnEscape(a.window.Canvas().Unfocus)
	a.sourceEntry.SetOnShiftEnter(a.onTranslate)
	a.sourceEntry.SetOnShortcut(a.handleShortcut)

	a.sourceCount = widget.NewLabel("")
	a.sourceCount.Importance = widget.LowImportance

	a.translateButton = ttwidget.NewButtonWithIcon(t(messages.TranslateButton, nil), theme.NavigateNextIcon(), a.onTranslate)
	a.translateButton.Importance = widget.HighImportance
	a.clearSourceButton = ttwidget.NewButtonWithIcon("", theme.ContentClearIcon(), a.ctrl.ClearSource)

	sourcePane := a.newPane(t(messages.SourcePaneTitle, nil), a.sourceCount, a.sourceEntry,
		container.NewBorder(nil, nil, nil, a.clearSourceButton, a.translateButton))

	// Target pane, read-only
	a.targetEntry = NewCustomMultiLineEntry()
	a.targetEntry.SetPlaceHolder(t(messages.TargetPlaceholder, nil))
	a.targetEntry.TextStyle = fyne.TextStyle{Monospace: true}
	a.targetEntry.Disable()
	a.targetEntry.SetOnEscape(a.window.Canvas().Unfocus)
	a.targetEntry.SetOnShortcut(a.handleShortcut)

	a.targetCount = widget.NewLabel("")
	a.targetCount.Importance = widget.LowImportance

	a.copyButton = ttwidget.NewButtonWithIcon(t(messages.CopyButton, nil), theme.ContentCopyIcon(), a.onCopy)
	a.clearTargetButton = ttwidget.NewButtonWithIcon("", theme.ContentClearIcon(), a.ctrl.ClearTranslation)

	targetPane := a.newPane(t(messages.TargetPaneTitle, nil), a.targetCount, a.targetEntry,
		container.NewBorder(nil, nil, nil, a.clearTargetButton, a.copyButton))

	panes := container.New(layout.NewGridLayout(2), sourcePane, targetPane)

	// Informational card
	features := container.NewVBox()
	for _, id := range messages.Features {
		features.Add(container.NewHBox(widget.NewIcon(theme.ConfirmIcon()), widget.NewLabel(t(id, nil))))
	}
	featuresCard := widget.NewCard("", "", container.NewVBox(
		container.NewHBox(widget.NewIcon(theme.InfoIcon()), widget.NewLabelWithStyle(t(messages.FeaturesTitle, nil), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})),
		features,
	))

	historyAccordion := widget.NewAccordion(widget.NewAccordionItem(t(messages.HistoryTitle, nil), a.history))

	content := container.NewBorder(
		header,
		container.NewVBox(featuresCard, historyAccordion),
		nil, nil,
		panes,
	)

	// Toast floats over the bottom right corner
	toastLayer := container.NewVBox(
		layout.NewSpacer(),
		container.NewHBox(layout.NewSpacer(), a.toast),
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(
		container.NewStack(container.NewPadded(content), container.NewPadded(toastLayer)),
		a.window.Canvas(),
	))

	// Now that tooltip layer is created, set all tooltips
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.cancel()
		a.wg.Wait()
	})

	// Set up keyboard shortcuts
	a.setupKeyboardShortcuts()
}

// newPane lays out one translation pane inside a card
func (a *Application) newPane(title string, count *widget.Label, entry fyne.CanvasObject, buttons fyne.CanvasObject) fyne.CanvasObject {
	top := container.NewHBox(
		widget.NewIcon(theme.DocumentIcon()),
		widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		count,
	)

	scroll := container.NewScroll(entry)
	scroll.SetMinSize(fyne.NewSize(0, 400))

	return widget.NewCard("", "", container.NewBorder(top, buttons, nil, nil, scroll))
}

// setupTooltips sets up all tooltips after the tooltip layer has been created
func (a *Application) setupTooltips() {
	t := a.catalog.T
	a.translateButton.SetToolTip(t(messages.TranslateTooltip, nil))
	a.copyButton.SetToolTip(t(messages.CopyTooltip, nil))
	a.clearSourceButton.SetToolTip(t(messages.ClearSourceTooltip, nil))
	a.clearTargetButton.SetToolTip(t(messages.ClearTranslationTooltip, nil))
}

func (a *Application) setupKeyboardShortcuts() {
	translate := &desktop.CustomShortcut{KeyName: fyne.KeyReturn, Modifier: fyne.KeyModifierShortcutDefault}
	copyTranslation := &desktop.CustomShortcut{KeyName: fyne.KeyC, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}

	a.addShortcut(translate, a.onTranslate)
	a.addShortcut(copyTranslation, a.onCopy)

	// Escape unfocuses whatever has focus
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			a.window.Canvas().Unfocus()
		}
	})
}

func (a *Application) addShortcut(s fyne.Shortcut, fn func()) {
	a.shortcuts[s.ShortcutName()] = fn
	a.window.Canvas().AddShortcut(s, func(fyne.Shortcut) { fn() })
}

// handleShortcut runs the window shortcut matching s, if any
func (a *Application) handleShortcut(s fyne.Shortcut) bool {
	fn, ok := a.shortcuts[s.ShortcutName()]
	if !ok {
		return false
	}
	fn()
	return true
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// onTranslate starts a translation in the background. The controller
// rejects the call while one is already running.
func (a *Application) onTranslate() {
	if a.ctrl.State().Translating {
		return
	}
	a.runAsync(func() {
		if err := a.ctrl.Translate(a.ctx); err != nil {
			a.logger.Debug("translate", "err", err)
		}
	})
}

func (a *Application) onCopy() {
	if err := a.ctrl.CopyTranslation(); err != nil {
		a.logger.Debug("copy", "err", err)
	}
}

// onNotification may be called from any goroutine
func (a *Application) onNotification(n view.Notification) {
	a.uiDo(func() {
		a.toast.Notify(n)
		a.history.Notify(n)
	})
}

// render updates every widget from s. Must run on the UI goroutine.
func (a *Application) render(s view.State) {
	t := a.catalog.T

	a.rendering = true
	if a.sourceEntry.Text != s.SourceText {
		a.sourceEntry.SetText(s.SourceText)
	}
	if a.targetEntry.Text != s.TranslatedText {
		a.targetEntry.SetText(s.TranslatedText)
	}
	a.rendering = false

	a.sourceCount.SetText(t(messages.CharCount, map[string]any{"Count": s.CharCount}))
	a.targetCount.SetText(t(messages.CharCount, map[string]any{"Count": internal.CountChars(s.TranslatedText)}))

	if s.Translating {
		a.translateButton.SetText(t(messages.TranslatingButton, nil))
		a.translateButton.SetIcon(theme.ViewRefreshIcon())
		a.translateButton.Disable()
	} else {
		a.translateButton.SetText(t(messages.TranslateButton, nil))
		a.translateButton.SetIcon(theme.NavigateNextIcon())
		a.translateButton.Enable()
	}

	if s.CanCopy() {
		a.copyButton.Enable()
		a.clearTargetButton.Enable()
	} else {
		a.copyButton.Disable()
		a.clearTargetButton.Disable()
	}
}

// clipboardWriter adapts the fyne clipboard to view.Clipboard
type clipboardWriter struct {
	app fyne.App
}

func (c clipboardWriter) WriteText(text string) error {
	cb := c.app.Clipboard()
	if cb == nil {
		return errNoClipboard
	}
	cb.SetContent(text)
	return nil
}
