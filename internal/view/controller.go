package view

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"codeberg.org/snonux/modtranslator/internal"
	"codeberg.org/snonux/modtranslator/internal/messages"
)

var (
	// ErrTranslationInProgress is returned by Translate while another
	// translation of the same controller is still in flight
	ErrTranslationInProgress = errors.New("translation already in progress")

	// ErrEmptyInput is returned by Translate when the source text is blank
	ErrEmptyInput = errors.New("source text is empty")

	// ErrNothingToCopy is returned by Copy for an empty string
	ErrNothingToCopy = errors.New("nothing to copy")
)

// Translator sends source text to a translation endpoint
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Clipboard receives copied text
type Clipboard interface {
	WriteText(text string) error
}

// State is a snapshot of the controller state
type State struct {
	SourceText     string
	TranslatedText string
	Translating    bool
	CharCount      int
}

// CanCopy reports whether there is a translation to copy or clear
func (s State) CanCopy() bool {
	return s.TranslatedText != ""
}

// Controller owns the state of one translator view
type Controller struct {
	translator Translator
	clipboard  Clipboard
	notifier   Notifier
	catalog    *messages.Catalog
	logger     *log.Logger

	mu        sync.Mutex
	state     State
	listeners []func(State)
}

// Option configures a Controller
type Option func(*Controller)

// WithClipboard sets the clipboard used by Copy
func WithClipboard(c Clipboard) Option {
	return func(ctrl *Controller) { ctrl.clipboard = c }
}

// WithNotifier sets where notifications are delivered
func WithNotifier(n Notifier) Option {
	return func(ctrl *Controller) { ctrl.notifier = n }
}

// WithCatalog sets the catalog notifications are rendered with
func WithCatalog(c *messages.Catalog) Option {
	return func(ctrl *Controller) { ctrl.catalog = c }
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(ctrl *Controller) { ctrl.logger = l }
}

// NewController creates a controller in the idle state with empty panes
func NewController(translator Translator, opts ...Option) *Controller {
	c := &Controller{
		translator: translator,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.notifier == nil {
		c.notifier = NotifierFunc(func(Notification) {})
	}
	if c.catalog == nil {
		c.catalog = messages.NewCatalog(messages.DefaultLocale)
	}
	if c.logger == nil {
		c.logger = log.Default()
	}

	return c
}

// OnChange registers fn to be called with a fresh snapshot after every state
// change. fn runs on the goroutine that caused the change.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// EditSource replaces the source text and its character count
func (c *Controller) EditSource(text string) {
	c.update(func(s *State) {
		s.SourceText = text
		s.CharCount = internal.CountChars(text)
	})
}

// ClearSource empties the source pane
func (c *Controller) ClearSource() {
	c.EditSource("")
}

// ClearTranslation empties the target pane
func (c *Controller) ClearTranslation() {
	c.update(func(s *State) {
		s.TranslatedText = ""
	})
}

// Translate sends the current source text to the translator. Blank input is
// rejected with a notification and no request. While a translation is in
// flight further calls return ErrTranslationInProgress without side effects.
// On failure the translated text is left unchanged.
func (c *Controller) Translate(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Translating {
		c.mu.Unlock()
		return ErrTranslationInProgress
	}
	source := c.state.SourceText
	if internal.IsBlank(source) {
		c.mu.Unlock()
		c.notify(EventEmptyInput)
		return ErrEmptyInput
	}
	c.state.Translating = true
	snapshot, listeners := c.state, c.listeners
	c.mu.Unlock()
	c.emit(snapshot, listeners)

	translated, err := c.translate(ctx, source)

	c.update(func(s *State) {
		if err == nil {
			s.TranslatedText = translated
		}
		s.Translating = false
	})

	if err != nil {
		c.logger.Debug("translation failed", "chars", internal.CountChars(source), "err", err)
		c.notify(EventTranslateFailed)
		return err
	}

	c.notify(EventTranslateSucceeded)
	return nil
}

// translate calls the translator, turning a panic into an error so the
// in-flight flag is always cleared
func (c *Controller) translate(ctx context.Context, source string) (translated string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("translator panicked")
			c.logger.Error("translator panicked", "panic", r)
		}
	}()
	return c.translator.Translate(ctx, source)
}

// Copy writes text to the clipboard. Empty text is not copied.
func (c *Controller) Copy(text string) error {
	if text == "" {
		return ErrNothingToCopy
	}

	var err error
	if c.clipboard == nil {
		err = errors.New("no clipboard available")
	} else {
		err = c.clipboard.WriteText(text)
	}

	if err != nil {
		c.logger.Debug("clipboard write failed", "err", err)
		c.notify(EventCopyFailed)
		return err
	}

	c.notify(EventCopied)
	return nil
}

// CopyTranslation copies the current translated text
func (c *Controller) CopyTranslation() error {
	return c.Copy(c.State().TranslatedText)
}

func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	fn(&c.state)
	snapshot, listeners := c.state, c.listeners
	c.mu.Unlock()
	c.emit(snapshot, listeners)
}

func (c *Controller) emit(snapshot State, listeners []func(State)) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}

func (c *Controller) notify(e Event) {
	c.notifier.Notify(newNotification(c.catalog, e))
}
