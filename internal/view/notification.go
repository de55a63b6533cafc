package view

import "codeberg.org/snonux/modtranslator/internal/messages"

// Event identifies the outcome a notification reports
type Event int

const (
	EventEmptyInput Event = iota
	EventTranslateFailed
	EventTranslateSucceeded
	EventCopied
	EventCopyFailed
)

func (e Event) String() string {
	switch e {
	case EventEmptyInput:
		return "EmptyInput"
	case EventTranslateFailed:
		return "TranslateFailed"
	case EventTranslateSucceeded:
		return "TranslateSucceeded"
	case EventCopied:
		return "Copied"
	case EventCopyFailed:
		return "CopyFailed"
	default:
		return "Unknown"
	}
}

// Destructive reports whether the event is an error
func (e Event) Destructive() bool {
	switch e {
	case EventEmptyInput, EventTranslateFailed, EventCopyFailed:
		return true
	}
	return false
}

// messageIDs returns the catalog ids of the title and description
func (e Event) messageIDs() (title, description string) {
	switch e {
	case EventEmptyInput:
		return messages.ErrorTitle, messages.EmptyInput
	case EventTranslateFailed:
		return messages.ErrorTitle, messages.TranslateFailed
	case EventTranslateSucceeded:
		return messages.TranslateSucceededTitle, messages.TranslateSucceeded
	case EventCopied:
		return messages.CopiedTitle, messages.Copied
	case EventCopyFailed:
		return messages.ErrorTitle, messages.CopyFailed
	}
	return "", ""
}

// Notification is a transient message shown to the user
type Notification struct {
	Event       Event
	Title       string
	Description string
	Destructive bool
}

// Notifier delivers notifications. Delivery is fire-and-forget; only the most
// recent notification needs to stay visible.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(n Notification)

// Notify calls f(n)
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// newNotification renders the texts of e through catalog
func newNotification(catalog *messages.Catalog, e Event) Notification {
	titleID, descID := e.messageIDs()
	return Notification{
		Event:       e,
		Title:       catalog.T(titleID, nil),
		Description: catalog.T(descID, nil),
		Destructive: e.Destructive(),
	}
}
