package view

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"codeberg.org/snonux/modtranslator/internal/testutil"
)

type recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]Event, len(r.items))
	for i, n := range r.items {
		events[i] = n.Event
	}
	return events
}

func (r *recorder) Last() Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}
	}
	return r.items[len(r.items)-1]
}

func newTestController(tr Translator) (*Controller, *recorder, *testutil.MockClipboard) {
	rec := &recorder{}
	clip := &testutil.MockClipboard{}
	c := NewController(tr, WithNotifier(rec), WithClipboard(clip))
	return c, rec, clip
}

func TestNewController_InitialState(t *testing.T) {
	c, _, _ := newTestController(&testutil.MockTranslator{})

	got := c.State()
	if got != (State{}) {
		t.Errorf("Expected zero initial state, got %+v", got)
	}
	if got.CanCopy() {
		t.Error("Expected copy to be disallowed initially")
	}
}

func TestTranslate_BlankInput(t *testing.T) {
	inputs := []string{"", " ", "\t", "\n\n", "  \r\n\t  ", " ", "\uFEFF", " \uFEFF\n"}

	for i, input := range inputs {
		t.Run(fmt.Sprintf("input_%d", i), func(t *testing.T) {
			tr := &testutil.MockTranslator{Result: "should not be used"}
			c, rec, _ := newTestController(tr)
			c.EditSource(input)

			err := c.Translate(context.Background())
			if !errors.Is(err, ErrEmptyInput) {
				t.Errorf("Expected ErrEmptyInput, got %v", err)
			}
			if len(tr.Calls()) != 0 {
				t.Errorf("Expected no translator calls, got %v", tr.Calls())
			}

			last := rec.Last()
			if last.Event != EventEmptyInput {
				t.Errorf("Expected EmptyInput notification, got %v", last.Event)
			}
			if last.Description != "Введите текст для перевода" {
				t.Errorf("Unexpected description %q", last.Description)
			}
			if !last.Destructive {
				t.Error("Expected empty input notification to be destructive")
			}
			if c.State().Translating {
				t.Error("Expected in-flight flag to stay false")
			}
		})
	}
}

func TestTranslate_Success(t *testing.T) {
	tr := &testutil.MockTranslator{Result: "Привет, путник."}
	c, rec, _ := newTestController(tr)
	c.EditSource("Hello, traveler.")

	if err := c.Translate(context.Background()); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	calls := tr.Calls()
	if len(calls) != 1 || calls[0] != "Hello, traveler." {
		t.Errorf("Expected one call with the source text, got %v", calls)
	}

	s := c.State()
	if s.TranslatedText != "Привет, путник." {
		t.Errorf("TranslatedText = %q", s.TranslatedText)
	}
	if s.Translating {
		t.Error("Expected in-flight flag to be false after success")
	}
	if s.CharCount != 16 {
		t.Errorf("CharCount = %d, want 16", s.CharCount)
	}

	last := rec.Last()
	if last.Event != EventTranslateSucceeded || last.Title != "Готово" || last.Destructive {
		t.Errorf("Unexpected notification %+v", last)
	}
}

func TestTranslate_SourceIsSentUntrimmed(t *testing.T) {
	tr := &testutil.MockTranslator{Result: "ok"}
	c, _, _ := newTestController(tr)
	c.EditSource("  Whiterun\n")

	if err := c.Translate(context.Background()); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if calls := tr.Calls(); len(calls) != 1 || calls[0] != "  Whiterun\n" {
		t.Errorf("Expected untrimmed source to be sent, got %q", calls)
	}
}

func TestTranslate_FailureKeepsPreviousTranslation(t *testing.T) {
	tr := &testutil.MockTranslator{Result: "Вайтран"}
	c, rec, _ := newTestController(tr)
	c.EditSource("Whiterun")

	if err := c.Translate(context.Background()); err != nil {
		t.Fatalf("first Translate failed: %v", err)
	}

	tr.Err = errors.New("status 500")
	c.EditSource("Riften")
	if err := c.Translate(context.Background()); err == nil {
		t.Fatal("Expected error from failing translator")
	}

	s := c.State()
	if s.TranslatedText != "Вайтран" {
		t.Errorf("Expected previous translation to be kept, got %q", s.TranslatedText)
	}
	if s.Translating {
		t.Error("Expected in-flight flag to be false after failure")
	}

	last := rec.Last()
	if last.Event != EventTranslateFailed || last.Description != "Не удалось выполнить перевод" {
		t.Errorf("Unexpected notification %+v", last)
	}
}

func TestTranslate_PanicClearsFlag(t *testing.T) {
	c, rec, _ := newTestController(panicTranslator{})
	c.EditSource("Dragonborn")

	if err := c.Translate(context.Background()); err == nil {
		t.Fatal("Expected error from panicking translator")
	}
	if c.State().Translating {
		t.Error("Expected in-flight flag to be cleared")
	}
	if rec.Last().Event != EventTranslateFailed {
		t.Errorf("Expected TranslateFailed, got %v", rec.Last().Event)
	}
}

type panicTranslator struct{}

func (panicTranslator) Translate(context.Context, string) (string, error) {
	panic("boom")
}

func TestTranslate_RejectsConcurrentCalls(t *testing.T) {
	tr := &testutil.MockTranslator{
		Result:  "Кровь дракона",
		Release: make(chan struct{}),
		Started: make(chan struct{}, 1),
	}
	c, rec, _ := newTestController(tr)
	c.EditSource("Dragon blood")

	done := make(chan error, 1)
	go func() {
		done <- c.Translate(context.Background())
	}()

	select {
	case <-tr.Started:
	case <-time.After(2 * time.Second):
		t.Fatal("translator was not called")
	}

	if !c.State().Translating {
		t.Error("Expected in-flight flag while request is pending")
	}

	if err := c.Translate(context.Background()); !errors.Is(err, ErrTranslationInProgress) {
		t.Errorf("Expected ErrTranslationInProgress, got %v", err)
	}

	// Other operations stay usable while translating
	c.EditSource("Dragon blood!")
	c.ClearTranslation()

	close(tr.Release)
	if err := <-done; err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if n := len(tr.Calls()); n != 1 {
		t.Errorf("Expected exactly one translator call, got %d", n)
	}
	if got := rec.Events(); len(got) != 1 || got[0] != EventTranslateSucceeded {
		t.Errorf("Expected a single success notification, got %v", got)
	}

	s := c.State()
	if s.Translating {
		t.Error("Expected in-flight flag to be false")
	}
	if s.SourceText != "Dragon blood!" || s.CharCount != 13 {
		t.Errorf("Unexpected source state %+v", s)
	}
}

func TestEditSource_CharCount(t *testing.T) {
	c, _, _ := newTestController(&testutil.MockTranslator{})

	for _, text := range []string{"a", "ab", "Скайрим", "", "Geralt of Rivia"} {
		c.EditSource(text)
		s := c.State()
		if s.SourceText != text {
			t.Errorf("SourceText = %q, want %q", s.SourceText, text)
		}
		if s.CharCount != len([]rune(text)) {
			t.Errorf("CharCount = %d for %q, want %d", s.CharCount, text, len([]rune(text)))
		}
	}
}

func TestClear(t *testing.T) {
	tr := &testutil.MockTranslator{Result: "Ведьмак"}
	c, _, _ := newTestController(tr)
	c.EditSource("Witcher")
	if err := c.Translate(context.Background()); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	c.ClearSource()
	s := c.State()
	if s.SourceText != "" || s.CharCount != 0 {
		t.Errorf("Expected empty source after ClearSource, got %+v", s)
	}
	if s.TranslatedText != "Ведьмак" {
		t.Errorf("ClearSource must not touch the translation, got %q", s.TranslatedText)
	}

	c.EditSource("Witcher")
	c.ClearTranslation()
	s = c.State()
	if s.TranslatedText != "" {
		t.Errorf("Expected empty translation, got %q", s.TranslatedText)
	}
	if s.SourceText != "Witcher" || s.CharCount != 7 {
		t.Errorf("ClearTranslation must not touch the source, got %+v", s)
	}
}

func TestCopy(t *testing.T) {
	t.Run("empty is a no-op", func(t *testing.T) {
		c, rec, clip := newTestController(&testutil.MockTranslator{})

		if err := c.CopyTranslation(); !errors.Is(err, ErrNothingToCopy) {
			t.Errorf("Expected ErrNothingToCopy, got %v", err)
		}
		if len(clip.Written()) != 0 {
			t.Errorf("Expected no clipboard write, got %v", clip.Written())
		}
		if len(rec.Events()) != 0 {
			t.Errorf("Expected no notification, got %v", rec.Events())
		}
	})

	t.Run("copies exact translation", func(t *testing.T) {
		c, rec, clip := newTestController(&testutil.MockTranslator{Result: "Привет, путник.\n"})
		c.EditSource("Hello, traveler.")
		if err := c.Translate(context.Background()); err != nil {
			t.Fatalf("Translate failed: %v", err)
		}

		if err := c.CopyTranslation(); err != nil {
			t.Fatalf("CopyTranslation failed: %v", err)
		}
		if written := clip.Written(); len(written) != 1 || written[0] != "Привет, путник.\n" {
			t.Errorf("Unexpected clipboard content %q", written)
		}
		last := rec.Last()
		if last.Event != EventCopied || last.Title != "Скопировано" {
			t.Errorf("Unexpected notification %+v", last)
		}
	})

	t.Run("clipboard failure", func(t *testing.T) {
		c, rec, clip := newTestController(&testutil.MockTranslator{})
		clip.Err = errors.New("clipboard locked")

		if err := c.Copy("текст"); err == nil {
			t.Error("Expected clipboard error")
		}
		last := rec.Last()
		if last.Event != EventCopyFailed || last.Description != "Не удалось скопировать текст" {
			t.Errorf("Unexpected notification %+v", last)
		}
	})

	t.Run("no clipboard", func(t *testing.T) {
		rec := &recorder{}
		c := NewController(&testutil.MockTranslator{}, WithNotifier(rec))

		if err := c.Copy("текст"); err == nil {
			t.Error("Expected error without clipboard")
		}
		if rec.Last().Event != EventCopyFailed {
			t.Errorf("Expected CopyFailed, got %v", rec.Last().Event)
		}
	})
}

func TestOnChange(t *testing.T) {
	tr := &testutil.MockTranslator{Result: "Новиград"}
	c, _, _ := newTestController(tr)

	var states []State
	c.OnChange(func(s State) {
		states = append(states, s)
	})

	c.EditSource("Novigrad")
	if err := c.Translate(context.Background()); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	// edit, translate start, translate end
	if len(states) != 3 {
		t.Fatalf("Expected 3 state changes, got %d: %+v", len(states), states)
	}
	if !states[1].Translating {
		t.Error("Expected second snapshot to be in flight")
	}
	if states[2].Translating || states[2].TranslatedText != "Новиград" {
		t.Errorf("Unexpected final snapshot %+v", states[2])
	}
}

func TestEvent(t *testing.T) {
	tests := []struct {
		event       Event
		name        string
		destructive bool
	}{
		{EventEmptyInput, "EmptyInput", true},
		{EventTranslateFailed, "TranslateFailed", true},
		{EventTranslateSucceeded, "TranslateSucceeded", false},
		{EventCopied, "Copied", false},
		{EventCopyFailed, "CopyFailed", true},
		{Event(99), "Unknown", false},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.event.Destructive(); got != tt.destructive {
			t.Errorf("%s.Destructive() = %v, want %v", tt.name, got, tt.destructive)
		}
	}
}
