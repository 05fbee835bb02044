package formtest

import (
	"sync"
	"testing"

	"github.com/go-drift/formidable/pkg/errors"
	"github.com/go-drift/formidable/pkg/form"
)

// TestingT is the subset of *testing.T used by the assertions, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Notification is one handler call made by the engine under test.
type Notification struct {
	Event  form.Event  `yaml:"event"`
	Values form.Values `yaml:"values"`
	Status form.Status `yaml:"status"`
}

// Tester wraps an engine and records every notification it delivers and
// every error reported through the errors package while it is installed.
type Tester struct {
	Engine *form.Engine

	t             TestingT
	notifications []Notification

	mu       sync.Mutex
	reported []*errors.FormError
	panics   []*errors.PanicError
	prev     errors.ErrorHandler
}

// NewTester builds an engine from opts. A handler set in opts is still
// called after each notification is recorded. Call Cleanup when done, or
// use NewTesterWithT instead.
func NewTester(t TestingT, opts form.Options) *Tester {
	tester := &Tester{t: t, prev: errors.DefaultHandler}
	errors.SetHandler(tester)

	next := opts.Handler
	opts.Handler = func(values form.Values, status form.Status, event form.Event) {
		tester.notifications = append(tester.notifications, Notification{Event: event, Values: values, Status: status})
		if next != nil {
			next(values, status, event)
		}
	}
	tester.Engine = form.New(opts)
	return tester
}

// NewTesterWithT creates a tester that cleans up via t.Cleanup().
func NewTesterWithT(t *testing.T, opts form.Options) *Tester {
	tester := NewTester(t, opts)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the error handler that was installed before the tester.
func (t *Tester) Cleanup() {
	errors.SetHandler(t.prev)
}

// HandleError implements errors.ErrorHandler.
func (t *Tester) HandleError(err *errors.FormError) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reported = append(t.reported, err)
}

// HandlePanic implements errors.ErrorHandler.
func (t *Tester) HandlePanic(err *errors.PanicError) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.panics = append(t.panics, err)
}

// Notifications returns the notifications recorded so far.
func (t *Tester) Notifications() []Notification {
	return append([]Notification(nil), t.notifications...)
}

// Reported returns the errors reported so far.
func (t *Tester) Reported() []*errors.FormError {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*errors.FormError(nil), t.reported...)
}

// Panics returns the panics reported so far.
func (t *Tester) Panics() []*errors.PanicError {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*errors.PanicError(nil), t.panics...)
}

// ExpectEvents fails the test unless the recorded notifications carry
// exactly the given events in order.
func (t *Tester) ExpectEvents(events ...form.Event) {
	t.t.Helper()
	got := make([]form.Event, len(t.notifications))
	for i, n := range t.notifications {
		got[i] = n.Event
	}
	if len(got) != len(events) {
		t.t.Errorf("events = %v, want %v", got, events)
		return
	}
	for i := range got {
		if got[i] != events[i] {
			t.t.Errorf("events = %v, want %v", got, events)
			return
		}
	}
}

// ExpectError fails the test unless key has an error of the given kind.
func (t *Tester) ExpectError(key, kind string) {
	t.t.Helper()
	fe, ok := t.Engine.FieldError(key)
	if !ok {
		t.t.Errorf("no error for %q, want kind %q", key, kind)
		return
	}
	if fe.Kind != kind {
		t.t.Errorf("error for %q has kind %q, want %q", key, fe.Kind, kind)
	}
}

// ExpectNoErrors fails the test if any field has an error.
func (t *Tester) ExpectNoErrors() {
	t.t.Helper()
	if errs := t.Engine.State().Errors; len(errs) != 0 {
		t.t.Errorf("errors = %v, want none", errs)
	}
}
