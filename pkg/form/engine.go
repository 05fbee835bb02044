package form

import "github.com/go-drift/formidable/pkg/errors"

// Handler receives lifecycle notifications. values and status belong to the
// committed snapshot and must be treated as read-only.
type Handler func(values Values, status Status, event Event)

// Options configures an Engine.
type Options struct {
	// InitialValues are the starting values, restored on reset.
	InitialValues Values
	// InitialState seeds the interaction state (touched, dirty, errors,
	// submitted). Its Values, when non-nil, override InitialValues as the
	// current values; reset still restores InitialValues.
	InitialState *State
	// Events selects the events that reach Handler. Nil means all events.
	Events Events
	// Handler is notified after each selected event.
	Handler Handler
	// Schema validates values. Nil disables validation.
	Schema Schema
	// ValidateOn selects the events that run validation. Nil means none.
	ValidateOn Events
}

type listener struct {
	id int
	fn func(State)
}

// Engine holds the current State of a form and applies lifecycle events to
// it.
type Engine struct {
	initial    Values
	state      State
	events     Events
	validateOn Events
	handler    Handler
	schema     Schema

	listeners      []listener
	nextListenerID int
}

// New creates an engine and dispatches EventInit.
func New(opts Options) *Engine {
	events := opts.Events
	if events == nil {
		events = Events{EventAll}
	}
	e := &Engine{
		initial:    opts.InitialValues.Clone(),
		events:     events,
		validateOn: opts.ValidateOn,
		handler:    opts.Handler,
		schema:     opts.Schema,
	}

	state := initialState(e.initial)
	if opts.InitialState != nil {
		state = opts.InitialState.clone()
		if opts.InitialState.Values == nil {
			state.Values = e.initial.Clone()
		}
	}
	e.dispatch(EventInit, "", state)
	return e
}

// dispatch validates the candidate snapshot if ValidateOn selects the event,
// commits it, and then notifies listeners and, if Events selects the event,
// the handler. A non-empty key scopes validation to that field.
func (e *Engine) dispatch(event Event, key string, next State) {
	if e.validateOn.Contains(event) {
		if key != "" {
			next = validateField(e.schema, key, next)
		} else {
			next = validateForm(e.schema, next)
		}
	}

	e.state = next
	e.notifyListeners(next)

	if e.handler != nil && e.events.Contains(event) {
		e.handler(next.Values, next.Status, event)
	}
}

// SetField sets a field value and marks the field touched and dirty. An
// empty event is treated as EventChange.
func (e *Engine) SetField(key string, value any, event Event) {
	if event == "" {
		event = EventChange
	}
	e.dispatch(event, key, e.state.withField(key, value))
}

// HandleChange is SetField with EventChange.
func (e *Engine) HandleChange(key string, value any) {
	e.SetField(key, value, EventChange)
}

// HandleBlur dispatches EventBlur for a field.
func (e *Engine) HandleBlur(key string) {
	e.dispatch(EventBlur, key, e.state)
}

// HandleFocus marks a field touched and dispatches EventFocus.
func (e *Engine) HandleFocus(key string) {
	e.dispatch(EventFocus, key, e.state.withTouched(key))
}

// HandleSubmit marks the form submitted and dispatches EventSubmit.
func (e *Engine) HandleSubmit() {
	e.dispatch(EventSubmit, "", e.state.withSubmitted())
}

// HandleReset restores the last known initial values, clears all
// interaction state and dispatches EventReset.
func (e *Engine) HandleReset() {
	e.dispatch(EventReset, "", initialState(e.initial))
}

// Reinitialize replaces the initial values, for example once asynchronously
// loaded defaults arrive. The current values are replaced as well; touched,
// dirty, errors and submitted are kept. It dispatches EventInit.
func (e *Engine) Reinitialize(values Values) {
	e.initial = values.Clone()
	e.dispatch(EventInit, "", e.state.withValues(values))
}

// State returns the current snapshot. Its maps are shared with the engine
// and must be treated as read-only; use Values for a private copy.
func (e *Engine) State() State {
	return e.state
}

// Values returns a copy of the current values.
func (e *Engine) Values() Values {
	return e.state.Values.Clone()
}

// InitialValues returns a copy of the values HandleReset restores.
func (e *Engine) InitialValues() Values {
	return e.initial.Clone()
}

// FieldValue returns the value of a field, or nil if it is not set.
func (e *Engine) FieldValue(key string) any {
	return e.state.Values[key]
}

// FieldValueOr returns the value of a field, or fallback if it is not set
// or nil.
func (e *Engine) FieldValueOr(key string, fallback any) any {
	if v, ok := e.state.Values[key]; ok && v != nil {
		return v
	}
	return fallback
}

// Field returns the per-field view of the current state.
func (e *Engine) Field(key string) FieldState {
	return e.state.field(key)
}

// FieldError returns the validation error of a field.
func (e *Engine) FieldError(key string) (FieldError, bool) {
	fe, ok := e.state.Errors[key]
	return fe, ok
}

// HasErrors reports whether any field has a validation error.
func (e *Engine) HasErrors() bool {
	return len(e.state.Errors) > 0
}

// FieldTouched reports whether a field has been touched.
func (e *Engine) FieldTouched(key string) bool {
	return e.state.Touched[key]
}

// FormTouched reports whether any field has been touched.
func (e *Engine) FormTouched() bool {
	return anySet(e.state.Touched)
}

// FieldDirty reports whether a field has been changed.
func (e *Engine) FieldDirty(key string) bool {
	return e.state.Dirty[key]
}

// FormDirty reports whether any field has been changed.
func (e *Engine) FormDirty() bool {
	return anySet(e.state.Dirty)
}

// Submitted reports whether the form was submitted since the last reset.
func (e *Engine) Submitted() bool {
	return e.state.Submitted
}

// LastChangedField returns the key most recently set through SetField.
func (e *Engine) LastChangedField() string {
	return e.state.LastChangedField
}

// AddListener registers fn to be called with every committed snapshot,
// whether or not the handler is notified. Returns an unsubscribe function.
func (e *Engine) AddListener(fn func(State)) func() {
	id := e.nextListenerID
	e.nextListenerID++
	e.listeners = append(e.listeners, listener{id: id, fn: fn})

	return func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (e *Engine) ListenerCount() int {
	return len(e.listeners)
}

func (e *Engine) notifyListeners(s State) {
	listeners := make([]listener, len(e.listeners))
	copy(listeners, e.listeners)
	for _, l := range listeners {
		l.fn(s)
	}
}

// Async wraps h so that each notification runs on its own goroutine. The
// engine has already committed its state when h runs, so a slow handler does
// not delay further mutations. Panics in h are reported through
// errors.ReportPanic.
func Async(h Handler) Handler {
	if h == nil {
		return nil
	}
	return func(values Values, status Status, event Event) {
		go func() {
			defer errors.Recover("form.Async")
			h(values, status, event)
		}()
	}
}

func anySet(f Flags) bool {
	for _, v := range f {
		if v {
			return true
		}
	}
	return false
}
