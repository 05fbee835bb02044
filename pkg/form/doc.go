// Package form implements the form-state engine: field values, touched and
// dirty flags, per-field validation errors and lifecycle notifications for a
// record of named fields.
//
// An [Engine] is driven by a host binding through its mutation methods
// ([Engine.SetField], [Engine.HandleBlur], [Engine.HandleFocus],
// [Engine.HandleSubmit], [Engine.HandleReset], [Engine.Reinitialize]). Each
// mutation builds a new [State] snapshot, optionally validates it against a
// [Schema], commits it, and then optionally notifies a [Handler].
//
// Two independent filters act on the event stream:
//   - Options.ValidateOn selects the events that run validation.
//   - Options.Events selects the events that reach the Handler.
//
// A consumer may therefore validate silently on every change while only being
// notified on submit:
//
//	engine := form.New(form.Options{
//	    InitialValues: form.Values{"email": ""},
//	    Schema:        signupSchema,
//	    ValidateOn:    form.Events{form.EventChange},
//	    Events:        form.Events{form.EventSubmit},
//	    Handler: func(values form.Values, status form.Status, event form.Event) {
//	        if len(status.Errors) == 0 {
//	            submit(values)
//	        }
//	    },
//	})
//	engine.HandleChange("email", "me@example.com")
//	engine.HandleSubmit()
//
// Engine is not safe for concurrent use. Drive it from one goroutine (the UI
// goroutine of the host). Snapshots returned by the engine are never mutated
// after they are handed out, so they may be read from anywhere.
package form
