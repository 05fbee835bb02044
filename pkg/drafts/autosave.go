package drafts

import (
	"github.com/go-drift/formidable/pkg/errors"
	"github.com/go-drift/formidable/pkg/form"
)

// Autosave returns a handler that keeps the draft of formID current: it
// saves on change, blur and focus and deletes the draft on submit and reset.
// next, if non-nil, is called afterwards. Storage failures are reported
// through errors.Report and do not stop next from running.
//
// The returned handler only sees the events the engine is configured to
// deliver, so Options.Events must include the ones above.
func Autosave(store *Store, formID string, next form.Handler) form.Handler {
	return func(values form.Values, status form.Status, event form.Event) {
		var err error
		switch event {
		case form.EventChange, form.EventBlur, form.EventFocus:
			err = store.Save(formID, values, status)
		case form.EventSubmit, form.EventReset:
			err = store.Delete(formID)
		}
		if err != nil {
			errors.Report(&errors.FormError{
				Op:   "drafts.Autosave",
				Kind: errors.KindStorage,
				Err:  err,
			})
		}
		if next != nil {
			next(values, status, event)
		}
	}
}

// Restore returns form options seeded from the stored draft of formID, if
// any. opts is returned unchanged when there is no draft.
func Restore(store *Store, formID string, opts form.Options) (form.Options, error) {
	d, err := store.Load(formID)
	if err == ErrNoDraft {
		return opts, nil
	}
	if err != nil {
		return opts, &errors.FormError{Op: "drafts.Restore", Kind: errors.KindStorage, Err: err}
	}
	opts.InitialState = d.State()
	return opts, nil
}
