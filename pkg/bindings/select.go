package bindings

import (
	"reflect"

	"github.com/go-drift/formidable/pkg/form"
)

// Option is a choice of a Select: the text shown and the value stored.
type Option struct {
	Display string
	Value   any
}

// Select binds a list of options to a field.
type Select struct {
	Field   string
	Options []Option
}

// Selected returns the display text of the option matching the current
// value, or "" if none matches.
func (s Select) Selected(f Form) string {
	value := f.FieldValue(s.Field)
	for _, o := range s.Options {
		if reflect.DeepEqual(o.Value, value) {
			return o.Display
		}
	}
	return ""
}

// Choose sets the value of the option displayed as display. It reports
// whether such an option exists; unknown choices leave the field unchanged.
func (s Select) Choose(f Form, display string) bool {
	for _, o := range s.Options {
		if o.Display == display {
			f.SetField(s.Field, o.Value, form.EventChange)
			return true
		}
	}
	return false
}
