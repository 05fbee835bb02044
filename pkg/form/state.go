package form

import (
	"fmt"
	"strings"
)

// Values maps field keys to field values.
type Values map[string]any

// Clone returns a shallow copy of v. A nil Values clones to an empty one.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, x := range v {
		out[k] = x
	}
	return out
}

// Flags maps field keys to an interaction flag. A missing key means false.
type Flags map[string]bool

// Clone returns a copy of f.
func (f Flags) Clone() Flags {
	out := make(Flags, len(f))
	for k, x := range f {
		out[k] = x
	}
	return out
}

// FieldError describes a validation failure.
type FieldError struct {
	// Path is the path reported by the validator, e.g. "address.city".
	Path string `json:"path" yaml:"path"`
	// Kind names the failed rule, e.g. "required" or "maxLength".
	Kind string `json:"kind" yaml:"kind"`
	// Message is the human readable description.
	Message string `json:"message" yaml:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Errors maps field keys to their validation error. A missing key means the
// field is valid.
type Errors map[string]FieldError

// Clone returns a copy of e.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, x := range e {
		out[k] = x
	}
	return out
}

// ValidationError is the structured failure a Schema reports: every failing
// path, in the order the schema found them.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("%d errors occurred: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Status is the form state without its values. It is what a Handler
// receives alongside the values.
type Status struct {
	Touched          Flags  `json:"touched" yaml:"touched"`
	Dirty            Flags  `json:"dirty" yaml:"dirty"`
	Errors           Errors `json:"errors" yaml:"errors"`
	Submitted        bool   `json:"submitted" yaml:"submitted"`
	LastChangedField string `json:"lastChangedField,omitempty" yaml:"lastChangedField,omitempty"`
}

// State is a complete snapshot of a form.
type State struct {
	Values Values `json:"values" yaml:"values"`
	Status `yaml:",inline"`
}

// FieldState is the per-field view of a State.
type FieldState struct {
	Value   any
	Touched bool
	Dirty   bool
	Error   *FieldError
}

func initialState(values Values) State {
	return State{
		Values: values.Clone(),
		Status: Status{
			Touched: Flags{},
			Dirty:   Flags{},
			Errors:  Errors{},
		},
	}
}

// clone returns a State whose maps are all fresh copies of s.
func (s State) clone() State {
	return State{
		Values: s.Values.Clone(),
		Status: Status{
			Touched:          s.Touched.Clone(),
			Dirty:            s.Dirty.Clone(),
			Errors:           s.Errors.Clone(),
			Submitted:        s.Submitted,
			LastChangedField: s.LastChangedField,
		},
	}
}

func (s State) withField(key string, value any) State {
	next := s.clone()
	next.Values[key] = value
	next.Touched[key] = true
	next.Dirty[key] = true
	next.LastChangedField = key
	return next
}

func (s State) withTouched(key string) State {
	next := s.clone()
	next.Touched[key] = true
	return next
}

func (s State) withSubmitted() State {
	next := s.clone()
	next.Submitted = true
	return next
}

// withValues replaces the values and keeps accumulated interaction state.
func (s State) withValues(values Values) State {
	next := s.clone()
	next.Values = values.Clone()
	return next
}

func (s State) withErrors(errs Errors) State {
	next := s.clone()
	next.Errors = errs
	return next
}

func (s State) field(key string) FieldState {
	fs := FieldState{
		Value:   s.Values[key],
		Touched: s.Touched[key],
		Dirty:   s.Dirty[key],
	}
	if e, ok := s.Errors[key]; ok {
		fs.Error = &e
	}
	return fs
}
