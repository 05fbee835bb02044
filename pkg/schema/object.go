package schema

import (
	"fmt"
	"strings"

	"github.com/go-drift/formidable/pkg/form"
)

// Field is a named field and the rules its value must satisfy.
type Field struct {
	Name  string
	Rules []Rule

	object *Object
}

// NewField returns a field with the given rules.
func NewField(name string, rules ...Rule) *Field {
	return &Field{Name: name, Rules: rules}
}

// Nested declares that the field holds an object validated by o. Paths of
// nested failures are joined with ".", e.g. "address.city".
func (f *Field) Nested(o *Object) *Field {
	f.object = o
	return f
}

// Object is a schema for a record of named fields. It implements
// form.Schema.
type Object struct {
	// Version is the document version the schema was loaded from, if any.
	Version string

	fields []*Field
	index  map[string]*Field
}

var _ form.Schema = (*Object)(nil)

// New returns an object schema over fields. Later fields with the same name
// replace earlier ones.
func New(fields ...*Field) *Object {
	o := &Object{index: make(map[string]*Field, len(fields))}
	for _, f := range fields {
		if _, dup := o.index[f.Name]; dup {
			for i, existing := range o.fields {
				if existing.Name == f.Name {
					o.fields[i] = f
				}
			}
		} else {
			o.fields = append(o.fields, f)
		}
		o.index[f.Name] = f
	}
	return o
}

// Fields returns the field names in declaration order.
func (o *Object) Fields() []string {
	names := make([]string, len(o.fields))
	for i, f := range o.fields {
		names[i] = f.Name
	}
	return names
}

// Validate checks every rule of every field and returns a
// *form.ValidationError listing all failures, or nil.
func (o *Object) Validate(values form.Values) error {
	var errs []form.FieldError
	o.collect("", values, &errs)
	return result(errs)
}

// ValidateAt checks the field at path, which may name a nested field
// ("address.city"). It returns a *form.ValidationError, nil, or an error
// if the path is unknown.
func (o *Object) ValidateAt(path string, values form.Values) error {
	obj := o
	var current map[string]any = values
	segments := strings.Split(path, ".")
	prefix := ""
	for i, name := range segments {
		f, ok := obj.index[name]
		if !ok {
			return fmt.Errorf("schema: no field %q", path)
		}
		if i == len(segments)-1 {
			var errs []form.FieldError
			f.collect(prefix, current, &errs)
			return result(errs)
		}
		if f.object == nil {
			return fmt.Errorf("schema: field %q is not an object", joinPath(prefix, name))
		}
		next, _ := asMap(current[name])
		obj, current, prefix = f.object, next, joinPath(prefix, name)
	}
	return fmt.Errorf("schema: no field %q", path)
}

func (o *Object) collect(prefix string, values map[string]any, out *[]form.FieldError) {
	for _, f := range o.fields {
		f.collect(prefix, values, out)
	}
}

func (f *Field) collect(prefix string, values map[string]any, out *[]form.FieldError) {
	path := joinPath(prefix, f.Name)
	value := values[f.Name]
	for _, r := range f.Rules {
		if msg := r.Check(path, value); msg != "" {
			*out = append(*out, form.FieldError{Path: path, Kind: r.Kind(), Message: msg})
		}
	}
	if f.object != nil {
		if m, ok := asMap(value); ok {
			f.object.collect(path, m, out)
		}
	}
}

func result(errs []form.FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &form.ValidationError{Errors: errs}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case form.Values:
		return m, true
	}
	return nil, false
}
