package bindings

import "github.com/go-drift/formidable/pkg/form"

// Form is the part of *form.Engine a binding needs.
type Form interface {
	FieldValue(key string) any
	SetField(key string, value any, event form.Event)
}

var _ Form = (*form.Engine)(nil)
