package form

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-drift/formidable/pkg/errors"
)

// Schema validates form values. It is the contract the engine expects from
// a schema library.
//
// Validate must check the whole value set and report every failure rather
// than stopping at the first. ValidateAt checks a single field path within
// the value set. Both report failures as a *ValidationError; any other
// error is treated as an unstructured failure.
type Schema interface {
	Validate(values Values) error
	ValidateAt(path string, values Values) error
}

// KindInvalid is the FieldError kind used when a validator fails without a
// structured error.
const KindInvalid = "invalid"

// fieldKey returns the top-level field of a validator path:
// "address.city" and "address[0]" both map to "address".
func fieldKey(path string) string {
	if i := strings.IndexAny(path, ".["); i > 0 {
		return path[:i]
	}
	return path
}

// callSchema runs fn, converting a panic into an error. key names the field
// being validated, or is empty for the whole form.
func callSchema(op, key string, fn func() error) (panicked bool, err error) {
	defer errors.RecoverField(op, key, func(r any) {
		panicked = true
		err = fmt.Errorf("validator panicked: %v", r)
	})
	return false, fn()
}

// validateForm validates every field. The result replaces the error map.
func validateForm(schema Schema, s State) State {
	if schema == nil {
		return s
	}
	panicked, err := callSchema("form.validateForm", "", func() error {
		return schema.Validate(s.Values)
	})
	if err == nil {
		return s.withErrors(Errors{})
	}

	var verr *ValidationError
	if stderrors.As(err, &verr) {
		errs := make(Errors, len(verr.Errors))
		for _, fe := range verr.Errors {
			errs[fieldKey(fe.Path)] = fe
		}
		return s.withErrors(errs)
	}

	// Without field paths there is nothing to key the failure by.
	if !panicked {
		errors.Report(&errors.FormError{
			Op:   "form.validateForm",
			Kind: errors.KindSchema,
			Err:  err,
		})
	}
	return s
}

// validateField validates a single field. The result is merged into the
// error map; other fields are left untouched.
func validateField(schema Schema, key string, s State) State {
	if schema == nil {
		return s
	}
	_, err := callSchema("form.validateField", key, func() error {
		return schema.ValidateAt(key, s.Values)
	})

	errs := s.Errors.Clone()
	if err == nil {
		delete(errs, key)
		return s.withErrors(errs)
	}

	fe := FieldError{Path: key, Kind: KindInvalid, Message: err.Error()}
	var verr *ValidationError
	if stderrors.As(err, &verr) && len(verr.Errors) > 0 {
		fe = verr.Errors[len(verr.Errors)-1]
	}
	errs[key] = fe
	return s.withErrors(errs)
}
