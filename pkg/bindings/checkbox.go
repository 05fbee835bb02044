package bindings

import (
	"fmt"

	"github.com/go-drift/formidable/pkg/errors"
	"github.com/go-drift/formidable/pkg/form"
)

// Variant is the value shape a Checkbox drives.
type Variant int

const (
	// Boolean fields hold a bool. Nil counts as false.
	Boolean Variant = iota
	// StringSet fields hold a []string; the checkbox toggles Option in it.
	StringSet
	// KeyedObjectSet fields hold a list of objects; the checkbox toggles
	// BoolProp on the element whose KeyProp equals ID.
	KeyedObjectSet
)

func (v Variant) String() string {
	switch v {
	case Boolean:
		return "boolean"
	case StringSet:
		return "string-set"
	case KeyedObjectSet:
		return "keyed-object-set"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Checkbox binds a checkbox to a field.
type Checkbox struct {
	Field   string
	Variant Variant

	// Option is the member toggled in a StringSet.
	Option string

	// ID selects the element of a KeyedObjectSet, compared with the
	// element's KeyProp using fmt.Sprint.
	ID       string
	KeyProp  string
	BoolProp string
}

// NewCheckbox validates cfg and returns a binding.
func NewCheckbox(cfg Checkbox) (*Checkbox, error) {
	const op = "bindings.NewCheckbox"
	if cfg.Field == "" {
		return nil, errors.ConfigError(op, "", "checkbox needs a field")
	}
	switch cfg.Variant {
	case Boolean:
	case StringSet:
		if cfg.Option == "" {
			return nil, errors.ConfigError(op, cfg.Field, "string-set checkbox needs an Option")
		}
	case KeyedObjectSet:
		if cfg.KeyProp == "" || cfg.BoolProp == "" {
			return nil, errors.ConfigError(op, cfg.Field, "keyed-object-set checkbox needs KeyProp and BoolProp")
		}
	default:
		return nil, errors.ConfigError(op, cfg.Field, "unknown checkbox variant %v", cfg.Variant)
	}
	c := cfg
	return &c, nil
}

// Checked reports whether the checkbox is checked for the current value.
func (c *Checkbox) Checked(f Form) (bool, error) {
	value := f.FieldValue(c.Field)
	switch c.Variant {
	case Boolean:
		return c.boolValue(value)
	case StringSet:
		set, err := c.stringSet(value)
		if err != nil {
			return false, err
		}
		return indexOf(set, c.Option) >= 0, nil
	case KeyedObjectSet:
		objs, err := c.objectSet(value)
		if err != nil {
			return false, err
		}
		i, err := c.find(objs)
		if err != nil {
			return false, err
		}
		checked, _ := objs[i][c.BoolProp].(bool)
		return checked, nil
	}
	return false, c.configError("unknown checkbox variant %v", c.Variant)
}

// Toggle flips the checkbox and sets the new value with form.EventChange.
func (c *Checkbox) Toggle(f Form) error {
	next, err := c.toggled(f.FieldValue(c.Field))
	if err != nil {
		return err
	}
	f.SetField(c.Field, next, form.EventChange)
	return nil
}

func (c *Checkbox) toggled(value any) (any, error) {
	switch c.Variant {
	case Boolean:
		b, err := c.boolValue(value)
		if err != nil {
			return nil, err
		}
		return !b, nil
	case StringSet:
		set, err := c.stringSet(value)
		if err != nil {
			return nil, err
		}
		if i := indexOf(set, c.Option); i >= 0 {
			next := make([]string, 0, len(set)-1)
			next = append(next, set[:i]...)
			return append(next, set[i+1:]...), nil
		}
		next := make([]string, 0, len(set)+1)
		next = append(next, set...)
		return append(next, c.Option), nil
	case KeyedObjectSet:
		objs, err := c.objectSet(value)
		if err != nil {
			return nil, err
		}
		i, err := c.find(objs)
		if err != nil {
			return nil, err
		}
		next := make([]map[string]any, len(objs))
		copy(next, objs)
		el := make(map[string]any, len(objs[i]))
		for k, v := range objs[i] {
			el[k] = v
		}
		checked, _ := el[c.BoolProp].(bool)
		el[c.BoolProp] = !checked
		next[i] = el
		return next, nil
	}
	return nil, c.configError("unknown checkbox variant %v", c.Variant)
}

func (c *Checkbox) boolValue(value any) (bool, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	}
	return false, c.configError("boolean checkbox field holds %T", value)
}

func (c *Checkbox) stringSet(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, len(v))
		for i, el := range v {
			s, ok := el.(string)
			if !ok {
				return nil, c.configError("string-set checkbox field holds a %T element", el)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, c.configError("string-set checkbox field holds %T", value)
}

func (c *Checkbox) objectSet(value any) ([]map[string]any, error) {
	switch v := value.(type) {
	case []map[string]any:
		return v, nil
	case []any:
		out := make([]map[string]any, len(v))
		for i, el := range v {
			m, ok := el.(map[string]any)
			if !ok {
				return nil, c.configError("keyed-object-set checkbox field holds a %T element", el)
			}
			out[i] = m
		}
		return out, nil
	}
	return nil, c.configError("keyed-object-set checkbox field holds %T", value)
}

func (c *Checkbox) find(objs []map[string]any) (int, error) {
	for i, el := range objs {
		if key, ok := el[c.KeyProp]; ok && fmt.Sprint(key) == c.ID {
			return i, nil
		}
	}
	return -1, c.configError("no element with %s=%q", c.KeyProp, c.ID)
}

func (c *Checkbox) configError(format string, args ...any) error {
	return errors.ConfigError("bindings.Checkbox", c.Field, format, args...)
}

func indexOf(set []string, s string) int {
	for i, x := range set {
		if x == s {
			return i
		}
	}
	return -1
}
