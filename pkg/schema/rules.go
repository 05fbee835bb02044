package schema

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Rule checks a single field value.
type Rule interface {
	// Kind names the rule, e.g. "required" or "maxLength".
	Kind() string
	// Check returns a failure message, or "" when value passes. path is the
	// field path used in messages.
	Check(path string, value any) string
}

type ruleFunc struct {
	kind  string
	check func(path string, value any) string
}

func (r ruleFunc) Kind() string { return r.kind }

func (r ruleFunc) Check(path string, value any) string { return r.check(path, value) }

// nonEmpty wraps check so that empty values pass. Only Required rejects them.
func nonEmpty(kind string, check func(path string, value any) string) Rule {
	return ruleFunc{kind: kind, check: func(path string, value any) string {
		if isEmpty(value) {
			return ""
		}
		return check(path, value)
	}}
}

type messageRule struct {
	Rule
	message string
}

func (r messageRule) Check(path string, value any) string {
	if r.Rule.Check(path, value) == "" {
		return ""
	}
	return r.message
}

// WithMessage returns r with its failure message replaced by message.
func WithMessage(r Rule, message string) Rule {
	return messageRule{Rule: r, message: message}
}

// Required rejects nil, empty strings and empty collections.
func Required() Rule {
	return ruleFunc{kind: "required", check: func(path string, value any) string {
		if isEmpty(value) {
			return fmt.Sprintf("%s is required", path)
		}
		return ""
	}}
}

// MinLength requires strings (in runes) and collections to have at least n
// elements.
func MinLength(n int) Rule {
	return nonEmpty("minLength", func(path string, value any) string {
		l, ok := length(value)
		if !ok {
			return fmt.Sprintf("%s must be a string or list", path)
		}
		if l < n {
			return fmt.Sprintf("%s must be at least %d characters", path, n)
		}
		return ""
	})
}

// MaxLength requires strings (in runes) and collections to have at most n
// elements.
func MaxLength(n int) Rule {
	return nonEmpty("maxLength", func(path string, value any) string {
		l, ok := length(value)
		if !ok {
			return fmt.Sprintf("%s must be a string or list", path)
		}
		if l > n {
			return fmt.Sprintf("%s must be at most %d characters", path, n)
		}
		return ""
	})
}

// Pattern requires string values to match re.
func Pattern(re *regexp.Regexp) Rule {
	return nonEmpty("pattern", func(path string, value any) string {
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("%s must be a string", path)
		}
		if !re.MatchString(s) {
			return fmt.Sprintf("%s must match %s", path, re.String())
		}
		return ""
	})
}

// Email requires a single bare e-mail address.
func Email() Rule {
	return nonEmpty("email", func(path string, value any) string {
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("%s must be a string", path)
		}
		addr, err := mail.ParseAddress(s)
		if err != nil || addr.Address != s {
			return fmt.Sprintf("%s must be a valid email", path)
		}
		return ""
	})
}

// Min requires numeric values to be at least bound.
func Min(bound float64) Rule {
	return nonEmpty("min", func(path string, value any) string {
		f, ok := toFloat(value)
		if !ok {
			return fmt.Sprintf("%s must be a number", path)
		}
		if f < bound {
			return fmt.Sprintf("%s must be greater than or equal to %s", path, formatFloat(bound))
		}
		return ""
	})
}

// Max requires numeric values to be at most bound.
func Max(bound float64) Rule {
	return nonEmpty("max", func(path string, value any) string {
		f, ok := toFloat(value)
		if !ok {
			return fmt.Sprintf("%s must be a number", path)
		}
		if f > bound {
			return fmt.Sprintf("%s must be less than or equal to %s", path, formatFloat(bound))
		}
		return ""
	})
}

// OneOf requires the value, formatted with fmt.Sprint, to be one of allowed.
func OneOf(allowed ...string) Rule {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return nonEmpty("oneOf", func(path string, value any) string {
		if _, ok := set[fmt.Sprint(value)]; !ok {
			return fmt.Sprintf("%s must be one of: %s", path, strings.Join(allowed, ", "))
		}
		return ""
	})
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func length(value any) (int, bool) {
	if s, ok := value.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
