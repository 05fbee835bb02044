package schema

import (
	"encoding/json"
	"regexp"
	"testing"
)

func TestRules(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		value any
		pass  bool
	}{
		{"required nil", Required(), nil, false},
		{"required empty string", Required(), "", false},
		{"required empty slice", Required(), []string{}, false},
		{"required zero int", Required(), 0, true},
		{"required false", Required(), false, true},
		{"required string", Required(), "x", true},

		{"minLength short", MinLength(3), "ab", false},
		{"minLength exact", MinLength(3), "abc", true},
		{"minLength empty skipped", MinLength(3), "", true},
		{"minLength slice", MinLength(2), []any{1}, false},
		{"minLength not a string", MinLength(1), 12, false},

		{"maxLength long", MaxLength(5), "toolong", false},
		{"maxLength runes", MaxLength(2), "äö", true},
		{"maxLength nil skipped", MaxLength(1), nil, true},

		{"pattern match", Pattern(regexp.MustCompile(`^\d{5}$`)), "12345", true},
		{"pattern mismatch", Pattern(regexp.MustCompile(`^\d{5}$`)), "1234a", false},
		{"pattern not a string", Pattern(regexp.MustCompile(`.`)), 5, false},

		{"email valid", Email(), "me@example.com", true},
		{"email with name", Email(), "Me <me@example.com>", false},
		{"email invalid", Email(), "nope", false},

		{"min int", Min(18), 17, false},
		{"min float", Min(18), 18.0, true},
		{"min json number", Min(1), json.Number("0.5"), false},
		{"min numeric string", Min(1), "3", true},
		{"min not a number", Min(1), "three", false},
		{"max", Max(10), int64(11), false},
		{"max ok", Max(10), uint8(10), true},

		{"oneOf hit", OneOf("red", "green"), "green", true},
		{"oneOf miss", OneOf("red", "green"), "blue", false},
		{"oneOf formats value", OneOf("1", "2"), 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.rule.Check("field", tt.value)
			if pass := msg == ""; pass != tt.pass {
				t.Errorf("%s.Check(%v) = %q, want pass=%v", tt.rule.Kind(), tt.value, msg, tt.pass)
			}
		})
	}
}

func TestRuleMessages(t *testing.T) {
	if got, want := Required().Check("email", ""), "email is required"; got != want {
		t.Errorf("Required message = %q, want %q", got, want)
	}
	if got, want := MaxLength(10).Check("foo", "bazbazbazbaz"), "foo must be at most 10 characters"; got != want {
		t.Errorf("MaxLength message = %q, want %q", got, want)
	}
	if got, want := Min(1.5).Check("n", 1), "n must be greater than or equal to 1.5"; got != want {
		t.Errorf("Min message = %q, want %q", got, want)
	}
}

func TestWithMessage(t *testing.T) {
	r := WithMessage(Required(), "Please fill in this field")
	if got := r.Kind(); got != "required" {
		t.Errorf("Kind() = %q, want required", got)
	}
	if got := r.Check("foo", ""); got != "Please fill in this field" {
		t.Errorf("Check(empty) = %q", got)
	}
	if got := r.Check("foo", "x"); got != "" {
		t.Errorf("Check(x) = %q, want pass", got)
	}
}
