package schema

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/formidable/pkg/form"
	"github.com/go-drift/formidable/pkg/formtest"
)

var zipPattern = regexp.MustCompile(`^\d{5}$`)

func testObject() *Object {
	return New(
		NewField("name", Required(), MaxLength(5)),
		NewField("age", Min(18)),
		NewField("address").Nested(New(
			NewField("city", Required()),
			NewField("zip", Pattern(zipPattern)),
		)),
	)
}

func issues(t *testing.T, err error) []form.FieldError {
	t.Helper()
	if err == nil {
		return nil
	}
	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %v is %T, want *form.ValidationError", err, err)
	}
	return verr.Errors
}

func TestValidateCollectsAll(t *testing.T) {
	o := testObject()
	err := o.Validate(form.Values{
		"name":    "",
		"age":     12,
		"address": map[string]any{"zip": "abc"},
	})

	want := []form.FieldError{
		{Path: "name", Kind: "required", Message: "name is required"},
		{Path: "age", Kind: "min", Message: "age must be greater than or equal to 18"},
		{Path: "address.city", Kind: "required", Message: "address.city is required"},
		{Path: "address.zip", Kind: "pattern", Message: "address.zip must match " + zipPattern.String()},
	}
	if diff := cmp.Diff(want, issues(t, err)); diff != "" {
		t.Errorf("Validate issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateMultipleRulesSameField(t *testing.T) {
	o := New(NewField("code", MinLength(4), Pattern(zipPattern)))
	got := issues(t, o.Validate(form.Values{"code": "ab"}))
	if len(got) != 2 {
		t.Fatalf("got %d issues, want 2: %v", len(got), got)
	}
	if got[0].Kind != "minLength" || got[1].Kind != "pattern" {
		t.Errorf("issue kinds = %q, %q; want declaration order", got[0].Kind, got[1].Kind)
	}
}

func TestValidatePasses(t *testing.T) {
	o := testObject()
	err := o.Validate(form.Values{
		"name":    "ann",
		"age":     30,
		"address": form.Values{"city": "Oslo", "zip": "12345"},
	})
	if err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidateAt(t *testing.T) {
	o := testObject()
	values := form.Values{
		"name":    "toolongname",
		"age":     "x",
		"address": map[string]any{"city": ""},
	}

	got := issues(t, o.ValidateAt("name", values))
	if len(got) != 1 || got[0].Kind != "maxLength" {
		t.Errorf("ValidateAt(name) = %v", got)
	}

	got = issues(t, o.ValidateAt("address.city", values))
	want := []form.FieldError{{Path: "address.city", Kind: "required", Message: "address.city is required"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ValidateAt(address.city) mismatch (-want +got):\n%s", diff)
	}

	got = issues(t, o.ValidateAt("address", values))
	if len(got) != 1 || got[0].Path != "address.city" {
		t.Errorf("ValidateAt(address) = %v, want nested city issue", got)
	}

	if err := o.ValidateAt("address.zip", values); err != nil {
		t.Errorf("ValidateAt(address.zip) = %v, want nil", err)
	}
}

func TestValidateAtUnknownPath(t *testing.T) {
	o := testObject()
	for _, path := range []string{"nope", "address.nope", "name.first"} {
		err := o.ValidateAt(path, form.Values{})
		if err == nil {
			t.Errorf("ValidateAt(%q) = nil, want error", path)
			continue
		}
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			t.Errorf("ValidateAt(%q) returned a validation error, want a path error", path)
		}
	}
}

func TestNewReplacesDuplicateFields(t *testing.T) {
	o := New(NewField("a", Required()), NewField("b"), NewField("a"))
	if diff := cmp.Diff([]string{"a", "b"}, o.Fields()); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}
	if err := o.Validate(form.Values{}); err != nil {
		t.Errorf("replaced field still validated: %v", err)
	}
}

// The engine keys nested failures by their top-level field and replaces the
// error map on form validation, while field validation merges.
func TestWithEngine(t *testing.T) {
	o := New(
		NewField("a", Required()),
		NewField("b", MaxLength(5)),
	)
	tester := formtest.NewTesterWithT(t, form.Options{
		InitialValues: form.Values{"a": "set", "b": ""},
		Schema:        o,
		ValidateOn:    form.Events{form.EventChange, form.EventSubmit},
	})
	e := tester.Engine

	e.HandleChange("b", "toolong")
	if _, ok := e.FieldError("a"); ok {
		t.Error("field validation of b should not flag a")
	}
	tester.ExpectError("b", "maxLength")

	e.SetField("b", "ok", form.EventBlur)
	e.SetField("a", "", form.EventBlur)
	e.HandleSubmit()

	want := form.Errors{"a": {Path: "a", Kind: "required", Message: "a is required"}}
	if diff := cmp.Diff(want, e.State().Errors); diff != "" {
		t.Errorf("Errors after submit mismatch (-want +got):\n%s", diff)
	}
	tester.ExpectEvents(form.EventInit, form.EventChange, form.EventBlur, form.EventBlur, form.EventSubmit)
	if n := len(tester.Reported()); n != 0 {
		t.Errorf("reported %d errors, want none", n)
	}
}

func TestWithEngineNested(t *testing.T) {
	e := form.New(form.Options{
		InitialValues: form.Values{"name": "ann", "address": map[string]any{"city": ""}},
		Schema:        testObject(),
		ValidateOn:    form.Events{form.EventSubmit},
	})
	e.HandleSubmit()

	fe, ok := e.FieldError("address")
	if !ok {
		t.Fatal("FieldError(address) missing")
	}
	if fe.Path != "address.city" {
		t.Errorf("FieldError(address).Path = %q, want address.city", fe.Path)
	}
}
