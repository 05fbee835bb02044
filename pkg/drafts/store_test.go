package drafts

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/formidable/pkg/errors"
	"github.com/go-drift/formidable/pkg/form"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "drafts.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad(t *testing.T) {
	s := openTemp(t)
	status := form.Status{
		Touched: form.Flags{"name": true},
		Dirty:   form.Flags{"name": true},
		Errors:  form.Errors{"age": {Path: "age", Kind: "min", Message: "too young"}},
	}
	if err := s.Save("signup", form.Values{"name": "ann", "age": 12, "tags": []string{"a"}}, status); err != nil {
		t.Fatalf("Save: %v", err)
	}

	d, err := s.Load("signup")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.FormID != "signup" {
		t.Errorf("FormID = %q", d.FormID)
	}
	wantValues := form.Values{"name": "ann", "age": json.Number("12"), "tags": []any{"a"}}
	if diff := cmp.Diff(wantValues, d.Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(status, d.Status); diff != "" {
		t.Errorf("Status mismatch (-want +got):\n%s", diff)
	}
	if d.SavedAt.IsZero() {
		t.Error("SavedAt not set")
	}
}

func TestLoadMissing(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Load("nope"); err != ErrNoDraft {
		t.Errorf("Load(nope) error = %v, want ErrNoDraft", err)
	}
}

func TestDeleteAndList(t *testing.T) {
	s := openTemp(t)
	for _, id := range []string{"b", "a", "c"} {
		if err := s.Save(id, form.Values{}, form.Status{}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Delete("b"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("missing"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
	ids, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "c"}, ids); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save("f", form.Values{"x": "y"}, form.Status{}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	d, err := s.Load("f")
	if err != nil {
		t.Fatal(err)
	}
	if d.Values["x"] != "y" {
		t.Errorf("Values[x] = %v, want y", d.Values["x"])
	}
}

func TestAutosaveAndRestore(t *testing.T) {
	s := openTemp(t)
	var forwarded []form.Event
	next := func(_ form.Values, _ form.Status, e form.Event) { forwarded = append(forwarded, e) }

	e := form.New(form.Options{
		InitialValues: form.Values{"name": ""},
		Handler:       Autosave(s, "signup", next),
	})
	e.HandleChange("name", "ann")
	e.HandleFocus("email")

	opts, err := Restore(s, "signup", form.Options{InitialValues: form.Values{"name": ""}})
	if err != nil {
		t.Fatal(err)
	}
	restored := form.New(opts)
	if got := restored.FieldValue("name"); got != "ann" {
		t.Errorf("restored name = %v, want ann", got)
	}
	if !restored.FieldTouched("email") || !restored.FieldDirty("name") {
		t.Error("restored engine lost interaction state")
	}

	e.HandleSubmit()
	if _, err := s.Load("signup"); err != ErrNoDraft {
		t.Errorf("draft after submit: err = %v, want ErrNoDraft", err)
	}
	want := []form.Event{form.EventInit, form.EventChange, form.EventFocus, form.EventSubmit}
	if diff := cmp.Diff(want, forwarded); diff != "" {
		t.Errorf("forwarded events mismatch (-want +got):\n%s", diff)
	}

	opts, err = Restore(s, "signup", form.Options{InitialValues: form.Values{"name": "fresh"}})
	if err != nil {
		t.Fatal(err)
	}
	if opts.InitialState != nil {
		t.Error("Restore without a draft should leave InitialState nil")
	}
}

type captureHandler struct {
	errs []*errors.FormError
}

func (h *captureHandler) HandleError(err *errors.FormError)  { h.errs = append(h.errs, err) }
func (h *captureHandler) HandlePanic(err *errors.PanicError) {}

func TestAutosaveReportsStorageErrors(t *testing.T) {
	capture := &captureHandler{}
	old := errors.DefaultHandler
	errors.SetHandler(capture)
	defer errors.SetHandler(old)

	s := openTemp(t)
	s.Close()

	called := false
	h := Autosave(s, "f", func(form.Values, form.Status, form.Event) { called = true })
	h(form.Values{}, form.Status{}, form.EventChange)

	if !called {
		t.Error("next should run after a storage failure")
	}
	if len(capture.errs) != 1 || capture.errs[0].Kind != errors.KindStorage {
		t.Errorf("reported = %v, want one storage error", capture.errs)
	}
}
