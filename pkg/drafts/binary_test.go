package drafts

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/formidable/pkg/form"
	"github.com/go-drift/formidable/pkg/formtest"
	"github.com/go-drift/formidable/pkg/schema"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestSaveLoadBinary(t *testing.T) {
	s := openTemp(t)
	values := form.Values{
		"avatar":  []byte{0x89, 'P', 'N', 'G'},
		"profile": map[string]any{"banner": []byte("banner")},
		"files":   []any{[]byte("a"), "b"},
		"literal": map[string]any{"$binary": "plain text, not base64!"},
	}
	if err := s.Save("upload", values, form.Status{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := values["avatar"].([]byte); !ok {
		t.Errorf("Save modified the caller's values: avatar is %T", values["avatar"])
	}

	d, err := s.Load("upload")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(values, d.Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
}

func TestRestoredImagePassesValidation(t *testing.T) {
	s := openTemp(t)
	avatar := schema.New(schema.NewField("avatar", schema.Required(), schema.Image(schema.ImageOptions{Formats: []string{"png"}})))

	e := form.New(form.Options{
		InitialValues: form.Values{"avatar": nil},
		Handler:       Autosave(s, "profile", nil),
	})
	e.HandleChange("avatar", pngBytes(t))

	opts, err := Restore(s, "profile", form.Options{
		Schema:     avatar,
		ValidateOn: form.Events{form.EventSubmit},
	})
	if err != nil {
		t.Fatal(err)
	}
	tester := formtest.NewTesterWithT(t, opts)
	if _, ok := tester.Engine.FieldValue("avatar").([]byte); !ok {
		t.Errorf("restored avatar is %T, want []byte", tester.Engine.FieldValue("avatar"))
	}
	tester.Engine.HandleSubmit()

	tester.ExpectNoErrors()
	tester.ExpectEvents(form.EventInit, form.EventSubmit)
}
