package schema

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func encodeGIF(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{color.Black, color.White})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatalf("gif.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestImageRule(t *testing.T) {
	avatar := Image(ImageOptions{Formats: []string{"png", "webp"}, MaxWidth: 64, MaxHeight: 32})

	tests := []struct {
		name  string
		value any
		pass  bool
	}{
		{"small png", encodePNG(t, 16, 16), true},
		{"exact bounds", encodePNG(t, 64, 32), true},
		{"too wide", encodePNG(t, 65, 10), false},
		{"too high", encodePNG(t, 10, 33), false},
		{"format not allowed", encodeGIF(t, 8, 8), false},
		{"garbage", []byte("definitely not an image"), false},
		{"png as string", string(encodePNG(t, 16, 16)), true},
		{"file name string", "avatar.png", false},
		{"not bytes", 42, false},
		{"empty skipped", []byte{}, true},
		{"nil skipped", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := avatar.Check("avatar", tt.value)
			if pass := msg == ""; pass != tt.pass {
				t.Errorf("Check() = %q, want pass=%v", msg, tt.pass)
			}
		})
	}
}

func TestImageRuleAnyFormat(t *testing.T) {
	r := Image(ImageOptions{})
	if msg := r.Check("upload", encodeGIF(t, 300, 300)); msg != "" {
		t.Errorf("Check(gif) = %q, want pass", msg)
	}
}
