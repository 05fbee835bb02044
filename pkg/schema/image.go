package schema

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	// Registered decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageOptions constrains an uploaded image.
type ImageOptions struct {
	// Formats lists accepted formats as reported by image.DecodeConfig
	// ("png", "jpeg", "gif", "bmp", "tiff", "webp"). Empty accepts all.
	Formats []string
	// MaxWidth and MaxHeight bound the image dimensions in pixels. Zero
	// means unbounded.
	MaxWidth  int
	MaxHeight int
}

// Image requires an encoded image that satisfies opts. The value is a
// []byte or a string holding the raw bytes, which is how YAML !!binary
// scalars decode.
func Image(opts ImageOptions) Rule {
	return nonEmpty("image", func(path string, value any) string {
		var r *bytes.Reader
		switch data := value.(type) {
		case []byte:
			r = bytes.NewReader(data)
		case string:
			r = bytes.NewReader([]byte(data))
		default:
			return fmt.Sprintf("%s must be an uploaded image", path)
		}
		cfg, format, err := image.DecodeConfig(r)
		if err != nil {
			return fmt.Sprintf("%s is not a recognized image", path)
		}
		if len(opts.Formats) > 0 && !containsFold(opts.Formats, format) {
			return fmt.Sprintf("%s must be one of: %s", path, strings.Join(opts.Formats, ", "))
		}
		if opts.MaxWidth > 0 && cfg.Width > opts.MaxWidth {
			return fmt.Sprintf("%s must be at most %d pixels wide", path, opts.MaxWidth)
		}
		if opts.MaxHeight > 0 && cfg.Height > opts.MaxHeight {
			return fmt.Sprintf("%s must be at most %d pixels high", path, opts.MaxHeight)
		}
		return ""
	})
}

func containsFold(list []string, s string) bool {
	for _, x := range list {
		if strings.EqualFold(x, s) {
			return true
		}
	}
	return false
}
