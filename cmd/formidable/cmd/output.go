package cmd

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/go-drift/formidable/cmd/formidable/internal/config"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

// colorEnabled reports whether stdout output should be colored.
func colorEnabled() bool {
	mode := config.ColorAuto
	if settings != nil {
		mode = settings.Color
	}
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func paint(color, s string) string {
	if !colorEnabled() {
		return s
	}
	return color + s + ansiReset
}
