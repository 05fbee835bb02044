package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to a writer.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out receives log lines. Nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out == nil {
		return os.Stderr
	}
	return h.Out
}

// HandleError logs a FormError.
func (h *LogHandler) HandleError(err *FormError) {
	if err == nil {
		return
	}
	w := h.out()
	fmt.Fprintf(w, "[formidable error] %s", err.Op)
	if h.Verbose {
		fmt.Fprintf(w, " [%s]", err.Kind)
	}
	writeField(w, err.Field)
	fmt.Fprintf(w, ": %v\n", err.Err)
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	fmt.Fprint(w, "[formidable panic]")
	if err.Op != "" {
		fmt.Fprintf(w, " %s", err.Op)
	}
	writeField(w, err.Field)
	if err.Op != "" || err.Field != "" {
		fmt.Fprint(w, ":")
	}
	fmt.Fprintf(w, " %v\n", err.Value)
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

func writeField(w io.Writer, field string) {
	if field != "" {
		fmt.Fprintf(w, " field=%s", field)
	}
}
