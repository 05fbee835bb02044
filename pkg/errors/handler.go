package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler is the global error handler.
	// It defaults to LogHandler with verbose=false.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler configures the global error handler.
// Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		DefaultHandler = &LogHandler{}
	} else {
		DefaultHandler = h
	}
}

func getHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report sends an error to the global handler, stamping it with the current
// time if Timestamp is zero.
func Report(err *FormError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if h := getHandler(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic sends a panic error to the global handler, stamping it like
// Report.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if h := getHandler(); h != nil {
		h.HandlePanic(err)
	}
}

func stamp(ts *time.Time) {
	if ts.IsZero() {
		*ts = time.Now()
	}
}

// Recover reports a panic in op. Usage:
//
//	defer errors.Recover("form.Async")
func Recover(op string) {
	if r := recover(); r != nil {
		recovered(op, "", r, nil)
	}
}

// RecoverWithCallback is like Recover but also calls callback with the
// panic value after reporting it.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		recovered(op, "", r, callback)
	}
}

// RecoverField is like RecoverWithCallback for a panic while handling a
// single field. The report carries the field key. callback may be nil.
func RecoverField(op, field string, callback func(r any)) {
	if r := recover(); r != nil {
		recovered(op, field, r, callback)
	}
}

func recovered(op, field string, r any, callback func(r any)) {
	ReportPanic(&PanicError{
		Op:         op,
		Field:      field,
		Value:      r,
		StackTrace: CaptureStack(),
	})
	if callback != nil {
		callback(r)
	}
}

// CaptureStack returns the current call stack as a string.
// It skips the first few frames to exclude the CaptureStack call itself.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}
