package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that writes errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out overrides the destination; nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs a NeutralError.
func (h *LogHandler) HandleError(err *NeutralError) {
	if err == nil {
		return
	}
	w := h.out()
	if !h.Verbose {
		fmt.Fprintf(w, "[neutral error] %s: %v\n", err.Op, err.Err)
		return
	}
	fmt.Fprintf(w, "[neutral error] %s [%s]", err.Op, err.Kind)
	if err.Generator != "" {
		fmt.Fprintf(w, " generator=%s", err.Generator)
	}
	if err.Capability != "" {
		fmt.Fprintf(w, " capability=%s", err.Capability)
	}
	fmt.Fprintf(w, ": %v\n", err.Err)
	if err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	fmt.Fprintf(w, "[neutral panic] %v\n", err)
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
