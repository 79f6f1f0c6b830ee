package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	handlerMu sync.RWMutex
	handler   ErrorHandler = &LogHandler{}
)

// SetHandler configures the global error handler and returns the previous one.
// Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	prev := handler
	if h == nil {
		h = &LogHandler{}
	}
	handler = h
	return prev
}

func currentHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

// Report sends an error to the global handler.
// If err.Timestamp is zero, it is set to the current time.
func Report(err *NeutralError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := currentHandler(); h != nil {
		h.HandleError(err)
	}
}

// Raise wraps cause in a NeutralError for the caller to return. It does not
// report; callers that cannot return an error use Report.
func Raise(op string, kind ErrorKind, cause error) *NeutralError {
	return &NeutralError{Op: op, Kind: kind, Err: cause, Timestamp: time.Now()}
}

// RaiseFor is Raise with generator and capability context attached.
func RaiseFor(op string, kind ErrorKind, generator, capability string, cause error) *NeutralError {
	return &NeutralError{
		Op:         op,
		Kind:       kind,
		Err:        cause,
		Generator:  generator,
		Capability: capability,
		Timestamp:  time.Now(),
	}
}

// ReportPanic sends a panic error to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := currentHandler(); h != nil {
		h.HandlePanic(err)
	}
}

// Recover reports a panic to the global handler without re-raising it.
// Usage: defer errors.Recover("cmd.trace")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: CaptureStack(),
		})
	}
}

// CaptureStack returns the current call stack as a string, skipping
// CaptureStack and its caller's deferred frame.
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
