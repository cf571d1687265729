package client

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// callerStack formats the goroutine's stack. skip is passed to
// runtime.Callers: 3 starts at the caller of the exported client method.
func callerStack(skip int) string {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// errorStack returns the stack recorded by the innermost error in the chain
// that carries one, or "" when none does.
func errorStack(err error) string {
	var stack string
	for err != nil {
		if tracer, ok := err.(stackTracer); ok {
			stack = strings.TrimPrefix(fmt.Sprintf("%+v", tracer.StackTrace()), "\n")
		}
		err = errors.Unwrap(err)
	}
	return stack
}

func errorReason(err error) string {
	return fmt.Sprintf("%T: %s", errors.Cause(err), err.Error())
}
