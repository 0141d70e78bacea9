package errs

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/leonid6372/lifery-bot/pkg/log"
	"go.uber.org/zap"
)

const (
	traceSkip     = 3
	trackPrealloc = 50
)

type sFrame struct {
	filename string
	method   string
	line     int
}

type stack []sFrame

func (s stack) String() string {
	var sb strings.Builder

	for _, frame := range s {
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.method, frame.filename, frame.line)
	}

	return sb.String()
}

type errorWithTrace struct {
	error

	trace stack
}

func (e *errorWithTrace) Unwrap() error {
	return e.error
}

// NewStack attaches the caller's stack to err and logs it. The stack is
// captured only once per error chain.
func NewStack(err error) error {
	if err == nil {
		return nil
	}

	var errWT *errorWithTrace

	// Add trace only once
	if errors.As(err, &errWT) {
		return err
	}

	stack := stackTrace(traceSkip)

	log.Error(err.Error(), zap.Stringer("trace", stack))

	return &errorWithTrace{
		error: err,
		trace: stack,
	}
}

// Trace returns the stack captured by NewStack, or "" if there is none.
func Trace(err error) string {
	var errWT *errorWithTrace
	if errors.As(err, &errWT) {
		return errWT.trace.String()
	}

	return ""
}

func stackTrace(skip int) stack {
	pc := make([]uintptr, trackPrealloc)
	n := runtime.Callers(skip, pc)
	pc = pc[:n]

	frames := runtime.CallersFrames(pc)
	stack := make(stack, 0, n)

	for {
		frame, more := frames.Next()

		stack = append(stack, sFrame{filename: frame.File, method: frame.Function, line: frame.Line})

		if !more {
			break
		}
	}

	return stack
}
