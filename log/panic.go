package log

import (
	"bytes"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// Recovered renders a value recovered from a panic together with the stack
// of the panicking goroutine, minus the frames of the recovery itself.
func Recovered(thing any) func(e *zerolog.Event) {
	return func(e *zerolog.Event) {
		dict := zerolog.Dict().Any("content", thing)
		lines := bytes.Split(debug.Stack(), []byte("\n"))
		if len(lines) > 9 {
			lines = lines[9:]
		}
		dict.Bytes("stack_traces", bytes.Join(lines, []byte("\n")))
		e.Dict("panic", dict)
	}
}
