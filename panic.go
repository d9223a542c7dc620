package cotoolz

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

// panicError carries a panic raised inside a generator body, together
// with the stack of the coroutine it was raised on, back to the
// caller that resumed the generator.
type panicError struct {
	value any
	stack []byte
}

func newPanicError(v any) error {
	if p, ok := v.(*panicError); ok {
		return p
	}
	return &panicError{
		value: v,
		stack: debug.Stack(),
	}
}

func (p *panicError) Error() string {
	return fmt.Sprintf("%v", p.value)
}

// Stack returns the stack captured when the generator body panicked.
func (p *panicError) Stack() []byte {
	return p.stack
}

func (p *panicError) Unwrap() error {
	if err, ok := p.value.(error); ok {
		return err
	}
	return nil
}

// DebugString renders the panic value and every error reachable from
// it, each captured generator stack included once.
func (p *panicError) DebugString() string {
	var sb strings.Builder
	seen := make(map[error]bool)

	var walk func(error)
	walk = func(err error) {
		if err == nil || seen[err] {
			return
		}
		seen[err] = true

		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		if pe, ok := err.(*panicError); ok {
			fmt.Fprintf(&sb, "%v\n\n%s", pe.value, pe.stack)
		} else {
			sb.WriteString(err.Error())
		}

		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		default:
			walk(errors.Unwrap(err))
		}
	}

	walk(p)
	return sb.String()
}
