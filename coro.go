package cotoolz

import (
	"errors"
	"unsafe"
)

var (
	// ErrRunning is the panic value raised when a generator is driven
	// from inside its own body.
	ErrRunning = errors.New("cotoolz: generator already running")

	// ErrStaleYield is the panic value raised when a yield function
	// escapes its generator and is called after the generator stopped
	// running.
	ErrStaleYield = errors.New("cotoolz: yield called outside of its generator")

	errUnwind = errors.New("cotoolz: generator unwound")
	_         unsafe.Pointer
)

// coroutine is the runtime's coroutine handle. It's an opaque struct
// only ever passed back to the runtime functions.
type coroutine struct{}

//go:linkname newcoro runtime.newcoro
func newcoro(func(*coroutine)) *coroutine

//go:linkname coroswitch runtime.coroswitch
func coroswitch(*coroutine)

type genState uint8

const (
	notStarted genState = iota
	suspended
	running
	terminated
)

func (s genState) String() string {
	switch s {
	case notStarted:
		return "not-started"
	case suspended:
		return "suspended"
	case running:
		return "running"
	default:
		return "terminated"
	}
}

// Generator is a native coroutine-like. Its body runs on a runtime
// coroutine and hands control back to the caller at every yield.
//
// The zero value is not usable; create generators with NewGenerator.
// A generator that was started but not run to completion holds a
// parked coroutine until Close is called.
type Generator[In, Out any] struct {
	c     *coroutine
	state genState

	in    In
	inErr error
	out   Out
	err   error
	perr  error

	skip    bool
	closing bool
	unwound bool
}

// NewGenerator creates a generator around fn. Nothing runs until the
// first call to Next.
//
// Parameters:
//   - fn: The generator body. It receives a yield function that hands
//     a value to the caller and suspends. When the generator resumes,
//     yield returns the value delivered by Send (the zero value for
//     Next) and a nil error, the error delivered by Throw, or
//     ErrClosed when the generator is being closed.
//
// The body's return value decides how the generator terminates: nil
// (or ErrExhausted) is ordinary exhaustion, anything else propagates
// out of the call that resumed the generator. A body that does not
// handle an injected error should simply return it.
func NewGenerator[In, Out any](
	fn func(yield func(Out) (In, error)) error,
) *Generator[In, Out] {
	g := new(Generator[In, Out])
	g.c = newcoro(func(*coroutine) {
		defer func() {
			if p := recover(); p != nil {
				if err, ok := p.(error); !ok || err != errUnwind {
					g.perr = newPanicError(p)
				}
			}
			g.state = terminated
		}()
		if g.skip {
			return
		}
		g.err = fn(g.yield)
	})
	return g
}

func (g *Generator[In, Out]) yield(val Out) (In, error) {
	if g.state != running {
		panic(ErrStaleYield)
	}
	if g.closing {
		g.unwound = true
		panic(errUnwind)
	}
	g.out = val
	g.state = suspended
	coroswitch(g.c)
	in, err := g.in, g.inErr
	var zero In
	g.in, g.inErr = zero, nil
	return in, err
}

func (g *Generator[In, Out]) resume(in In, err error) (Out, error) {
	g.in, g.inErr = in, err
	g.state = running
	coroswitch(g.c)

	var zero Out
	if g.state == suspended {
		out := g.out
		g.out = zero
		return out, nil
	}
	if p := g.perr; p != nil {
		g.perr = nil
		panic(p)
	}
	rerr := g.err
	g.err = nil
	if rerr == nil {
		rerr = ErrExhausted
	}
	return zero, rerr
}

// abandon terminates a generator that never ran its body.
func (g *Generator[In, Out]) abandon() {
	g.skip = true
	coroswitch(g.c)
}

func (g *Generator[In, Out]) guard() {
	if g.state == running {
		panic(ErrRunning)
	}
}

// Next resumes the generator and returns the next yielded value, or
// ErrExhausted once the body has returned.
func (g *Generator[In, Out]) Next() (Out, error) {
	g.guard()
	if g.state == terminated {
		var zero Out
		return zero, ErrExhausted
	}
	var in In
	return g.resume(in, nil)
}

// Send resumes a suspended generator, delivering val as the result of
// the pending yield. A generator that was never advanced has no yield
// to deliver to: it is terminated without running and Send returns
// ErrExhausted.
func (g *Generator[In, Out]) Send(val In) (Out, error) {
	g.guard()
	var zero Out
	switch g.state {
	case notStarted:
		g.abandon()
		return zero, ErrExhausted
	case terminated:
		return zero, ErrExhausted
	}
	return g.resume(val, nil)
}

// Throw injects err at the pending yield. If the generator was never
// started or has already terminated, err is returned as is without
// being injected.
func (g *Generator[In, Out]) Throw(err error) (Out, error) {
	g.guard()
	var zero Out
	if err == nil {
		return zero, ErrNilThrow
	}
	switch g.state {
	case notStarted:
		g.abandon()
		return zero, err
	case terminated:
		return zero, err
	}
	var in In
	return g.resume(in, err)
}

// Close terminates the generator. A suspended body observes ErrClosed
// from its pending yield and is expected to return; returning nil or
// ErrClosed counts as a clean close, any other error is returned from
// Close. Yielding again is reported as ErrCloseIgnored. Closing a
// terminated generator is a no-op.
func (g *Generator[In, Out]) Close() error {
	g.guard()
	switch g.state {
	case notStarted:
		g.abandon()
		return nil
	case terminated:
		return nil
	}

	g.closing = true
	defer func() { g.closing = false }()

	var in In
	_, err := g.resume(in, ErrClosed)
	if g.unwound {
		return ErrCloseIgnored
	}
	if errors.Is(err, ErrExhausted) || errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}

// String reports the generator's state.
func (g *Generator[In, Out]) String() string {
	return "generator(" + g.state.String() + ")"
}
