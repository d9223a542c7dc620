package cotoolz

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrExhausted signals that a coroutine has no more values. It is the
	// normal end of iteration, not a fault, and is never wrapped.
	ErrExhausted = errors.New("cotoolz: coroutine exhausted")

	// ErrClosed is delivered to a suspended generator when it is closed.
	ErrClosed = errors.New("cotoolz: coroutine closed")

	// ErrCloseIgnored is returned by Close when a generator yields again
	// instead of returning after observing ErrClosed.
	ErrCloseIgnored = errors.New("cotoolz: generator ignored close")

	// ErrNilThrow is returned when nil is thrown into a coroutine.
	ErrNilThrow = errors.New("cotoolz: cannot throw a nil error")
)

// Coroutine is the protocol every component implements or wraps.
//
// Next and Send return the produced value, or ErrExhausted once no
// values remain. Throw injects an error at the current suspension
// point; a coroutine that handles it returns its next value, one that
// does not returns the error itself. Close requests termination and
// is idempotent; afterwards Next and Send report ErrExhausted and Throw
// hands the error straight back.
type Coroutine[In, Out any] interface {
	Next() (Out, error)
	Send(In) (Out, error)
	Throw(error) (Out, error)
	Close() error
}

// Exception is an error built from a kind and constructor arguments,
// for callers that throw a kind of error rather than an instance.
type Exception struct {
	Kind error
	Args []any
}

// NewException constructs the error that ThrowNew injects.
func NewException(kind error, args ...any) error {
	return &Exception{Kind: kind, Args: args}
}

func (e *Exception) Error() string {
	if len(e.Args) == 0 {
		return fmt.Sprint(e.Kind)
	}
	return fmt.Sprintf("%v: %s", e.Kind, fmt.Sprint(e.Args...))
}

func (e *Exception) Unwrap() error {
	return e.Kind
}

// ThrowNew constructs an Exception from kind and args and throws it
// into c.
func ThrowNew[In, Out any](c Coroutine[In, Out], kind error, args ...any) (Out, error) {
	return c.Throw(NewException(kind, args...))
}

// All returns a sequence that drives c with Next until it reports an
// error. Use Drain when the terminating error matters.
func All[In, Out any](c Coroutine[In, Out]) iter.Seq[Out] {
	return func(yield func(Out) bool) {
		for {
			v, err := c.Next()
			if err != nil || !yield(v) {
				return
			}
		}
	}
}

// Drain calls Next on c until it is exhausted and returns the values
// produced. A fault other than ErrExhausted is returned along with the
// values collected before it.
func Drain[In, Out any](c Coroutine[In, Out]) ([]Out, error) {
	var out []Out
	for {
		v, err := c.Next()
		if err != nil {
			if errors.Is(err, ErrExhausted) {
				return out, nil
			}
			return out, err
		}
		out = append(out, v)
	}
}
