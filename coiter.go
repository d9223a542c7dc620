package cotoolz

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// ErrNotCoercible is returned by Coerce for a source it cannot wrap.
var ErrNotCoercible = errors.New("cotoolz: source cannot be coerced to a coroutine")

// Iterator is a plain pull iterator: Next reports false once it has
// no more values.
type Iterator[T any] interface {
	Next() (T, bool)
}

// Thrower is implemented by iterators that can accept an injected
// error. Iter forwards throws to it.
type Thrower[T any] interface {
	Throw(error) (T, error)
}

// CoIter adapts a plain sequence to the Coroutine protocol. Sent
// values are ignored, throws are handed back unless the source can
// accept them, and Close releases the source.
type CoIter[In, Out any] struct {
	src  Coroutine[In, Out]
	done bool
}

var _ Coroutine[any, any] = (*CoIter[any, any])(nil)

// Iter wraps a pull iterator. If it implements Thrower, throws are
// forwarded to it; if it implements io.Closer, Close is.
func Iter[In, Out any](it Iterator[Out]) *CoIter[In, Out] {
	return &CoIter[In, Out]{src: iteratorSource[In, Out]{it: it}}
}

// Seq wraps a push sequence. The sequence runs on a generator that is
// released when the wrapper is closed or the sequence ends.
func Seq[In, Out any](seq iter.Seq[Out]) *CoIter[In, Out] {
	g := NewGenerator(func(yield func(Out) (struct{}, error)) error {
		for v := range seq {
			if _, err := yield(v); err != nil {
				return err
			}
		}
		return nil
	})
	return &CoIter[In, Out]{src: seqSource[In, Out]{g: g}}
}

// Slice wraps a slice. The slice is not copied.
func Slice[In, Out any](s []Out) *CoIter[In, Out] {
	return Iter[In, Out](&sliceIterator[Out]{s: s})
}

// Coerce classifies src once and returns a Coroutine for it. Values
// that already implement Coroutine[In, Out] are returned as they are;
// sequences, slices and iterators are wrapped.
func Coerce[In, Out any](src any) (Coroutine[In, Out], error) {
	switch s := src.(type) {
	case Coroutine[In, Out]:
		return s, nil
	case iter.Seq[Out]:
		return Seq[In](s), nil
	case func(func(Out) bool):
		return Seq[In, Out](s), nil
	case []Out:
		return Slice[In](s), nil
	case Iterator[Out]:
		return Iter[In](s), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotCoercible, src)
}

func (c *CoIter[In, Out]) Next() (Out, error) {
	if c.done {
		var zero Out
		return zero, ErrExhausted
	}
	v, err := c.src.Next()
	if errors.Is(err, ErrExhausted) {
		c.done = true
	}
	return v, err
}

// Send ignores val; a plain sequence has nothing to deliver it to.
func (c *CoIter[In, Out]) Send(In) (Out, error) {
	return c.Next()
}

func (c *CoIter[In, Out]) Throw(err error) (Out, error) {
	if err == nil {
		var zero Out
		return zero, ErrNilThrow
	}
	v, rerr := c.src.Throw(err)
	if errors.Is(rerr, ErrExhausted) {
		c.done = true
	}
	return v, rerr
}

// Close releases the source. From then on the wrapper behaves as the
// empty coroutine.
func (c *CoIter[In, Out]) Close() error {
	src := c.src
	c.src = Empty[In, Out]()
	c.done = true
	return src.Close()
}

func (*CoIter[In, Out]) memberKind() memberKind {
	return coerced
}

type iteratorSource[In, Out any] struct {
	it Iterator[Out]
}

func (s iteratorSource[In, Out]) Next() (Out, error) {
	v, ok := s.it.Next()
	if !ok {
		return v, ErrExhausted
	}
	return v, nil
}

func (s iteratorSource[In, Out]) Send(In) (Out, error) {
	return s.Next()
}

func (s iteratorSource[In, Out]) Throw(err error) (Out, error) {
	if t, ok := s.it.(Thrower[Out]); ok {
		return t.Throw(err)
	}
	var zero Out
	return zero, err
}

func (s iteratorSource[In, Out]) Close() error {
	if c, ok := s.it.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type seqSource[In, Out any] struct {
	g *Generator[struct{}, Out]
}

func (s seqSource[In, Out]) Next() (Out, error) {
	return s.g.Next()
}

func (s seqSource[In, Out]) Send(In) (Out, error) {
	return s.g.Next()
}

// Throw never reaches the sequence: a push sequence has no way to
// catch it.
func (s seqSource[In, Out]) Throw(err error) (Out, error) {
	var zero Out
	return zero, err
}

func (s seqSource[In, Out]) Close() error {
	return s.g.Close()
}

type sliceIterator[T any] struct {
	s []T
	i int
}

func (it *sliceIterator[T]) Next() (T, bool) {
	if it.i >= len(it.s) {
		var zero T
		return zero, false
	}
	v := it.s[it.i]
	it.i++
	return v, true
}
