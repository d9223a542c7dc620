package cotoolz

import (
	"errors"
	"testing"
)

var errValue = errors.New("value error")

// counter yields 1, 2 and 3 and does not handle thrown errors.
func counter(t *testing.T) *Generator[int, int] {
	g := NewGenerator(func(yield func(int) (int, error)) error {
		for i := 1; i <= 3; i++ {
			if _, err := yield(i); err != nil {
				return err
			}
		}
		return nil
	})
	t.Cleanup(func() { _ = g.Close() })
	return g
}

// echo yields 1, then yields back each of the next two values sent to
// it.
func echo(t *testing.T) *Generator[int, int] {
	g := NewGenerator(func(yield func(int) (int, error)) error {
		v, err := yield(1)
		if err != nil {
			return err
		}
		if v, err = yield(v); err != nil {
			return err
		}
		_, err = yield(v)
		return err
	})
	t.Cleanup(func() { _ = g.Close() })
	return g
}

// catcher yields 1 and, when an error is thrown at that point, yields
// the error itself.
func catcher(t *testing.T) *Generator[int, any] {
	g := NewGenerator(func(yield func(any) (int, error)) error {
		_, err := yield(1)
		if err == nil || errors.Is(err, ErrClosed) {
			return err
		}
		_, err = yield(err)
		return err
	})
	t.Cleanup(func() { _ = g.Close() })
	return g
}

// numbers is a pull iterator that records whether it was closed.
type numbers struct {
	vals   []int
	closed int
}

func (n *numbers) Next() (int, bool) {
	if len(n.vals) == 0 {
		return 0, false
	}
	v := n.vals[0]
	n.vals = n.vals[1:]
	return v, true
}

func (n *numbers) Close() error {
	n.closed++
	return nil
}

// handler is a pull iterator that also accepts thrown errors.
type handler struct {
	numbers
	caught []error
}

func (h *handler) Throw(err error) (int, error) {
	h.caught = append(h.caught, err)
	return -1, nil
}

// failingCloser reports err from Close.
type failingCloser struct {
	numbers
	err error
}

func (f *failingCloser) Close() error {
	f.closed++
	return f.err
}
