package cotoolz

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type memberKind uint8

const (
	native memberKind = iota
	coerced
)

func (k memberKind) String() string {
	if k == coerced {
		return "coerced"
	}
	return "native"
}

// classified is implemented by coroutines that know whether they wrap
// a plain sequence. Anything else is native.
type classified interface {
	memberKind() memberKind
}

func classify(c any) memberKind {
	if m, ok := c.(classified); ok {
		return m.memberKind()
	}
	return native
}

// member is one input of a fanout. Owned members were coerced by the
// fanout itself and are released as soon as the fanout is exhausted.
type member[In, Out any] struct {
	co    Coroutine[In, Out]
	kind  memberKind
	owned bool
}

// close closes the member, returning a panic raised by Close instead
// of propagating it.
func (m member[In, Out]) close() (p any, err error) {
	defer func() { p = recover() }()
	return nil, m.co.Close()
}

// fanout forwards every protocol message to a fixed, ordered set of
// coroutines. The set is decided at construction and never changes.
type fanout[In, Out any] struct {
	name    string
	members []member[In, Out]
	done    bool
}

func newFanout[In, Out any](
	name string,
	first Coroutine[In, Out],
	rest []Coroutine[In, Out],
) *fanout[In, Out] {
	members := make([]member[In, Out], 0, 1+len(rest))
	for _, c := range append([]Coroutine[In, Out]{first}, rest...) {
		members = append(members, member[In, Out]{co: c, kind: classify(c)})
	}
	return &fanout[In, Out]{name: name, members: members}
}

// coerceMembers coerces every source in order. Sources that already
// are coroutines are borrowed; the wrappers created for the others are
// owned. If a source cannot be coerced the wrappers created so far are
// closed.
func coerceMembers[In, Out any](first any, rest []any) ([]member[In, Out], error) {
	srcs := append([]any{first}, rest...)
	members := make([]member[In, Out], 0, len(srcs))
	for i, src := range srcs {
		c, err := Coerce[In, Out](src)
		if err != nil {
			for _, m := range members {
				if m.owned {
					_ = m.co.Close()
				}
			}
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		_, borrowed := src.(Coroutine[In, Out])
		members = append(members, member[In, Out]{co: c, kind: classify(c), owned: !borrowed})
	}
	return members, nil
}

// collect calls op on each member in order. The first error ends the
// call: members after it are not touched and no values are returned.
func (f *fanout[In, Out]) collect(op func(Coroutine[In, Out]) (Out, error)) ([]Out, error) {
	vals := make([]Out, len(f.members))
	for i, m := range f.members {
		v, err := op(m.co)
		if err != nil {
			if errors.Is(err, ErrExhausted) {
				f.done = true
				log().Debug("exhausted", zap.String("combinator", f.name), zap.Int("member", i))
				f.release()
			}
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func (f *fanout[In, Out]) next() ([]Out, error) {
	if f.done {
		return nil, ErrExhausted
	}
	return f.collect(func(c Coroutine[In, Out]) (Out, error) {
		return c.Next()
	})
}

func (f *fanout[In, Out]) send(val In) ([]Out, error) {
	if f.done {
		return nil, ErrExhausted
	}
	return f.collect(func(c Coroutine[In, Out]) (Out, error) {
		return c.Send(val)
	})
}

// throw delivers err to every member once, in order. A member that
// does not handle it aborts the call; earlier members keep whatever
// state handling it left them in.
func (f *fanout[In, Out]) throw(err error) ([]Out, error) {
	if err == nil {
		return nil, ErrNilThrow
	}
	if f.done {
		return nil, err
	}
	vals, rerr := f.collect(func(c Coroutine[In, Out]) (Out, error) {
		return c.Throw(err)
	})
	if rerr != nil && !errors.Is(rerr, ErrExhausted) {
		log().Debug("unhandled throw", zap.String("combinator", f.name), zap.Error(rerr))
	}
	return vals, rerr
}

// release closes the owned members once the fanout is exhausted.
// Their faults are only logged: exhaustion is not a failure. A panic
// raised by one of them is re-raised after the rest were released.
func (f *fanout[In, Out]) release() {
	var p any
	for i, m := range f.members {
		if !m.owned {
			continue
		}
		mp, err := m.close()
		if err != nil && !errors.Is(err, ErrExhausted) {
			log().Debug("release failed", zap.String("combinator", f.name), zap.Int("member", i), zap.Error(err))
		}
		if mp != nil && p == nil {
			p = mp
		}
	}
	if p != nil {
		panic(p)
	}
}

// close closes every member, whatever the others report, and returns
// the faults other than exhaustion. If a member panics, the remaining
// members are still closed and the first panic is then re-raised.
func (f *fanout[In, Out]) close() error {
	f.done = true
	var (
		err error
		p   any
	)
	for i, m := range f.members {
		mp, cerr := m.close()
		if mp != nil {
			log().Debug("close panicked", zap.String("combinator", f.name), zap.Int("member", i))
			if p == nil {
				p = mp
			}
			continue
		}
		if cerr != nil && !errors.Is(cerr, ErrExhausted) {
			err = multierr.Append(err, cerr)
		}
	}
	if err != nil {
		log().Debug("close failed", zap.String("combinator", f.name), zap.Error(err))
	}
	if p != nil {
		panic(p)
	}
	return err
}

// plain reports whether every member wraps a plain sequence.
func (f *fanout[In, Out]) plain() bool {
	for _, m := range f.members {
		if m.kind != coerced {
			return false
		}
	}
	return true
}

func (f *fanout[In, Out]) String() string {
	kinds := make([]string, len(f.members))
	for i, m := range f.members {
		kinds[i] = m.kind.String()
	}
	return f.name + "(" + strings.Join(kinds, ", ") + ")"
}
