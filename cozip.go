package cotoolz

// Zipped combines the values produced by one or more coroutines into
// tuples, forwarding Send, Throw and Close to all of them. Each tuple
// is a fresh slice with one element per coroutine, in argument order.
// Once an input is exhausted the Zipped is too, and later calls no
// longer advance the other inputs.
type Zipped[In, Out any] struct {
	f *fanout[In, Out]
}

var _ Coroutine[any, []any] = (*Zipped[any, any])(nil)

// Zip returns a coroutine producing tuples of the values of first and
// rest. A single coroutine yields 1-tuples.
func Zip[In, Out any](first Coroutine[In, Out], rest ...Coroutine[In, Out]) *Zipped[In, Out] {
	return &Zipped[In, Out]{f: newFanout("cozip", first, rest)}
}

// ZipOf is Zip over sources of any kind accepted by Coerce. The
// wrappers it creates are closed as soon as the Zipped is exhausted.
func ZipOf[In, Out any](first any, rest ...any) (*Zipped[In, Out], error) {
	members, err := coerceMembers[In, Out](first, rest)
	if err != nil {
		return nil, err
	}
	return &Zipped[In, Out]{f: &fanout[In, Out]{name: "cozip", members: members}}, nil
}

// Pair is the tuple produced by Zip2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip2 zips two coroutines of different value types into pairs.
func Zip2[In, A, B any](a Coroutine[In, A], b Coroutine[In, B]) *Mapped[In, any, Pair[A, B]] {
	m := Map2(func(x A, y B) Pair[A, B] { return Pair[A, B]{First: x, Second: y} }, a, b)
	m.f.name = "cozip"
	return m
}

func (z *Zipped[In, Out]) Next() ([]Out, error) {
	return z.f.next()
}

// Send delivers val to every underlying coroutine.
func (z *Zipped[In, Out]) Send(val In) ([]Out, error) {
	return z.f.send(val)
}

// Throw delivers err to every underlying coroutine in argument order,
// stopping at the first one that does not handle it.
func (z *Zipped[In, Out]) Throw(err error) ([]Out, error) {
	return z.f.throw(err)
}

// Close closes every underlying coroutine and reports the faults
// raised while doing so.
func (z *Zipped[In, Out]) Close() error {
	return z.f.close()
}

// Plain reports whether every underlying coroutine wraps a plain
// sequence.
func (z *Zipped[In, Out]) Plain() bool {
	return z.f.plain()
}

func (z *Zipped[In, Out]) String() string {
	return z.f.String()
}
