package cotoolz

// Mapped applies a function across the values produced by one or more
// coroutines, forwarding Send, Throw and Close to all of them.
//
// Over plain sequences a Mapped is an ordinary element-wise map that
// stops at the shortest input. Once an input is exhausted the Mapped
// is too, and later calls no longer advance the other inputs.
type Mapped[In, Out, R any] struct {
	f  *fanout[In, Out]
	fn func(...Out) R
}

var _ Coroutine[any, any] = (*Mapped[any, any, any])(nil)

// Map returns a coroutine that calls fn with one value from each of
// first and rest, in argument order.
func Map[In, Out, R any](
	fn func(...Out) R,
	first Coroutine[In, Out],
	rest ...Coroutine[In, Out],
) *Mapped[In, Out, R] {
	return &Mapped[In, Out, R]{
		f:  newFanout("comap", first, rest),
		fn: fn,
	}
}

// MapOf is Map over sources of any kind accepted by Coerce. The
// wrappers it creates for plain sequences belong to the Mapped and are
// closed as soon as it is exhausted; sources that already are
// coroutines are left open.
func MapOf[In, Out, R any](fn func(...Out) R, first any, rest ...any) (*Mapped[In, Out, R], error) {
	members, err := coerceMembers[In, Out](first, rest)
	if err != nil {
		return nil, err
	}
	return &Mapped[In, Out, R]{
		f:  &fanout[In, Out]{name: "comap", members: members},
		fn: fn,
	}, nil
}

// Map1 is Map for a unary function.
func Map1[In, A, R any](fn func(A) R, a Coroutine[In, A]) *Mapped[In, A, R] {
	return Map(func(vs ...A) R { return fn(vs[0]) }, a)
}

// Map2 is Map for a binary function over coroutines of different
// value types.
func Map2[In, A, B, R any](
	fn func(A, B) R,
	a Coroutine[In, A],
	b Coroutine[In, B],
) *Mapped[In, any, R] {
	return Map(func(vs ...any) R {
		return fn(as[A](vs[0]), as[B](vs[1]))
	}, erase(a), erase(b))
}

// Map3 is Map for a ternary function over coroutines of different
// value types.
func Map3[In, A, B, C, R any](
	fn func(A, B, C) R,
	a Coroutine[In, A],
	b Coroutine[In, B],
	c Coroutine[In, C],
) *Mapped[In, any, R] {
	return Map(func(vs ...any) R {
		return fn(as[A](vs[0]), as[B](vs[1]), as[C](vs[2]))
	}, erase(a), erase(b), erase(c))
}

func (m *Mapped[In, Out, R]) apply(vals []Out, err error) (R, error) {
	if err != nil {
		var zero R
		return zero, err
	}
	return m.fn(vals...), nil
}

func (m *Mapped[In, Out, R]) Next() (R, error) {
	return m.apply(m.f.next())
}

// Send delivers val to every underlying coroutine.
func (m *Mapped[In, Out, R]) Send(val In) (R, error) {
	return m.apply(m.f.send(val))
}

// Throw delivers err to every underlying coroutine in argument order.
// The first one that does not handle it stops the call and its error
// is returned; the ones after it are left untouched.
func (m *Mapped[In, Out, R]) Throw(err error) (R, error) {
	return m.apply(m.f.throw(err))
}

// Close closes every underlying coroutine and reports the faults
// raised while doing so.
func (m *Mapped[In, Out, R]) Close() error {
	return m.f.close()
}

// Plain reports whether every underlying coroutine wraps a plain
// sequence.
func (m *Mapped[In, Out, R]) Plain() bool {
	return m.f.plain()
}

func (m *Mapped[In, Out, R]) String() string {
	return m.f.String()
}

// erased presents a coroutine with a concrete value type as one
// producing any, so coroutines of different types can share a fanout.
type erased[In, Out any] struct {
	c Coroutine[In, Out]
}

func erase[In, Out any](c Coroutine[In, Out]) Coroutine[In, any] {
	return erased[In, Out]{c: c}
}

func (e erased[In, Out]) Next() (any, error)           { return box(e.c.Next()) }
func (e erased[In, Out]) Send(val In) (any, error)     { return box(e.c.Send(val)) }
func (e erased[In, Out]) Throw(err error) (any, error) { return box(e.c.Throw(err)) }
func (e erased[In, Out]) Close() error                 { return e.c.Close() }

func (e erased[In, Out]) memberKind() memberKind {
	return classify(e.c)
}

func box[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// as unboxes v, treating a nil interface as the zero value of T.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
