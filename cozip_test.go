package cotoolz

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestZipLikeZip(t *testing.T) {
	cz := Zip(Slice[int]([]int{1, 2, 3}), Slice[int]([]int{1, 2, 3}))
	got, err := Drain[int, []int](cz)
	require.NoError(t, err)
	require.Equal(t, [][]int{{1, 1}, {2, 2}, {3, 3}}, got)

	dz := Zip(Slice[int]([]int{1, 2, 3}))
	got, err = Drain[int, []int](dz)
	require.NoError(t, err)
	require.Equal(t, [][]int{{1}, {2}, {3}}, got)
	require.True(t, dz.Plain())
}

func TestZipTuplesAreFresh(t *testing.T) {
	z := Zip(Slice[int]([]int{1, 2}))
	first, err := z.Next()
	require.NoError(t, err)
	first[0] = 99

	second, err := z.Next()
	require.NoError(t, err)
	require.Equal(t, []int{2}, second)
	require.Equal(t, []int{99}, first)
}

func TestZipSend(t *testing.T) {
	cz := Zip(Coroutine[int, int](echo(t)))
	v, err := cz.Next()
	require.NoError(t, err)
	require.Equal(t, []int{1}, v)
	for _, n := range []int{2, 3} {
		v, err = cz.Send(n)
		require.NoError(t, err)
		require.Equal(t, []int{n}, v)
	}

	dz := Zip(echo(t), echo(t))
	v, err = dz.Next()
	require.NoError(t, err)
	require.Equal(t, []int{1, 1}, v)
	for _, n := range []int{2, 3} {
		v, err = dz.Send(n)
		require.NoError(t, err)
		require.Equal(t, []int{n, n}, v)
	}
}

func TestZipThrow(t *testing.T) {
	e := errors.New("boom")

	cz := Zip(Coroutine[int, any](catcher(t)))
	v, err := cz.Next()
	require.NoError(t, err)
	require.Equal(t, []any{1}, v)
	v, err = cz.Throw(e)
	require.NoError(t, err)
	require.Len(t, v, 1)
	require.Same(t, e, v[0])

	dz := Zip(catcher(t), catcher(t))
	v, err = dz.Next()
	require.NoError(t, err)
	require.Equal(t, []any{1, 1}, v)
	v, err = dz.Throw(e)
	require.NoError(t, err)
	require.Len(t, v, 2)
	require.Same(t, e, v[0])
	require.Same(t, e, v[1])

	ez := Zip2(catcher(t), counter(t))
	p, err := ez.Next()
	require.NoError(t, err)
	require.Equal(t, Pair[any, int]{First: 1, Second: 1}, p)
	_, err = ez.Throw(e)
	require.Same(t, e, err)
}

func TestZipClose(t *testing.T) {
	cz := Zip(Coroutine[int, int](counter(t)))
	v, err := cz.Next()
	require.NoError(t, err)
	require.Equal(t, []int{1}, v)
	require.NoError(t, cz.Close())
	got, err := Drain[int, []int](cz)
	require.NoError(t, err)
	require.Empty(t, got)

	a, b := counter(t), counter(t)
	dz := Zip(a, b)
	v, err = dz.Next()
	require.NoError(t, err)
	require.Equal(t, []int{1, 1}, v)
	require.NoError(t, dz.Close())
	got, err = Drain[int, []int](dz)
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = a.Next()
	require.ErrorIs(t, err, ErrExhausted)
	_, err = b.Next()
	require.ErrorIs(t, err, ErrExhausted)
}

func TestZipCloseFault(t *testing.T) {
	fault := errors.New("close failed")
	b := &numbers{vals: []int{1}}
	z := Zip(Iter[int, int](&failingCloser{err: fault}), Iter[int, int](b))
	require.Same(t, fault, z.Close())
	require.Equal(t, 1, b.closed)
}

func TestZip2(t *testing.T) {
	z := Zip2(Slice[int]([]string{"a", "b", "c"}), Slice[int]([]int{1, 2}))
	got, err := Drain[int, Pair[string, int]](z)
	require.NoError(t, err)
	require.Equal(t, []Pair[string, int]{{"a", 1}, {"b", 2}}, got)
	require.Equal(t, "cozip(coerced, coerced)", z.String())
}

func TestZipString(t *testing.T) {
	z := Zip(Slice[int]([]int{1}), counter(t))
	require.Equal(t, "cozip(coerced, native)", z.String())
	require.False(t, z.Plain())
}

func TestZipOf(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	n := &numbers{vals: []int{7, 8, 9}}
	z, err := ZipOf[int, int](slices.Values([]int{1, 2}), n)
	require.NoError(t, err)
	require.True(t, z.Plain())

	got, err := Drain[int, []int](z)
	require.NoError(t, err)
	require.Equal(t, [][]int{{1, 7}, {2, 8}}, got)
	require.Equal(t, 1, n.closed, "coerced inputs are released on exhaustion")
	require.NoError(t, z.Close())
}
