package cotoolz

import (
	"errors"
	"fmt"
	"iter"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

const emptyToken = "emptycoroutine"

// ErrNotEmptyCoroutine is returned when decoding something other than
// the encoded empty coroutine.
var ErrNotEmptyCoroutine = errors.New("cotoolz: not an encoded emptycoroutine")

// EmptyCoroutine is a coroutine that is always exhausted. It has no
// state, so every value of a given instantiation is interchangeable
// with every other and compares equal to Empty().
type EmptyCoroutine[In, Out any] struct{}

var _ Coroutine[any, any] = EmptyCoroutine[any, any]{}

// Empty returns the empty coroutine.
func Empty[In, Out any]() EmptyCoroutine[In, Out] {
	return EmptyCoroutine[In, Out]{}
}

func (EmptyCoroutine[In, Out]) Next() (Out, error) {
	var zero Out
	return zero, ErrExhausted
}

func (EmptyCoroutine[In, Out]) Send(In) (Out, error) {
	var zero Out
	return zero, ErrExhausted
}

// Throw hands err back unchanged; there is no suspended body to catch
// it.
func (EmptyCoroutine[In, Out]) Throw(err error) (Out, error) {
	var zero Out
	if err == nil {
		return zero, ErrNilThrow
	}
	return zero, err
}

func (EmptyCoroutine[In, Out]) Close() error {
	return nil
}

// Iter returns the empty coroutine itself.
func (e EmptyCoroutine[In, Out]) Iter() EmptyCoroutine[In, Out] {
	return e
}

// All returns a sequence that yields nothing, however often it is
// ranged over.
func (EmptyCoroutine[In, Out]) All() iter.Seq[Out] {
	return func(func(Out) bool) {}
}

func (EmptyCoroutine[In, Out]) String() string {
	return emptyToken
}

func (EmptyCoroutine[In, Out]) MarshalText() ([]byte, error) {
	return []byte(emptyToken), nil
}

func (*EmptyCoroutine[In, Out]) UnmarshalText(text []byte) error {
	return checkEmptyToken(string(text))
}

func (e EmptyCoroutine[In, Out]) GobEncode() ([]byte, error) {
	return e.MarshalText()
}

func (e *EmptyCoroutine[In, Out]) GobDecode(data []byte) error {
	return e.UnmarshalText(data)
}

func (EmptyCoroutine[In, Out]) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(emptyToken)
}

func (*EmptyCoroutine[In, Out]) UnmarshalCBOR(data []byte) error {
	var s string
	if err := cbor.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %w", ErrNotEmptyCoroutine, err)
	}
	return checkEmptyToken(s)
}

func (EmptyCoroutine[In, Out]) MarshalYAML() (interface{}, error) {
	return emptyToken, nil
}

func (*EmptyCoroutine[In, Out]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return ErrNotEmptyCoroutine
	}
	return checkEmptyToken(value.Value)
}

func checkEmptyToken(s string) error {
	if s != emptyToken {
		return fmt.Errorf("%w: %q", ErrNotEmptyCoroutine, s)
	}
	return nil
}
