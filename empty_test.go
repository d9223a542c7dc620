package cotoolz

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmptyDrain(t *testing.T) {
	got, err := Drain[int, int](Empty[int, int]())
	require.NoError(t, err)
	require.Empty(t, got)

	for range Empty[int, int]().All() {
		t.Fatal("expected no values")
	}
}

func TestEmptyIterSelf(t *testing.T) {
	e := Empty[string, int]()
	require.Equal(t, e, e.Iter())
	require.Equal(t, Empty[string, int](), EmptyCoroutine[string, int]{})
}

func TestEmptySend(t *testing.T) {
	_, err := Empty[int, int]().Send(1)
	require.ErrorIs(t, err, ErrExhausted)
}

func TestEmptyThrow(t *testing.T) {
	e := errors.New("boom")
	_, err := Empty[int, int]().Throw(e)
	require.Same(t, e, err)

	_, err = ThrowNew[int, int](Empty[int, int](), errValue, "test")
	require.ErrorIs(t, err, errValue)
	var exc *Exception
	require.ErrorAs(t, err, &exc)
	require.Equal(t, []any{"test"}, exc.Args)

	_, err = Empty[int, int]().Throw(nil)
	require.ErrorIs(t, err, ErrNilThrow)
}

func TestEmptyClose(t *testing.T) {
	e := Empty[int, int]()
	for range 3 {
		require.NoError(t, e.Close())
	}
	got, err := Drain[int, int](e)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestEmptyString(t *testing.T) {
	require.Equal(t, "emptycoroutine", Empty[int, int]().String())
}

func TestEmptyRoundTrip(t *testing.T) {
	type codec struct {
		marshal   func(any) ([]byte, error)
		unmarshal func([]byte, any) error
	}
	codecs := map[string]codec{
		"json": {json.Marshal, json.Unmarshal},
		"cbor": {cbor.Marshal, cbor.Unmarshal},
		"yaml": {yaml.Marshal, yaml.Unmarshal},
		"gob": {
			func(v any) ([]byte, error) {
				var buf bytes.Buffer
				err := gob.NewEncoder(&buf).Encode(v)
				return buf.Bytes(), err
			},
			func(data []byte, v any) error {
				return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
			},
		},
	}

	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			data, err := c.marshal(Empty[int, int]())
			require.NoError(t, err)

			var got EmptyCoroutine[int, int]
			require.NoError(t, c.unmarshal(data, &got))
			require.Equal(t, Empty[int, int](), got)

			vals, err := Drain[int, int](got)
			require.NoError(t, err)
			require.Empty(t, vals)
		})
	}
}

func TestEmptyDecodeRejectsOtherValues(t *testing.T) {
	var e EmptyCoroutine[int, int]

	require.ErrorIs(t, json.Unmarshal([]byte(`"fullcoroutine"`), &e), ErrNotEmptyCoroutine)
	require.ErrorIs(t, yaml.Unmarshal([]byte("[1, 2]"), &e), ErrNotEmptyCoroutine)

	data, err := cbor.Marshal(42)
	require.NoError(t, err)
	require.ErrorIs(t, cbor.Unmarshal(data, &e), ErrNotEmptyCoroutine)
}
