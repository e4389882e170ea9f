package codec

import (
	"testing"

	"github.com/lib/pq/oid"
	"github.com/stretchr/testify/require"
)

func TestInt4ArrayBinaryRoundTrip(t *testing.T) {
	r := NewRegistry()
	want := []any{int32(1), int32(2), nil, int32(4)}

	enc, err := r.Encode(oid.T__int4, true, want)
	require.NoError(t, err)

	dec, err := r.Decode(oid.T__int4, true, enc)
	require.NoError(t, err)
	require.Equal(t, want, dec)
}

func TestTextArrayTextRoundTrip(t *testing.T) {
	r := NewRegistry()
	want := []any{"a", "with,comma", nil, "with \"quote\""}

	enc, err := r.Encode(oid.T__text, false, want)
	require.NoError(t, err)

	dec, err := r.Decode(oid.T__text, false, enc)
	require.NoError(t, err)
	require.Equal(t, want, dec)
}

func TestEmptyArray(t *testing.T) {
	r := NewRegistry()
	enc, err := r.Encode(oid.T__int4, true, []any{})
	require.NoError(t, err)

	dec, err := r.Decode(oid.T__int4, true, enc)
	require.NoError(t, err)
	require.Equal(t, []any{}, dec)
}
