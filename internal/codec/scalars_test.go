package codec

import (
	"math"
	"testing"

	"github.com/lib/pq/oid"
	"github.com/stretchr/testify/require"
)

func TestScalarBinaryRoundTrip(t *testing.T) {
	r := NewRegistry()

	cases := []struct {
		name string
		oid  oid.Oid
		v    any
	}{
		{"bool", oid.T_bool, true},
		{"int2", oid.T_int2, int16(-7)},
		{"int4", oid.T_int4, int32(42)},
		{"int8", oid.T_int8, int64(-12345678901)},
		{"float4", oid.T_float4, float32(3.5)},
		{"float8", oid.T_float8, float64(3.14159)},
		{"text", oid.T_text, "hello"},
		{"bytea", oid.T_bytea, []byte{0xDE, 0xAD, 0xBE, 0xEF}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			enc, err := r.Encode(c.oid, true, c.v)
			require.NoError(t, err)

			dec, err := r.Decode(c.oid, true, enc)
			require.NoError(t, err)
			require.Equal(t, c.v, dec)
		})
	}
}

func TestScalarTextRoundTrip(t *testing.T) {
	r := NewRegistry()

	enc, err := r.Encode(oid.T_int4, false, int32(42))
	require.NoError(t, err)
	require.Equal(t, "42", string(enc))

	dec, err := r.Decode(oid.T_int4, false, enc)
	require.NoError(t, err)
	require.Equal(t, int32(42), dec)
}

func TestDecodeNullReturnsNil(t *testing.T) {
	r := NewRegistry()
	v, err := r.Decode(oid.T_int4, true, nil)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestEncodeUnsupportedOIDFallsBackToRawBytes(t *testing.T) {
	r := NewRegistry()
	v, err := r.Encode(9999999, true, []byte("raw"))
	require.NoError(t, err)
	require.Equal(t, []byte("raw"), v)
}

func TestFloatTextNonFiniteValues(t *testing.T) {
	r := NewRegistry()

	cases := []struct {
		name string
		v    float64
		want string
	}{
		{"nan", math.NaN(), "NaN"},
		{"+inf", math.Inf(1), "Infinity"},
		{"-inf", math.Inf(-1), "-Infinity"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			enc, err := r.Encode(oid.T_float8, false, c.v)
			require.NoError(t, err)
			require.Equal(t, c.want, string(enc))

			dec, err := r.Decode(oid.T_float8, false, enc)
			require.NoError(t, err)
			if c.name == "nan" {
				require.True(t, math.IsNaN(dec.(float64)))
			} else {
				require.Equal(t, c.v, dec)
			}
		})
	}
}

func TestByteaTextEscaping(t *testing.T) {
	r := NewRegistry()
	enc, err := r.Encode(oid.T_bytea, false, []byte{0x01, 0xFF})
	require.NoError(t, err)
	require.Equal(t, "\\x01ff", string(enc))

	dec, err := r.Decode(oid.T_bytea, false, enc)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0xFF}, dec)
}
