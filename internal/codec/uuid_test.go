package codec

import (
	"testing"

	"github.com/lib/pq/oid"
	"github.com/stretchr/testify/require"
)

func TestUUIDBinaryRoundTrip(t *testing.T) {
	r := NewRegistry()
	var u [16]byte
	for i := range u {
		u[i] = byte(i * 7)
	}

	enc, err := r.Encode(oid.T_uuid, true, u)
	require.NoError(t, err)
	require.Len(t, enc, 16)

	dec, err := r.Decode(oid.T_uuid, true, enc)
	require.NoError(t, err)
	require.Equal(t, u, dec)
}

func TestUUIDTextRoundTrip(t *testing.T) {
	r := NewRegistry()
	var u [16]byte
	for i := range u {
		u[i] = byte(i)
	}

	enc, err := r.Encode(oid.T_uuid, false, u)
	require.NoError(t, err)
	require.Equal(t, "00010203-0405-0607-0809-0a0b0c0d0e0f", string(enc))

	dec, err := r.Decode(oid.T_uuid, false, enc)
	require.NoError(t, err)
	require.Equal(t, u, dec)
}
