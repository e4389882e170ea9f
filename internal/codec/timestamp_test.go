package codec

import (
	"testing"
	"time"

	"github.com/lib/pq/oid"
	"github.com/stretchr/testify/require"
)

func TestTimestampBinaryRoundTrip(t *testing.T) {
	r := NewRegistry()
	want := time.Date(2024, 3, 15, 12, 30, 45, 123000, time.UTC)

	enc, err := r.Encode(oid.T_timestamp, true, want)
	require.NoError(t, err)

	dec, err := r.Decode(oid.T_timestamp, true, enc)
	require.NoError(t, err)
	require.True(t, want.Equal(dec.(time.Time)))
}

func TestTimestampBeforeEpoch(t *testing.T) {
	r := NewRegistry()
	want := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

	enc, err := r.Encode(oid.T_timestamptz, true, want)
	require.NoError(t, err)

	dec, err := r.Decode(oid.T_timestamptz, true, enc)
	require.NoError(t, err)
	require.True(t, want.Equal(dec.(time.Time)))
}
