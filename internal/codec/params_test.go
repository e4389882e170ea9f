package codec

import (
	"testing"

	"github.com/lib/pq/oid"
	"github.com/stretchr/testify/require"
)

func TestBuildParamsScalars(t *testing.T) {
	r := NewRegistry()
	pack, err := r.BuildParams(
		[]oid.Oid{oid.T_int4, oid.T_text, oid.T_float8},
		[]any{int32(42), "hello", float64(3.5)},
	)
	require.NoError(t, err)
	require.Equal(t, []oid.Oid{oid.T_int4, oid.T_text, oid.T_float8}, pack.OIDs)

	count := int(pack.Payload[0])<<8 | int(pack.Payload[1])
	require.Equal(t, 3, count)
}

func TestBuildParamsExplodesStringSlice(t *testing.T) {
	r := NewRegistry()
	// One leading scalar column, then a batch of three string values for a
	// repeated text column (batch-INSERT idiom).
	pack, err := r.BuildParams(
		[]oid.Oid{oid.T_int4, oid.T_text, oid.T_text, oid.T_text},
		[]any{int32(1), []string{"a", "b", "c"}},
	)
	require.NoError(t, err)
	require.Equal(t, []oid.Oid{oid.T_int4, oid.T_text, oid.T_text, oid.T_text}, pack.OIDs)

	count := int(pack.Payload[0])<<8 | int(pack.Payload[1])
	require.Equal(t, 4, count)
}

func TestBuildParamsByteSliceDoesNotExplode(t *testing.T) {
	r := NewRegistry()
	pack, err := r.BuildParams(
		[]oid.Oid{oid.T_bytea},
		[]any{[]byte{1, 2, 3}},
	)
	require.NoError(t, err)
	require.Equal(t, []oid.Oid{oid.T_bytea}, pack.OIDs)
}

func TestBuildParamsNull(t *testing.T) {
	r := NewRegistry()
	pack, err := r.BuildParams([]oid.Oid{oid.T_int4}, []any{nil})
	require.NoError(t, err)
	require.Equal(t, []oid.Oid{oid.T_int4}, pack.OIDs)

	// count(2) + length(-1 as int32)
	require.Equal(t, []byte{0, 1, 0xFF, 0xFF, 0xFF, 0xFF}, pack.Payload)
}
