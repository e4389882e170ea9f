package pgresult

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pgpipe/pgpipe/internal/codec"
	"github.com/pgpipe/pgpipe/internal/wireframe"
)

func intField(name string) wireframe.FieldDescription {
	return wireframe.FieldDescription{Name: name, DataTypeOID: 23, DataTypeSize: 4, Format: 1}
}

func rawRowOf(fields ...[]byte) *wireframe.RawRow {
	row := &wireframe.RawRow{Nulls: map[int]struct{}{}}
	for i, f := range fields {
		if f == nil {
			start := len(row.Payload)
			row.Offsets = append(row.Offsets, [2]int{start, start})
			row.Nulls[i] = struct{}{}
			continue
		}
		start := len(row.Payload)
		row.Payload = append(row.Payload, f...)
		row.Offsets = append(row.Offsets, [2]int{start, len(row.Payload)})
	}
	return row
}

func encodedInt32(reg *codec.Registry, n int32) []byte {
	b, err := reg.Encode(23, true, n)
	if err != nil {
		panic(err)
	}
	return b
}

func TestSetSizeAndEmpty(t *testing.T) {
	reg := codec.NewRegistry()
	desc := []wireframe.FieldDescription{intField("a")}
	set := NewSet(reg, desc, nil)
	require.True(t, set.Empty())
	require.Equal(t, 0, set.Size())

	set = NewSet(reg, desc, []*wireframe.RawRow{rawRowOf(encodedInt32(reg, 1))})
	require.False(t, set.Empty())
	require.Equal(t, 1, set.Size())
}

func TestRowForwardAndReverseIndexing(t *testing.T) {
	reg := codec.NewRegistry()
	desc := []wireframe.FieldDescription{intField("a")}
	rows := []*wireframe.RawRow{
		rawRowOf(encodedInt32(reg, 1)),
		rawRowOf(encodedInt32(reg, 2)),
		rawRowOf(encodedInt32(reg, 3)),
	}
	set := NewSet(reg, desc, rows)

	first, err := set.Row(0)
	require.NoError(t, err)
	last, err := set.Row(-1)
	require.NoError(t, err)

	f0, _ := first.Field(0)
	v0, err := f0.Decode()
	require.NoError(t, err)
	require.Equal(t, int32(1), v0)

	fLast, _ := last.Field(0)
	vLast, err := fLast.Decode()
	require.NoError(t, err)
	require.Equal(t, int32(3), vLast)
}

func TestFieldIsNullAndDecode(t *testing.T) {
	reg := codec.NewRegistry()
	desc := []wireframe.FieldDescription{intField("a")}
	set := NewSet(reg, desc, []*wireframe.RawRow{rawRowOf(nil)})

	row, err := set.Row(0)
	require.NoError(t, err)
	field, err := row.Field(0)
	require.NoError(t, err)

	require.True(t, field.IsNull())
	require.Nil(t, field.Bytes())

	_, err = field.MustDecode()
	require.Error(t, err)
}

func TestRowToTupleArityMismatch(t *testing.T) {
	reg := codec.NewRegistry()
	desc := []wireframe.FieldDescription{intField("a")}
	set := NewSet(reg, desc, []*wireframe.RawRow{rawRowOf(encodedInt32(reg, 7))})

	row, err := set.Row(0)
	require.NoError(t, err)

	var a, b any
	err = row.RowToTuple(&a, &b)
	require.Error(t, err)
}
