package codec

import (
	"github.com/jackc/pgtype"
	"github.com/lib/pq/oid"
)

func init() {
	register(oid.T_bool, boolCodec{})
	register(oid.T_int2, int2Codec{})
	register(oid.T_int4, int4Codec{})
	register(oid.T_int8, int8Codec{})
	register(oid.T_float4, float4Codec{})
	register(oid.T_float8, float8Codec{})
}

// Every scalar codec below is a thin wrapper over the matching pgtype v1
// value type's own Set/EncodeBinary/DecodeBinary/EncodeText/DecodeText,
// the same pattern numeric.go uses for pgtype.Numeric. This keeps the
// fixed-width binary layouts and the non-finite-float text rendering
// (NaN/Infinity/-Infinity) inside the library that already gets them
// right, rather than re-deriving them over encoding/binary and strconv.

type boolCodec struct{}

func (boolCodec) EncodeBinary(v any) ([]byte, error) {
	var t pgtype.Bool
	if err := t.Set(v); err != nil {
		return nil, err
	}
	return t.EncodeBinary(connInfo, nil)
}

func (boolCodec) DecodeBinary(data []byte) (any, error) {
	var t pgtype.Bool
	if err := t.DecodeBinary(connInfo, data); err != nil {
		return nil, err
	}
	return t.Bool, nil
}

func (boolCodec) EncodeText(v any) ([]byte, error) {
	var t pgtype.Bool
	if err := t.Set(v); err != nil {
		return nil, err
	}
	return t.EncodeText(connInfo, nil)
}

func (boolCodec) DecodeText(data []byte) (any, error) {
	var t pgtype.Bool
	if err := t.DecodeText(connInfo, data); err != nil {
		return nil, err
	}
	return t.Bool, nil
}

type int2Codec struct{}

func (int2Codec) EncodeBinary(v any) ([]byte, error) {
	var t pgtype.Int2
	if err := t.Set(v); err != nil {
		return nil, err
	}
	return t.EncodeBinary(connInfo, nil)
}

func (int2Codec) DecodeBinary(data []byte) (any, error) {
	var t pgtype.Int2
	if err := t.DecodeBinary(connInfo, data); err != nil {
		return nil, err
	}
	return t.Int, nil
}

func (int2Codec) EncodeText(v any) ([]byte, error) {
	var t pgtype.Int2
	if err := t.Set(v); err != nil {
		return nil, err
	}
	return t.EncodeText(connInfo, nil)
}

func (int2Codec) DecodeText(data []byte) (any, error) {
	var t pgtype.Int2
	if err := t.DecodeText(connInfo, data); err != nil {
		return nil, err
	}
	return t.Int, nil
}

type int4Codec struct{}

func (int4Codec) EncodeBinary(v any) ([]byte, error) {
	var t pgtype.Int4
	if err := t.Set(v); err != nil {
		return nil, err
	}
	return t.EncodeBinary(connInfo, nil)
}

func (int4Codec) DecodeBinary(data []byte) (any, error) {
	var t pgtype.Int4
	if err := t.DecodeBinary(connInfo, data); err != nil {
		return nil, err
	}
	return t.Int, nil
}

func (int4Codec) EncodeText(v any) ([]byte, error) {
	var t pgtype.Int4
	if err := t.Set(v); err != nil {
		return nil, err
	}
	return t.EncodeText(connInfo, nil)
}

func (int4Codec) DecodeText(data []byte) (any, error) {
	var t pgtype.Int4
	if err := t.DecodeText(connInfo, data); err != nil {
		return nil, err
	}
	return t.Int, nil
}

type int8Codec struct{}

func (int8Codec) EncodeBinary(v any) ([]byte, error) {
	var t pgtype.Int8
	if err := t.Set(v); err != nil {
		return nil, err
	}
	return t.EncodeBinary(connInfo, nil)
}

func (int8Codec) DecodeBinary(data []byte) (any, error) {
	var t pgtype.Int8
	if err := t.DecodeBinary(connInfo, data); err != nil {
		return nil, err
	}
	return t.Int, nil
}

func (int8Codec) EncodeText(v any) ([]byte, error) {
	var t pgtype.Int8
	if err := t.Set(v); err != nil {
		return nil, err
	}
	return t.EncodeText(connInfo, nil)
}

func (int8Codec) DecodeText(data []byte) (any, error) {
	var t pgtype.Int8
	if err := t.DecodeText(connInfo, data); err != nil {
		return nil, err
	}
	return t.Int, nil
}

type float4Codec struct{}

func (float4Codec) EncodeBinary(v any) ([]byte, error) {
	var t pgtype.Float4
	if err := t.Set(v); err != nil {
		return nil, err
	}
	return t.EncodeBinary(connInfo, nil)
}

func (float4Codec) DecodeBinary(data []byte) (any, error) {
	var t pgtype.Float4
	if err := t.DecodeBinary(connInfo, data); err != nil {
		return nil, err
	}
	return t.Float, nil
}

func (float4Codec) EncodeText(v any) ([]byte, error) {
	var t pgtype.Float4
	if err := t.Set(v); err != nil {
		return nil, err
	}
	return t.EncodeText(connInfo, nil)
}

func (float4Codec) DecodeText(data []byte) (any, error) {
	var t pgtype.Float4
	if err := t.DecodeText(connInfo, data); err != nil {
		return nil, err
	}
	return t.Float, nil
}

type float8Codec struct{}

func (float8Codec) EncodeBinary(v any) ([]byte, error) {
	var t pgtype.Float8
	if err := t.Set(v); err != nil {
		return nil, err
	}
	return t.EncodeBinary(connInfo, nil)
}

func (float8Codec) DecodeBinary(data []byte) (any, error) {
	var t pgtype.Float8
	if err := t.DecodeBinary(connInfo, data); err != nil {
		return nil, err
	}
	return t.Float, nil
}

func (float8Codec) EncodeText(v any) ([]byte, error) {
	var t pgtype.Float8
	if err := t.Set(v); err != nil {
		return nil, err
	}
	return t.EncodeText(connInfo, nil)
}

func (float8Codec) DecodeText(data []byte) (any, error) {
	var t pgtype.Float8
	if err := t.DecodeText(connInfo, data); err != nil {
		return nil, err
	}
	return t.Float, nil
}
