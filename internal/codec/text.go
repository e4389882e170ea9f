package codec

import (
	"github.com/jackc/pgtype"
	"github.com/lib/pq/oid"
)

func init() {
	register(oid.T_text, textCodec{})
	register(oid.T_varchar, textCodec{})
	register(oid.T_bytea, byteaCodec{})
	register(oid.T_json, jsonCodec{})
	register(oid.T_jsonb, jsonbCodec{})
}

// textCodec wraps pgtype.Text and handles text and varchar identically:
// both OIDs put the raw string bytes on the wire in both formats, no length
// prefix (the frame envelope already carries the length), which is exactly
// what pgtype.Text already implements.
type textCodec struct{}

func (textCodec) EncodeBinary(v any) ([]byte, error) {
	t, err := toPgText(v)
	if err != nil {
		return nil, err
	}
	return t.EncodeBinary(connInfo, nil)
}

func (textCodec) DecodeBinary(data []byte) (any, error) {
	var t pgtype.Text
	if err := t.DecodeBinary(connInfo, data); err != nil {
		return nil, err
	}
	return t.String, nil
}

func (textCodec) EncodeText(v any) ([]byte, error) {
	t, err := toPgText(v)
	if err != nil {
		return nil, err
	}
	return t.EncodeText(connInfo, nil)
}

func (textCodec) DecodeText(data []byte) (any, error) {
	var t pgtype.Text
	if err := t.DecodeText(connInfo, data); err != nil {
		return nil, err
	}
	return t.String, nil
}

func toPgText(v any) (pgtype.Text, error) {
	var t pgtype.Text
	if err := t.Set(v); err != nil {
		return pgtype.Text{}, err
	}
	return t, nil
}

// byteaCodec wraps pgtype.Bytea: binary format is the raw bytes, text
// format is the "\x"-hex-escape encoding PostgreSQL has emitted by default
// since 9.0 (the legacy escape format is neither produced nor accepted).
type byteaCodec struct{}

func (byteaCodec) EncodeBinary(v any) ([]byte, error) {
	b, err := toPgBytea(v)
	if err != nil {
		return nil, err
	}
	return b.EncodeBinary(connInfo, nil)
}

func (byteaCodec) DecodeBinary(data []byte) (any, error) {
	var b pgtype.Bytea
	if err := b.DecodeBinary(connInfo, data); err != nil {
		return nil, err
	}
	return b.Bytes, nil
}

func (byteaCodec) EncodeText(v any) ([]byte, error) {
	b, err := toPgBytea(v)
	if err != nil {
		return nil, err
	}
	return b.EncodeText(connInfo, nil)
}

func (byteaCodec) DecodeText(data []byte) (any, error) {
	var b pgtype.Bytea
	if err := b.DecodeText(connInfo, data); err != nil {
		return nil, err
	}
	return b.Bytes, nil
}

func toPgBytea(v any) (pgtype.Bytea, error) {
	b, ok := v.([]byte)
	if !ok {
		return pgtype.Bytea{}, typeError("[]byte", v)
	}
	return pgtype.Bytea{Bytes: b, Status: pgtype.Present}, nil
}

// jsonCodec and jsonbCodec wrap pgtype.JSON/pgtype.JSONB, which both
// round-trip raw JSON text; jsonb's leading version byte (always 1) only
// appears in the binary format and is handled inside pgtype itself.
type jsonCodec struct{}

func (jsonCodec) EncodeBinary(v any) ([]byte, error) {
	j, err := toPgJSON(v)
	if err != nil {
		return nil, err
	}
	return j.EncodeBinary(connInfo, nil)
}

func (jsonCodec) DecodeBinary(data []byte) (any, error) {
	var j pgtype.JSON
	if err := j.DecodeBinary(connInfo, data); err != nil {
		return nil, err
	}
	return string(j.Bytes), nil
}

func (jsonCodec) EncodeText(v any) ([]byte, error) {
	j, err := toPgJSON(v)
	if err != nil {
		return nil, err
	}
	return j.EncodeText(connInfo, nil)
}

func (jsonCodec) DecodeText(data []byte) (any, error) {
	var j pgtype.JSON
	if err := j.DecodeText(connInfo, data); err != nil {
		return nil, err
	}
	return string(j.Bytes), nil
}

func toPgJSON(v any) (pgtype.JSON, error) {
	var j pgtype.JSON
	if err := j.Set(v); err != nil {
		return pgtype.JSON{}, err
	}
	return j, nil
}

type jsonbCodec struct{}

func (jsonbCodec) EncodeBinary(v any) ([]byte, error) {
	j, err := toPgJSONB(v)
	if err != nil {
		return nil, err
	}
	return j.EncodeBinary(connInfo, nil)
}

func (jsonbCodec) DecodeBinary(data []byte) (any, error) {
	var j pgtype.JSONB
	if err := j.DecodeBinary(connInfo, data); err != nil {
		return nil, err
	}
	return string(j.Bytes), nil
}

func (jsonbCodec) EncodeText(v any) ([]byte, error) {
	j, err := toPgJSONB(v)
	if err != nil {
		return nil, err
	}
	return j.EncodeText(connInfo, nil)
}

func (jsonbCodec) DecodeText(data []byte) (any, error) {
	var j pgtype.JSONB
	if err := j.DecodeText(connInfo, data); err != nil {
		return nil, err
	}
	return string(j.Bytes), nil
}

func toPgJSONB(v any) (pgtype.JSONB, error) {
	var j pgtype.JSONB
	if err := j.Set(v); err != nil {
		return pgtype.JSONB{}, err
	}
	return j, nil
}
