package codec

import (
	"github.com/jackc/pgtype"
	"github.com/lib/pq/oid"
)

func init() {
	register(oid.T_timestamp, timestampCodec{})
	register(oid.T_timestamptz, timestamptzCodec{})
}

// timestampCodec wraps pgtype.Timestamp, the same way numeric.go wraps
// shopspring.Numeric: the microseconds-since-2000-01-01 wire arithmetic and
// the +/-infinity sentinel handling stay inside pgtype v1, this file only
// owns the time.Time plumbing.
type timestampCodec struct{}

func (timestampCodec) EncodeBinary(v any) ([]byte, error) {
	t, err := toPgTimestamp(v)
	if err != nil {
		return nil, err
	}
	return t.EncodeBinary(connInfo, nil)
}

func (timestampCodec) DecodeBinary(data []byte) (any, error) {
	var t pgtype.Timestamp
	if err := t.DecodeBinary(connInfo, data); err != nil {
		return nil, err
	}
	return t.Time, nil
}

func (timestampCodec) EncodeText(v any) ([]byte, error) {
	t, err := toPgTimestamp(v)
	if err != nil {
		return nil, err
	}
	return t.EncodeText(connInfo, nil)
}

func (timestampCodec) DecodeText(data []byte) (any, error) {
	var t pgtype.Timestamp
	if err := t.DecodeText(connInfo, data); err != nil {
		return nil, err
	}
	return t.Time, nil
}

func toPgTimestamp(v any) (pgtype.Timestamp, error) {
	var t pgtype.Timestamp
	if err := t.Set(v); err != nil {
		return pgtype.Timestamp{}, err
	}
	return t, nil
}

// timestamptzCodec wraps pgtype.Timestamptz the same way; the only
// difference from timestampCodec is the text layout, which pgtype renders
// with a zone offset.
type timestamptzCodec struct{}

func (timestamptzCodec) EncodeBinary(v any) ([]byte, error) {
	t, err := toPgTimestamptz(v)
	if err != nil {
		return nil, err
	}
	return t.EncodeBinary(connInfo, nil)
}

func (timestamptzCodec) DecodeBinary(data []byte) (any, error) {
	var t pgtype.Timestamptz
	if err := t.DecodeBinary(connInfo, data); err != nil {
		return nil, err
	}
	return t.Time, nil
}

func (timestamptzCodec) EncodeText(v any) ([]byte, error) {
	t, err := toPgTimestamptz(v)
	if err != nil {
		return nil, err
	}
	return t.EncodeText(connInfo, nil)
}

func (timestamptzCodec) DecodeText(data []byte) (any, error) {
	var t pgtype.Timestamptz
	if err := t.DecodeText(connInfo, data); err != nil {
		return nil, err
	}
	return t.Time, nil
}

func toPgTimestamptz(v any) (pgtype.Timestamptz, error) {
	var t pgtype.Timestamptz
	if err := t.Set(v); err != nil {
		return pgtype.Timestamptz{}, err
	}
	return t, nil
}
