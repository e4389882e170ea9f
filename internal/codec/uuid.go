package codec

import (
	"github.com/jackc/pgtype"
	"github.com/lib/pq/oid"
)

func init() {
	register(oid.T_uuid, uuidCodec{})
}

// uuidCodec wraps pgtype.UUID the same way numeric.go wraps
// shopspring.Numeric: the Go-side value is always a [16]byte so callers
// don't need a UUID library dependency for a type this package otherwise
// handles directly, but the wire layout (16 raw bytes binary, dashed hex
// text) comes from pgtype v1 rather than a hand-rolled formatter.
type uuidCodec struct{}

func (uuidCodec) EncodeBinary(v any) ([]byte, error) {
	u, err := toPgUUID(v)
	if err != nil {
		return nil, err
	}
	return u.EncodeBinary(connInfo, nil)
}

func (uuidCodec) DecodeBinary(data []byte) (any, error) {
	var u pgtype.UUID
	if err := u.DecodeBinary(connInfo, data); err != nil {
		return nil, err
	}
	return u.Bytes, nil
}

func (uuidCodec) EncodeText(v any) ([]byte, error) {
	u, err := toPgUUID(v)
	if err != nil {
		return nil, err
	}
	return u.EncodeText(connInfo, nil)
}

func (uuidCodec) DecodeText(data []byte) (any, error) {
	var u pgtype.UUID
	if err := u.DecodeText(connInfo, data); err != nil {
		return nil, err
	}
	return u.Bytes, nil
}

func toPgUUID(v any) (pgtype.UUID, error) {
	b, ok := v.([16]byte)
	if !ok {
		return pgtype.UUID{}, typeError("[16]byte uuid", v)
	}
	return pgtype.UUID{Bytes: b, Status: pgtype.Present}, nil
}
