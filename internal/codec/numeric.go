package codec

import (
	"github.com/jackc/pgtype"
	shopspring "github.com/jackc/pgtype/ext/shopspring-numeric"
	"github.com/lib/pq/oid"
	"github.com/shopspring/decimal"
)

func init() {
	register(oid.T_numeric, numericCodec{})
}

// numericCodec adapts shopspring.Numeric (jackc/pgtype's bridge type between
// pgtype v1's Numeric wire codec and shopspring/decimal.Decimal) to this
// package's Codec shape. The base-10000 digit-group wire algorithm stays
// inside the pgtype v1 library; this file only owns the Decimal <-> Numeric
// plumbing and the connInfo plumbing the v1 Encode/Decode methods require.
type numericCodec struct{}

func (numericCodec) EncodeBinary(v any) ([]byte, error) {
	n, err := toShopspringNumeric(v)
	if err != nil {
		return nil, err
	}
	return n.EncodeBinary(connInfo, nil)
}

func (numericCodec) DecodeBinary(data []byte) (any, error) {
	var n shopspring.Numeric
	if err := n.DecodeBinary(connInfo, data); err != nil {
		return nil, err
	}
	return n.Decimal, nil
}

func (numericCodec) EncodeText(v any) ([]byte, error) {
	n, err := toShopspringNumeric(v)
	if err != nil {
		return nil, err
	}
	return n.EncodeText(connInfo, nil)
}

func (numericCodec) DecodeText(data []byte) (any, error) {
	var n shopspring.Numeric
	if err := n.DecodeText(connInfo, data); err != nil {
		return nil, err
	}
	return n.Decimal, nil
}

func toShopspringNumeric(v any) (shopspring.Numeric, error) {
	d, ok := v.(decimal.Decimal)
	if !ok {
		return shopspring.Numeric{}, typeError("decimal.Decimal", v)
	}
	return shopspring.Numeric{Decimal: d, Status: pgtype.Present}, nil
}
