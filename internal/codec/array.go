package codec

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/lib/pq/oid"
)

// arrayElementOID maps each supported array OID to its scalar element OID.
// Lower bound is always 1 and dimensionality is always 1: the general
// N-dimensional, arbitrary-lower-bound array wire format pgtype supports is
// wider than what this codec table needs, so it is not reused here.
var arrayElementOID = map[oid.Oid]oid.Oid{
	oid.T__bool:        oid.T_bool,
	oid.T__int2:        oid.T_int2,
	oid.T__int4:        oid.T_int4,
	oid.T__int8:        oid.T_int8,
	oid.T__float4:      oid.T_float4,
	oid.T__float8:      oid.T_float8,
	oid.T__text:        oid.T_text,
	oid.T__varchar:     oid.T_varchar,
	oid.T__bytea:       oid.T_bytea,
	oid.T__uuid:        oid.T_uuid,
	oid.T__timestamp:   oid.T_timestamp,
	oid.T__timestamptz: oid.T_timestamptz,
	oid.T__json:        oid.T_json,
	oid.T__jsonb:       oid.T_jsonb,
	oid.T__numeric:     oid.T_numeric,
}

func init() {
	for arrayOID, elemOID := range arrayElementOID {
		register(arrayOID, arrayCodec{elem: elemOID})
	}
}

// arrayCodec encodes/decodes a Go []any, where a nil element represents a
// SQL NULL array member, as a single-dimension Postgres array.
type arrayCodec struct {
	elem oid.Oid
}

func (c arrayCodec) elemCodec() (Codec, error) {
	ec, ok := scalarCodecs[c.elem]
	if !ok {
		return nil, unsupportedOID(c.elem)
	}
	return ec, nil
}

func (c arrayCodec) EncodeBinary(v any) ([]byte, error) {
	elems, ok := v.([]any)
	if !ok {
		return nil, typeError("[]any array elements", v)
	}
	ec, err := c.elemCodec()
	if err != nil {
		return nil, err
	}

	hasNull := 0
	for _, e := range elems {
		if e == nil {
			hasNull = 1
			break
		}
	}

	buf := make([]byte, 0, 20+len(elems)*8)
	buf = appendInt32(buf, 1) // ndim
	buf = appendInt32(buf, int32(hasNull))
	buf = appendUint32(buf, uint32(c.elem))
	buf = appendInt32(buf, int32(len(elems))) // dimension size (element count)
	buf = appendInt32(buf, 1)                 // lower bound, always 1

	for _, e := range elems {
		if e == nil {
			buf = appendInt32(buf, -1)
			continue
		}
		encoded, err := ec.EncodeBinary(e)
		if err != nil {
			return nil, err
		}
		buf = appendInt32(buf, int32(len(encoded)))
		buf = append(buf, encoded...)
	}
	return buf, nil
}

func (c arrayCodec) DecodeBinary(data []byte) (any, error) {
	if len(data) < 12 {
		return nil, typeError("array header", data)
	}
	ndim := int32(binary.BigEndian.Uint32(data[0:4]))
	if ndim == 0 {
		return []any{}, nil
	}
	if ndim != 1 {
		return nil, fmt.Errorf("codec: array has %d dimensions, only 1-D arrays are supported", ndim)
	}
	pos := 12 // ndim, hasNull, elemOID
	if len(data) < pos+8 {
		return nil, typeError("array dimension header", data)
	}
	n := int32(binary.BigEndian.Uint32(data[pos : pos+4]))
	pos += 8 // dimension size, lower bound

	ec, err := c.elemCodec()
	if err != nil {
		return nil, err
	}

	out := make([]any, n)
	for i := int32(0); i < n; i++ {
		if len(data) < pos+4 {
			return nil, typeError("array element length", data)
		}
		elemLen := int32(binary.BigEndian.Uint32(data[pos : pos+4]))
		pos += 4
		if elemLen < 0 {
			out[i] = nil
			continue
		}
		if len(data) < pos+int(elemLen) {
			return nil, typeError("array element payload", data)
		}
		val, err := ec.DecodeBinary(data[pos : pos+int(elemLen)])
		if err != nil {
			return nil, err
		}
		out[i] = val
		pos += int(elemLen)
	}
	return out, nil
}

func (c arrayCodec) EncodeText(v any) ([]byte, error) {
	elems, ok := v.([]any)
	if !ok {
		return nil, typeError("[]any array elements", v)
	}
	ec, err := c.elemCodec()
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range elems {
		if i > 0 {
			b.WriteByte(',')
		}
		if e == nil {
			b.WriteString("NULL")
			continue
		}
		txt, err := ec.EncodeText(e)
		if err != nil {
			return nil, err
		}
		b.WriteString(quoteArrayElement(string(txt)))
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

func (c arrayCodec) DecodeText(data []byte) (any, error) {
	s := strings.TrimSpace(string(data))
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return nil, typeError("postgres array text", data)
	}
	ec, err := c.elemCodec()
	if err != nil {
		return nil, err
	}
	inner := s[1 : len(s)-1]
	parts := splitArrayElements(inner)
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		if p == "NULL" {
			out = append(out, nil)
			continue
		}
		val, err := ec.DecodeText([]byte(unquoteArrayElement(p)))
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	return out, nil
}

func quoteArrayElement(s string) string {
	if s == "" {
		return `""`
	}
	needsQuote := strings.ContainsAny(s, `{}",\ `)
	if !needsQuote {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

func unquoteArrayElement(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
		s = strings.ReplaceAll(s, `\"`, `"`)
		s = strings.ReplaceAll(s, `\\`, `\`)
	}
	return s
}

// splitArrayElements splits a comma-separated array body, honoring
// double-quoted elements that may themselves contain escaped commas.
func splitArrayElements(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	var cur strings.Builder
	inQuote := false
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			cur.WriteRune(r)
			escaped = true
		case r == '"':
			cur.WriteRune(r)
			inQuote = !inQuote
		case r == ',' && !inQuote:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	out = append(out, cur.String())
	return out
}

func appendInt32(buf []byte, v int32) []byte {
	return appendUint32(buf, uint32(v))
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}
