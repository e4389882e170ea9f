package wireframe

import (
	"github.com/lib/pq/oid"
	"github.com/pgpipe/pgpipe/protocol"
)

// FieldDescription describes one column of a RowDescription.
type FieldDescription struct {
	Name         string
	TableOID     oid.Oid
	TableAttNo   int16
	DataTypeOID  oid.Oid
	DataTypeSize int16 // negative => variable-length
	TypeModifier int32
	Format       protocol.FormatCode
}

// RowDescription reads a T-message body: count(int16), then per field name,
// table_oid, attno, type_oid, type_size, type_mod, format_code.
func (f *FieldReader) RowDescription() ([]FieldDescription, error) {
	count, err := f.Int16()
	if err != nil {
		return nil, err
	}

	fields := make([]FieldDescription, count)
	for i := range fields {
		name, err := f.CString()
		if err != nil {
			return nil, err
		}
		tableOID, err := f.Uint32()
		if err != nil {
			return nil, err
		}
		attNo, err := f.Int16()
		if err != nil {
			return nil, err
		}
		typeOID, err := f.Uint32()
		if err != nil {
			return nil, err
		}
		typeSize, err := f.Int16()
		if err != nil {
			return nil, err
		}
		typeMod, err := f.Int32()
		if err != nil {
			return nil, err
		}
		formatCode, err := f.Int16()
		if err != nil {
			return nil, err
		}

		fields[i] = FieldDescription{
			Name:         name,
			TableOID:     oid.Oid(tableOID),
			TableAttNo:   attNo,
			DataTypeOID:  oid.Oid(typeOID),
			DataTypeSize: typeSize,
			TypeModifier: typeMod,
			Format:       protocol.FormatCode(formatCode),
		}
	}

	return fields, nil
}

// RawRow is a parsed DataRow: a contiguous payload and the [start,end) byte
// range of every field within it. NULL fields are recorded in Nulls and
// given an empty range.
type RawRow struct {
	Payload []byte
	Offsets [][2]int
	Nulls   map[int]struct{}
}

// DataRow reads a D-message body: count(int16), then per field a signed
// int32 length (-1 == NULL) followed by that many bytes. Offsets are
// recorded into a shared payload buffer so fields are obtainable as
// subranges without copying.
func (f *FieldReader) DataRow() (*RawRow, error) {
	count, err := f.Int16()
	if err != nil {
		return nil, err
	}

	row := &RawRow{
		Offsets: make([][2]int, count),
		Nulls:   map[int]struct{}{},
	}

	payload := make([]byte, 0, len(f.buf))
	for i := 0; i < int(count); i++ {
		length, err := f.Int32()
		if err != nil {
			return nil, err
		}

		if length == -1 {
			row.Nulls[i] = struct{}{}
			start := len(payload)
			row.Offsets[i] = [2]int{start, start}
			continue
		}

		chunk, err := f.Bytes(int(length))
		if err != nil {
			return nil, err
		}

		start := len(payload)
		payload = append(payload, chunk...)
		row.Offsets[i] = [2]int{start, len(payload)}
	}

	row.Payload = payload
	return row, nil
}

// NoticeField is one {code, value} pair of a NoticeResponse/ErrorResponse.
type NoticeField struct {
	Code  byte
	Value string
}

// NoticeOrError reads a sequence of {field-code(byte), value(C-string)}
// pairs terminated by a zero byte.
func (f *FieldReader) NoticeOrError() ([]NoticeField, error) {
	var fields []NoticeField
	for {
		code, err := f.Byte()
		if err != nil {
			return nil, err
		}
		if code == 0 {
			return fields, nil
		}

		value, err := f.CString()
		if err != nil {
			return nil, err
		}

		fields = append(fields, NoticeField{Code: code, Value: value})
	}
}
