package pgresult

import (
	"fmt"

	"github.com/pgpipe/pgpipe/internal/codec"
	"github.com/pgpipe/pgpipe/internal/dberrors"
	"github.com/pgpipe/pgpipe/internal/wireframe"
)

// Row is a single result row: a description vector shared with its Set, and
// the raw field payload the wire reader collected for this row.
type Row struct {
	desc []wireframe.FieldDescription
	raw  *wireframe.RawRow
	reg  *codec.Registry
}

// Width returns the number of fields in the row.
func (r *Row) Width() int { return len(r.desc) }

// Field returns field i as a Field view, both for forward (i >= 0) and
// reverse (negative i) indexing.
func (r *Row) Field(i int) (*Field, error) {
	if i < 0 {
		i += len(r.desc)
	}
	if i < 0 || i >= len(r.desc) {
		return nil, fmt.Errorf("pgresult: field index out of range (row has %d fields)", len(r.desc))
	}
	return &Field{desc: r.desc[i], raw: r.raw, index: i, reg: r.reg}, nil
}

// Fields returns every field in column order.
func (r *Row) Fields() []*Field {
	out := make([]*Field, len(r.desc))
	for i := range r.desc {
		out[i] = &Field{desc: r.desc[i], raw: r.raw, index: i, reg: r.reg}
	}
	return out
}

// Field is one column's value within a Row.
type Field struct {
	desc  wireframe.FieldDescription
	raw   *wireframe.RawRow
	index int
	reg   *codec.Registry
}

// Description returns the shared column description this field was decoded
// against.
func (f *Field) Description() wireframe.FieldDescription { return f.desc }

// IsNull reports whether the field's wire value was SQL NULL.
func (f *Field) IsNull() bool {
	_, isNull := f.raw.Nulls[f.index]
	return isNull
}

// Bytes returns the field's raw wire payload, or nil if the field is NULL.
func (f *Field) Bytes() []byte {
	if f.IsNull() {
		return nil
	}
	off := f.raw.Offsets[f.index]
	return f.raw.Payload[off[0]:off[1]]
}

// Decode converts the field through the value codec against its declared
// OID and format. A NULL field decodes to (nil, nil); a non-optional caller
// should check IsNull first and raise dberrors.ValueIsNull itself when it
// requires a value.
func (f *Field) Decode() (any, error) {
	binary := f.desc.Format == 1
	return f.reg.Decode(f.desc.DataTypeOID, binary, f.Bytes())
}

// MustDecode is Decode but fails with dberrors.ValueIsNull instead of
// returning (nil, nil) on a NULL field, for callers binding into a
// non-optional target.
func (f *Field) MustDecode() (any, error) {
	if f.IsNull() {
		return nil, &dberrors.ValueIsNull{Field: f.desc.Name}
	}
	return f.Decode()
}

// RowToTuple decodes the first len(dests) fields of r into dests in column
// order. len(dests) must not exceed the row's width; a narrower row fails
// with dberrors.ArityMismatch.
func (r *Row) RowToTuple(dests ...*any) error {
	if len(dests) > r.Width() {
		return &dberrors.ArityMismatch{RowWidth: r.Width(), TupleSize: len(dests)}
	}
	for i, dest := range dests {
		f, err := r.Field(i)
		if err != nil {
			return err
		}
		v, err := f.Decode()
		if err != nil {
			return err
		}
		*dest = v
	}
	return nil
}
