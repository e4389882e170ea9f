package wireframe

import "testing"

func TestDataRowNullPropagation(t *testing.T) {
	r := NewFieldReader(nil)
	_ = r

	// count=2, field0 = NULL (-1), field1 = 2 bytes "ok"
	payload := []byte{0, 2, 0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 2, 'o', 'k'}
	fr := NewFieldReader(payload)

	row, err := fr.DataRow()
	if err != nil {
		t.Fatal(err)
	}

	if _, isNull := row.Nulls[0]; !isNull {
		t.Fatalf("expected field 0 to be NULL")
	}
	start, end := row.Offsets[0][0], row.Offsets[0][1]
	if start != end {
		t.Fatalf("expected empty payload range for NULL field, got [%d,%d)", start, end)
	}

	if _, isNull := row.Nulls[1]; isNull {
		t.Fatalf("expected field 1 to be non-NULL")
	}
	start, end = row.Offsets[1][0], row.Offsets[1][1]
	if got := string(row.Payload[start:end]); got != "ok" {
		t.Fatalf("unexpected field 1 payload %q", got)
	}
}

func TestRowDescriptionParse(t *testing.T) {
	payload := []byte{0, 1}
	payload = append(payload, []byte("id")...)
	payload = append(payload, 0)             // name C-string
	payload = append(payload, 0, 0, 0, 0)    // table oid
	payload = append(payload, 0, 0)          // attno
	payload = append(payload, 0, 0, 0, 23)   // type oid = 23 (int4)
	payload = append(payload, 0, 4)          // type size
	payload = append(payload, 0xFF, 0xFF, 0xFF, 0xFF) // type mod = -1
	payload = append(payload, 0, 1)          // format code = binary

	fr := NewFieldReader(payload)
	fields, err := fr.RowDescription()
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Name != "id" || fields[0].DataTypeOID != 23 || fields[0].DataTypeSize != 4 {
		t.Fatalf("unexpected field: %+v", fields[0])
	}
}
