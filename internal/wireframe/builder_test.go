package wireframe

import (
	"bytes"
	"testing"

	"github.com/pgpipe/pgpipe/protocol"
)

func TestBuilderFinishTaggedPatchesLength(t *testing.T) {
	frame, err := NewFrame(protocol.Query).CString("select 1").FinishTagged()
	if err != nil {
		t.Fatal(err)
	}

	if frame[0] != byte(protocol.Query) {
		t.Fatalf("unexpected tag byte %q", frame[0])
	}

	expected := len(frame) - 1
	got := int(frame[1])<<24 | int(frame[2])<<16 | int(frame[3])<<8 | int(frame[4])
	if got != expected {
		t.Fatalf("unexpected length field %d, expected %d", got, expected)
	}
}

func TestBuilderRoundTripWithReader(t *testing.T) {
	frame, err := NewFrame(protocol.Parse).
		CString("stmt1").
		CString("select $1::int4").
		Int16(1).
		Int32(23).
		FinishTagged()
	if err != nil {
		t.Fatal(err)
	}

	r := NewReader(nil, bytes.NewReader(frame), 0)
	// ReadFrame expects the tag byte to be part of the stream it consumes,
	// which is exactly what FinishTagged produced.
	tag, fr, err := r.ReadFrame()
	if err != nil {
		t.Fatal(err)
	}
	if tag != protocol.BackendTag(protocol.Parse) {
		t.Fatalf("unexpected tag %v", tag)
	}

	name, err := fr.CString()
	if err != nil || name != "stmt1" {
		t.Fatalf("unexpected name %q err %v", name, err)
	}

	sql, err := fr.CString()
	if err != nil || sql != "select $1::int4" {
		t.Fatalf("unexpected sql %q err %v", sql, err)
	}

	n, err := fr.Int16()
	if err != nil || n != 1 {
		t.Fatalf("unexpected param count %d err %v", n, err)
	}

	oidv, err := fr.Int32()
	if err != nil || oidv != 23 {
		t.Fatalf("unexpected oid %d err %v", oidv, err)
	}
}

func TestBuilderEmbed(t *testing.T) {
	inner, _ := NewFrame(protocol.Sync).FinishTagged()
	outer, err := NewFrame(protocol.Bind).Embed(inner).FinishTagged()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(outer, inner) {
		t.Fatalf("expected outer frame to contain embedded frame verbatim")
	}
}
