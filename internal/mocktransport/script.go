package mocktransport

import (
	"bytes"
	"encoding/binary"

	"github.com/lib/pq/oid"

	"github.com/pgpipe/pgpipe/protocol"
)

// Script builds a sequence of backend frames byte-for-byte, for feeding to
// New as a transport's canned replies. Each method appends one complete
// frame and returns the Script for chaining.
type Script struct {
	buf bytes.Buffer
}

// NewScript starts an empty backend frame sequence.
func NewScript() *Script { return &Script{} }

// Bytes returns the accumulated frame sequence.
func (s *Script) Bytes() []byte { return s.buf.Bytes() }

func (s *Script) frame(tag protocol.BackendTag, body []byte) *Script {
	s.buf.WriteByte(byte(tag))
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(body)+4))
	s.buf.Write(length[:])
	s.buf.Write(body)
	return s
}

// ReadyForQuery appends a 'Z' frame carrying status.
func (s *Script) ReadyForQuery(status protocol.TransactionStatus) *Script {
	return s.frame(protocol.ReadyForQuery, []byte{byte(status)})
}

// CommandComplete appends a 'C' frame with the given command tag text.
func (s *Script) CommandComplete(tag string) *Script {
	return s.frame(protocol.CommandComplete, cstring(tag))
}

// EmptyQueryResponse appends an 'I' frame.
func (s *Script) EmptyQueryResponse() *Script {
	return s.frame(protocol.EmptyQueryResponse, nil)
}

// ParseComplete appends a '1' frame.
func (s *Script) ParseComplete() *Script {
	return s.frame(protocol.ParseComplete, nil)
}

// BindComplete appends a '2' frame.
func (s *Script) BindComplete() *Script {
	return s.frame(protocol.BindComplete, nil)
}

// NoData appends an 'n' frame.
func (s *Script) NoData() *Script {
	return s.frame(protocol.NoData, nil)
}

// PortalSuspended appends an 's' frame.
func (s *Script) PortalSuspended() *Script {
	return s.frame(protocol.PortalSuspended, nil)
}

// ParameterDescription appends a 't' frame naming the given param OIDs.
func (s *Script) ParameterDescription(oids ...oid.Oid) *Script {
	var body bytes.Buffer
	var n [2]byte
	binary.BigEndian.PutUint16(n[:], uint16(len(oids)))
	body.Write(n[:])
	for _, o := range oids {
		var w [4]byte
		binary.BigEndian.PutUint32(w[:], uint32(o))
		body.Write(w[:])
	}
	return s.frame(protocol.ParameterDescription, body.Bytes())
}

// FieldDesc is one RowDescription column, used by the RowDescription script
// method.
type FieldDesc struct {
	Name   string
	OID    oid.Oid
	Size   int16
	Format protocol.FormatCode
}

// RowDescription appends a 'T' frame describing fields.
func (s *Script) RowDescription(fields ...FieldDesc) *Script {
	var body bytes.Buffer
	var n [2]byte
	binary.BigEndian.PutUint16(n[:], uint16(len(fields)))
	body.Write(n[:])
	for _, f := range fields {
		body.Write(cstring(f.Name))
		writeUint32(&body, 0)        // table OID, unused
		writeInt16(&body, 0)         // table attno, unused
		writeUint32(&body, uint32(f.OID))
		writeInt16(&body, f.Size)
		writeInt32(&body, 0) // type modifier, unused
		writeInt16(&body, int16(f.Format))
	}
	return s.frame(protocol.RowDescription, body.Bytes())
}

// DataRow appends a 'D' frame. A nil element encodes as SQL NULL.
func (s *Script) DataRow(fields ...[]byte) *Script {
	var body bytes.Buffer
	var n [2]byte
	binary.BigEndian.PutUint16(n[:], uint16(len(fields)))
	body.Write(n[:])
	for _, f := range fields {
		if f == nil {
			writeInt32(&body, -1)
			continue
		}
		writeInt32(&body, int32(len(f)))
		body.Write(f)
	}
	return s.frame(protocol.DataRow, body.Bytes())
}

// ErrorResponse appends an 'E' frame from {code,value} pairs, e.g.
// ErrorResponse('S', "ERROR", 'C', "23505", 'M', "duplicate key").
func (s *Script) ErrorResponse(pairs ...interface{}) *Script {
	return s.frame(protocol.ErrorResponse, noticeBody(pairs))
}

// NoticeResponse appends an 'N' frame, structurally identical to
// ErrorResponse but routed as a side channel.
func (s *Script) NoticeResponse(pairs ...interface{}) *Script {
	return s.frame(protocol.NoticeResponse, noticeBody(pairs))
}

func noticeBody(pairs []interface{}) []byte {
	var body bytes.Buffer
	for i := 0; i+1 < len(pairs); i += 2 {
		code, _ := pairs[i].(byte)
		value, _ := pairs[i+1].(string)
		body.WriteByte(code)
		body.Write(cstring(value))
	}
	body.WriteByte(0)
	return body.Bytes()
}

func cstring(s string) []byte {
	b := make([]byte, 0, len(s)+1)
	b = append(b, s...)
	return append(b, 0)
}

func writeInt16(b *bytes.Buffer, v int16) {
	var w [2]byte
	binary.BigEndian.PutUint16(w[:], uint16(v))
	b.Write(w[:])
}

func writeInt32(b *bytes.Buffer, v int32) {
	var w [4]byte
	binary.BigEndian.PutUint32(w[:], uint32(v))
	b.Write(w[:])
}

func writeUint32(b *bytes.Buffer, v uint32) {
	var w [4]byte
	binary.BigEndian.PutUint32(w[:], v)
	b.Write(w[:])
}
