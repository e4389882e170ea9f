// Package wireframe implements bit-exact framing of the PostgreSQL v3 wire
// protocol: tag(1) + length(int32 big-endian, inclusive of itself) + payload.
//
// Builder and Reader play the client side of that framing: where a
// server-side buffer package describes frames going out to a client, these
// describe frames going out to a server and the replies coming back.
package wireframe

import (
	"bytes"
	"encoding/binary"
	"io"
	"log/slog"

	"github.com/pgpipe/pgpipe/protocol"
)

// Builder accumulates a single frontend frame. NewFrame or NewUntaggedFrame
// starts one builder per frame; the primitives below append to the
// in-progress frame; FinishTagged or FinishUntagged patches the length field
// and returns the finished bytes.
type Builder struct {
	buf    bytes.Buffer
	putbuf [8]byte
	err    error
}

// NewFrame allocates a builder and begins a frame with the given tag.
func NewFrame(tag protocol.FrontendTag) *Builder {
	b := &Builder{}
	b.buf.WriteByte(byte(tag))
	b.buf.Write([]byte{0, 0, 0, 0}) // placeholder length, patched in FinishTagged
	return b
}

// NewUntaggedFrame begins a frame with no leading tag byte, used only for
// the startup/SSLRequest/CancelRequest messages the transport layer emits.
func NewUntaggedFrame() *Builder {
	b := &Builder{}
	b.buf.Write([]byte{0, 0, 0, 0})
	return b
}

func (b *Builder) Byte(v byte) *Builder {
	if b.err != nil {
		return b
	}
	b.err = b.buf.WriteByte(v)
	return b
}

func (b *Builder) Int16(v int16) *Builder {
	if b.err != nil {
		return b
	}
	binary.BigEndian.PutUint16(b.putbuf[:2], uint16(v))
	_, b.err = b.buf.Write(b.putbuf[:2])
	return b
}

func (b *Builder) Int32(v int32) *Builder {
	if b.err != nil {
		return b
	}
	binary.BigEndian.PutUint32(b.putbuf[:4], uint32(v))
	_, b.err = b.buf.Write(b.putbuf[:4])
	return b
}

// CString writes s followed by a NUL terminator.
func (b *Builder) CString(s string) *Builder {
	if b.err != nil {
		return b
	}
	_, b.err = b.buf.WriteString(s)
	if b.err != nil {
		return b
	}
	b.err = b.buf.WriteByte(0)
	return b
}

// RawString writes s verbatim, with no terminator.
func (b *Builder) RawString(s string) *Builder {
	if b.err != nil {
		return b
	}
	_, b.err = b.buf.WriteString(s)
	return b
}

// Bytes appends raw bytes verbatim.
func (b *Builder) Bytes(p []byte) *Builder {
	if b.err != nil {
		return b
	}
	_, b.err = b.buf.Write(p)
	return b
}

// Embed appends another already-finished frame verbatim.
func (b *Builder) Embed(frame []byte) *Builder {
	return b.Bytes(frame)
}

// Err returns the first error encountered while building the frame.
func (b *Builder) Err() error {
	return b.err
}

// FinishTagged finishes a frame started with NewFrame: length covers bytes
// [1:], i.e. everything after the tag byte, itself included.
func (b *Builder) FinishTagged() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	raw := b.buf.Bytes()
	length := uint32(len(raw) - 1)
	binary.BigEndian.PutUint32(raw[1:5], length)
	return raw, nil
}

// FinishUntagged finishes a frame started with NewUntaggedFrame: length
// covers the whole frame, itself included.
func (b *Builder) FinishUntagged() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	raw := b.buf.Bytes()
	length := uint32(len(raw))
	binary.BigEndian.PutUint32(raw[0:4], length)
	return raw, nil
}

// Flush writes a finished frame to w and logs it at debug level.
func Flush(logger *slog.Logger, w io.Writer, tag protocol.FrontendTag, frame []byte) error {
	_, err := w.Write(frame)
	if logger != nil {
		logger.Debug("-> writing frame", slog.String("type", tag.String()), slog.Int("size", len(frame)))
	}
	return err
}
