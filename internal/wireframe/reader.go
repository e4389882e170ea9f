package wireframe

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pgpipe/pgpipe/protocol"
)

// DefaultBufferSize is the default read-buffer capacity.
const DefaultBufferSize = 1 << 20 // 1MiB; backend rows rarely approach this

// ErrMessageSizeExceeded is returned when a frame declares a length larger
// than the reader's configured maximum.
var ErrMessageSizeExceeded = errors.New("wireframe: message size exceeds maximum")

// Reader consumes backend frames from a byte stream.
type Reader struct {
	logger         *slog.Logger
	buf            *bufio.Reader
	msg            []byte
	maxMessageSize int
	header         [4]byte
}

// NewReader constructs a Reader over r. bufferSize <= 0 uses DefaultBufferSize.
func NewReader(logger *slog.Logger, r io.Reader, bufferSize int) *Reader {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Reader{
		logger:         logger,
		buf:            bufio.NewReaderSize(r, bufferSize),
		maxMessageSize: bufferSize,
	}
}

func (r *Reader) reset(size int) {
	if cap(r.msg) >= size {
		r.msg = r.msg[:size]
		return
	}
	alloc := size
	if alloc < 4096 {
		alloc = 4096
	}
	r.msg = make([]byte, size, alloc)
}

// ReadFrame reads one tagged backend frame and returns a FieldReader over
// its payload.
func (r *Reader) ReadFrame() (protocol.BackendTag, *FieldReader, error) {
	tagByte, err := r.buf.ReadByte()
	if err != nil {
		return 0, nil, err
	}

	n, err := io.ReadFull(r.buf, r.header[:])
	if err != nil {
		return 0, nil, err
	}
	_ = n

	size := int(binary.BigEndian.Uint32(r.header[:])) - 4
	if size < 0 || size > r.maxMessageSize {
		return 0, nil, fmt.Errorf("%w: %d", ErrMessageSizeExceeded, size)
	}

	r.reset(size)
	if _, err := io.ReadFull(r.buf, r.msg); err != nil {
		return 0, nil, err
	}

	tag := protocol.BackendTag(tagByte)
	if r.logger != nil {
		r.logger.Debug("<- read frame", slog.String("type", tag.String()), slog.Int("size", size))
	}

	return tag, &FieldReader{buf: r.msg}, nil
}

// FieldReader walks the payload of a single frame field by field.
type FieldReader struct {
	buf []byte
}

// NewFieldReader wraps a raw payload for direct field-by-field consumption,
// used by tests that construct frames without a live Reader.
func NewFieldReader(payload []byte) *FieldReader {
	return &FieldReader{buf: payload}
}

func (f *FieldReader) Remaining() int { return len(f.buf) }

func (f *FieldReader) Byte() (byte, error) {
	if len(f.buf) < 1 {
		return 0, io.ErrUnexpectedEOF
	}
	v := f.buf[0]
	f.buf = f.buf[1:]
	return v, nil
}

func (f *FieldReader) Int16() (int16, error) {
	if len(f.buf) < 2 {
		return 0, io.ErrUnexpectedEOF
	}
	v := int16(binary.BigEndian.Uint16(f.buf[:2]))
	f.buf = f.buf[2:]
	return v, nil
}

func (f *FieldReader) Uint16() (uint16, error) {
	v, err := f.Int16()
	return uint16(v), err
}

func (f *FieldReader) Int32() (int32, error) {
	if len(f.buf) < 4 {
		return 0, io.ErrUnexpectedEOF
	}
	v := int32(binary.BigEndian.Uint32(f.buf[:4]))
	f.buf = f.buf[4:]
	return v, nil
}

func (f *FieldReader) Uint32() (uint32, error) {
	v, err := f.Int32()
	return uint32(v), err
}

// CString reads a NUL-terminated string.
func (f *FieldReader) CString() (string, error) {
	pos := bytes.IndexByte(f.buf, 0)
	if pos == -1 {
		return "", fmt.Errorf("wireframe: missing NUL terminator")
	}
	s := string(f.buf[:pos])
	f.buf = f.buf[pos+1:]
	return s, nil
}

// Bytes consumes exactly n bytes. n == -1 yields a nil slice and consumes
// nothing, matching the wire convention for NULL field lengths.
func (f *FieldReader) Bytes(n int) ([]byte, error) {
	if n == -1 {
		return nil, nil
	}
	if len(f.buf) < n {
		return nil, io.ErrUnexpectedEOF
	}
	v := f.buf[:n]
	f.buf = f.buf[n:]
	return v, nil
}
