// Package mocktransport is a scripted scheduler.Transport for tests: the
// test author writes the exact sequence of backend frames a real server
// would send, and the package records every frame the scheduler sent so
// the test can assert on it, the same way a real Reader/Writer pair over
// an in-memory buffer lets a handler be exercised without a live socket.
package mocktransport

import (
	"bytes"
	"testing"

	"github.com/neilotoole/slogt"

	"github.com/pgpipe/pgpipe/internal/wireframe"
	"github.com/pgpipe/pgpipe/protocol"
)

// Transport implements scheduler.Transport against a pre-scripted sequence
// of backend frames, recording every frontend frame the code under test
// sends.
type Transport struct {
	sent   [][]byte
	reader *wireframe.Reader
}

// New constructs a Transport that will reply with the frames in script (as
// built by Script) and records every frame sent to it.
func New(t *testing.T, script []byte) *Transport {
	return &Transport{reader: wireframe.NewReader(slogt.New(t), bytes.NewReader(script), 0)}
}

// Send records frame.
func (m *Transport) Send(frame []byte) error {
	m.sent = append(m.sent, frame)
	return nil
}

// Recv reads the next scripted backend frame.
func (m *Transport) Recv() (protocol.BackendTag, *wireframe.FieldReader, error) {
	return m.reader.ReadFrame()
}

// Sent returns every frame recorded by Send, in call order.
func (m *Transport) Sent() [][]byte { return m.sent }

// SentTags returns the frontend tag byte of every recorded frame, for
// asserting the exact frame-type sequence a node dispatched.
func (m *Transport) SentTags() []protocol.FrontendTag {
	out := make([]protocol.FrontendTag, len(m.sent))
	for i, f := range m.sent {
		out[i] = protocol.FrontendTag(f[0])
	}
	return out
}
