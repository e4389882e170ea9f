package mocktransport

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pgpipe/pgpipe/protocol"
)

func TestScriptedRepliesReplayInOrder(t *testing.T) {
	script := NewScript().
		CommandComplete("SELECT 1").
		ReadyForQuery(protocol.TxIdle).
		Bytes()

	tr := New(t, script)

	tag, _, err := tr.Recv()
	require.NoError(t, err)
	require.Equal(t, protocol.CommandComplete, tag)

	tag, _, err = tr.Recv()
	require.NoError(t, err)
	require.Equal(t, protocol.ReadyForQuery, tag)
}

func TestSendRecordsFramesInOrder(t *testing.T) {
	tr := New(t, NewScript().ReadyForQuery(protocol.TxIdle).Bytes())

	require.NoError(t, tr.Send([]byte{byte(protocol.Query), 0, 0, 0, 5, 'x'}))
	require.NoError(t, tr.Send([]byte{byte(protocol.Sync), 0, 0, 0, 4}))

	require.Equal(t, []protocol.FrontendTag{protocol.Query, protocol.Sync}, tr.SentTags())
	require.Len(t, tr.Sent(), 2)
}

func TestRowDescriptionAndDataRowRoundTrip(t *testing.T) {
	script := NewScript().
		RowDescription(FieldDesc{Name: "id", OID: 23, Size: 4, Format: protocol.BinaryFormat}).
		DataRow([]byte{0, 0, 0, 7}).
		CommandComplete("SELECT 1").
		ReadyForQuery(protocol.TxIdle).
		Bytes()
	tr := New(t, script)

	tag, fr, err := tr.Recv()
	require.NoError(t, err)
	require.Equal(t, protocol.RowDescription, tag)
	desc, err := fr.RowDescription()
	require.NoError(t, err)
	require.Len(t, desc, 1)
	require.Equal(t, "id", desc[0].Name)

	tag, fr, err = tr.Recv()
	require.NoError(t, err)
	require.Equal(t, protocol.DataRow, tag)
	row, err := fr.DataRow()
	require.NoError(t, err)
	require.Len(t, row.Offsets, 1)
}

func TestErrorResponseFieldsDecode(t *testing.T) {
	script := NewScript().
		ErrorResponse(byte('C'), "23505", byte('M'), "duplicate key value").
		ReadyForQuery(protocol.TxIdle).
		Bytes()
	tr := New(t, script)

	tag, fr, err := tr.Recv()
	require.NoError(t, err)
	require.Equal(t, protocol.ErrorResponse, tag)
	fields, err := fr.NoticeOrError()
	require.NoError(t, err)
	require.Equal(t, "23505", fields[0].Value)
}
