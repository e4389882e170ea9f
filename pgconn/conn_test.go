package pgconn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pgpipe/pgpipe/internal/mocktransport"
	"github.com/pgpipe/pgpipe/protocol"
	"github.com/pgpipe/pgpipe/pgtx"
)

func TestRunSimpleExecuteCollectsRows(t *testing.T) {
	script := mocktransport.NewScript().
		RowDescription(mocktransport.FieldDesc{Name: "n", OID: 23, Size: 4, Format: protocol.BinaryFormat}).
		DataRow([]byte{0, 0, 0, 42}).
		CommandComplete("SELECT 1").
		ReadyForQuery(protocol.TxIdle).
		Bytes()
	tr := mocktransport.New(t, script)
	conn := New(tr, nil)

	tx := conn.NewTx()
	var succeeded bool
	tx.Handle().Execute("select 42", func(v *pgtx.NodeView) error {
		succeeded = true
		require.Equal(t, 1, v.Result.Size())
		return nil
	}, nil)

	set, err := conn.Run(context.Background(), tx)
	require.NoError(t, err)
	require.True(t, succeeded)
	require.NotNil(t, set)
	require.Equal(t, 1, set.Size())
}

func TestRunBeginCommitsOnSuccess(t *testing.T) {
	script := mocktransport.NewScript().
		CommandComplete("BEGIN").
		ReadyForQuery(protocol.TxInBlock).
		CommandComplete("INSERT 0 1").
		ReadyForQuery(protocol.TxInBlock).
		CommandComplete("COMMIT").
		ReadyForQuery(protocol.TxIdle).
		Bytes()
	tr := mocktransport.New(t, script)
	conn := New(tr, nil)

	tx := conn.NewTx()
	begin := tx.Handle().Begin(pgtx.Mode{}, nil, nil)
	begin.Execute("insert into t values (1)", nil, nil)

	_, err := conn.Run(context.Background(), tx)
	require.NoError(t, err)

	tags := tr.SentTags()
	require.Equal(t, protocol.Query, tags[0]) // BEGIN
	require.Equal(t, protocol.Query, tags[1]) // INSERT
	require.Equal(t, protocol.Query, tags[2]) // COMMIT
}

func TestRunBeginRollsBackOnChildFailure(t *testing.T) {
	script := mocktransport.NewScript().
		CommandComplete("BEGIN").
		ReadyForQuery(protocol.TxInBlock).
		ErrorResponse(byte('C'), "23505", byte('M'), "duplicate key").
		ReadyForQuery(protocol.TxFailedBlock).
		CommandComplete("ROLLBACK").
		ReadyForQuery(protocol.TxIdle).
		Bytes()
	tr := mocktransport.New(t, script)
	conn := New(tr, nil)

	tx := conn.NewTx()
	var gotErr error
	begin := tx.Handle().Begin(pgtx.Mode{}, nil, func(e error) error {
		gotErr = e
		return nil
	})
	begin.Execute("insert into t values (1)", nil, func(e error) error { return nil })

	_, err := conn.Run(context.Background(), tx)
	require.Error(t, err)
	require.Error(t, gotErr)
}

func TestRunSavepointReleasedOnSuccessNestedInBegin(t *testing.T) {
	script := mocktransport.NewScript().
		CommandComplete("BEGIN").
		ReadyForQuery(protocol.TxInBlock).
		CommandComplete("SAVEPOINT").
		ReadyForQuery(protocol.TxInBlock).
		CommandComplete("UPDATE 1").
		ReadyForQuery(protocol.TxInBlock).
		CommandComplete("RELEASE").
		ReadyForQuery(protocol.TxInBlock).
		CommandComplete("COMMIT").
		ReadyForQuery(protocol.TxIdle).
		Bytes()
	tr := mocktransport.New(t, script)
	conn := New(tr, nil)

	tx := conn.NewTx()
	begin := tx.Handle().Begin(pgtx.Mode{}, nil, nil)
	sp := begin.Savepoint("sp1", nil, nil)
	sp.Execute("update t set x = 1", nil, nil)

	_, err := conn.Run(context.Background(), tx)
	require.NoError(t, err)
}
