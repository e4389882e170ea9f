package pgtx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBeginAllocatesPairedEndNode(t *testing.T) {
	tx := New()
	begin := tx.Handle().Begin(Mode{}, nil, nil)

	node := tx.Node(begin.NodeID())
	require.Equal(t, KindBegin, node.Kind)
	require.Len(t, node.Children, 1)

	end := tx.Node(node.Children[0])
	require.Equal(t, KindEndBegin, end.Kind)
}

func TestSavepointNestsUnderBegin(t *testing.T) {
	tx := New()
	begin := tx.Handle().Begin(Mode{}, nil, nil)
	sp := begin.Savepoint("sp1", nil, nil)

	beginNode := tx.Node(begin.NodeID())
	require.Len(t, beginNode.Children, 2) // end-begin + savepoint

	spNode := tx.Node(sp.NodeID())
	require.Equal(t, "sp1", spNode.SavepointName)
	require.Len(t, spNode.Children, 1)
	require.Equal(t, KindEndSavepoint, tx.Node(spNode.Children[0]).Kind)
}

func TestFluentChainBuildsDepthFirstOrder(t *testing.T) {
	tx := New()
	root := tx.Handle()
	begin := root.Begin(Mode{}, nil, nil)
	begin.Execute("insert into t values (1)", nil, nil)
	begin.Execute("insert into t values (2)", nil, nil)

	beginNode := tx.Node(begin.NodeID())
	// end-begin was allocated first, then the two Executes.
	require.Len(t, beginNode.Children, 3)
	require.Equal(t, KindEndBegin, tx.Node(beginNode.Children[0]).Kind)
	require.Equal(t, "insert into t values (1)", tx.Node(beginNode.Children[1]).SQL)
	require.Equal(t, "insert into t values (2)", tx.Node(beginNode.Children[2]).SQL)
}

func TestThenAndErrorAttachToNode(t *testing.T) {
	tx := New()
	var ranThen, ranError bool
	h := tx.Handle().Execute("select 1", nil, nil).
		Then(func() error { ranThen = true; return nil }).
		Error(func() error { ranError = true; return nil })

	node := tx.Node(h.NodeID())
	require.NoError(t, node.Then())
	require.NoError(t, node.ErrorThen())
	require.True(t, ranThen)
	require.True(t, ranError)
}
