// Package pgtx implements a command tree: a composable, fluent description
// of begin/savepoint/execute/prepare/execute-prepared nodes that the
// scheduler (internal/scheduler) later walks and dispatches against a
// connection.
//
// Each node conceptually has a parent, but Go has no natural place to hang
// a self-referential pointer onto a value stored in a slice-backed arena
// without pinning it behind an interface. Nodes here are referenced by
// NodeID instead — an index into the Tx's arena — the same indirection a
// long-lived cache handle uses to stay stable while the underlying maps and
// slices grow around it.
package pgtx

import (
	"github.com/lib/pq/oid"

	"github.com/pgpipe/pgpipe/pgresult"
)

// NodeID indexes a node within a Tx's arena. Node 0 is always the tree's
// implicit root; -1 marks the root's absent parent.
type NodeID int

const noNode NodeID = -1

// Kind identifies which wire behavior a node drives.
type Kind int

const (
	KindRoot Kind = iota
	KindBegin
	KindEndBegin
	KindSavepoint
	KindEndSavepoint
	KindExecuteSimple
	KindPrepare
	KindExecutePrepared
)

// Isolation is the BEGIN isolation level.
type Isolation int

const (
	IsolationDefault Isolation = iota
	IsolationReadCommitted
	IsolationRepeatableRead
	IsolationSerializable
)

// Mode carries the non-default BEGIN fields; only fields that differ from
// the server default are serialized into the BEGIN text.
type Mode struct {
	Isolation  Isolation
	ReadOnly   bool
	Deferrable bool
}

// ResultCallback receives a completed node's result set.
type ResultCallback func(*NodeView) error

// ErrorCallback receives a completed node's decoded failure.
type ErrorCallback func(error) error

// Node is one element of the command tree. Only the fields relevant to its
// Kind are populated; see the per-kind constructors in builder.go.
type Node struct {
	ID     NodeID
	Parent NodeID
	Kind   Kind

	// Begin / Savepoint
	Mode         Mode
	SavepointName string

	// Execute-Simple
	SQL string

	// Prepare
	PrepareName string
	ParamOIDs   []oid.Oid

	// Execute-Prepared
	StatementName string
	Params        []any

	OnSuccess ResultCallback
	OnError   ErrorCallback
	Then      func() error
	ErrorThen func() error

	Children []NodeID

	// Scheduler-owned runtime state, set as the tree is walked.
	Cumulative    bool
	ForceRollback bool
}

// Tx is a transaction handle: an arena of nodes plus the id of the node the
// fluent builder is currently appending children under.
type Tx struct {
	arena   []*Node
	current NodeID
}

// New constructs an empty Tx with an implicit root node that every
// top-level call is attached under.
func New() *Tx {
	tx := &Tx{}
	root := &Node{ID: 0, Parent: noNode, Kind: KindRoot, Cumulative: true}
	tx.arena = append(tx.arena, root)
	tx.current = 0
	return tx
}

// Root returns the id of the tree's implicit root node.
func (tx *Tx) Root() NodeID { return 0 }

// Node returns the node stored at id.
func (tx *Tx) Node(id NodeID) *Node { return tx.arena[id] }

// Nodes returns every node in the arena, in construction order (parents
// before children).
func (tx *Tx) Nodes() []*Node { return tx.arena }

func (tx *Tx) alloc(n *Node) NodeID {
	n.ID = NodeID(len(tx.arena))
	n.Cumulative = true
	tx.arena = append(tx.arena, n)
	tx.arena[n.Parent].Children = append(tx.arena[n.Parent].Children, n.ID)
	return n.ID
}

// NodeView is the read-only result handle a success callback is given: the
// node's collected result set alongside a reference back to its id, so a
// callback can inspect what it just ran without being handed the whole Tx.
type NodeView struct {
	NodeID NodeID
	Result *pgresult.Set
}
