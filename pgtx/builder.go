package pgtx

import "github.com/lib/pq/oid"

// Handle is a fluent, per-node view over a Tx: every construction method
// appends a child under the wrapped node and returns a Handle over the new
// child, so calls chain in tree order exactly as the source text reads.
type Handle struct {
	tx   *Tx
	node NodeID
}

// Handle wraps tx's current append point for the fluent API's root call
// (tx.Handle().Begin(...), tx.Handle().Execute(...), ...).
func (tx *Tx) Handle() *Handle { return &Handle{tx: tx, node: tx.current} }

// NodeID returns the id of the node this handle wraps.
func (h *Handle) NodeID() NodeID { return h.node }

func (h *Handle) child(n *Node) *Handle {
	n.Parent = h.node
	id := h.tx.alloc(n)
	return &Handle{tx: h.tx, node: id}
}

// Begin opens a new nested transaction under h. Non-default mode fields
// serialize into the BEGIN text (internal/scheduler/sql.go).
func (h *Handle) Begin(mode Mode, onSuccess ResultCallback, onError ErrorCallback) *Handle {
	begin := h.child(&Node{Kind: KindBegin, Mode: mode, OnSuccess: onSuccess, OnError: onError})
	// The paired end-node is allocated now, as child 0. The scheduler skips
	// it when running the body and issues COMMIT or ROLLBACK itself once
	// the begin block's other children have run.
	begin.child(&Node{Kind: KindEndBegin})
	return begin
}

// Savepoint opens a nested savepoint under h. Any failure anywhere inside
// it makes the scheduler roll back to the savepoint instead of releasing
// it.
func (h *Handle) Savepoint(name string, onSuccess ResultCallback, onError ErrorCallback) *Handle {
	sp := h.child(&Node{Kind: KindSavepoint, SavepointName: name, OnSuccess: onSuccess, OnError: onError})
	sp.child(&Node{Kind: KindEndSavepoint, SavepointName: name})
	return sp
}

// Execute runs sql via the Simple-Query path with no parameters. Any rows
// it returns are collected into the result set handed to onSuccess.
func (h *Handle) Execute(sql string, onSuccess ResultCallback, onError ErrorCallback) *Handle {
	return h.child(&Node{Kind: KindExecuteSimple, SQL: sql, OnSuccess: onSuccess, OnError: onError})
}

// Prepare parses sql under name via the Extended Query path (Parse +
// Describe-statement + Sync). On success the definition — including the
// server-returned row description — is registered in the connection's
// prepared registry.
func (h *Handle) Prepare(name, sql string, paramOIDs []oid.Oid, onSuccess ResultCallback, onError ErrorCallback) *Handle {
	return h.child(&Node{
		Kind: KindPrepare, PrepareName: name, SQL: sql, ParamOIDs: paramOIDs,
		OnSuccess: onSuccess, OnError: onError,
	})
}

// ExecutePrepared runs Bind + Execute + Sync against the statement
// registered under name, binding params in declared order.
func (h *Handle) ExecutePrepared(name string, params []any, onSuccess ResultCallback, onError ErrorCallback) *Handle {
	return h.child(&Node{
		Kind: KindExecutePrepared, StatementName: name, Params: params,
		OnSuccess: onSuccess, OnError: onError,
	})
}

// Then chains a callback that fires only when h's node completes with
// cumulative success; an error it returns becomes the node's cumulative
// failure. The scheduler runs it for Execute, Prepare and ExecutePrepared
// nodes only; on a Begin or Savepoint handle it is never called.
func (h *Handle) Then(callback func() error) *Handle {
	h.tx.arena[h.node].Then = callback
	return h
}

// Error chains a callback that fires only when h's node's cumulative
// success is false; an error it returns is reported as a ClientError
// alongside the node's failure. As with Then, it runs for Execute, Prepare
// and ExecutePrepared nodes only.
func (h *Handle) Error(callback func() error) *Handle {
	h.tx.arena[h.node].ErrorThen = callback
	return h
}
