// Package scheduler implements the pipeline scheduler: it walks a pgtx.Tx
// depth-first, asks each node for its wire frame(s), dispatches them over a
// Transport, and routes backend frames back to the node currently awaiting
// them.
//
// The dispatch loop pulls one frame at a time off a buffered reader and
// switches on its type, the same way a server-side command dispatcher
// pulls frames off a client connection — just run in the opposite
// direction (a client driving a server) and keyed off a tree cursor
// instead of a single in-flight statement.
package scheduler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pgpipe/pgpipe/internal/codec"
	"github.com/pgpipe/pgpipe/internal/dberrors"
	"github.com/pgpipe/pgpipe/internal/registry"
	"github.com/pgpipe/pgpipe/internal/wireframe"
	"github.com/pgpipe/pgpipe/protocol"
	"github.com/pgpipe/pgpipe/pgresult"
	"github.com/pgpipe/pgpipe/pgtx"
)

// Transport is the byte-oriented, framed-message connection the scheduler
// consumes: send a complete frontend frame, and pull the next backend
// frame. Implementations: internal/netconn (real sockets) and
// internal/mocktransport (tests).
type Transport interface {
	Send(frame []byte) error
	Recv() (protocol.BackendTag, *wireframe.FieldReader, error)
}

// Scheduler drives one Tx to completion against one Transport. It is not
// safe for concurrent use — every connection has exactly one owning
// goroutine.
type Scheduler struct {
	transport Transport
	codec     *codec.Registry
	registry  *registry.Registry
	logger    *slog.Logger
}

// New constructs a Scheduler over transport, using reg for the prepared
// statement registry and cdc for value encoding/decoding.
func New(transport Transport, cdc *codec.Registry, reg *registry.Registry, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{transport: transport, codec: cdc, registry: reg, logger: logger}
}

// errRollbackDueToFailure is the synthetic error reported on a
// Begin/Savepoint's terminal rollback when it was forced by a descendant's
// failure rather than requested directly.
var errRollbackDueToFailure = errors.New("rollback processed due to a query failure")

// Run walks tx to completion and returns the root's last collected result
// set alongside the first surfaced error: a possibly-partial result set
// plus an optional error.
func (s *Scheduler) Run(ctx context.Context, tx *pgtx.Tx) (*pgresult.Set, error) {
	root := tx.Node(tx.Root())
	var lastSet *pgresult.Set
	var firstErr error

	record := func(set *pgresult.Set, err error) {
		if set != nil {
			lastSet = set
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for _, childID := range root.Children {
		s.runNode(ctx, tx, childID, record)
	}
	return lastSet, firstErr
}

type recorder func(*pgresult.Set, error)

func (s *Scheduler) runNode(ctx context.Context, tx *pgtx.Tx, id pgtx.NodeID, record recorder) {
	node := tx.Node(id)
	switch node.Kind {
	case pgtx.KindBegin:
		s.runBegin(ctx, tx, node, record)
	case pgtx.KindSavepoint:
		s.runSavepoint(ctx, tx, node, record)
	case pgtx.KindExecuteSimple:
		set, err := s.execSimple(ctx, node.SQL)
		s.finishLeaf(tx, node, set, err, record)
	case pgtx.KindPrepare:
		err := s.execPrepare(ctx, node)
		s.finishLeaf(tx, node, nil, err, record)
	case pgtx.KindExecutePrepared:
		set, err := s.execExecutePrepared(ctx, node)
		s.finishLeaf(tx, node, set, err, record)
	default:
		// KindEndBegin / KindEndSavepoint are skipped by runBegin/runSavepoint,
		// which issue the commit/rollback or release/rollback-to themselves;
		// they are never reached through generic recursion.
	}
}

func (s *Scheduler) finishLeaf(tx *pgtx.Tx, node *pgtx.Node, set *pgresult.Set, err error, record recorder) {
	status := err == nil
	node.Cumulative = status
	if status {
		if node.OnSuccess != nil {
			if cbErr := node.OnSuccess(&pgtx.NodeView{NodeID: node.ID, Result: set}); cbErr != nil {
				status = false
				err = &dberrors.ClientError{Cause: cbErr}
			}
		}
		if status && node.Then != nil {
			if cbErr := node.Then(); cbErr != nil {
				status = false
				err = &dberrors.ClientError{Cause: cbErr}
			}
		}
	} else {
		if node.OnError != nil {
			_ = node.OnError(err)
		}
		if node.ErrorThen != nil {
			if cbErr := node.ErrorThen(); cbErr != nil {
				err = errors.Join(err, &dberrors.ClientError{Cause: cbErr})
			}
		}
	}
	node.Cumulative = status
	record(set, err)
	s.bubbleStatus(tx, node, status)
}

// bubbleStatus implements on_sub_command_status: AND the status into every
// ancestor's cumulative flag, latching force-rollback on any ancestor
// Savepoint that sees a failure.
func (s *Scheduler) bubbleStatus(tx *pgtx.Tx, node *pgtx.Node, status bool) {
	if status {
		return
	}
	current := node
	for current.Parent != -1 {
		parent := tx.Node(current.Parent)
		parent.Cumulative = parent.Cumulative && status
		if parent.Kind == pgtx.KindSavepoint {
			parent.ForceRollback = true
		}
		current = parent
	}
}

func (s *Scheduler) runBegin(ctx context.Context, tx *pgtx.Tx, node *pgtx.Node, record recorder) {
	_, err := s.execSimple(ctx, beginText(node.Mode))
	if err != nil {
		node.Cumulative = false
		if node.OnError != nil {
			_ = node.OnError(err)
		}
		record(nil, err)
		s.bubbleStatus(tx, node, false)
		return
	}
	if node.OnSuccess != nil {
		_ = node.OnSuccess(&pgtx.NodeView{NodeID: node.ID})
	}

	body := node.Children[1:]
	for _, childID := range body {
		s.runNode(ctx, tx, childID, record)
	}

	end := tx.Node(node.Children[0])
	if node.Cumulative {
		_, cerr := s.execSimple(ctx, commitText)
		record(nil, cerr)
	} else {
		_, _ = s.execSimple(ctx, rollbackText)
		if node.OnError != nil {
			_ = node.OnError(errRollbackDueToFailure)
		}
		record(nil, errRollbackDueToFailure)
	}
	_ = end
	s.bubbleStatus(tx, node, node.Cumulative)
}

func (s *Scheduler) runSavepoint(ctx context.Context, tx *pgtx.Tx, node *pgtx.Node, record recorder) {
	_, err := s.execSimple(ctx, savepointText(node.SavepointName))
	if err != nil {
		node.Cumulative = false
		if node.OnError != nil {
			_ = node.OnError(err)
		}
		record(nil, err)
		s.bubbleStatus(tx, node, false)
		return
	}
	if node.OnSuccess != nil {
		_ = node.OnSuccess(&pgtx.NodeView{NodeID: node.ID})
	}

	body := node.Children[1:]
	for _, childID := range body {
		s.runNode(ctx, tx, childID, record)
	}

	if node.Cumulative && !node.ForceRollback {
		_, rerr := s.execSimple(ctx, releaseText(node.SavepointName))
		record(nil, rerr)
	} else {
		_, _ = s.execSimple(ctx, rollbackToText(node.SavepointName))
		if node.OnError != nil {
			_ = node.OnError(errRollbackDueToFailure)
		}
		node.Cumulative = false
		record(nil, errRollbackDueToFailure)
	}
	s.bubbleStatus(tx, node, node.Cumulative)
}

// drainToReady consumes backend frames until ReadyForQuery: an error does
// not end the exchange, the matching ReadyForQuery does.
func (s *Scheduler) drainToReady() error {
	for {
		tag, fr, err := s.transport.Recv()
		if err != nil {
			return &dberrors.ConnectionError{Cause: err}
		}
		if tag == protocol.BackendTag(protocol.ReadyForQuery) {
			return nil
		}
		if tag == protocol.BackendTag(protocol.ErrorResponse) {
			fields, _ := fr.NoticeOrError()
			s.logger.Debug("ignoring additional error frame while draining", slog.Any("fields", fields))
		}
	}
}

func noticeFields(fr *wireframe.FieldReader) map[byte]string {
	list, err := fr.NoticeOrError()
	if err != nil {
		return nil
	}
	out := make(map[byte]string, len(list))
	for _, f := range list {
		out[f.Code] = f.Value
	}
	return out
}
