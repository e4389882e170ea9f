// Package pgconn is the outward-facing connection handle: one connection,
// one owning goroutine, one entry point that submits a command tree and
// returns once every node in it has settled.
package pgconn

import (
	"context"
	"log/slog"

	"github.com/pgpipe/pgpipe/internal/codec"
	"github.com/pgpipe/pgpipe/internal/registry"
	"github.com/pgpipe/pgpipe/internal/scheduler"
	"github.com/pgpipe/pgpipe/pgresult"
	"github.com/pgpipe/pgpipe/pgtx"
)

// Conn binds a scheduler.Transport to its own value codec and prepared
// statement registry. Neither the codec registry nor the statement registry
// carry a mutex: both assume the single-owning-goroutine model a Conn is
// meant to be driven under, so a Conn must not be shared across goroutines
// without external synchronization.
type Conn struct {
	sched    *scheduler.Scheduler
	codec    *codec.Registry
	registry *registry.Registry
}

// New wraps transport in a Conn ready to Run command trees against it.
// Logger may be nil, in which case slog.Default() is used.
func New(transport scheduler.Transport, logger *slog.Logger) *Conn {
	cdc := codec.NewRegistry()
	reg := registry.New()
	return &Conn{
		sched:    scheduler.New(transport, cdc, reg, logger),
		codec:    cdc,
		registry: reg,
	}
}

// NewTx starts an empty command tree for this connection's fluent builder.
// The returned Tx is not yet submitted; build it with its Handle and pass it
// to Run.
func (c *Conn) NewTx() *pgtx.Tx { return pgtx.New() }

// Run submits tx's entire command tree and blocks until every node has
// settled, returning the last collected result set alongside the first
// error surfaced anywhere in the tree (per-node outcomes are still
// delivered individually to each node's own success/error callbacks as they
// complete).
func (c *Conn) Run(ctx context.Context, tx *pgtx.Tx) (*pgresult.Set, error) {
	return c.sched.Run(ctx, tx)
}
