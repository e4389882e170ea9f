package scheduler

import (
	"context"

	"github.com/pgpipe/pgpipe/internal/dberrors"
	"github.com/pgpipe/pgpipe/internal/wireframe"
	"github.com/pgpipe/pgpipe/internal/registry"
	"github.com/pgpipe/pgpipe/protocol"
	"github.com/pgpipe/pgpipe/pgresult"
	"github.com/pgpipe/pgpipe/pgtx"
)

// execSimple runs sql via the Simple-Query path and collects any rows into
// a pgresult.Set.
func (s *Scheduler) execSimple(ctx context.Context, sql string) (*pgresult.Set, error) {
	frame, err := buildQuery(sql)
	if err != nil {
		return nil, &dberrors.ClientError{Cause: err}
	}
	if err := s.transport.Send(frame); err != nil {
		return nil, &dberrors.ConnectionError{Cause: err}
	}

	var desc []wireframe.FieldDescription
	var rows []*wireframe.RawRow
	var queryErr error

	for {
		tag, fr, err := s.transport.Recv()
		if err != nil {
			return nil, &dberrors.ConnectionError{Cause: err}
		}
		switch tag {
		case protocol.BackendTag(protocol.RowDescription):
			desc, err = fr.RowDescription()
			if err != nil {
				return nil, &dberrors.ClientError{Cause: err}
			}
		case protocol.BackendTag(protocol.DataRow):
			row, err := fr.DataRow()
			if err != nil {
				return nil, &dberrors.ClientError{Cause: err}
			}
			rows = append(rows, row)
		case protocol.BackendTag(protocol.CommandComplete), protocol.BackendTag(protocol.EmptyQueryResponse):
			if err := s.awaitReady(); err != nil {
				return nil, err
			}
			if queryErr != nil {
				return pgresult.NewSet(s.codec, desc, rows), queryErr
			}
			return pgresult.NewSet(s.codec, desc, rows), nil
		case protocol.BackendTag(protocol.ErrorResponse):
			queryErr = dberrors.FromNotice(noticeFields(fr))
			if err := s.drainToReady(); err != nil {
				return nil, err
			}
			return pgresult.NewSet(s.codec, desc, rows), queryErr
		case protocol.BackendTag(protocol.NoticeResponse), protocol.BackendTag(protocol.ParameterStatus), protocol.BackendTag(protocol.NotificationResponse):
			// side-channel, does not disturb the cursor
		}
	}
}

// awaitReady consumes exactly the ReadyForQuery frame a successful
// CommandComplete/EmptyQueryResponse is immediately followed by.
func (s *Scheduler) awaitReady() error {
	tag, _, err := s.transport.Recv()
	if err != nil {
		return &dberrors.ConnectionError{Cause: err}
	}
	if tag != protocol.BackendTag(protocol.ReadyForQuery) {
		return s.drainToReady()
	}
	return nil
}

// execPrepare runs Parse + Describe(statement) + Sync, and on success
// registers the resulting Definition (param OIDs plus server row
// description) in the connection's prepared registry.
func (s *Scheduler) execPrepare(ctx context.Context, node *pgtx.Node) error {
	parse, err := buildParse(node.PrepareName, node.SQL, node.ParamOIDs)
	if err != nil {
		return &dberrors.ClientError{Cause: err}
	}
	describe, err := buildDescribeStatement(node.PrepareName)
	if err != nil {
		return &dberrors.ClientError{Cause: err}
	}
	sync, err := buildSync()
	if err != nil {
		return &dberrors.ClientError{Cause: err}
	}
	if err := s.transport.Send(append(append(parse, describe...), sync...)); err != nil {
		return &dberrors.ConnectionError{Cause: err}
	}

	var rowDesc []wireframe.FieldDescription
	for {
		tag, fr, err := s.transport.Recv()
		if err != nil {
			return &dberrors.ConnectionError{Cause: err}
		}
		switch tag {
		case protocol.BackendTag(protocol.ParseComplete):
			// advance sub-request cursor; nothing to record
		case protocol.BackendTag(protocol.ParameterDescription):
			// ignored at this layer: typed param OIDs are caller-supplied
		case protocol.BackendTag(protocol.NoData):
			// statement returns no rows
		case protocol.BackendTag(protocol.RowDescription):
			rowDesc, err = fr.RowDescription()
			if err != nil {
				return &dberrors.ClientError{Cause: err}
			}
		case protocol.BackendTag(protocol.ReadyForQuery):
			def := &registry.Definition{
				Name: node.PrepareName, SQL: node.SQL,
				ParamOIDs: node.ParamOIDs, RowDesc: rowDesc,
			}
			s.registry.Insert(def)
			return nil
		case protocol.BackendTag(protocol.ErrorResponse):
			queryErr := dberrors.FromNotice(noticeFields(fr))
			if err := s.drainToReady(); err != nil {
				return err
			}
			return queryErr
		}
	}
}

// execExecutePrepared runs Bind + Execute + Sync against a registered
// prepared statement.
func (s *Scheduler) execExecutePrepared(ctx context.Context, node *pgtx.Node) (*pgresult.Set, error) {
	def, err := s.registry.Get(node.StatementName)
	if err != nil {
		return nil, err
	}

	pack, err := s.codec.BuildParams(def.ParamOIDs, node.Params)
	if err != nil {
		return nil, &dberrors.ClientError{Cause: err}
	}

	bind, err := buildBind(node.StatementName, pack)
	if err != nil {
		return nil, &dberrors.ClientError{Cause: err}
	}
	execute, err := buildExecutePortal()
	if err != nil {
		return nil, &dberrors.ClientError{Cause: err}
	}
	sync, err := buildSync()
	if err != nil {
		return nil, &dberrors.ClientError{Cause: err}
	}
	if err := s.transport.Send(append(append(bind, execute...), sync...)); err != nil {
		return nil, &dberrors.ConnectionError{Cause: err}
	}

	var rows []*wireframe.RawRow
	var queryErr error
	for {
		tag, fr, err := s.transport.Recv()
		if err != nil {
			return nil, &dberrors.ConnectionError{Cause: err}
		}
		switch tag {
		case protocol.BackendTag(protocol.BindComplete):
			// advance sub-request cursor
		case protocol.BackendTag(protocol.DataRow):
			row, err := fr.DataRow()
			if err != nil {
				return nil, &dberrors.ClientError{Cause: err}
			}
			rows = append(rows, row)
		case protocol.BackendTag(protocol.CommandComplete), protocol.BackendTag(protocol.PortalSuspended), protocol.BackendTag(protocol.EmptyQueryResponse):
			// terminal for this node's body; ReadyForQuery still pending
		case protocol.BackendTag(protocol.ErrorResponse):
			queryErr = dberrors.FromNotice(noticeFields(fr))
		case protocol.BackendTag(protocol.ReadyForQuery):
			return pgresult.NewSet(s.codec, def.RowDesc, rows), queryErr
		}
	}
}
