package scheduler

import (
	"github.com/lib/pq/oid"

	"github.com/pgpipe/pgpipe/internal/codec"
	"github.com/pgpipe/pgpipe/internal/wireframe"
	"github.com/pgpipe/pgpipe/protocol"
)

func buildQuery(sql string) ([]byte, error) {
	return wireframe.NewFrame(protocol.Query).CString(sql).FinishTagged()
}

func buildParse(name, sql string, paramOIDs []oid.Oid) ([]byte, error) {
	b := wireframe.NewFrame(protocol.Parse).CString(name).CString(sql).Int16(int16(len(paramOIDs)))
	for _, o := range paramOIDs {
		b = b.Int32(int32(o))
	}
	return b.FinishTagged()
}

func buildDescribeStatement(name string) ([]byte, error) {
	return wireframe.NewFrame(protocol.Describe).Byte('S').CString(name).FinishTagged()
}

func buildSync() ([]byte, error) {
	return wireframe.NewFrame(protocol.Sync).FinishTagged()
}

// buildBind assembles a Bind frame against the unnamed portal and the named
// prepared statement, with a single format code (binary) applying to every
// parameter and every result column.
func buildBind(statement string, pack *codec.ParamPack) ([]byte, error) {
	b := wireframe.NewFrame(protocol.Bind).
		CString("").       // unnamed destination portal
		CString(statement).
		Int16(1).Int16(1). // one parameter format code applies to all
		Bytes(pack.Payload).
		Int16(1).Int16(1) // one result format code applies to all
	return b.FinishTagged()
}

func buildExecutePortal() ([]byte, error) {
	return wireframe.NewFrame(protocol.Execute).CString("").Int32(0).FinishTagged()
}
