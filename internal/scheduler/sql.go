package scheduler

import (
	"strings"

	"github.com/pgpipe/pgpipe/pgtx"
)

// beginText renders the BEGIN statement text for mode, serializing only
// the fields that differ from the server default.
func beginText(mode pgtx.Mode) string {
	var parts []string
	switch mode.Isolation {
	case pgtx.IsolationReadCommitted:
		parts = append(parts, "ISOLATION LEVEL READ COMMITTED")
	case pgtx.IsolationRepeatableRead:
		parts = append(parts, "ISOLATION LEVEL REPEATABLE READ")
	case pgtx.IsolationSerializable:
		parts = append(parts, "ISOLATION LEVEL SERIALIZABLE")
	}
	if mode.ReadOnly {
		parts = append(parts, "READ ONLY")
	}
	if mode.Deferrable {
		parts = append(parts, "DEFERRABLE")
	}
	if len(parts) == 0 {
		return "BEGIN"
	}
	return "BEGIN " + strings.Join(parts, " ")
}

func savepointText(name string) string   { return "SAVEPOINT " + quoteIdent(name) }
func releaseText(name string) string     { return "RELEASE SAVEPOINT " + quoteIdent(name) }
func rollbackToText(name string) string  { return "ROLLBACK TO SAVEPOINT " + quoteIdent(name) }

const commitText = "COMMIT"
const rollbackText = "ROLLBACK"

// quoteIdent double-quotes name, doubling any embedded quote, so a
// caller-supplied savepoint name can't break out of the statement text.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
