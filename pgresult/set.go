// Package pgresult implements a random-access, bidirectionally-iterable
// collection of rows collected by a command-tree node, with per-field
// null/raw/typed access backed by the value codec.
package pgresult

import (
	"fmt"

	"github.com/pgpipe/pgpipe/internal/codec"
	"github.com/pgpipe/pgpipe/internal/wireframe"
)

// Set is the result of one Simple-Query or Execute-Prepared node: a row
// description shared by every row, plus the rows themselves in arrival
// order. A Set is owned by the node that collected it; the view handed to a
// user callback must not outlive that callback.
type Set struct {
	desc []wireframe.FieldDescription
	rows []*wireframe.RawRow
	reg  *codec.Registry
}

// NewSet constructs a Set over desc/rows using reg to decode fields.
func NewSet(reg *codec.Registry, desc []wireframe.FieldDescription, rows []*wireframe.RawRow) *Set {
	return &Set{desc: desc, rows: rows, reg: reg}
}

// Size returns the number of rows.
func (s *Set) Size() int { return len(s.rows) }

// Empty reports whether the set has no rows.
func (s *Set) Empty() bool { return len(s.rows) == 0 }

// Description returns the shared field description vector.
func (s *Set) Description() []wireframe.FieldDescription { return s.desc }

// Row returns the row at index i, supporting both forward (i >= 0) and
// reverse (negative i counts back from the end, -1 is the last row)
// indexing for bidirectional iteration.
func (s *Set) Row(i int) (*Row, error) {
	if i < 0 {
		i += len(s.rows)
	}
	if i < 0 || i >= len(s.rows) {
		return nil, fmt.Errorf("pgresult: row index out of range (have %d rows)", len(s.rows))
	}
	return &Row{desc: s.desc, raw: s.rows[i], reg: s.reg}, nil
}

// Rows returns every row in arrival order, for forward iteration.
func (s *Set) Rows() []*Row {
	out := make([]*Row, len(s.rows))
	for i, raw := range s.rows {
		out[i] = &Row{desc: s.desc, raw: raw, reg: s.reg}
	}
	return out
}

// ReverseRows returns every row in reverse arrival order.
func (s *Set) ReverseRows() []*Row {
	rows := s.Rows()
	out := make([]*Row, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	return out
}
