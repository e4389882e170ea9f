// Package registry implements a per-connection prepared-statement registry:
// a name-to-definition map, mutated only by the scheduler goroutine as it
// processes ParseComplete / ParameterDescription / RowDescription frames
// belonging to a Prepare node.
//
// Unlike a general-purpose statement cache, this map carries no mutex:
// every connection has exactly one owning goroutine, and a prepared
// statement's definition is immutable once registered.
package registry

import (
	"github.com/lib/pq/oid"

	"github.com/pgpipe/pgpipe/internal/dberrors"
	"github.com/pgpipe/pgpipe/internal/wireframe"
)

// Definition is a prepared statement's definition: name, SQL text, ordered
// parameter OIDs, and the row description the server returned during
// Describe.
type Definition struct {
	Name       string
	SQL        string
	ParamOIDs  []oid.Oid
	RowDesc    []wireframe.FieldDescription
}

// Registry is a per-connection mapping from prepared-statement name to
// Definition.
type Registry struct {
	statements map[string]*Definition
}

// New constructs an empty Registry.
func New() *Registry {
	return &Registry{statements: make(map[string]*Definition)}
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.statements[name]
	return ok
}

// Insert registers def under its own name. Overwriting an existing
// definition is permitted (idempotent re-Prepare), and returns the stable
// pointer now stored in the registry.
func (r *Registry) Insert(def *Definition) *Definition {
	r.statements[def.Name] = def
	return def
}

// Get returns the definition registered under name, or dberrors.UnknownPrepared
// if none is registered.
func (r *Registry) Get(name string) (*Definition, error) {
	def, ok := r.statements[name]
	if !ok {
		return nil, &dberrors.UnknownPrepared{Name: name}
	}
	return def, nil
}
