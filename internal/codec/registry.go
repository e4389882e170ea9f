// Package codec implements bit-exact conversion between native Go values
// and PostgreSQL wire field bytes, in both Binary and Text format codes,
// across a fixed table of OIDs.
//
// Every OID gets one Codec implementation with the same four-method shape.
// The scalar ones (scalars.go, text.go, uuid.go, timestamp.go) are each a
// thin wrapper over the matching github.com/jackc/pgtype v1 value type's own
// Set/EncodeBinary/DecodeBinary/EncodeText/DecodeText; array.go frames the
// 1-D array header itself and encodes each element through those scalar
// codecs. numeric.go
// established the pattern first, wrapping the shopspring-numeric extension
// rather than hand-rolling base-10000 digit-group arithmetic; every other
// file follows it. pgx/v5's own pgtype.Map is not embedded here: its
// per-OID plans are keyed on `any` with their own NULL/assignment inference,
// which doesn't compose with this package's single Optional[T] nullability
// contract across every OID uniformly.
package codec

import (
	"fmt"

	"github.com/lib/pq/oid"
)

// Registry is a connection-scoped value codec. It is safe for use only from
// the connection's owning goroutine.
type Registry struct{}

// NewRegistry constructs a Registry with the standard OID table plus the
// NUMERIC extension.
func NewRegistry() *Registry {
	return &Registry{}
}

// Supported reports whether oid has an explicit codec in this registry. OIDs
// outside the supported table are still round-trippable as raw byte slices.
func (r *Registry) Supported(o oid.Oid) bool {
	_, ok := scalarCodecs[o]
	return ok
}

func unsupportedOID(o oid.Oid) error {
	return fmt.Errorf("codec: oid %d has no explicit codec; read as raw bytes", uint32(o))
}
