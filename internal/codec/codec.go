package codec

import (
	"fmt"

	"github.com/lib/pq/oid"
)

// Codec converts between a Go value and the wire bytes for one OID, in both
// format codes. Registry.Decode handles a SQL NULL field itself (it returns
// nil without calling the Codec), so Decode methods are only given non-NULL
// payloads when reached through the Registry.
type Codec interface {
	EncodeBinary(v any) ([]byte, error)
	DecodeBinary(data []byte) (any, error)
	EncodeText(v any) ([]byte, error)
	DecodeText(data []byte) (any, error)
}

// scalarCodecs is the OID table. Populated by the init() functions in
// scalars.go, text.go, uuid.go, timestamp.go and array.go so each file owns
// registering its own OIDs.
var scalarCodecs = map[oid.Oid]Codec{}

func register(o oid.Oid, c Codec) { scalarCodecs[o] = c }

// Lookup returns the codec for o, or (nil, false) if o has no explicit
// codec in this registry.
func (r *Registry) Lookup(o oid.Oid) (Codec, bool) {
	c, ok := scalarCodecs[o]
	return c, ok
}

// Encode encodes v for oid o (binary true selects EncodeBinary, false
// selects EncodeText). Unsupported OIDs fall back to a raw
// []byte pass-through.
func (r *Registry) Encode(o oid.Oid, binary bool, v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	c, ok := scalarCodecs[o]
	if !ok {
		if b, ok := v.([]byte); ok {
			return b, nil
		}
		return nil, unsupportedOID(o)
	}
	if binary {
		return c.EncodeBinary(v)
	}
	return c.EncodeText(v)
}

// Decode decodes data for oid o in format code binary/text. A nil data
// slice represents SQL NULL and decodes to (nil, nil); callers that must
// reject NULL should check for a nil result before use.
func (r *Registry) Decode(o oid.Oid, binary bool, data []byte) (any, error) {
	if data == nil {
		return nil, nil
	}
	c, ok := scalarCodecs[o]
	if !ok {
		return data, nil
	}
	if binary {
		return c.DecodeBinary(data)
	}
	return c.DecodeText(data)
}

func typeError(want string, got any) error {
	return fmt.Errorf("codec: expected %s, got %T", want, got)
}
