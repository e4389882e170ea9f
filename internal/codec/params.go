package codec

import (
	"encoding/binary"

	"github.com/lib/pq/oid"
)

// ParamPack is an opaque, immutable parameter payload: an int16 count
// prefix followed by, per parameter, a length-prefixed binary encoding (-1
// length for NULL), plus the parallel vector of OIDs actually consumed
// building it.
type ParamPack struct {
	Payload []byte
	OIDs    []oid.Oid
}

// BuildParams assembles a ParamPack from args, consuming one or more
// entries of oids per argument:
//
//  1. A []string argument explodes into one parameter per element
//     (batch-INSERT idiom), consuming one oids entry per element.
//  2. Any other argument — including every other slice type — serializes
//     as a single parameter (an array parameter, for non-string slices),
//     consuming exactly one oids entry.
//
// Only []string explodes this way; a []byte (or other byte-vector)
// argument is not a sequence of scalar strings and is instead bound as a
// single bytea value.
func (r *Registry) BuildParams(oids []oid.Oid, args []any) (*ParamPack, error) {
	payload := make([]byte, 2) // placeholder count, patched below
	var used []oid.Oid
	oidIdx := 0

	nextOID := func() (oid.Oid, error) {
		if oidIdx >= len(oids) {
			return 0, typeError("enough declared parameter OIDs", oids)
		}
		o := oids[oidIdx]
		oidIdx++
		return o, nil
	}

	appendParam := func(o oid.Oid, v any) error {
		if v == nil {
			payload = appendInt32(payload, -1)
			used = append(used, o)
			return nil
		}
		enc, err := r.Encode(o, true, v)
		if err != nil {
			return err
		}
		payload = appendInt32(payload, int32(len(enc)))
		payload = append(payload, enc...)
		used = append(used, o)
		return nil
	}

	for _, arg := range args {
		if strs, ok := arg.([]string); ok {
			for _, s := range strs {
				o, err := nextOID()
				if err != nil {
					return nil, err
				}
				if err := appendParam(o, s); err != nil {
					return nil, err
				}
			}
			continue
		}

		o, err := nextOID()
		if err != nil {
			return nil, err
		}
		if err := appendParam(o, arg); err != nil {
			return nil, err
		}
	}

	binary.BigEndian.PutUint16(payload[0:2], uint16(len(used)))
	return &ParamPack{Payload: payload, OIDs: used}, nil
}
