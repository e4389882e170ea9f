package codec

// Optional is a generic NULL-carrying value wrapper: Valid is false when
// the value is absent. No decode path in this module produces or consumes
// an Optional[T]: Registry.Decode returns nil for a NULL field, and
// pgresult's Field.MustDecode returns dberrors.ValueIsNull for one.
//
// pgtype's own null handling (pgtype.Int4{Status: pgtype.Null}, InfinityModifier,
// etc.) is per concrete type and carries extra states (+Infinity/-Infinity
// for timestamps) that aren't needed here; Optional[T] is a single generic
// shape that composes with every scalar in this package instead of one
// bespoke nullable struct per OID.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] { return Optional[T]{Value: v, Valid: true} }

// None returns an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it was present.
func (o Optional[T]) Get() (T, bool) { return o.Value, o.Valid }
