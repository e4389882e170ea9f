package codec

import "github.com/jackc/pgtype"

// connInfo is the shared pgtype.ConnInfo every wrapped pgtype v1 value type
// in this package encodes/decodes against. pgtype v1's Binary/Text codec
// methods all take a *ConnInfo parameter (used to resolve nested/composite
// OIDs); none of the OIDs this package wraps need anything beyond the
// default OID table, so one package-level instance is shared by all of
// them.
var connInfo = pgtype.NewConnInfo()
