package dberrors

import (
	"fmt"

	"github.com/pgpipe/pgpipe/codes"
)

// ConnectionError indicates the transport is unusable; every outstanding
// node on the connection fails.
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string { return fmt.Sprintf("connection error: %s", e.Cause) }
func (e *ConnectionError) Unwrap() error { return e.Cause }

// QueryError carries the decoded fields of an ErrorResponse from the
// server. The constraint name ('n'), internal position ('p') and internal
// query ('q') fields are not kept.
type QueryError struct {
	Severity Severity
	SQLState codes.Code
	Message  string
	Detail   string
	Hint     string
	Position string
	Where    string
	Schema   string
	Table    string
	Column   string
	DataType string
	Routine  string
	File     string
	Line     string
}

func (e *QueryError) Error() string {
	if e.SQLState != "" {
		return fmt.Sprintf("%s (%s): %s", e.Severity, e.SQLState, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Severity, e.Message)
}

// ClientError wraps a panic-free failure returned by a user callback, or a
// decoded frame that failed local validation.
type ClientError struct {
	Cause error
}

func (e *ClientError) Error() string { return fmt.Sprintf("client error: %s", e.Cause) }
func (e *ClientError) Unwrap() error { return e.Cause }

// ValueIsNull is returned decoding a NULL field into a non-optional target.
type ValueIsNull struct {
	Field string
}

func (e *ValueIsNull) Error() string { return fmt.Sprintf("value is null: field %q", e.Field) }

// FieldTypeMismatch is returned when a field's OID cannot be decoded into
// the requested Go type.
type FieldTypeMismatch struct {
	Field string
	OID   uint32
	Want  string
}

func (e *FieldTypeMismatch) Error() string {
	return fmt.Sprintf("field %q (oid %d) cannot decode into %s", e.Field, e.OID, e.Want)
}

// ArityMismatch is returned decoding a row into a tuple target wider than
// the row.
type ArityMismatch struct {
	RowWidth  int
	TupleSize int
}

func (e *ArityMismatch) Error() string {
	return fmt.Sprintf("row has %d fields, tuple target needs %d", e.RowWidth, e.TupleSize)
}

// UnknownPrepared is returned when Execute-Prepared references a name
// absent from the connection's prepared registry.
type UnknownPrepared struct {
	Name string
}

func (e *UnknownPrepared) Error() string { return fmt.Sprintf("unknown prepared statement: %q", e.Name) }

// FromNotice builds a QueryError from the raw field list an ErrorResponse
// or NoticeResponse frame carries.
func FromNotice(fields map[byte]string) *QueryError {
	return &QueryError{
		Severity: Severity(fields['S']),
		SQLState: codes.Code(fields['C']),
		Message:  fields['M'],
		Detail:   fields['D'],
		Hint:     fields['H'],
		Position: fields['P'],
		Where:    fields['W'],
		Schema:   fields['s'],
		Table:    fields['t'],
		Column:   fields['c'],
		DataType: fields['d'],
		Routine:  fields['R'],
		File:     fields['F'],
		Line:     fields['L'],
	}
}
