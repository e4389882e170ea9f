// Package dberrors implements a small set of wrapped-error decorators for
// the PostgreSQL wire error fields (severity, code, detail, hint, source),
// plus the distinct error types the command pipeline and value codec
// raise.
//
// The decorator shape (WithX/GetX pairs over a wrapped error chain) started
// from a server-side errors package whose job was decorating an error about
// to be SENT; here it's generalized to decorate an error a client has just
// RECEIVED and decoded off the wire.
package dberrors

import (
	"errors"

	"github.com/pgpipe/pgpipe/codes"
)

// Severity is the PostgreSQL error/notice severity level.
type Severity string

const (
	LevelError   Severity = "ERROR"
	LevelFatal   Severity = "FATAL"
	LevelPanic   Severity = "PANIC"
	LevelWarning Severity = "WARNING"
	LevelNotice  Severity = "NOTICE"
	LevelDebug   Severity = "DEBUG"
	LevelInfo    Severity = "INFO"
	LevelLog     Severity = "LOG"
)

type withSeverity struct {
	cause    error
	severity Severity
}

func (w *withSeverity) Error() string { return w.cause.Error() }
func (w *withSeverity) Unwrap() error { return w.cause }

// WithSeverity decorates err with a severity level.
func WithSeverity(err error, severity Severity) error {
	if err == nil {
		return nil
	}
	return &withSeverity{cause: err, severity: severity}
}

// GetSeverity returns the decorated severity, or "" if none is present.
func GetSeverity(err error) Severity {
	var w *withSeverity
	if errors.As(err, &w) {
		return w.severity
	}
	return ""
}

type withCode struct {
	cause error
	code  codes.Code
}

func (w *withCode) Error() string { return w.cause.Error() }
func (w *withCode) Unwrap() error { return w.cause }

// WithCode decorates err with a Postgres SQLSTATE code.
func WithCode(err error, code codes.Code) error {
	if err == nil {
		return nil
	}
	return &withCode{cause: err, code: code}
}

// GetCode returns the decorated SQLSTATE, or codes.Uncategorized if none.
func GetCode(err error) codes.Code {
	var w *withCode
	if errors.As(err, &w) {
		return w.code
	}
	return codes.Uncategorized
}

type withDetail struct {
	cause  error
	detail string
}

func (w *withDetail) Error() string { return w.cause.Error() }
func (w *withDetail) Unwrap() error { return w.cause }

func WithDetail(err error, detail string) error {
	if err == nil {
		return nil
	}
	return &withDetail{cause: err, detail: detail}
}

func GetDetail(err error) string {
	var w *withDetail
	if errors.As(err, &w) {
		return w.detail
	}
	return ""
}

type withHint struct {
	cause error
	hint  string
}

func (w *withHint) Error() string { return w.cause.Error() }
func (w *withHint) Unwrap() error { return w.cause }

func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &withHint{cause: err, hint: hint}
}

func GetHint(err error) string {
	var w *withHint
	if errors.As(err, &w) {
		return w.hint
	}
	return ""
}
