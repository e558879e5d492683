package jv

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// these through errors.Is.
var (
	ErrType     = errors.New("type error")
	ErrKey      = errors.New("key error")
	ErrIndex    = errors.New("index error")
	ErrRange    = errors.New("range error")
	ErrOverflow = errors.New("overflow error")
	ErrParse    = errors.New("parse error")
	ErrIO       = errors.New("io error")
)

// Error describes a failed operation on a Value, Cursor or file.
// Kind is one of the Err* sentinels; Err is an optional underlying cause.
type Error struct {
	Kind    error
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("jv %s: %v: %s", e.Op, e.Kind, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the cause, so
// errors.Is(err, ErrIO) and errors.Is(err, fs.ErrNotExist) both hold.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// ParseError reports malformed JSON text. Offset is a byte offset; Line and
// Column are 1-based. File is set when the text came from a file.
type ParseError struct {
	File    string
	Offset  int
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("jv parse: line %d, column %d (offset %d): %s", e.Line, e.Column, e.Offset, e.Message)
}

// Is makes every ParseError match ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newError(kind error, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

func typeError(op string, got Kind, want string) *Error {
	return newError(ErrType, op, "value is %s, want %s", got, want)
}

// IsTypeError reports whether err is (or wraps) a type error.
func IsTypeError(err error) bool { return errors.Is(err, ErrType) }

// IsKeyError reports whether err is (or wraps) a missing-key error.
func IsKeyError(err error) bool { return errors.Is(err, ErrKey) }

// IsIndexError reports whether err is (or wraps) an out-of-bounds error.
func IsIndexError(err error) bool { return errors.Is(err, ErrIndex) }

// IsRangeError reports whether err is (or wraps) a range error.
func IsRangeError(err error) bool { return errors.Is(err, ErrRange) }

// IsOverflowError reports whether err is (or wraps) a numeric overflow.
func IsOverflowError(err error) bool { return errors.Is(err, ErrOverflow) }

// IsParseError reports whether err is (or wraps) a parse error.
func IsParseError(err error) bool { return errors.Is(err, ErrParse) }

// IsIOError reports whether err is (or wraps) a file I/O error.
func IsIOError(err error) bool { return errors.Is(err, ErrIO) }
