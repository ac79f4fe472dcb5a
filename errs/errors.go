// Package errs defines the error taxonomy shared by the zon codec packages.
//
// Three classes exist:
//
//   - Structural (E001, E002): declared-vs-actual mismatches. Recoverable by
//     decoding in lenient mode; never retried internally.
//   - Syntax (E1xx): malformed quoting, unknown rule tags, out-of-range
//     indices. Always fatal: the stream is unparseable or would decode to a
//     silently wrong value.
//   - Security (E3xx): size/count ceilings. Always fatal regardless of mode,
//     since tolerating them defeats their purpose.
//
// Sentinel errors identify the class for errors.Is; DecodeError carries the
// code, position, and context a caller needs to present the failure.
package errs

import (
	"errors"
	"fmt"
)

// Stable error codes, visible to callers through DecodeError.Code.
const (
	CodeRowCountMismatch   = "E001"
	CodeFieldCountMismatch = "E002"

	CodeBadQuoting      = "E101"
	CodeUnknownStrategy = "E102"
	CodeEnumIndexRange  = "E103"
	CodeBadTableHeader  = "E104"
	CodeBadDictionary   = "E105"
	CodeBadRun          = "E106"

	CodeDocumentSizeExceeded = "E301"
	CodeLineLengthExceeded   = "E302"
	CodeSequenceLenExceeded  = "E303"
	CodeMappingKeysExceeded  = "E304"
	CodeNestingDepthExceeded = "E305"
)

// Structural decode errors.
var (
	ErrRowCountMismatch   = errors.New("row count mismatch")
	ErrFieldCountMismatch = errors.New("field count mismatch")
)

// Syntax decode errors.
var (
	ErrBadQuoting      = errors.New("malformed quoted string")
	ErrUnknownStrategy = errors.New("unknown strategy tag")
	ErrEnumIndexRange  = errors.New("enum index out of range")
	ErrBadTableHeader  = errors.New("malformed table header")
	ErrBadDictionary   = errors.New("bad dictionary reference")
	ErrBadRun          = errors.New("malformed run line")
)

// Security decode errors.
var (
	ErrDocumentSizeExceeded = errors.New("document size limit exceeded")
	ErrLineLengthExceeded   = errors.New("line length limit exceeded")
	ErrSequenceLenExceeded  = errors.New("sequence length limit exceeded")
	ErrMappingKeysExceeded  = errors.New("mapping key count limit exceeded")
	ErrNestingDepthExceeded = errors.New("nesting depth limit exceeded")
)

// Encode errors.
var (
	ErrCircularReference = errors.New("circular reference in input")
)

// Binary envelope errors.
var (
	ErrBadEnvelope        = errors.New("malformed binary envelope")
	ErrChecksumMismatch   = errors.New("envelope checksum mismatch")
	ErrUnknownCompression = errors.New("unknown compression type")
)

// DecodeError is the error type returned by every decode failure.
//
// Line and Column are 1-based; zero means the position is not applicable.
// Context names the enclosing structure, e.g. "table users".
type DecodeError struct {
	Code    string
	Line    int
	Column  int
	Context string
	Err     error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("zon: decode error [%s]: %v", e.Code, e.Err)
	if e.Line > 0 {
		if e.Column > 0 {
			msg += fmt.Sprintf(" (line %d, column %d)", e.Line, e.Column)
		} else {
			msg += fmt.Sprintf(" (line %d)", e.Line)
		}
	}
	if e.Context != "" {
		msg += " in " + e.Context
	}

	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsSecurity reports whether the error is one of the hard security ceilings.
func (e *DecodeError) IsSecurity() bool {
	return len(e.Code) == 4 && e.Code[1] == '3'
}

// IsStructural reports whether the error is a row/field count mismatch, the
// only class tolerated by lenient mode.
func (e *DecodeError) IsStructural() bool {
	return e.Code == CodeRowCountMismatch || e.Code == CodeFieldCountMismatch
}

// NewDecodeError builds a DecodeError from a sentinel and position info.
func NewDecodeError(code string, err error, line, column int, context string) *DecodeError {
	return &DecodeError{Code: code, Line: line, Column: column, Context: context, Err: err}
}

// EncodeError is the error type returned by encode failures.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("zon: encode error: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
