package value

import "fmt"

// ReadErrorKind enumerates the ReadError family (spec.md §7), spanning both
// the lexer's raw/classification passes and the parser.
type ReadErrorKind int

const (
	EmptyInput ReadErrorKind = iota
	InvalidCharacter
	InvalidUnicode
	InvalidOctal
	InvalidKeyword
	InvalidDispatchMacro
	InvalidStringEscapeSequence
	NonTerminatedString
	BadStartToken
	MismatchedDelimiter
	MismatchedReaderMacro
	MapKeyValueMismatch
)

var readErrorKindNames = [...]string{
	EmptyInput:                  "EmptyInput",
	InvalidCharacter:            "InvalidCharacter",
	InvalidUnicode:              "InvalidUnicode",
	InvalidOctal:                "InvalidOctal",
	InvalidKeyword:              "InvalidKeyword",
	InvalidDispatchMacro:        "InvalidDispatchMacro",
	InvalidStringEscapeSequence: "InvalidStringEscapeSequence",
	NonTerminatedString:         "NonTerminatedString",
	BadStartToken:               "BadStartToken",
	MismatchedDelimiter:         "MismatchedDelimiter",
	MismatchedReaderMacro:       "MismatchedReaderMacro",
	MapKeyValueMismatch:         "MapKeyValueMismatch",
}

func (k ReadErrorKind) String() string {
	if int(k) < 0 || int(k) >= len(readErrorKindNames) {
		return "ReadError"
	}
	return readErrorKindNames[k]
}

// ReadError is produced anywhere in the lex/parse/reader-macro-expand
// pipeline. Pos is a best-effort byte offset into the source, -1 when not
// meaningful (e.g. EmptyInput).
type ReadError struct {
	Kind ReadErrorKind
	Msg  string
	Pos  int
}

func (e *ReadError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s at %d: %s", e.Kind, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// NewReadError builds a ReadError with a formatted message.
func NewReadError(kind ReadErrorKind, pos int, format string, args ...interface{}) *ReadError {
	return &ReadError{Kind: kind, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// EvalErrorKind enumerates the EvalError family (spec.md §7).
type EvalErrorKind int

const (
	ArityError EvalErrorKind = iota
	InvalidArgumentError
	OutOfBoundsError
	DivideByZeroError
	InvalidSymbolError
	UnboundError
	NotEvalableError
	RecurMisuseError
	CustomError
)

var evalErrorKindNames = [...]string{
	ArityError:           "ArityError",
	InvalidArgumentError: "InvalidArgumentError",
	OutOfBoundsError:     "OutOfBoundsError",
	DivideByZeroError:    "DivideByZeroError",
	InvalidSymbolError:   "InvalidSymbolError",
	UnboundError:         "UnboundError",
	NotEvalableError:     "NotEvalableError",
	RecurMisuseError:     "RecurMisuseError",
	CustomError:          "CustomError",
}

func (k EvalErrorKind) String() string {
	if int(k) < 0 || int(k) >= len(evalErrorKindNames) {
		return "EvalError"
	}
	return evalErrorKindNames[k]
}

// EvalError is returned by the evaluator and every built-in/special form.
type EvalError struct {
	Kind EvalErrorKind
	Msg  string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// NewEvalError builds an EvalError with a formatted message.
func NewEvalError(kind EvalErrorKind, format string, args ...interface{}) *EvalError {
	return &EvalError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Arityf is a convenience constructor for the most common EvalError.
func Arityf(format string, args ...interface{}) *EvalError {
	return NewEvalError(ArityError, format, args...)
}

// InvalidArgf is a convenience constructor for InvalidArgumentError.
func InvalidArgf(format string, args ...interface{}) *EvalError {
	return NewEvalError(InvalidArgumentError, format, args...)
}
