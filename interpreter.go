// Package kindling is the embedding surface for the interpreter
// (spec.md §6, SPEC_FULL.md §7): a caller constructs an Interpreter, then
// repeatedly calls Evaluate with source text and inspects the returned
// EvalOutcome. cmd/kindling is one such caller; nothing in this package
// depends on it.
package kindling

import (
	"io"
	"os"

	// Registers every dotted built-in into eval.Builtins as a side effect of
	// import, mirroring the teacher's own package-level ns table
	// (step9_try/core.go), just wired through Go's init() instead of a
	// package-level map literal, since the registry is filled from a
	// different package than it's declared in (see eval.Builtins's doc).
	_ "github.com/kindling-lang/kindling/internal/builtin"
	"github.com/kindling-lang/kindling/internal/eval"
	"github.com/kindling-lang/kindling/internal/lexer"
	"github.com/kindling-lang/kindling/internal/parser"
	"github.com/kindling-lang/kindling/internal/readermacro"
	"github.com/kindling-lang/kindling/internal/stdlib"
	"github.com/kindling-lang/kindling/internal/value"
)

// EvalOutcome is the result of one Evaluate call: exactly one of Value,
// ReadErr or EvalErr is meaningful (spec.md §6's
// "Success(Value) | ReadFailure(ReadError) | EvalFailure(EvalError)").
type EvalOutcome struct {
	Value   value.Value
	ReadErr *value.ReadError
	EvalErr *value.EvalError
}

// Err returns the outcome's failure as a plain error, or nil on success.
func (o EvalOutcome) Err() error {
	if o.ReadErr != nil {
		return o.ReadErr
	}
	if o.EvalErr != nil {
		return o.EvalErr
	}
	return nil
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithOutput sets the sink `.print` writes to. Defaults to os.Stdout
// (spec.md §6: "Default sink writes to standard output").
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.output = w }
}

// Interpreter owns one root Context (intern tables, global bindings, output
// sink) and evaluates source text against it (spec.md §5: "Shared
// resources... all owned by the Interpreter instance").
type Interpreter struct {
	output  io.Writer
	ctx     *value.Context
	loadErr *EvalOutcome
}

// New builds an Interpreter and loads the embedded bootstrap library
// through the same Evaluate path any caller-supplied source goes through
// (SPEC_FULL.md §7). If the bootstrap load fails, the failure is recorded
// and replayed by every subsequent Evaluate call, matching spec.md §6's
// "exit code 1 on unrecoverable startup failure" contract for callers that
// check the first EvalOutcome.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{output: os.Stdout}
	for _, opt := range opts {
		opt(i)
	}
	i.reset()
	return i
}

// Reset discards all state and reloads a fresh root Context plus the
// bootstrap library, keeping the currently configured output sink.
func (i *Interpreter) Reset() {
	i.reset()
}

func (i *Interpreter) reset() {
	i.ctx = value.NewRootContext(i.output)
	i.loadErr = nil
	outcome := i.evaluate(stdlib.Source)
	if err := outcome.Err(); err != nil {
		o := outcome
		i.loadErr = &o
	}
}

// Evaluate lexes, parses, expands reader macros and evaluates one or more
// top-level forms in source (spec.md §4, §6). Only the last form's result is
// returned; per spec.md §7, a `def` that already succeeded earlier in the
// same call persists even if a later form in the same call fails.
func (i *Interpreter) Evaluate(source string) EvalOutcome {
	if i.loadErr != nil {
		return *i.loadErr
	}
	return i.evaluate(source)
}

// Print renders v back to source text using this Interpreter's symbol and
// keyword interning tables (spec.md §6's round-trip contract).
func (i *Interpreter) Print(v value.Value) string {
	return value.Print(v, i.ctx, true)
}

// StartupError reports the bootstrap library's load failure, if any, so a
// caller like cmd/kindling can exit 1 per spec.md §6 without having to infer
// it from the first Evaluate call.
func (i *Interpreter) StartupError() error {
	if i.loadErr == nil {
		return nil
	}
	return i.loadErr.Err()
}

func (i *Interpreter) evaluate(source string) EvalOutcome {
	tokens, rerr := lexer.Lex(source)
	if rerr != nil {
		return EvalOutcome{ReadErr: rerr}
	}
	forms, rerr := parser.ParseAll(tokens, i.ctx)
	if rerr != nil {
		return EvalOutcome{ReadErr: rerr}
	}
	if len(forms) == 0 {
		return EvalOutcome{ReadErr: value.NewReadError(value.EmptyInput, -1, "no forms to evaluate")}
	}

	var last value.Value
	for _, form := range forms {
		expanded, rerr := readermacro.Expand(form, i.ctx)
		if rerr != nil {
			return EvalOutcome{ReadErr: rerr}
		}
		v, eerr := eval.Eval(expanded, i.ctx)
		if eerr != nil {
			return EvalOutcome{EvalErr: eerr}
		}
		last = v
	}
	return EvalOutcome{Value: last}
}
