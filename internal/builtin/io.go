package builtin

import (
	"github.com/kindling-lang/kindling/internal/eval"
	"github.com/kindling-lang/kindling/internal/lexer"
	"github.com/kindling-lang/kindling/internal/parser"
	"github.com/kindling-lang/kindling/internal/readermacro"
	"github.com/kindling-lang/kindling/internal/value"
)

func init() {
	eval.Builtins[value.BuiltinPrint] = biPrint
	eval.Builtins[value.BuiltinPrStr] = biPrStr
	eval.Builtins[value.BuiltinStr] = biStr
	eval.Builtins[value.BuiltinReadString] = biReadString
	eval.Builtins[value.BuiltinEval] = biEval
}

// biPrint appends args[0]'s printed form to the interpreter's output sink
// (spec.md §4.6). The sink is injectable via kindling.WithOutput; Context
// carries a shared reference to it (spec.md §5).
func biPrint(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 1 {
		return value.Value{}, value.Arityf(".print takes exactly 1 argument, got %d", len(args))
	}
	out := ctx.Output()
	if out == nil {
		return value.Nil, nil
	}
	if _, werr := out.Write([]byte(value.Print(args[0], ctx, false))); werr != nil {
		return value.Value{}, value.NewEvalError(value.CustomError, "write to output sink failed: %v", werr)
	}
	return value.Nil, nil
}

func printJoin(args []value.Value, ctx *value.Context, readable bool, sep string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += sep
		}
		out += value.Print(a, ctx, readable)
	}
	return out
}

func biPrStr(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	return value.Str(printJoin(args, ctx, true, " ")), nil
}

func biStr(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	return value.Str(printJoin(args, ctx, false, "")), nil
}

// biReadString reads a single form from text, running it through the same
// lex/parse/reader-macro-expand pipeline `kindling.Evaluate` uses, so the
// result is ready to hand to `.eval` (spec.md §4.6, grounded on
// step9_try/core.go's readString).
func biReadString(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 1 || args[0].Kind != value.KindStr {
		return value.Value{}, value.InvalidArgf(".read-string requires a single string argument")
	}
	toks, rerr := lexer.Lex(args[0].Str)
	if rerr != nil {
		return value.Value{}, value.NewEvalError(value.CustomError, "read-string: %v", rerr)
	}
	parsed, rerr := parser.ParseOne(toks, ctx)
	if rerr != nil {
		return value.Value{}, value.NewEvalError(value.CustomError, "read-string: %v", rerr)
	}
	expanded, rerr := readermacro.Expand(parsed, ctx)
	if rerr != nil {
		return value.Value{}, value.NewEvalError(value.CustomError, "read-string: %v", rerr)
	}
	return expanded, nil
}

// biEval evaluates its argument in the root context, matching the MAL
// lineage's `eval` (step9_try/core.go), which always evaluates against the
// top-level environment rather than the caller's local frame.
func biEval(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 1 {
		return value.Value{}, value.Arityf(".eval takes exactly 1 argument, got %d", len(args))
	}
	return eval.Eval(args[0], ctx.Root())
}
