package eval

import "github.com/kindling-lang/kindling/internal/value"

// BuiltinFunc implements one dotted built-in (spec.md §4.6). Arguments have
// already been evaluated left-to-right by the time a BuiltinFunc runs.
type BuiltinFunc func(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError)

// Builtins is filled in by internal/builtin's package init, mirroring the
// teacher's own `specialForms` registry (step8_macros.go): this package
// cannot import internal/builtin directly (builtin needs Eval/Apply to
// implement `.eval`/`.reduce`), so the wiring runs the other way, through
// this map.
var Builtins = map[value.BuiltinID]BuiltinFunc{}

func callBuiltin(id value.BuiltinID, args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	fn, ok := Builtins[id]
	if !ok {
		return value.Value{}, value.NewEvalError(value.CustomError, "built-in %s is not registered", id)
	}
	return fn(args, ctx)
}
