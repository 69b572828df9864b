package builtin

import (
	"github.com/kindling-lang/kindling/internal/eval"
	"github.com/kindling-lang/kindling/internal/value"
)

func init() {
	eval.Builtins[value.BuiltinAtom] = biAtom
	eval.Builtins[value.BuiltinAtomQ] = biAtomQ
	eval.Builtins[value.BuiltinDeref] = biDeref
	eval.Builtins[value.BuiltinReset] = biReset
	eval.Builtins[value.BuiltinSwap] = biSwap
}

// Atoms are a single mutable reference cell restored from the MAL lineage
// (SPEC_FULL.md §6, grounded on step9_try/core.go's atom/atom?/deref/
// reset!/swap!).
func biAtom(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 1 {
		return value.Value{}, value.Arityf(".atom takes exactly 1 argument, got %d", len(args))
	}
	return value.AtomVal(&value.Atom{Value: args[0]}), nil
}

func biAtomQ(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 1 {
		return value.Value{}, value.Arityf(".atom? takes exactly 1 argument, got %d", len(args))
	}
	return value.Bool_(args[0].Kind == value.KindAtom), nil
}

func biDeref(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 1 {
		return value.Value{}, value.Arityf(".deref takes exactly 1 argument, got %d", len(args))
	}
	if args[0].Kind != value.KindAtom {
		return value.Value{}, value.InvalidArgf(".deref requires an atom")
	}
	return args[0].Atom.Value, nil
}

func biReset(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 2 {
		return value.Value{}, value.Arityf(".reset! takes exactly 2 arguments, got %d", len(args))
	}
	if args[0].Kind != value.KindAtom {
		return value.Value{}, value.InvalidArgf(".reset!'s first argument must be an atom")
	}
	args[0].Atom.Value = args[1]
	return args[1], nil
}

func biSwap(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(args) < 2 {
		return value.Value{}, value.Arityf(".swap! takes at least 2 arguments, got %d", len(args))
	}
	if args[0].Kind != value.KindAtom {
		return value.Value{}, value.InvalidArgf(".swap!'s first argument must be an atom")
	}
	callArgs := append([]value.Value{args[0].Atom.Value}, args[2:]...)
	next, err := callable(args[1], callArgs, ctx)
	if err != nil {
		return value.Value{}, err
	}
	args[0].Atom.Value = next
	return next, nil
}
