package builtin

import (
	"math/rand"

	"github.com/kindling-lang/kindling/internal/eval"
	"github.com/kindling-lang/kindling/internal/value"
)

func init() {
	eval.Builtins[value.BuiltinList] = biList
	eval.Builtins[value.BuiltinConcat] = biConcat
	eval.Builtins[value.BuiltinSeq] = biSeq
	eval.Builtins[value.BuiltinFirst] = biFirst
	eval.Builtins[value.BuiltinNext] = biNext
	eval.Builtins[value.BuiltinRest] = biRest
	eval.Builtins[value.BuiltinConj] = biConj
	eval.Builtins[value.BuiltinReduce] = biReduce
	eval.Builtins[value.BuiltinRand] = biRand
	eval.Builtins[value.BuiltinNth] = biNth
	eval.Builtins[value.BuiltinSecond] = biSecond
	eval.Builtins[value.BuiltinLast] = biLast
}

// biList is an N-ary list constructor, needed by the syntax-quote expander's
// generated tagged-data code as well as user code (spec.md §4.6 lists
// `.list` among the dotted built-ins without further qualifying its arity;
// treated the same as MAL's `list`, step9_try/core.go's mkList).
func biList(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	return value.ListFromSlice(append([]value.Value(nil), args...)), nil
}

// seqItems extracts the underlying elements of any seqable value, used by
// `.seq`/`.first`/`.rest`/`.next`/`.concat` (spec.md §4.6).
func seqItems(v value.Value) ([]value.Value, *value.EvalError) {
	switch v.Kind {
	case value.KindNil:
		return nil, nil
	case value.KindList, value.KindVector:
		return v.List, nil
	case value.KindStr:
		r := []rune(v.Str)
		items := make([]value.Value, len(r))
		for i, c := range r {
			items[i] = value.Char(c)
		}
		return items, nil
	case value.KindMap:
		keys, vals := v.Map.Pairs()
		items := make([]value.Value, len(keys))
		for i := range keys {
			items[i] = value.Vector(keys[i], vals[i])
		}
		return items, nil
	default:
		return nil, value.InvalidArgf("expected a seqable value (nil, list, vector, string or map)")
	}
}

func biConcat(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	var out []value.Value
	for _, a := range args {
		items, err := seqItems(a)
		if err != nil {
			return value.Value{}, err
		}
		out = append(out, items...)
	}
	return value.ListFromSlice(out), nil
}

func biSeq(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 1 {
		return value.Value{}, value.Arityf(".seq takes exactly 1 argument, got %d", len(args))
	}
	items, err := seqItems(args[0])
	if err != nil {
		return value.Value{}, err
	}
	if len(items) == 0 {
		return value.Nil, nil
	}
	return value.ListFromSlice(items), nil
}

func biFirst(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 1 {
		return value.Value{}, value.Arityf(".first takes exactly 1 argument, got %d", len(args))
	}
	items, err := seqItems(args[0])
	if err != nil {
		return value.Value{}, err
	}
	if len(items) == 0 {
		return value.Nil, nil
	}
	return items[0], nil
}

func biRest(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 1 {
		return value.Value{}, value.Arityf(".rest takes exactly 1 argument, got %d", len(args))
	}
	items, err := seqItems(args[0])
	if err != nil {
		return value.Value{}, err
	}
	if len(items) == 0 {
		return value.List(), nil
	}
	return value.ListFromSlice(append([]value.Value(nil), items[1:]...)), nil
}

// biNext is `.rest` except exhaustion yields nil instead of an empty list
// (spec.md §4.6).
func biNext(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 1 {
		return value.Value{}, value.Arityf(".next takes exactly 1 argument, got %d", len(args))
	}
	items, err := seqItems(args[0])
	if err != nil {
		return value.Value{}, err
	}
	if len(items) <= 1 {
		return value.Nil, nil
	}
	return value.ListFromSlice(append([]value.Value(nil), items[1:]...)), nil
}

// biConj is polymorphic on its collection argument: list prepends, vector
// appends, map merges 2-vector entries, string/nil conj as a list
// (spec.md §4.6).
func biConj(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	if len(args) < 1 {
		return value.Value{}, value.Arityf(".conj takes at least 1 argument, got 0")
	}
	coll, items := args[0], args[1:]
	switch coll.Kind {
	case value.KindVector:
		return value.VectorFromSlice(append(append([]value.Value(nil), coll.List...), items...)), nil
	case value.KindMap:
		m := coll.Map.Clone()
		for _, it := range items {
			if it.Kind != value.KindVector || len(it.List) != 2 {
				return value.Value{}, value.InvalidArgf(".conj onto a map requires 2-vector entries")
			}
			m.Set(it.List[0], it.List[1])
		}
		return value.MapVal(m), nil
	case value.KindNil, value.KindList, value.KindStr:
		var base []value.Value
		if coll.Kind == value.KindList {
			base = coll.List
		} else if coll.Kind == value.KindStr {
			var err *value.EvalError
			base, err = seqItems(coll)
			if err != nil {
				return value.Value{}, err
			}
		}
		out := make([]value.Value, 0, len(items)+len(base))
		for i := len(items) - 1; i >= 0; i-- {
			out = append(out, items[i])
		}
		out = append(out, base...)
		return value.ListFromSlice(out), nil
	default:
		return value.Value{}, value.InvalidArgf(".conj requires a list, vector, map, string or nil")
	}
}

// callable applies fnVal to args, resolving Function and BuiltIn callables
// (the only two kinds `.reduce`/`.swap!` need to invoke); Special and Macro
// are not first-class callable values.
func callable(fnVal value.Value, args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	switch fnVal.Kind {
	case value.KindFunction:
		return eval.Apply(fnVal.Function, args)
	case value.KindBuiltIn:
		fn, ok := eval.Builtins[fnVal.BuiltIn]
		if !ok {
			return value.Value{}, value.NewEvalError(value.CustomError, "built-in %s is not registered", fnVal.BuiltIn)
		}
		return fn(args, ctx)
	default:
		return value.Value{}, value.InvalidArgf("expected a function")
	}
}

// biReduce implements a standard two- or three-argument left fold
// (spec.md §4.6).
func biReduce(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 2 && len(args) != 3 {
		return value.Value{}, value.Arityf(".reduce takes 2 or 3 arguments, got %d", len(args))
	}
	fn := args[0]
	var acc value.Value
	var coll value.Value
	if len(args) == 3 {
		acc = args[1]
		coll = args[2]
	} else {
		items, err := seqItems(args[1])
		if err != nil {
			return value.Value{}, err
		}
		if len(items) == 0 {
			return callable(fn, nil, ctx)
		}
		acc = items[0]
		coll = value.ListFromSlice(items[1:])
	}
	items, err := seqItems(coll)
	if err != nil {
		return value.Value{}, err
	}
	for _, it := range items {
		acc, err = callable(fn, []value.Value{acc, it}, ctx)
		if err != nil {
			return value.Value{}, err
		}
	}
	return acc, nil
}

func biRand(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 0 {
		return value.Value{}, value.Arityf(".rand takes no arguments, got %d", len(args))
	}
	return value.Float(rand.Float64()), nil
}

func biNth(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 2 {
		return value.Value{}, value.Arityf(".nth takes exactly 2 arguments, got %d", len(args))
	}
	items, err := seqItems(args[0])
	if err != nil {
		return value.Value{}, err
	}
	if args[1].Kind != value.KindInt {
		return value.Value{}, value.InvalidArgf(".nth's second argument must be an integer")
	}
	i := args[1].Int
	if i < 0 || i >= int64(len(items)) {
		return value.Value{}, value.NewEvalError(value.OutOfBoundsError, "index %d out of bounds for a sequence of length %d", i, len(items))
	}
	return items[i], nil
}

func biSecond(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 1 {
		return value.Value{}, value.Arityf(".second takes exactly 1 argument, got %d", len(args))
	}
	items, err := seqItems(args[0])
	if err != nil {
		return value.Value{}, err
	}
	if len(items) < 2 {
		return value.Nil, nil
	}
	return items[1], nil
}

func biLast(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 1 {
		return value.Value{}, value.Arityf(".last takes exactly 1 argument, got %d", len(args))
	}
	items, err := seqItems(args[0])
	if err != nil {
		return value.Value{}, err
	}
	if len(items) == 0 {
		return value.Nil, nil
	}
	return items[len(items)-1], nil
}
