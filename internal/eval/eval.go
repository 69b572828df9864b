// Package eval implements the tree-walking evaluator of spec.md §4.4: it
// takes a Value already through reader-macro expansion and a lexical
// Context, and produces a Value or an EvalError. The only looping construct
// is the explicit trampoline in Apply/sfLoop, used for `recur`;
// everything else recurses directly over the Value tree, in the style of
// the teacher's own Eval (step8_macros.go).
package eval

import "github.com/kindling-lang/kindling/internal/value"

// Eval evaluates v in ctx (spec.md §4.4).
func Eval(v value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	switch v.Kind {
	case value.KindSymbol:
		return ctx.Get(v.Sym)

	case value.KindVector:
		items, err := evalEach(v.List, ctx)
		if err != nil {
			return value.Value{}, err
		}
		return value.VectorFromSlice(items), nil

	case value.KindMap:
		keys, vals := v.Map.Pairs()
		ek, err := evalEach(keys, ctx)
		if err != nil {
			return value.Value{}, err
		}
		ev, err := evalEach(vals, ctx)
		if err != nil {
			return value.Value{}, err
		}
		pairs := make([]value.Value, 0, 2*len(ek))
		for i := range ek {
			pairs = append(pairs, ek[i], ev[i])
		}
		return value.MapVal(value.NewMap(pairs...)), nil

	case value.KindList:
		return evalList(v, ctx)

	default:
		// Nil, Bool, Int, Float, Char, Str, Keyword, BuiltIn, Special,
		// Macro, Function, Atom, Regex, RecurSentinel: self-evaluate.
		return v, nil
	}
}

func evalEach(items []value.Value, ctx *value.Context) ([]value.Value, *value.EvalError) {
	out := make([]value.Value, len(items))
	for i, it := range items {
		v, err := Eval(it, ctx)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func evalList(v value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(v.List) == 0 {
		return v, nil
	}

	head, err := Eval(v.List[0], ctx)
	if err != nil {
		return value.Value{}, err
	}
	rawArgs := v.List[1:]

	switch head.Kind {
	case value.KindSpecial:
		return evalSpecial(head.Special, rawArgs, ctx)

	case value.KindMacro:
		expansion, err := expandMacro(head.Macro, rawArgs, ctx)
		if err != nil {
			return value.Value{}, err
		}
		return Eval(expansion, ctx)

	case value.KindBuiltIn:
		args, err := evalEach(rawArgs, ctx)
		if err != nil {
			return value.Value{}, err
		}
		return callBuiltin(head.BuiltIn, args, ctx)

	case value.KindFunction:
		args, err := evalEach(rawArgs, ctx)
		if err != nil {
			return value.Value{}, err
		}
		return Apply(head.Function, args)

	case value.KindVector:
		args, err := evalEach(rawArgs, ctx)
		if err != nil {
			return value.Value{}, err
		}
		return indexVector(head, args)

	case value.KindMap:
		args, err := evalEach(rawArgs, ctx)
		if err != nil {
			return value.Value{}, err
		}
		return lookupMap(head, args)

	case value.KindSymbol, value.KindKeyword:
		args, err := evalEach(rawArgs, ctx)
		if err != nil {
			return value.Value{}, err
		}
		return lookupByKey(head, args)

	default:
		return value.Value{}, value.NewEvalError(value.NotEvalableError, "cannot call a value of this kind")
	}
}

func indexVector(v value.Value, args []value.Value) (value.Value, *value.EvalError) {
	if len(args) != 1 {
		return value.Value{}, value.Arityf("vector lookup takes exactly 1 argument, got %d", len(args))
	}
	if args[0].Kind != value.KindInt {
		return value.Value{}, value.InvalidArgf("vector lookup requires an integer index")
	}
	i := args[0].Int
	if i < 0 || i >= int64(len(v.List)) {
		return value.Value{}, value.NewEvalError(value.OutOfBoundsError, "index %d out of bounds for vector of length %d", i, len(v.List))
	}
	return v.List[i], nil
}

func lookupMap(v value.Value, args []value.Value) (value.Value, *value.EvalError) {
	if len(args) != 1 && len(args) != 2 {
		return value.Value{}, value.Arityf("map lookup takes 1 or 2 arguments, got %d", len(args))
	}
	if got, ok := v.Map.Get(args[0]); ok {
		return got, nil
	}
	if len(args) == 2 {
		return args[1], nil
	}
	return value.Nil, nil
}

// lookupByKey implements a Symbol/Keyword used as the head of an
// application: `(:a m)` / `(:a m default)` treats the invoking symbol or
// keyword as a key into the map given as the first argument.
func lookupByKey(key value.Value, args []value.Value) (value.Value, *value.EvalError) {
	if len(args) != 1 && len(args) != 2 {
		return value.Value{}, value.Arityf("keyword/symbol lookup takes 1 or 2 arguments, got %d", len(args))
	}
	var dflt value.Value = value.Nil
	if len(args) == 2 {
		dflt = args[1]
	}
	if args[0].Kind != value.KindMap {
		return dflt, nil
	}
	if got, ok := args[0].Map.Get(key); ok {
		return got, nil
	}
	return dflt, nil
}

// evalDo evaluates forms as an implicit `do`: every non-last form that
// evaluates to a RecurSentinel is a RecurMisuseError (spec.md §4.4); the
// last form's result is returned as-is (it may legitimately be a
// RecurSentinel, which the caller's trampoline inspects).
func evalDo(forms []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(forms) == 0 {
		return value.Nil, nil
	}
	for _, f := range forms[:len(forms)-1] {
		v, err := Eval(f, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if v.Kind == value.KindRecurSentinel {
			return value.Value{}, value.NewEvalError(value.RecurMisuseError, "recur used outside of tail position")
		}
	}
	return Eval(forms[len(forms)-1], ctx)
}
