package eval

import "github.com/kindling-lang/kindling/internal/value"

// Apply calls fn with already-evaluated args, implementing the arity
// selection and recur trampoline of spec.md §4.4's "Function application"
// and "loop trampoline" paragraphs, grounded on the teacher's own
// callHelper/apply pair (step9_try.go) generalized to multi-arity.
//
// Design-note open question (spec.md §9): the reference source trampolines
// fn-recur and loop-recur through different rebinding frames; this
// implementation always rebinds into a FRESH child of the function's
// captured context (never mutates the previous frame in place), uniformly
// for both paths, and is tested against scenario 5 (sum 1..10 via loop).
func Apply(fn *value.Function, args []value.Value) (value.Value, *value.EvalError) {
	for {
		arity, err := selectArity(fn, len(args))
		if err != nil {
			return value.Value{}, err
		}

		frame := fn.Captured.Child()
		bindArgs(frame, arity.Params, arity.Variadic, arity.HasVariadic, args)

		result, err := evalDo(arity.Body, frame)
		if err != nil {
			return value.Value{}, err
		}
		if result.Kind != value.KindRecurSentinel {
			return result, nil
		}
		expected := len(arity.Params)
		if arity.HasVariadic {
			expected++
		}
		if len(result.Recur.Bindings) != expected {
			return value.Value{}, value.Arityf("recur passed %d values, %s expects %d", len(result.Recur.Bindings), fnLabel(fn), expected)
		}
		args = result.Recur.Bindings
	}
}

func fnLabel(fn *value.Function) string {
	if fn.Name != "" {
		return fn.Name
	}
	return "function"
}

// selectArity picks the Arity matching n positional args: an exact-count
// non-variadic arity is preferred, otherwise the first variadic arity whose
// fixed-parameter count is satisfied.
func selectArity(fn *value.Function, n int) (value.Arity, *value.EvalError) {
	for _, a := range fn.Arities {
		if !a.HasVariadic && len(a.Params) == n {
			return a, nil
		}
	}
	for _, a := range fn.Arities {
		if a.HasVariadic && n >= len(a.Params) {
			return a, nil
		}
	}
	return value.Arity{}, value.Arityf("%s does not accept %d arguments", fnLabel(fn), n)
}

func bindArgs(frame *value.Context, params []value.SymbolID, variadic value.SymbolID, hasVariadic bool, args []value.Value) {
	for i, p := range params {
		frame.Set(p, args[i])
	}
	if hasVariadic {
		frame.Set(variadic, value.ListFromSlice(append([]value.Value(nil), args[len(params):]...)))
	}
}

func arityMatches(fixed int, variadic bool, n int) bool {
	if variadic {
		return n >= fixed
	}
	return n == fixed
}

func arityDescription(fixed int, variadic bool) string {
	if variadic {
		return "at least " + itoa(fixed) + " arguments"
	}
	return "exactly " + itoa(fixed) + " arguments"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// seqFirst implements the `first` special form's contract (spec.md §4.6's
// `.first`, reused here since `first`/`rest`/`cons` are bootstrapping
// special forms over the same sequence shapes).
func seqFirst(v value.Value) (value.Value, *value.EvalError) {
	switch v.Kind {
	case value.KindNil:
		return value.Nil, nil
	case value.KindList, value.KindVector:
		if len(v.List) == 0 {
			return value.Nil, nil
		}
		return v.List[0], nil
	case value.KindStr:
		r := []rune(v.Str)
		if len(r) == 0 {
			return value.Nil, nil
		}
		return value.Char(r[0]), nil
	case value.KindMap:
		keys, vals := v.Map.Pairs()
		if len(keys) == 0 {
			return value.Nil, nil
		}
		return value.Vector(keys[0], vals[0]), nil
	default:
		return value.Value{}, value.InvalidArgf("first requires a seqable value")
	}
}

// seqRest always returns a (possibly empty) List (spec.md §4.6's `.rest`).
func seqRest(v value.Value) (value.Value, *value.EvalError) {
	switch v.Kind {
	case value.KindNil:
		return value.List(), nil
	case value.KindList, value.KindVector:
		if len(v.List) == 0 {
			return value.List(), nil
		}
		return value.ListFromSlice(append([]value.Value(nil), v.List[1:]...)), nil
	case value.KindStr:
		r := []rune(v.Str)
		if len(r) == 0 {
			return value.List(), nil
		}
		items := make([]value.Value, len(r)-1)
		for i, c := range r[1:] {
			items[i] = value.Char(c)
		}
		return value.ListFromSlice(items), nil
	case value.KindMap:
		keys, vals := v.Map.Pairs()
		if len(keys) == 0 {
			return value.List(), nil
		}
		items := make([]value.Value, len(keys)-1)
		for i := range keys[1:] {
			items[i] = value.Vector(keys[i+1], vals[i+1])
		}
		return value.ListFromSlice(items), nil
	default:
		return value.Value{}, value.InvalidArgf("rest requires a seqable value")
	}
}
