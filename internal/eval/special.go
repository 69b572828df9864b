package eval

import "github.com/kindling-lang/kindling/internal/value"

// evalSpecial dispatches a Special-headed list's unevaluated argument forms
// (spec.md §4.4); each case decides for itself when, or whether, to
// evaluate any of them.
func evalSpecial(s value.SpecialForm, args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	switch s {
	case value.SpecialQuote:
		return sfQuote(args)
	case value.SpecialIf:
		return sfIf(args, ctx)
	case value.SpecialDo:
		return evalDo(args, ctx)
	case value.SpecialDef:
		return sfDef(args, ctx)
	case value.SpecialLet:
		return sfLet(args, ctx)
	case value.SpecialFn:
		return sfFn(args, ctx)
	case value.SpecialDefmacro:
		return sfDefmacro(args, ctx)
	case value.SpecialLoop:
		return sfLoop(args, ctx)
	case value.SpecialRecur:
		return sfRecur(args, ctx)
	case value.SpecialCons:
		return sfCons(args, ctx)
	case value.SpecialFirst:
		return sfFirst(args, ctx)
	case value.SpecialRest:
		return sfRest(args, ctx)
	default:
		return value.Value{}, value.NewEvalError(value.CustomError, "unknown special form")
	}
}

func sfQuote(args []value.Value) (value.Value, *value.EvalError) {
	if len(args) != 1 {
		return value.Value{}, value.Arityf("quote takes exactly 1 argument, got %d", len(args))
	}
	return args[0], nil
}

func sfIf(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 2 && len(args) != 3 {
		return value.Value{}, value.Arityf("if takes 2 or 3 arguments, got %d", len(args))
	}
	test, err := Eval(args[0], ctx)
	if err != nil {
		return value.Value{}, err
	}
	if test.Truthy() {
		return Eval(args[1], ctx)
	}
	if len(args) == 3 {
		return Eval(args[2], ctx)
	}
	return value.Nil, nil
}

func sfDef(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 1 && len(args) != 2 {
		return value.Value{}, value.Arityf("def takes 1 or 2 arguments, got %d", len(args))
	}
	if args[0].Kind != value.KindSymbol {
		return value.Value{}, value.InvalidArgf("def's first argument must be a symbol")
	}
	if len(args) == 1 {
		ctx.DefUnbound(args[0].Sym)
		return value.Nil, nil
	}
	v, err := Eval(args[1], ctx)
	if err != nil {
		return value.Value{}, err
	}
	ctx.Def(args[0].Sym, v)
	return v, nil
}

// bindPairs evaluates a let/loop bindings vector sequentially into frame,
// each pair seeing the ones already bound (spec.md §4.4).
func bindPairs(bindings []value.Value, frame *value.Context) *value.EvalError {
	if len(bindings)%2 != 0 {
		return value.InvalidArgf("bindings vector must have an even number of forms, got %d", len(bindings))
	}
	for i := 0; i+1 < len(bindings); i += 2 {
		if bindings[i].Kind != value.KindSymbol {
			return value.InvalidArgf("binding name must be a symbol")
		}
		v, err := Eval(bindings[i+1], frame)
		if err != nil {
			return err
		}
		frame.Set(bindings[i].Sym, v)
	}
	return nil
}

func sfLet(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(args) < 1 {
		return value.Value{}, value.Arityf("let requires a bindings vector, got no arguments")
	}
	if args[0].Kind != value.KindVector {
		return value.Value{}, value.InvalidArgf("let's first argument must be a bindings vector")
	}
	frame := ctx.Child()
	if err := bindPairs(args[0].List, frame); err != nil {
		return value.Value{}, err
	}
	return evalDo(args[1:], frame)
}

// parseArity reads one `[params...] body...` arity, supporting a trailing
// `& rest` parameter for variadic functions (grounded on the teacher's own
// `&`-tail handling in sfFn, step9_try.go).
func parseArity(forms []value.Value, ctx *value.Context) (value.Arity, *value.EvalError) {
	if len(forms) < 1 || forms[0].Kind != value.KindVector {
		return value.Arity{}, value.InvalidArgf("expected a parameter vector")
	}
	params := forms[0].List
	a := value.Arity{Body: forms[1:]}
	for i := 0; i < len(params); i++ {
		sym := params[i]
		if sym.Kind != value.KindSymbol {
			return value.Arity{}, value.InvalidArgf("function parameters must be symbols")
		}
		if ctx.SymbolName(sym.Sym) == "&" {
			if i != len(params)-2 {
				return value.Arity{}, value.InvalidArgf("exactly one parameter must follow '&'")
			}
			tail := params[i+1]
			if tail.Kind != value.KindSymbol {
				return value.Arity{}, value.InvalidArgf("variadic parameter must be a symbol")
			}
			a.Variadic = tail.Sym
			a.HasVariadic = true
			break
		}
		a.Params = append(a.Params, sym.Sym)
	}
	return a, nil
}

func sfFn(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(args) < 1 {
		return value.Value{}, value.Arityf("fn requires at least a parameter vector, got no arguments")
	}
	name := ""
	rest := args
	if args[0].Kind == value.KindSymbol {
		name = ctx.SymbolName(args[0].Sym)
		rest = args[1:]
	}
	fn := &value.Function{Name: name, Captured: ctx}
	if len(rest) == 0 {
		return value.Value{}, value.Arityf("fn requires at least one arity")
	}
	if rest[0].Kind == value.KindVector {
		a, err := parseArity(rest, ctx)
		if err != nil {
			return value.Value{}, err
		}
		fn.Arities = []value.Arity{a}
	} else {
		for _, form := range rest {
			if form.Kind != value.KindList || len(form.List) < 1 {
				return value.Value{}, value.InvalidArgf("each fn arity must be a ([params] body...) list")
			}
			a, err := parseArity(form.List, ctx)
			if err != nil {
				return value.Value{}, err
			}
			fn.Arities = append(fn.Arities, a)
		}
	}
	return value.FunctionVal(fn), nil
}

func sfDefmacro(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(args) < 2 {
		return value.Value{}, value.Arityf("defmacro requires a name and a parameter vector, got %d arguments", len(args))
	}
	if args[0].Kind != value.KindSymbol {
		return value.Value{}, value.InvalidArgf("defmacro's first argument must be a symbol")
	}
	a, err := parseArity(args[1:], ctx)
	if err != nil {
		return value.Value{}, err
	}
	name := ctx.SymbolName(args[0].Sym)
	m := &value.Macro{Name: name, Params: a.Params, Variadic: a.Variadic, HasVariadic: a.HasVariadic, Body: a.Body}
	ctx.DefMacro(args[0].Sym, m)
	return value.MacroVal(m), nil
}

func sfLoop(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(args) < 1 || args[0].Kind != value.KindVector {
		return value.Value{}, value.InvalidArgf("loop's first argument must be a bindings vector")
	}
	bindings := args[0].List
	body := args[1:]

	frame := ctx.Child()
	if err := bindPairs(bindings, frame); err != nil {
		return value.Value{}, err
	}
	names := make([]value.SymbolID, 0, len(bindings)/2)
	for i := 0; i+1 < len(bindings); i += 2 {
		names = append(names, bindings[i].Sym)
	}

	for {
		result, err := evalDo(body, frame)
		if err != nil {
			return value.Value{}, err
		}
		if result.Kind != value.KindRecurSentinel {
			return result, nil
		}
		if len(result.Recur.Bindings) != len(names) {
			return value.Value{}, value.Arityf("recur passed %d values, loop expects %d", len(result.Recur.Bindings), len(names))
		}
		frame = ctx.Child()
		for i, id := range names {
			frame.Set(id, result.Recur.Bindings[i])
		}
	}
}

func sfRecur(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	vals, err := evalEach(args, ctx)
	if err != nil {
		return value.Value{}, err
	}
	return value.RecurVal(vals), nil
}

func sfCons(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 2 {
		return value.Value{}, value.Arityf("cons takes exactly 2 arguments, got %d", len(args))
	}
	head, err := Eval(args[0], ctx)
	if err != nil {
		return value.Value{}, err
	}
	tail, err := Eval(args[1], ctx)
	if err != nil {
		return value.Value{}, err
	}
	switch tail.Kind {
	case value.KindNil:
		return value.List(head), nil
	case value.KindList, value.KindVector:
		items := make([]value.Value, 0, len(tail.List)+1)
		items = append(items, head)
		items = append(items, tail.List...)
		return value.ListFromSlice(items), nil
	default:
		return value.Value{}, value.InvalidArgf("cons's second argument must be a sequence or nil")
	}
}

func sfFirst(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 1 {
		return value.Value{}, value.Arityf("first takes exactly 1 argument, got %d", len(args))
	}
	v, err := Eval(args[0], ctx)
	if err != nil {
		return value.Value{}, err
	}
	return seqFirst(v)
}

func sfRest(args []value.Value, ctx *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 1 {
		return value.Value{}, value.Arityf("rest takes exactly 1 argument, got %d", len(args))
	}
	v, err := Eval(args[0], ctx)
	if err != nil {
		return value.Value{}, err
	}
	return seqRest(v)
}

// expandMacro implements spec.md §4.5: parameters bind to unevaluated
// argument forms in a frame parented at the CALLER's context (macros
// capture no context of their own).
func expandMacro(m *value.Macro, args []value.Value, callerCtx *value.Context) (value.Value, *value.EvalError) {
	if !arityMatches(len(m.Params), m.HasVariadic, len(args)) {
		return value.Value{}, value.Arityf("%s takes %s, got %d arguments", m.Name, arityDescription(len(m.Params), m.HasVariadic), len(args))
	}
	frame := callerCtx.Child()
	bindArgs(frame, m.Params, m.Variadic, m.HasVariadic, args)
	return evalDo(m.Body, frame)
}
