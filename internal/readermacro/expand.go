// Package readermacro rewrites the ReaderMacro markers the parser leaves in
// place (quote, syntax-quote, unquote, unquote-splice) into plain calls on
// ordinary Values, per spec.md §4.3. After Expand runs, no KindReaderMacro
// node survives anywhere in the tree.
package readermacro

import "github.com/kindling-lang/kindling/internal/value"

// Expand rewrites every ReaderMacro node in v. Unquote/UnquoteSplice found
// outside any enclosing SyntaxQuote is a MismatchedReaderMacroError.
func Expand(v value.Value, ctx *value.Context) (value.Value, *value.ReadError) {
	return expandTree(v, ctx)
}

func expandTree(v value.Value, ctx *value.Context) (value.Value, *value.ReadError) {
	switch v.Kind {
	case value.KindList:
		items, err := expandEach(v.List, ctx)
		if err != nil {
			return value.Value{}, err
		}
		return value.ListFromSlice(items), nil
	case value.KindVector:
		items, err := expandEach(v.List, ctx)
		if err != nil {
			return value.Value{}, err
		}
		return value.VectorFromSlice(items), nil
	case value.KindMap:
		keys, vals := v.Map.Pairs()
		ek, err := expandEach(keys, ctx)
		if err != nil {
			return value.Value{}, err
		}
		ev, err := expandEach(vals, ctx)
		if err != nil {
			return value.Value{}, err
		}
		pairs := make([]value.Value, 0, 2*len(ek))
		for i := range ek {
			pairs = append(pairs, ek[i], ev[i])
		}
		return value.MapVal(value.NewMap(pairs...)), nil
	case value.KindReaderMacro:
		switch v.Reader.Kind {
		case value.RMQuote:
			return quoteForm(literalize(v.Reader.Inner, ctx)), nil
		case value.RMSyntaxQuote:
			return expandSyntaxQuote(v.Reader.Inner, 1, ctx), nil
		case value.RMUnquote, value.RMUnquoteSplice:
			return value.Value{}, value.NewReadError(value.MismatchedReaderMacro, -1,
				"%s used outside of a syntax-quote", v.Reader.Kind)
		default:
			return value.Value{}, value.NewReadError(value.MismatchedReaderMacro, -1, "unknown reader macro")
		}
	default:
		return v, nil
	}
}

func expandEach(items []value.Value, ctx *value.Context) ([]value.Value, *value.ReadError) {
	out := make([]value.Value, len(items))
	for i, it := range items {
		v, err := expandTree(it, ctx)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// quoteForm builds `(quote x)`, using the Special `quote` value directly as
// the head (spec.md §3: special forms are their own Value kind, not a
// symbol resolved through a binding).
func quoteForm(x value.Value) value.Value {
	return value.List(value.SpecialVal(value.SpecialQuote), x)
}

func listWrap(x value.Value) value.Value {
	return value.List(value.BuiltInVal(value.BuiltinList), x)
}

// seqConcatForm builds `(.seq (.concat slot1 slot2 ...))`, the program-builder
// shape spec.md §4.3/§8 requires for every syntax-quoted List/Vector.
func seqConcatForm(slots []value.Value) value.Value {
	concat := append([]value.Value{value.BuiltInVal(value.BuiltinConcat)}, slots...)
	return value.List(value.BuiltInVal(value.BuiltinSeq), value.ListFromSlice(concat))
}

// expandSyntaxQuote implements spec.md §4.3's rewrite rules with an explicit
// quote-depth counter (spec.md §9 Design Notes): depth starts at 1 for the
// content directly inside a SyntaxQuote, increments on a nested
// SyntaxQuote, and only an Unquote/UnquoteSplice found at depth 1 cancels
// (splices its argument in directly); at any deeper depth the reader-macro
// node is instead reconstructed as literal tagged data, since a doubly
// nested backtick is itself ordinary data to the outer one.
func expandSyntaxQuote(x value.Value, depth int, ctx *value.Context) value.Value {
	switch x.Kind {
	case value.KindSymbol:
		return quoteForm(x)

	case value.KindList, value.KindVector:
		slots := make([]value.Value, len(x.List))
		for i, ai := range x.List {
			slots[i] = syntaxQuoteSlot(ai, depth, ctx)
		}
		return seqConcatForm(slots)

	case value.KindReaderMacro:
		switch x.Reader.Kind {
		case value.RMSyntaxQuote:
			return expandSyntaxQuote(x.Reader.Inner, depth+1, ctx)
		case value.RMUnquote:
			if depth == 1 {
				v, _ := expandTree(x.Reader.Inner, ctx)
				return v
			}
			return taggedForm(ctx, "unquote", expandSyntaxQuote(x.Reader.Inner, depth-1, ctx))
		case value.RMUnquoteSplice:
			if depth == 1 {
				v, _ := expandTree(x.Reader.Inner, ctx)
				return v
			}
			return taggedForm(ctx, "unquote-splice", expandSyntaxQuote(x.Reader.Inner, depth-1, ctx))
		case value.RMQuote:
			return value.List(value.BuiltInVal(value.BuiltinList),
				quoteForm(value.SpecialVal(value.SpecialQuote)),
				quoteForm(literalize(x.Reader.Inner, ctx)))
		default:
			return x
		}

	default:
		// number, string, keyword, char, nil, bool: "passes through
		// unchanged" (spec.md §4.3).
		return literalize(x, ctx)
	}
}

// syntaxQuoteSlot implements the per-element rule inside a syntax-quoted
// List/Vector: a direct Unquote cancels to `(.list y)`, a direct
// UnquoteSplice cancels to bare `y`, anything else recurses and gets
// `.list`-wrapped — all only at depth 1; deeper, the element is expanded
// (and, for Unquote/UnquoteSplice, rebuilt as data) like any other form.
func syntaxQuoteSlot(ai value.Value, depth int, ctx *value.Context) value.Value {
	if ai.Kind == value.KindReaderMacro && depth == 1 {
		switch ai.Reader.Kind {
		case value.RMUnquote:
			v, _ := expandTree(ai.Reader.Inner, ctx)
			return listWrap(v)
		case value.RMUnquoteSplice:
			v, _ := expandTree(ai.Reader.Inner, ctx)
			return v
		}
	}
	return listWrap(expandSyntaxQuote(ai, depth, ctx))
}

// taggedForm builds CODE (to be run as part of the enclosing syntax-quote's
// generated program) that, when evaluated, reconstructs the 2-element list
// `(name innerResult)` a deeper, uncancelled reader-macro node would print
// as, e.g. `(unquote y)`. inner is itself already-generated code.
func taggedForm(ctx *value.Context, name string, inner value.Value) value.Value {
	sym := value.Symbol(ctx.InternSymbol(name))
	return value.List(value.BuiltInVal(value.BuiltinList), quoteForm(sym), inner)
}

// literalize turns v into inert literal data: nested ReaderMacro markers
// are eliminated (so the invariant "no ReaderMacro survives expansion"
// holds) by reconstructing them as the tagged-list shape they would print
// as, but WITHOUT applying any unquote-cancellation semantics — a plain
// `quote`'s body is taken literally (spec.md §4.3), never evaluated as a
// program-builder.
func literalize(v value.Value, ctx *value.Context) value.Value {
	switch v.Kind {
	case value.KindList:
		items := make([]value.Value, len(v.List))
		for i, it := range v.List {
			items[i] = literalize(it, ctx)
		}
		return value.ListFromSlice(items)
	case value.KindVector:
		items := make([]value.Value, len(v.List))
		for i, it := range v.List {
			items[i] = literalize(it, ctx)
		}
		return value.VectorFromSlice(items)
	case value.KindMap:
		keys, vals := v.Map.Pairs()
		pairs := make([]value.Value, 0, 2*len(keys))
		for i := range keys {
			pairs = append(pairs, literalize(keys[i], ctx), literalize(vals[i], ctx))
		}
		return value.MapVal(value.NewMap(pairs...))
	case value.KindReaderMacro:
		var name string
		switch v.Reader.Kind {
		case value.RMQuote:
			name = "quote"
		case value.RMSyntaxQuote:
			name = "syntax-quote"
		case value.RMUnquote:
			name = "unquote"
		case value.RMUnquoteSplice:
			name = "unquote-splice"
		default:
			return v
		}
		return value.List(value.Symbol(ctx.InternSymbol(name)), literalize(v.Reader.Inner, ctx))
	default:
		return v
	}
}
