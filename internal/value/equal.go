package value

// Equal implements the `.=` structural equality law (spec.md §4.6, §8
// scenario 3): list and vector compare elementwise (cross-kind, so a List
// can equal a Vector with the same elements), symbols/keywords compare by
// interned id, functions/macros/builtins/specials by identity, numbers
// require the SAME kind (Int(1) != Float(1.0) under `=`; that promotion
// only happens for `.==`).
func Equal(a, b Value) bool {
	if a.Kind == KindList || a.Kind == KindVector {
		if b.Kind != KindList && b.Kind != KindVector {
			return false
		}
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !Equal(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	}

	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KindNil:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindInt:
		return a.Int == b.Int
	case KindFloat:
		return a.Float == b.Float
	case KindChar:
		return a.Char == b.Char
	case KindStr:
		return a.Str == b.Str
	case KindRegex:
		return a.Str == b.Str
	case KindKeyword, KindSymbol:
		return a.Sym == b.Sym
	case KindMap:
		return mapEqual(a.Map, b.Map)
	case KindFunction:
		return a.Function == b.Function
	case KindBuiltIn:
		return a.BuiltIn == b.BuiltIn
	case KindSpecial:
		return a.Special == b.Special
	case KindMacro:
		return a.Macro == b.Macro
	case KindAtom:
		return a.Atom == b.Atom
	case KindRecurSentinel:
		return a.Recur == b.Recur
	case KindReaderMacro:
		return a.Reader.Kind == b.Reader.Kind && Equal(a.Reader.Inner, b.Reader.Inner)
	default:
		return false
	}
}

func mapEqual(a, b *MapValue) bool {
	if a.Len() != b.Len() {
		return false
	}
	aKeys, aVals := a.Pairs()
	for i, k := range aKeys {
		bv, ok := b.Get(k)
		if !ok || !Equal(aVals[i], bv) {
			return false
		}
	}
	return true
}

// NumericEqual implements `.==`: numeric equality with Int/Float
// cross-promotion (spec.md §4.6, §3).
func NumericEqual(a, b Value) (bool, bool) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return false, false
	}
	return af == bf, true
}

func asFloat(v Value) (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	default:
		return 0, false
	}
}
