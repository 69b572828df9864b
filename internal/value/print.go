package value

import (
	"strconv"
	"strings"
)

// Print renders v back to source text. For every kind except Function,
// BuiltIn, Special, Macro, ReaderMacro, RecurSentinel, Atom and Regex,
// Print(v) round-trips through the lexer+parser (spec.md §6, §8 scenario 1).
// readable selects the machine-readable form (strings/chars quoted and
// escaped) that `.pr-str` uses; when false, Print produces the human
// "display" form `.str` and `.print` use.
func Print(v Value, ctx *Context, readable bool) string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		s := strconv.FormatFloat(v.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case KindChar:
		if !readable {
			return string(v.Char)
		}
		return "\\" + charName(v.Char)
	case KindStr:
		if !readable {
			return v.Str
		}
		return quoteString(v.Str)
	case KindKeyword:
		return ":" + ctx.KeywordName(v.Sym)
	case KindSymbol:
		return ctx.SymbolName(v.Sym)
	case KindList:
		return "(" + printSeq(v.List, ctx, readable) + ")"
	case KindVector:
		return "[" + printSeq(v.List, ctx, readable) + "]"
	case KindMap:
		var sb strings.Builder
		sb.WriteByte('{')
		keys, vals := v.Map.Pairs()
		for i := range keys {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(Print(keys[i], ctx, readable))
			sb.WriteByte(' ')
			sb.WriteString(Print(vals[i], ctx, readable))
		}
		sb.WriteByte('}')
		return sb.String()
	case KindFunction:
		if v.Function.Name != "" {
			return "#<function " + v.Function.Name + ">"
		}
		return "#<function>"
	case KindBuiltIn:
		return "#<builtin " + v.BuiltIn.String() + ">"
	case KindSpecial:
		return "#<special " + v.Special.String() + ">"
	case KindMacro:
		if v.Macro.Name != "" {
			return "#<macro " + v.Macro.Name + ">"
		}
		return "#<macro>"
	case KindReaderMacro:
		return "#<reader-macro " + v.Reader.Kind.String() + " " + Print(v.Reader.Inner, ctx, readable) + ">"
	case KindRecurSentinel:
		return "#<recur " + printSeq(v.Recur.Bindings, ctx, readable) + ">"
	case KindAtom:
		return "#<atom " + Print(v.Atom.Value, ctx, readable) + ">"
	case KindRegex:
		return "#<regex " + v.Str + ">"
	default:
		return "#<unknown>"
	}
}

func printSeq(items []Value, ctx *Context, readable bool) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = Print(it, ctx, readable)
	}
	return strings.Join(parts, " ")
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString("\\\"")
		case '\\':
			sb.WriteString("\\\\")
		case '\n':
			sb.WriteString("\\n")
		case '\r':
			sb.WriteString("\\r")
		case '\t':
			sb.WriteString("\\t")
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

var charNames = map[rune]string{
	' ':  "space",
	'\t': "tab",
	'\n': "newline",
	'\r': "return",
	'\b': "backspace",
	'\f': "formfeed",
}

func charName(r rune) string {
	if name, ok := charNames[r]; ok {
		return name
	}
	return string(r)
}
