// Package parser turns a lexer.Token stream into a raw value.Value tree
// (spec.md §4.2). Reader-macro prefix tokens (', `, ~, ~@) are preserved as
// value.KindReaderMacro nodes for the later reader-macro-expansion pass;
// everything else becomes an ordinary self-describing Value.
package parser

import (
	"github.com/kindling-lang/kindling/internal/lexer"
	"github.com/kindling-lang/kindling/internal/value"
)

type parser struct {
	tokens []lexer.Token
	pos    int
	ctx    *value.Context
}

// ParseOne parses a single top-level form, leaving any trailing tokens
// unconsumed. Used by callers (and tests) that only care about one form.
func ParseOne(tokens []lexer.Token, ctx *value.Context) (value.Value, *value.ReadError) {
	if len(tokens) == 0 {
		return value.Value{}, value.NewReadError(value.EmptyInput, -1, "no input")
	}
	p := &parser{tokens: tokens, ctx: ctx}
	return p.parseForm()
}

// ParseAll parses every top-level form in tokens, in order. The bootstrap
// library and the CLI's -load flag both feed a whole file through this
// path; the REPL feeds one line, which may itself contain zero or more
// forms.
func ParseAll(tokens []lexer.Token, ctx *value.Context) ([]value.Value, *value.ReadError) {
	if len(tokens) == 0 {
		return nil, value.NewReadError(value.EmptyInput, -1, "no input")
	}
	p := &parser{tokens: tokens, ctx: ctx}
	var forms []value.Value
	for p.pos < len(p.tokens) {
		v, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, v)
	}
	return forms, nil
}

func (p *parser) peek() (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) parseForm() (value.Value, *value.ReadError) {
	tok, ok := p.peek()
	if !ok {
		return value.Value{}, value.NewReadError(value.BadStartToken, -1, "expected a form, found end of input")
	}

	switch tok.Kind {
	case lexer.TokQuote:
		return p.parseReaderMacro(value.RMQuote)
	case lexer.TokSyntaxQuote:
		return p.parseReaderMacro(value.RMSyntaxQuote)
	case lexer.TokUnquote:
		return p.parseReaderMacro(value.RMUnquote)
	case lexer.TokUnquoteSplice:
		return p.parseReaderMacro(value.RMUnquoteSplice)

	case lexer.TokLParen:
		return p.parseCollection(lexer.TokRParen)
	case lexer.TokLBracket:
		return p.parseCollection(lexer.TokRBracket)
	case lexer.TokLBrace:
		return p.parseCollection(lexer.TokRBrace)

	case lexer.TokRParen, lexer.TokRBracket, lexer.TokRBrace:
		return value.Value{}, value.NewReadError(value.BadStartToken, tok.Pos, "a form cannot start with a closing delimiter")

	case lexer.TokVarQuote, lexer.TokInlineFn, lexer.TokIgnoreNext, lexer.TokSetStart:
		return value.Value{}, value.NewReadError(value.BadStartToken, tok.Pos, "dispatch macro is reserved and not yet supported")

	case lexer.TokCharLiteral:
		p.pos++
		return value.Char(tok.Char), nil
	case lexer.TokStringLiteral:
		p.pos++
		return value.Str(tok.Str), nil
	case lexer.TokRegexPattern:
		p.pos++
		return value.Regex(tok.Text), nil
	case lexer.TokNil:
		p.pos++
		return value.Nil, nil
	case lexer.TokBool:
		p.pos++
		return value.Bool_(tok.Bool), nil
	case lexer.TokInteger:
		p.pos++
		return value.Int(tok.Int), nil
	case lexer.TokFloat:
		p.pos++
		return value.Float(tok.Float), nil
	case lexer.TokKeyword:
		p.pos++
		return value.Keyword(p.ctx.InternKeyword(tok.Text)), nil
	case lexer.TokIdentifier:
		p.pos++
		return value.Symbol(p.ctx.InternSymbol(tok.Text)), nil
	case lexer.TokSpecial:
		p.pos++
		return value.SpecialVal(tok.Special), nil
	case lexer.TokBuiltIn:
		p.pos++
		return value.BuiltInVal(tok.BuiltIn), nil
	default:
		return value.Value{}, value.NewReadError(value.BadStartToken, tok.Pos, "unrecognized token")
	}
}

func (p *parser) parseReaderMacro(kind value.ReaderMacroKind) (value.Value, *value.ReadError) {
	prefixPos := p.tokens[p.pos].Pos
	p.pos++ // consume the prefix token
	if _, ok := p.peek(); !ok {
		return value.Value{}, value.NewReadError(value.MismatchedReaderMacro, prefixPos, "reader macro has no following form")
	}
	inner, err := p.parseForm()
	if err != nil {
		return value.Value{}, err
	}
	return value.ReaderMacroVal(kind, inner), nil
}

// parseCollection collects forms until the matching close token at the SAME
// nesting level; recursion into parseForm already handles nested
// collections of any kind, so only the immediate close needs checking here.
// Any other close-delimiter token found first is a mismatch.
func (p *parser) parseCollection(close lexer.TokenKind) (value.Value, *value.ReadError) {
	openPos := p.tokens[p.pos].Pos
	p.pos++ // consume the open delimiter

	var items []value.Value
	for {
		tok, ok := p.peek()
		if !ok {
			return value.Value{}, value.NewReadError(value.MismatchedDelimiter, openPos, "unterminated collection")
		}
		if tok.Kind == close {
			p.pos++
			break
		}
		if isCloseDelimiter(tok.Kind) {
			return value.Value{}, value.NewReadError(value.MismatchedDelimiter, tok.Pos, "mismatched closing delimiter")
		}
		v, err := p.parseForm()
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
	}

	switch close {
	case lexer.TokRParen:
		return value.ListFromSlice(items), nil
	case lexer.TokRBracket:
		return value.VectorFromSlice(items), nil
	case lexer.TokRBrace:
		if len(items)%2 != 0 {
			return value.Value{}, value.NewReadError(value.MapKeyValueMismatch, openPos, "map literal has an odd number of forms")
		}
		return value.MapVal(value.NewMap(items...)), nil
	default:
		panic("parser: unreachable close delimiter")
	}
}

func isCloseDelimiter(k lexer.TokenKind) bool {
	return k == lexer.TokRParen || k == lexer.TokRBracket || k == lexer.TokRBrace
}
