package lexer

import (
	"testing"

	"github.com/kindling-lang/kindling/internal/value"
)

func lexOK(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}
	return toks
}

func TestLexDelimiters(t *testing.T) {
	toks := lexOK(t, "([{}])")
	want := []TokenKind{TokLParen, TokLBracket, TokLBrace, TokRBrace, TokRBracket, TokRParen}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLexQuoteFamily(t *testing.T) {
	toks := lexOK(t, "'a `a ~a ~@a")
	want := []TokenKind{TokQuote, TokIdentifier, TokSyntaxQuote, TokIdentifier, TokUnquote, TokIdentifier, TokUnquoteSplice, TokIdentifier}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLexNumbers(t *testing.T) {
	toks := lexOK(t, "42 -7 3.14 -0.5")
	if toks[0].Kind != TokInteger || toks[0].Int != 42 {
		t.Errorf("got %+v", toks[0])
	}
	if toks[1].Kind != TokInteger || toks[1].Int != -7 {
		t.Errorf("got %+v", toks[1])
	}
	if toks[2].Kind != TokFloat || toks[2].Float != 3.14 {
		t.Errorf("got %+v", toks[2])
	}
	if toks[3].Kind != TokFloat || toks[3].Float != -0.5 {
		t.Errorf("got %+v", toks[3])
	}
}

func TestLexKeywordAndNil(t *testing.T) {
	toks := lexOK(t, ":a nil true false")
	if toks[0].Kind != TokKeyword || toks[0].Text != "a" {
		t.Errorf("got %+v", toks[0])
	}
	if toks[1].Kind != TokNil {
		t.Errorf("got %+v", toks[1])
	}
	if toks[2].Kind != TokBool || !toks[2].Bool {
		t.Errorf("got %+v", toks[2])
	}
	if toks[3].Kind != TokBool || toks[3].Bool {
		t.Errorf("got %+v", toks[3])
	}
}

func TestLexLoneColonIsError(t *testing.T) {
	_, err := Lex(":")
	if err == nil || err.Kind != value.InvalidKeyword {
		t.Fatalf("expected InvalidKeyword, got %v", err)
	}
}

func TestLexSpecialAndBuiltin(t *testing.T) {
	toks := lexOK(t, "if .+ defmacro")
	if toks[0].Kind != TokSpecial || toks[0].Special != value.SpecialIf {
		t.Errorf("got %+v", toks[0])
	}
	if toks[1].Kind != TokBuiltIn || toks[1].BuiltIn != value.BuiltinAdd {
		t.Errorf("got %+v", toks[1])
	}
	if toks[2].Kind != TokSpecial || toks[2].Special != value.SpecialDefmacro {
		t.Errorf("got %+v", toks[2])
	}
}

func TestLexString(t *testing.T) {
	toks := lexOK(t, `"hi\nthere"`)
	if toks[0].Kind != TokStringLiteral || toks[0].Str != "hi\nthere" {
		t.Errorf("got %+v", toks[0])
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := Lex(`"abc`)
	if err == nil || err.Kind != value.NonTerminatedString {
		t.Fatalf("expected NonTerminatedString, got %v", err)
	}
}

func TestLexCharLiteral(t *testing.T) {
	toks := lexOK(t, `\a \space \newline \A`)
	want := []rune{'a', ' ', '\n', 'A'}
	for i, w := range want {
		if toks[i].Kind != TokCharLiteral || toks[i].Char != w {
			t.Errorf("token %d: got %+v, want %q", i, toks[i], w)
		}
	}
}

func TestLexRegex(t *testing.T) {
	toks := lexOK(t, `#"a\"b"`)
	if toks[0].Kind != TokRegexPattern || toks[0].Text != `a\"b` {
		t.Errorf("got %+v", toks[0])
	}
}

func TestLexInvalidDispatch(t *testing.T) {
	_, err := Lex("#x")
	if err == nil || err.Kind != value.InvalidDispatchMacro {
		t.Fatalf("expected InvalidDispatchMacro, got %v", err)
	}
}

func TestLexCommentsAndCommas(t *testing.T) {
	toks := lexOK(t, "1, 2 ; trailing comment\n3")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3: %+v", len(toks), toks)
	}
}
