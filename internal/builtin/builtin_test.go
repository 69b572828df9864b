package builtin

import (
	"strings"
	"testing"

	"github.com/kindling-lang/kindling/internal/eval"
	"github.com/kindling-lang/kindling/internal/lexer"
	"github.com/kindling-lang/kindling/internal/parser"
	"github.com/kindling-lang/kindling/internal/readermacro"
	"github.com/kindling-lang/kindling/internal/value"
)

func evalSrc(t *testing.T, ctx *value.Context, src string) value.Value {
	t.Helper()
	toks, rerr := lexer.Lex(src)
	if rerr != nil {
		t.Fatalf("Lex(%q): %v", src, rerr)
	}
	parsed, perr := parser.ParseOne(toks, ctx)
	if perr != nil {
		t.Fatalf("ParseOne(%q): %v", src, perr)
	}
	expanded, eerr := readermacro.Expand(parsed, ctx)
	if eerr != nil {
		t.Fatalf("Expand(%q): %v", src, eerr)
	}
	v, err := eval.Eval(expanded, ctx)
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}
	return v
}

func evalSrcErr(t *testing.T, ctx *value.Context, src string) *value.EvalError {
	t.Helper()
	toks, rerr := lexer.Lex(src)
	if rerr != nil {
		t.Fatalf("Lex(%q): %v", src, rerr)
	}
	parsed, perr := parser.ParseOne(toks, ctx)
	if perr != nil {
		t.Fatalf("ParseOne(%q): %v", src, perr)
	}
	expanded, eerr := readermacro.Expand(parsed, ctx)
	if eerr != nil {
		t.Fatalf("Expand(%q): %v", src, eerr)
	}
	_, err := eval.Eval(expanded, ctx)
	if err == nil {
		t.Fatalf("Eval(%q): expected an error, got none", src)
	}
	return err
}

func newCtx() *value.Context { return value.NewRootContext(nil) }

// spec.md §8: `(+ (* 2 4) (- 8 6) (+ (+ 1 3) 4))` -> `Int(18)`, expressed
// against the dotted built-ins directly since `+`/`-`/`*` are bootstrap
// library sugar over `.+`/`.-`/`.*`, not tested here.
func TestArithmeticNesting(t *testing.T) {
	ctx := newCtx()
	v := evalSrc(t, ctx, "(.+ (.* 2 4) (.+ (.- 8 6) (.+ (.+ 1 3) 4)))")
	if v.Kind != value.KindInt || v.Int != 18 {
		t.Fatalf("got %+v", v)
	}
}

func TestArithmeticFloatPromotion(t *testing.T) {
	ctx := newCtx()
	v := evalSrc(t, ctx, "(.+ 1 2.5)")
	if v.Kind != value.KindFloat || v.Float != 3.5 {
		t.Fatalf("got %+v", v)
	}
}

func TestArithmeticIntDivisionTruncates(t *testing.T) {
	ctx := newCtx()
	v := evalSrc(t, ctx, "(./ 7 2)")
	if v.Kind != value.KindInt || v.Int != 3 {
		t.Fatalf("got %+v", v)
	}
	v = evalSrc(t, ctx, "(./ -7 2)")
	if v.Kind != value.KindInt || v.Int != -3 {
		t.Fatalf("got %+v", v)
	}
}

func TestArithmeticDivideByZero(t *testing.T) {
	ctx := newCtx()
	err := evalSrcErr(t, ctx, "(./ 1 0)")
	if err.Kind != value.DivideByZeroError {
		t.Fatalf("got %v", err.Kind)
	}
}

func TestComparisons(t *testing.T) {
	ctx := newCtx()
	if v := evalSrc(t, ctx, "(.< 1 2)"); !v.Bool {
		t.Errorf("got %+v", v)
	}
	if v := evalSrc(t, ctx, "(.>= 2 2)"); !v.Bool {
		t.Errorf("got %+v", v)
	}
}

func TestStructuralEqualityCrossKind(t *testing.T) {
	ctx := newCtx()
	if v := evalSrc(t, ctx, "(.= '(1 2) [1 2])"); !v.Bool {
		t.Errorf("list should equal vector elementwise, got %+v", v)
	}
	if v := evalSrc(t, ctx, "(.= 1 1.0)"); v.Bool {
		t.Errorf(".= should require same kind for numbers, got %+v", v)
	}
}

func TestNumericEqualityPromotes(t *testing.T) {
	ctx := newCtx()
	if v := evalSrc(t, ctx, "(.== 1 1.0)"); !v.Bool {
		t.Errorf(".== should cross-promote, got %+v", v)
	}
}

func TestListBuiltin(t *testing.T) {
	ctx := newCtx()
	v := evalSrc(t, ctx, "(.list 1 2 3)")
	if v.Kind != value.KindList || len(v.List) != 3 {
		t.Fatalf("got %+v", v)
	}
}

func TestConcat(t *testing.T) {
	ctx := newCtx()
	v := evalSrc(t, ctx, "(.concat '(1 2) [3 4] '(5))")
	if v.Kind != value.KindList || len(v.List) != 5 {
		t.Fatalf("got %+v", v)
	}
}

func TestSeqEmptyIsNil(t *testing.T) {
	ctx := newCtx()
	if v := evalSrc(t, ctx, "(.seq '())"); v.Kind != value.KindNil {
		t.Errorf("got %+v", v)
	}
	if v := evalSrc(t, ctx, "(.seq nil)"); v.Kind != value.KindNil {
		t.Errorf("got %+v", v)
	}
}

func TestSeqOfMapYieldsVectorPairs(t *testing.T) {
	ctx := newCtx()
	v := evalSrc(t, ctx, "(.seq {:a 1})")
	if v.Kind != value.KindList || len(v.List) != 1 || v.List[0].Kind != value.KindVector {
		t.Fatalf("got %+v", v)
	}
}

func TestNextExhaustionIsNilNotEmptyList(t *testing.T) {
	ctx := newCtx()
	v := evalSrc(t, ctx, "(.next '(1))")
	if v.Kind != value.KindNil {
		t.Fatalf("got %+v", v)
	}
	v = evalSrc(t, ctx, "(.next '(1 2))")
	if v.Kind != value.KindList || len(v.List) != 1 {
		t.Fatalf("got %+v", v)
	}
}

func TestConjListPrependsVectorAppends(t *testing.T) {
	ctx := newCtx()
	v := evalSrc(t, ctx, "(.conj '(1 2) 0)")
	if v.Kind != value.KindList || v.List[0].Int != 0 {
		t.Fatalf("got %+v", v)
	}
	v = evalSrc(t, ctx, "(.conj [1 2] 3)")
	if v.Kind != value.KindVector || v.List[2].Int != 3 {
		t.Fatalf("got %+v", v)
	}
}

func TestConjMapMerges(t *testing.T) {
	ctx := newCtx()
	v := evalSrc(t, ctx, "(.conj {:a 1} [:b 2])")
	if v.Kind != value.KindMap || v.Map.Len() != 2 {
		t.Fatalf("got %+v", v)
	}
}

func TestReduceTwoArg(t *testing.T) {
	ctx := newCtx()
	v := evalSrc(t, ctx, "(.reduce (fn [a b] (.+ a b)) '(1 2 3 4))")
	if v.Kind != value.KindInt || v.Int != 10 {
		t.Fatalf("got %+v", v)
	}
}

func TestReduceThreeArg(t *testing.T) {
	ctx := newCtx()
	v := evalSrc(t, ctx, "(.reduce (fn [a b] (.+ a b)) 100 '(1 2 3))")
	if v.Kind != value.KindInt || v.Int != 106 {
		t.Fatalf("got %+v", v)
	}
}

func TestNthOutOfBounds(t *testing.T) {
	ctx := newCtx()
	err := evalSrcErr(t, ctx, "(.nth [1 2 3] 5)")
	if err.Kind != value.OutOfBoundsError {
		t.Fatalf("got %v", err.Kind)
	}
}

func TestSecondAndLast(t *testing.T) {
	ctx := newCtx()
	if v := evalSrc(t, ctx, "(.second [1 2 3])"); v.Int != 2 {
		t.Errorf("got %+v", v)
	}
	if v := evalSrc(t, ctx, "(.last [1 2 3])"); v.Int != 3 {
		t.Errorf("got %+v", v)
	}
}

func TestPrStrAndStr(t *testing.T) {
	ctx := newCtx()
	v := evalSrc(t, ctx, `(.pr-str "hi" 1)`)
	if v.Kind != value.KindStr || v.Str != `"hi" 1` {
		t.Fatalf("got %+v", v)
	}
	v = evalSrc(t, ctx, `(.str "hi" 1)`)
	if v.Kind != value.KindStr || v.Str != "hi1" {
		t.Fatalf("got %+v", v)
	}
}

func TestPrintWritesToSink(t *testing.T) {
	var sb strings.Builder
	ctx := value.NewRootContext(&sb)
	evalSrc(t, ctx, `(.print "hello")`)
	if sb.String() != "hello" {
		t.Fatalf("got %q", sb.String())
	}
}

func TestReadStringAndEval(t *testing.T) {
	ctx := newCtx()
	form := evalSrc(t, ctx, `(.read-string "(.+ 1 2)")`)
	if form.Kind != value.KindList {
		t.Fatalf("got %+v", form)
	}
	ctx.Def(ctx.InternSymbol("form"), form)
	v := evalSrc(t, ctx, "(.eval form)")
	if v.Kind != value.KindInt || v.Int != 3 {
		t.Fatalf("got %+v", v)
	}
}

func TestAtomLifecycle(t *testing.T) {
	ctx := newCtx()
	evalSrc(t, ctx, "(def a (.atom 1))")
	if v := evalSrc(t, ctx, "(.atom? a)"); !v.Bool {
		t.Errorf("got %+v", v)
	}
	if v := evalSrc(t, ctx, "(.deref a)"); v.Int != 1 {
		t.Errorf("got %+v", v)
	}
	evalSrc(t, ctx, "(.reset! a 5)")
	if v := evalSrc(t, ctx, "(.deref a)"); v.Int != 5 {
		t.Errorf("got %+v", v)
	}
	evalSrc(t, ctx, "(.swap! a (fn [x y] (.+ x y)) 10)")
	if v := evalSrc(t, ctx, "(.deref a)"); v.Int != 15 {
		t.Errorf("got %+v", v)
	}
}
