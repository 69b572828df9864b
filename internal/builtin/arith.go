// Package builtin implements the dotted primitives of spec.md §4.6 and
// registers each of them into eval.Builtins from an init(), mirroring the
// teacher's own `ns` registration table (step9_try/core.go).
package builtin

import (
	"github.com/kindling-lang/kindling/internal/eval"
	"github.com/kindling-lang/kindling/internal/value"
)

func init() {
	eval.Builtins[value.BuiltinAdd] = arithAdd
	eval.Builtins[value.BuiltinSub] = arithSub
	eval.Builtins[value.BuiltinMul] = arithMul
	eval.Builtins[value.BuiltinDiv] = arithDiv
	eval.Builtins[value.BuiltinLt] = cmpLt
	eval.Builtins[value.BuiltinLte] = cmpLte
	eval.Builtins[value.BuiltinGt] = cmpGt
	eval.Builtins[value.BuiltinGte] = cmpGte
	eval.Builtins[value.BuiltinEq] = structEq
	eval.Builtins[value.BuiltinNumEq] = numEq
}

// twoNumbers validates exactly two numeric (Int or Float) arguments, the
// shared gate for `.+ .- .* ./` and the four comparisons (spec.md §4.6:
// "operate on two numbers").
func twoNumbers(args []value.Value, name string) (value.Value, value.Value, *value.EvalError) {
	if len(args) != 2 {
		return value.Value{}, value.Value{}, value.Arityf("%s takes exactly 2 arguments, got %d", name, len(args))
	}
	a, b := args[0], args[1]
	if (a.Kind != value.KindInt && a.Kind != value.KindFloat) || (b.Kind != value.KindInt && b.Kind != value.KindFloat) {
		return value.Value{}, value.Value{}, value.InvalidArgf("%s requires numeric arguments", name)
	}
	return a, b, nil
}

func arithAdd(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	a, b, err := twoNumbers(args, ".+")
	if err != nil {
		return value.Value{}, err
	}
	if a.Kind == value.KindFloat || b.Kind == value.KindFloat {
		return value.Float(asF(a) + asF(b)), nil
	}
	return value.Int(a.Int + b.Int), nil
}

func arithSub(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	a, b, err := twoNumbers(args, ".-")
	if err != nil {
		return value.Value{}, err
	}
	if a.Kind == value.KindFloat || b.Kind == value.KindFloat {
		return value.Float(asF(a) - asF(b)), nil
	}
	return value.Int(a.Int - b.Int), nil
}

func arithMul(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	a, b, err := twoNumbers(args, ".*")
	if err != nil {
		return value.Value{}, err
	}
	if a.Kind == value.KindFloat || b.Kind == value.KindFloat {
		return value.Float(asF(a) * asF(b)), nil
	}
	return value.Int(a.Int * b.Int), nil
}

func arithDiv(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	a, b, err := twoNumbers(args, "./")
	if err != nil {
		return value.Value{}, err
	}
	if a.Kind == value.KindFloat || b.Kind == value.KindFloat {
		if asF(b) == 0 {
			return value.Value{}, value.NewEvalError(value.DivideByZeroError, "division by zero")
		}
		return value.Float(asF(a) / asF(b)), nil
	}
	if b.Int == 0 {
		return value.Value{}, value.NewEvalError(value.DivideByZeroError, "division by zero")
	}
	// Truncate toward zero, matching Go's integer division (spec.md §4.6).
	return value.Int(a.Int / b.Int), nil
}

func asF(v value.Value) float64 {
	if v.Kind == value.KindFloat {
		return v.Float
	}
	return float64(v.Int)
}

func cmpLt(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	a, b, err := twoNumbers(args, ".<")
	if err != nil {
		return value.Value{}, err
	}
	return value.Bool_(asF(a) < asF(b)), nil
}

func cmpLte(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	a, b, err := twoNumbers(args, ".<=")
	if err != nil {
		return value.Value{}, err
	}
	return value.Bool_(asF(a) <= asF(b)), nil
}

func cmpGt(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	a, b, err := twoNumbers(args, ".>")
	if err != nil {
		return value.Value{}, err
	}
	return value.Bool_(asF(a) > asF(b)), nil
}

func cmpGte(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	a, b, err := twoNumbers(args, ".>=")
	if err != nil {
		return value.Value{}, err
	}
	return value.Bool_(asF(a) >= asF(b)), nil
}

func structEq(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 2 {
		return value.Value{}, value.Arityf(".= takes exactly 2 arguments, got %d", len(args))
	}
	return value.Bool_(value.Equal(args[0], args[1])), nil
}

func numEq(args []value.Value, _ *value.Context) (value.Value, *value.EvalError) {
	if len(args) != 2 {
		return value.Value{}, value.Arityf(".== takes exactly 2 arguments, got %d", len(args))
	}
	eq, ok := value.NumericEqual(args[0], args[1])
	if !ok {
		return value.Value{}, value.InvalidArgf(".== requires numeric arguments")
	}
	return value.Bool_(eq), nil
}
