// Package stdlib embeds the bootstrap standard-library source evaluated at
// interpreter construction time (spec.md §6, SPEC_FULL.md §7): kindling.New
// runs Source through the exact same lex/parse/expand/eval pipeline any
// other program goes through, so a stdlib bug surfaces as an ordinary
// EvalOutcome rather than a special-cased panic.
package stdlib

import _ "embed"

//go:embed bootstrap.kdl
var Source string
