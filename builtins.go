// builtins.go — the fixed built-in function table (spec.md §4.3).
// Built-ins are resolved only after the user function table misses, so
// a program may not redefine `sin`, `len`, etc.
package anarchy

import "math"

type builtin struct {
	arity int
	call  func(args []Value, c *Call) Value
}

func mathBuiltin(arity int, f func(float64) float64) builtin {
	return builtin{
		arity: arity,
		call: func(args []Value, c *Call) Value {
			n := asNumber(args[0], c.Args[0].exprSpan())
			return NumberValue(f(n))
		},
	}
}

var builtins = map[string]builtin{
	"sin":  mathBuiltin(1, math.Sin),
	"cos":  mathBuiltin(1, math.Cos),
	"tan":  mathBuiltin(1, math.Tan),
	"asin": mathBuiltin(1, math.Asin),
	"acos": mathBuiltin(1, math.Acos),
	"atan": mathBuiltin(1, math.Atan),
	"abs":  mathBuiltin(1, math.Abs),
	"sqrt": mathBuiltin(1, math.Sqrt),
	"log":  mathBuiltin(1, math.Log),
	"len": {
		arity: 1,
		call: func(args []Value, c *Call) Value {
			if args[0].Tag != TagSequence {
				failSpan(c.Args[0].exprSpan(), "len expects a Sequence, got %s", args[0].Tag)
			}
			return NumberValue(float64(len(args[0].Seq)))
		},
	},
}
