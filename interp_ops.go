// interp_ops.go — expression evaluation: literals, identifiers, calls,
// indexing, unary/binary operators including the bitwise/shift u32
// coercion and the logical short-circuit rules from spec.md §4.2.
package anarchy

import "math"

func (ip *Interpreter) evalExpr(e Expr) Value {
	ip.charge(spanLoc(e.exprSpan()))
	switch ex := e.(type) {
	case *NumberLit:
		return NumberValue(ex.Value)
	case *Ident:
		v, ok := ip.frame[ex.Name]
		if !ok {
			failSpan(ex.Span, "undefined identifier %q", ex.Name)
		}
		return v
	case *SequenceLit:
		elems := make([]Value, len(ex.Elements))
		for i, el := range ex.Elements {
			elems[i] = ip.evalExpr(el)
		}
		return SequenceValue(elems)
	case *Call:
		return ip.evalCall(ex)
	case *Index:
		return ip.evalIndex(ex)
	case *Unary:
		return ip.evalUnary(ex)
	case *Binary:
		return ip.evalBinary(ex)
	default:
		fail(Location{}, "internal: unhandled expression type")
		return UnitValue
	}
}

func (ip *Interpreter) evalCall(c *Call) Value {
	if fn, ok := ip.functions[c.Name]; ok {
		return ip.callFunction(fn, c.Args, c)
	}
	if b, ok := builtins[c.Name]; ok {
		return ip.callBuiltin(b, c)
	}
	failSpan(c.Span, "call to undefined function %q", c.Name)
	return UnitValue
}

func (ip *Interpreter) callBuiltin(b builtin, c *Call) Value {
	if len(c.Args) != b.arity {
		failSpan(c.Span, "function %q takes %d argument(s), but %d were given", c.Name, b.arity, len(c.Args))
	}
	args := make([]Value, len(c.Args))
	for i, a := range c.Args {
		args[i] = ip.evalExpr(a)
	}
	return b.call(args, c)
}

func (ip *Interpreter) evalIndex(x *Index) Value {
	base := ip.evalExpr(x.Base)
	idxVal := ip.evalExpr(x.Idx)

	switch base.Tag {
	case TagSequence:
		k := truncToInt(asNumber(idxVal, x.Idx.exprSpan()))
		if k < 0 || k >= len(base.Seq) {
			failSpan(x.Idx.exprSpan(), "index out of bounds")
		}
		return base.Seq[k]
	case TagNumber:
		bits := toU32(base.Num)
		k := truncToInt(asNumber(idxVal, x.Idx.exprSpan()))
		if k < 0 || k > 31 {
			return NumberValue(0)
		}
		return NumberValue(float64((bits >> uint(k)) & 1))
	default:
		failSpan(x.Base.exprSpan(), "cannot index a Unit value")
		return UnitValue
	}
}

func (ip *Interpreter) evalUnary(u *Unary) Value {
	switch u.Op {
	case UnaryNeg:
		n := asNumber(ip.evalExpr(u.Expr), u.Expr.exprSpan())
		return NumberValue(-n)
	case UnaryNot:
		n := asNumber(ip.evalExpr(u.Expr), u.Expr.exprSpan())
		return BoolValue(n == 0)
	default:
		fail(Location{}, "internal: unhandled unary operator")
		return UnitValue
	}
}

func (ip *Interpreter) evalBinary(b *Binary) Value {
	switch b.Op {
	case BinAnd:
		lhs := ip.evalExpr(b.LHS)
		if !mustTruthy(lhs, b.LHS.exprSpan()) {
			return BoolValue(false)
		}
		rhs := ip.evalExpr(b.RHS)
		return BoolValue(mustTruthy(rhs, b.RHS.exprSpan()))
	case BinOr:
		lhs := ip.evalExpr(b.LHS)
		if mustTruthy(lhs, b.LHS.exprSpan()) {
			return BoolValue(true)
		}
		rhs := ip.evalExpr(b.RHS)
		return BoolValue(mustTruthy(rhs, b.RHS.exprSpan()))
	}

	lhs := ip.evalExpr(b.LHS)
	rhs := ip.evalExpr(b.RHS)

	switch b.Op {
	case BinEq, BinNeq, BinLt, BinGt, BinLe, BinGe:
		l := asNumber(lhs, b.LHS.exprSpan())
		r := asNumber(rhs, b.RHS.exprSpan())
		var result bool
		switch b.Op {
		case BinEq:
			result = l == r
		case BinNeq:
			result = l != r
		case BinLt:
			result = l < r
		case BinGt:
			result = l > r
		case BinLe:
			result = l <= r
		case BinGe:
			result = l >= r
		}
		return BoolValue(result)

	case BinBitOr, BinBitXor, BinBitAnd, BinShl, BinShr:
		l := toU32(asNumber(lhs, b.LHS.exprSpan()))
		r := toU32(asNumber(rhs, b.RHS.exprSpan()))
		var result uint32
		switch b.Op {
		case BinBitOr:
			result = l | r
		case BinBitXor:
			result = l ^ r
		case BinBitAnd:
			result = l & r
		case BinShl:
			result = l << (r & 0x1F)
		case BinShr:
			result = l >> (r & 0x1F)
		}
		return NumberValue(float64(result))

	case BinAdd, BinSub, BinMul, BinDiv, BinMod, BinPow:
		l := asNumber(lhs, b.LHS.exprSpan())
		r := asNumber(rhs, b.RHS.exprSpan())
		var result float64
		switch b.Op {
		case BinAdd:
			result = l + r
		case BinSub:
			result = l - r
		case BinMul:
			result = l * r
		case BinDiv:
			result = l / r
		case BinMod:
			result = math.Mod(l, r)
		case BinPow:
			result = math.Pow(l, r)
		}
		return NumberValue(result)

	default:
		fail(Location{}, "internal: unhandled binary operator")
		return UnitValue
	}
}

// asNumber requires v to be a Number, raising a runtime error at span
// otherwise (including for Unit, per spec.md's "using Unit in an
// expression is a RuntimeError").
func asNumber(v Value, span Span) float64 {
	if v.Tag != TagNumber {
		failSpan(span, "expected a Number, got %s", v.Tag)
	}
	return v.Num
}

// truncToInt truncates toward zero, per spec.md's indexing semantics.
func truncToInt(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	t := math.Trunc(f)
	if t > math.MaxInt32 {
		return math.MaxInt32
	}
	if t < math.MinInt32 {
		return math.MinInt32
	}
	return int(t)
}

// toU32 coerces a float64 to a 32-bit unsigned integer by truncation
// toward zero modulo 2^32 (two's-complement wraparound, not Rust's
// saturating float-to-int cast) — spec.md §4.2 and confirmed by the
// example (-1) >> 1 == 2147483647.
func toU32(f float64) uint32 {
	if math.IsNaN(f) {
		return 0
	}
	t := math.Trunc(f)
	if t > math.MaxInt64 {
		t = math.MaxInt64
	}
	if t < math.MinInt64 {
		t = math.MinInt64
	}
	return uint32(int64(t))
}
