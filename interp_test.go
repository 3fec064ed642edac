package anarchy

import (
	"math"
	"testing"
)

// evalFrame parses src, evaluates it against an empty seed frame, and
// returns the resulting frame. It fails the test on parse or runtime
// error.
func evalFrame(t *testing.T, src string) map[string]Value {
	t.Helper()
	prog, perr := Parse(src)
	if perr != nil {
		t.Fatalf("Parse(%q) error: %v", src, perr)
	}
	ip, _ := NewInterpreter(prog)
	frame, rerr := ip.Eval(prog, nil)
	if rerr != nil {
		t.Fatalf("Eval(%q) error: %v", src, rerr)
	}
	return frame
}

func evalErr(t *testing.T, src string) *RuntimeError {
	t.Helper()
	prog, perr := Parse(src)
	if perr != nil {
		t.Fatalf("Parse(%q) error: %v", src, perr)
	}
	ip, _ := NewInterpreter(prog)
	_, rerr := ip.Eval(prog, nil)
	if rerr == nil {
		t.Fatalf("Eval(%q): expected a runtime error", src)
	}
	return rerr
}

func wantNumber(t *testing.T, frame map[string]Value, name string, want float64) {
	t.Helper()
	v, ok := frame[name]
	if !ok {
		t.Fatalf("frame has no %q", name)
	}
	if v.Tag != TagNumber || v.Num != want {
		t.Fatalf("%s: got %#v, want Number(%v)", name, v, want)
	}
}

func TestArithmetic(t *testing.T) {
	f := evalFrame(t, "a = 1 / 0; b = 1 % 0; c = -1 >> 1; d = (0 << 33); e = (1 << 33);")
	if !math.IsInf(f["a"].Num, 1) {
		t.Fatalf("1/0: got %v, want +Inf", f["a"].Num)
	}
	if !math.IsNaN(f["b"].Num) {
		t.Fatalf("1%%0: got %v, want NaN", f["b"].Num)
	}
	wantNumber(t, f, "c", 2147483647)
	wantNumber(t, f, "d", 0)
	f2 := evalFrame(t, "a = (1 << 33); b = (1 << 1);")
	if f2["a"].Num != f2["b"].Num {
		t.Fatalf("shift count should be masked mod 32: got %v vs %v", f2["a"].Num, f2["b"].Num)
	}
}

func TestSequenceIndexing(t *testing.T) {
	f := evalFrame(t, "n = len([]); a = [1,2,3][2];")
	wantNumber(t, f, "n", 0)
	wantNumber(t, f, "a", 3)
}

func TestSequenceIndexOutOfBounds(t *testing.T) {
	rerr := evalErr(t, "a = [1,2,3][3];")
	if rerr.Location.Kind != LocSpan {
		t.Fatalf("expected a span location, got %#v", rerr.Location)
	}
}

func TestUndefinedIdentifier(t *testing.T) {
	rerr := evalErr(t, "r = undef;")
	if rerr.Location.Kind != LocSpan {
		t.Fatalf("expected a span location, got %#v", rerr.Location)
	}
}

func TestLogicalShortCircuit(t *testing.T) {
	// undef() is never called because the left side of && is falsy.
	f := evalFrame(t, "a = 0 && undef();")
	wantNumber(t, f, "a", 0)
	f2 := evalFrame(t, "a = 1 || undef();")
	wantNumber(t, f2, "a", 1)
}

func TestDoubleNotCoercion(t *testing.T) {
	f := evalFrame(t, "a = !!5; b = !!0;")
	wantNumber(t, f, "a", 1)
	wantNumber(t, f, "b", 0)
}

func TestRepeatBounds(t *testing.T) {
	f := evalFrame(t, "r = 0; repeat (i until 0) { r = r + 1; }")
	wantNumber(t, f, "r", 0)

	f2 := evalFrame(t, "r = 0; i = -1; repeat (i until 3) { r = r + 10; }")
	wantNumber(t, f2, "r", 30)
	wantNumber(t, f2, "i", 2)
}

func TestUserDefinedFunction(t *testing.T) {
	f := evalFrame(t, "function sq(n) { return n * n; } r = sq(4);")
	wantNumber(t, f, "r", 16)
}

func TestFunctionWithoutReturnIsUnit(t *testing.T) {
	rerr := evalErr(t, "function f() { x = 1; } r = f() + 1;")
	if rerr == nil {
		t.Fatal("expected a runtime error using Unit in an expression")
	}
}

func TestArityMismatch(t *testing.T) {
	evalErr(t, "function f(a, b) { return a + b; } r = f(1);")
}

func TestInstructionBudgetExceeded(t *testing.T) {
	prog, perr := Parse("r = 0; repeat (i until 1000000) { r = r + 1; }")
	if perr != nil {
		t.Fatalf("Parse error: %v", perr)
	}
	ip, _ := NewInterpreter(prog)
	ip.Budget = 100
	_, rerr := ip.Eval(prog, nil)
	if rerr == nil {
		t.Fatal("expected a budget-exceeded runtime error")
	}
}

func TestNumberAsBitSequenceIndex(t *testing.T) {
	f := evalFrame(t, "a = 5[0]; b = 5[1]; c = 5[2]; d = 5[32];")
	wantNumber(t, f, "a", 1)
	wantNumber(t, f, "b", 0)
	wantNumber(t, f, "c", 1)
	wantNumber(t, f, "d", 0)
}
