package typedvalue

import "testing"

func TestConstantSignedZeroPreserved(t *testing.T) {
	c := NewConstant("-0", true)
	if got, want := c.AsNumber(), Fragment("-0"); got != want {
		t.Fatalf("AsNumber() = %q, want %q", got, want)
	}
}

func TestConstantNaNFoldsToZero(t *testing.T) {
	c := NewConstant("banana", true)
	if got, want := c.AsNumber(), Fragment("0"); got != want {
		t.Fatalf("AsNumber() = %q, want %q", got, want)
	}
	if c.AlwaysNumber() {
		t.Fatal("AlwaysNumber() on a non-numeric literal must be false")
	}
}

func TestConstantEmptyStringNotAlwaysNumber(t *testing.T) {
	c := NewConstant("", true)
	if c.AlwaysNumber() {
		t.Fatal("empty string coerces to 0 but is not an always-number literal")
	}
}

func TestConstantOptimizationSafe(t *testing.T) {
	five := NewConstant("5", true)
	if !five.OptimizationSafe() {
		t.Fatal("5 should be optimization-safe")
	}
	zero := NewConstant("0", true)
	if zero.OptimizationSafe() {
		t.Fatal("0 is excluded from optimization-safe by definition")
	}
	leadingZero := NewConstant("010", true)
	if leadingZero.OptimizationSafe() {
		t.Fatal("010 does not round-trip (coerces to 10) so is not optimization-safe")
	}
}

func TestConstantAsUnknownStringVsNumber(t *testing.T) {
	n := NewConstant("42", true)
	if got, want := n.AsUnknown(), Fragment("42"); got != want {
		t.Fatalf("AsUnknown() = %q, want %q", got, want)
	}
	leadingZero := NewConstant("010", true)
	if got, want := leadingZero.AsUnknown(), Fragment(`"010"`); got != want {
		t.Fatalf("AsUnknown() = %q, want %q", got, want)
	}
}

func TestConstantAsSafe(t *testing.T) {
	unsafe := NewConstant("rainbow", false)
	if got, want := unsafe.AsSafe(), Fragment(`"rainbow"`); got != want {
		t.Fatalf("AsSafe() = %q, want %q", got, want)
	}
	safe := NewConstant("rainbow", true)
	if got, want := safe.AsSafe(), Fragment(`"rainbow"`); got != want {
		t.Fatalf("AsSafe() = %q, want %q", got, want)
	}
}

func TestConstantToBooleanQuirk(t *testing.T) {
	// Scratch/PenguinMod's toBoolean treats the literal string "false"
	// as truthy; only "" and "0" are falsy.
	falsy := NewConstant("false", true)
	if got, want := falsy.AsBoolean(), Fragment("true"); got != want {
		t.Fatalf("AsBoolean() = %q, want %q", got, want)
	}
	zero := NewConstant("0", true)
	if got, want := zero.AsBoolean(), Fragment("false"); got != want {
		t.Fatalf("AsBoolean() = %q, want %q", got, want)
	}
}

func TestConstantAsColor(t *testing.T) {
	c := NewConstant("#FF00FF", true)
	if got, want := c.AsColor(), Fragment("16711935"); got != want {
		t.Fatalf("AsColor() = %q, want %q", got, want)
	}
	notColor := NewConstant("hello", true)
	if got, want := notColor.AsColor(), notColor.AsUnknown(); got != want {
		t.Fatalf("AsColor() = %q, want fallback %q", got, want)
	}
}

func TestTypedCoercions(t *testing.T) {
	num := NewTyped("x", Number)
	if got, want := num.AsNumber(), Fragment("x"); got != want {
		t.Fatalf("AsNumber() = %q, want %q", got, want)
	}

	nan := NewTyped("y", NumberOrNaN)
	if got, want := nan.AsNumber(), Fragment("(y || 0)"); got != want {
		t.Fatalf("AsNumber() = %q, want %q", got, want)
	}

	other := NewTyped("z", String)
	if got, want := other.AsNumber(), Fragment("(+z || 0)"); got != want {
		t.Fatalf("AsNumber() = %q, want %q", got, want)
	}
	if got, want := other.AsString(), Fragment("z"); got != want {
		t.Fatalf("AsString() = %q, want %q", got, want)
	}
}

func TestVariableDelegatesPredicatesToLast(t *testing.T) {
	v := NewVariable("v", Number)
	if v.AlwaysNumber() {
		t.Fatal("no last-assigned value: predicate must be false")
	}
	v2 := v.WithLast(NewConstant("5", true))
	if !v2.AlwaysNumber() {
		t.Fatal("last-assigned Constant(5) is always-number")
	}
}

func TestVariableAssignmentCycleFree(t *testing.T) {
	a := NewVariable("a", Number)
	a = a.WithLast(NewConstant("1", true))

	// b := a; b's last should be copied from a.Last, not alias a itself.
	b := NewVariable("b", Number).WithLast(a)
	if !b.AlwaysNumber() {
		t.Fatal("b should inherit a's last-assigned Constant(1)")
	}

	// Self-assignment: a.setInput(a) must not create a reference cycle.
	a = a.WithLast(a)
	if !a.AlwaysNumber() {
		t.Fatal("self-assignment must still resolve to the prior last-assigned value")
	}
}
