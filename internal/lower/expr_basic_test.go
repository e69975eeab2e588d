package lower

import (
	"testing"

	"jitc/internal/ir"
	"jitc/internal/typedvalue"
)

func TestExprArgUsesPositionalIndex(t *testing.T) {
	s := newTestState()
	node := &ir.Node{Fields: map[string]string{"index": "2"}}
	v, err := exprArg(s, node, typedvalue.Boolean)
	if err != nil {
		t.Fatalf("exprArg: %v", err)
	}
	if got := v.AsBoolean(); got != "p2" {
		t.Errorf("AsBoolean() = %q, want %q", got, "p2")
	}
	if got := v.AsUnknown(); got != "p2" {
		t.Errorf("AsUnknown() = %q, want %q", got, "p2")
	}
}

func TestExprVarGetReturnsTrackedLastAssignedValue(t *testing.T) {
	s := newTestState()
	frag := lookupVariableFragment("score")
	s.Track("score", typedvalue.NewVariable(frag, typedvalue.Number).WithLast(s.NewConstantValue("7")))

	node := &ir.Node{Fields: map[string]string{"id": "score", "type": "number"}}
	v, err := exprVarGet(s, node)
	if err != nil {
		t.Fatalf("exprVarGet: %v", err)
	}
	if !v.AlwaysNumber() {
		t.Errorf("expected the tracked last-assigned constant to report AlwaysNumber")
	}
	if got := v.AsUnknown(); got != frag {
		t.Errorf("AsUnknown() = %q, want %q", got, frag)
	}
}

func TestExprVarGetReturnsFreshVariableWhenUntracked(t *testing.T) {
	s := newTestState()
	node := &ir.Node{Fields: map[string]string{"id": "untouched", "type": "string"}}
	v, err := exprVarGet(s, node)
	if err != nil {
		t.Fatalf("exprVarGet: %v", err)
	}
	if v.AlwaysNumber() || v.NeverNumber() {
		t.Errorf("a Variable with no recorded last-assigned value should make no numeric claim")
	}
	want := `lookupVariable(target, "untouched")`
	if got := v.AsUnknown(); string(got) != want {
		t.Errorf("AsUnknown() = %q, want %q", got, want)
	}
	if got := v.AsString(); string(got) != want {
		t.Errorf("AsString() = %q", got)
	}
}

func TestExprVarGetDefaultsToUnknownTypeWithoutATypeField(t *testing.T) {
	s := newTestState()
	node := &ir.Node{Fields: map[string]string{"id": "x"}}
	v, err := exprVarGet(s, node)
	if err != nil {
		t.Fatalf("exprVarGet: %v", err)
	}
	if got := v.AsNumber(); string(got) != `(+lookupVariable(target, "x") || 0)` {
		t.Errorf("AsNumber() = %q, want the unknown-type coercion wrapper", got)
	}
}
