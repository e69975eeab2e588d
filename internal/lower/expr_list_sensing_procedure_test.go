package lower

import (
	"testing"

	"jitc/internal/ir"
)

func TestExprListGetDirectIndexesLiteralIntegerWhenSupported(t *testing.T) {
	s := newTestState()
	node := &ir.Node{
		Kind:   ir.KindListGet,
		Fields: map[string]string{"id": "mylist"},
		Inputs: map[string]*ir.Node{"INDEX": constNode("3")},
	}
	v, err := exprListGet(s, node)
	if err != nil {
		t.Fatalf("exprListGet: %v", err)
	}
	want := `(lookupList(target, "mylist").value[(3 | 0) - 1] ?? "")`
	if got := v.AsUnknown(); got != want {
		t.Errorf("AsUnknown() = %q, want %q", got, want)
	}
}

func TestExprListGetFallsBackToHelperWithoutNullishCoalescing(t *testing.T) {
	s := newTestState()
	s.Config.SupportsNullishCoalescing = false
	node := &ir.Node{
		Kind:   ir.KindListGet,
		Fields: map[string]string{"id": "mylist"},
		Inputs: map[string]*ir.Node{"INDEX": constNode("3")},
	}
	v, err := exprListGet(s, node)
	if err != nil {
		t.Fatalf("exprListGet: %v", err)
	}
	want := `listGet(lookupList(target, "mylist"), 3)`
	if got := v.AsUnknown(); got != want {
		t.Errorf("AsUnknown() = %q, want %q", got, want)
	}
}

func TestExprListGetDirectIndexesLiteralLastWhenSupported(t *testing.T) {
	s := newTestState()
	node := &ir.Node{
		Kind:   ir.KindListGet,
		Fields: map[string]string{"id": "mylist"},
		Inputs: map[string]*ir.Node{"INDEX": constNode("last")},
	}
	v, err := exprListGet(s, node)
	if err != nil {
		t.Fatalf("exprListGet: %v", err)
	}
	want := `(lookupList(target, "mylist").value[lookupList(target, "mylist").value.length - 1] ?? "")`
	if got := v.AsUnknown(); got != want {
		t.Errorf("AsUnknown() = %q, want %q", got, want)
	}
}

func TestExprListGetUsesHelperForRandomIndex(t *testing.T) {
	s := newTestState()
	node := &ir.Node{
		Kind:   ir.KindListGet,
		Fields: map[string]string{"id": "mylist"},
		Inputs: map[string]*ir.Node{"INDEX": constNode("random")},
	}
	v, err := exprListGet(s, node)
	if err != nil {
		t.Fatalf("exprListGet: %v", err)
	}
	want := `listGet(lookupList(target, "mylist"), "random")`
	if got := v.AsUnknown(); got != want {
		t.Errorf("AsUnknown() = %q, want %q", got, want)
	}
}

func TestExprSensingOfHoistsConstantTargetOnce(t *testing.T) {
	s := newTestState()
	node := &ir.Node{
		Kind:   ir.KindSensingOf,
		Fields: map[string]string{"property": "x position"},
		Inputs: map[string]*ir.Node{"OBJECT": constNode("Sprite1")},
	}
	if _, err := exprSensingOf(s, node); err != nil {
		t.Fatalf("exprSensingOf: %v", err)
	}
	if _, err := exprSensingOf(s, node); err != nil {
		t.Fatalf("exprSensingOf (second call): %v", err)
	}
	entries := s.Setup.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected exactly one hoisted binding across two identical calls, got %d", len(entries))
	}
	if entries[0].Expr != `sensingOfObject("Sprite1")` {
		t.Errorf("hoisted expr = %q", entries[0].Expr)
	}
}

func TestExprSensingDateFieldDayOfWeekAddsOne(t *testing.T) {
	s := newTestState()
	v, err := exprSensingDateField(s, &ir.Node{Kind: ir.KindSensingDayOfWeek})
	if err != nil {
		t.Fatalf("exprSensingDateField: %v", err)
	}
	if got := v.AsNumber(); got != "((new Date()).getDay() + 1)" {
		t.Errorf("AsNumber() = %q", got)
	}
}

func TestExprProcedureCallInsertsYieldOnTightRecursion(t *testing.T) {
	s := newTestState()
	s.Yields = true
	s.OwnProcedureCode = "recurse %s"
	node := &ir.Node{
		Kind:   ir.KindProceduresCall,
		Fields: map[string]string{"proccode": "recurse %s", "argumentIds": "X"},
		Inputs: map[string]*ir.Node{"X": constNode("1")},
	}
	v, err := exprProcedureCall(s, node)
	if err != nil {
		t.Fatalf("exprProcedureCall: %v", err)
	}
	if s.YieldCount != 1 {
		t.Errorf("expected one yield inserted for tight recursion, got %d", s.YieldCount)
	}
	if got := v.AsUnknown(); got != `(thread.procedures["recurse %s"](1))` {
		t.Errorf("AsUnknown() = %q", got)
	}
}

func TestExprProcedureCallDelegatesToSuspendableCallee(t *testing.T) {
	s := newTestState()
	s.Yields = true
	node := &ir.Node{
		Kind:   ir.KindProceduresCall,
		Fields: map[string]string{"proccode": "other %s", "yields": "true", "argumentIds": "X"},
		Inputs: map[string]*ir.Node{"X": constNode("1")},
	}
	v, err := exprProcedureCall(s, node)
	if err != nil {
		t.Fatalf("exprProcedureCall: %v", err)
	}
	if got := v.AsUnknown(); got != `(yield* thread.procedures["other %s"](1))` {
		t.Errorf("AsUnknown() = %q", got)
	}
}

func TestExprBroadcastFunctionRequiresYields(t *testing.T) {
	s := newTestState()
	node := &ir.Node{
		Kind:   ir.KindBroadcastFunction,
		Inputs: map[string]*ir.Node{"BROADCAST_OPTION": constNode("go")},
	}
	if _, err := exprBroadcastFunction(s, node); err == nil {
		t.Errorf("expected a YieldMismatchError when script.yields is false")
	}

	s.Yields = true
	v, err := exprBroadcastFunction(s, node)
	if err != nil {
		t.Fatalf("exprBroadcastFunction: %v", err)
	}
	if !s.BroadcastWaited {
		t.Errorf("expected BroadcastWaited to be set")
	}
	if got := v.AsUnknown(); got != `(yield* broadcastFunction("go"))` {
		t.Errorf("AsUnknown() = %q", got)
	}
}

func TestCompatArgsObjectOrdersKeysDeterministically(t *testing.T) {
	s := newTestState()
	node := &ir.Node{
		Inputs: map[string]*ir.Node{
			"B": constNode("2"),
			"A": constNode("1"),
		},
	}
	out, err := compatArgsObject(s, node)
	if err != nil {
		t.Fatalf("compatArgsObject: %v", err)
	}
	if out != `{"A": 1, "B": 2}` {
		t.Errorf("compatArgsObject = %q", out)
	}
}

func TestExprMathPolygonComputesInteriorAngle(t *testing.T) {
	s := newTestState()
	node := &ir.Node{Inputs: map[string]*ir.Node{"SIDES": constNode("4")}}
	v, err := exprMathPolygon(s, node)
	if err != nil {
		t.Fatalf("exprMathPolygon: %v", err)
	}
	if got := v.AsNumberOrNaN(); got != "(((4) - 2) * 180 / (4))" {
		t.Errorf("AsNumberOrNaN() = %q", got)
	}
}
