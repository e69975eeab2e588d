package lower

import (
	"testing"

	"jitc/internal/ir"
)

func TestStmtChangeXAddsToCurrentPosition(t *testing.T) {
	s := newTestState()
	node := &ir.Node{Kind: ir.KindMotionChangeX, Inputs: map[string]*ir.Node{"DX": constNode("10")}}
	if err := stmtChangeX(s, node); err != nil {
		t.Fatalf("stmtChangeX: %v", err)
	}
	want := "target.setXY(target.x + 10, target.y);\n"
	if got := s.Body.String(); got != want {
		t.Errorf("Body = %q, want %q", got, want)
	}
}

func TestStmtSetDirectionPassesNumberOperand(t *testing.T) {
	s := newTestState()
	node := &ir.Node{Kind: ir.KindMotionSetDirection, Inputs: map[string]*ir.Node{"DIRECTION": constNode("90")}}
	if err := stmtSetDirection(s, node); err != nil {
		t.Fatalf("stmtSetDirection: %v", err)
	}
	want := "target.setDirection(90);\n"
	if got := s.Body.String(); got != want {
		t.Errorf("Body = %q, want %q", got, want)
	}
}

func TestStmtSetRotationStyleQuotesStyleField(t *testing.T) {
	s := newTestState()
	node := &ir.Node{Kind: ir.KindMotionSetRotationStyle, Fields: map[string]string{"style": "left-right"}}
	if err := stmtSetRotationStyle(s, node); err != nil {
		t.Fatalf("stmtSetRotationStyle: %v", err)
	}
	want := `target.setRotationStyle("left-right");` + "\n"
	if got := s.Body.String(); got != want {
		t.Errorf("Body = %q, want %q", got, want)
	}
}

func TestStmtSetXYClearsInterpolationAfterModuloInEitherOperand(t *testing.T) {
	s := newTestState()
	node := &ir.Node{
		Kind: ir.KindMotionSetXY,
		Inputs: map[string]*ir.Node{
			"X": constNode("1"),
			"Y": {Kind: ir.KindOpMod, Inputs: map[string]*ir.Node{
				"A": constNode("10"),
				"B": constNode("4"),
			}},
		},
	}
	if err := stmtSetXY(s, node); err != nil {
		t.Fatalf("stmtSetXY: %v", err)
	}
	got := s.Body.String()
	want := "target.setXY(1, (mod(10, 4) || 0));\ntarget.interpolationData = null;\n"
	if got != want {
		t.Errorf("Body = %q, want %q", got, want)
	}
}

func TestStmtStepMovesByRuntimeHelper(t *testing.T) {
	s := newTestState()
	node := &ir.Node{Kind: ir.KindMotionStep, Inputs: map[string]*ir.Node{"STEPS": constNode("10")}}
	if err := stmtStep(s, node); err != nil {
		t.Fatalf("stmtStep: %v", err)
	}
	want := "runtime.ext_scratch3_motion._moveSteps(10, target);\n"
	if got := s.Body.String(); got != want {
		t.Errorf("Body = %q, want %q", got, want)
	}
}
