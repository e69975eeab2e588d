package lower

import (
	"fmt"

	"jitc/internal/ir"
)

// stmtRepeat lowers control.repeat: a hoisted counter variable, the loop
// body pushed as a loop frame, and yield-loop emitted at the tail. The
// >= 0.5 threshold (rather than a plain > 0) matches the legacy rounding
// behavior of the runtime this targets.
func stmtRepeat(s *State, node *ir.Node) error {
	times, _, err := numberOperand(s, node.Input("TIMES"))
	if err != nil {
		return err
	}
	counter := s.Locals.Next()
	s.Emit(fmt.Sprintf("for (var %s = %s; %s >= 0.5; %s--) {\n", counter, times, counter, counter))
	if err := StmtList(s, node.Body("SUBSTACK"), true); err != nil {
		return err
	}
	if err := s.yieldLoop(); err != nil {
		return err
	}
	s.Emit("}\n")
	return nil
}

// stmtWhile lowers control.while: loop body then yield-loop.
func stmtWhile(s *State, node *ir.Node) error {
	cond, err := Expr(s, node.Input("CONDITION"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("while (%s) {\n", cond.AsBoolean()))
	if err := StmtList(s, node.Body("SUBSTACK"), true); err != nil {
		return err
	}
	if err := s.yieldLoop(); err != nil {
		return err
	}
	s.Emit("}\n")
	return nil
}

// stmtFor lowers control.for: a counter variable bound to the IR's own
// variable id, iterating inclusively from FROM to TO.
func stmtFor(s *State, node *ir.Node) error {
	varID, _ := node.Field("id")
	from, _, err := numberOperand(s, node.Input("FROM"))
	if err != nil {
		return err
	}
	to, _, err := numberOperand(s, node.Input("TO"))
	if err != nil {
		return err
	}
	frag := lookupVariableFragment(varID)
	s.Emit(fmt.Sprintf("for (%s = %s; %s <= %s; %s++) {\n", frag, from, frag, to, frag))
	if err := StmtList(s, node.Body("SUBSTACK"), true); err != nil {
		return err
	}
	if err := s.yieldLoop(); err != nil {
		return err
	}
	s.Emit("}\n")
	return nil
}

// stmtWait lowers control.wait: record the start time, request
// a redraw, yield unconditionally once (even for a zero-length wait, per
// the concrete scenario table), then spin with stuck-or-not-warp yields
// until the duration elapses.
func stmtWait(s *State, node *ir.Node) error {
	dur, _, err := numberOperand(s, node.Input("DURATION"))
	if err != nil {
		return err
	}
	s.Emit("thread.timer = timer();\n")
	s.Emit("runtime.requestRedraw();\n")
	if err := s.emitYield(); err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("while (thread.timer.timeElapsed() < %s) {\n", dur))
	if err := s.yieldStuckOrNotWarp(); err != nil {
		return err
	}
	s.Emit("}\n")
	s.Emit("thread.timer = null;\n")
	return nil
}

// stmtWaitUntil lowers control.waitUntil: clear the tracker,
// then spin with stuck-or-not-warp yields until the condition holds.
func stmtWaitUntil(s *State, node *ir.Node) error {
	s.ClearTracker()
	cond, err := Expr(s, node.Input("CONDITION"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("while (!(%s)) {\n", cond.AsBoolean()))
	if err := s.yieldStuckOrNotWarp(); err != nil {
		return err
	}
	s.Emit("}\n")
	return nil
}

// stmtWaitOrUntil lowers control.waitOrUntil: spin until either the
// duration elapses or the condition holds, whichever comes first.
func stmtWaitOrUntil(s *State, node *ir.Node) error {
	dur, _, err := numberOperand(s, node.Input("DURATION"))
	if err != nil {
		return err
	}
	s.ClearTracker()
	cond, err := Expr(s, node.Input("CONDITION"))
	if err != nil {
		return err
	}
	s.Emit("thread.timer = timer();\n")
	if err := s.emitYield(); err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("while (thread.timer.timeElapsed() < %s && !(%s)) {\n", dur, cond.AsBoolean()))
	if err := s.yieldStuckOrNotWarp(); err != nil {
		return err
	}
	s.Emit("}\n")
	s.Emit("thread.timer = null;\n")
	return nil
}

// stmtAllAtOnce lowers control.allAtOnce: force warp mode for the
// duration of the nested stack.
func stmtAllAtOnce(s *State, node *ir.Node) error {
	prevWarp := s.IsWarp
	s.IsWarp = true
	defer func() { s.IsWarp = prevWarp }()
	return StmtList(s, node.Body("SUBSTACK"), false)
}

// stmtStopAll lowers control.stopAll: a runtime stop, then retire.
func stmtStopAll(s *State, node *ir.Node) error {
	s.Emit("runtime.stopAll();\n")
	s.Emit("retire();\n")
	s.Emit("return;\n")
	return nil
}

func stmtStopOthers(s *State, node *ir.Node) error {
	s.Emit("runtime.stopForTarget(target, thread);\n")
	return nil
}

// stmtStopScript lowers control.stopScript: inside a procedure this only
// aborts the procedure (a bare return); at script top level it retires
// the whole thread.
func stmtStopScript(s *State, node *ir.Node) error {
	if s.IsProcedure {
		s.Emit("return;\n")
		return nil
	}
	s.Emit("retire();\n")
	s.Emit("return;\n")
	return nil
}

// stmtSwitch/stmtCase/stmtExitCase lower control.switch|case|exitCase
// onto a native JS switch. Case fall-through is preserved rather than an
// automatic break inserted per case (see DESIGN.md open-question
// decision): only control.exitCase emits a break.
func stmtSwitch(s *State, node *ir.Node) error {
	val, err := Expr(s, node.Input("VALUE"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("switch (%s) {\n", val.AsUnknown()))
	if err := StmtList(s, node.Body("SUBSTACK"), false); err != nil {
		return err
	}
	s.Emit("}\n")
	return nil
}

func stmtCase(s *State, node *ir.Node) error {
	val, err := Expr(s, node.Input("VALUE"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("case %s:\n", val.AsUnknown()))
	return StmtList(s, node.Body("SUBSTACK"), false)
}

func stmtExitCase(s *State, node *ir.Node) error {
	s.Emit("break;\n")
	return nil
}

func stmtCreateClone(s *State, node *ir.Node) error {
	v, err := Expr(s, node.Input("CLONE_OPTION"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("runtime.ext_scratch3_control._createClone(%s, target);\n", v.AsString()))
	return nil
}

func stmtDeleteClone(s *State, node *ir.Node) error {
	s.Emit("if (!target.isOriginal) {\n")
	s.Emit("runtime.disposeTarget(target);\n")
	s.Emit("runtime.stopForTarget(target);\n")
	s.Emit("retire();\n")
	s.Emit("return;\n")
	s.Emit("}\n")
	return nil
}

// stmtRunAsSprite lowers the PenguinMod "run as sprite" reparenting
// block: swap the active target for the nested stack's duration, then
// restore it.
func stmtRunAsSprite(s *State, node *ir.Node) error {
	sprite, err := Expr(s, node.Input("SPRITE"))
	if err != nil {
		return err
	}
	saved := s.Locals.Next()
	s.Emit(fmt.Sprintf("var %s = target;\n", saved))
	s.Emit(fmt.Sprintf("target = runtime.getSpriteTargetByName(%s) || target;\n", sprite.AsString()))
	if err := StmtList(s, node.Body("SUBSTACK"), false); err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("target = %s;\n", saved))
	return nil
}

// stmtNewScript lowers control.newScript: push a new, non-blocking thread
// that runs the current thread's top block; the node's nested stack is
// not lowered.
func stmtNewScript(s *State, node *ir.Node) error {
	s.Emit("runtime._pushThread(thread.topBlock, target, {stackClick: false});\n")
	return nil
}
