package lower

import (
	"fmt"

	"jitc/internal/extension"
	"jitc/internal/ir"
)

// StmtList lowers a nested statement list per the descent contract:
// push a frame (marking whether this stack is a loop body), clear the
// Variable Tracker on entry, track which statement is last as we go (for
// IsLastBlockInLoop), and clear the tracker again on exit since control
// may fall through to code that assumed nothing about prior state.
func StmtList(s *State, stmts ir.Stack, isLoop bool) error {
	s.Frames.Push(isLoop)
	defer s.Frames.Pop()

	s.ClearTracker()
	for i, node := range stmts {
		s.Frames.SetLastBlock(i == len(stmts)-1)
		if err := Stmt(s, node); err != nil {
			return err
		}
	}
	s.ClearTracker()
	return nil
}

// Stmt dispatches a single statement node.
func Stmt(s *State, node *ir.Node) error {
	if node == nil {
		return nil
	}

	if fn, ok := s.Extensions.LookupStmt(node.Kind); ok {
		if err := fn(node, compilerAdapter{s}, extension.DefaultImports); err != nil {
			s.Log.Warnf("%v", &ExtensionTransformerError{Kind: node.Kind, Err: err})
		}
		return nil
	}

	switch node.Kind {
	case ir.KindControlIf:
		return stmtIf(s, node)
	case ir.KindControlRepeat:
		return stmtRepeat(s, node)
	case ir.KindControlWhile:
		return stmtWhile(s, node)
	case ir.KindControlFor:
		return stmtFor(s, node)
	case ir.KindControlWait:
		return stmtWait(s, node)
	case ir.KindControlWaitUntil:
		return stmtWaitUntil(s, node)
	case ir.KindControlWaitOrUntil:
		return stmtWaitOrUntil(s, node)
	case ir.KindControlAllAtOnce:
		return stmtAllAtOnce(s, node)
	case ir.KindControlStopAll:
		return stmtStopAll(s, node)
	case ir.KindControlStopOthers:
		return stmtStopOthers(s, node)
	case ir.KindControlStopScript:
		return stmtStopScript(s, node)
	case ir.KindControlSwitch:
		return stmtSwitch(s, node)
	case ir.KindControlCase:
		return stmtCase(s, node)
	case ir.KindControlExitCase:
		return stmtExitCase(s, node)
	case ir.KindControlCreateClone:
		return stmtCreateClone(s, node)
	case ir.KindControlDeleteClone:
		return stmtDeleteClone(s, node)
	case ir.KindControlRunAsSprite:
		return stmtRunAsSprite(s, node)
	case ir.KindControlNewScript:
		return stmtNewScript(s, node)

	case ir.KindEventBroadcast:
		return stmtBroadcast(s, node)
	case ir.KindEventBroadcastAndWait:
		return stmtBroadcastAndWait(s, node)

	case ir.KindListAdd:
		return stmtListAdd(s, node)
	case ir.KindListDelete:
		return stmtListDelete(s, node)
	case ir.KindListDeleteAll:
		return stmtListDeleteAll(s, node)
	case ir.KindListHide:
		return stmtListHide(s, node)
	case ir.KindListShow:
		return stmtListShow(s, node)
	case ir.KindListInsert:
		return stmtListInsert(s, node)
	case ir.KindListReplace:
		return stmtListReplace(s, node)
	case ir.KindListForEach:
		return stmtListForEach(s, node)

	case ir.KindLooksStmt, ir.KindPenStmt:
		return stmtOpcodeDispatch(s, node)

	case ir.KindMotionChangeX:
		return stmtChangeX(s, node)
	case ir.KindMotionChangeY:
		return stmtChangeY(s, node)
	case ir.KindMotionIfOnEdgeBounce:
		s.Emit("target.ifOnEdgeBounce();\n")
		return nil
	case ir.KindMotionSetDirection:
		return stmtSetDirection(s, node)
	case ir.KindMotionSetRotationStyle:
		return stmtSetRotationStyle(s, node)
	case ir.KindMotionSetX:
		return stmtSetX(s, node)
	case ir.KindMotionSetY:
		return stmtSetY(s, node)
	case ir.KindMotionSetXY:
		return stmtSetXY(s, node)
	case ir.KindMotionStep:
		return stmtStep(s, node)

	case ir.KindProceduresReturn:
		return stmtProceduresReturn(s, node)
	case ir.KindProceduresCallStmt:
		return stmtProceduresCall(s, node)

	case ir.KindTimerReset:
		s.Emit("timer.reset();\n")
		return nil
	case ir.KindTwDebugger:
		s.Emit("debugger;\n")
		return nil

	case ir.KindVarHide:
		return stmtVarHide(s, node)
	case ir.KindVarShow:
		return stmtVarShow(s, node)
	case ir.KindVarSet:
		return stmtVarSet(s, node)

	case ir.KindVisualReport:
		return stmtVisualReport(s, node)
	case ir.KindSensingSetOf:
		return stmtSensingSetOf(s, node)

	case ir.KindAddonsCall:
		return stmtAddonsCall(s, node)
	case ir.KindCompatStmt:
		return stmtCompat(s, node)

	case ir.KindNoop:
		return nil

	default:
		return newUnknownKind(node)
	}
}

func stmtIf(s *State, node *ir.Node) error {
	cond, err := Expr(s, node.Input("CONDITION"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("if (%s) {\n", cond.AsBoolean()))
	if err := StmtList(s, node.Body("SUBSTACK"), false); err != nil {
		return err
	}
	s.Emit("}\n")

	if elseBody := node.Body("SUBSTACK2"); len(elseBody) > 0 {
		s.Emit("else {\n")
		if err := StmtList(s, elseBody, false); err != nil {
			return err
		}
		s.Emit("}\n")
	}
	return nil
}
