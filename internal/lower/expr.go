package lower

import (
	"jitc/internal/extension"
	"jitc/internal/ir"
	"jitc/internal/typedvalue"
)

// Expr dispatches on an expression node's kind and returns its lowered
// Typed Value. A nil node lowers as an empty-string Constant, matching
// the visual editor's behavior for an unfilled input slot.
func Expr(s *State, node *ir.Node) (typedvalue.Value, error) {
	if node == nil {
		return s.NewConstantValue(""), nil
	}

	if fn, ok := s.Extensions.LookupExpr(node.Kind); ok {
		v, err := fn(node, compilerAdapter{s}, extension.DefaultImports)
		if err != nil {
			s.Log.Warnf("extension transformer for %q failed: %v", node.Kind, err)
			return nil, &ExtensionTransformerError{Kind: node.Kind, Err: err}
		}
		return v, nil
	}

	switch node.Kind {
	case ir.KindConstant:
		lit, _ := node.Field("value")
		return s.NewConstantValue(lit), nil

	case ir.KindArgsBoolean:
		return exprArg(s, node, typedvalue.Boolean)
	case ir.KindArgsStringNumber:
		return exprArg(s, node, typedvalue.Unknown)

	case ir.KindVarGet:
		return exprVarGet(s, node)

	case ir.KindOpAdd, ir.KindOpSubtract, ir.KindOpMultiply, ir.KindOpDivide, ir.KindOpMod:
		return exprArith(s, node)
	case ir.KindOpEquals:
		return exprEquals(s, node)
	case ir.KindOpLess:
		return exprOrder(s, node, "<")
	case ir.KindOpGreater:
		return exprOrder(s, node, ">")
	case ir.KindOpAnd:
		return exprLogic(s, node, "&&")
	case ir.KindOpOr:
		return exprLogic(s, node, "||")
	case ir.KindOpNot:
		return exprNot(s, node)
	case ir.KindOpRandom:
		return exprRandom(s, node)
	case ir.KindOpJoin:
		return exprJoin(s, node)
	case ir.KindOpLetterOf:
		return exprLetterOf(s, node)
	case ir.KindOpLength:
		return exprStringLength(s, node)
	case ir.KindOpContains:
		return exprStringContains(s, node)
	case ir.KindOpAbs, ir.KindOpFloor, ir.KindOpCeiling, ir.KindOpRound, ir.KindOpExp, ir.KindOpPow10, ir.KindOpAtan:
		return exprMathUnary(s, node)
	case ir.KindOpSqrt, ir.KindOpLn, ir.KindOpLog, ir.KindOpAsin, ir.KindOpAcos:
		return exprMathNaN(s, node)
	case ir.KindOpSin:
		return exprTrig(s, node, true)
	case ir.KindOpCos:
		return exprTrig(s, node, false)
	case ir.KindOpTan:
		return exprTan(s, node)
	case ir.KindOpAdvLog:
		return exprAdvLog(s, node)

	case ir.KindListGet:
		return exprListGet(s, node)
	case ir.KindListLength:
		return exprListLength(s, node)
	case ir.KindListContains:
		return exprListContains(s, node)
	case ir.KindListIndexOf:
		return exprListIndexOf(s, node)
	case ir.KindListContents:
		return exprListContents(s, node)

	case ir.KindSensingOf:
		return exprSensingOf(s, node)
	case ir.KindSensingDistance:
		return exprSensingDistance(s, node)
	case ir.KindSensingTouching:
		return exprSensingTouching(s, node)
	case ir.KindSensingTouchingColor:
		return exprSensingTouchingColor(s, node)
	case ir.KindSensingColorTouchColor:
		return exprSensingColorTouchingColor(s, node)
	case ir.KindSensingAnswer:
		return exprSensingSimple(s, "ioDevices.keyboard", "sensing.answer")
	case ir.KindSensingUsername:
		return exprSensingSimple(s, "ioDevices.username", "sensing.username")
	case ir.KindSensingDaysSince2000:
		return typedvalue.NewTyped("daysSince2000()", typedvalue.Number), nil
	case ir.KindSensingDate, ir.KindSensingDayOfWeek, ir.KindSensingHour, ir.KindSensingMinute,
		ir.KindSensingSecond, ir.KindSensingMonth, ir.KindSensingYear:
		return exprSensingDateField(s, node)

	case ir.KindTimerGet:
		return typedvalue.NewTyped("timer()", typedvalue.Number), nil

	case ir.KindMotionX:
		return typedvalue.NewTyped("target.x", typedvalue.Number), nil
	case ir.KindMotionY:
		return typedvalue.NewTyped("target.y", typedvalue.Number), nil
	case ir.KindMotionDirection:
		return typedvalue.NewTyped("target.direction", typedvalue.Number), nil

	case ir.KindMouseX:
		return typedvalue.NewTyped("ioDevices.mouse.getScratchX()", typedvalue.Number), nil
	case ir.KindMouseY:
		return typedvalue.NewTyped("ioDevices.mouse.getScratchY()", typedvalue.Number), nil
	case ir.KindMouseDown:
		return typedvalue.NewTyped("ioDevices.mouse.getIsDown()", typedvalue.Boolean), nil

	case ir.KindKeyboardPressed:
		return exprKeyboardPressed(s, node)
	case ir.KindTwLastKeyPressed:
		return typedvalue.NewTyped("ioDevices.keyboard.getLastKeyPressed()", typedvalue.Unknown), nil

	case ir.KindLooksSize:
		return typedvalue.NewTyped("target.size", typedvalue.Number), nil
	case ir.KindLooksCostumeNum:
		return typedvalue.NewTyped("target.currentCostume + 1", typedvalue.Number), nil
	case ir.KindLooksCostumeName:
		return typedvalue.NewTyped("target.getCostumes()[target.currentCostume].name", typedvalue.Unknown), nil
	case ir.KindLooksBackdropNum:
		return typedvalue.NewTyped("stage.currentCostume + 1", typedvalue.Number), nil
	case ir.KindLooksBackdropName:
		return typedvalue.NewTyped("stage.getCostumes()[stage.currentCostume].name", typedvalue.Unknown), nil

	case ir.KindProceduresCall:
		return exprProcedureCall(s, node)

	case ir.KindControlInlineStackOutput:
		return exprInlineStack(s, node)

	case ir.KindBroadcastFunction:
		return exprBroadcastFunction(s, node)

	case ir.KindCompatExpr:
		return exprCompat(s, node)

	case ir.KindMathPolygon:
		return exprMathPolygon(s, node)

	case ir.KindNoop:
		s.Log.Warnf("unexpected noop expression node id=%s", node.ID)
		return s.NewConstantValue(""), nil

	default:
		return nil, newUnknownKind(node)
	}
}

// numberOperand lowers node and returns its AsNumber fragment together
// with the lowered value, a shorthand used throughout the arithmetic
// rules.
func numberOperand(s *State, node *ir.Node) (typedvalue.Fragment, typedvalue.Value, error) {
	v, err := Expr(s, node)
	if err != nil {
		return "", nil, err
	}
	return v.AsNumber(), v, nil
}
