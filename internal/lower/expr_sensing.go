package lower

import (
	"fmt"

	"jitc/internal/ir"
	"jitc/internal/typedvalue"
)

// exprSensingOf lowers sensing.of. A constant target name is resolved
// once via a hoisted setup-binding, since the
// target-lookup is pure and the block may run many times per frame; a
// dynamic (reporter-computed) target is re-resolved on every evaluation.
func exprSensingOf(s *State, node *ir.Node) (typedvalue.Value, error) {
	property, _ := node.Field("property")
	objVal, err := Expr(s, node.Input("OBJECT"))
	if err != nil {
		return nil, err
	}

	var targetFrag string
	if c, ok := objVal.(typedvalue.Constant); ok {
		expr := fmt.Sprintf("sensingOfObject(%s)", c.AsString())
		targetFrag = s.Setup.Hoist(expr, s.Locals)
	} else {
		targetFrag = fmt.Sprintf("sensingOfObject(%s)", objVal.AsString())
	}

	frag := fmt.Sprintf("sensingOfProperty(%s, %q)", targetFrag, property)
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Unknown), nil
}

func exprSensingDistance(s *State, node *ir.Node) (typedvalue.Value, error) {
	objVal, err := Expr(s, node.Input("DISTANCETOMENU"))
	if err != nil {
		return nil, err
	}
	frag := fmt.Sprintf("sensingDistanceTo(%s)", objVal.AsString())
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Number), nil
}

func exprSensingTouching(s *State, node *ir.Node) (typedvalue.Value, error) {
	objVal, err := Expr(s, node.Input("TOUCHINGOBJECTMENU"))
	if err != nil {
		return nil, err
	}
	frag := fmt.Sprintf("target.isTouchingObject(%s)", objVal.AsString())
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Boolean), nil
}

func exprSensingTouchingColor(s *State, node *ir.Node) (typedvalue.Value, error) {
	colorVal, err := Expr(s, node.Input("COLOR"))
	if err != nil {
		return nil, err
	}
	frag := fmt.Sprintf("target.isTouchingColor(%s)", colorVal.AsUnknown())
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Boolean), nil
}

func exprSensingColorTouchingColor(s *State, node *ir.Node) (typedvalue.Value, error) {
	c1, err := Expr(s, node.Input("COLOR"))
	if err != nil {
		return nil, err
	}
	c2, err := Expr(s, node.Input("COLOR2"))
	if err != nil {
		return nil, err
	}
	frag := fmt.Sprintf("target.colorIsTouchingColor(%s, %s)", c1.AsUnknown(), c2.AsUnknown())
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Boolean), nil
}

// exprSensingSimple lowers the nullary sensing reporters that have no
// per-node fields of their own.
func exprSensingSimple(s *State, accessor, which string) (typedvalue.Value, error) {
	var frag string
	switch which {
	case "sensing.answer":
		frag = "ioDevices.keyboard.getAnswer()"
	case "sensing.username":
		frag = "ioDevices.username.getUsername()"
	default:
		frag = fmt.Sprintf("%s()", accessor)
	}
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Unknown), nil
}

func exprSensingDateField(s *State, node *ir.Node) (typedvalue.Value, error) {
	var frag string
	switch node.Kind {
	case ir.KindSensingDate:
		frag = "(new Date()).getDate()"
	case ir.KindSensingDayOfWeek:
		frag = "((new Date()).getDay() + 1)"
	case ir.KindSensingHour:
		frag = "(new Date()).getHours()"
	case ir.KindSensingMinute:
		frag = "(new Date()).getMinutes()"
	case ir.KindSensingSecond:
		frag = "(new Date()).getSeconds()"
	case ir.KindSensingMonth:
		frag = "((new Date()).getMonth() + 1)"
	case ir.KindSensingYear:
		frag = "(new Date()).getFullYear()"
	default:
		return nil, newUnknownKind(node)
	}
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Number), nil
}

func exprKeyboardPressed(s *State, node *ir.Node) (typedvalue.Value, error) {
	keyVal, err := Expr(s, node.Input("KEY_OPTION"))
	if err != nil {
		return nil, err
	}
	frag := fmt.Sprintf("ioDevices.keyboard.getKeyIsDown(%s)", keyVal.AsUnknown())
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Boolean), nil
}
