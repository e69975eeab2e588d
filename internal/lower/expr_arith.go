package lower

import (
	"fmt"

	"jitc/internal/ir"
	"jitc/internal/typedvalue"
)

// exprArith lowers the eager binary arithmetic ops. All of them are
// NaN-producing and so are tagged number-or-nan.
func exprArith(s *State, node *ir.Node) (typedvalue.Value, error) {
	a, _, err := numberOperand(s, node.Input("A"))
	if err != nil {
		return nil, err
	}
	b, _, err := numberOperand(s, node.Input("B"))
	if err != nil {
		return nil, err
	}

	var frag string
	switch node.Kind {
	case ir.KindOpAdd:
		frag = fmt.Sprintf("(%s + %s)", a, b)
	case ir.KindOpSubtract:
		frag = fmt.Sprintf("(%s - %s)", a, b)
	case ir.KindOpMultiply:
		frag = fmt.Sprintf("(%s * %s)", a, b)
	case ir.KindOpDivide:
		frag = fmt.Sprintf("(%s / %s)", a, b)
	case ir.KindOpMod:
		s.SawModulo = true
		frag = fmt.Sprintf("mod(%s, %s)", a, b)
	default:
		return nil, newUnknownKind(node)
	}
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.NumberOrNaN), nil
}

func isOptimizationSafeConstant(v typedvalue.Value) bool {
	c, ok := v.(typedvalue.Constant)
	return ok && c.OptimizationSafe()
}

func lowerStringFragment(v typedvalue.Value) string {
	return fmt.Sprintf("(%s).toLowerCase()", v.AsString())
}

// exprEquals implements op.equals's optimization ladder.
func exprEquals(s *State, node *ir.Node) (typedvalue.Value, error) {
	av, err := Expr(s, node.Input("A"))
	if err != nil {
		return nil, err
	}
	bv, err := Expr(s, node.Input("B"))
	if err != nil {
		return nil, err
	}

	if av.NeverNumber() || bv.NeverNumber() {
		frag := fmt.Sprintf("(%s === %s)", lowerStringFragment(av), lowerStringFragment(bv))
		return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Boolean), nil
	}
	if (av.AlwaysNumber() && bv.AlwaysNumber()) || isOptimizationSafeConstant(av) || isOptimizationSafeConstant(bv) {
		frag := fmt.Sprintf("(%s === %s)", av.AsNumber(), bv.AsNumber())
		return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Boolean), nil
	}
	frag := fmt.Sprintf("compareEqual(%s, %s)", av.AsUnknown(), bv.AsUnknown())
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Boolean), nil
}

// exprOrder implements op.less/op.greater. The micro-
// optimization of emitting a negated complementary comparison for the
// intermediate (neither-always-number-nor-never-number) case is left to
// the runtime compare helper rather than re-derived here — see
// DESIGN.md for why inlining it was not safe to guess without the
// original source.
func exprOrder(s *State, node *ir.Node, op string) (typedvalue.Value, error) {
	av, err := Expr(s, node.Input("A"))
	if err != nil {
		return nil, err
	}
	bv, err := Expr(s, node.Input("B"))
	if err != nil {
		return nil, err
	}

	if av.NeverNumber() || bv.NeverNumber() {
		frag := fmt.Sprintf("(%s %s %s)", lowerStringFragment(av), op, lowerStringFragment(bv))
		return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Boolean), nil
	}
	if av.AlwaysNumber() && bv.AlwaysNumber() {
		frag := fmt.Sprintf("(%s %s %s)", av.AsNumber(), op, bv.AsNumber())
		return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Boolean), nil
	}
	helper := "compareLessThan"
	if op == ">" {
		helper = "compareGreaterThan"
	}
	frag := fmt.Sprintf("%s(%s, %s)", helper, av.AsUnknown(), bv.AsUnknown())
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Boolean), nil
}

func exprLogic(s *State, node *ir.Node, op string) (typedvalue.Value, error) {
	av, err := Expr(s, node.Input("A"))
	if err != nil {
		return nil, err
	}
	bv, err := Expr(s, node.Input("B"))
	if err != nil {
		return nil, err
	}
	frag := fmt.Sprintf("(%s %s %s)", av.AsBoolean(), op, bv.AsBoolean())
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Boolean), nil
}

func exprNot(s *State, node *ir.Node) (typedvalue.Value, error) {
	v, err := Expr(s, node.Input("A"))
	if err != nil {
		return nil, err
	}
	return typedvalue.NewTyped(typedvalue.Fragment(fmt.Sprintf("!%s", v.AsBoolean())), typedvalue.Boolean), nil
}

func exprRandom(s *State, node *ir.Node) (typedvalue.Value, error) {
	aNode, bNode := node.Input("A"), node.Input("B")
	av, err := Expr(s, aNode)
	if err != nil {
		return nil, err
	}
	bv, err := Expr(s, bNode)
	if err != nil {
		return nil, err
	}
	if isIntegerConstant(av) && isIntegerConstant(bv) {
		frag := fmt.Sprintf("randomInt(%s, %s)", av.AsNumber(), bv.AsNumber())
		return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Number), nil
	}
	frag := fmt.Sprintf("randomFloat(%s, %s)", av.AsNumber(), bv.AsNumber())
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Number), nil
}

func isIntegerConstant(v typedvalue.Value) bool {
	c, ok := v.(typedvalue.Constant)
	if !ok {
		return false
	}
	for _, r := range c.Literal {
		if r == '.' || r == 'e' || r == 'E' {
			return false
		}
	}
	return c.AlwaysNumber()
}

func exprJoin(s *State, node *ir.Node) (typedvalue.Value, error) {
	av, err := Expr(s, node.Input("A"))
	if err != nil {
		return nil, err
	}
	bv, err := Expr(s, node.Input("B"))
	if err != nil {
		return nil, err
	}
	frag := fmt.Sprintf("(%s + %s)", av.AsString(), bv.AsString())
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.String), nil
}

func exprLetterOf(s *State, node *ir.Node) (typedvalue.Value, error) {
	idx, _, err := numberOperand(s, node.Input("LETTER"))
	if err != nil {
		return nil, err
	}
	str, err := Expr(s, node.Input("STRING"))
	if err != nil {
		return nil, err
	}
	frag := fmt.Sprintf(`(%s[(%s | 0) - 1] || "")`, str.AsString(), idx)
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.String), nil
}

func exprStringLength(s *State, node *ir.Node) (typedvalue.Value, error) {
	str, err := Expr(s, node.Input("STRING"))
	if err != nil {
		return nil, err
	}
	return typedvalue.NewTyped(typedvalue.Fragment(fmt.Sprintf("(%s).length", str.AsString())), typedvalue.Number), nil
}

func exprStringContains(s *State, node *ir.Node) (typedvalue.Value, error) {
	str1, err := Expr(s, node.Input("STRING1"))
	if err != nil {
		return nil, err
	}
	str2, err := Expr(s, node.Input("STRING2"))
	if err != nil {
		return nil, err
	}
	frag := fmt.Sprintf("(%s).includes(%s)", lowerStringFragment(str1), lowerStringFragment(str2))
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Boolean), nil
}

func exprMathUnary(s *State, node *ir.Node) (typedvalue.Value, error) {
	x, _, err := numberOperand(s, node.Input("A"))
	if err != nil {
		return nil, err
	}
	var frag string
	switch node.Kind {
	case ir.KindOpAbs:
		frag = fmt.Sprintf("Math.abs(%s)", x)
	case ir.KindOpFloor:
		frag = fmt.Sprintf("Math.floor(%s)", x)
	case ir.KindOpCeiling:
		frag = fmt.Sprintf("Math.ceil(%s)", x)
	case ir.KindOpRound:
		frag = fmt.Sprintf("Math.round(%s)", x)
	case ir.KindOpExp:
		frag = fmt.Sprintf("Math.exp(%s)", x)
	case ir.KindOpPow10:
		frag = fmt.Sprintf("Math.pow(10, %s)", x)
	case ir.KindOpAtan:
		frag = fmt.Sprintf("(Math.atan(%s) * 180 / Math.PI)", x)
	default:
		return nil, newUnknownKind(node)
	}
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Number), nil
}

func exprMathNaN(s *State, node *ir.Node) (typedvalue.Value, error) {
	x, _, err := numberOperand(s, node.Input("A"))
	if err != nil {
		return nil, err
	}
	var frag string
	switch node.Kind {
	case ir.KindOpSqrt:
		frag = fmt.Sprintf("Math.sqrt(%s)", x)
	case ir.KindOpLn:
		frag = fmt.Sprintf("Math.log(%s)", x)
	case ir.KindOpLog:
		frag = fmt.Sprintf("(Math.log(%s) / Math.LN10)", x)
	case ir.KindOpAsin:
		frag = fmt.Sprintf("(Math.asin(%s) * 180 / Math.PI)", x)
	case ir.KindOpAcos:
		frag = fmt.Sprintf("(Math.acos(%s) * 180 / Math.PI)", x)
	default:
		return nil, newUnknownKind(node)
	}
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.NumberOrNaN), nil
}

// exprTrig implements sine/cosine with the 1e10 rounding canonicalization
// so that e.g. cos(90 degrees) evaluates to exactly 0.
func exprTrig(s *State, node *ir.Node, sine bool) (typedvalue.Value, error) {
	x, _, err := numberOperand(s, node.Input("A"))
	if err != nil {
		return nil, err
	}
	fn := "Math.cos"
	if sine {
		fn = "Math.sin"
	}
	frag := fmt.Sprintf("(Math.round(%s(%s * Math.PI / 180) * 1e10) / 1e10)", fn, x)
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.NumberOrNaN), nil
}

func exprTan(s *State, node *ir.Node) (typedvalue.Value, error) {
	x, _, err := numberOperand(s, node.Input("A"))
	if err != nil {
		return nil, err
	}
	frag := fmt.Sprintf("tan(%s)", x)
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.NumberOrNaN), nil
}

// exprAdvLog lowers op.advlog as log(right)/log(left).
func exprAdvLog(s *State, node *ir.Node) (typedvalue.Value, error) {
	left, _, err := numberOperand(s, node.Input("A"))
	if err != nil {
		return nil, err
	}
	right, _, err := numberOperand(s, node.Input("B"))
	if err != nil {
		return nil, err
	}
	frag := fmt.Sprintf("(Math.log(%s) / Math.log(%s))", right, left)
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.NumberOrNaN), nil
}
