package lower

import (
	"fmt"
	"sort"
	"strings"

	"jitc/internal/ir"
	"jitc/internal/typedvalue"
)

// procedureArgOrder recovers the positional order of a procedures.call
// node's arguments. IR producers that preserve call-site order record it
// in the "argumentIds" field as a comma-separated list; lacking that, the
// sorted input-name order is used so the same call always lowers the
// same way.
func procedureArgOrder(node *ir.Node) []string {
	if order, ok := node.Field("argumentIds"); ok && order != "" {
		return strings.Split(order, ",")
	}
	names := make([]string, 0, len(node.Inputs))
	for k := range node.Inputs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// exprProcedureCall lowers procedures.call: a suspension
// delegator is prepended when the callee's own header declares yields,
// and a yield is inserted ahead of the call when it is a tight direct
// recursion (the callee is the enclosing script's own procedure code)
// outside warp mode, so a non-yielding self-recursive custom block
// cannot hang the runtime. The Variable Tracker is cleared afterward
// since another script's thread may run in between.
func exprProcedureCall(s *State, node *ir.Node) (typedvalue.Value, error) {
	code, _ := node.Field("proccode")
	yieldsField, _ := node.Field("yields")
	calleeYields := yieldsField == "true"

	argNames := procedureArgOrder(node)
	argFrags := make([]string, 0, len(argNames))
	for _, name := range argNames {
		v, err := Expr(s, node.Input(name))
		if err != nil {
			return nil, err
		}
		argFrags = append(argFrags, string(v.AsUnknown()))
	}

	tightRecursion := !s.IsWarp && s.OwnProcedureCode != "" && code == s.OwnProcedureCode
	if tightRecursion {
		if err := s.yieldNotWarp(); err != nil {
			return nil, err
		}
	}

	callFrag := fmt.Sprintf("thread.procedures[%q](%s)", code, strings.Join(argFrags, ", "))
	frag := fmt.Sprintf("(%s)", callFrag)
	if calleeYields {
		if err := s.requireYields("procedure call to a yielding callee"); err != nil {
			return nil, err
		}
		frag = fmt.Sprintf("(yield* %s)", callFrag)
	}

	s.ClearTracker()
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Unknown), nil
}

// exprInlineStack lowers control.inlineStackOutput: a nested statement
// list used as a reporter. The nested stack runs inline, assigning its
// result into a hoisted local rather than the enclosing procedure's own
// return slot — procedures.return inside the nested stack targets this
// local via State.InlineReturnVar instead of emitting a bare `return`.
func exprInlineStack(s *State, node *ir.Node) (typedvalue.Value, error) {
	resultVar := s.Locals.Next()
	s.Emit(fmt.Sprintf("var %s = \"\";\n", resultVar))

	prevReturn := s.InlineReturnVar
	s.InlineReturnVar = resultVar
	defer func() { s.InlineReturnVar = prevReturn }()

	if err := StmtList(s, node.Body("STACK"), false); err != nil {
		return nil, err
	}
	return typedvalue.NewTyped(typedvalue.Fragment(resultVar), typedvalue.Unknown), nil
}

// exprBroadcastFunction lowers pmEventsExpansion.broadcastFunction: it
// starts the named broadcast's hats and suspends until they finish,
// evaluating to their collected return value, so it always requires
// yields the way broadcast-and-wait does.
func exprBroadcastFunction(s *State, node *ir.Node) (typedvalue.Value, error) {
	name, err := Expr(s, node.Input("BROADCAST_OPTION"))
	if err != nil {
		return nil, err
	}
	if err := s.requireYields("broadcast function expression"); err != nil {
		return nil, err
	}
	frag := fmt.Sprintf("(yield* broadcastFunction(%s))", name.AsUnknown())
	s.ClearTracker()
	s.BroadcastWaited = true
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Unknown), nil
}

// exprCompat lowers the compat expression kind: dispatch to the
// compatibility layer for a block with no compiled lowering of its own.
// This is always a suspendable call.
func exprCompat(s *State, node *ir.Node) (typedvalue.Value, error) {
	opcode, _ := node.Field("opcode")
	if err := s.requireYields("compat expression"); err != nil {
		return nil, err
	}
	argsObj, err := compatArgsObject(s, node)
	if err != nil {
		return nil, err
	}
	frag := fmt.Sprintf("(yield* executeInCompatibilityLayer(%q, %s, false))", opcode, argsObj)
	s.ClearTracker()
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Unknown), nil
}

// compatArgsObject assembles an object literal from a compat node's
// inputs, in deterministic key order, for the compatibility layer's
// block-argument contract.
func compatArgsObject(s *State, node *ir.Node) (string, error) {
	if len(node.Inputs) == 0 {
		return "{}", nil
	}
	keys := make([]string, 0, len(node.Inputs))
	for k := range node.Inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("{")
	for i, k := range keys {
		v, err := Expr(s, node.Inputs[k])
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %s", k, v.AsUnknown())
	}
	b.WriteString("}")
	return b.String(), nil
}

// exprMathPolygon lowers math.polygon, PenguinMod's regular-polygon
// interior-angle reporter.
func exprMathPolygon(s *State, node *ir.Node) (typedvalue.Value, error) {
	sides, _, err := numberOperand(s, node.Input("SIDES"))
	if err != nil {
		return nil, err
	}
	frag := fmt.Sprintf("(((%s) - 2) * 180 / (%s))", sides, sides)
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.NumberOrNaN), nil
}
