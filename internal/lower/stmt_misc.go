package lower

import (
	"fmt"

	"jitc/internal/ir"
	"jitc/internal/typedvalue"
)

func stmtVarSet(s *State, node *ir.Node) error {
	id, _ := node.Field("id")
	val, err := Expr(s, node.Input("VALUE"))
	if err != nil {
		return err
	}
	frag := lookupVariableFragment(id)
	s.Emit(fmt.Sprintf("%s = %s;\n", frag, val.AsUnknown()))

	t := typedvalue.Unknown
	switch typ, _ := node.Field("type"); typ {
	case "number":
		t = typedvalue.Number
	case "string":
		t = typedvalue.String
	case "boolean":
		t = typedvalue.Boolean
	}
	s.Track(id, typedvalue.NewVariable(frag, t).WithLast(val))
	return nil
}

func stmtVarHide(s *State, node *ir.Node) error {
	id, _ := node.Field("id")
	s.Emit(fmt.Sprintf("hideVariable(target, %q);\n", id))
	return nil
}

func stmtVarShow(s *State, node *ir.Node) error {
	id, _ := node.Field("id")
	s.Emit(fmt.Sprintf("showVariable(target, %q);\n", id))
	return nil
}

func stmtListAdd(s *State, node *ir.Node) error {
	id, _ := node.Field("id")
	item, err := Expr(s, node.Input("ITEM"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("listAdd(%s, %s);\n", listFragment(id), item.AsUnknown()))
	return nil
}

func stmtListDelete(s *State, node *ir.Node) error {
	id, _ := node.Field("id")
	idx, err := Expr(s, node.Input("INDEX"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("listDelete(%s, %s);\n", listFragment(id), idx.AsUnknown()))
	return nil
}

func stmtListDeleteAll(s *State, node *ir.Node) error {
	id, _ := node.Field("id")
	s.Emit(fmt.Sprintf("%s.value.length = 0;\n", listFragment(id)))
	return nil
}

func stmtListHide(s *State, node *ir.Node) error {
	id, _ := node.Field("id")
	s.Emit(fmt.Sprintf("hideList(target, %q);\n", id))
	return nil
}

func stmtListShow(s *State, node *ir.Node) error {
	id, _ := node.Field("id")
	s.Emit(fmt.Sprintf("showList(target, %q);\n", id))
	return nil
}

func stmtListInsert(s *State, node *ir.Node) error {
	id, _ := node.Field("id")
	idx, err := Expr(s, node.Input("INDEX"))
	if err != nil {
		return err
	}
	item, err := Expr(s, node.Input("ITEM"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("listInsert(%s, %s, %s);\n", listFragment(id), idx.AsUnknown(), item.AsUnknown()))
	return nil
}

func stmtListReplace(s *State, node *ir.Node) error {
	id, _ := node.Field("id")
	idx, err := Expr(s, node.Input("INDEX"))
	if err != nil {
		return err
	}
	item, err := Expr(s, node.Input("ITEM"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("listReplace(%s, %s, %s);\n", listFragment(id), idx.AsUnknown(), item.AsUnknown()))
	return nil
}

// stmtListForEach lowers list.forEach: a counter-driven loop binding the
// current item into the block's own loop variable before each iteration.
func stmtListForEach(s *State, node *ir.Node) error {
	varID, _ := node.Field("id")
	listID, _ := node.Field("listId")
	listFrag := listFragment(listID)
	varFrag := lookupVariableFragment(varID)
	counter := s.Locals.Next()

	s.Emit(fmt.Sprintf("for (var %s = 1; %s <= %s.value.length; %s++) {\n", counter, counter, listFrag, counter))
	s.Emit(fmt.Sprintf("%s = listGet(%s, %s);\n", varFrag, listFrag, counter))
	if err := StmtList(s, node.Body("SUBSTACK"), true); err != nil {
		return err
	}
	if err := s.yieldLoop(); err != nil {
		return err
	}
	s.Emit("}\n")
	return nil
}

func stmtProceduresReturn(s *State, node *ir.Node) error {
	val, err := Expr(s, node.Input("VALUE"))
	if err != nil {
		return err
	}
	if s.InlineReturnVar != "" {
		s.Emit(fmt.Sprintf("%s = %s;\n", s.InlineReturnVar, val.AsUnknown()))
		return nil
	}
	s.Emit(fmt.Sprintf("return %s;\n", val.AsUnknown()))
	return nil
}

func stmtProceduresCall(s *State, node *ir.Node) error {
	v, err := exprProcedureCall(s, node)
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("%s;\n", v.AsUnknown()))
	return nil
}

func stmtVisualReport(s *State, node *ir.Node) error {
	val, err := Expr(s, node.Input("VALUE"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("runtime.visualReport(target, %s);\n", val.AsUnknown()))
	return nil
}

func stmtSensingSetOf(s *State, node *ir.Node) error {
	property, _ := node.Field("property")
	objVal, err := Expr(s, node.Input("OBJECT"))
	if err != nil {
		return err
	}
	val, err := Expr(s, node.Input("VALUE"))
	if err != nil {
		return err
	}
	targetFrag := fmt.Sprintf("sensingOfObject(%s)", objVal.AsString())
	s.Emit(fmt.Sprintf("sensingSetOfProperty(%s, %q, %s);\n", targetFrag, property, val.AsUnknown()))
	return nil
}

// stmtOpcodeDispatch lowers the looks/pen umbrella statement kinds,
// which carry the specific opcode to run in a field rather than a
// distinct Kind per block, onto the runtime's opcode lookup via the
// target handle's runtime.getOpcodeFunction contract.
func stmtOpcodeDispatch(s *State, node *ir.Node) error {
	opcode, _ := node.Field("opcode")
	argsObj, err := compatArgsObject(s, node)
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("runtime.getOpcodeFunction(%q)(%s, util);\n", opcode, argsObj))
	return nil
}

func stmtAddonsCall(s *State, node *ir.Node) error {
	code, _ := node.Field("code")
	argsObj, err := compatArgsObject(s, node)
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("runtime.getAddonBlock(%q).call(%s, util);\n", code, argsObj))
	return nil
}

func stmtCompat(s *State, node *ir.Node) error {
	v, err := exprCompat(s, node)
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("%s;\n", v.AsUnknown()))
	return nil
}
