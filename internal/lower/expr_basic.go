package lower

import (
	"fmt"

	"jitc/internal/ir"
	"jitc/internal/typedvalue"
)

// exprArg lowers a procedure-parameter reference (args.boolean,
// args.stringNumber). The parameter's positional index selects which
// pN the factory's inner function bound.
func exprArg(s *State, node *ir.Node, t typedvalue.Tag) (typedvalue.Value, error) {
	idx, _ := node.Field("index")
	return typedvalue.NewTyped(typedvalue.Fragment(fmt.Sprintf("p%s", idx)), t), nil
}

// exprVarGet lowers var.get. If the Variable Tracker already
// holds an entry for this variable id, its last-assigned value is
// preserved; otherwise a fresh Variable with no recorded last-assigned
// value is returned.
func exprVarGet(s *State, node *ir.Node) (typedvalue.Value, error) {
	id, _ := node.Field("id")
	if v, ok := s.Lookup(id); ok {
		return v, nil
	}

	t := typedvalue.Unknown
	switch typ, _ := node.Field("type"); typ {
	case "number":
		t = typedvalue.Number
	case "string":
		t = typedvalue.String
	case "boolean":
		t = typedvalue.Boolean
	}
	return typedvalue.NewVariable(lookupVariableFragment(id), t), nil
}

// lookupVariableFragment is the surface-language accessor for a
// variable by IR id, delegated to the runtime's variable storage
// contract; variable storage itself is an external collaborator.
func lookupVariableFragment(id string) typedvalue.Fragment {
	return typedvalue.Fragment(fmt.Sprintf("lookupVariable(target, %q)", id))
}

// listFragment is the surface-language accessor for a list by IR id.
func listFragment(id string) typedvalue.Fragment {
	return typedvalue.Fragment(fmt.Sprintf("lookupList(target, %q)", id))
}
