package lower

import (
	"fmt"

	"jitc/internal/ir"
	"jitc/internal/typedvalue"
)

// exprListGet lowers data.itemoflist. A literal integer index or the
// literal "last" token is folded into a direct access on the list's
// backing array, guarded by nullish-coalescing when the target runtime
// supports it (jitconfig.SupportsNullishCoalescing); "random" and any
// non-literal index otherwise go through the listGet runtime helper.
func exprListGet(s *State, node *ir.Node) (typedvalue.Value, error) {
	id, _ := node.Field("id")
	list := listFragment(id)

	idxVal, err := Expr(s, node.Input("INDEX"))
	if err != nil {
		return nil, err
	}

	if c, ok := idxVal.(typedvalue.Constant); ok && s.Config.SupportsNullishCoalescing {
		if c.Literal == "last" {
			frag := fmt.Sprintf(`(%s.value[%s.value.length - 1] ?? "")`, list, list)
			return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Unknown), nil
		}
		if isIntegerConstant(c) {
			frag := fmt.Sprintf(`(%s.value[(%s | 0) - 1] ?? "")`, list, c.AsNumber())
			return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Unknown), nil
		}
	}

	frag := fmt.Sprintf("listGet(%s, %s)", list, idxVal.AsUnknown())
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Unknown), nil
}

func exprListLength(s *State, node *ir.Node) (typedvalue.Value, error) {
	id, _ := node.Field("id")
	frag := fmt.Sprintf("(%s.value).length", listFragment(id))
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Number), nil
}

func exprListContains(s *State, node *ir.Node) (typedvalue.Value, error) {
	id, _ := node.Field("id")
	item, err := Expr(s, node.Input("ITEM"))
	if err != nil {
		return nil, err
	}
	frag := fmt.Sprintf("listContains(%s, %s)", listFragment(id), item.AsUnknown())
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Boolean), nil
}

func exprListIndexOf(s *State, node *ir.Node) (typedvalue.Value, error) {
	id, _ := node.Field("id")
	item, err := Expr(s, node.Input("ITEM"))
	if err != nil {
		return nil, err
	}
	frag := fmt.Sprintf("listIndexOf(%s, %s)", listFragment(id), item.AsUnknown())
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.Number), nil
}

func exprListContents(s *State, node *ir.Node) (typedvalue.Value, error) {
	id, _ := node.Field("id")
	frag := fmt.Sprintf("listContents(%s)", listFragment(id))
	return typedvalue.NewTyped(typedvalue.Fragment(frag), typedvalue.String), nil
}
