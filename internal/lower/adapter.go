package lower

import (
	"jitc/internal/ir"
	"jitc/internal/typedvalue"
)

// compilerAdapter exposes a State as the extension.Compiler capability
// surface, so transformers registered by external packages can emit
// directly into the body buffer and recursively lower nested
// expressions without seeing the rest of State's internals.
type compilerAdapter struct {
	s *State
}

func (c compilerAdapter) Emit(fragment string) {
	c.s.Emit(fragment)
}

func (c compilerAdapter) LowerExpr(node *ir.Node) (typedvalue.Value, error) {
	return Expr(c.s, node)
}
