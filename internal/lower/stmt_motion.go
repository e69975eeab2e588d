package lower

import (
	"fmt"

	"jitc/internal/ir"
)

func stmtChangeX(s *State, node *ir.Node) error {
	dx, _, err := numberOperand(s, node.Input("DX"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("target.setXY(target.x + %s, target.y);\n", dx))
	return nil
}

func stmtChangeY(s *State, node *ir.Node) error {
	dy, _, err := numberOperand(s, node.Input("DY"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("target.setXY(target.x, target.y + %s);\n", dy))
	return nil
}

func stmtSetDirection(s *State, node *ir.Node) error {
	dir, _, err := numberOperand(s, node.Input("DIRECTION"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("target.setDirection(%s);\n", dir))
	return nil
}

func stmtSetRotationStyle(s *State, node *ir.Node) error {
	style, _ := node.Field("style")
	s.Emit(fmt.Sprintf("target.setRotationStyle(%q);\n", style))
	return nil
}

// stmtSetX/stmtSetY/stmtSetXY lower motion.setX|setY|setXY: the
// saw-modulo flag is cleared before lowering the position inputs, and if
// lowering them set it again (meaning an op.mod participated in the new
// position), the target's interpolation state is discarded afterward so
// the Kinetic Interpolator never lerps across a coordinate wrap.
func stmtSetX(s *State, node *ir.Node) error {
	s.SawModulo = false
	x, _, err := numberOperand(s, node.Input("X"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("target.setXY(%s, target.y);\n", x))
	if s.SawModulo {
		s.Emit("target.interpolationData = null;\n")
	}
	return nil
}

func stmtSetY(s *State, node *ir.Node) error {
	s.SawModulo = false
	y, _, err := numberOperand(s, node.Input("Y"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("target.setXY(target.x, %s);\n", y))
	if s.SawModulo {
		s.Emit("target.interpolationData = null;\n")
	}
	return nil
}

func stmtSetXY(s *State, node *ir.Node) error {
	s.SawModulo = false
	x, _, err := numberOperand(s, node.Input("X"))
	if err != nil {
		return err
	}
	y, _, err := numberOperand(s, node.Input("Y"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("target.setXY(%s, %s);\n", x, y))
	if s.SawModulo {
		s.Emit("target.interpolationData = null;\n")
	}
	return nil
}

func stmtStep(s *State, node *ir.Node) error {
	steps, _, err := numberOperand(s, node.Input("STEPS"))
	if err != nil {
		return err
	}
	s.Emit(fmt.Sprintf("runtime.ext_scratch3_motion._moveSteps(%s, target);\n", steps))
	return nil
}
