package typedvalue

import "golang.org/x/text/unicode/norm"

// Constant is a literal value known at compile time, plus a safe-flag
// that is false when the literal's text coincides with a costume or
// sound name and so might be ambiguous in as-safe contexts.
type Constant struct {
	Literal string
	Safe    bool
}

var _ Value = Constant{}

// NewConstant wraps a literal. safe should be computed by the caller by
// checking Literal (normalized via NormalizeForNameMatch) against the
// current costume and sound name sets.
func NewConstant(literal string, safe bool) Constant {
	return Constant{Literal: literal, Safe: safe}
}

// NormalizeForNameMatch applies Unicode NFC normalization so a literal
// and a costume/sound name that differ only in combining-mark
// composition still compare equal.
func NormalizeForNameMatch(s string) string {
	return norm.NFC.String(s)
}

// OptimizationSafe reports the op.equals "optimization-safe" condition:
// the literal's numeric coercion is non-zero and its coerced textual
// form equals its own textual form.
func (c Constant) OptimizationSafe() bool {
	return numericCoerce(c.Literal) != 0 && roundTrips(c.Literal)
}

func (c Constant) AsNumber() Fragment {
	return Fragment(formatNumberLiteral(c.Literal))
}

func (c Constant) AsNumberOrNaN() Fragment {
	return c.AsNumber()
}

func (c Constant) AsString() Fragment {
	return Fragment(quoteString(c.Literal))
}

func (c Constant) AsBoolean() Fragment {
	if toBooleanLiteral(c.Literal) {
		return "true"
	}
	return "false"
}

func (c Constant) AsColor() Fragment {
	if lit, ok := parseHexColor(c.Literal); ok {
		return lit
	}
	return c.AsUnknown()
}

func (c Constant) AsUnknown() Fragment {
	if isAlwaysNumberLiteral(c.Literal) && roundTrips(c.Literal) {
		return Fragment(formatNumberLiteral(c.Literal))
	}
	return c.AsString()
}

func (c Constant) AsSafe() Fragment {
	if c.Safe {
		return c.AsUnknown()
	}
	return c.AsString()
}

func (c Constant) AlwaysNumber() bool {
	return isAlwaysNumberLiteral(c.Literal)
}

func (c Constant) AlwaysNumberOrNaN() bool {
	return c.AlwaysNumber()
}

func (c Constant) NeverNumber() bool {
	return !c.AlwaysNumberOrNaN()
}
