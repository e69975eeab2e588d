package typedvalue

// Variable is a most-recent-assignment tracker: a source fragment and
// static type like Typed, plus an optional record of the last value
// assigned to the underlying IR variable. The last-assigned value lets
// predicates (AlwaysNumber, etc.) see through a sequence of assignments
// without re-deriving the variable's runtime value.
type Variable struct {
	Source Fragment
	Type   Tag
	Last   Value // nil if the tracker has nothing recorded
}

var _ Value = Variable{}

// NewVariable constructs a Variable with no recorded last-assigned value.
func NewVariable(source Fragment, t Tag) Variable {
	return Variable{Source: source, Type: t}
}

// WithLast returns a copy recording last as the most recent assignment.
// If last is itself a Variable, its own Last is copied rather than last
// itself, so that self-referential or chained assignments can never form
// a cycle.
func (v Variable) WithLast(last Value) Variable {
	if inner, ok := last.(Variable); ok {
		v.Last = inner.Last
		return v
	}
	v.Last = last
	return v
}

// Cleared returns a copy with no recorded last-assigned value, as
// happens when the Variable Tracker resets.
func (v Variable) Cleared() Variable {
	v.Last = nil
	return v
}

func (v Variable) asTyped() Typed {
	return Typed{Source: v.Source, Type: v.Type}
}

func (v Variable) AsNumber() Fragment       { return v.asTyped().AsNumber() }
func (v Variable) AsNumberOrNaN() Fragment  { return v.asTyped().AsNumberOrNaN() }
func (v Variable) AsString() Fragment       { return v.asTyped().AsString() }
func (v Variable) AsBoolean() Fragment      { return v.asTyped().AsBoolean() }
func (v Variable) AsColor() Fragment        { return v.asTyped().AsColor() }
func (v Variable) AsSafe() Fragment         { return v.AsUnknown() }

func (v Variable) AsUnknown() Fragment {
	return v.Source
}

func (v Variable) AlwaysNumber() bool {
	if v.Last == nil {
		return false
	}
	return v.Last.AlwaysNumber()
}

func (v Variable) AlwaysNumberOrNaN() bool {
	if v.Last == nil {
		return false
	}
	return v.Last.AlwaysNumberOrNaN()
}

func (v Variable) NeverNumber() bool {
	if v.Last == nil {
		return false
	}
	return v.Last.NeverNumber()
}
