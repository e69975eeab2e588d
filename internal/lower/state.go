// Package lower implements the Expression Lowerer and Statement Lowerer:
// dispatch on IR node kind, appending to an emitted body buffer and
// consulting/mutating the Frame Stack and Variable Tracker as it
// descends a script's statement list.
package lower

import (
	"strings"

	"jitc/internal/extension"
	"jitc/internal/frame"
	"jitc/internal/ir"
	"jitc/internal/jitconfig"
	"jitc/internal/jitlog"
	"jitc/internal/namepool"
	"jitc/internal/typedvalue"
)

// SetupBinding is one hoisted, once-evaluated surface expression.
type SetupBinding struct {
	Expr string
	Name string
}

// setupBindings is the ordered mapping from an arbitrary surface
// expression to a fresh hoisted name: ordered so entries can be emitted
// in insertion order, deduplicated so a repeated expression within one
// compile hoists exactly once.
type setupBindings struct {
	order []SetupBinding
	index map[string]string
}

func newSetupBindings() *setupBindings {
	return &setupBindings{index: make(map[string]string)}
}

// Hoist returns the hoisted name for expr, creating a fresh one from
// pool on first use. Setup-bindings are emitted exactly once per
// distinct source expression within a compilation.
func (s *setupBindings) Hoist(expr string, pool *namepool.Pool) string {
	if name, ok := s.index[expr]; ok {
		return name
	}
	name := pool.Next()
	s.index[expr] = name
	s.order = append(s.order, SetupBinding{Expr: expr, Name: name})
	return name
}

// Entries returns the bindings in insertion order.
func (s *setupBindings) Entries() []SetupBinding {
	return s.order
}

// State is the per-compile state: accumulated body source, the
// variable tracker, setup-bindings, the frame stack, and the
// script-header flags that govern yield insertion.
type State struct {
	Body strings.Builder

	tracker map[string]typedvalue.Variable
	Setup   *setupBindings
	Frames  frame.Stack

	IsWarp           bool
	IsProcedure      bool
	WarpTimer        bool
	Yields           bool
	SawModulo        bool
	OwnProcedureCode string

	// YieldCount counts emitted yield/yield-if-stuck statements, reported
	// in compiler.Stats for diagnostics.
	YieldCount int

	Config     jitconfig.Config
	Log        jitlog.Logger
	Extensions *extension.Registry
	Locals     *namepool.Pool

	// Costumes and Sounds name the current sprite's costumes/sounds, so
	// constant-literal safe-flags can be computed against the
	// costume/sound name ambiguity.
	Costumes map[string]bool
	Sounds   map[string]bool

	// BroadcastWaited records whether a broadcast-and-wait statement or a
	// broadcast-function expression was lowered, marking the compilation
	// as having yielded.
	BroadcastWaited bool

	// InlineReturnVar, when non-empty, names the hoisted local that a
	// procedures.return statement assigns into instead of emitting a bare
	// return, because the enclosing stack is an inline-stack-output
	// expression rather than the script's own procedure body.
	InlineReturnVar string
}

// NewState constructs a fresh per-compile State.
func NewState(cfg jitconfig.Config, log jitlog.Logger, ext *extension.Registry) *State {
	if log == nil {
		log = jitlog.Nop{}
	}
	if ext == nil {
		ext = extension.Default
	}
	return &State{
		tracker:    make(map[string]typedvalue.Variable),
		Setup:      newSetupBindings(),
		Config:     cfg,
		Log:        log,
		Extensions: ext,
		Locals:     namepool.NewLocal(),
	}
}

// IsSafeLiteral reports whether literal's text does not collide with a
// known costume or sound name.
func (s *State) IsSafeLiteral(literal string) bool {
	norm := typedvalue.NormalizeForNameMatch(literal)
	for _, names := range []map[string]bool{s.Costumes, s.Sounds} {
		for name, present := range names {
			if present && typedvalue.NormalizeForNameMatch(name) == norm {
				return false
			}
		}
	}
	return true
}

// NewConstantValue builds a Constant with the safe-flag resolved against
// the current costume/sound name sets.
func (s *State) NewConstantValue(literal string) typedvalue.Constant {
	return typedvalue.NewConstant(literal, s.IsSafeLiteral(literal))
}

// Emit appends a fragment to the accumulated body.
func (s *State) Emit(fragment string) {
	s.Body.WriteString(fragment)
}

// Track records the current typed value for an IR variable id.
func (s *State) Track(varID string, v typedvalue.Variable) {
	s.tracker[varID] = v
}

// Lookup returns the tracked Variable for varID, if any.
func (s *State) Lookup(varID string) (typedvalue.Variable, bool) {
	v, ok := s.tracker[varID]
	return v, ok
}

// ClearTracker empties the Variable Tracker. Called after any statement
// that may reorder thread execution: yield, procedure call, broadcast,
// or stack boundary.
func (s *State) ClearTracker() {
	for k := range s.tracker {
		delete(s.tracker, k)
	}
}

// requireYields enforces yield/yields-declaration consistency for a
// suspension point that is not a bare yield statement (a yield*
// delegation embedded in an expression): what is about to be emitted
// assumes script.yields==true.
func (s *State) requireYields(where string) error {
	if !s.Yields {
		return &YieldMismatchError{Reason: where + " requires yields but script header does not declare yields"}
	}
	return nil
}

// emitYield appends a bare yield, enforcing that every yield emission
// corresponds to script.yields == true at emission time.
func (s *State) emitYield() error {
	if err := s.requireYields("yield"); err != nil {
		return err
	}
	s.Emit("    yield;\n")
	s.YieldCount++
	s.ClearTracker()
	return nil
}

// yieldNotWarp emits "yield" iff the script is not in warp mode.
func (s *State) yieldNotWarp() error {
	if s.IsWarp {
		return nil
	}
	return s.emitYield()
}

// yieldStuckOrNotWarp emits "if (isStuck()) yield" when in warp, plain
// yield otherwise.
func (s *State) yieldStuckOrNotWarp() error {
	if !s.IsWarp {
		return s.emitYield()
	}
	if !s.Yields {
		return &YieldMismatchError{Reason: "script header does not declare yields"}
	}
	s.Emit("    if (isStuck()) yield;\n")
	s.YieldCount++
	s.ClearTracker()
	return nil
}

// yieldLoop implements the yield-loop rule: yield-stuck-or-not-warp if
// the script has a warp timer, else yield-not-warp.
func (s *State) yieldLoop() error {
	if s.WarpTimer {
		return s.yieldStuckOrNotWarp()
	}
	return s.yieldNotWarp()
}
