package lower

import (
	"golang.org/x/xerrors"

	"jitc/internal/ir"
)

// UnknownKindError is raised when a node kind has no built-in dispatch
// and no registered extension. Fatal: aborts compilation of the script.
type UnknownKindError struct {
	Kind ir.Kind
	ID   string
}

func (e *UnknownKindError) Error() string {
	return xerrors.Errorf("unknown block kind %q (id=%s): no built-in or extension handler", e.Kind, e.ID).Error()
}

func newUnknownKind(n *ir.Node) error {
	if n == nil {
		return &UnknownKindError{}
	}
	return &UnknownKindError{Kind: n.Kind, ID: n.ID}
}

// YieldMismatchError is raised when the compiler would emit a yield but
// the script header did not declare Yields: indicates an IR producer
// bug, not a user-facing condition.
type YieldMismatchError struct {
	Reason string
}

func (e *YieldMismatchError) Error() string {
	return xerrors.Errorf("yield emitted but script.yields is false: %s", e.Reason).Error()
}

// ExtensionTransformerError wraps an error returned by a registered
// extension transformer. A failed statement transformer is logged and
// lowering continues with the next statement. A failed expression
// transformer is logged and returned as this error, which aborts
// compilation of the script, since the expression slot has no value to
// continue with.
type ExtensionTransformerError struct {
	Kind ir.Kind
	Err  error
}

func (e *ExtensionTransformerError) Error() string {
	return xerrors.Errorf("extension transformer for %q failed: %w", e.Kind, e.Err).Error()
}

func (e *ExtensionTransformerError) Unwrap() error { return e.Err }
