// Package extension implements the process-wide Extension Hook registry:
// a mapping from extension identifier to per-block-kind transformer
// callables, consulted before built-in dispatch.
package extension

import (
	"sort"
	"sync"

	"jitc/internal/ir"
	"jitc/internal/typedvalue"
)

// Imports exposes the Typed Value constructors and type-tag constants so
// extension authors can produce analyzable values.
type Imports struct {
	NewTyped    func(source typedvalue.Fragment, t typedvalue.Tag) typedvalue.Typed
	NewConstant func(literal string, safe bool) typedvalue.Constant
	Number      typedvalue.Tag
	String      typedvalue.Tag
	Boolean     typedvalue.Tag
	Unknown     typedvalue.Tag
	NumberOrNaN typedvalue.Tag
}

// DefaultImports is passed to every transformer invocation.
var DefaultImports = Imports{
	NewTyped:    typedvalue.NewTyped,
	NewConstant: typedvalue.NewConstant,
	Number:      typedvalue.Number,
	String:      typedvalue.String,
	Boolean:     typedvalue.Boolean,
	Unknown:     typedvalue.Unknown,
	NumberOrNaN: typedvalue.NumberOrNaN,
}

// Compiler is the capability surface a transformer receives to interact
// with the in-progress compile: emitting a string directly to the body
// buffer, and lowering a nested expression.
type Compiler interface {
	Emit(fragment string)
	LowerExpr(node *ir.Node) (typedvalue.Value, error)
}

// ExprTransformer produces a Typed Value for an extension-provided
// expression node.
type ExprTransformer func(node *ir.Node, c Compiler, imports Imports) (typedvalue.Value, error)

// StmtTransformer appends emitted statements for an extension-provided
// statement node.
type StmtTransformer func(node *ir.Node, c Compiler, imports Imports) error

// blockTable maps a block identifier to its transformers.
type blockTable struct {
	expr map[string]ExprTransformer
	stmt map[string]StmtTransformer
}

// Registry is the process-wide mapping from extension identifier to its
// per-block-kind transformers. The zero value is ready to use.
type Registry struct {
	mu      sync.RWMutex
	frozen  bool
	entries map[string]*blockTable
}

// NewRegistry returns an empty, unfrozen registry. Tests construct their
// own instance rather than sharing process state.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*blockTable)}
}

// Default is the production, process-wide registry: populated at
// runtime startup, mutable across the process lifetime.
var Default = NewRegistry()

func (r *Registry) table(id string) *blockTable {
	if r.entries == nil {
		r.entries = make(map[string]*blockTable)
	}
	t, ok := r.entries[id]
	if !ok {
		t = &blockTable{expr: make(map[string]ExprTransformer), stmt: make(map[string]StmtTransformer)}
		r.entries[id] = t
	}
	return t
}

// RegisterExpr installs an expression transformer for extension id,
// block. Panics if called after Freeze: registry mutation is only
// supported before any compilation begins.
func (r *Registry) RegisterExpr(id, block string, fn ExprTransformer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic("extension: RegisterExpr after Freeze")
	}
	r.table(id).expr[block] = fn
}

// RegisterStmt installs a statement transformer for extension id, block.
func (r *Registry) RegisterStmt(id, block string, fn StmtTransformer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic("extension: RegisterStmt after Freeze")
	}
	r.table(id).stmt[block] = fn
}

// Freeze forbids further mutation, after which concurrent reads during
// CompileAll need no further locking discipline beyond the registry's
// own RWMutex.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// LookupExpr returns the transformer registered for kind, if any.
func (r *Registry) LookupExpr(k ir.Kind) (ExprTransformer, bool) {
	id, block := k.Extension()
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	fn, ok := t.expr[block]
	return fn, ok
}

// Extensions returns the ids of all extensions with at least one
// registered transformer, sorted for stable -explain output.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LookupStmt returns the transformer registered for kind, if any.
func (r *Registry) LookupStmt(k ir.Kind) (StmtTransformer, bool) {
	id, block := k.Extension()
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	fn, ok := t.stmt[block]
	return fn, ok
}
