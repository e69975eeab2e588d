package namepool

// Registry holds the three process-wide pools: factory names,
// non-suspendable script names, and suspendable script names. Production
// code uses Default; tests construct their own Registry with NewRegistry so pool
// counters don't leak state between test cases.
type Registry struct {
	Factory     *Pool
	Script      *Pool
	Suspendable *Pool
}

// NewRegistry builds an independent set of the three process-wide pools.
func NewRegistry() *Registry {
	return &Registry{
		Factory:     New("factory"),
		Script:      New("f_"),
		Suspendable: New("g_"),
	}
}

// Default is the production registry used when a caller doesn't supply
// its own, so library call sites keep the drop-in-compatible "three
// process-wide pools" shape.
var Default = NewRegistry()

// NewLocal returns a per-compile temporary-name pool: a local pool per
// compile generates temporaries.
func NewLocal() *Pool {
	return New("tmp_")
}
