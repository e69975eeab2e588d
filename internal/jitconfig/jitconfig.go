// Package jitconfig holds the compiler's environment signals and
// process-wide tunables, following the teacher's plain-struct-with-
// Default idiom rather than a config file format (the compiler is an
// embedded library, not a standalone service).
package jitconfig

// Config carries the target runtime's environment signals, plus a knob
// left to the compiler's own discretion (the worker count for
// CompileAll).
type Config struct {
	// SupportsNullishCoalescing toggles the list.get direct-indexing
	// optimization.
	SupportsNullishCoalescing bool

	// Debug enables verbose emission logging (runtime.debug).
	Debug bool

	// CompileWorkers bounds CompileAll's concurrency. Zero means "one
	// per script".
	CompileWorkers int
}

// Default returns the configuration a production host targeting a
// modern JavaScript engine would use.
func Default() Config {
	return Config{
		SupportsNullishCoalescing: true,
		Debug:                     false,
		CompileWorkers:            4,
	}
}
