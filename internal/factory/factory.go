// Package factory implements the Factory Assembler: it wraps emitted
// body source in a factory closure that binds the thread handle, hoists
// one-time-evaluated setup bindings, and appends the terminal retire
// for top-level scripts.
package factory

import "strings"

// Binding is one setup-bindings entry: a costly surface expression
// hoisted to a fresh name, evaluated exactly once per script invocation.
type Binding struct {
	Expr string
	Name string
}

// Options configures one Assemble call.
type Options struct {
	// FactoryName names the outer factory function, drawn from the
	// factory name pool.
	FactoryName string
	// ScriptName names the inner script function, drawn from either
	// the suspendable or non-suspendable name pool depending on
	// Suspendable.
	ScriptName string
	// Suspendable selects a generator-style inner function (the
	// script's header declared Yields true) vs. a plain function.
	Suspendable bool
	// IsProcedure suppresses the terminal retire() call.
	IsProcedure bool
	// Bindings are emitted in insertion order as const initializations.
	Bindings []Binding
	// Body is the accumulated statement source from the Statement
	// Lowerer.
	Body string
}

// Assemble produces the single surface expression: a parenthesized
// function literal taking a thread parameter.
func Assemble(opts Options) string {
	var b strings.Builder

	b.WriteString("(function ")
	b.WriteString(opts.FactoryName)
	b.WriteString("(thread) {\n")
	b.WriteString("  const __target = thread.target;\n")
	b.WriteString("  let target = __target;\n")
	b.WriteString("  const runtime = __target.runtime;\n")
	b.WriteString("  const stage = runtime.getTargetForStage();\n")

	for _, bind := range opts.Bindings {
		b.WriteString("  const ")
		b.WriteString(bind.Name)
		b.WriteString(" = ")
		b.WriteString(bind.Expr)
		b.WriteString(";\n")
	}

	b.WriteString("  return ")
	if opts.Suspendable {
		b.WriteString("function* ")
	} else {
		b.WriteString("function ")
	}
	b.WriteString(opts.ScriptName)
	b.WriteString("(p0, p1, p2, p3, p4, p5, p6, p7, p8, p9) {\n")
	b.WriteString("    target = __target;\n")
	b.WriteString("    if (thread.isSpoofing) target = thread.spoofTarget;\n")

	b.WriteString(opts.Body)

	if !opts.IsProcedure {
		b.WriteString("    retire();\n")
	}

	b.WriteString("  };\n")
	b.WriteString("})")

	return b.String()
}
