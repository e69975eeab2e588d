/*
The jitc command compiles one or more script IRs to factory source.

	Usage: jitc [flags] file.json

file.json holds either a bare array of script IR objects or a single
object of the form:

	{
		"scripts":  [ ...script IR objects... ],
		"costumes": [ "costume name", ... ],
		"sounds":   [ "sound name", ... ]
	}

Every script IR object has the shape internal/ir.Script marshals to:
Stack, IsWarp, IsProcedure, Yields, WarpTimer, Arguments, ProcedureCode,
TopBlockID, Procedures.

Each script compiles independently (internal/compiler.CompileAll);
a failing script does not prevent its siblings from compiling. Compiled
factory source is written to stdout, or to -out if given: each factory
is preceded by a comment line naming its top-block id and compile stats
and followed by a blank line.

The -explain flag ignores any file argument and instead prints the
built-in kinds catalog (internal/ir.Kind) and the extensions currently
registered against internal/extension.Default, written as Markdown and
rendered to HTML through goldmark.
*/
package main
