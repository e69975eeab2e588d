// Package compiler orchestrates one or many script compiles: it wires
// together the Variable Tracker/Frame Stack state (internal/lower), the
// Factory Assembler (internal/factory), and the process-wide name pools
// (internal/namepool) into the single surface expression that forms the
// core's external contract.
package compiler

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/xerrors"

	"jitc/internal/extension"
	"jitc/internal/factory"
	"jitc/internal/ir"
	"jitc/internal/jitconfig"
	"jitc/internal/jitlog"
	"jitc/internal/lower"
	"jitc/internal/namepool"
)

// Target carries the costume/sound name sets a compile needs to resolve
// the costume/sound literal-ambiguity rule.
type Target struct {
	Costumes map[string]bool
	Sounds   map[string]bool
}

// Stats reports bookkeeping about one compile, printed by cmd/jitc in a
// comment line above each compiled factory and useful for
// regression-testing yield placement.
type Stats struct {
	YieldsEmitted int
	SetupBindings int
	Warp          bool
}

// Compile lowers one script IR to its factory source. name pools
// default to namepool.Default when pools is nil, so callers that don't
// care about pool isolation can pass nil.
func Compile(script ir.Script, cfg jitconfig.Config, log jitlog.Logger, ext *extension.Registry, target Target, pools *namepool.Registry) (string, Stats, error) {
	if pools == nil {
		pools = namepool.Default
	}

	s := lower.NewState(cfg, log, ext)
	s.IsWarp = script.IsWarp
	s.IsProcedure = script.IsProcedure
	s.WarpTimer = script.WarpTimer
	s.Yields = script.Yields
	s.OwnProcedureCode = script.ProcedureCode
	s.Costumes = target.Costumes
	s.Sounds = target.Sounds

	if err := lower.StmtList(s, script.Stack, false); err != nil {
		return "", Stats{}, xerrors.Errorf("compiling top-block %s: %w", script.TopBlockID, err)
	}

	entries := s.Setup.Entries()
	bindings := make([]factory.Binding, 0, len(entries))
	for _, e := range entries {
		bindings = append(bindings, factory.Binding{Expr: e.Expr, Name: e.Name})
	}

	factoryName := pools.Factory.Next()
	scriptName := pools.Script.Next()
	if script.Yields {
		scriptName = pools.Suspendable.Next()
	}

	out := factory.Assemble(factory.Options{
		FactoryName: factoryName,
		ScriptName:  scriptName,
		Suspendable: script.Yields,
		IsProcedure: script.IsProcedure,
		Bindings:    bindings,
		Body:        s.Body.String(),
	})

	return out, Stats{
		YieldsEmitted: s.YieldCount,
		SetupBindings: len(bindings),
		Warp:          s.IsWarp,
	}, nil
}

// Batch is one CompileAll submission: every top-level script and every
// procedure variant to compile together, sharing configuration and a
// target's costume/sound name sets.
type Batch struct {
	Scripts    []ir.Script
	Config     jitconfig.Config
	Log        jitlog.Logger
	Extensions *extension.Registry
	Target     Target
	Pools      *namepool.Registry
}

// Result is one script's outcome within a CompileAll batch.
type Result struct {
	TopBlockID string
	Factory    string
	Stats      Stats
	Err        error
}

// CompileAll compiles every script in batch concurrently, at most
// batch.Config.CompileWorkers at a time (no limit when it is zero). A
// failing script does not abort its siblings: each Result carries its
// own error. A ctx that is canceled before a script starts compiling is
// recorded as that script's Result.Err; the returned error is nil in
// that case too. Concurrent submissions that name the same
// top-block id are deduplicated via singleflight so a duplicate
// resubmission (the IR producer retrying, or two callers racing on the
// same script) does the work once.
func CompileAll(ctx context.Context, batch Batch) ([]Result, error) {
	group, ctx := errgroup.WithContext(ctx)
	var sf singleflight.Group
	results := make([]Result, len(batch.Scripts))

	var sem chan struct{}
	if n := batch.Config.CompileWorkers; n > 0 {
		sem = make(chan struct{}, n)
	}

	for i, script := range batch.Scripts {
		i, script := i, script
		group.Go(func() error {
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			select {
			case <-ctx.Done():
				results[i] = Result{TopBlockID: script.TopBlockID, Err: ctx.Err()}
				return nil
			default:
			}

			v, err, _ := sf.Do(script.TopBlockID, func() (interface{}, error) {
				out, stats, cerr := Compile(script, batch.Config, batch.Log, batch.Extensions, batch.Target, batch.Pools)
				if cerr != nil {
					return nil, cerr
				}
				return Result{TopBlockID: script.TopBlockID, Factory: out, Stats: stats}, nil
			})
			if err != nil {
				results[i] = Result{TopBlockID: script.TopBlockID, Err: err}
				return nil
			}
			results[i] = v.(Result)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
