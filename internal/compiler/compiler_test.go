package compiler

import (
	"context"
	"strings"
	"testing"

	"jitc/internal/ir"
	"jitc/internal/jitconfig"
	"jitc/internal/jitlog"
	"jitc/internal/namepool"
)

func simpleScript(topBlockID string) ir.Script {
	return ir.Script{
		TopBlockID: topBlockID,
		Stack: ir.Stack{
			{
				Kind: ir.KindVarSet,
				Fields: map[string]string{
					"id":   "myvar",
					"type": "number",
				},
				Inputs: map[string]*ir.Node{
					"VALUE": {Kind: ir.KindConstant, Fields: map[string]string{"value": "1"}},
				},
			},
		},
	}
}

func TestCompileProducesFactorySource(t *testing.T) {
	pools := namepool.NewRegistry()
	out, stats, err := Compile(simpleScript("a"), jitconfig.Default(), jitlog.Nop{}, nil, Target{}, pools)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(out, "lookupVariable(target, \"myvar\")") {
		t.Errorf("expected variable assignment in output, got %q", out)
	}
	if !strings.Contains(out, "retire();") {
		t.Errorf("expected non-procedure retire() in output, got %q", out)
	}
	if stats.Warp {
		t.Errorf("expected Warp false for default script")
	}
}

func TestCompileProcedureSkipsRetire(t *testing.T) {
	pools := namepool.NewRegistry()
	script := simpleScript("a")
	script.IsProcedure = true
	out, _, err := Compile(script, jitconfig.Default(), jitlog.Nop{}, nil, Target{}, pools)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if strings.Contains(out, "retire();") {
		t.Errorf("expected no retire() for procedure, got %q", out)
	}
}

func TestCompileAllCollectsPerScriptErrors(t *testing.T) {
	good := simpleScript("a")
	bad := ir.Script{
		TopBlockID: "b",
		Stack: ir.Stack{
			{Kind: ir.Kind("your mom")},
		},
	}

	results, err := CompileAll(context.Background(), Batch{
		Scripts: []ir.Script{good, bad},
		Config:  jitconfig.Default(),
		Log:     jitlog.Nop{},
		Pools:   namepool.NewRegistry(),
	})
	if err != nil {
		t.Fatalf("CompileAll: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("expected script a to compile cleanly, got %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Errorf("expected script b (unknown kind) to fail")
	}
}

// TestCompileAllDedupesDuplicateTopBlockSubmissions exercises the
// singleflight-backed path for repeated submissions of the same
// top-block id. Whether any two calls actually overlap in-flight (and
// so share one compile) is a scheduling detail singleflight does not
// guarantee; what must always hold is that every submission still
// succeeds and compiles the same script.
func TestCompileAllDedupesDuplicateTopBlockSubmissions(t *testing.T) {
	script := simpleScript("dup")
	results, err := CompileAll(context.Background(), Batch{
		Scripts: []ir.Script{script, script, script},
		Config:  jitconfig.Default(),
		Log:     jitlog.Nop{},
		Pools:   namepool.NewRegistry(),
	})
	if err != nil {
		t.Fatalf("CompileAll: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("result %d: unexpected error %v", i, r.Err)
		}
		if r.TopBlockID != "dup" {
			t.Errorf("result %d: expected top-block id %q, got %q", i, "dup", r.TopBlockID)
		}
	}
}

func TestCompileAllRespectsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := CompileAll(ctx, Batch{
		Scripts: []ir.Script{simpleScript("a")},
		Config:  jitconfig.Default(),
		Log:     jitlog.Nop{},
		Pools:   namepool.NewRegistry(),
	})
	if err != nil {
		t.Fatalf("CompileAll: %v", err)
	}
	if results[0].Err == nil {
		t.Errorf("expected canceled-context result to carry an error")
	}
}
