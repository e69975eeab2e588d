// Copyright the jitc authors.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"jitc/internal/compiler"
	"jitc/internal/extension"
	"jitc/internal/ir"
	"jitc/internal/jitconfig"
	"jitc/internal/jitlog"
)

//go:embed doc.go
var doc string

// flags
var (
	explainFlag = flag.Bool("explain", false, "print the kinds catalog and registered extensions instead of compiling")
	outFlag     = flag.String("out", "", "write compiled factory source to this file instead of stdout")
	debugFlag   = flag.Bool("debug", false, "enable verbose compile logging")
	jsonFlag    = flag.Bool("json", false, "with -explain, print the catalog as JSON instead of rendered Markdown")
)

func usage() {
	_, after, _ := strings.Cut(doc, "/*\n")
	text, _, _ := strings.Cut(after, "*/")
	io.WriteString(flag.CommandLine.Output(), text+`
Flags:

`)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("jitc: ")
	log.SetFlags(0)

	flag.Usage = usage
	flag.Parse()

	if *explainFlag {
		if err := explain(os.Stdout, extension.Default); err != nil {
			log.Fatalf("explain: %v", err)
		}
		return
	}

	if len(flag.Args()) != 1 {
		usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("reading IR fixture: %v", err)
	}

	scripts, target, err := parseInput(data)
	if err != nil {
		log.Fatalf("parsing IR fixture %s: %v", flag.Arg(0), err)
	}

	cfg := jitconfig.Default()
	cfg.Debug = *debugFlag
	logger := jitlog.NewStdLogger(*debugFlag)

	results, err := compiler.CompileAll(context.Background(), compiler.Batch{
		Scripts:    scripts,
		Config:     cfg,
		Log:        logger,
		Extensions: extension.Default,
		Target:     target,
	})
	if err != nil {
		log.Fatalf("compiling: %v", err)
	}

	out := os.Stdout
	if *outFlag != "" {
		f, err := os.Create(*outFlag)
		if err != nil {
			log.Fatalf("creating -out file: %v", err)
		}
		defer f.Close()
		out = f
	}

	failed := false
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.TopBlockID, r.Err)
			failed = true
			continue
		}
		fmt.Fprintf(out, "// %s (yields=%d, bindings=%d, warp=%v)\n%s;\n\n",
			r.TopBlockID, r.Stats.YieldsEmitted, r.Stats.SetupBindings, r.Stats.Warp, r.Factory)
	}
	if failed {
		os.Exit(1)
	}
}

// input is the on-disk shape of the file argument: either this
// object, or (via parseInput's fallback) a bare array of script IR
// objects with no costume/sound name sets.
type input struct {
	Scripts  []ir.Script `json:"scripts"`
	Costumes []string    `json:"costumes"`
	Sounds   []string    `json:"sounds"`
}

func parseInput(data []byte) ([]ir.Script, compiler.Target, error) {
	var in input
	if err := json.Unmarshal(data, &in); err == nil && in.Scripts != nil {
		return in.Scripts, compiler.Target{
			Costumes: toSet(in.Costumes),
			Sounds:   toSet(in.Sounds),
		}, nil
	}

	var bare []ir.Script
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, compiler.Target{}, fmt.Errorf("not a script array or {scripts,costumes,sounds} object: %w", err)
	}
	return bare, compiler.Target{}, nil
}

func toSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// explain renders the built-in kinds catalog (internal/ir.Kind) and the
// extensions currently registered against ext, following cmd/deadcode's
// -f/-json reporting split: -json prints the raw catalog object, the
// default renders the same data as Markdown through goldmark.
func explain(w io.Writer, ext *extension.Registry) error {
	catalog := struct {
		ExprKinds  []string `json:"exprKinds"`
		StmtKinds  []string `json:"stmtKinds"`
		Extensions []string `json:"extensions"`
	}{
		ExprKinds:  exprKindNames(),
		StmtKinds:  stmtKindNames(),
		Extensions: ext.Extensions(),
	}

	if *jsonFlag {
		out, err := json.MarshalIndent(catalog, "", "\t")
		if err != nil {
			return err
		}
		out = append(out, '\n')
		_, err = w.Write(out)
		return err
	}

	var md strings.Builder
	md.WriteString("# jitc kinds catalog\n\n## Expression kinds\n\n")
	for _, k := range catalog.ExprKinds {
		fmt.Fprintf(&md, "- `%s`\n", k)
	}
	md.WriteString("\n## Statement kinds\n\n")
	for _, k := range catalog.StmtKinds {
		fmt.Fprintf(&md, "- `%s`\n", k)
	}
	md.WriteString("\n## Registered extensions\n\n")
	if len(catalog.Extensions) == 0 {
		md.WriteString("(none)\n")
	}
	for _, id := range catalog.Extensions {
		fmt.Fprintf(&md, "- `%s`\n", id)
	}

	return goldmark.New().Convert([]byte(md.String()), w)
}

// exprKindNames and stmtKindNames list the built-in catalog kinds by
// their dotted Kind value, sorted and deduplicated by uniqueSorted so
// -explain output stays stable.
func exprKindNames() []string {
	names := []string{
		string(ir.KindArgsBoolean), string(ir.KindArgsStringNumber), string(ir.KindCompatExpr),
		string(ir.KindConstant), string(ir.KindMathPolygon), string(ir.KindControlInlineStackOutput),
		string(ir.KindKeyboardPressed),
		string(ir.KindListContains), string(ir.KindListContents), string(ir.KindListGet),
		string(ir.KindListIndexOf), string(ir.KindListLength),
		string(ir.KindLooksSize), string(ir.KindLooksBackdropName), string(ir.KindLooksBackdropNum),
		string(ir.KindLooksCostumeName), string(ir.KindLooksCostumeNum),
		string(ir.KindMotionDirection), string(ir.KindMotionX), string(ir.KindMotionY),
		string(ir.KindMouseDown), string(ir.KindMouseX), string(ir.KindMouseY),
		string(ir.KindOpAbs), string(ir.KindOpAcos), string(ir.KindOpAdd), string(ir.KindOpAnd),
		string(ir.KindOpAsin), string(ir.KindOpAtan), string(ir.KindOpCeiling), string(ir.KindOpContains),
		string(ir.KindOpCos), string(ir.KindOpDivide), string(ir.KindOpEquals), string(ir.KindOpExp),
		string(ir.KindOpFloor), string(ir.KindOpGreater), string(ir.KindOpJoin), string(ir.KindOpLength),
		string(ir.KindOpLess), string(ir.KindOpLetterOf), string(ir.KindOpLn), string(ir.KindOpLog),
		string(ir.KindOpAdvLog), string(ir.KindOpMod), string(ir.KindOpMultiply), string(ir.KindOpNot),
		string(ir.KindOpOr), string(ir.KindOpRandom), string(ir.KindOpRound), string(ir.KindOpSin),
		string(ir.KindOpSqrt), string(ir.KindOpSubtract), string(ir.KindOpTan), string(ir.KindOpPow10),
		string(ir.KindSensingAnswer), string(ir.KindSensingColorTouchColor), string(ir.KindSensingDate),
		string(ir.KindSensingDayOfWeek), string(ir.KindSensingDaysSince2000), string(ir.KindSensingDistance),
		string(ir.KindSensingHour), string(ir.KindSensingMinute), string(ir.KindSensingMonth),
		string(ir.KindSensingOf), string(ir.KindSensingSecond), string(ir.KindSensingTouching),
		string(ir.KindSensingTouchingColor), string(ir.KindSensingUsername), string(ir.KindSensingYear),
		string(ir.KindTimerGet), string(ir.KindTwLastKeyPressed), string(ir.KindVarGet),
		string(ir.KindProceduresCall), string(ir.KindBroadcastFunction), string(ir.KindNoop),
		string(ir.KindYourMom),
	}
	return uniqueSorted(names)
}

func stmtKindNames() []string {
	names := []string{
		string(ir.KindAddonsCall), string(ir.KindCompatStmt),
		string(ir.KindControlCreateClone), string(ir.KindControlDeleteClone), string(ir.KindControlFor),
		string(ir.KindControlSwitch), string(ir.KindControlCase), string(ir.KindControlAllAtOnce),
		string(ir.KindControlNewScript), string(ir.KindControlExitCase), string(ir.KindControlIf),
		string(ir.KindControlRepeat), string(ir.KindControlStopAll), string(ir.KindControlStopOthers),
		string(ir.KindControlStopScript), string(ir.KindControlWait), string(ir.KindControlWaitUntil),
		string(ir.KindControlWaitOrUntil), string(ir.KindControlWhile), string(ir.KindControlRunAsSprite),
		string(ir.KindEventBroadcast), string(ir.KindEventBroadcastAndWait),
		string(ir.KindListForEach), string(ir.KindListAdd), string(ir.KindListDelete),
		string(ir.KindListDeleteAll), string(ir.KindListHide), string(ir.KindListInsert),
		string(ir.KindListReplace), string(ir.KindListShow),
		string(ir.KindLooksStmt),
		string(ir.KindMotionChangeX), string(ir.KindMotionChangeY), string(ir.KindMotionIfOnEdgeBounce),
		string(ir.KindMotionSetDirection), string(ir.KindMotionSetRotationStyle), string(ir.KindMotionSetX),
		string(ir.KindMotionSetY), string(ir.KindMotionSetXY), string(ir.KindMotionStep),
		string(ir.KindPenStmt),
		string(ir.KindProceduresReturn), string(ir.KindProceduresCallStmt),
		string(ir.KindTimerReset), string(ir.KindTwDebugger),
		string(ir.KindVarHide), string(ir.KindVarSet), string(ir.KindVarShow),
		string(ir.KindVisualReport), string(ir.KindSensingSetOf),
	}
	return uniqueSorted(names)
}

// uniqueSorted sorts names and drops duplicates, so each kind prints once
// per list. Forms that share one dotted string across the two catalogs
// (compat's expression and statement forms both lower the "compat"
// block) sit in separate lists and are listed once under each heading.
func uniqueSorted(names []string) []string {
	sort.Strings(names)
	out := names[:0]
	var last string
	for i, n := range names {
		if i == 0 || n != last {
			out = append(out, n)
		}
		last = n
	}
	return out
}
