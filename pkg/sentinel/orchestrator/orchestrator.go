// Package orchestrator implements the operation state machine binding
// the scanner, baseline store, and comparator into the init / scan /
// update / status / verify / watch operations and their exit-code
// contract.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hollow-host/sentinel/pkg/sentinel/baseline"
	"github.com/hollow-host/sentinel/pkg/sentinel/compare"
	"github.com/hollow-host/sentinel/pkg/sentinel/ignore"
	"github.com/hollow-host/sentinel/pkg/sentinel/pathutil"
	"github.com/hollow-host/sentinel/pkg/sentinel/scanner"
	"github.com/hollow-host/sentinel/pkg/sentinel/sentinelerr"
	"github.com/hollow-host/sentinel/pkg/sentinel/types"
)

// Mode names an operation in the state machine.
type Mode int

const (
	Init Mode = iota
	Scan
	Update
	Status
	Verify
	Watch
)

// ReportGenerator renders a ScanResult into one or more report formats,
// keyed by format name ("cli", "html", "json", "csv"), returning the
// path written for each or "N/A" for a disabled format. It must never
// return an error: per-format failures are the generator's own concern
// to log and report as "N/A", since report-render errors never change
// an operation's exit code.
type ReportGenerator func(ctx context.Context, result types.ScanResult, stem string) map[string]string

// Options configures a single operation run.
type Options struct {
	Target         string
	BaselinePath   string
	Strict         bool
	HashOnly       bool
	Force          bool
	NoReports      bool
	ReportFormats  []string
	WorkerOverride int
	Ignore         *ignore.Matcher
	Reports        ReportGenerator

	// Watch-only.
	Interval time.Duration
	Cycles   int
	FailFast bool
}

// Outcome is the structured result of running an operation.
type Outcome struct {
	ExitCode int
	Changed  bool
	Result   types.ScanResult
	Outputs  map[string]string
	Warning  string
}

// Run validates the target and dispatches to the operation matching
// mode.
func Run(ctx context.Context, mode Mode, opts Options) (Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validateTarget(opts.Target); err != nil {
		return Outcome{}, err
	}

	switch mode {
	case Init:
		return runInit(ctx, opts)
	case Watch:
		return runWatch(ctx, opts)
	default:
		return runScanFamily(ctx, mode, opts)
	}
}

func validateTarget(target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return sentinelerr.New(sentinelerr.Usage, "target does not exist: %s", target)
	}
	if !info.IsDir() {
		return sentinelerr.New(sentinelerr.Usage, "target is not a directory: %s", target)
	}
	return nil
}

func runInit(ctx context.Context, opts Options) (Outcome, error) {
	if !opts.Force {
		if _, err := os.Stat(opts.BaselinePath); err == nil {
			return Outcome{}, sentinelerr.New(sentinelerr.Usage, "baseline already exists at %s, pass --force to overwrite", opts.BaselinePath)
		}
	}

	current, duration, err := buildSnapshot(ctx, opts)
	if err != nil {
		return Outcome{}, sentinelerr.New(sentinelerr.OperationFailed, "snapshot build failed: %v", err)
	}

	doc := types.BaselineDocument{
		Root:      pathutil.Normalize(opts.Target),
		Generated: time.Now().UTC().Format(time.RFC3339),
		Entries:   current,
	}
	if err := baseline.Save(opts.BaselinePath, doc); err != nil {
		return Outcome{}, sentinelerr.New(sentinelerr.OperationFailed, "persist baseline: %v", err)
	}

	result := types.ScanResult{
		Stats:   types.ScanStats{Scanned: len(current), Duration: duration},
		Current: current,
	}
	return Outcome{ExitCode: 0, Result: result}, nil
}

// loadAndVerify loads the baseline, checking the target-mismatch
// invariant before any scanning happens.
func loadAndVerify(baselinePath, target string) (types.FileMap, string, error) {
	lr, err := baseline.Load(baselinePath)
	if err != nil {
		if berr, ok := err.(*baseline.Error); ok && berr.Kind == baseline.ErrMissing {
			return nil, "", sentinelerr.New(sentinelerr.BaselineMissing, "%v", err)
		}
		return nil, "", sentinelerr.New(sentinelerr.TamperGuard, "%v", err).WithHint("run import-baseline to restore from a known-good copy")
	}

	want := pathutil.Normalize(target)
	if lr.Document.Root != "" && lr.Document.Root != want {
		return nil, "", sentinelerr.New(sentinelerr.TargetMismatch, "baseline root %q does not match target %q", lr.Document.Root, want)
	}

	return lr.Document.Entries, lr.Warning, nil
}

func buildSnapshot(ctx context.Context, opts Options) (types.FileMap, float64, error) {
	return scanner.Build(ctx, scanner.Options{
		Root:           opts.Target,
		Ignore:         opts.Ignore,
		WorkerOverride: opts.WorkerOverride,
	})
}

func runScanFamily(ctx context.Context, mode Mode, opts Options) (Outcome, error) {
	baselineMap, warning, err := loadAndVerify(opts.BaselinePath, opts.Target)
	if err != nil {
		return Outcome{}, err
	}

	current, duration, err := buildSnapshot(ctx, opts)
	if err != nil {
		return Outcome{}, sentinelerr.New(sentinelerr.OperationFailed, "snapshot build failed: %v", err)
	}

	result := compare.Compare(baselineMap, current, !opts.HashOnly)
	result.Stats.Duration = duration

	outputs := maybeReport(ctx, opts, result, mode, "")

	if mode == Update {
		doc := types.BaselineDocument{
			Root:      pathutil.Normalize(opts.Target),
			Generated: time.Now().UTC().Format(time.RFC3339),
			Entries:   current,
		}
		if err := baseline.Save(opts.BaselinePath, doc); err != nil {
			return Outcome{}, sentinelerr.New(sentinelerr.OperationFailed, "persist updated baseline: %v", err)
		}
	}

	exitCode := deriveExitCode(mode, opts.Strict, result.Changed())

	return Outcome{
		ExitCode: exitCode,
		Changed:  result.Changed(),
		Result:   result,
		Outputs:  outputs,
		Warning:  warning,
	}, nil
}

func deriveExitCode(mode Mode, strict, changed bool) int {
	if !changed {
		return 0
	}
	switch mode {
	case Scan:
		if strict {
			return sentinelerr.ChangesDetected.ExitCode()
		}
		return 0
	case Update:
		return 0
	case Status, Verify:
		return sentinelerr.ChangesDetected.ExitCode()
	default:
		return 0
	}
}

func maybeReport(ctx context.Context, opts Options, result types.ScanResult, mode Mode, cycleSuffix string) map[string]string {
	if opts.NoReports || opts.Reports == nil {
		return nil
	}
	stem := modeStem(mode) + cycleSuffix
	return opts.Reports(ctx, result, stem)
}

func modeStem(mode Mode) string {
	switch mode {
	case Scan:
		return "scan"
	case Update:
		return "update"
	case Status:
		return "status"
	case Verify:
		return "verify"
	case Watch:
		return "watch"
	default:
		return "init"
	}
}

// runWatch loads and verifies the baseline exactly once, then iterates
// opts.Cycles times at opts.Interval apart, comparing a fresh snapshot
// against the same originally-loaded baseline each cycle.
func runWatch(ctx context.Context, opts Options) (Outcome, error) {
	baselineMap, warning, err := loadAndVerify(opts.BaselinePath, opts.Target)
	if err != nil {
		return Outcome{}, err
	}

	cycles := opts.Cycles
	if cycles < 1 {
		cycles = 1
	}

	var (
		anyChanges bool
		last       types.ScanResult
		outputs    map[string]string
	)

	for cycle := 1; cycle <= cycles; cycle++ {
		select {
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		default:
		}

		current, duration, err := buildSnapshot(ctx, opts)
		if err != nil {
			return Outcome{}, sentinelerr.New(sentinelerr.OperationFailed, "snapshot build failed on cycle %d: %v", cycle, err)
		}

		last = compare.Compare(baselineMap, current, !opts.HashOnly)
		last.Stats.Duration = duration

		if last.Changed() {
			anyChanges = true
			outputs = maybeReport(ctx, opts, last, Watch, fmt.Sprintf("_%d", cycle))
			if opts.FailFast {
				return Outcome{
					ExitCode: sentinelerr.ChangesDetected.ExitCode(),
					Changed:  true,
					Result:   last,
					Outputs:  outputs,
					Warning:  warning,
				}, nil
			}
		}

		if cycle < cycles {
			select {
			case <-ctx.Done():
				return Outcome{}, ctx.Err()
			case <-time.After(opts.Interval):
			}
		}
	}

	exitCode := 0
	if anyChanges {
		exitCode = sentinelerr.ChangesDetected.ExitCode()
	}

	return Outcome{
		ExitCode: exitCode,
		Changed:  anyChanges,
		Result:   last,
		Outputs:  outputs,
		Warning:  warning,
	}, nil
}
