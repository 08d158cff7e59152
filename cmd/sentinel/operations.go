package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hollow-host/sentinel/pkg/sentinel/advisory"
	"github.com/hollow-host/sentinel/pkg/sentinel/ignore"
	"github.com/hollow-host/sentinel/pkg/sentinel/orchestrator"
	"github.com/hollow-host/sentinel/pkg/sentinel/reportindex"
	"github.com/hollow-host/sentinel/pkg/sentinel/sentinelerr"
)

func init() {
	rootCmd.AddCommand(initCmd, scanCmd, updateCmd, statusCmd, verifyCmd)
}

var (
	flagForce         bool
	flagStrict        bool
	flagHashOnly      bool
	flagNoReports     bool
	flagReportFormats []string
	flagReports       bool
)

func addScanFamilyFlags(cmd *cobra.Command, withNoReports bool) {
	cmd.Flags().BoolVar(&flagStrict, "strict", false, "non-zero exit on any drift, not just status/verify modes")
	cmd.Flags().BoolVar(&flagHashOnly, "hash-only", false, "ignore mtime as a drift signal, compare by hash and size only")
	cmd.Flags().StringSliceVar(&flagReportFormats, "report-formats", nil, "comma-separated formats: cli,html,json,csv,all,none")
	if withNoReports {
		cmd.Flags().BoolVar(&flagNoReports, "no-reports", false, "skip report generation for this run")
	} else {
		cmd.Flags().BoolVar(&flagReports, "reports", false, "generate reports for this run (off by default)")
	}
}

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Record a tamper-evident baseline for a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runInit,
}

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Compare the target against its baseline",
	Args:  cobra.ExactArgs(1),
	RunE:  runScanFamily(orchestrator.Scan, "scan"),
}

var updateCmd = &cobra.Command{
	Use:   "update <path>",
	Short: "Compare the target against its baseline and refresh it",
	Args:  cobra.ExactArgs(1),
	RunE:  runScanFamily(orchestrator.Update, "update"),
}

var statusCmd = &cobra.Command{
	Use:   "status <path>",
	Short: "Quick drift check suited to automation",
	Args:  cobra.ExactArgs(1),
	RunE:  runScanFamily(orchestrator.Status, "status"),
}

var verifyCmd = &cobra.Command{
	Use:   "verify <path>",
	Short: "Strict drift check, typically before a baseline refresh",
	Args:  cobra.ExactArgs(1),
	RunE:  runScanFamily(orchestrator.Verify, "verify"),
}

func init() {
	initCmd.Flags().BoolVar(&flagForce, "force", false, "overwrite an existing baseline")
	addScanFamilyFlags(scanCmd, true)
	addScanFamilyFlags(updateCmd, true)
	statusCmd.Flags().BoolVar(&flagHashOnly, "hash-only", false, "ignore mtime as a drift signal, compare by hash and size only")
	addScanFamilyFlags(verifyCmd, false)
}

func runInit(cmd *cobra.Command, args []string) error {
	target := args[0]
	matcher, err := ignore.Load(appCtx.IgnoreFile, "")
	if err != nil {
		return fmt.Errorf("load ignore rules: %w", err)
	}

	outcome, err := orchestrator.Run(cmd.Context(), orchestrator.Init, orchestrator.Options{
		Target:       target,
		BaselinePath: appCtx.BaselineFile,
		Force:        flagForce,
		Ignore:       matcher,
	})
	if err != nil {
		return handleOperationError(err)
	}

	exitCode = outcome.ExitCode
	if flagJSON {
		return printScanJSON("init", target, outcome)
	}
	if flagQuiet {
		return nil
	}
	printScanSummary(outcome)
	if adviceEnabled() {
		advisory.Render(os.Stdout, advisory.BuildInitAdvice(outcome.Result.Stats.Scanned))
	}
	return nil
}

// runScanFamily returns a RunE closure shared by scan/update/status/verify.
func runScanFamily(mode orchestrator.Mode, label string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		target := args[0]

		var noReports bool
		switch mode {
		case orchestrator.Status:
			noReports = true
		case orchestrator.Scan, orchestrator.Update:
			noReports = flagNoReports
		default: // Verify: reports are opt-in
			noReports = !flagReports
		}
		if err := validateReportFlags(flagNoReports, flagReportFormats); err != nil {
			return handleOperationError(err)
		}

		matcher, err := ignore.Load(appCtx.IgnoreFile, "")
		if err != nil {
			return fmt.Errorf("load ignore rules: %w", err)
		}

		opts := orchestrator.Options{
			Target:       target,
			BaselinePath: appCtx.BaselineFile,
			Strict:       flagStrict,
			HashOnly:     flagHashOnly,
			NoReports:    noReports,
			Ignore:       matcher,
		}
		if !noReports {
			opts.Reports = buildReportGenerator(target, resolveReportFormats(flagReportFormats))
		}

		outcome, err := orchestrator.Run(cmd.Context(), mode, opts)
		if err != nil {
			return handleOperationError(err)
		}

		exitCode = outcome.ExitCode
		recordRun(label, target, outcome)

		if flagJSON {
			return printScanJSON(label, target, outcome)
		}
		if flagQuiet {
			return nil
		}
		printScanSummary(outcome)
		if adviceEnabled() {
			advisory.Render(os.Stdout, advisory.BuildScanAdvice(outcome.Result, mode, mode == orchestrator.Update))
		}
		return nil
	}
}

// handleOperationError classifies err, prints a one-line message, sets
// the process exit code, and returns nil so cobra doesn't also print
// its own usage-error banner.
func handleOperationError(err error) error {
	var serr *sentinelerr.Error
	if !errors.As(err, &serr) {
		exitCode = sentinelerr.OperationFailed.ExitCode()
		fmt.Fprintln(os.Stderr, "Error:", err)
		return nil
	}

	exitCode = serr.Kind.ExitCode()
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		_ = enc.Encode(map[string]any{"error": serr.Error(), "exit_code": exitCode})
		return nil
	}
	fmt.Fprintln(os.Stderr, "Error:", serr.Error())
	return nil
}

func printScanSummary(outcome orchestrator.Outcome) {
	rep := buildCLIReport(outcome)
	fmt.Print(rep)
}

func printScanJSON(command, target string, outcome orchestrator.Outcome) error {
	payload := map[string]any{
		"command":   command,
		"target":    target,
		"changed":   outcome.Changed,
		"exit_code": outcome.ExitCode,
		"stats": map[string]any{
			"scanned":  outcome.Result.Stats.Scanned,
			"added":    outcome.Result.Stats.Added,
			"modified": outcome.Result.Stats.Modified,
			"deleted":  outcome.Result.Stats.Deleted,
			"duration": outcome.Result.Stats.Duration,
		},
		"outputs": outcome.Outputs,
	}
	if outcome.Warning != "" {
		payload["warning"] = outcome.Warning
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// recordRun persists this invocation into the report-run index so
// --report-index/--purge-reports have something to query.
func recordRun(command, target string, outcome orchestrator.Outcome) {
	store, err := reportindex.Open(appCtx.ReportIndex)
	if err != nil {
		return
	}
	defer store.Close()

	now := time.Now().UTC()
	_, _ = store.Record(reportindex.Run{
		Command:    command,
		Target:     target,
		Changed:    outcome.Changed,
		ExitCode:   outcome.ExitCode,
		Scanned:    outcome.Result.Stats.Scanned,
		Added:      outcome.Result.Stats.Added,
		Modified:   outcome.Result.Stats.Modified,
		Deleted:    outcome.Result.Stats.Deleted,
		Duration:   outcome.Result.Stats.Duration,
		Outputs:    outcome.Outputs,
		StartedAt:  now.Add(-time.Duration(outcome.Result.Stats.Duration * float64(time.Second))),
		FinishedAt: now,
	})
}
