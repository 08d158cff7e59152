package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hollow-host/sentinel/pkg/sentinel/advisory"
	"github.com/hollow-host/sentinel/pkg/sentinel/ignore"
	"github.com/hollow-host/sentinel/pkg/sentinel/orchestrator"
)

var (
	flagIntervalSeconds int
	flagCycles          int
	flagFailFast        bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Repeatedly compare the target against its baseline",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().IntVarP(&flagIntervalSeconds, "interval", "i", 60, "seconds between cycles")
	watchCmd.Flags().IntVarP(&flagCycles, "cycles", "c", 1, "number of cycles to run")
	watchCmd.Flags().BoolVar(&flagFailFast, "fail-fast", false, "stop at the first cycle that shows drift")
	watchCmd.Flags().BoolVar(&flagHashOnly, "hash-only", false, "ignore mtime as a drift signal, compare by hash and size only")
	watchCmd.Flags().BoolVar(&flagReports, "reports", false, "generate reports for cycles with drift (off by default)")
	watchCmd.Flags().StringSliceVar(&flagReportFormats, "report-formats", nil, "comma-separated formats: cli,html,json,csv,all,none")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	target := args[0]
	if err := validateReportFlags(false, flagReportFormats); err != nil {
		return handleOperationError(err)
	}

	matcher, err := ignore.Load(appCtx.IgnoreFile, "")
	if err != nil {
		return fmt.Errorf("load ignore rules: %w", err)
	}

	opts := orchestrator.Options{
		Target:       target,
		BaselinePath: appCtx.BaselineFile,
		HashOnly:     flagHashOnly,
		NoReports:    !flagReports,
		Ignore:       matcher,
		Interval:     time.Duration(flagIntervalSeconds) * time.Second,
		Cycles:       flagCycles,
		FailFast:     flagFailFast,
	}
	if flagReports {
		opts.Reports = buildReportGenerator(target, resolveReportFormats(flagReportFormats))
	}

	outcome, err := orchestrator.Run(cmd.Context(), orchestrator.Watch, opts)
	if err != nil {
		return handleOperationError(err)
	}

	exitCode = outcome.ExitCode
	recordRun("watch", target, outcome)

	if flagJSON {
		payload := map[string]any{
			"command":   "watch",
			"target":    target,
			"changed":   outcome.Changed,
			"exit_code": outcome.ExitCode,
			"cycles":    flagCycles,
			"interval":  flagIntervalSeconds,
			"stats": map[string]any{
				"scanned":  outcome.Result.Stats.Scanned,
				"added":    outcome.Result.Stats.Added,
				"modified": outcome.Result.Stats.Modified,
				"deleted":  outcome.Result.Stats.Deleted,
				"duration": outcome.Result.Stats.Duration,
			},
			"outputs": outcome.Outputs,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	if flagQuiet {
		return nil
	}
	fmt.Print(buildCLIReport(outcome))
	if adviceEnabled() {
		advisory.Render(os.Stdout, advisory.BuildWatchAdvice(outcome.Changed, flagCycles, flagIntervalSeconds, flagFailFast))
	}
	return nil
}
