package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hollow-host/sentinel/pkg/sentinel/logging"
	"github.com/hollow-host/sentinel/pkg/sentinel/reportindex"
)

var (
	flagPurgeAll    bool
	flagPurgeDryRun bool
	flagPurgeDays   int
	flagTailLines   int
	flagIndexFilter string
	flagIndexLimit  int
)

var purgeReportsCmd = &cobra.Command{
	Use:   "purge-reports",
	Short: "Remove report-run index entries older than a retention window",
	Args:  cobra.NoArgs,
	RunE:  runPurgeReports,
}

var tailLogCmd = &cobra.Command{
	Use:   "tail-log",
	Short: "Print the most recent buffered log lines",
	Args:  cobra.NoArgs,
	RunE:  runTailLog,
}

var reportIndexCmd = &cobra.Command{
	Use:   "report-index",
	Short: "List recorded report runs, optionally filtered by target glob",
	Args:  cobra.NoArgs,
	RunE:  runReportIndex,
}

func init() {
	purgeReportsCmd.Flags().BoolVar(&flagPurgeAll, "all", false, "remove every indexed run, ignoring --days")
	purgeReportsCmd.Flags().BoolVar(&flagPurgeDryRun, "dry-run", false, "report what would be removed without deleting")
	purgeReportsCmd.Flags().IntVar(&flagPurgeDays, "days", 30, "remove runs finished more than this many days ago")

	tailLogCmd.Flags().IntVar(&flagTailLines, "lines", 20, "number of recent log lines to print")

	reportIndexCmd.Flags().StringVar(&flagIndexFilter, "filter", "", "glob pattern matched against each run's target")
	reportIndexCmd.Flags().IntVar(&flagIndexLimit, "limit", 20, "limit the number of runs listed (0 = no limit)")

	rootCmd.AddCommand(purgeReportsCmd, tailLogCmd, reportIndexCmd)
}

func runPurgeReports(cmd *cobra.Command, args []string) error {
	store, err := reportindex.Open(appCtx.ReportIndex)
	if err != nil {
		return handleOperationError(fmt.Errorf("open report index: %w", err))
	}
	defer store.Close()

	cutoff := time.Now().UTC()
	if flagPurgeAll {
		cutoff = time.Now().UTC().AddDate(100, 0, 0)
	} else {
		cutoff = cutoff.AddDate(0, 0, -flagPurgeDays)
	}

	if flagPurgeDryRun {
		runs, err := store.List(0)
		if err != nil {
			return handleOperationError(fmt.Errorf("list report index: %w", err))
		}
		var count int
		for _, r := range runs {
			if r.FinishedAt.Before(cutoff) {
				count++
			}
		}
		exitCode = 0
		if !flagQuiet {
			fmt.Printf("Would remove %d run(s).\n", count)
		}
		return nil
	}

	removed, err := store.PruneOlderThan(cutoff)
	if err != nil {
		return handleOperationError(fmt.Errorf("prune report index: %w", err))
	}

	exitCode = 0
	if !flagQuiet {
		fmt.Printf("Removed %d run(s).\n", removed)
	}
	return nil
}

func runTailLog(cmd *cobra.Command, args []string) error {
	buf := logging.GetLogBuffer()
	if buf == nil {
		exitCode = 0
		if !flagQuiet {
			fmt.Println("No in-memory log buffer is active for this invocation.")
		}
		return nil
	}

	entries := buf.Last(flagTailLines)
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, e := range entries {
		fmt.Printf("%s [%s] %s\n", e.Time.Format(time.RFC3339), e.Level, e.Message)
	}
	exitCode = 0
	return nil
}

func runReportIndex(cmd *cobra.Command, args []string) error {
	store, err := reportindex.Open(appCtx.ReportIndex)
	if err != nil {
		return handleOperationError(fmt.Errorf("open report index: %w", err))
	}
	defer store.Close()

	var runs []reportindex.Run
	if flagIndexFilter != "" {
		runs, err = store.Filter(flagIndexFilter, flagIndexLimit)
	} else {
		runs, err = store.List(flagIndexLimit)
	}
	if err != nil {
		return handleOperationError(fmt.Errorf("query report index: %w", err))
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"total": len(runs), "runs": runs})
	}

	exitCode = 0
	if flagQuiet {
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %-8s %-6v %-40s exit=%d\n", r.FinishedAt.Format(time.RFC3339), r.Command, r.Changed, r.Target, r.ExitCode)
	}
	return nil
}
