package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hollow-host/sentinel/pkg/sentinel/advisory"
	"github.com/hollow-host/sentinel/pkg/sentinel/doctor"
	"github.com/hollow-host/sentinel/pkg/sentinel/ignore"
	"github.com/hollow-host/sentinel/pkg/sentinel/orchestrator"
)

var flagDoctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment: output root, baseline, ignore rules, log directory",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

var guardCmd = &cobra.Command{
	Use:   "guard <path>",
	Short: "Strict drift check for shell hooks; the result is the exit code, errors go to stderr unless --quiet",
	Args:  cobra.ExactArgs(1),
	RunE:  runGuard,
}

func init() {
	doctorCmd.Flags().BoolVar(&flagDoctorFix, "fix", false, "create missing output-root directories before checking")
	rootCmd.AddCommand(doctorCmd, guardCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report := doctor.Run(appCtx, flagDoctorFix)

	exitCode = 0
	if report.FailCount > 0 {
		exitCode = 5
	}

	if flagJSON {
		checks := make([]map[string]string, 0, len(report.Checks))
		for _, c := range report.Checks {
			checks = append(checks, map[string]string{"name": c.Name, "level": string(c.Level), "detail": c.Detail})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"checks": checks,
			"pass":   report.PassCount,
			"warn":   report.WarnCount,
			"fail":   report.FailCount,
		})
	}

	if flagQuiet {
		return nil
	}
	for _, c := range report.Checks {
		fmt.Printf("[%-4s] %-16s %s\n", c.Level, c.Name, c.Detail)
	}
	if adviceEnabled() {
		advisory.Render(os.Stdout, advisory.BuildDoctorAdvice(report.PassCount, report.WarnCount, report.FailCount))
	}
	return nil
}

func runGuard(cmd *cobra.Command, args []string) error {
	target := args[0]
	matcher, err := ignore.Load(appCtx.IgnoreFile, "")
	if err != nil {
		return fmt.Errorf("load ignore rules: %w", err)
	}

	code, err := doctor.Guard(cmd.Context(), orchestrator.Options{
		Target:       target,
		BaselinePath: appCtx.BaselineFile,
		Ignore:       matcher,
	})
	exitCode = code
	if err != nil && !flagQuiet {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return nil
}
