package main

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/hollow-host/sentinel/pkg/sentinel/console"
	"github.com/hollow-host/sentinel/pkg/sentinel/ignore"
	"github.com/hollow-host/sentinel/pkg/sentinel/orchestrator"
)

var promptModeCmd = &cobra.Command{
	Use:   "prompt-mode <path>",
	Short: "Open an interactive menu over scan/status/verify/watch/list-baseline",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptMode,
}

func init() {
	promptModeCmd.Flags().BoolVar(&flagHashOnly, "hash-only", false, "ignore mtime as a drift signal, compare by hash and size only")
	rootCmd.AddCommand(promptModeCmd)
}

func runPromptMode(cmd *cobra.Command, args []string) error {
	target := args[0]
	matcher, err := ignore.Load(appCtx.IgnoreFile, "")
	if err != nil {
		return err
	}

	opts := orchestrator.Options{
		Target:       target,
		BaselinePath: appCtx.BaselineFile,
		HashOnly:     flagHashOnly,
		NoReports:    true,
		Ignore:       matcher,
	}

	configFile := filepath.Join(xdg.ConfigHome, "sentinel", "config.yaml")
	if err := console.Run(opts, appCtx.IgnoreFile, configFile); err != nil {
		return handleOperationError(err)
	}
	exitCode = 0
	return nil
}
