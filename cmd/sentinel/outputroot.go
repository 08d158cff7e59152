package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hollow-host/sentinel/pkg/sentinel/config"
)

var outputRootCmd = &cobra.Command{
	Use:   "output-root",
	Short: "Show the effective output root",
	Args:  cobra.NoArgs,
	RunE:  runShowDestination,
}

var showDestinationCmd = &cobra.Command{
	Use:   "show-destination",
	Short: "Show the persisted output root",
	Args:  cobra.NoArgs,
	RunE:  runShowDestination,
}

var setDestinationCmd = &cobra.Command{
	Use:   "set-destination <path>",
	Short: "Persist path as the default output root",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetDestination,
}

func init() {
	rootCmd.AddCommand(outputRootCmd, showDestinationCmd, setDestinationCmd)
}

func runShowDestination(cmd *cobra.Command, args []string) error {
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		exitCode = 0
		return enc.Encode(map[string]any{
			"output_root":   appCtx.OutputRoot,
			"settings_path": config.SettingsPath(),
		})
	}
	fmt.Printf("Output root:   %s\n", appCtx.OutputRoot)
	fmt.Printf("Settings file: %s\n", config.SettingsPath())
	exitCode = 0
	return nil
}

func runSetDestination(cmd *cobra.Command, args []string) error {
	root := args[0]
	if err := config.SaveOutputRoot(root); err != nil {
		return handleOperationError(fmt.Errorf("persist output root: %w", err))
	}
	exitCode = 0
	if !flagQuiet {
		fmt.Printf("Default output root set to %s\n", root)
	}
	return nil
}
