package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hollow-host/sentinel/pkg/sentinel/baseline"
	"github.com/hollow-host/sentinel/pkg/sentinel/pathutil"
	"github.com/hollow-host/sentinel/pkg/sentinel/sentinelerr"
	"github.com/hollow-host/sentinel/pkg/sentinel/types"
)

var (
	flagLimit       int
	flagOverwrite   bool
	flagImportForce bool
)

var listBaselineCmd = &cobra.Command{
	Use:   "list-baseline",
	Short: "List the files tracked by the current baseline",
	Args:  cobra.NoArgs,
	RunE:  runListBaseline,
}

var showBaselineCmd = &cobra.Command{
	Use:   "show-baseline <path>",
	Short: "Show the tracked entry matching path",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowBaseline,
}

var exportBaselineCmd = &cobra.Command{
	Use:   "export-baseline <file>",
	Short: "Copy the baseline and its seal to file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportBaseline,
}

var importBaselineCmd = &cobra.Command{
	Use:   "import-baseline <file>",
	Short: "Replace the baseline with the contents of file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportBaseline,
}

func init() {
	listBaselineCmd.Flags().IntVar(&flagLimit, "limit", 0, "limit the number of entries listed (0 = no limit)")
	exportBaselineCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "replace an existing destination file")
	importBaselineCmd.Flags().BoolVar(&flagImportForce, "force", false, "replace an existing baseline")
	rootCmd.AddCommand(listBaselineCmd, showBaselineCmd, exportBaselineCmd, importBaselineCmd)
}

func runListBaseline(cmd *cobra.Command, args []string) error {
	lr, err := baseline.Load(appCtx.BaselineFile)
	if err != nil {
		return handleOperationError(sentinelerr.New(sentinelerr.BaselineMissing, "%v", err))
	}

	paths := sortedPaths(lr.Document.Entries)
	total := len(paths)
	if flagLimit > 0 && len(paths) > flagLimit {
		paths = paths[:flagLimit]
	}

	if flagJSON {
		items := make([]map[string]any, 0, len(paths))
		for _, p := range paths {
			e := lr.Document.Entries[p]
			items = append(items, map[string]any{
				"path": e.Path, "hash": e.Hash, "size": e.Size, "mtime": e.Mtime,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"root": lr.Document.Root, "total": total, "items": items})
	}

	fmt.Printf("Root: %s\n", lr.Document.Root)
	fmt.Printf("Total tracked files: %d\n", total)
	for _, p := range paths {
		fmt.Println(" ", p)
	}
	exitCode = 0
	return nil
}

func sortedPaths(m types.FileMap) []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func runShowBaseline(cmd *cobra.Command, args []string) error {
	lr, err := baseline.Load(appCtx.BaselineFile)
	if err != nil {
		return handleOperationError(sentinelerr.New(sentinelerr.BaselineMissing, "%v", err))
	}

	query := args[0]
	if entry, ok := lr.Document.Entries[pathutil.Normalize(query)]; ok {
		return printBaselineEntry(entry)
	}

	var matches []string
	for p := range lr.Document.Entries {
		if strings.Contains(p, query) {
			matches = append(matches, p)
		}
	}
	sort.Strings(matches)

	switch {
	case len(matches) == 1:
		return printBaselineEntry(lr.Document.Entries[matches[0]])
	case len(matches) == 0:
		return handleOperationError(sentinelerr.New(sentinelerr.OperationFailed, "no tracked entry matches %q", query))
	default:
		shown := matches
		if len(shown) > 10 {
			shown = shown[:10]
		}
		return handleOperationError(sentinelerr.New(sentinelerr.Usage, "%q matches %d entries, be more specific: %s", query, len(matches), strings.Join(shown, ", ")))
	}
}

func printBaselineEntry(e types.FileEntry) error {
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"path": e.Path, "hash": e.Hash, "size": e.Size, "mtime": e.Mtime})
	}
	fmt.Printf("Path:  %s\nHash:  %s\nSize:  %d\nMtime: %d\n", e.Path, e.Hash, e.Size, e.Mtime)
	exitCode = 0
	return nil
}

func runExportBaseline(cmd *cobra.Command, args []string) error {
	dest := args[0]
	if err := baseline.Export(appCtx.BaselineFile, dest, flagOverwrite); err != nil {
		return handleOperationError(sentinelerr.New(sentinelerr.OperationFailed, "%v", err))
	}
	exitCode = 0
	if !flagQuiet {
		fmt.Printf("Exported baseline to %s\n", dest)
	}
	return nil
}

func runImportBaseline(cmd *cobra.Command, args []string) error {
	src := args[0]
	if _, err := os.Stat(src); err != nil {
		return handleOperationError(sentinelerr.New(sentinelerr.Usage, "source baseline file not found: %s", src))
	}

	if _, err := os.Stat(appCtx.BaselineFile); err == nil && !flagImportForce {
		return handleOperationError(sentinelerr.New(sentinelerr.Usage, "baseline already exists, pass --force to replace it"))
	}

	if err := baseline.Import(appCtx.BaselineFile, src); err != nil {
		return handleOperationError(sentinelerr.New(sentinelerr.OperationFailed, "%v", err))
	}

	exitCode = 0
	if !flagQuiet {
		fmt.Println("Baseline imported successfully.")
	}
	return nil
}
