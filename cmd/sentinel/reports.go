package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hollow-host/sentinel/pkg/sentinel/orchestrator"
	"github.com/hollow-host/sentinel/pkg/sentinel/output"
	"github.com/hollow-host/sentinel/pkg/sentinel/sentinelerr"
	"github.com/hollow-host/sentinel/pkg/sentinel/types"
)

// buildCLIReport renders outcome as styled text for terminal display,
// independent of whether a "cli" report file was also written to disk.
func buildCLIReport(outcome orchestrator.Outcome) string {
	rep := output.NewReport("", "", "cli", outcome.Result, outcome.Warning)
	f := &output.CLIFormatter{}
	var buf bytes.Buffer
	_ = f.Format(&buf, &rep)
	return buf.String()
}

var allReportFormats = []string{"cli", "html", "json", "csv"}

// resolveReportFormats expands "all"/"none" and falls back to the app
// config's configured formats when raw is empty.
func resolveReportFormats(raw []string) []string {
	if len(raw) == 0 {
		if appConfig != nil && len(appConfig.ReportFormats) > 0 {
			raw = appConfig.ReportFormats
		} else {
			raw = allReportFormats
		}
	}

	seen := make(map[string]bool)
	var out []string
	for _, name := range raw {
		switch name {
		case "all":
			for _, f := range allReportFormats {
				if !seen[f] {
					seen[f] = true
					out = append(out, f)
				}
			}
		case "none":
			return nil
		default:
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// validateReportFlags enforces --no-reports/--report-formats mutual
// exclusivity.
func validateReportFlags(noReports bool, formats []string) error {
	if noReports && len(formats) > 0 {
		return sentinelerr.New(sentinelerr.Usage, "--no-reports and --report-formats are mutually exclusive")
	}
	return nil
}

func reportDestination(name string) (dir, ext string) {
	switch name {
	case "cli":
		return appCtx.CLIDir, ".txt"
	case "html":
		return appCtx.HTMLDir, ".html"
	case "json":
		return appCtx.JSONDir, ".json"
	case "csv":
		return appCtx.CSVDir, ".csv"
	default:
		return "", ""
	}
}

// buildReportGenerator closes over target and the resolved format list,
// rendering each requested format to its directory under the output
// root. Per-format failures are swallowed into "N/A", matching the
// orchestrator's requirement that a ReportGenerator never error.
func buildReportGenerator(target string, formats []string) orchestrator.ReportGenerator {
	return func(_ context.Context, result types.ScanResult, stem string) map[string]string {
		outputs := map[string]string{"cli": "N/A", "html": "N/A", "json": "N/A", "csv": "N/A"}

		for _, name := range formats {
			dir, ext := reportDestination(name)
			if dir == "" {
				continue
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				continue
			}

			rep := output.NewReport(stem, target, name, result, "")
			data, err := output.Render(name, &rep)
			if err != nil {
				continue
			}

			path := filepath.Join(dir, fmt.Sprintf("%s%s", stem, ext))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				continue
			}
			outputs[name] = path
		}
		return outputs
	}
}
