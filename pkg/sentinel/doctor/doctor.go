// Package doctor implements the health checks behind the `doctor` and
// `guard` commands: a sequence of named, independently-failing checks
// against the output root, the baseline, the ignore file, and the log
// directory, grounded on the original's doctor check table in
// maintenance_ops.cpp's handle_doctor.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hollow-host/sentinel/pkg/sentinel/baseline"
	"github.com/hollow-host/sentinel/pkg/sentinel/config"
	"github.com/hollow-host/sentinel/pkg/sentinel/ignore"
)

// Level is the outcome of a single check.
type Level string

const (
	Pass Level = "pass"
	Warn Level = "warn"
	Fail Level = "fail"
)

// Check is one named health check result.
type Check struct {
	Name   string
	Level  Level
	Detail string
}

// Report is the full set of checks from one doctor run, plus the
// pass/warn/fail tallies advisory.BuildDoctorAdvice consumes.
type Report struct {
	Checks    []Check
	PassCount int
	WarnCount int
	FailCount int
}

// Run executes every check against ctx, optionally creating missing
// output-root directories first when fix is true.
func Run(ctx config.Context, fix bool) Report {
	if fix {
		ensureDirs(ctx)
	}

	var checks []Check
	checks = append(checks, checkOutputRootWritable(ctx.OutputRoot))
	checks = append(checks, checkBaseline(ctx.BaselineFile))
	checks = append(checks, checkIgnoreFile(ctx.IgnoreFile))
	checks = append(checks, checkLogDirWritable(ctx.LogFile))

	report := Report{Checks: checks}
	for _, c := range checks {
		switch c.Level {
		case Pass:
			report.PassCount++
		case Warn:
			report.WarnCount++
		default:
			report.FailCount++
		}
	}
	return report
}

func ensureDirs(ctx config.Context) {
	for _, dir := range []string{ctx.OutputRoot, ctx.ReportDir, ctx.CLIDir, ctx.HTMLDir, ctx.JSONDir, ctx.CSVDir} {
		_ = os.MkdirAll(dir, 0o755)
	}
}

func checkOutputRootWritable(root string) Check {
	probe := filepath.Join(root, ".doctor_probe")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return Check{Name: "output_root", Level: Fail, Detail: err.Error()}
	}
	if err := os.WriteFile(probe, []byte("doctor"), 0o644); err != nil {
		return Check{Name: "output_root", Level: Fail, Detail: fmt.Sprintf("not writable: %v", err)}
	}
	_ = os.Remove(probe)
	return Check{Name: "output_root", Level: Pass, Detail: root}
}

func checkBaseline(path string) Check {
	lr, err := baseline.Load(path)
	if err != nil {
		if berr, ok := err.(*baseline.Error); ok && berr.Kind == baseline.ErrMissing {
			return Check{Name: "baseline", Level: Warn, Detail: "baseline missing; run init"}
		}
		return Check{Name: "baseline", Level: Fail, Detail: err.Error()}
	}
	if lr.Warning != "" {
		return Check{Name: "baseline", Level: Warn, Detail: lr.Warning}
	}
	return Check{Name: "baseline", Level: Pass, Detail: "baseline seal verified"}
}

func checkIgnoreFile(path string) Check {
	if _, err := ignore.Load(path, ""); err != nil {
		return Check{Name: "ignore_rules", Level: Warn, Detail: err.Error()}
	}
	if _, err := os.Stat(path); err != nil {
		return Check{Name: "ignore_rules", Level: Warn, Detail: "ignore file missing; built-in rules only"}
	}
	return Check{Name: "ignore_rules", Level: Pass, Detail: "ignore rules detected"}
}

func checkLogDirWritable(logFile string) Check {
	dir := filepath.Dir(logFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Check{Name: "log_dir", Level: Fail, Detail: err.Error()}
	}
	probe := filepath.Join(dir, ".doctor_probe")
	if err := os.WriteFile(probe, []byte("doctor"), 0o644); err != nil {
		return Check{Name: "log_dir", Level: Fail, Detail: fmt.Sprintf("not writable: %v", err)}
	}
	_ = os.Remove(probe)
	return Check{Name: "log_dir", Level: Pass, Detail: dir}
}
