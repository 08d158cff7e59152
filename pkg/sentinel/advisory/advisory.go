// Package advisory builds short, outcome-conditioned guidance lines
// for the CLI commands, grounded in the decision tables of the
// original advisor: the same four operations (init, scan-family,
// watch, doctor) get the same shape of advice, phrased for Sentinel's
// own vocabulary. Advice is advisory only — it never changes an exit
// code or a command's other output.
package advisory

import (
	"fmt"
	"io"

	"github.com/hollow-host/sentinel/pkg/sentinel/orchestrator"
	"github.com/hollow-host/sentinel/pkg/sentinel/output"
	"github.com/hollow-host/sentinel/pkg/sentinel/types"
)

// BuildInitAdvice returns guidance after a baseline is created.
func BuildInitAdvice(scannedFiles int) []string {
	if scannedFiles == 0 {
		return []string{
			"The baseline was created, but no files were tracked.",
			"Verify the target path and ignore rules before the next scan.",
			"Run --list-baseline to confirm expected entries are present.",
		}
	}
	return []string{
		fmt.Sprintf("The baseline was recorded with %d file(s).", scannedFiles),
		"This snapshot is now the trusted reference for future checks.",
		"Keep this baseline only if the current system state is known-good.",
		"Run --status regularly for lightweight integrity checks.",
	}
}

// BuildScanAdvice returns guidance after a scan/status/verify/update
// comparison. mode selects the operation-specific line; baselineRefreshed
// reports whether the baseline was rewritten as part of this run (true
// only for Update).
func BuildScanAdvice(result types.ScanResult, mode orchestrator.Mode, baselineRefreshed bool) []string {
	if !result.Changed() {
		advice := []string{
			"No integrity drift was detected in this cycle.",
			"The current files match the trusted baseline.",
			"Continue routine monitoring at the normal cadence.",
		}
		if mode == orchestrator.Status || mode == orchestrator.Verify {
			advice = append(advice, "This clean result can be used as a confidence signal in CI workflows.")
		}
		return advice
	}

	advice := []string{"Integrity drift was detected and should be reviewed."}
	if result.Stats.Added > 0 {
		advice = append(advice, fmt.Sprintf("%d new file(s) were found; confirm they were expected.", result.Stats.Added))
	}
	if result.Stats.Modified > 0 {
		advice = append(advice, fmt.Sprintf("%d file(s) were modified; verify them against approved changes.", result.Stats.Modified))
	}
	if result.Stats.Deleted > 0 {
		advice = append(advice, fmt.Sprintf("%d file(s) were deleted; confirm the deletions were intentional.", result.Stats.Deleted))
	}

	switch mode {
	case orchestrator.Status:
		advice = append(advice, "Status mode is optimized for quick automation checks.")
	case orchestrator.Verify:
		advice = append(advice, "Verify mode is useful before a baseline refresh in controlled rollouts.")
	}

	if baselineRefreshed {
		advice = append(advice, "The baseline was refreshed; keep the change approval records for this run.")
	} else {
		advice = append(advice, "If these changes are approved, run --update to align the baseline.")
	}
	return advice
}

// BuildWatchAdvice returns guidance after a watch session completes.
func BuildWatchAdvice(anyChanges bool, cycles, intervalSeconds int, failFast bool) []string {
	var advice []string
	if !anyChanges {
		advice = append(advice,
			"Watch mode completed without detecting integrity drift.",
			"Repeated clean checks increase confidence in file-state stability.")
	} else {
		advice = append(advice,
			"Watch mode detected integrity drift during monitoring.",
			"This suggests active file-state changes occurred on the host.")
	}

	advice = append(advice, fmt.Sprintf("This run used %d cycle(s) at a %d-second interval.", cycles, intervalSeconds))
	if failFast {
		advice = append(advice, "Fail-fast stopped at the first alert, which is useful for strict CI/CD gates.")
	} else {
		advice = append(advice, "Tune interval and cycles to match the change velocity and risk profile.")
	}
	return advice
}

// BuildDoctorAdvice returns guidance after a doctor run, summarizing
// passCount/warnCount/failCount checks.
func BuildDoctorAdvice(passCount, warnCount, failCount int) []string {
	var advice []string
	switch {
	case failCount == 0 && warnCount == 0:
		advice = append(advice,
			"All environment checks passed.",
			"Healthy storage and logging paths reduce monitoring blind spots.")
	case failCount == 0:
		advice = append(advice,
			"No hard failures were found, but warnings were detected.",
			"Review warnings early so they do not become reliability issues.")
	default:
		advice = append(advice,
			"One or more critical health checks failed.",
			"Scan results may be incomplete until these failures are resolved.")
	}

	advice = append(advice, fmt.Sprintf("Doctor summary: %d pass, %d warn, %d fail.", passCount, warnCount, failCount))
	advice = append(advice, "Run --doctor after upgrades, path changes, or permission updates.")
	return advice
}

// Render writes lines to w as a styled "Guidance" block, one line per
// bullet. Callers skip calling Render entirely when --no-advice is set;
// Render itself has no opinion on that flag.
func Render(w io.Writer, lines []string) {
	if len(lines) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, output.TitleStyle.Render("Guidance"))
	for _, line := range lines {
		fmt.Fprintf(w, "%s%s\n", output.MutedStyle.Render("  > "), line)
	}
}
