package doctor

import (
	"context"
	"errors"

	"github.com/hollow-host/sentinel/pkg/sentinel/orchestrator"
	"github.com/hollow-host/sentinel/pkg/sentinel/sentinelerr"
)

// Guard runs a verify operation forced to strict mode with reporting
// disabled, returning only the resulting exit code. It is meant for
// shell hooks (pre-commit, CI gates) where the caller wants a single
// pass/fail signal and nothing written to the output root, grounded on
// the original's handle_guard.
func Guard(ctx context.Context, opts orchestrator.Options) (int, error) {
	opts.Strict = true
	opts.NoReports = true

	outcome, err := orchestrator.Run(ctx, orchestrator.Verify, opts)
	if err != nil {
		var serr *sentinelerr.Error
		if errors.As(err, &serr) {
			return serr.Kind.ExitCode(), err
		}
		return 1, err
	}
	return outcome.ExitCode, nil
}
