package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/hollow-host/sentinel/pkg/sentinel/types"
)

// CLIFormatter renders a Report as a styled terminal report. Color is
// not gated here — lipgloss's default renderer already strips ANSI
// codes when NO_COLOR is set or the destination isn't a TTY, which
// covers the --report-formats cli case of writing straight to a file.
type CLIFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *CLIFormatter) Format(w *bytes.Buffer, r *Report) error {
	w.WriteString(f.formatHeader(r))
	w.WriteString("\n")
	w.WriteString(f.formatChanges(r))
	w.WriteString(f.formatFooter(r))

	if r.Warning != "" {
		w.WriteString("\n")
		w.WriteString(WarningStyle.Render("Warning: " + r.Warning))
		w.WriteString("\n")
	}

	return nil
}

func (f *CLIFormatter) formatHeader(r *Report) string {
	lines := []string{
		fmt.Sprintf("%s %s", LabelStyle.Render("Target:"), ValueStyle.Render(r.Target)),
		fmt.Sprintf("%s %s", LabelStyle.Render("Command:"), ValueStyle.Render(r.Command)),
		fmt.Sprintf("%s %s", LabelStyle.Render("Scanned:"), ValueStyle.Render(
			fmt.Sprintf("%d files in %.2fs", r.Stats.Scanned, r.Stats.Duration))),
	}
	return HeaderBox.Render(strings.Join(lines, "\n"))
}

func (f *CLIFormatter) formatChanges(r *Report) string {
	if r.TotalChanges() == 0 {
		return MutedStyle.Render("  No drift detected\n")
	}

	var sb strings.Builder
	header := fmt.Sprintf("  %s  %s  %s\n",
		TableHeaderStyle.Render(padRight("STATUS", 8)),
		TableHeaderStyle.Render(padRight("SIZE", 10)),
		TableHeaderStyle.Render("PATH"))
	sb.WriteString(header)

	f.writeRows(&sb, "ADDED", r.Added, SuccessStyle)
	f.writeRows(&sb, "MODIFIED", r.Modified, WarningStyle)
	f.writeRows(&sb, "DELETED", r.Deleted, ErrorStyle)

	return sb.String()
}

func (f *CLIFormatter) writeRows(sb *strings.Builder, status string, entries []types.FileEntry, style lipgloss.Style) {
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			style.Render(padRight(status, 8)),
			SizeStyle.Render(padRight(humanize.IBytes(e.Size), 10)),
			PathStyle.Render(e.Path)))
	}
}

func (f *CLIFormatter) formatFooter(r *Report) string {
	parts := []string{
		fmt.Sprintf("%s %s", LabelStyle.Render("Added:"), SuccessStyle.Render(fmt.Sprintf("%d", r.Stats.Added))),
		fmt.Sprintf("%s %s", LabelStyle.Render("Modified:"), WarningStyle.Render(fmt.Sprintf("%d", r.Stats.Modified))),
		fmt.Sprintf("%s %s", LabelStyle.Render("Deleted:"), ErrorStyle.Render(fmt.Sprintf("%d", r.Stats.Deleted))),
	}
	return FooterBox.Render(strings.Join(parts, "  "))
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func init() {
	Register("cli", func() Formatter {
		return &CLIFormatter{}
	})
}

var _ Formatter = (*CLIFormatter)(nil)
