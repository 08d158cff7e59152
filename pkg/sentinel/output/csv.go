package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/hollow-host/sentinel/pkg/sentinel/types"
)

// CSVFormatter formats a Report as comma-separated values, one row per
// changed file across all three change sets, RFC 4180 quoted via
// encoding/csv.
type CSVFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *CSVFormatter) Format(w *bytes.Buffer, r *Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"status", "path", "size", "hash", "mtime"}); err != nil {
		return err
	}

	if err := writeCSVRows(writer, "added", r.Added); err != nil {
		return err
	}
	if err := writeCSVRows(writer, "modified", r.Modified); err != nil {
		return err
	}
	if err := writeCSVRows(writer, "deleted", r.Deleted); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

func writeCSVRows(writer *csv.Writer, status string, entries []types.FileEntry) error {
	for _, e := range entries {
		row := []string{
			status,
			e.Path,
			strconv.FormatUint(e.Size, 10),
			e.Hash,
			strconv.FormatInt(e.Mtime, 10),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	Register("csv", func() Formatter {
		return &CSVFormatter{}
	})
}

var _ Formatter = (*CSVFormatter)(nil)
