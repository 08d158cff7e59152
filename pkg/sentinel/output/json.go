package output

import (
	"bytes"
	"encoding/json"

	"github.com/hollow-host/sentinel/pkg/sentinel/types"
)

// jsonReport mirrors Report with explicit JSON tags, keeping the
// exported Report type free to evolve without pinning wire field names
// to its Go field names.
type jsonReport struct {
	Command     string          `json:"command"`
	Target      string          `json:"target"`
	Mode        string          `json:"mode"`
	Changed     bool            `json:"changed"`
	GeneratedAt string          `json:"generated_at"`
	Stats       jsonStats       `json:"stats"`
	Added       []jsonFileEntry `json:"added"`
	Modified    []jsonFileEntry `json:"modified"`
	Deleted     []jsonFileEntry `json:"deleted"`
	Warning     string          `json:"warning,omitempty"`
}

type jsonStats struct {
	Scanned  int     `json:"scanned"`
	Added    int     `json:"added"`
	Modified int     `json:"modified"`
	Deleted  int     `json:"deleted"`
	Duration float64 `json:"duration"`
}

type jsonFileEntry struct {
	Path  string `json:"path"`
	Hash  string `json:"hash"`
	Size  uint64 `json:"size"`
	Mtime int64  `json:"mtime"`
}

// JSONFormatter formats a Report as a single indented JSON document.
type JSONFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONReport(r))
}

func buildJSONReport(r *Report) jsonReport {
	return jsonReport{
		Command:     r.Command,
		Target:      r.Target,
		Mode:        r.Mode,
		Changed:     r.Changed,
		GeneratedAt: r.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Stats: jsonStats{
			Scanned:  r.Stats.Scanned,
			Added:    r.Stats.Added,
			Modified: r.Stats.Modified,
			Deleted:  r.Stats.Deleted,
			Duration: r.Stats.Duration,
		},
		Added:    toJSONEntries(r.Added),
		Modified: toJSONEntries(r.Modified),
		Deleted:  toJSONEntries(r.Deleted),
		Warning:  r.Warning,
	}
}

func toJSONEntries(entries []types.FileEntry) []jsonFileEntry {
	out := make([]jsonFileEntry, len(entries))
	for i, e := range entries {
		out[i] = jsonFileEntry{Path: e.Path, Hash: e.Hash, Size: e.Size, Mtime: e.Mtime}
	}
	return out
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

var _ Formatter = (*JSONFormatter)(nil)
