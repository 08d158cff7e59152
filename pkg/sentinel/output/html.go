package output

import (
	"bytes"
	"html/template"
	"time"

	"github.com/dustin/go-humanize"
)

// HTMLFormatter renders a Report as a standalone HTML document,
// suitable for opening directly in a browser or attaching to CI
// artifacts. html/template auto-escapes path and hash values, which
// matters here since file paths are attacker-influenced input in the
// threat model this tool defends against.
type HTMLFormatter struct{}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"bytes": func(size uint64) string { return humanize.IBytes(size) },
	"mtime": func(unixSeconds int64) string {
		if unixSeconds == 0 {
			return ""
		}
		return time.Unix(unixSeconds, 0).UTC().Format(time.RFC3339)
	},
}).Parse(htmlReportTemplate))

// Format writes the formatted output to the buffer.
func (f *HTMLFormatter) Format(w *bytes.Buffer, r *Report) error {
	return htmlTemplate.Execute(w, r)
}

func init() {
	Register("html", func() Formatter {
		return &HTMLFormatter{}
	})
}

var _ Formatter = (*HTMLFormatter)(nil)

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Sentinel report: {{.Target}}</title>
<style>
body { font-family: -apple-system, sans-serif; margin: 2rem; color: #1a1a1a; }
h1 { font-size: 1.2rem; }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
th, td { text-align: left; padding: 0.35rem 0.75rem; border-bottom: 1px solid #ddd; }
th { background: #f4f4f4; }
.added { color: #1a7f37; }
.modified { color: #9a6700; }
.deleted { color: #cf222e; }
.muted { color: #6e7781; }
</style>
</head>
<body>
<h1>Sentinel report</h1>
<p>
  <strong>Target:</strong> {{.Target}}<br>
  <strong>Command:</strong> {{.Command}}<br>
  <strong>Generated:</strong> {{.GeneratedAt.UTC.Format "2006-01-02T15:04:05Z"}}<br>
  <strong>Scanned:</strong> {{.Stats.Scanned}} files in {{printf "%.2f" .Stats.Duration}}s
</p>
{{if .Warning}}<p class="modified"><strong>Warning:</strong> {{.Warning}}</p>{{end}}
{{if not .Changed}}
<p class="muted">No drift detected.</p>
{{else}}
<table>
<thead><tr><th>Status</th><th>Path</th><th>Size</th><th>Hash</th></tr></thead>
<tbody>
{{range .Added}}<tr><td class="added">ADDED</td><td>{{.Path}}</td><td>{{bytes .Size}}</td><td>{{.Hash}}</td></tr>{{end}}
{{range .Modified}}<tr><td class="modified">MODIFIED</td><td>{{.Path}}</td><td>{{bytes .Size}}</td><td>{{.Hash}}</td></tr>{{end}}
{{range .Deleted}}<tr><td class="deleted">DELETED</td><td>{{.Path}}</td><td>{{bytes .Size}}</td><td>{{.Hash}}</td></tr>{{end}}
</tbody>
</table>
{{end}}
</body>
</html>
`
