package config

import "path/filepath"

// Context is the immutable set of derived paths rooted at a single
// output directory. It is rebuilt only at an explicit output-root
// change (the --output-root flag or the interactive console's "set
// destination" action), never mutated in place.
type Context struct {
	OutputRoot   string
	BaselineFile string
	IgnoreFile   string
	LogFile      string
	ReportDir    string
	CLIDir       string
	HTMLDir      string
	JSONDir      string
	CSVDir       string
	ReportIndex  string
}

// NewContext derives every path the tool writes to from a single output
// root.
func NewContext(outputRoot string) Context {
	reportDir := filepath.Join(outputRoot, "reports")
	return Context{
		OutputRoot:   outputRoot,
		BaselineFile: filepath.Join(outputRoot, "baseline.txt"),
		IgnoreFile:   filepath.Join(outputRoot, "ignore.txt"),
		LogFile:      filepath.Join(outputRoot, "sentinel.log"),
		ReportDir:    reportDir,
		CLIDir:       filepath.Join(reportDir, "cli"),
		HTMLDir:      filepath.Join(reportDir, "html"),
		JSONDir:      filepath.Join(reportDir, "json"),
		CSVDir:       filepath.Join(reportDir, "csv"),
		ReportIndex:  filepath.Join(outputRoot, "reportindex"),
	}
}
