// Package output renders a comparison outcome into one of the report
// formats named by the tool's --report-formats grammar: cli, html,
// json, and csv. Formatters are registered by name in a package-level
// registry so the orchestrator can resolve "html,json" into concrete
// renderers without a switch statement growing at every call site.
package output

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hollow-host/sentinel/pkg/sentinel/logging"
	"github.com/hollow-host/sentinel/pkg/sentinel/types"
)

var logger = logging.Get("output")

// Report is the rendering-ready view of a comparison outcome. It holds
// the same data as types.ScanResult, reshaped into sorted slices so
// formatters don't each reimplement map iteration and ordering.
type Report struct {
	Command     string
	Target      string
	Mode        string
	Changed     bool
	GeneratedAt time.Time
	Stats       types.ScanStats
	Added       []types.FileEntry
	Modified    []types.FileEntry
	Deleted     []types.FileEntry
	Warning     string
}

// NewReport builds a Report from a comparison outcome, sorting each
// change set by path so formatter output is deterministic.
func NewReport(command, target, mode string, result types.ScanResult, warning string) Report {
	r := Report{
		Command:     command,
		Target:      target,
		Mode:        mode,
		Changed:     result.Changed(),
		GeneratedAt: time.Now(),
		Stats:       result.Stats,
		Added:       sortedEntries(result.Added),
		Modified:    sortedEntries(result.Modified),
		Deleted:     sortedEntries(result.Deleted),
		Warning:     warning,
	}
	return r
}

func sortedEntries(m types.FileMap) []types.FileEntry {
	out := make([]types.FileEntry, 0, len(m))
	for _, e := range m {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// TotalChanges returns the number of entries across all three change
// sets, used by formatters that print a single summary count.
func (r Report) TotalChanges() int {
	return len(r.Added) + len(r.Modified) + len(r.Deleted)
}

// Formatter renders a Report to a byte buffer in one concrete format.
type Formatter interface {
	Format(w *bytes.Buffer, r *Report) error
}

// FormatterFactory creates a new Formatter instance.
type FormatterFactory func() Formatter

// Registry manages formatter registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FormatterFactory
}

// NewRegistry creates a new formatter registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]FormatterFactory),
	}
}

// Register adds a formatter factory to the registry, replacing any
// existing formatter registered under the same name.
func (r *Registry) Register(name string, factory FormatterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new formatter instance by name.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown report format: %s", name)
	}
	return factory(), nil
}

// Available returns a sorted list of all registered formatter names.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry that every
// formatter in this package registers itself with on init.
var DefaultRegistry = NewRegistry()

// Register adds a formatter factory to the default registry.
func Register(name string, factory FormatterFactory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a new formatter instance from the default registry.
func Get(name string) (Formatter, error) {
	return DefaultRegistry.Get(name)
}

// Available returns all formatter names from the default registry.
func Available() []string {
	return DefaultRegistry.Available()
}

// Render looks up the named formatter and runs it against r, logging
// (but not failing the caller on) render errors, per the propagation
// policy that report-render errors never change an operation's exit
// code.
func Render(name string, r *Report) ([]byte, error) {
	f, err := Get(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Format(&buf, r); err != nil {
		logger.Error("render failed", "format", name, "error", err)
		return nil, err
	}
	return buf.Bytes(), nil
}
