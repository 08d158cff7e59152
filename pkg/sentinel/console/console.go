// Package console implements the interactive `--prompt-mode` menu: a
// bubbletea program offering scan/status/verify/watch/list-baseline
// without re-invoking the binary, styled with the same lipgloss
// palette as the report formatters. It hot-reloads the ignore file and
// the app config file through pkg/sentinel/livereload, never the
// snapshot builder itself.
package console

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hollow-host/sentinel/pkg/sentinel/baseline"
	"github.com/hollow-host/sentinel/pkg/sentinel/livereload"
	"github.com/hollow-host/sentinel/pkg/sentinel/logging"
	"github.com/hollow-host/sentinel/pkg/sentinel/orchestrator"
	"github.com/hollow-host/sentinel/pkg/sentinel/output"
)

var logger = logging.Get("console")

type menuItem struct {
	title string
	desc  string
	mode  orchestrator.Mode
	isOp  bool // false for the list-baseline action, which isn't an orchestrator.Mode
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

func menuItems() []list.Item {
	return []list.Item{
		menuItem{title: "Scan", desc: "compare the target against the baseline", mode: orchestrator.Scan, isOp: true},
		menuItem{title: "Status", desc: "quick drift check for automation", mode: orchestrator.Status, isOp: true},
		menuItem{title: "Verify", desc: "strict drift check before a baseline refresh", mode: orchestrator.Verify, isOp: true},
		menuItem{title: "Watch (one cycle)", desc: "run a single watch cycle now", mode: orchestrator.Watch, isOp: true},
		menuItem{title: "List baseline", desc: "show how many files the baseline tracks", isOp: false},
	}
}

type reloadMsg struct{ path string }
type operationResultMsg struct {
	text string
	err  error
}

// Model is the bubbletea model backing the prompt console.
type Model struct {
	list    list.Model
	opts    orchestrator.Options
	watcher *livereload.Watcher
	reloads chan string

	lastOutput string
	lastErr    error
	width      int
	height     int
}

// New builds a console Model over opts, watching ignoreFile and
// configFile for external edits; an empty name is not watched.
func New(opts orchestrator.Options, ignoreFile, configFile string) (Model, error) {
	l := list.New(menuItems(), list.NewDefaultDelegate(), 0, 0)
	l.Title = "Sentinel"
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(output.ColorPrimary)

	m := Model{list: l, opts: opts, reloads: make(chan string, 1)}

	watcher, err := livereload.New()
	if err != nil {
		return Model{}, err
	}
	var targets []string
	if ignoreFile != "" {
		targets = append(targets, ignoreFile)
	}
	if configFile != "" {
		targets = append(targets, configFile)
	}
	if len(targets) > 0 {
		if err := watcher.Watch(targets...); err != nil {
			return Model{}, err
		}
	}
	m.watcher = watcher
	return m, nil
}

// Init starts the live-reload watch loop. The list is sized when the
// first tea.WindowSizeMsg arrives.
func (m Model) Init() tea.Cmd {
	ctx := context.Background()
	go m.watcher.Run(ctx, func(path string) {
		select {
		case m.reloads <- path:
		default:
		}
	})
	return waitForReload(m.reloads)
}

func waitForReload(ch chan string) tea.Cmd {
	return func() tea.Msg {
		path := <-ch
		return reloadMsg{path: path}
	}
}

func runOperation(label string, mode orchestrator.Mode, opts orchestrator.Options) tea.Cmd {
	return func() tea.Msg {
		outcome, err := orchestrator.Run(context.Background(), mode, opts)
		if err != nil {
			return operationResultMsg{err: err}
		}
		return operationResultMsg{text: summarize(label, opts.Target, outcome)}
	}
}

func runListBaseline(baselinePath string) tea.Cmd {
	return func() tea.Msg {
		lr, err := baseline.Load(baselinePath)
		if err != nil {
			return operationResultMsg{err: err}
		}
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "Baseline root: %s\n", lr.Document.Root)
		fmt.Fprintf(&buf, "Tracked files: %d\n", len(lr.Document.Entries))
		if lr.Warning != "" {
			fmt.Fprintf(&buf, "Warning: %s\n", lr.Warning)
		}
		return operationResultMsg{text: buf.String()}
	}
}

// Update handles list navigation, selection, and background messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			_ = m.watcher.Close()
			return m, tea.Quit
		case "enter":
			selected, ok := m.list.SelectedItem().(menuItem)
			if !ok {
				return m, nil
			}
			if !selected.isOp {
				return m, m.runListBaseline()
			}
			return m, runOperation(selected.title, selected.mode, m.opts)
		}

	case reloadMsg:
		logger.Info("config reloaded from watched file", "path", msg.path)
		m.lastOutput = fmt.Sprintf("Reloaded %s", msg.path)
		return m, waitForReload(m.reloads)

	case operationResultMsg:
		m.lastErr = msg.err
		if msg.err != nil {
			m.lastOutput = msg.err.Error()
		} else {
			m.lastOutput = msg.text
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) runListBaseline() tea.Cmd {
	return runListBaseline(m.opts.BaselinePath)
}

func summarize(label, target string, outcome orchestrator.Outcome) string {
	rep := output.NewReport(label, target, "cli", outcome.Result, outcome.Warning)
	var buf bytes.Buffer
	f := &output.CLIFormatter{}
	_ = f.Format(&buf, &rep)
	return buf.String()
}

// View renders the menu and the last operation's output.
func (m Model) View() string {
	footer := output.MutedStyle.Render("enter: run  ·  q: quit")
	if m.lastOutput == "" {
		return m.list.View() + "\n" + footer
	}
	return m.list.View() + "\n" + m.lastOutput + "\n" + footer
}

// Run starts the program and blocks until the user quits.
func Run(opts orchestrator.Options, ignoreFile, configFile string) error {
	m, err := New(opts, ignoreFile, configFile)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
