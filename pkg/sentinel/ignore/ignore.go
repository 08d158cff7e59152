// Package ignore loads and evaluates wildcard exclusion rules used by
// the snapshot builder to skip paths the operator never wants tracked.
package ignore

import (
	"bufio"
	"os"
	"runtime"
	"strings"
)

// builtinRules are always evaluated ahead of any loaded rule set, under
// every path-separator convention. They exclude paths containing a
// "sentinel-logs" directory. The configured output root (baseline,
// reports, log file, report index) is not excluded by them; it is
// skipped only when a loaded rule names it.
var builtinRules = []string{
	"sentinel-logs/",
	"sentinel-logs\\",
}

// Matcher evaluates normalized rules against candidate paths.
type Matcher struct {
	rules []string
}

// Load reads rules from path. A missing file at path falls back to
// fallback; a missing fallback yields a Matcher carrying only the
// built-in rules. Blank lines and lines starting with "#" are
// discarded; trailing separators are preserved.
func Load(path, fallback string) (*Matcher, error) {
	m := &Matcher{rules: append([]string{}, builtinRules...)}

	rules, err := loadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		rules, err = loadFile(fallback)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	for _, r := range rules {
		m.rules = append(m.rules, normalize(r))
	}
	return m, nil
}

// New builds a Matcher directly from an in-memory rule list, always
// prepending the built-in rules. Useful for tests and for callers that
// have already resolved the rule source.
func New(rules []string) *Matcher {
	m := &Matcher{rules: append([]string{}, builtinRules...)}
	for _, r := range rules {
		m.rules = append(m.rules, normalize(r))
	}
	return m
}

func loadFile(path string) ([]string, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, scanner.Err()
}

// Match reports whether candidate should be excluded. Both the absolute
// normalized path and the path relative to the scan root should be
// passed by the caller across two calls; a candidate is ignored if
// either evaluation matches (see MatchEither).
func (m *Matcher) Match(candidate string) bool {
	candidate = normalize(candidate)
	for _, rule := range m.rules {
		if wildcardMatch(candidate, rule) {
			return true
		}
	}
	return false
}

// MatchEither evaluates both the absolute and root-relative forms of a
// candidate and reports true if either matches.
func (m *Matcher) MatchEither(absolute, relative string) bool {
	return m.Match(absolute) || m.Match(relative)
}

// normalize converts a path to forward-slash form and, on
// case-insensitive platforms, folds case before matching.
func normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		p = strings.ToLower(p)
	}
	return p
}

// wildcardMatch implements the matcher's rule semantics: a rule without
// "*" matches any text that contains it as a substring. A rule with "*"
// is split on "*" into non-empty tokens that must occur in text in
// order; the first token is anchored to the start of text unless the
// rule itself starts with "*", and the last token is anchored to the
// end of text unless the rule itself ends with "*".
func wildcardMatch(text, pattern string) bool {
	if pattern == "" {
		return false
	}
	if !strings.Contains(pattern, "*") {
		return strings.Contains(text, pattern)
	}

	tokens := splitNonEmpty(pattern, "*")
	if len(tokens) == 0 {
		// pattern is made entirely of "*".
		return true
	}

	pos := 0
	for i, tok := range tokens {
		idx := strings.Index(text[pos:], tok)
		if idx < 0 {
			return false
		}
		absIdx := pos + idx
		if i == 0 && !strings.HasPrefix(pattern, "*") && absIdx != 0 {
			return false
		}
		pos = absIdx + len(tok)
	}

	last := tokens[len(tokens)-1]
	if !strings.HasSuffix(pattern, "*") && !strings.HasSuffix(text, last) {
		return false
	}
	return true
}

func splitNonEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
