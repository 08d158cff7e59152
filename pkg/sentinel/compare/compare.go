// Package compare classifies drift between a baseline snapshot and a
// freshly captured one.
package compare

import "github.com/hollow-host/sentinel/pkg/sentinel/types"

// Compare classifies every path in baseline and current into added,
// modified, or deleted. When considerMtime is true, a nonzero mtime on
// both sides that differs also counts as modified; mtime is ignored as
// a tiebreaker whenever either side carries an unknown (zero) mtime, so
// a one-sided legacy baseline never flags every file as modified.
func Compare(baseline, current types.FileMap, considerMtime bool) types.ScanResult {
	result := types.ScanResult{
		Current:  current.Clone(),
		Added:    types.FileMap{},
		Modified: types.FileMap{},
		Deleted:  types.FileMap{},
	}

	for path, entry := range current {
		old, existed := baseline[path]
		if !existed {
			result.Added[path] = entry
			continue
		}
		if drifted(old, entry, considerMtime) {
			result.Modified[path] = entry
		}
	}

	for path, entry := range baseline {
		if _, stillPresent := current[path]; !stillPresent {
			result.Deleted[path] = entry
		}
	}

	result.Stats = types.ScanStats{
		Scanned:  len(current),
		Added:    len(result.Added),
		Modified: len(result.Modified),
		Deleted:  len(result.Deleted),
	}

	return result
}

func drifted(old, cur types.FileEntry, considerMtime bool) bool {
	if old.Hash != cur.Hash {
		return true
	}
	if old.Size != cur.Size {
		return true
	}
	if considerMtime && old.Mtime != 0 && cur.Mtime != 0 && old.Mtime != cur.Mtime {
		return true
	}
	return false
}
