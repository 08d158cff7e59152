// Package baseline implements the tamper-evident baseline store: encode
// and decode the baseline document, seal and verify it, and support the
// backup-and-rollback import protocol.
package baseline

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hollow-host/sentinel/pkg/sentinel/types"
)

const (
	docHeader  = "# Sentinel baseline v2"
	sealHeader = "# Sentinel baseline seal v1"
)

// WarnMissingSeal is the warning text surfaced when a baseline loads
// successfully despite carrying no seal.
const WarnMissingSeal = "baseline has no seal; re-run update to enable tamper guard"

// LoadResult is the structured outcome of Load, replacing the original
// tool's global last-error/last-warning strings with a value the
// caller receives directly.
type LoadResult struct {
	Document types.BaselineDocument
	Warning  string
}

// ErrKind distinguishes the baseline-specific failure modes.
type ErrKind int

const (
	// ErrMissing means the baseline document does not exist at all.
	ErrMissing ErrKind = iota
	// ErrTamper means a seal was present but did not match the
	// document's recomputed digest.
	ErrTamper
	// ErrInvalid means the document existed but carried no parseable
	// content, or could not be read/written.
	ErrInvalid
)

// Error wraps a baseline failure with its classification.
type Error struct {
	Kind ErrKind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func newErr(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// SealPath derives the seal sidecar path for a given document path.
func SealPath(docPath string) string {
	return docPath + ".seal"
}

// Load reads and verifies the baseline document at path. A missing
// document is ErrMissing. A present seal that fails to match the
// document's digest is ErrTamper. A missing seal succeeds but carries
// WarnMissingSeal. A document with zero parsed entries and no header
// lines is ErrInvalid.
func Load(path string) (LoadResult, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return LoadResult{}, newErr(ErrMissing, "baseline file not found: %s", path)
		}
		return LoadResult{}, newErr(ErrInvalid, "stat baseline: %v", err)
	}

	var warning string
	sealPath := SealPath(path)
	seal, err := readSeal(sealPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return LoadResult{}, newErr(ErrInvalid, "read seal: %v", err)
		}
		warning = WarnMissingSeal
	} else {
		digest, err := digestFile(path)
		if err != nil {
			return LoadResult{}, newErr(ErrInvalid, "digest baseline: %v", err)
		}
		if digest != seal.Digest {
			return LoadResult{}, newErr(ErrTamper, "seal digest mismatch for %s", path)
		}
	}

	doc, err := parseDocument(path)
	if err != nil {
		return LoadResult{}, newErr(ErrInvalid, "%v", err)
	}

	return LoadResult{Document: doc, Warning: warning}, nil
}

// Save persists doc to path, then computes and writes its seal. Both
// files have their permissions tightened to owner read/write where the
// host OS supports it.
func Save(path string, doc types.BaselineDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newErr(ErrInvalid, "create baseline dir: %v", err)
	}

	body := encodeDocument(doc)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		return newErr(ErrInvalid, "write baseline: %v", err)
	}
	tightenPermissions(path)

	digest := sha256.Sum256(body)
	sealBody := encodeSeal(types.BaselineSeal{
		Algorithm: "SHA256",
		Created:   time.Now().UTC().Format(time.RFC3339),
		Digest:    hex.EncodeToString(digest[:]),
	})
	sealPath := SealPath(path)
	if err := os.WriteFile(sealPath, sealBody, 0o600); err != nil {
		return newErr(ErrInvalid, "write seal: %v", err)
	}
	tightenPermissions(sealPath)

	return nil
}

// Import replaces the baseline at path with the contents of srcPath,
// following the backup-verify-rollback protocol: the existing baseline
// is backed up to path+".bak" before the copy, restored if verification
// or re-sealing fails, and the backup is removed only on success.
func Import(path, srcPath string) error {
	backupPath := path + ".bak"
	hadExisting := false
	if _, err := os.Stat(path); err == nil {
		hadExisting = true
		if err := copyFile(path, backupPath); err != nil {
			return newErr(ErrInvalid, "backup existing baseline: %v", err)
		}
		if sealExists(path) {
			if err := copyFile(SealPath(path), SealPath(backupPath)); err != nil {
				return newErr(ErrInvalid, "backup existing seal: %v", err)
			}
		}
	}

	restore := func() {
		if hadExisting {
			_ = copyFile(backupPath, path)
			if sealExists(backupPath) {
				_ = copyFile(SealPath(backupPath), SealPath(path))
			} else {
				_ = os.Remove(SealPath(path))
			}
		}
	}

	if err := copyFile(srcPath, path); err != nil {
		restore()
		return newErr(ErrInvalid, "copy candidate baseline: %v", err)
	}
	if sealExists(srcPath) {
		if err := copyFile(SealPath(srcPath), SealPath(path)); err != nil {
			restore()
			return newErr(ErrInvalid, "copy candidate seal: %v", err)
		}
	} else {
		_ = os.Remove(SealPath(path))
	}

	result, err := Load(path)
	if err != nil {
		restore()
		return err
	}

	if err := Save(path, result.Document); err != nil {
		restore()
		return newErr(ErrInvalid, "reseal imported baseline: %v", err)
	}

	if hadExisting {
		_ = os.Remove(backupPath)
		_ = os.Remove(SealPath(backupPath))
	}
	return nil
}

// Export copies the baseline document and its seal from path to
// destPath, refusing to overwrite an existing destination unless
// overwrite is true, and creating destPath's parent directories as
// needed.
func Export(path, destPath string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(destPath); err == nil {
			return newErr(ErrInvalid, "destination already exists: %s (pass overwrite to replace it)", destPath)
		}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return newErr(ErrInvalid, "create destination dir: %v", err)
	}

	if err := copyFile(path, destPath); err != nil {
		return newErr(ErrInvalid, "copy baseline: %v", err)
	}
	if sealExists(path) {
		if err := copyFile(SealPath(path), SealPath(destPath)); err != nil {
			return newErr(ErrInvalid, "copy seal: %v", err)
		}
	}
	return nil
}

func sealExists(docPath string) bool {
	_, err := os.Stat(SealPath(docPath))
	return err == nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o600)
}

func digestFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func readSeal(path string) (types.BaselineSeal, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.BaselineSeal{}, err
	}
	defer f.Close()

	var seal types.BaselineSeal
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := splitField(line)
		if !ok {
			continue
		}
		switch key {
		case "algorithm":
			seal.Algorithm = val
		case "created":
			seal.Created = val
		case "digest":
			seal.Digest = val
		}
	}
	if err := scanner.Err(); err != nil {
		return types.BaselineSeal{}, err
	}
	return seal, nil
}

func encodeSeal(seal types.BaselineSeal) []byte {
	var b strings.Builder
	b.WriteString(sealHeader + "\n")
	fmt.Fprintf(&b, "algorithm\t%s\n", seal.Algorithm)
	fmt.Fprintf(&b, "created\t%s\n", seal.Created)
	fmt.Fprintf(&b, "digest\t%s\n", seal.Digest)
	return []byte(b.String())
}

func encodeDocument(doc types.BaselineDocument) []byte {
	var b strings.Builder
	b.WriteString(docHeader + "\n")
	fmt.Fprintf(&b, "root\t%s\n", doc.Root)
	fmt.Fprintf(&b, "generated\t%s\n", doc.Generated)
	for _, e := range doc.Entries {
		fmt.Fprintf(&b, "file\t%s\t%s\t%d\t%d\n", e.Path, e.Hash, e.Size, e.Mtime)
	}
	return []byte(b.String())
}

func parseDocument(path string) (types.BaselineDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.BaselineDocument{}, err
	}
	defer f.Close()

	doc := types.BaselineDocument{Entries: types.FileMap{}}
	var lineCount int

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if entry, ok := parseFileLine(line); ok {
			doc.Entries[entry.Path] = entry
			lineCount++
			continue
		}
		if key, val, ok := splitField(line); ok {
			switch key {
			case "root":
				doc.Root = val
				lineCount++
			case "generated":
				doc.Generated = val
				lineCount++
			}
			continue
		}
		if entry, ok := parseLegacyLine(line); ok {
			doc.Entries[entry.Path] = entry
			lineCount++
		}
	}
	if err := scanner.Err(); err != nil {
		return types.BaselineDocument{}, err
	}
	if lineCount == 0 {
		return types.BaselineDocument{}, fmt.Errorf("baseline is empty or invalid")
	}
	return doc, nil
}

// parseFileLine parses "file\tpath\thash\tsize\tmtime".
func parseFileLine(line string) (types.FileEntry, bool) {
	if !strings.HasPrefix(line, "file\t") {
		return types.FileEntry{}, false
	}
	fields := strings.Split(line, "\t")
	if len(fields) != 5 {
		return types.FileEntry{}, false
	}
	size, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return types.FileEntry{}, false
	}
	mtime, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return types.FileEntry{}, false
	}
	return types.FileEntry{Path: fields[1], Hash: fields[2], Size: size, Mtime: mtime}, true
}

// parseLegacyLine parses the pre-v2 "path|size|hash" form; mtime
// defaults to 0 since the legacy format never carried it.
func parseLegacyLine(line string) (types.FileEntry, bool) {
	fields := strings.Split(line, "|")
	if len(fields) != 3 {
		return types.FileEntry{}, false
	}
	size, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return types.FileEntry{}, false
	}
	return types.FileEntry{Path: fields[0], Hash: fields[2], Size: size, Mtime: 0}, true
}

func splitField(line string) (key, val string, ok bool) {
	idx := strings.IndexByte(line, '\t')
	if idx < 0 {
		return "", "", false
	}
	return line[:idx], line[idx+1:], true
}

func tightenPermissions(path string) {
	_ = os.Chmod(path, 0o600)
}
